package event

import "errors"

// Sentinel errors for the event emitter.
var (
	// ErrNilListener is returned when a nil listener is registered.
	ErrNilListener = errors.New("listener cannot be nil")

	// ErrHistoryDisabled is reported when replay is requested on an
	// emitter that does not keep history.
	ErrHistoryDisabled = errors.New("event history is disabled")
)

// ListenerPanic wraps a recovered panic value from a listener.
type ListenerPanic struct {
	// Type is the event type being dispatched when the panic occurred.
	Type Type

	// Value is the value passed to panic().
	Value any
}

// Error implements the error interface.
func (e *ListenerPanic) Error() string {
	return "listener panic during " + e.Type.String() + " dispatch"
}
