package metro

import "errors"

// Sentinel errors for the scheduler and metronome.
var (
	// ErrNilCallback is returned when Start is given a nil callback.
	ErrNilCallback = errors.New("callback cannot be nil")

	// ErrInvalidInterval is returned when Start is given a
	// non-positive interval.
	ErrInvalidInterval = errors.New("interval must be greater than zero")

	// ErrDisposed is returned when starting a disposed scheduler.
	ErrDisposed = errors.New("scheduler is disposed")
)
