package event

import (
	"fmt"
	"os"
	"sync"
)

// Emitter dispatches typed events to registered listeners.
// Create one with NewEmitter; the zero value is not usable.
type Emitter struct {
	mu        sync.Mutex
	listeners map[Type][]*registration
	nextID    uint64
	fault     FaultHandler
	history   *history
}

// registration is one listener entry. Listeners are tracked by ID
// because Go functions are not comparable.
type registration struct {
	id   uint64
	fn   Listener
	once bool
}

// NewEmitter creates an emitter with the given options.
func NewEmitter(opts ...Option) *Emitter {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	e := &Emitter{
		listeners: make(map[Type][]*registration),
		fault:     cfg.fault,
	}
	if cfg.historySize > 0 {
		e.history = newHistory(cfg.historySize)
	}
	return e
}

// DefaultFaultHandler reports listener faults to stderr.
func DefaultFaultHandler(t Type, recovered any) {
	fmt.Fprintf(os.Stderr, "event: fault during %s: %v\n", t, recovered)
}

// On registers a listener for an event type. It returns a cancel
// function that removes the listener and reports whether it was still
// registered. Cancelling twice is a safe no-op returning false.
func (e *Emitter) On(t Type, fn Listener) (func() bool, error) {
	return e.register(t, fn, false)
}

// Once registers a listener that is removed after its first
// invocation, whether or not it panicked.
func (e *Emitter) Once(t Type, fn Listener) (func() bool, error) {
	return e.register(t, fn, true)
}

func (e *Emitter) register(t Type, fn Listener, once bool) (func() bool, error) {
	if fn == nil {
		return nil, ErrNilListener
	}

	e.mu.Lock()
	e.nextID++
	reg := &registration{id: e.nextID, fn: fn, once: once}
	e.listeners[t] = append(e.listeners[t], reg)
	e.mu.Unlock()

	id := reg.id
	return func() bool { return e.remove(t, id) }, nil
}

// remove deletes a registration by ID, preserving listener order.
func (e *Emitter) remove(t Type, id uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	regs := e.listeners[t]
	for i, reg := range regs {
		if reg.id == id {
			e.listeners[t] = append(regs[:i], regs[i+1:]...)
			if len(e.listeners[t]) == 0 {
				delete(e.listeners, t)
			}
			return true
		}
	}
	return false
}

// Emit dispatches payload to every listener registered for t, in
// registration order, and returns the number of listeners invoked.
//
// Dispatch iterates a snapshot of the listener set: listeners added or
// removed during the call affect only later Emit calls. A listener
// panic is recovered, reported to the fault handler, and does not
// block remaining listeners.
func (e *Emitter) Emit(t Type, payload any) int {
	e.mu.Lock()
	regs := e.listeners[t]
	snapshot := make([]*registration, len(regs))
	copy(snapshot, regs)
	if e.history != nil {
		e.history.record(t, payload)
	}
	e.mu.Unlock()

	count := 0
	for _, reg := range snapshot {
		if reg.once {
			// Removed before invocation so a panic cannot leave a
			// once listener armed.
			e.remove(t, reg.id)
		}
		e.invoke(t, reg.fn, payload)
		count++
	}
	return count
}

// invoke runs one listener with panic isolation.
func (e *Emitter) invoke(t Type, fn Listener, payload any) {
	defer func() {
		if r := recover(); r != nil && e.fault != nil {
			e.fault(t, &ListenerPanic{Type: t, Value: r})
		}
	}()
	fn(payload)
}

// ListenerCount returns the number of listeners registered for t.
func (e *Emitter) ListenerCount(t Type) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.listeners[t])
}

// RemoveAllListeners removes every listener for the given types, or
// all listeners when no type is given.
func (e *Emitter) RemoveAllListeners(types ...Type) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(types) == 0 {
		e.listeners = make(map[Type][]*registration)
		return
	}
	for _, t := range types {
		delete(e.listeners, t)
	}
}
