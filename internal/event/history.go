package event

import (
	"time"

	"github.com/google/uuid"
)

// Entry is one recorded event in an emitter's history.
type Entry struct {
	// ID uniquely identifies this emission.
	ID string

	// Type is the emitted event type.
	Type Type

	// Payload is the emitted payload.
	Payload any

	// Timestamp is when the event was emitted.
	Timestamp time.Time
}

// history is a bounded FIFO of emitted events.
type history struct {
	entries []Entry
	max     int
}

func newHistory(max int) *history {
	return &history{max: max}
}

// record appends an entry, evicting the oldest when at capacity.
func (h *history) record(t Type, payload any) {
	if len(h.entries) >= h.max {
		h.entries = h.entries[1:]
	}
	h.entries = append(h.entries, Entry{
		ID:        uuid.NewString(),
		Type:      t,
		Payload:   payload,
		Timestamp: time.Now(),
	})
}

// History returns a copy of the recorded entries, oldest first.
// It returns nil when history is disabled.
func (e *Emitter) History() []Entry {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.history == nil || len(e.history.entries) == 0 {
		return nil
	}
	out := make([]Entry, len(e.history.entries))
	copy(out, e.history.entries)
	return out
}

// ClearHistory drops all recorded entries.
func (e *Emitter) ClearHistory() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.history != nil {
		e.history.entries = nil
	}
}

// ReplayOption filters which history entries Replay re-emits.
type ReplayOption func(*replayConfig)

type replayConfig struct {
	types map[Type]bool
	limit int
}

// ReplayTypes restricts replay to the given event types.
func ReplayTypes(types ...Type) ReplayOption {
	return func(c *replayConfig) {
		if c.types == nil {
			c.types = make(map[Type]bool)
		}
		for _, t := range types {
			c.types[t] = true
		}
	}
}

// ReplayLimit caps the number of replayed entries, newest last.
func ReplayLimit(n int) ReplayOption {
	return func(c *replayConfig) {
		if n > 0 {
			c.limit = n
		}
	}
}

// Replay re-dispatches recorded events to current listeners, oldest
// first, and returns the number of entries replayed. Replayed events
// are not re-recorded. On an emitter without history Replay is a
// no-op: it reports ErrHistoryDisabled through the fault handler and
// returns 0.
func (e *Emitter) Replay(opts ...ReplayOption) int {
	e.mu.Lock()
	disabled := e.history == nil
	var entries []Entry
	if !disabled {
		entries = make([]Entry, len(e.history.entries))
		copy(entries, e.history.entries)
	}
	fault := e.fault
	e.mu.Unlock()

	if disabled {
		if fault != nil {
			fault(Type(-1), ErrHistoryDisabled)
		}
		return 0
	}

	var cfg replayConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	filtered := entries[:0]
	for _, entry := range entries {
		if cfg.types != nil && !cfg.types[entry.Type] {
			continue
		}
		filtered = append(filtered, entry)
	}
	if cfg.limit > 0 && len(filtered) > cfg.limit {
		filtered = filtered[len(filtered)-cfg.limit:]
	}

	for _, entry := range filtered {
		e.dispatch(entry.Type, entry.Payload)
	}
	return len(filtered)
}

// dispatch re-emits without recording to history.
func (e *Emitter) dispatch(t Type, payload any) {
	e.mu.Lock()
	regs := e.listeners[t]
	snapshot := make([]*registration, len(regs))
	copy(snapshot, regs)
	e.mu.Unlock()

	for _, reg := range snapshot {
		if reg.once {
			e.remove(t, reg.id)
		}
		e.invoke(t, reg.fn, payload)
	}
}
