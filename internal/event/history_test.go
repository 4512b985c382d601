package event

import (
	"errors"
	"testing"
)

func TestEmitter_HistoryRecords(t *testing.T) {
	em := NewEmitter(WithHistory(10))

	em.Emit(TypePulse, 1)
	em.Emit(TypeMeasure, 2)

	entries := em.History()
	if len(entries) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(entries))
	}
	if entries[0].Type != TypePulse || entries[1].Type != TypeMeasure {
		t.Errorf("unexpected entry order: %v, %v", entries[0].Type, entries[1].Type)
	}
	if entries[0].ID == "" || entries[0].ID == entries[1].ID {
		t.Error("expected unique non-empty entry IDs")
	}
	if entries[0].Timestamp.IsZero() {
		t.Error("expected entry timestamp to be set")
	}
}

func TestEmitter_HistoryBounded(t *testing.T) {
	em := NewEmitter(WithHistory(3))

	for i := 0; i < 5; i++ {
		em.Emit(TypePulse, i)
	}

	entries := em.History()
	if len(entries) != 3 {
		t.Fatalf("expected history capped at 3, got %d", len(entries))
	}
	// Oldest entries evicted first.
	if entries[0].Payload != 2 || entries[2].Payload != 4 {
		t.Errorf("expected payloads [2 3 4], got [%v %v %v]",
			entries[0].Payload, entries[1].Payload, entries[2].Payload)
	}
}

func TestEmitter_HistoryDisabled(t *testing.T) {
	em := NewEmitter()
	em.Emit(TypePulse, 1)

	if entries := em.History(); entries != nil {
		t.Errorf("expected nil history when disabled, got %d entries", len(entries))
	}
}

func TestEmitter_Replay(t *testing.T) {
	em := NewEmitter(WithHistory(10))

	em.Emit(TypePulse, 1)
	em.Emit(TypeMeasure, 2)
	em.Emit(TypePulse, 3)

	var got []any
	em.On(TypePulse, func(payload any) { got = append(got, payload) })

	n := em.Replay(ReplayTypes(TypePulse))
	if n != 2 {
		t.Errorf("expected 2 entries replayed, got %d", n)
	}
	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Errorf("expected replayed payloads [1 3], got %v", got)
	}

	// Replay must not re-record into history.
	if entries := em.History(); len(entries) != 3 {
		t.Errorf("expected history unchanged after replay, got %d entries", len(entries))
	}
}

func TestEmitter_ReplayLimit(t *testing.T) {
	em := NewEmitter(WithHistory(10))
	for i := 0; i < 5; i++ {
		em.Emit(TypePulse, i)
	}

	var got []any
	em.On(TypePulse, func(payload any) { got = append(got, payload) })

	n := em.Replay(ReplayLimit(2))
	if n != 2 {
		t.Errorf("expected 2 entries replayed, got %d", n)
	}
	// Limit keeps the newest entries.
	if len(got) != 2 || got[0] != 3 || got[1] != 4 {
		t.Errorf("expected replayed payloads [3 4], got %v", got)
	}
}

func TestEmitter_ReplayWithoutHistory(t *testing.T) {
	var faults []any
	em := NewEmitter(WithFaultHandler(func(_ Type, recovered any) {
		faults = append(faults, recovered)
	}))

	called := false
	em.On(TypePulse, func(any) { called = true })

	n := em.Replay()
	if n != 0 {
		t.Errorf("expected replay no-op without history, got %d", n)
	}
	if called {
		t.Error("expected no listeners invoked by disabled replay")
	}
	if len(faults) != 1 {
		t.Fatalf("expected 1 warning reported, got %d", len(faults))
	}
	if err, ok := faults[0].(error); !ok || !errors.Is(err, ErrHistoryDisabled) {
		t.Errorf("expected ErrHistoryDisabled warning, got %v", faults[0])
	}
}

func TestEmitter_ClearHistory(t *testing.T) {
	em := NewEmitter(WithHistory(10))
	em.Emit(TypePulse, 1)
	em.ClearHistory()

	if entries := em.History(); entries != nil {
		t.Errorf("expected empty history after clear, got %d entries", len(entries))
	}
}
