package event

import (
	"errors"
	"testing"
)

func TestNewEmitter(t *testing.T) {
	em := NewEmitter()
	if em == nil {
		t.Fatal("NewEmitter() returned nil")
	}
}

func TestEmitter_OnEmit(t *testing.T) {
	em := NewEmitter()

	var got []any
	_, err := em.On(TypePulse, func(payload any) {
		got = append(got, payload)
	})
	if err != nil {
		t.Fatalf("On() failed: %v", err)
	}

	count := em.Emit(TypePulse, 42)
	if count != 1 {
		t.Errorf("expected 1 listener invoked, got %d", count)
	}
	if len(got) != 1 || got[0] != 42 {
		t.Errorf("expected payload 42, got %v", got)
	}
}

func TestEmitter_OnNilListener(t *testing.T) {
	em := NewEmitter()
	_, err := em.On(TypePulse, nil)
	if !errors.Is(err, ErrNilListener) {
		t.Errorf("expected ErrNilListener, got %v", err)
	}
}

func TestEmitter_EmitNoListeners(t *testing.T) {
	em := NewEmitter()
	if count := em.Emit(TypeMeasure, nil); count != 0 {
		t.Errorf("expected 0 listeners invoked, got %d", count)
	}
}

func TestEmitter_EmitOrder(t *testing.T) {
	em := NewEmitter()

	var order []int
	for i := 0; i < 4; i++ {
		i := i
		em.On(TypePulse, func(any) { order = append(order, i) })
	}

	em.Emit(TypePulse, nil)

	for i, v := range order {
		if v != i {
			t.Fatalf("expected registration-order dispatch, got %v", order)
		}
	}
}

func TestEmitter_Cancel(t *testing.T) {
	em := NewEmitter()

	calls := 0
	cancel, err := em.On(TypePulse, func(any) { calls++ })
	if err != nil {
		t.Fatalf("On() failed: %v", err)
	}

	if !cancel() {
		t.Error("expected first cancel to report removal")
	}
	if cancel() {
		t.Error("expected second cancel to report no removal")
	}

	em.Emit(TypePulse, nil)
	if calls != 0 {
		t.Errorf("cancelled listener invoked %d times", calls)
	}
}

func TestEmitter_Once(t *testing.T) {
	em := NewEmitter()

	calls := 0
	_, err := em.Once(TypeComplete, func(any) { calls++ })
	if err != nil {
		t.Fatalf("Once() failed: %v", err)
	}

	em.Emit(TypeComplete, nil)
	em.Emit(TypeComplete, nil)

	if calls != 1 {
		t.Errorf("expected once listener to fire exactly once, fired %d times", calls)
	}
}

func TestEmitter_OnceRemovedAfterPanic(t *testing.T) {
	em := NewEmitter(WithFaultHandler(func(Type, any) {}))

	calls := 0
	em.Once(TypeComplete, func(any) {
		calls++
		panic("boom")
	})

	em.Emit(TypeComplete, nil)
	em.Emit(TypeComplete, nil)

	if calls != 1 {
		t.Errorf("expected panicking once listener to be removed, fired %d times", calls)
	}
}

func TestEmitter_PanicIsolation(t *testing.T) {
	var faults []any
	em := NewEmitter(WithFaultHandler(func(_ Type, recovered any) {
		faults = append(faults, recovered)
	}))

	after := 0
	em.On(TypePulse, func(any) { panic("first") })
	em.On(TypePulse, func(any) { after++ })

	count := em.Emit(TypePulse, nil)

	if count != 2 {
		t.Errorf("expected both listeners invoked, got %d", count)
	}
	if after != 1 {
		t.Error("expected listener after the panicking one to still run")
	}
	if len(faults) != 1 {
		t.Fatalf("expected 1 fault report, got %d", len(faults))
	}
	var lp *ListenerPanic
	if err, ok := faults[0].(error); !ok || !errors.As(err, &lp) {
		t.Fatalf("expected *ListenerPanic fault, got %T", faults[0])
	}
	if lp.Value != "first" {
		t.Errorf("expected panic value 'first', got %v", lp.Value)
	}
}

func TestEmitter_MutationDuringEmit(t *testing.T) {
	em := NewEmitter()

	lateCalls := 0
	em.On(TypePulse, func(any) {
		em.On(TypePulse, func(any) { lateCalls++ })
	})

	em.Emit(TypePulse, nil)
	if lateCalls != 0 {
		t.Error("listener registered during Emit ran in the same pass")
	}

	em.Emit(TypePulse, nil)
	if lateCalls != 1 {
		t.Errorf("expected late listener to run on the next pass, ran %d times", lateCalls)
	}
}

func TestEmitter_RemoveAllListeners(t *testing.T) {
	em := NewEmitter()
	em.On(TypePulse, func(any) {})
	em.On(TypeMeasure, func(any) {})

	em.RemoveAllListeners(TypePulse)
	if em.ListenerCount(TypePulse) != 0 {
		t.Error("expected pulse listeners removed")
	}
	if em.ListenerCount(TypeMeasure) != 1 {
		t.Error("expected measure listener preserved")
	}

	em.RemoveAllListeners()
	if em.ListenerCount(TypeMeasure) != 0 {
		t.Error("expected all listeners removed")
	}
}

func TestType_String(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{TypePlay, "play"},
		{TypeTimeUpdate, "timeUpdate"},
		{TypeLoopComplete, "loopComplete"},
		{TypeDownbeat, "downbeat"},
		{TypeTempoChange, "tempo:change"},
		{TypeTimeSignatureChange, "timeSignature:change"},
		{Type(-1), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("Type(%d).String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestAs_TypeMismatchSkipped(t *testing.T) {
	em := NewEmitter()

	var got []int
	em.On(TypePulse, As(func(v int) { got = append(got, v) }))

	em.Emit(TypePulse, 7)
	em.Emit(TypePulse, "not an int")

	if len(got) != 1 || got[0] != 7 {
		t.Errorf("expected only the int payload delivered, got %v", got)
	}
}
