package metro

import (
	"testing"

	"github.com/dshills/cadence/internal/event"
	"github.com/dshills/cadence/internal/rhythm"
)

func mustRhythm(t *testing.T, bpm float64, upper, lower, subdivs int, opts ...rhythm.Option) rhythm.Rhythm {
	t.Helper()
	r, err := rhythm.New(bpm, rhythm.TimeSignature{Upper: upper, Lower: lower}, subdivs, opts...)
	if err != nil {
		t.Fatalf("rhythm.New() failed: %v", err)
	}
	return r
}

func collectPulses(t *testing.T, m *Metronome) *[]Pulse {
	t.Helper()
	pulses := &[]Pulse{}
	_, err := m.On(event.TypePulse, event.As(func(p Pulse) {
		*pulses = append(*pulses, p)
	}))
	if err != nil {
		t.Fatalf("On() failed: %v", err)
	}
	return pulses
}

func TestMetronome_FourFourMeasureRollover(t *testing.T) {
	m := NewMetronome(mustRhythm(t, 120, 4, 4, 1))
	defer m.Dispose()

	pulses := collectPulses(t, m)

	var measures []any
	m.On(event.TypeMeasure, func(payload any) { measures = append(measures, payload) })

	m.ManualPulse(4)

	if len(*pulses) != 4 {
		t.Fatalf("expected 4 pulses, got %d", len(*pulses))
	}
	for i, p := range *pulses {
		if p.Beat != i+1 {
			t.Errorf("pulse %d: expected beat %d, got %d", i+1, i+1, p.Beat)
		}
		if p.Measure != 1 {
			t.Errorf("pulse %d: expected measure 1, got %d", i+1, p.Measure)
		}
	}

	if len(measures) != 1 {
		t.Fatalf("expected exactly 1 measure event, got %d", len(measures))
	}
	if measures[0] != 1 {
		t.Errorf("expected measure event to report completed measure 1, got %v", measures[0])
	}

	// Beat returns to 1 for the next measure.
	m.ManualPulse(1)
	last := (*pulses)[len(*pulses)-1]
	if last.Beat != 1 || last.Measure != 2 {
		t.Errorf("expected beat 1 measure 2 after rollover, got beat %d measure %d", last.Beat, last.Measure)
	}
}

func TestMetronome_SubdivisionsAndDownbeats(t *testing.T) {
	// 4/4 with 2 subdivisions: 8 pulses per measure, downbeats on
	// odd pulses.
	m := NewMetronome(mustRhythm(t, 120, 4, 4, 2))
	defer m.Dispose()

	pulses := collectPulses(t, m)

	downbeats := 0
	m.On(event.TypeDownbeat, func(any) { downbeats++ })

	m.ManualPulse(8)

	if len(*pulses) != 8 {
		t.Fatalf("expected 8 pulses, got %d", len(*pulses))
	}
	for i, p := range *pulses {
		wantDown := i%2 == 0
		if p.IsDownBeat != wantDown {
			t.Errorf("pulse %d: expected IsDownBeat=%v", i+1, wantDown)
		}
		if p.PulsesPerMeasure != 8 {
			t.Errorf("pulse %d: expected 8 pulses per measure, got %d", i+1, p.PulsesPerMeasure)
		}
	}
	if downbeats != 4 {
		t.Errorf("expected 4 downbeat events, got %d", downbeats)
	}

	// Completion fraction reaches 1 on the final pulse.
	if got := (*pulses)[7].CompletionFraction; got != 1 {
		t.Errorf("expected completion fraction 1 on last pulse, got %v", got)
	}
}

func TestMetronome_CustomGroupingCycle(t *testing.T) {
	// 7/8 grouped 3+2+2: beats cycle 1..3, 1..2, 1..2.
	m := NewMetronome(mustRhythm(t, 120, 7, 8, 1, rhythm.WithCustomGrouping(3, 2, 2)))
	defer m.Dispose()

	pulses := collectPulses(t, m)

	m.ManualPulse(14) // two full measures

	wantBeats := []int{1, 2, 3, 1, 2, 1, 2, 1, 2, 3, 1, 2, 1, 2}
	if len(*pulses) != len(wantBeats) {
		t.Fatalf("expected %d pulses, got %d", len(wantBeats), len(*pulses))
	}
	for i, p := range *pulses {
		if p.Beat != wantBeats[i] {
			t.Errorf("pulse %d: expected beat %d, got %d", i+1, wantBeats[i], p.Beat)
		}
		if p.PulsesPerMeasure != 7 {
			t.Errorf("pulse %d: expected 7 pulses per measure, got %d", i+1, p.PulsesPerMeasure)
		}
	}

	// Group index wrapped back to 0 for the second measure.
	if (*pulses)[7].Measure != 2 {
		t.Errorf("expected measure 2 at pulse 8, got %d", (*pulses)[7].Measure)
	}
}

func TestMetronome_CompoundTwelveEight(t *testing.T) {
	// 12/8 with 3 subdivisions: beat resets and measure advances
	// every 12 pulses regardless of grouping.
	m := NewMetronome(mustRhythm(t, 120, 12, 8, 3))
	defer m.Dispose()

	pulses := collectPulses(t, m)

	measures := 0
	m.On(event.TypeMeasure, func(any) { measures++ })

	m.ManualPulse(36)

	if measures != 3 {
		t.Errorf("expected 3 measure events over 36 pulses, got %d", measures)
	}

	// Beats cycle 1..4 within each 12-pulse span.
	for i, p := range *pulses {
		wantBeat := (i%12)/3 + 1
		if p.Beat != wantBeat {
			t.Fatalf("pulse %d: expected beat %d, got %d", i+1, wantBeat, p.Beat)
		}
	}
	if (*pulses)[12].Measure != 2 {
		t.Errorf("expected measure 2 at pulse 13, got %d", (*pulses)[12].Measure)
	}
}

func TestMetronome_StartResetsCounters(t *testing.T) {
	m := NewMetronome(mustRhythm(t, 120, 4, 4, 1))
	defer m.Dispose()

	m.ManualPulse(3)
	if pulse, _, _, total := positionOf(m); pulse != 4 || total != 3 {
		t.Fatalf("expected pulse 4 total 3 before Start, got pulse %d total %d", pulse, total)
	}

	started := false
	m.On(event.TypeStart, func(any) { started = true })

	if err := m.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	defer m.Stop()

	pulse, beat, measure, total := positionOf(m)
	if pulse != 1 || beat != 1 || measure != 1 || total != 0 {
		t.Errorf("expected counters reset on Start, got p%d b%d m%d t%d", pulse, beat, measure, total)
	}
	if !started {
		t.Error("expected start event")
	}
	if !m.IsRunning() {
		t.Error("expected metronome running after Start")
	}
}

func positionOf(m *Metronome) (pulse, beat, measure, total int) {
	return m.Position()
}

func TestMetronome_PauseResumePreservesCounters(t *testing.T) {
	m := NewMetronome(mustRhythm(t, 120, 4, 4, 1))
	defer m.Dispose()

	if err := m.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	m.Scheduler().Stop() // silence the timer; drive manually
	m.ManualPulse(2)

	m.Pause()
	_, _, _, pausedTotal := m.Position()

	m.Resume()
	defer m.Stop()
	_, _, _, resumedTotal := m.Position()

	if pausedTotal != 2 || resumedTotal != 2 {
		t.Errorf("expected counters preserved across pause/resume, got %d/%d", pausedTotal, resumedTotal)
	}
}

func TestMetronome_ResumeWithoutPause(t *testing.T) {
	m := NewMetronome(mustRhythm(t, 120, 4, 4, 1))
	defer m.Dispose()

	// Tolerant no-op.
	m.Resume()
	if m.IsRunning() {
		t.Error("expected Resume without Pause to be a no-op")
	}
}

func TestMetronome_UpdateEvents(t *testing.T) {
	m := NewMetronome(mustRhythm(t, 120, 4, 4, 1))
	defer m.Dispose()

	var updated, tempo, signature int
	m.On(event.TypeUpdated, func(any) { updated++ })
	m.On(event.TypeTempoChange, func(any) { tempo++ })
	m.On(event.TypeTimeSignatureChange, func(any) { signature++ })

	// Same tempo and signature: only updated fires.
	if err := m.Update(mustRhythm(t, 120, 4, 4, 2)); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if updated != 1 || tempo != 0 || signature != 0 {
		t.Errorf("expected updated only, got updated=%d tempo=%d signature=%d", updated, tempo, signature)
	}

	// New tempo and signature: all three fire.
	if err := m.Update(mustRhythm(t, 90, 7, 8, 1)); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if updated != 2 || tempo != 1 || signature != 1 {
		t.Errorf("expected all events, got updated=%d tempo=%d signature=%d", updated, tempo, signature)
	}

	m.Stop()
}

func TestMetronome_UpdateResetsCounters(t *testing.T) {
	m := NewMetronome(mustRhythm(t, 120, 4, 4, 1))
	defer m.Dispose()

	m.ManualPulse(3)
	if err := m.Update(mustRhythm(t, 90, 3, 4, 1)); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	m.Stop()

	pulse, beat, measure, total := m.Position()
	if pulse != 1 || beat != 1 || measure != 1 || total != 0 {
		t.Errorf("expected counters reset on Update, got p%d b%d m%d t%d", pulse, beat, measure, total)
	}
}

func TestMetronome_SchedulerPulseForwarding(t *testing.T) {
	m := NewMetronome(mustRhythm(t, 120, 4, 4, 1))
	defer m.Dispose()

	var got []Pulse
	m.Scheduler().OnPulse(func(p Pulse) { got = append(got, p) })

	m.ManualPulse(2)

	if len(got) != 2 {
		t.Fatalf("expected 2 pulses via scheduler listener, got %d", len(got))
	}
	if got[0].Pulse != 1 || got[1].Pulse != 2 {
		t.Errorf("unexpected pulse sequence: %v", got)
	}
}
