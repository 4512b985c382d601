package metro

import (
	"github.com/dshills/cadence/internal/event"
	"github.com/dshills/cadence/internal/rhythm"
)

// Metronome is the beat/measure/subdivision automaton. It counts
// pulses delivered by its Scheduler (or by ManualPulse) against its
// current rhythm, emitting an immutable Pulse snapshot per tick plus
// downbeat and measure events.
//
// Counters reset on Start, Stop, and Update; Pause and Resume preserve
// them so playback continues where it left off.
type Metronome struct {
	rhythm    rhythm.Rhythm
	scheduler *Scheduler
	emitter   *event.Emitter

	// Counters. pulse and beat are 1-based positions within the
	// current measure and group; measure counts from 1.
	pulse       int
	measure     int
	beat        int
	groupIndex  int
	totalPulses int

	running bool
	paused  bool
}

// MetronomeOption configures a Metronome at construction.
type MetronomeOption func(*metronomeConfig)

type metronomeConfig struct {
	scheduler   *Scheduler
	emitterOpts []event.Option
}

// WithScheduler supplies a custom scheduler (shared or pre-configured).
func WithScheduler(s *Scheduler) MetronomeOption {
	return func(c *metronomeConfig) {
		if s != nil {
			c.scheduler = s
		}
	}
}

// WithEmitterOptions forwards options to the metronome's event
// emitter (fault handler, history).
func WithEmitterOptions(opts ...event.Option) MetronomeOption {
	return func(c *metronomeConfig) {
		c.emitterOpts = append(c.emitterOpts, opts...)
	}
}

// NewMetronome creates a metronome for the given rhythm. The rhythm is
// assumed validated (constructed via rhythm.New).
func NewMetronome(r rhythm.Rhythm, opts ...MetronomeOption) *Metronome {
	var cfg metronomeConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.scheduler == nil {
		cfg.scheduler = NewScheduler()
	}

	m := &Metronome{
		rhythm:    r,
		scheduler: cfg.scheduler,
		emitter:   event.NewEmitter(cfg.emitterOpts...),
	}
	m.resetCounters()
	return m
}

// Rhythm returns the current rhythm configuration.
func (m *Metronome) Rhythm() rhythm.Rhythm {
	return m.rhythm
}

// Scheduler returns the underlying scheduler, for pulse listeners and
// manual driving.
func (m *Metronome) Scheduler() *Scheduler {
	return m.scheduler
}

// On registers a listener for a metronome event type.
func (m *Metronome) On(t event.Type, fn event.Listener) (func() bool, error) {
	return m.emitter.On(t, fn)
}

// Once registers a one-shot listener for a metronome event type.
func (m *Metronome) Once(t event.Type, fn event.Listener) (func() bool, error) {
	return m.emitter.Once(t, fn)
}

// Emitter exposes the metronome's event emitter for history and
// replay.
func (m *Metronome) Emitter() *event.Emitter {
	return m.emitter
}

func (m *Metronome) resetCounters() {
	m.pulse = 1
	m.measure = 1
	m.beat = 1
	m.groupIndex = 0
	m.totalPulses = 0
}

// Position returns the current counters: pulse and beat within the
// measure, the measure number, and the total pulse count since the
// last reset.
func (m *Metronome) Position() (pulse, beat, measure, total int) {
	return m.pulse, m.beat, m.measure, m.totalPulses
}

// IsRunning reports whether the metronome is started and not paused.
func (m *Metronome) IsRunning() bool {
	return m.running && !m.paused
}

// Start resets all counters and begins ticking at the rhythm's
// interval.
func (m *Metronome) Start() error {
	m.resetCounters()
	if err := m.scheduler.Start(m.rhythm.Interval(), m.Tick); err != nil {
		return err
	}
	m.running = true
	m.paused = false
	m.emitter.Emit(event.TypeStart, m.rhythm)
	return nil
}

// Stop halts ticking and resets all counters.
func (m *Metronome) Stop() {
	m.scheduler.Stop()
	m.resetCounters()
	m.running = false
	m.paused = false
	m.emitter.Emit(event.TypeStop, m.rhythm)
}

// Pause suspends ticking, preserving all counters.
func (m *Metronome) Pause() {
	if !m.running || m.paused {
		return
	}
	m.scheduler.Pause()
	m.paused = true
	m.emitter.Emit(event.TypePause, nil)
}

// Resume restarts ticking after Pause, preserving counters. A fresh
// interval timer starts; no drift compensation is applied. Resuming
// while not paused is a no-op.
func (m *Metronome) Resume() {
	if !m.paused {
		return
	}
	m.scheduler.Resume(m.rhythm.Interval(), m.Tick)
	m.paused = false
	m.emitter.Emit(event.TypePlay, nil)
}

// Update replaces the rhythm, resets all counters, and restarts the
// scheduler at the new tempo. It always emits an updated event, plus
// tempo and time-signature change events when those fields differ.
func (m *Metronome) Update(r rhythm.Rhythm) error {
	prev := m.rhythm
	m.rhythm = r
	m.resetCounters()

	if err := m.scheduler.Start(r.Interval(), m.Tick); err != nil {
		return err
	}
	m.running = true
	m.paused = false

	m.emitter.Emit(event.TypeUpdated, r)
	if prev.BPM != r.BPM {
		m.emitter.Emit(event.TypeTempoChange, r.BPM)
	}
	if prev.TimeSignature != r.TimeSignature {
		m.emitter.Emit(event.TypeTimeSignatureChange, r.TimeSignature)
	}
	return nil
}

// ManualPulse synchronously fires n ticks without a live scheduler,
// for deterministic, timer-free operation.
func (m *Metronome) ManualPulse(n int) {
	for i := 0; i < n; i++ {
		m.Tick()
	}
}

// Tick advances the automaton by one pulse.
func (m *Metronome) Tick() {
	r := m.rhythm
	ppm := r.PulsesPerMeasure()
	grouped := len(r.CustomGrouping) > 0

	pulsesInGroup := r.TimeSignature.Upper
	if grouped {
		pulsesInGroup = r.CustomGrouping[m.groupIndex]
	}

	isDownBeat := (m.pulse-1)%r.SubDivisions == 0

	snapshot := Pulse{
		Pulse:              m.pulse,
		PulsesPerMeasure:   ppm,
		SubDivs:            r.SubDivisions,
		CompletionFraction: float64(m.pulse) / float64(ppm),
		Measure:            m.measure,
		Beat:               m.beat,
		IsDownBeat:         isDownBeat,
	}
	m.emitter.Emit(event.TypePulse, snapshot)
	m.scheduler.EmitPulse(snapshot)
	if isDownBeat {
		m.emitter.Emit(event.TypeDownbeat, snapshot)
	}

	m.totalPulses++
	m.pulse++

	if m.pulse > ppm {
		completed := m.measure
		m.pulse = 1
		m.beat = 1
		m.groupIndex = 0
		m.measure++
		m.emitter.Emit(event.TypeMeasure, completed)
		return
	}

	if (m.pulse-1)%r.SubDivisions == 0 {
		m.beat++

		// Compound 12/x meters with triplet subdivisions count four
		// dotted beats per measure: every 12 pulses the beat resets
		// and the measure advances regardless of grouping.
		if r.TimeSignature.Upper == 12 && r.SubDivisions == 3 {
			if (m.pulse-1)%12 == 0 {
				completed := m.measure
				m.beat = 1
				m.measure++
				m.emitter.Emit(event.TypeMeasure, completed)
			}
			return
		}

		if m.beat > pulsesInGroup {
			m.beat = 1
			if grouped {
				m.groupIndex = (m.groupIndex + 1) % len(r.CustomGrouping)
			}
		}
	}
}

// Dispose stops the metronome, disposes its scheduler, and clears all
// listeners. Dispose is idempotent.
func (m *Metronome) Dispose() {
	m.scheduler.Dispose()
	m.emitter.RemoveAllListeners()
	m.running = false
	m.paused = false
}
