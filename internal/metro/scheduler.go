package metro

import (
	"sync"
	"time"
)

// PulseListener receives pulses forwarded through the scheduler.
type PulseListener func(Pulse)

// Scheduler drives a callback at a fixed interval. It is the timing
// substrate for the Metronome but carries no musical state of its own.
//
// Lifecycle operations are tolerant: stopping a stopped scheduler,
// pausing while not running, or resuming without a prior pause are
// safe no-ops. After Dispose every operation is a no-op.
type Scheduler struct {
	mu        sync.Mutex
	ticker    *time.Ticker
	done      chan struct{}
	running   bool
	paused    bool
	disposed  bool
	interval  time.Duration
	callback  func()
	listeners []pulseListener
	nextID    uint64
}

// pulseListener tracks a listener by ID; Go functions are not
// comparable, so removal goes through the ID.
type pulseListener struct {
	id uint64
	fn PulseListener
}

// NewScheduler creates an idle scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Start begins firing callback every interval. A running scheduler is
// restarted with the new interval and callback.
func (s *Scheduler) Start(interval time.Duration, callback func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed {
		return ErrDisposed
	}
	if callback == nil {
		return ErrNilCallback
	}
	if interval <= 0 {
		return ErrInvalidInterval
	}

	s.stopLocked()
	s.interval = interval
	s.callback = callback
	s.startLocked()
	return nil
}

// startLocked spins up the ticker goroutine. Caller holds s.mu.
func (s *Scheduler) startLocked() {
	ticker := time.NewTicker(s.interval)
	done := make(chan struct{})
	callback := s.callback

	s.ticker = ticker
	s.done = done
	s.running = true
	s.paused = false

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				// A tick already queued when done closes may still
				// deliver once; cancellation is best-effort.
				callback()
			}
		}
	}()
}

// stopLocked halts the ticker goroutine. Caller holds s.mu.
func (s *Scheduler) stopLocked() {
	if s.done != nil {
		close(s.done)
		s.done = nil
	}
	s.ticker = nil
	s.running = false
	s.paused = false
}

// Stop halts the periodic driver. Stopping an idle scheduler is a
// no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

// Pause suspends the driver without clearing its configuration, so a
// later Resume can pick up where Start left off. Pausing an idle or
// already-paused scheduler is a no-op.
func (s *Scheduler) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running || s.paused {
		return
	}
	if s.done != nil {
		close(s.done)
		s.done = nil
	}
	s.ticker = nil
	s.running = false
	s.paused = true
}

// Resume restarts the driver after Pause with a fresh interval timer.
// There is no drift compensation for time spent paused. A non-zero
// interval or non-nil callback overrides the paused configuration.
// Resuming without a prior Pause is a no-op.
func (s *Scheduler) Resume(interval time.Duration, callback func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed || !s.paused {
		return
	}
	if interval > 0 {
		s.interval = interval
	}
	if callback != nil {
		s.callback = callback
	}
	s.startLocked()
}

// Fire synchronously invokes the callback once, independent of the
// timer. Used for deterministic, scheduler-free ticking in tests and
// by Metronome.ManualPulse.
func (s *Scheduler) Fire() {
	s.mu.Lock()
	callback := s.callback
	disposed := s.disposed
	s.mu.Unlock()

	if disposed || callback == nil {
		return
	}
	callback()
}

// OnPulse registers a listener for pulses forwarded via EmitPulse.
// The returned cancel function removes the listener.
func (s *Scheduler) OnPulse(fn PulseListener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed || fn == nil {
		return func() {}
	}
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, pulseListener{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// EmitPulse forwards a pulse to all registered listeners, in
// registration order, over a snapshot of the listener set.
func (s *Scheduler) EmitPulse(p Pulse) {
	s.mu.Lock()
	snapshot := make([]pulseListener, len(s.listeners))
	copy(snapshot, s.listeners)
	s.mu.Unlock()

	for _, l := range snapshot {
		l.fn(p)
	}
}

// IsRunning reports whether the periodic driver is active.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// IsPaused reports whether the driver is paused.
func (s *Scheduler) IsPaused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

// Dispose stops the scheduler and clears its listeners. Dispose is
// idempotent; all operations on a disposed scheduler are no-ops.
func (s *Scheduler) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed {
		return
	}
	s.stopLocked()
	s.listeners = nil
	s.callback = nil
	s.disposed = true
}
