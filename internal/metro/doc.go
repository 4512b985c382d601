// Package metro provides the rhythmic pulse engine: a low-level
// periodic Scheduler and the Metronome automaton built on top of it.
//
// The Scheduler drives a callback at a fixed interval and supports
// start/stop/pause/resume plus manual firing for deterministic tests.
// Pause suspends the driver without touching any counters; Resume
// starts a fresh interval timer with no drift compensation against
// elapsed wall-clock time — a documented approximation, not a bug to
// fix silently. Stopping is best-effort: a tick already queued by the
// timer may still fire once after Stop returns.
//
// The Metronome turns a rhythm.Rhythm into a stream of immutable Pulse
// snapshots, counting beats and measures, honoring custom beat
// groupings for irregular meters, and emitting downbeat and measure
// events through its typed emitter.
package metro
