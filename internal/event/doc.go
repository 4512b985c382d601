// Package event provides a typed, per-instance event emitter.
//
// Unlike a global bus, each Emitter belongs to one owner (a timeline, a
// metronome) and dispatches its owner's events to listeners registered
// per event type. Event types are enum variants, not runtime strings,
// so a mistyped event name is a compile error.
//
// Delivery is synchronous and at-least-once: Emit invokes every
// listener registered for the type before returning. A listener that
// panics is isolated — the panic is recovered, reported through the
// emitter's fault handler, and remaining listeners still run. Once
// listeners are removed after their first invocation whether or not
// they panicked.
//
// Listener sets are snapshotted before dispatch: registering or
// removing listeners from inside a listener affects only subsequent
// Emit calls, never the one in progress.
//
// An Emitter can optionally record a bounded history of emitted events
// for later replay:
//
//	em := event.NewEmitter(event.WithHistory(128))
//	em.On(event.TypePulse, func(p any) { ... })
//	em.Emit(event.TypePulse, pulse)
//	em.Replay(event.ReplayTypes(event.TypePulse))
package event
