package event

// Type identifies an event variant. Using enum variants instead of
// string keys keeps dispatch allocation-free and makes unknown events
// a compile error rather than a silent miss.
type Type int

const (
	// TypePlay fires when a timeline starts playing.
	TypePlay Type = iota

	// TypePause fires when a timeline is paused.
	TypePause

	// TypeSeek fires when a timeline's time is set explicitly.
	TypeSeek

	// TypeTimeUpdate fires when a timeline's current time changes
	// during an update cascade.
	TypeTimeUpdate

	// TypeComplete fires once when a non-looping timeline reaches its
	// duration or a finite-loop timeline exhausts its repeats.
	TypeComplete

	// TypeLoopComplete fires each time a looping timeline wraps past
	// its duration.
	TypeLoopComplete

	// TypeStart fires when a metronome starts.
	TypeStart

	// TypeStop fires when a metronome stops.
	TypeStop

	// TypePulse fires on every metronome tick.
	TypePulse

	// TypeDownbeat fires on ticks that begin a subdivision group.
	TypeDownbeat

	// TypeMeasure fires when a measure completes.
	TypeMeasure

	// TypeUpdated fires when a metronome's rhythm is replaced.
	TypeUpdated

	// TypeTempoChange fires when a rhythm update changes the tempo.
	TypeTempoChange

	// TypeTimeSignatureChange fires when a rhythm update changes the
	// time signature.
	TypeTimeSignatureChange
)

// String returns a human-readable event type name.
func (t Type) String() string {
	switch t {
	case TypePlay:
		return "play"
	case TypePause:
		return "pause"
	case TypeSeek:
		return "seek"
	case TypeTimeUpdate:
		return "timeUpdate"
	case TypeComplete:
		return "complete"
	case TypeLoopComplete:
		return "loopComplete"
	case TypeStart:
		return "start"
	case TypeStop:
		return "stop"
	case TypePulse:
		return "pulse"
	case TypeDownbeat:
		return "downbeat"
	case TypeMeasure:
		return "measure"
	case TypeUpdated:
		return "updated"
	case TypeTempoChange:
		return "tempo:change"
	case TypeTimeSignatureChange:
		return "timeSignature:change"
	default:
		return "unknown"
	}
}

// Listener receives an event payload.
// The payload is type-erased; listeners type-assert as needed.
type Listener func(payload any)

// FaultHandler is called when a listener panics during Emit, or when a
// warned no-op occurs (replay on an emitter without history).
type FaultHandler func(t Type, recovered any)

// As adapts a typed callback to a Listener. Payloads of a different
// type are skipped silently.
func As[T any](fn func(T)) Listener {
	return func(payload any) {
		if v, ok := payload.(T); ok {
			fn(v)
		}
	}
}
