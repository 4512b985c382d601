package metro

import "fmt"

// Pulse is an immutable per-tick snapshot of the metronome's position
// within the current measure. The engine does not retain emitted
// pulses; consumers own the values they receive.
type Pulse struct {
	// Pulse is the 1-based tick index within the measure.
	Pulse int

	// PulsesPerMeasure is the measure length in ticks.
	PulsesPerMeasure int

	// SubDivs is the rhythm's pulses-per-beat count.
	SubDivs int

	// CompletionFraction is Pulse / PulsesPerMeasure.
	CompletionFraction float64

	// Measure is the 1-based measure counter.
	Measure int

	// Beat is the 1-based beat within the current group.
	Beat int

	// IsDownBeat marks ticks that begin a subdivision group.
	IsDownBeat bool
}

// String returns a compact position description, e.g. "m2 b3 p5/8".
func (p Pulse) String() string {
	return fmt.Sprintf("m%d b%d p%d/%d", p.Measure, p.Beat, p.Pulse, p.PulsesPerMeasure)
}
