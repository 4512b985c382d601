package rhythm

import (
	"fmt"
	"time"
)

// TimeSignature is a musical meter: Upper beats per measure over a
// Lower note value (4 = quarter note, 8 = eighth note).
type TimeSignature struct {
	Upper int
	Lower int
}

// String returns the conventional upper/lower form, e.g. "7/8".
func (ts TimeSignature) String() string {
	return fmt.Sprintf("%d/%d", ts.Upper, ts.Lower)
}

// Rhythm is a validated tempo and meter configuration. Construct with
// New; a Rhythm obtained from New is always internally consistent.
type Rhythm struct {
	// BPM is the tempo in beats per minute.
	BPM float64

	// TimeSignature is the meter.
	TimeSignature TimeSignature

	// SubDivisions is the number of pulses per beat.
	SubDivisions int

	// CustomGrouping optionally partitions the measure into cyclic
	// groups of beats (e.g. [3,2,2] for 7/8). Empty means no grouping.
	CustomGrouping []int

	// VariableSubDivisions marks rhythms whose subdivision density is
	// meant to vary per group; carried as configuration, interpreted
	// by the consumer.
	VariableSubDivisions bool
}

// Option configures optional Rhythm fields at construction.
type Option func(*Rhythm)

// WithCustomGrouping sets a cyclic beat grouping.
func WithCustomGrouping(groups ...int) Option {
	return func(r *Rhythm) {
		r.CustomGrouping = groups
	}
}

// WithVariableSubDivisions marks the rhythm's subdivisions as variable.
func WithVariableSubDivisions() Option {
	return func(r *Rhythm) {
		r.VariableSubDivisions = true
	}
}

// New creates a validated Rhythm.
func New(bpm float64, ts TimeSignature, subDivisions int, opts ...Option) (Rhythm, error) {
	r := Rhythm{
		BPM:           bpm,
		TimeSignature: ts,
		SubDivisions:  subDivisions,
	}
	for _, opt := range opts {
		opt(&r)
	}

	if err := r.validate(); err != nil {
		return Rhythm{}, err
	}
	return r, nil
}

func (r Rhythm) validate() error {
	if r.BPM <= 0 {
		return fmt.Errorf("bpm %v: %w", r.BPM, ErrInvalidBPM)
	}
	if r.TimeSignature.Upper < 1 || r.TimeSignature.Lower < 1 {
		return fmt.Errorf("time signature %s: %w", r.TimeSignature, ErrInvalidTimeSignature)
	}
	if r.SubDivisions < 1 {
		return fmt.Errorf("subdivisions %d: %w", r.SubDivisions, ErrInvalidSubDivisions)
	}
	for _, g := range r.CustomGrouping {
		if g < 1 {
			return fmt.Errorf("group size %d: %w", g, ErrInvalidGrouping)
		}
	}
	return nil
}

// PulsesPerMeasure derives the number of scheduler ticks in one
// measure: the sum of the custom grouping when present, otherwise
// upper numeral times subdivisions.
func (r Rhythm) PulsesPerMeasure() int {
	if len(r.CustomGrouping) > 0 {
		sum := 0
		for _, g := range r.CustomGrouping {
			sum += g
		}
		return sum
	}
	return r.TimeSignature.Upper * r.SubDivisions
}

// Interval is the scheduler tick period:
// (60000 / bpm / subDivisions) * (4 / lower) milliseconds.
// The lower-numeral factor scales the beat length relative to a
// quarter note.
func (r Rhythm) Interval() time.Duration {
	ms := (60000.0 / r.BPM / float64(r.SubDivisions)) * (4.0 / float64(r.TimeSignature.Lower))
	return time.Duration(ms * float64(time.Millisecond))
}

// Equal reports whether two rhythms share the same configuration.
func (r Rhythm) Equal(other Rhythm) bool {
	if r.BPM != other.BPM ||
		r.TimeSignature != other.TimeSignature ||
		r.SubDivisions != other.SubDivisions ||
		r.VariableSubDivisions != other.VariableSubDivisions ||
		len(r.CustomGrouping) != len(other.CustomGrouping) {
		return false
	}
	for i, g := range r.CustomGrouping {
		if other.CustomGrouping[i] != g {
			return false
		}
	}
	return true
}

// String returns a compact description, e.g. "120bpm 4/4 x2".
func (r Rhythm) String() string {
	return fmt.Sprintf("%gbpm %s x%d", r.BPM, r.TimeSignature, r.SubDivisions)
}
