package rhythm

import "errors"

// Sentinel errors for rhythm validation.
var (
	// ErrInvalidBPM is returned for a non-positive tempo.
	ErrInvalidBPM = errors.New("bpm must be greater than zero")

	// ErrInvalidTimeSignature is returned when either numeral of the
	// time signature is less than one.
	ErrInvalidTimeSignature = errors.New("time signature numerals must be at least one")

	// ErrInvalidSubDivisions is returned for a subdivision count less
	// than one.
	ErrInvalidSubDivisions = errors.New("subdivisions must be at least one")

	// ErrInvalidGrouping is returned when a custom grouping contains a
	// group size less than one.
	ErrInvalidGrouping = errors.New("custom grouping sizes must be at least one")
)
