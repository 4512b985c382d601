package timeline

import "errors"

// Sentinel errors for timeline configuration and hierarchy mutation.
var (
	// ErrNoDuration is returned when loop configuration is attempted
	// on a timeline without a finite duration.
	ErrNoDuration = errors.New("looping requires a finite duration")

	// ErrInvalidRepeatCount is returned when a finite loop is
	// configured with fewer than one repeat.
	ErrInvalidRepeatCount = errors.New("repeat count must be at least one")

	// ErrInvalidChild is returned when adding a nil child, a timeline
	// to itself, or an ancestor (which would create a cycle).
	ErrInvalidChild = errors.New("invalid child timeline")

	// ErrDisposed is returned from mutating operations that cannot be
	// tolerant no-ops on a disposed timeline.
	ErrDisposed = errors.New("timeline is disposed")
)
