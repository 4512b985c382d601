package anim

// Scalar is the value constraint for keyframed properties. Math is
// performed in float64 and converted back to the property type.
type Scalar interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Interpolation selects how a segment approaches its incoming keyframe.
type Interpolation int

const (
	// Step holds the outgoing keyframe's value for the whole segment.
	Step Interpolation = iota

	// Linear interpolates by the segment's normalized time fraction.
	Linear

	// Bezier evaluates a cubic Bezier over the segment using the
	// incoming keyframe's control handles.
	Bezier

	// CatmullRom fits a Catmull-Rom spline through the surrounding
	// four keyframes. Segments missing a neighbor fall back to Linear.
	CatmullRom
)

// String returns a human-readable interpolation name.
func (i Interpolation) String() string {
	switch i {
	case Step:
		return "step"
	case Linear:
		return "linear"
	case Bezier:
		return "bezier"
	case CatmullRom:
		return "catmullRom"
	default:
		return "unknown"
	}
}

// BezierControl holds the two inner control handles of a Bezier
// segment, expressed as normalized weights of the segment's value
// range: a handle of 0 sits at the outgoing value, 1 at the incoming
// value. The handles are evaluated with the cubic Bernstein basis over
// the segment's normalized time.
type BezierControl struct {
	P1 float64
	P2 float64
}

// Easing presets expressed as Bezier control handles.
var (
	// EaseIn starts slow and accelerates into the incoming keyframe.
	EaseIn = BezierControl{P1: 0, P2: 2.0 / 3.0}

	// EaseOut starts fast and decelerates into the incoming keyframe.
	EaseOut = BezierControl{P1: 1.0 / 3.0, P2: 1}

	// EaseInOut is slow at both ends (equivalent to smoothstep).
	EaseInOut = BezierControl{P1: 0, P2: 1}
)

// Keyframe is one time-stamped value sample.
// The Interpolation and Control fields describe how the segment
// *ending* at this keyframe is evaluated.
type Keyframe[T Scalar] struct {
	// Time is the sample time in seconds.
	Time float64

	// Value is the sampled value.
	Value T

	// Interpolation selects the segment evaluation mode.
	Interpolation Interpolation

	// Control holds Bezier handles; ignored for other modes.
	// A nil Control with Bezier interpolation evaluates as Linear.
	Control *BezierControl
}
