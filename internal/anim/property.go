package anim

import "sort"

// Property is a keyframed value: a default plus a time-sorted keyframe
// sequence. Keyframes with equal times keep insertion order. The
// sequence is only mutated through Add, Remove, and Move.
//
// Property caches the index of the last resolved segment to make
// monotonic (playback-order) resolution O(1); random access falls back
// to binary search.
type Property[T Scalar] struct {
	def       T
	keyframes []Keyframe[T]
	lastIdx   int
}

// NewProperty creates a property that resolves to defaultValue until
// keyframes are added.
func NewProperty[T Scalar](defaultValue T) *Property[T] {
	return &Property[T]{def: defaultValue, lastIdx: -1}
}

// Default returns the property's default value.
func (p *Property[T]) Default() T {
	return p.def
}

// SetDefault replaces the default value.
func (p *Property[T]) SetDefault(v T) {
	p.def = v
}

// Len returns the number of keyframes.
func (p *Property[T]) Len() int {
	return len(p.keyframes)
}

// Keyframes returns a copy of the keyframe sequence in time order.
func (p *Property[T]) Keyframes() []Keyframe[T] {
	if len(p.keyframes) == 0 {
		return nil
	}
	out := make([]Keyframe[T], len(p.keyframes))
	copy(out, p.keyframes)
	return out
}

// Add inserts a keyframe, keeping the sequence time-sorted. A keyframe
// whose time ties an existing one is placed after it (insertion
// order). Returns the index the keyframe landed at.
func (p *Property[T]) Add(kf Keyframe[T]) int {
	// First index with time strictly greater than kf.Time; equal
	// times stay ahead of the new keyframe.
	idx := sort.Search(len(p.keyframes), func(i int) bool {
		return p.keyframes[i].Time > kf.Time
	})

	p.keyframes = append(p.keyframes, Keyframe[T]{})
	copy(p.keyframes[idx+1:], p.keyframes[idx:])
	p.keyframes[idx] = kf
	p.lastIdx = -1
	return idx
}

// Remove deletes the keyframe at index. Removing an out-of-range index
// is a no-op returning false.
func (p *Property[T]) Remove(index int) bool {
	if index < 0 || index >= len(p.keyframes) {
		return false
	}
	p.keyframes = append(p.keyframes[:index], p.keyframes[index+1:]...)
	p.lastIdx = -1
	return true
}

// Move re-times the keyframe at index and re-sorts it into place.
// Returns the keyframe's new index, or -1 for an out-of-range index.
func (p *Property[T]) Move(index int, newTime float64) int {
	if index < 0 || index >= len(p.keyframes) {
		return -1
	}
	kf := p.keyframes[index]
	kf.Time = newTime
	p.Remove(index)
	return p.Add(kf)
}

// Resolve returns the property's value at time t.
//
// Boundary policy: an empty sequence resolves to the default value;
// t at or before the first keyframe returns the first value; t at or
// after the last returns the last value. Between keyframes the
// incoming keyframe's interpolation mode is applied over the segment's
// normalized time fraction.
func (p *Property[T]) Resolve(t float64) T {
	n := len(p.keyframes)
	if n == 0 {
		return p.def
	}
	if t <= p.keyframes[0].Time {
		return p.keyframes[0].Value
	}
	if t >= p.keyframes[n-1].Time {
		return p.keyframes[n-1].Value
	}

	i := p.bracket(t)
	p.lastIdx = i
	return p.segment(i, t)
}

// bracket finds i such that keyframes[i].Time <= t < keyframes[i+1].Time.
// The caller has already excluded times outside the sequence range.
func (p *Property[T]) bracket(t float64) int {
	// Sequential playback usually lands in the cached segment or the
	// one after it.
	if i := p.lastIdx; i >= 0 && i+1 < len(p.keyframes) {
		if p.keyframes[i].Time <= t && t < p.keyframes[i+1].Time {
			return i
		}
		if i+2 < len(p.keyframes) && p.keyframes[i+1].Time <= t && t < p.keyframes[i+2].Time {
			return i + 1
		}
	}

	// First index with time strictly greater than t; the bracket
	// starts one before it.
	idx := sort.Search(len(p.keyframes), func(i int) bool {
		return p.keyframes[i].Time > t
	})
	return idx - 1
}

// segment evaluates the segment [keyframes[i], keyframes[i+1]] at t.
func (p *Property[T]) segment(i int, t float64) T {
	out := p.keyframes[i]
	in := p.keyframes[i+1]

	span := in.Time - out.Time
	if span <= 0 {
		return out.Value
	}
	u := (t - out.Time) / span

	switch in.Interpolation {
	case Step:
		return out.Value
	case Bezier:
		if in.Control == nil {
			return lerp(out.Value, in.Value, u)
		}
		return bezier(out.Value, in.Value, *in.Control, u)
	case CatmullRom:
		if i == 0 || i+2 >= len(p.keyframes) {
			// Missing neighbor at a sequence boundary.
			return lerp(out.Value, in.Value, u)
		}
		return catmullRom(p.keyframes[i-1].Value, out.Value, in.Value, p.keyframes[i+2].Value, u)
	default:
		return lerp(out.Value, in.Value, u)
	}
}

func lerp[T Scalar](a, b T, u float64) T {
	return T(float64(a) + (float64(b)-float64(a))*u)
}

// bezier evaluates a cubic Bernstein polynomial whose inner control
// values are normalized weights of the segment's value range.
func bezier[T Scalar](a, b T, c BezierControl, u float64) T {
	v0 := float64(a)
	v3 := float64(b)
	v1 := v0 + c.P1*(v3-v0)
	v2 := v0 + c.P2*(v3-v0)

	inv := 1 - u
	v := v0*inv*inv*inv +
		3*v1*u*inv*inv +
		3*v2*u*u*inv +
		v3*u*u*u
	return T(v)
}

// catmullRom evaluates a uniform Catmull-Rom spline through p0..p3 at
// normalized time u within the [p1, p2] segment.
func catmullRom[T Scalar](p0, p1, p2, p3 T, u float64) T {
	a := float64(p0)
	b := float64(p1)
	c := float64(p2)
	d := float64(p3)

	v := 0.5 * (2*b +
		(-a+c)*u +
		(2*a-5*b+4*c-d)*u*u +
		(-a+3*b-3*c+d)*u*u*u)
	return T(v)
}
