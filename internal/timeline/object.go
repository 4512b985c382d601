package timeline

import "reflect"

// Object is the bridge between a timeline's resolved local time and an
// opaque external target (a sprite, a parameter set, an audio voice).
// The timeline guarantees only the local-time value and the call
// ordering; the object resolves and applies its own properties.
type Object interface {
	// Update applies the timeline's local time, in seconds.
	Update(localTime float64)
}

// ObjectFunc adapts a plain function to an Object. Each call returns a
// distinct, comparable object value, so the result can be attached
// idempotently and removed later; hold on to it for both.
func ObjectFunc(fn func(localTime float64)) Object {
	return &funcObject{fn: fn}
}

type funcObject struct {
	fn func(localTime float64)
}

func (f *funcObject) Update(localTime float64) {
	f.fn(localTime)
}

// sameObject reports whether two objects are the same attachment.
// Comparing uncomparable dynamic types with == would panic, so such
// objects never match and cannot be deduplicated or removed;
// ObjectFunc exists to avoid that.
func sameObject(a, b Object) bool {
	ta := reflect.TypeOf(a)
	if ta == nil || ta != reflect.TypeOf(b) {
		return false
	}
	if !ta.Comparable() {
		return false
	}
	return a == b
}
