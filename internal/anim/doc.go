// Package anim provides keyframed, time-addressable values.
//
// A Property holds a default value and a time-sorted sequence of
// keyframes. Resolving a property at a time t binary-searches for the
// bracketing keyframe pair and interpolates between them according to
// the incoming keyframe's interpolation mode (Step, Linear, Bezier, or
// CatmullRom).
//
// Resolution never extrapolates: times before the first keyframe
// return the first keyframe's value, times after the last return the
// last's, and an empty property always returns its default value.
//
// The package performs no clock management; callers feed it local
// times produced by the timeline package.
package anim
