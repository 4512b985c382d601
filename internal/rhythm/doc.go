// Package rhythm provides validated musical timing configuration.
//
// A Rhythm combines a tempo (beats per minute), a time signature, a
// subdivision count, and an optional custom grouping of beats. It is
// validated once at construction; a valid Rhythm can always derive its
// pulses per measure and its scheduler tick interval.
//
// When a custom grouping is present (for irregular meters like 7/8
// grouped 3+2+2), pulses per measure is the sum of the group sizes.
// The grouping sum is deliberately not reconciled against the time
// signature's upper numeral; a mismatch is a documented caveat.
package rhythm
