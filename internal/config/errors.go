package config

import "errors"

// Sentinel errors for document loading.
var (
	// ErrUnknownFormat is returned when Load cannot map a file
	// extension to a parser.
	ErrUnknownFormat = errors.New("unknown document format")

	// ErrNoRhythm is returned when building a rhythm from a document
	// without a rhythm section.
	ErrNoRhythm = errors.New("document has no rhythm section")

	// ErrNoTimeline is returned when building a timeline from a
	// document without a timeline section.
	ErrNoTimeline = errors.New("document has no timeline section")
)
