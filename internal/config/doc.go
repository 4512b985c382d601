// Package config loads declarative timeline and rhythm documents.
//
// A Document describes a rhythm preset and/or a timeline tree. It can
// be authored in TOML, JSON, or YAML, or scripted in Lua for
// programmatic setups. Load picks the parser from the file extension;
// the format-specific loaders are also exported for direct use.
//
// Documents are plain data: call Document.BuildRhythm or
// Document.BuildTimeline to turn one into live engine values, which
// re-runs the engine's own validation.
//
// Environment variables with the CADENCE_ prefix overlay loaded
// documents (tempo and meter overrides for the command-line front
// end); see ApplyEnv.
package config
