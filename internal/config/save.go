package config

import (
	"fmt"

	"github.com/tidwall/sjson"

	"github.com/dshills/cadence/internal/rhythm"
)

// SaveRhythm serializes a rhythm preset to the JSON document schema
// understood by JSONLoader, so presets round-trip through Load.
func SaveRhythm(r rhythm.Rhythm) ([]byte, error) {
	out := "{}"
	var err error

	set := func(path string, value any) {
		if err != nil {
			return
		}
		out, err = sjson.Set(out, path, value)
	}

	set("rhythm.bpm", r.BPM)
	set("rhythm.timeSignature.upper", r.TimeSignature.Upper)
	set("rhythm.timeSignature.lower", r.TimeSignature.Lower)
	set("rhythm.subDivisions", r.SubDivisions)
	if len(r.CustomGrouping) > 0 {
		set("rhythm.grouping", r.CustomGrouping)
	}
	if r.VariableSubDivisions {
		set("rhythm.variableSubDivisions", true)
	}

	if err != nil {
		return nil, fmt.Errorf("encoding rhythm preset: %w", err)
	}
	return []byte(out), nil
}
