package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment variables recognized by ApplyEnv.
const (
	EnvBPM            = "CADENCE_BPM"
	EnvTimeSignature  = "CADENCE_TIME_SIGNATURE" // "upper/lower", e.g. "7/8"
	EnvSubDivisions   = "CADENCE_SUBDIVISIONS"
	EnvGrouping       = "CADENCE_GROUPING" // comma-separated, e.g. "3,2,2"
	EnvTimelineName   = "CADENCE_TIMELINE_NAME"
	EnvFramerate      = "CADENCE_FRAMERATE"
	EnvTimeScale      = "CADENCE_TIME_SCALE"
	EnvDocumentPath   = "CADENCE_DOCUMENT"
)

// Env reads a value from the process environment. Swappable for tests.
type Env func(key string) (string, bool)

// OSEnv reads from the real environment.
func OSEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// ApplyEnv overlays environment variables onto doc. Values set in the
// environment win over the loaded document; unset variables leave the
// document untouched. Empty string values are treated as set.
func ApplyEnv(doc *Document, env Env) error {
	if env == nil {
		env = OSEnv
	}

	if val, ok := env(EnvBPM); ok {
		bpm, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvBPM, err)
		}
		ensureRhythm(doc).BPM = bpm
	}
	if val, ok := env(EnvTimeSignature); ok {
		upper, lower, err := parseTimeSignature(val)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeSignature, err)
		}
		rd := ensureRhythm(doc)
		rd.TimeSignature.Upper = upper
		rd.TimeSignature.Lower = lower
	}
	if val, ok := env(EnvSubDivisions); ok {
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSubDivisions, err)
		}
		ensureRhythm(doc).SubDivisions = n
	}
	if val, ok := env(EnvGrouping); ok {
		grouping, err := parseGrouping(val)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvGrouping, err)
		}
		ensureRhythm(doc).Grouping = grouping
	}
	if val, ok := env(EnvTimelineName); ok && doc.Timeline != nil {
		doc.Timeline.Name = val
	}
	if val, ok := env(EnvFramerate); ok && doc.Timeline != nil {
		fr, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvFramerate, err)
		}
		doc.Timeline.Framerate = fr
	}
	if val, ok := env(EnvTimeScale); ok && doc.Timeline != nil {
		ts, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeScale, err)
		}
		doc.Timeline.TimeScale = ts
	}
	return nil
}

func ensureRhythm(doc *Document) *RhythmDoc {
	if doc.Rhythm == nil {
		doc.Rhythm = &RhythmDoc{}
	}
	return doc.Rhythm
}

func parseTimeSignature(val string) (upper, lower int, err error) {
	parts := strings.SplitN(val, "/", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("want upper/lower, got %q", val)
	}
	upper, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, err
	}
	lower, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, err
	}
	return upper, lower, nil
}

func parseGrouping(val string) ([]int, error) {
	var grouping []int
	for _, part := range strings.Split(val, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		grouping = append(grouping, n)
	}
	return grouping, nil
}
