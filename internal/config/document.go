package config

import (
	"fmt"

	"github.com/dshills/cadence/internal/rhythm"
	"github.com/dshills/cadence/internal/timeline"
)

// Document is a declarative rhythm preset and/or timeline tree.
// Either section may be absent.
type Document struct {
	Rhythm   *RhythmDoc   `toml:"rhythm" yaml:"rhythm" json:"rhythm"`
	Timeline *TimelineDoc `toml:"timeline" yaml:"timeline" json:"timeline"`
}

// RhythmDoc declares a rhythm preset.
type RhythmDoc struct {
	BPM                  float64          `toml:"bpm" yaml:"bpm" json:"bpm"`
	TimeSignature        TimeSignatureDoc `toml:"time_signature" yaml:"time_signature" json:"timeSignature"`
	SubDivisions         int              `toml:"subdivisions" yaml:"subdivisions" json:"subDivisions"`
	Grouping             []int            `toml:"grouping" yaml:"grouping" json:"grouping"`
	VariableSubDivisions bool             `toml:"variable_subdivisions" yaml:"variable_subdivisions" json:"variableSubDivisions"`
}

// TimeSignatureDoc declares a meter.
type TimeSignatureDoc struct {
	Upper int `toml:"upper" yaml:"upper" json:"upper"`
	Lower int `toml:"lower" yaml:"lower" json:"lower"`
}

// TimelineDoc declares one timeline node and its children.
type TimelineDoc struct {
	Name        string        `toml:"name" yaml:"name" json:"name"`
	StartTime   float64       `toml:"start_time" yaml:"start_time" json:"startTime"`
	Duration    *float64      `toml:"duration" yaml:"duration" json:"duration"`
	Framerate   float64       `toml:"framerate" yaml:"framerate" json:"framerate"`
	TimeScale   float64       `toml:"time_scale" yaml:"time_scale" json:"timeScale"`
	Loop        bool          `toml:"loop" yaml:"loop" json:"loop"`
	RepeatCount int           `toml:"repeat_count" yaml:"repeat_count" json:"repeatCount"`
	Children    []TimelineDoc `toml:"children" yaml:"children" json:"children"`
}

// BuildRhythm turns the document's rhythm section into a validated
// rhythm.Rhythm. SubDivisions defaults to 1 when unset.
func (d *Document) BuildRhythm() (rhythm.Rhythm, error) {
	if d.Rhythm == nil {
		return rhythm.Rhythm{}, ErrNoRhythm
	}
	return d.Rhythm.Build()
}

// Build constructs the validated rhythm.
func (rd *RhythmDoc) Build() (rhythm.Rhythm, error) {
	subdivs := rd.SubDivisions
	if subdivs == 0 {
		subdivs = 1
	}

	var opts []rhythm.Option
	if len(rd.Grouping) > 0 {
		opts = append(opts, rhythm.WithCustomGrouping(rd.Grouping...))
	}
	if rd.VariableSubDivisions {
		opts = append(opts, rhythm.WithVariableSubDivisions())
	}

	ts := rhythm.TimeSignature{Upper: rd.TimeSignature.Upper, Lower: rd.TimeSignature.Lower}
	r, err := rhythm.New(rd.BPM, ts, subdivs, opts...)
	if err != nil {
		return rhythm.Rhythm{}, fmt.Errorf("building rhythm: %w", err)
	}
	return r, nil
}

// BuildTimeline turns the document's timeline section into a live
// timeline tree.
func (d *Document) BuildTimeline() (*timeline.Timeline, error) {
	if d.Timeline == nil {
		return nil, ErrNoTimeline
	}
	return d.Timeline.Build()
}

// Build constructs the timeline node and, recursively, its children.
func (td *TimelineDoc) Build() (*timeline.Timeline, error) {
	tl := timeline.New(timeline.Config{
		Name:        td.Name,
		StartTime:   td.StartTime,
		Duration:    td.Duration,
		Framerate:   td.Framerate,
		TimeScale:   td.TimeScale,
		Loop:        td.Loop,
		RepeatCount: td.RepeatCount,
	})

	for i := range td.Children {
		child, err := td.Children[i].Build()
		if err != nil {
			return nil, err
		}
		if err := tl.AddChild(child); err != nil {
			return nil, fmt.Errorf("adding child %q: %w", td.Children[i].Name, err)
		}
	}
	return tl, nil
}
