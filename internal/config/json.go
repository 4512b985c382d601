package config

import (
	"errors"

	"github.com/tidwall/gjson"
)

// JSONLoader parses JSON documents.
type JSONLoader struct{}

// Parse decodes JSON data into a Document.
func (JSONLoader) Parse(data []byte) (*Document, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("decoding json: invalid document")
	}

	doc := &Document{}
	if r := gjson.GetBytes(data, "rhythm"); r.Exists() {
		doc.Rhythm = parseRhythmJSON(r)
	}
	if tl := gjson.GetBytes(data, "timeline"); tl.Exists() {
		doc.Timeline = parseTimelineJSON(tl)
	}
	return doc, nil
}

func parseRhythmJSON(r gjson.Result) *RhythmDoc {
	rd := &RhythmDoc{
		BPM: r.Get("bpm").Float(),
		TimeSignature: TimeSignatureDoc{
			Upper: int(r.Get("timeSignature.upper").Int()),
			Lower: int(r.Get("timeSignature.lower").Int()),
		},
		SubDivisions:         int(r.Get("subDivisions").Int()),
		VariableSubDivisions: r.Get("variableSubDivisions").Bool(),
	}
	for _, g := range r.Get("grouping").Array() {
		rd.Grouping = append(rd.Grouping, int(g.Int()))
	}
	return rd
}

func parseTimelineJSON(r gjson.Result) *TimelineDoc {
	td := &TimelineDoc{
		Name:        r.Get("name").String(),
		StartTime:   r.Get("startTime").Float(),
		Framerate:   r.Get("framerate").Float(),
		TimeScale:   r.Get("timeScale").Float(),
		Loop:        r.Get("loop").Bool(),
		RepeatCount: int(r.Get("repeatCount").Int()),
	}
	if d := r.Get("duration"); d.Exists() {
		v := d.Float()
		td.Duration = &v
	}
	for _, child := range r.Get("children").Array() {
		td.Children = append(td.Children, *parseTimelineJSON(child))
	}
	return td
}
