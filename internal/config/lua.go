package config

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// LuaLoader evaluates a Lua script and reads the `rhythm` and
// `timeline` global tables it leaves behind. Scripting lets presets
// compute values instead of hard-coding them (derived tempi, generated
// timeline trees).
//
// gopher-lua's LState is not goroutine-safe; each Parse call uses a
// fresh state, so the loader itself is safe for concurrent use.
type LuaLoader struct{}

// Parse runs the script and extracts the document globals.
func (LuaLoader) Parse(data []byte) (*Document, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: false})
	defer L.Close()

	if err := L.DoString(string(data)); err != nil {
		return nil, fmt.Errorf("evaluating lua document: %w", err)
	}

	doc := &Document{}
	if t, ok := L.GetGlobal("rhythm").(*lua.LTable); ok {
		doc.Rhythm = rhythmFromTable(t)
	}
	if t, ok := L.GetGlobal("timeline").(*lua.LTable); ok {
		doc.Timeline = timelineFromTable(t)
	}
	return doc, nil
}

func rhythmFromTable(t *lua.LTable) *RhythmDoc {
	rd := &RhythmDoc{
		BPM:                  tableFloat(t, "bpm"),
		SubDivisions:         tableInt(t, "subdivisions"),
		VariableSubDivisions: tableBool(t, "variable_subdivisions"),
	}
	if ts, ok := tableTable(t, "time_signature"); ok {
		rd.TimeSignature = TimeSignatureDoc{
			Upper: tableInt(ts, "upper"),
			Lower: tableInt(ts, "lower"),
		}
	}
	if g, ok := tableTable(t, "grouping"); ok {
		g.ForEach(func(_, v lua.LValue) {
			if n, ok := v.(lua.LNumber); ok {
				rd.Grouping = append(rd.Grouping, int(n))
			}
		})
	}
	return rd
}

func timelineFromTable(t *lua.LTable) *TimelineDoc {
	td := &TimelineDoc{
		Name:        tableString(t, "name"),
		StartTime:   tableFloat(t, "start_time"),
		Framerate:   tableFloat(t, "framerate"),
		TimeScale:   tableFloat(t, "time_scale"),
		Loop:        tableBool(t, "loop"),
		RepeatCount: tableInt(t, "repeat_count"),
	}
	if v := t.RawGetString("duration"); v != lua.LNil {
		if n, ok := v.(lua.LNumber); ok {
			d := float64(n)
			td.Duration = &d
		}
	}
	if children, ok := tableTable(t, "children"); ok {
		children.ForEach(func(_, v lua.LValue) {
			if ct, ok := v.(*lua.LTable); ok {
				td.Children = append(td.Children, *timelineFromTable(ct))
			}
		})
	}
	return td
}

func tableString(t *lua.LTable, key string) string {
	if s, ok := t.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return ""
}

func tableFloat(t *lua.LTable, key string) float64 {
	if n, ok := t.RawGetString(key).(lua.LNumber); ok {
		return float64(n)
	}
	return 0
}

func tableInt(t *lua.LTable, key string) int {
	return int(tableFloat(t, key))
}

func tableBool(t *lua.LTable, key string) bool {
	if b, ok := t.RawGetString(key).(lua.LBool); ok {
		return bool(b)
	}
	return false
}

func tableTable(t *lua.LTable, key string) (*lua.LTable, bool) {
	sub, ok := t.RawGetString(key).(*lua.LTable)
	return sub, ok
}
