package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/cadence/internal/event"
	"github.com/dshills/cadence/internal/metro"
	"github.com/dshills/cadence/internal/rhythm"
	"github.com/dshills/cadence/internal/timeline"
)

const frameInterval = time.Second / 60

// View renders a live metronome, and optionally a timeline tree, in
// the terminal. Keys: space pauses, +/- changes tempo, q quits.
type View struct {
	screen tcell.Screen
	met    *metro.Metronome
	tl     *timeline.Timeline

	pulses chan metro.Pulse
	keys   chan *tcell.EventKey
	quit   chan struct{}
	once   sync.Once

	lastPulse   metro.Pulse
	lastPulseAt time.Time
	paused      bool
}

// NewView creates the terminal view for the given rhythm. tl may be
// nil when the document declares no timeline.
func NewView(r rhythm.Rhythm, tl *timeline.Timeline) (*View, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}

	v := &View{
		screen: screen,
		met:    metro.NewMetronome(r),
		tl:     tl,
		pulses: make(chan metro.Pulse, 16),
		keys:   make(chan *tcell.EventKey, 16),
		quit:   make(chan struct{}),
	}

	// Pulses arrive on the scheduler goroutine; hand them to the
	// render loop without blocking the tick.
	if _, err := v.met.On(event.TypePulse, event.As(func(p metro.Pulse) {
		select {
		case v.pulses <- p:
		default:
		}
	})); err != nil {
		return nil, err
	}

	return v, nil
}

// Stop shuts the view down. Safe to call from any goroutine.
func (v *View) Stop() {
	v.once.Do(func() { close(v.quit) })
}

// Run drives the view until quit. It owns the terminal for its whole
// lifetime.
func (v *View) Run() error {
	if err := v.screen.Init(); err != nil {
		return err
	}
	defer v.screen.Fini()
	defer v.met.Dispose()

	if err := v.met.Start(); err != nil {
		return err
	}
	if v.tl != nil {
		v.tl.Play(true)
	}

	go v.pollKeys()

	frames := time.NewTicker(frameInterval)
	defer frames.Stop()
	last := time.Now()

	for {
		select {
		case <-v.quit:
			return nil
		case p := <-v.pulses:
			v.lastPulse = p
			v.lastPulseAt = time.Now()
			v.draw()
		case key := <-v.keys:
			if done := v.handleKey(key); done {
				return nil
			}
			v.draw()
		case now := <-frames.C:
			dt := now.Sub(last).Seconds()
			last = now
			if v.tl != nil {
				v.tl.Update(dt)
			}
			v.draw()
		}
	}
}

func (v *View) pollKeys() {
	for {
		ev := v.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			select {
			case v.keys <- ev:
			case <-v.quit:
				return
			}
		case *tcell.EventResize:
			v.screen.Sync()
		case nil:
			return
		}
	}
}

func (v *View) handleKey(key *tcell.EventKey) bool {
	switch {
	case key.Key() == tcell.KeyEscape, key.Key() == tcell.KeyCtrlC,
		key.Rune() == 'q', key.Rune() == 'Q':
		v.Stop()
		return true
	case key.Rune() == ' ':
		if v.paused {
			v.met.Resume()
			if v.tl != nil {
				v.tl.Play(true)
			}
		} else {
			v.met.Pause()
			if v.tl != nil {
				v.tl.Pause(true)
			}
		}
		v.paused = !v.paused
	case key.Rune() == '+', key.Rune() == '=':
		v.adjustTempo(5)
	case key.Rune() == '-', key.Rune() == '_':
		v.adjustTempo(-5)
	}
	return false
}

func (v *View) adjustTempo(delta float64) {
	r := v.met.Rhythm()
	r.BPM += delta
	if r.BPM < 20 {
		r.BPM = 20
	}
	// Update re-validates; invalid combinations leave the old rhythm.
	_ = v.met.Update(r)
}

var (
	restColor     = colorful.Hsv(215, 0.45, 0.45)
	beatColor     = colorful.Hsv(45, 0.85, 0.95)
	downbeatColor = colorful.Hsv(10, 0.90, 1.00)
)

func (v *View) draw() {
	v.screen.Clear()

	r := v.met.Rhythm()
	pulse, beat, measure, total := v.met.Position()

	status := "playing"
	if v.paused {
		status = "paused"
	}
	v.drawText(2, 1, tcell.StyleDefault.Bold(true),
		fmt.Sprintf("cadence  %.0f bpm  %s  x%d  [%s]", r.BPM, r.TimeSignature, r.SubDivisions, status))
	v.drawText(2, 2, tcell.StyleDefault,
		fmt.Sprintf("measure %d  beat %d  pulse %d/%d  total %d",
			measure, beat, pulse, r.PulsesPerMeasure(), total))

	v.drawPulseRow(2, 4, r)

	if v.tl != nil {
		v.drawTimeline(2, 6, v.tl, 0)
	}

	v.screen.Show()
}

// drawPulseRow renders one dot per pulse in the measure, flashing the
// most recent pulse and coloring downbeats.
func (v *View) drawPulseRow(x, y int, r rhythm.Rhythm) {
	ppm := r.PulsesPerMeasure()
	if ppm <= 0 {
		return
	}

	// Flash decays over one pulse interval.
	age := time.Since(v.lastPulseAt)
	flash := 1.0 - float64(age)/float64(r.Interval())
	if flash < 0 {
		flash = 0
	}

	for i := 1; i <= ppm; i++ {
		c := restColor
		isDownbeat := r.SubDivisions > 0 && (i-1)%r.SubDivisions == 0
		if isDownbeat {
			c = c.BlendLuv(downbeatColor, 0.35)
		}
		if i == v.lastPulse.Pulse {
			target := beatColor
			if v.lastPulse.IsDownBeat {
				target = downbeatColor
			}
			c = c.BlendLuv(target, flash)
		}
		cr, cg, cb := c.RGB255()
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(cr), int32(cg), int32(cb)))
		v.screen.SetContent(x+(i-1)*2, y, '●', nil, style)
	}
}

// drawTimeline renders one node per line with a progress bar, then
// recurses into children.
func (v *View) drawTimeline(x, y int, tl *timeline.Timeline, depth int) int {
	name := tl.Name()
	if name == "" {
		name = "timeline"
	}

	line := fmt.Sprintf("%s%-12s %8.2fs", indent(depth), name, tl.CurrentTime())
	if progress, ok := tl.TotalProgress(); ok {
		line += "  " + progressBar(progress, 20)
	} else {
		line += "  ∞"
	}
	if tl.IsComplete() {
		line += "  done"
	}
	v.drawText(x, y, tcell.StyleDefault, line)

	row := y + 1
	for _, child := range tl.Children() {
		row = v.drawTimeline(x, row, child, depth+1)
	}
	return row
}

func (v *View) drawText(x, y int, style tcell.Style, s string) {
	col := x
	for _, r := range s {
		v.screen.SetContent(col, y, r, nil, style)
		col++
	}
}

func indent(depth int) string {
	s := ""
	for i := 0; i < depth; i++ {
		s += "  "
	}
	return s
}

func progressBar(progress float64, width int) string {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	filled := int(progress * float64(width))
	bar := make([]rune, 0, width+2)
	bar = append(bar, '[')
	for i := 0; i < width; i++ {
		if i < filled {
			bar = append(bar, '█')
		} else {
			bar = append(bar, '·')
		}
	}
	bar = append(bar, ']')
	return string(bar)
}
