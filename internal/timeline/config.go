package timeline

// Config declares a timeline's playback parameters. Every field is
// optional; zero values fall back to defaults field-by-field at
// construction.
type Config struct {
	// Name labels the timeline for tree lookups. Optional.
	Name string

	// StartTime is the offset, in parent-local seconds, at which this
	// timeline's local time begins.
	StartTime float64

	// Duration is the local length in seconds; nil means infinite.
	Duration *float64

	// Framerate is the nominal frames-per-second hint for consumers.
	// Defaults to 60.
	Framerate float64

	// TimeScale multiplies incoming time. Defaults to 1.
	TimeScale float64

	// Loop wraps local time past Duration instead of clamping.
	Loop bool

	// RepeatCount bounds looping; 0 means loop forever.
	RepeatCount int
}

// Seconds is a convenience for building a finite Duration.
func Seconds(v float64) *float64 {
	return &v
}

// withDefaults returns cfg with unset fields replaced by defaults.
func (cfg Config) withDefaults() Config {
	if cfg.TimeScale == 0 {
		cfg.TimeScale = 1
	}
	if cfg.Framerate <= 0 {
		cfg.Framerate = 60
	}
	if cfg.RepeatCount < 0 {
		cfg.RepeatCount = 0
	}
	return cfg
}
