package event

// Option configures an Emitter.
type Option func(*config)

// config contains emitter configuration.
type config struct {
	// fault is called on listener panics and warned no-ops.
	fault FaultHandler

	// historySize bounds the event history; 0 disables history.
	historySize int
}

// defaultConfig returns the default emitter configuration.
func defaultConfig() config {
	return config{
		fault:       DefaultFaultHandler,
		historySize: 0,
	}
}

// WithFaultHandler sets the handler for listener faults.
func WithFaultHandler(h FaultHandler) Option {
	return func(c *config) {
		if h != nil {
			c.fault = h
		}
	}
}

// WithHistory enables bounded event history of at most size entries.
// When full, the oldest entries are evicted first.
func WithHistory(size int) Option {
	return func(c *config) {
		if size > 0 {
			c.historySize = size
		}
	}
}
