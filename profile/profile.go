package profile

// Tag names the build tag that enables profiling and the subdirectory that
// profiles are written to by default.
const Tag = "pprof"

// Config returns every profiler parameter.
type Config func() (mode, path string, quiet bool)

// Option derives a new Config from an existing one.
type Option func(Config) Config

// Stopper ends a profiling session and flushes its output.
type Stopper interface{ Stop() }

// Make returns a Config with all options applied to an empty base.
func Make(opts ...Option) Config {
	c := Config(func() (string, string, bool) { return "", "", false })

	for _, opt := range opts {
		c = opt(c)
	}

	return c
}

// Start begins profiling in the configured mode. An empty or unsupported mode,
// or a binary built without the pprof tag, yields a no-op [Stopper].
func (c Config) Start() Stopper {
	if c == nil {
		return ignore{}
	}

	mode, path, quiet := c()
	if mode == "" {
		return ignore{}
	}

	return start(mode, path, quiet)
}

// WithMode sets the profiler mode. See [Modes].
func WithMode(mode string) Option {
	return func(c Config) Config {
		_, path, quiet := c()

		return func() (string, string, bool) { return mode, path, quiet }
	}
}

// WithPath sets the profile output directory.
func WithPath(path string) Option {
	return func(c Config) Config {
		mode, _, quiet := c()

		return func() (string, string, bool) { return mode, path, quiet }
	}
}

// WithQuiet suppresses the profiler's own log messages.
func WithQuiet(quiet bool) Option {
	return func(c Config) Config {
		mode, path, _ := c()

		return func() (string, string, bool) { return mode, path, quiet }
	}
}

type ignore struct{}

func (ignore) Stop() {}
