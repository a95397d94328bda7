package fit

import "runtime"

// Config holds fitter settings.
type Config struct {
	Shape         Shape
	MaxIterations int
	Workers       int // FitAll only
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns a Gaussian fit with a 1000-iteration cap and one
// worker per available CPU.
func DefaultConfig() Config {
	return Config{
		Shape:         ShapeGaussian,
		MaxIterations: 1000,
		Workers:       runtime.GOMAXPROCS(0),
	}
}

// WithShape selects the line shape.
func WithShape(s Shape) Option {
	return func(cfg *Config) {
		if s == ShapeGaussian || s == ShapeLorentzian {
			cfg.Shape = s
		}
	}
}

// WithMaxIterations bounds the solver iterations.
func WithMaxIterations(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.MaxIterations = n
		}
	}
}

// WithWorkers sets the FitAll worker pool size.
func WithWorkers(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.Workers = n
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
