package isotope

import "runtime"

// Config controls matching.
type Config struct {
	// Limit caps the results reported per peak. Zero means unlimited.
	Limit int
	// Peaks overrides the peak numbers. When shorter than the result list
	// the remaining peaks are numbered by position.
	Peaks   []int
	Workers int
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns unlimited results numbered by position.
func DefaultConfig() Config {
	return Config{Workers: runtime.GOMAXPROCS(0)}
}

// WithLimit keeps at most n results per peak. n <= 0 means unlimited.
func WithLimit(n int) Option {
	return func(c *Config) {
		c.Limit = max(n, 0)
	}
}

// WithPeakNumbers labels result i with peaks[i] instead of i+1. Use it when
// matching only the peaks that survived fitting.
func WithPeakNumbers(peaks []int) Option {
	return func(c *Config) {
		c.Peaks = peaks
	}
}

// WithWorkers bounds the number of peaks matched concurrently.
func WithWorkers(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.Workers = n
		}
	}
}

// ApplyOptions applies opts on top of DefaultConfig.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
