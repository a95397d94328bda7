package pipeline

import (
	"log/slog"

	"github.com/cwbudde/algo-gamma/gamma/calib"
	"github.com/cwbudde/algo-gamma/gamma/fit"
	"github.com/cwbudde/algo-gamma/gamma/isotope"
	"github.com/cwbudde/algo-gamma/gamma/peak"
)

// Defaults used by the analysis window of the desktop tool.
const (
	DefaultProminence     = 100
	DefaultDomainWidth    = 60
	DefaultCalibrateWidth = 5
)

// Config holds the stage parameters of a run.
type Config struct {
	Prominence  float64
	DomainWidth float64
	Detect      []peak.DetectOption
	Fit         []fit.Option
	Match       []isotope.Option

	// Transform, when set, maps fitted centers to energies before matching.
	Transform *calib.Transform

	Logger  *slog.Logger
	Metrics *Metrics
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the analysis defaults with logging disabled.
func DefaultConfig() Config {
	return Config{
		Prominence:  DefaultProminence,
		DomainWidth: DefaultDomainWidth,
		Logger:      slog.New(slog.DiscardHandler),
	}
}

// WithProminence sets the minimum peak prominence.
func WithProminence(p float64) Option {
	return func(c *Config) {
		if p >= 0 {
			c.Prominence = p
		}
	}
}

// WithDomainWidth sets the fit window width in position units.
func WithDomainWidth(w float64) Option {
	return func(c *Config) {
		c.DomainWidth = w
	}
}

// WithDetectOptions appends peak detection options.
func WithDetectOptions(opts ...peak.DetectOption) Option {
	return func(c *Config) {
		c.Detect = append(c.Detect, opts...)
	}
}

// WithFitOptions appends fit options.
func WithFitOptions(opts ...fit.Option) Option {
	return func(c *Config) {
		c.Fit = append(c.Fit, opts...)
	}
}

// WithMatchOptions appends isotope matching options.
func WithMatchOptions(opts ...isotope.Option) Option {
	return func(c *Config) {
		c.Match = append(c.Match, opts...)
	}
}

// WithTransform maps fitted centers through t before matching.
func WithTransform(t calib.Transform) Option {
	return func(c *Config) {
		c.Transform = &t
	}
}

// WithLogger sets the logger for per-stage and per-peak records.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		if l != nil {
			c.Logger = l
		}
	}
}

// WithMetrics records run statistics into m.
func WithMetrics(m *Metrics) Option {
	return func(c *Config) {
		c.Metrics = m
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
