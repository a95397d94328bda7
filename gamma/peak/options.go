package peak

// DetectConfig holds optional detection filters.
type DetectConfig struct {
	// MinWidth and MaxWidth bound the width at half prominence, in bins.
	// The filter is active only when HasWidth is set.
	MinWidth float64
	MaxWidth float64
	HasWidth bool

	// SmoothSigma, when > 0, runs detection on a Gaussian-smoothed copy of the
	// counts. Candidate positions and counts still come from the raw spectrum.
	SmoothSigma float64
}

// DetectOption mutates a DetectConfig.
type DetectOption func(*DetectConfig)

// DefaultDetectConfig returns a config with no width filter and no smoothing.
func DefaultDetectConfig() DetectConfig {
	return DetectConfig{}
}

// WithWidth keeps only peaks whose width at half prominence lies in
// [minWidth, maxWidth] bins. Bounds are swapped if given in the wrong order.
func WithWidth(minWidth, maxWidth float64) DetectOption {
	return func(cfg *DetectConfig) {
		if minWidth > maxWidth {
			minWidth, maxWidth = maxWidth, minWidth
		}
		cfg.MinWidth = minWidth
		cfg.MaxWidth = maxWidth
		cfg.HasWidth = true
	}
}

// WithSmoothing enables Gaussian pre-smoothing with sigma in bins.
func WithSmoothing(sigma float64) DetectOption {
	return func(cfg *DetectConfig) {
		if sigma > 0 {
			cfg.SmoothSigma = sigma
		}
	}
}

// ApplyDetectOptions applies zero or more options to the default config.
func ApplyDetectOptions(opts ...DetectOption) DetectConfig {
	cfg := DefaultDetectConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
