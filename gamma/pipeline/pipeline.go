package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cwbudde/algo-gamma/gamma/calib"
	"github.com/cwbudde/algo-gamma/gamma/fit"
	"github.com/cwbudde/algo-gamma/gamma/isotope"
	"github.com/cwbudde/algo-gamma/gamma/peak"
	"github.com/cwbudde/algo-gamma/gamma/spectrum"
)

// Peak is one detected peak and the outcome of its fit.
type Peak struct {
	Number    int // 1-based, in detection order
	Candidate peak.Candidate
	Domain    peak.Domain
	Fit       fit.Result
	Err       error // non-nil when the fit failed

	// Energy and EnergyStdErr are the fitted center and its standard error,
	// mapped through the run's transform when one is set.
	Energy       float64
	EnergyStdErr float64
}

// OK reports whether the peak was fitted.
func (p Peak) OK() bool { return p.Err == nil }

// Report is the outcome of one analysis run.
type Report struct {
	Cleaned spectrum.Spectrum
	Peaks   []Peak
	Matches []isotope.Result
}

// Fitted returns the peaks whose fit succeeded.
func (r Report) Fitted() []Peak {
	var out []Peak
	for _, p := range r.Peaks {
		if p.OK() {
			out = append(out, p)
		}
	}
	return out
}

// Failed returns the peaks whose fit failed.
func (r Report) Failed() []Peak {
	var out []Peak
	for _, p := range r.Peaks {
		if !p.OK() {
			out = append(out, p)
		}
	}
	return out
}

// Analyze runs cleaning, detection, isolation, fitting and matching on raw.
// Per-peak fit failures are recorded in the report; the returned error is
// reserved for failures that stop the whole run.
func Analyze(ctx context.Context, raw spectrum.Spectrum, catalog []isotope.Entry, opts ...Option) (Report, error) {
	cfg := ApplyOptions(opts...)

	rep, err := fitPeaks(ctx, raw, cfg)
	if err != nil {
		return Report{}, err
	}

	var (
		results []fit.Result
		numbers []int
	)
	for _, p := range rep.Peaks {
		if !p.OK() {
			continue
		}
		r := p.Fit
		r.Center = p.Energy
		r.CenterStdErr = p.EnergyStdErr
		results = append(results, r)
		numbers = append(numbers, p.Number)
	}

	matchOpts := append([]isotope.Option{isotope.WithPeakNumbers(numbers)}, cfg.Match...)
	rep.Matches = isotope.Match(results, catalog, matchOpts...)

	cfg.Metrics.observeRun(len(rep.Peaks), len(rep.Matches))
	cfg.Logger.InfoContext(ctx, "analysis finished",
		slog.Int("peaks", len(rep.Peaks)),
		slog.Int("fitted", len(results)),
		slog.Int("matches", len(rep.Matches)),
	)
	return rep, nil
}

// Calibrate fits the peaks of raw and derives the transform that maps their
// centers onto known. The number of fitted peaks must equal len(known); a
// single failed fit fails the calibration.
func Calibrate(ctx context.Context, raw spectrum.Spectrum, known []float64, opts ...Option) (calib.Transform, Report, error) {
	cfg := ApplyOptions(opts...)
	cfg.Transform = nil

	rep, err := fitPeaks(ctx, raw, cfg)
	if err != nil {
		return calib.Transform{}, Report{}, err
	}

	var errs []error
	centers := make([]float64, 0, len(rep.Peaks))
	for _, p := range rep.Peaks {
		if !p.OK() {
			errs = append(errs, p.Err)
			continue
		}
		centers = append(centers, p.Fit.Center)
	}
	if len(errs) > 0 {
		return calib.Transform{}, rep, fmt.Errorf("pipeline: calibration peaks: %w", errors.Join(errs...))
	}

	t, err := calib.Derive(centers, known)
	if err != nil {
		return calib.Transform{}, rep, err
	}
	cfg.Metrics.observeCalibration(t.Scale, t.Offset)
	cfg.Logger.InfoContext(ctx, "calibration derived",
		slog.Float64("scale", t.Scale),
		slog.Float64("offset", t.Offset),
		slog.Int("points", len(centers)),
	)
	return t, rep, nil
}

func fitPeaks(ctx context.Context, raw spectrum.Spectrum, cfg Config) (Report, error) {
	cleaned := spectrum.Clean(raw)
	if cleaned.Len() == 0 {
		cfg.Logger.WarnContext(ctx, "spectrum empty after cleaning", slog.Int("bins", raw.Len()))
	}

	cands, err := peak.Detect(cleaned, cfg.Prominence, cfg.Detect...)
	if err != nil {
		return Report{}, fmt.Errorf("pipeline: detect: %w", err)
	}
	cfg.Logger.DebugContext(ctx, "peaks detected",
		slog.Int("candidates", len(cands)),
		slog.Float64("prominence", cfg.Prominence),
	)

	domains := peak.IsolateCandidates(cleaned, cands, cfg.DomainWidth)
	guesses := make([]fit.Guess, len(cands))
	for i, c := range cands {
		guesses[i] = fit.DefaultGuess(c, domains[i])
	}

	start := time.Now()
	results, errs := fit.FitAll(ctx, domains, guesses, cfg.Fit...)
	cfg.Metrics.observeFitDuration(time.Since(start).Seconds())
	if err := ctx.Err(); err != nil {
		return Report{}, fmt.Errorf("pipeline: fit: %w", err)
	}

	rep := Report{Cleaned: cleaned, Peaks: make([]Peak, len(cands))}
	for i, c := range cands {
		p := Peak{
			Number:    i + 1,
			Candidate: c,
			Domain:    domains[i],
			Fit:       results[i],
			Err:       errs[i],
		}
		if p.OK() {
			p.Energy, p.EnergyStdErr = p.Fit.Center, p.Fit.CenterStdErr
			if cfg.Transform != nil {
				p.Energy = cfg.Transform.Energy(p.Fit.Center)
				p.EnergyStdErr = p.Fit.CenterStdErr * cfg.Transform.Scale
			}
			cfg.Metrics.observeFit("ok")
		} else {
			cfg.Metrics.observeFit(outcome(p.Err))
			cfg.Logger.WarnContext(ctx, "peak fit failed",
				slog.Int("peak", p.Number),
				slog.Float64("position", c.Position),
				slog.Any("error", p.Err),
			)
		}
		rep.Peaks[i] = p
	}
	return rep, nil
}

func outcome(err error) string {
	switch {
	case errors.Is(err, fit.ErrEmptyDomain):
		return "empty_domain"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "convergence"
	}
}
