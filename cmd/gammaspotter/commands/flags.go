package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-gamma/gamma/fit"
	"github.com/cwbudde/algo-gamma/gamma/peak"
	"github.com/cwbudde/algo-gamma/gamma/pipeline"
	"github.com/cwbudde/algo-gamma/gamma/spectrum"
)

// detectFlags are shared by every command that detects peaks.
type detectFlags struct {
	prominence  float64
	width       []float64
	smooth      float64
	domainWidth float64
	shape       string
	workers     int
}

func (f *detectFlags) bind(cmd *cobra.Command, a *app, domainWidth float64) {
	f.domainWidth = domainWidth
	fl := cmd.Flags()
	fl.Float64Var(&f.prominence, "prominence", a.cfg.Prominence, "minimum peak prominence in counts")
	fl.Float64SliceVar(&f.width, "width", widthDefault(a.cfg.MinWidth, a.cfg.MaxWidth), "min,max peak width in bins at half prominence")
	fl.Float64Var(&f.smooth, "smooth", a.cfg.SmoothSigma, "Gaussian smoothing sigma in bins before detection (0 = off)")
	fl.Float64Var(&f.domainWidth, "domain-width", f.domainWidth, "fit window width in position units")
	fl.StringVar(&f.shape, "shape", a.cfg.Shape, "peak shape (gaussian, lorentzian)")
	fl.IntVar(&f.workers, "workers", a.cfg.Workers, "parallel fits (0 = GOMAXPROCS)")
}

func widthDefault(lo, hi float64) []float64 {
	if lo == 0 && hi == 0 {
		return nil
	}
	return []float64{lo, hi}
}

func (f *detectFlags) detectOptions() ([]peak.DetectOption, error) {
	var opts []peak.DetectOption
	switch len(f.width) {
	case 0:
	case 2:
		opts = append(opts, peak.WithWidth(f.width[0], f.width[1]))
	default:
		return nil, fmt.Errorf("--width takes min,max, got %v", f.width)
	}
	if f.smooth > 0 {
		opts = append(opts, peak.WithSmoothing(f.smooth))
	}
	return opts, nil
}

func (f *detectFlags) fitOptions() ([]fit.Option, error) {
	shape, err := fit.ParseShape(f.shape)
	if err != nil {
		return nil, err
	}
	return []fit.Option{fit.WithShape(shape), fit.WithWorkers(f.workers)}, nil
}

// pipelineOptions collects the stage options for pipeline.Analyze and
// pipeline.Calibrate.
func (f *detectFlags) pipelineOptions(a *app) ([]pipeline.Option, error) {
	dopts, err := f.detectOptions()
	if err != nil {
		return nil, err
	}
	fopts, err := f.fitOptions()
	if err != nil {
		return nil, err
	}
	return []pipeline.Option{
		pipeline.WithProminence(f.prominence),
		pipeline.WithDomainWidth(f.domainWidth),
		pipeline.WithDetectOptions(dopts...),
		pipeline.WithFitOptions(fopts...),
		pipeline.WithLogger(a.logger),
		pipeline.WithMetrics(a.metrics),
	}, nil
}

func readSpectrum(path string) (spectrum.Spectrum, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	s, err := spectrum.ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
