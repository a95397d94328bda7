package pipeline

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/cwbudde/algo-gamma/gamma/calib"
	"github.com/cwbudde/algo-gamma/gamma/fit"
	"github.com/cwbudde/algo-gamma/gamma/isotope"
	"github.com/cwbudde/algo-gamma/gamma/spectrum"
	"github.com/cwbudde/algo-gamma/internal/testutil"
)

var testCatalog = []isotope.Entry{
	{Isotope: "Na-22", Energy: 511},
	{Isotope: "Cs-137", Energy: 661.64},
	{Isotope: "Na-22", Energy: 1274.5},
	{Isotope: "K-40", Energy: 1460},
}

// na22Spectrum has lines at channels 100 and 500 on a flat background.
func na22Spectrum(t *testing.T) spectrum.Spectrum {
	t.Helper()
	x := testutil.Channels(700)
	y := testutil.GaussianCounts(x, 20,
		testutil.Peak{Amplitude: 1000, Center: 100, Width: 5},
		testutil.Peak{Amplitude: 800, Center: 500, Width: 6},
	)
	testutil.AddInPlace(y, testutil.DeterministicNoise(7, 5, len(y)))
	s, err := spectrum.New(x, y)
	if err != nil {
		t.Fatalf("spectrum.New: %v", err)
	}
	return s
}

func TestCalibrateNa22(t *testing.T) {
	tr, rep, err := Calibrate(context.Background(), na22Spectrum(t), calib.PresetNa22,
		WithDomainWidth(30),
	)
	if err != nil {
		t.Fatalf("Calibrate() error = %v", err)
	}
	if len(rep.Peaks) != 2 {
		t.Fatalf("got %d peaks, want 2", len(rep.Peaks))
	}
	testutil.RequireNear(t, "center 1", rep.Peaks[0].Fit.Center, 100, 0.1)
	testutil.RequireNear(t, "center 2", rep.Peaks[1].Fit.Center, 500, 0.1)

	// (1274.5 - 511.0034) / 400
	testutil.RequireNear(t, "scale", tr.Scale, 1.90874, 1e-3)
	testutil.RequireNear(t, "energy 1", tr.Energy(rep.Peaks[0].Fit.Center), 511.0034, 1e-9)
	testutil.RequireNear(t, "energy 2", tr.Energy(rep.Peaks[1].Fit.Center), 1274.5, 1e-9)
}

func TestAnalyzeTwoPeakScenario(t *testing.T) {
	x := testutil.Channels(700)
	y := testutil.GaussianCounts(x, 0,
		testutil.Peak{Amplitude: 1000, Center: 100, Width: 5},
		testutil.Peak{Amplitude: 1000, Center: 500, Width: 5},
	)
	raw, err := spectrum.New(x, y)
	if err != nil {
		t.Fatalf("spectrum.New: %v", err)
	}

	tr, rep, err := Calibrate(context.Background(), raw, []float64{511, 1274.5}, WithProminence(300))
	if err != nil {
		t.Fatalf("Calibrate() error = %v", err)
	}
	if len(rep.Peaks) != 2 {
		t.Fatalf("got %d candidates, want 2", len(rep.Peaks))
	}
	testutil.RequireNear(t, "candidate 1", rep.Peaks[0].Candidate.Position, 100, 0)
	testutil.RequireNear(t, "candidate 2", rep.Peaks[1].Candidate.Position, 500, 0)
	if got := rep.Peaks[0].Domain.Width; got != DefaultDomainWidth {
		t.Fatalf("domain width = %v, want %v", got, DefaultDomainWidth)
	}
	testutil.RequireNear(t, "center 1", rep.Peaks[0].Fit.Center, 100, 0.1)
	testutil.RequireNear(t, "center 2", rep.Peaks[1].Fit.Center, 500, 0.1)
	testutil.RequireNear(t, "scale", tr.Scale, 1.90875, 1e-4)
	testutil.RequireNear(t, "offset", tr.Offset, -320.125, 0.1)
}

func TestCalibrateMismatch(t *testing.T) {
	_, _, err := Calibrate(context.Background(), na22Spectrum(t), []float64{511, 661.64, 1274.5},
		WithDomainWidth(30),
	)
	if !errors.Is(err, calib.ErrMismatch) {
		t.Fatalf("Calibrate() error = %v, want ErrMismatch", err)
	}
}

func TestCalibrateFailedPeak(t *testing.T) {
	_, rep, err := Calibrate(context.Background(), na22Spectrum(t), calib.PresetNa22,
		WithDomainWidth(0),
	)
	if !errors.Is(err, fit.ErrEmptyDomain) {
		t.Fatalf("Calibrate() error = %v, want ErrEmptyDomain", err)
	}
	if len(rep.Failed()) != 2 {
		t.Fatalf("failed peaks = %d, want 2", len(rep.Failed()))
	}
}

func TestAnalyzeCalibrated(t *testing.T) {
	raw := na22Spectrum(t)
	tr, _, err := Calibrate(context.Background(), raw, calib.PresetNa22, WithDomainWidth(30))
	if err != nil {
		t.Fatalf("Calibrate() error = %v", err)
	}

	rep, err := Analyze(context.Background(), raw, testCatalog,
		WithDomainWidth(30),
		WithTransform(tr),
	)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if len(rep.Fitted()) != 2 || len(rep.Failed()) != 0 {
		t.Fatalf("fitted %d, failed %d", len(rep.Fitted()), len(rep.Failed()))
	}
	if rep.Cleaned.Len() != raw.Len()-spectrum.ArtifactBins {
		t.Fatalf("cleaned length = %d", rep.Cleaned.Len())
	}
	for _, p := range rep.Peaks {
		if !(p.EnergyStdErr > 0) {
			t.Fatalf("peak %d energy stderr = %v", p.Number, p.EnergyStdErr)
		}
	}

	if len(rep.Matches) < 2 {
		t.Fatalf("matches = %+v", rep.Matches)
	}
	groups := isotope.Group(rep.Matches)
	if len(groups) != 2 {
		t.Fatalf("groups = %+v", groups)
	}
	want := []isotope.Result{
		{Peak: 1, Isotope: "Na-22", Confidence: 100, Energy: 511},
		{Peak: 2, Isotope: "Na-22", Confidence: 100, Energy: 1274.5},
	}
	for i, g := range groups {
		if g[0].Peak != want[i].Peak || g[0].Isotope != want[i].Isotope || g[0].Energy != want[i].Energy {
			t.Fatalf("group %d top = %+v, want %+v", i, g[0], want[i])
		}
	}
	if groups[1][0].Confidence != 100 {
		t.Fatalf("1274.5 keV confidence = %v", groups[1][0].Confidence)
	}
}

func TestAnalyzeRawPositions(t *testing.T) {
	rep, err := Analyze(context.Background(), na22Spectrum(t), []isotope.Entry{{Isotope: "X", Energy: 100}},
		WithDomainWidth(30),
		WithMatchOptions(isotope.WithLimit(1)),
	)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if len(rep.Matches) != 1 || rep.Matches[0].Peak != 1 {
		t.Fatalf("matches = %+v", rep.Matches)
	}
	testutil.RequireNear(t, "energy", rep.Peaks[0].Energy, rep.Peaks[0].Fit.Center, 0)
}

func TestAnalyzePartialFailure(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	if err != nil {
		t.Fatalf("NewMetrics() error = %v", err)
	}

	rep, err := Analyze(context.Background(), na22Spectrum(t), testCatalog,
		WithDomainWidth(0),
		WithLogger(logger),
		WithMetrics(m),
	)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if len(rep.Peaks) != 2 || len(rep.Failed()) != 2 || len(rep.Matches) != 0 {
		t.Fatalf("peaks %d failed %d matches %d", len(rep.Peaks), len(rep.Failed()), len(rep.Matches))
	}
	for i, p := range rep.Peaks {
		var pe *fit.PeakError
		if !errors.As(p.Err, &pe) || pe.Peak != i+1 {
			t.Fatalf("peak %d error = %v", i+1, p.Err)
		}
	}

	out := logs.String()
	if !strings.Contains(out, "peak fit failed") || !strings.Contains(out, "peak=2") {
		t.Fatalf("missing per-peak log records: %q", out)
	}

	if got := promtest.ToFloat64(m.Fits.WithLabelValues("empty_domain")); got != 2 {
		t.Fatalf("empty_domain fits = %v, want 2", got)
	}
	if got := promtest.ToFloat64(m.Runs); got != 1 {
		t.Fatalf("runs = %v, want 1", got)
	}
	if got := promtest.ToFloat64(m.Peaks); got != 2 {
		t.Fatalf("peaks = %v, want 2", got)
	}
}

func TestAnalyzeShortSpectrum(t *testing.T) {
	s, err := spectrum.New([]float64{0, 1, 2}, []float64{1, 5, 1})
	if err != nil {
		t.Fatal(err)
	}
	rep, err := Analyze(context.Background(), s, testCatalog)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if rep.Cleaned.Len() != 0 || len(rep.Peaks) != 0 || len(rep.Matches) != 0 {
		t.Fatalf("unexpected report %+v", rep)
	}
}

func TestAnalyzeCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Analyze(ctx, na22Spectrum(t), testCatalog); !errors.Is(err, context.Canceled) {
		t.Fatalf("Analyze() error = %v, want context.Canceled", err)
	}
}

func TestMetricsTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	if err != nil {
		t.Fatalf("NewMetrics() error = %v", err)
	}
	if _, err := NewMetrics(reg); err == nil {
		t.Fatal("expected duplicate registration error")
	}

	if _, _, err := Calibrate(context.Background(), na22Spectrum(t), calib.PresetNa22,
		WithDomainWidth(30), WithMetrics(m)); err != nil {
		t.Fatalf("Calibrate() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "gammaspotter.prom")
	if err := WriteTextfile(path, reg); err != nil {
		t.Fatalf("WriteTextfile() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`gammaspotter_fits_total{outcome="ok"} 2`, `gammaspotter_calibration{param="scale"}`} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("textfile missing %q:\n%s", want, data)
		}
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.observeRun(1, 1)
	m.observeFit("ok")
	m.observeFitDuration(0.1)
	m.observeCalibration(1, 0)
}
