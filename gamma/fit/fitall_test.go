package fit

import (
	"context"
	"errors"
	"testing"

	"github.com/cwbudde/algo-gamma/gamma/peak"
	"github.com/cwbudde/algo-gamma/gamma/spectrum"
	"github.com/cwbudde/algo-gamma/internal/testutil"
)

func threePeakDomains(t *testing.T) []peak.Domain {
	t.Helper()
	x := testutil.Channels(700)
	y := testutil.GaussianCounts(x, 0,
		testutil.Peak{Amplitude: 1000, Center: 100, Width: 5},
		testutil.Peak{Amplitude: 600, Center: 500, Width: 6},
	)
	s, err := spectrum.New(x, y)
	if err != nil {
		t.Fatalf("spectrum.New: %v", err)
	}
	// The middle center lies outside the spectrum.
	return peak.Isolate(s, []float64{100, 5000, 500}, 30)
}

func TestFitAllPartialFailure(t *testing.T) {
	domains := threePeakDomains(t)

	results, errs := FitAll(context.Background(), domains, nil, WithWorkers(2))
	if len(results) != 3 || len(errs) != 3 {
		t.Fatalf("got %d results, %d errors", len(results), len(errs))
	}
	if errs[0] != nil || errs[2] != nil {
		t.Fatalf("unexpected errors: %v, %v", errs[0], errs[2])
	}
	testutil.RequireNear(t, "center 1", results[0].Center, 100, 0.1)
	testutil.RequireNear(t, "center 3", results[2].Center, 500, 0.1)

	var pe *PeakError
	if !errors.As(errs[1], &pe) {
		t.Fatalf("errs[1] = %v, want *PeakError", errs[1])
	}
	if pe.Peak != 2 || pe.Center != 5000 || !errors.Is(errs[1], ErrEmptyDomain) {
		t.Fatalf("peak error = %+v", pe)
	}

	ok, peaks := Succeeded(results, errs)
	if len(ok) != 2 || peaks[0] != 1 || peaks[1] != 3 {
		t.Fatalf("Succeeded peaks = %v", peaks)
	}
}

func TestFitAllUsesGuesses(t *testing.T) {
	domains := threePeakDomains(t)[:1]
	guesses := []Guess{{Amplitude: 900, Center: 101, Width: 20, Baseline: 0}}

	results, errs := FitAll(context.Background(), domains, guesses, WithWorkers(1))
	if errs[0] != nil {
		t.Fatalf("fit failed: %v", errs[0])
	}
	testutil.RequireNear(t, "center", results[0].Center, 100, 0.1)
}

func TestFitAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, errs := FitAll(ctx, threePeakDomains(t), nil)
	for i, err := range errs {
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("errs[%d] = %v, want context.Canceled", i, err)
		}
	}
}

func TestFitAllEmpty(t *testing.T) {
	results, errs := FitAll(context.Background(), nil, nil)
	if len(results) != 0 || len(errs) != 0 {
		t.Fatal("expected empty output")
	}
}

func TestFitAllSolverBreakdownStaysPerPeak(t *testing.T) {
	domains := append(threePeakDomains(t)[:1], singularDomain(t))

	results, errs := FitAll(context.Background(), domains, nil, WithWorkers(2))
	if errs[0] != nil {
		t.Fatalf("peak 1: %v", errs[0])
	}
	testutil.RequireNear(t, "center 1", results[0].Center, 100, 0.1)
	if errs[1] != nil && !errors.Is(errs[1], ErrConvergence) {
		t.Fatalf("peak 2: err = %v, want ErrConvergence", errs[1])
	}
}
