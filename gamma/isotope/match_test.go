package isotope

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-gamma/gamma/fit"
)

var testCatalog = []Entry{
	{Isotope: "Na-22", Energy: 1274.5},
	{Isotope: "Cs-137", Energy: 661.64},
	{Isotope: "Ba-133", Energy: 356},
	{Isotope: "Co-60", Energy: 1173.2},
	{Isotope: "Co-60", Energy: 1332.5},
	{Isotope: "K-40", Energy: 1460},
}

func peakAt(center, stdErr float64) fit.Result {
	return fit.Result{Center: center, CenterStdErr: stdErr}
}

func TestConfidence(t *testing.T) {
	if got := Confidence(0); got != 100 {
		t.Fatalf("Confidence(0) = %v, want 100", got)
	}
	if got := Confidence(-1.8); got != Confidence(1.8) {
		t.Fatalf("Confidence not symmetric: %v vs %v", got, Confidence(1.8))
	}
	if got := Confidence(1.8); got != 7.19 {
		t.Fatalf("Confidence(1.8) = %v, want 7.19", got)
	}
	if got := Confidence(math.NaN()); got != 0 {
		t.Fatalf("Confidence(NaN) = %v, want 0", got)
	}

	prev := Confidence(0)
	for z := 0.25; z < 6; z += 0.25 {
		c := Confidence(z)
		if c > prev {
			t.Fatalf("Confidence(%v) = %v exceeds Confidence(%v) = %v", z, c, z-0.25, prev)
		}
		if c < 0 || c > 100 {
			t.Fatalf("Confidence(%v) = %v out of range", z, c)
		}
		prev = c
	}
}

func TestScoreZeroStdErr(t *testing.T) {
	for _, se := range []float64{0, math.Inf(1), math.NaN()} {
		if got := Score(511, se, 511); got != 0 {
			t.Fatalf("Score(stderr=%v) = %v, want 0", se, got)
		}
	}
}

func TestMatch(t *testing.T) {
	results := []fit.Result{
		peakAt(1475.5, 15),
		peakAt(511, 5),
		peakAt(200, 20),
	}

	got := Match(results, testCatalog)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1: %+v", len(got), got)
	}
	want := Result{Peak: 1, Isotope: "K-40", Confidence: 30.14, Energy: 1460}
	if got[0] != want {
		t.Fatalf("Match()[0] = %+v, want %+v", got[0], want)
	}
}

func TestMatchOrdering(t *testing.T) {
	catalog := []Entry{
		{Isotope: "A", Energy: 104},
		{Isotope: "B", Energy: 100},
		{Isotope: "C", Energy: 96},
		{Isotope: "D", Energy: 500},
		{Isotope: "E", Energy: 502},
	}
	results := []fit.Result{
		peakAt(100, 2),
		peakAt(501, 1),
	}

	got := Match(results, catalog)
	wantOrder := []string{"B", "A", "C", "D", "E"}
	if len(got) != len(wantOrder) {
		t.Fatalf("len = %d, want %d: %+v", len(got), len(wantOrder), got)
	}
	for i, name := range wantOrder {
		if got[i].Isotope != name {
			t.Fatalf("result %d = %s, want %s (%+v)", i, got[i].Isotope, name, got)
		}
	}
	if got[0].Confidence != 100 {
		t.Fatalf("exact match confidence = %v, want 100", got[0].Confidence)
	}

	for i := 1; i < len(got); i++ {
		a, b := got[i-1], got[i]
		if a.Peak > b.Peak {
			t.Fatalf("peaks not ascending at %d", i)
		}
		if a.Peak == b.Peak && a.Confidence < b.Confidence {
			t.Fatalf("confidence not descending at %d", i)
		}
	}
}

func TestMatchLimit(t *testing.T) {
	catalog := []Entry{
		{Isotope: "A", Energy: 99},
		{Isotope: "B", Energy: 100},
		{Isotope: "C", Energy: 101},
	}
	got := Match([]fit.Result{peakAt(100, 1), peakAt(100, 1)}, catalog, WithLimit(2))
	if len(got) != 4 {
		t.Fatalf("len = %d, want 4", len(got))
	}
	if got[0].Isotope != "B" || got[1].Isotope != "A" || got[2].Peak != 2 {
		t.Fatalf("unexpected results %+v", got)
	}
}

func TestMatchPeakNumbers(t *testing.T) {
	got := Match(
		[]fit.Result{peakAt(1460, 1), peakAt(661.64, 1)},
		testCatalog,
		WithPeakNumbers([]int{4, 2}),
	)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Peak != 2 || got[0].Isotope != "Cs-137" || got[1].Peak != 4 || got[1].Isotope != "K-40" {
		t.Fatalf("unexpected results %+v", got)
	}
}

func TestMatchEmpty(t *testing.T) {
	if got := Match(nil, testCatalog); len(got) != 0 {
		t.Fatalf("Match(nil) = %+v", got)
	}
	if got := Match([]fit.Result{peakAt(511, 1)}, nil); len(got) != 0 {
		t.Fatalf("Match(empty catalog) = %+v", got)
	}
	if got := Match([]fit.Result{peakAt(511, 0)}, testCatalog); len(got) != 0 {
		t.Fatalf("zero stderr matched: %+v", got)
	}
}

func TestGroup(t *testing.T) {
	in := []Result{
		{Peak: 1, Isotope: "A"},
		{Peak: 1, Isotope: "B"},
		{Peak: 3, Isotope: "C"},
	}
	groups := Group(in)
	if len(groups) != 2 || len(groups[0]) != 2 || len(groups[1]) != 1 || groups[1][0].Peak != 3 {
		t.Fatalf("Group() = %+v", groups)
	}
	if Group(nil) != nil {
		t.Fatal("Group(nil) should be nil")
	}
}
