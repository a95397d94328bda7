package isotope

import (
	"cmp"
	"math"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-gamma/gamma/fit"
)

// Result is one ranked isotope candidate for a peak.
type Result struct {
	Peak       int // 1-based
	Isotope    string
	Confidence float64 // percent, two decimals
	Energy     float64 // catalog energy, keV
}

// Confidence converts a z-score to a two-sided tail probability in percent,
// rounded to two decimals.
func Confidence(z float64) float64 {
	if math.IsNaN(z) {
		return 0
	}
	p := 100 * math.Erfc(math.Abs(z)/math.Sqrt2)
	return math.Round(p*100) / 100
}

// Score returns the confidence that a peak at center with the given standard
// error was produced by a line at energy. A zero or non-finite standard error
// scores 0.
func Score(center, stdErr, energy float64) float64 {
	if stdErr == 0 || math.IsNaN(stdErr) || math.IsInf(stdErr, 0) {
		return 0
	}
	return Confidence((center - energy) / stdErr)
}

// Match ranks the catalog against every fit result. Results are grouped by
// peak number ascending, then by confidence descending, with ties in catalog
// order. Pairs scoring 0 are omitted.
func Match(results []fit.Result, catalog []Entry, opts ...Option) []Result {
	cfg := ApplyOptions(opts...)

	perPeak := make([][]Result, len(results))

	var g errgroup.Group
	g.SetLimit(cfg.Workers)
	for i, r := range results {
		number := i + 1
		if i < len(cfg.Peaks) {
			number = cfg.Peaks[i]
		}
		g.Go(func() error {
			perPeak[i] = matchPeak(number, r, catalog, cfg.Limit)
			return nil
		})
	}
	_ = g.Wait()

	var out []Result
	for _, m := range perPeak {
		out = append(out, m...)
	}
	slices.SortStableFunc(out, func(a, b Result) int {
		return cmp.Compare(a.Peak, b.Peak)
	})
	return out
}

func matchPeak(number int, r fit.Result, catalog []Entry, limit int) []Result {
	var out []Result
	for _, e := range catalog {
		c := Score(r.Center, r.CenterStdErr, e.Energy)
		if c <= 0 {
			continue
		}
		out = append(out, Result{Peak: number, Isotope: e.Isotope, Confidence: c, Energy: e.Energy})
	}
	slices.SortStableFunc(out, func(a, b Result) int {
		return cmp.Compare(b.Confidence, a.Confidence)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Group splits ordered results into one slice per peak, in order.
func Group(results []Result) [][]Result {
	var groups [][]Result
	for i := 0; i < len(results); {
		j := i + 1
		for j < len(results) && results[j].Peak == results[i].Peak {
			j++
		}
		groups = append(groups, results[i:j:j])
		i = j
	}
	return groups
}
