package fit

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-gamma/gamma/peak"
)

// FitAll fits every domain on a pool of cfg.Workers goroutines.
//
// Guess i seeds domain i; domains beyond len(guesses) use [GuessFromDomain].
// results[i] and errs[i] belong to domain i. A failed peak leaves a zero
// Result and a *PeakError with its 1-based index; the other peaks are not
// affected. Peaks not started before ctx is done fail with ctx.Err().
func FitAll(ctx context.Context, domains []peak.Domain, guesses []Guess, opts ...Option) ([]Result, []error) {
	cfg := ApplyOptions(opts...)

	results := make([]Result, len(domains))
	errs := make([]error, len(domains))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)

	for i, d := range domains {
		guess := GuessFromDomain(d)
		if i < len(guesses) {
			guess = guesses[i]
		}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = &PeakError{Peak: i + 1, Center: d.Center, Err: err}
				return nil
			}
			res, err := Fit(d, guess, opts...)
			if err != nil {
				errs[i] = &PeakError{Peak: i + 1, Center: d.Center, Err: err}
				return nil
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	return results, errs
}

// Succeeded returns the results whose error is nil, keeping their order, and
// the 1-based peak numbers they belong to.
func Succeeded(results []Result, errs []error) ([]Result, []int) {
	var ok []Result
	var peaks []int
	for i := range results {
		if i < len(errs) && errs[i] != nil {
			continue
		}
		ok = append(ok, results[i])
		peaks = append(peaks, i+1)
	}
	return ok, peaks
}
