package fit

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyDomain is returned when a fit window contains no points.
	ErrEmptyDomain = errors.New("fit: empty domain")
	// ErrConvergence is returned when the solver fails or the domain has
	// fewer points than free parameters.
	ErrConvergence = errors.New("fit: no convergence")
)

// PeakError attaches the failing peak to a fit error. Peak is 1-based.
type PeakError struct {
	Peak   int
	Center float64
	Err    error
}

func (e *PeakError) Error() string {
	return fmt.Sprintf("peak %d (center %g): %v", e.Peak, e.Center, e.Err)
}

func (e *PeakError) Unwrap() error { return e.Err }
