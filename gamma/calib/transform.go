package calib

import (
	"errors"
	"fmt"
	"slices"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-gamma/gamma/spectrum"
)

var (
	// ErrMismatch is returned when measured and known sequences differ in length.
	ErrMismatch = errors.New("calib: measured and known energies must have same length")
	// ErrTooFewPoints is returned for fewer than two calibration points.
	ErrTooFewPoints = errors.New("calib: at least 2 calibration points required")
	// ErrDegenerate is returned when all measured centers coincide.
	ErrDegenerate = errors.New("calib: measured centers span zero range")
	// ErrNonMonotonic is returned when the derived scale is not positive.
	ErrNonMonotonic = errors.New("calib: scale must be > 0")
)

// Transform maps a raw position x to energy x*Scale - Offset.
type Transform struct {
	Scale  float64 // energy units per raw unit
	Offset float64
}

// Energy maps one raw position to energy.
func (t Transform) Energy(x float64) float64 {
	return x*t.Scale - t.Offset
}

// Derive computes the transform that maps measured to known.
//
//	scale  = (known_max - known_min) / (measured_max - measured_min)
//	offset = mean(measured_i*scale - known_i)
//
// after sorting both sequences ascending. The inputs are not modified.
func Derive(measured, known []float64) (Transform, error) {
	if len(measured) != len(known) {
		return Transform{}, fmt.Errorf("%w: %d measured, %d known", ErrMismatch, len(measured), len(known))
	}
	if len(measured) < 2 {
		return Transform{}, fmt.Errorf("%w: got %d", ErrTooFewPoints, len(measured))
	}

	m := slices.Clone(measured)
	k := slices.Clone(known)
	slices.Sort(m)
	slices.Sort(k)

	n := len(m)
	span := m[n-1] - m[0]
	if span == 0 {
		return Transform{}, ErrDegenerate
	}
	scale := (k[n-1] - k[0]) / span
	if !(scale > 0) {
		return Transform{}, fmt.Errorf("%w: %g", ErrNonMonotonic, scale)
	}

	offset := 0.0
	for i := range m {
		offset += m[i]*scale - k[i]
	}
	offset /= float64(n)

	return Transform{Scale: scale, Offset: offset}, nil
}

// Apply returns a new spectrum with every position mapped through t. Counts
// are copied unchanged; s is not modified.
func Apply(s spectrum.Spectrum, t Transform) spectrum.Spectrum {
	pos := s.Positions()
	vecmath.ScaleBlock(pos, pos, t.Scale)

	out := make(spectrum.Spectrum, len(s))
	for i, b := range s {
		out[i] = spectrum.Bin{Position: pos[i] - t.Offset, Counts: b.Counts}
	}
	return out
}

// ApplyValues maps raw positions (for example fitted centers) to energies.
func ApplyValues(xs []float64, t Transform) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = t.Energy(x)
	}
	return out
}
