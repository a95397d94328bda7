package spectrum

import (
	"errors"
	"fmt"
)

// ArtifactBins is the number of trailing bins removed by [Clean].
const ArtifactBins = 4

var (
	// ErrLengthMismatch is returned when positions and counts differ in length.
	ErrLengthMismatch = errors.New("spectrum: positions and counts must have same length")
	// ErrNotIncreasing is returned when positions are not strictly increasing.
	ErrNotIncreasing = errors.New("spectrum: positions must be strictly increasing")
)

// Bin is a single detector bin.
type Bin struct {
	Position float64
	Counts   float64
}

// Spectrum is an ordered sequence of bins with strictly increasing positions.
type Spectrum []Bin

// New builds a spectrum from parallel position and count slices.
func New(positions, counts []float64) (Spectrum, error) {
	if len(positions) != len(counts) {
		return nil, fmt.Errorf("%w: %d positions, %d counts", ErrLengthMismatch, len(positions), len(counts))
	}
	s := make(Spectrum, len(positions))
	for i := range positions {
		if i > 0 && positions[i] <= positions[i-1] {
			return nil, fmt.Errorf("%w: index %d (%g after %g)", ErrNotIncreasing, i, positions[i], positions[i-1])
		}
		s[i] = Bin{Position: positions[i], Counts: counts[i]}
	}
	return s, nil
}

// Len returns the bin count.
func (s Spectrum) Len() int { return len(s) }

// Positions returns a copy of the bin positions.
func (s Spectrum) Positions() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.Position
	}
	return out
}

// Counts returns a copy of the bin counts.
func (s Spectrum) Counts() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.Counts
	}
	return out
}

// Clone returns an independent copy of s.
func (s Spectrum) Clone() Spectrum {
	if s == nil {
		return nil
	}
	out := make(Spectrum, len(s))
	copy(out, s)
	return out
}

// Clean removes the trailing [ArtifactBins] bins.
//
// A spectrum with ArtifactBins or fewer bins yields an empty spectrum. This is
// not an error: the caller is responsible for supplying enough data.
func Clean(s Spectrum) Spectrum {
	return CleanN(s, ArtifactBins)
}

// CleanN removes the trailing n bins. Negative n is treated as zero.
func CleanN(s Spectrum, n int) Spectrum {
	if n < 0 {
		n = 0
	}
	keep := len(s) - n
	if keep <= 0 {
		return Spectrum{}
	}
	out := make(Spectrum, keep)
	copy(out, s[:keep])
	return out
}
