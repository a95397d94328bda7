package peak

import (
	"github.com/cwbudde/algo-gamma/gamma/spectrum"
)

// Candidate is a local maximum that passed the prominence and width filters.
type Candidate struct {
	Index      int     // bin index in the source spectrum
	Position   float64 // raw position of the bin
	Counts     float64 // raw counts of the bin
	Prominence float64
	Width      float64 // width at half prominence, in bins
	LeftBase   int
	RightBase  int
}

// Detect returns the peaks of s whose prominence is at least prominence,
// ordered by ascending position. No qualifying peak yields an empty slice.
//
// The error is non-nil only when optional smoothing fails.
func Detect(s spectrum.Spectrum, prominence float64, opts ...DetectOption) ([]Candidate, error) {
	cfg := ApplyDetectOptions(opts...)

	signal := s
	if cfg.SmoothSigma > 0 {
		smoothed, err := spectrum.Smooth(s, cfg.SmoothSigma)
		if err != nil {
			return nil, err
		}
		signal = smoothed
	}
	x := signal.Counts()

	out := []Candidate{}
	for _, p := range localMaxima(x) {
		prom, left, right := prominenceOf(x, p)
		if prom < prominence {
			continue
		}
		width := widthAt(x, p, prom, left, right)
		if cfg.HasWidth && (width < cfg.MinWidth || width > cfg.MaxWidth) {
			continue
		}
		out = append(out, Candidate{
			Index:      p,
			Position:   s[p].Position,
			Counts:     s[p].Counts,
			Prominence: prom,
			Width:      width,
			LeftBase:   left,
			RightBase:  right,
		})
	}
	return out, nil
}

// Centers returns the positions of the candidates.
func Centers(cands []Candidate) []float64 {
	out := make([]float64, len(cands))
	for i, c := range cands {
		out[i] = c.Position
	}
	return out
}

// localMaxima returns the indices of all local maxima. A flat plateau counts
// once, at its middle sample (left of middle for even lengths). The first and
// last samples are never maxima.
func localMaxima(x []float64) []int {
	var peaks []int
	last := len(x) - 1
	for i := 1; i < last; i++ {
		if x[i-1] >= x[i] {
			continue
		}
		ahead := i + 1
		for ahead < last && x[ahead] == x[i] {
			ahead++
		}
		if x[ahead] < x[i] {
			peaks = append(peaks, (i+ahead-1)/2)
			i = ahead
		}
	}
	return peaks
}

// prominenceOf walks outwards from peak until a strictly higher sample or the
// signal edge. The lowest sample on each side is that side's base.
func prominenceOf(x []float64, peak int) (prom float64, leftBase, rightBase int) {
	h := x[peak]

	leftMin := h
	leftBase = peak
	for i := peak; i >= 0 && x[i] <= h; i-- {
		if x[i] < leftMin {
			leftMin = x[i]
			leftBase = i
		}
	}

	rightMin := h
	rightBase = peak
	for i := peak; i < len(x) && x[i] <= h; i++ {
		if x[i] < rightMin {
			rightMin = x[i]
			rightBase = i
		}
	}

	return h - max(leftMin, rightMin), leftBase, rightBase
}

// widthAt measures the peak width at half its prominence, interpolating
// linearly between samples and clamping to the bases.
func widthAt(x []float64, peak int, prom float64, leftBase, rightBase int) float64 {
	height := x[peak] - prom/2

	i := peak
	for leftBase < i && height < x[i] {
		i--
	}
	left := float64(i)
	if x[i] < height {
		left += (height - x[i]) / (x[i+1] - x[i])
	}

	i = peak
	for i < rightBase && height < x[i] {
		i++
	}
	right := float64(i)
	if x[i] < height {
		right -= (height - x[i]) / (x[i-1] - x[i])
	}

	return right - left
}
