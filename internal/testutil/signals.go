package testutil

import (
	"math"
	"math/rand"
)

// Peak describes one synthetic Gaussian line: height above baseline, center
// position and standard deviation, all in bin units.
type Peak struct {
	Amplitude float64
	Center    float64
	Width     float64
}

// Channels returns positions 0, 1, ..., n-1.
func Channels(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}

// GaussianCounts evaluates baseline + sum of Gaussian peaks at each position.
func GaussianCounts(positions []float64, baseline float64, peaks ...Peak) []float64 {
	out := make([]float64, len(positions))
	for i, x := range positions {
		v := baseline
		for _, p := range peaks {
			d := x - p.Center
			v += p.Amplitude * math.Exp(-d*d/(2*p.Width*p.Width))
		}
		out[i] = v
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// AddInPlace adds src to dst element-wise over the shorter length.
func AddInPlace(dst, src []float64) {
	n := min(len(dst), len(src))
	for i := 0; i < n; i++ {
		dst[i] += src[i]
	}
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}
