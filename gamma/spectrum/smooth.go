package spectrum

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// ErrInvalidSigma is returned by [Smooth] for a non-positive or non-finite sigma.
var ErrInvalidSigma = errors.New("spectrum: smoothing sigma must be > 0")

// kernelSpan is the kernel half-length in units of sigma.
const kernelSpan = 4.0

// GaussianKernel returns a unit-sum Gaussian kernel with the given standard
// deviation in bins. The kernel has odd length 2*ceil(4*sigma)+1.
func GaussianKernel(sigma float64) ([]float64, error) {
	if !(sigma > 0) || math.IsInf(sigma, 0) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidSigma, sigma)
	}
	half := int(math.Ceil(kernelSpan * sigma))
	kernel := make([]float64, 2*half+1)
	for i := range kernel {
		d := float64(i - half)
		kernel[i] = math.Exp(-d * d / (2 * sigma * sigma))
	}
	sum := 0.0
	for _, v := range kernel {
		sum += v
	}
	vecmath.ScaleBlock(kernel, kernel, 1/sum)
	return kernel, nil
}

// Smooth convolves the counts of s with a Gaussian kernel of the given sigma
// (in bins) and returns a new spectrum with the same positions.
//
// The convolution runs in the frequency domain and is trimmed to the input
// length ("same" mode). Bins beyond the spectrum edges are treated as zero.
func Smooth(s Spectrum, sigma float64) (Spectrum, error) {
	kernel, err := GaussianKernel(sigma)
	if err != nil {
		return nil, err
	}
	if len(s) == 0 {
		return Spectrum{}, nil
	}

	n := len(s)
	fftSize := nextPowerOf2(n + len(kernel) - 1)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("spectrum: failed to create FFT plan: %w", err)
	}

	signalFFT := make([]complex128, fftSize)
	for i, b := range s {
		signalFFT[i] = complex(b.Counts, 0)
	}
	kernelFFT := make([]complex128, fftSize)
	for i, v := range kernel {
		kernelFFT[i] = complex(v, 0)
	}

	if err := plan.Forward(signalFFT, signalFFT); err != nil {
		return nil, fmt.Errorf("spectrum: forward FFT failed: %w", err)
	}
	if err := plan.Forward(kernelFFT, kernelFFT); err != nil {
		return nil, fmt.Errorf("spectrum: kernel FFT failed: %w", err)
	}
	for i := range signalFFT {
		signalFFT[i] *= kernelFFT[i]
	}
	if err := plan.Inverse(signalFFT, signalFFT); err != nil {
		return nil, fmt.Errorf("spectrum: inverse FFT failed: %w", err)
	}

	half := len(kernel) / 2
	out := make(Spectrum, n)
	for i, b := range s {
		out[i] = Bin{Position: b.Position, Counts: real(signalFFT[i+half])}
	}
	return out, nil
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
