package fit

import (
	"fmt"
	"math"

	"github.com/maorshutman/lm"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"

	"github.com/cwbudde/algo-gamma/gamma/peak"
)

// numParams is the number of free parameters of every shape.
const numParams = 4

// qFloor keeps a zero initial guess off the stationary point of p = q^2.
const qFloor = 1e-3

// Guess is the starting point of a fit.
type Guess struct {
	Amplitude float64
	Center    float64
	Width     float64
	Baseline  float64
}

// Result is a converged fit. CenterStdErr equals StdErr[1].
type Result struct {
	Amplitude    float64
	Center       float64
	Width        float64
	Baseline     float64
	CenterStdErr float64

	StdErr [numParams]float64 // amplitude, center, width, baseline
	Shape  Shape
	Points int
	SSR    float64 // sum of squared residuals
}

// DefaultGuess seeds a fit from a detected candidate: its raw counts and
// position, the bin count of the domain as width and the lowest counts in
// the domain as baseline.
func DefaultGuess(c peak.Candidate, d peak.Domain) Guess {
	return Guess{
		Amplitude: c.Counts,
		Center:    c.Position,
		Width:     float64(d.Bins.Len()),
		Baseline:  minCounts(d),
	}
}

// GuessFromDomain seeds a fit from the domain alone, using its highest bin as
// amplitude and the domain center as center.
func GuessFromDomain(d peak.Domain) Guess {
	g := Guess{
		Center:   d.Center,
		Width:    float64(d.Bins.Len()),
		Baseline: minCounts(d),
	}
	for _, b := range d.Bins {
		g.Amplitude = max(g.Amplitude, b.Counts)
	}
	return g
}

func minCounts(d peak.Domain) float64 {
	if d.Empty() {
		return 0
	}
	m := d.Bins[0].Counts
	for _, b := range d.Bins[1:] {
		m = min(m, b.Counts)
	}
	return m
}

// Fit fits the configured shape to the domain starting from guess.
//
// It returns [ErrEmptyDomain] for a domain without points and
// [ErrConvergence] when the domain has fewer than four points, the solver
// fails, the parameters are not finite, the covariance is singular or the
// fitted center leaves the domain.
func Fit(d peak.Domain, guess Guess, opts ...Option) (Result, error) {
	cfg := ApplyOptions(opts...)

	n := d.Bins.Len()
	if n == 0 {
		return Result{}, ErrEmptyDomain
	}
	if n < numParams {
		return Result{}, fmt.Errorf("%w: %d points for %d parameters", ErrConvergence, n, numParams)
	}

	x := d.Bins.Positions()
	y := d.Bins.Counts()
	shape := cfg.Shape

	// Solve in q with p = q^2 so every parameter stays non-negative.
	residuals := func(dst, q []float64) {
		p := square(q)
		for i := range x {
			dst[i] = shape.Eval(x[i], p) - y[i]
		}
	}
	jac := lm.NumJac{Func: residuals}

	problem := lm.LMProblem{
		Dim:  numParams,
		Size: n,
		Func: residuals,
		Jac:  jac.Jac,
		InitParams: []float64{
			startQ(guess.Amplitude),
			startQ(guess.Center),
			startQ(guess.Width),
			startQ(guess.Baseline),
		},
		Tau:  1e-6,
		Eps1: 1e-8,
		Eps2: 1e-8,
	}

	q, err := solve(problem, cfg.MaxIterations)
	if err != nil {
		return Result{}, err
	}

	p := square(q)
	for _, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Result{}, fmt.Errorf("%w: non-finite parameters %v", ErrConvergence, p)
		}
	}
	if p[2] == 0 {
		return Result{}, fmt.Errorf("%w: zero width", ErrConvergence)
	}
	if p[1] < x[0] || p[1] > x[n-1] {
		return Result{}, fmt.Errorf("%w: center %g outside domain [%g, %g]", ErrConvergence, p[1], x[0], x[n-1])
	}

	r := make([]float64, n)
	residuals(r, q)
	ssr := 0.0
	for _, v := range r {
		ssr += v * v
	}

	stderr, err := standardErrors(shape, x, p, ssr)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Amplitude:    p[0],
		Center:       p[1],
		Width:        p[2],
		Baseline:     p[3],
		CenterStdErr: stderr[1],
		StdErr:       stderr,
		Shape:        shape,
		Points:       n,
		SSR:          ssr,
	}, nil
}

// solve runs the LM solver and returns the optimum in q. A solver panic
// (singular damped system) and any stop other than convergence, including
// the iteration cap, are reported as ErrConvergence.
func solve(problem lm.LMProblem, maxIter int) (q []float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			q, err = nil, fmt.Errorf("%w: solver: %v", ErrConvergence, r)
		}
	}()

	out, err := lm.LM(problem, &lm.Settings{Iterations: maxIter, ObjectiveTol: 1e-16})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConvergence, err)
	}
	if !converged(out.Status) {
		return nil, fmt.Errorf("%w: solver stopped with status %v", ErrConvergence, out.Status)
	}
	if len(out.X) != numParams {
		return nil, fmt.Errorf("%w: solver returned no parameters", ErrConvergence)
	}
	return out.X, nil
}

func converged(s optimize.Status) bool {
	switch s {
	case optimize.StepConvergence, optimize.FunctionConvergence, optimize.FunctionThreshold,
		optimize.GradientThreshold, optimize.Success:
		return true
	default:
		return false
	}
}

// standardErrors returns sqrt(diag(s^2 (J^T J)^-1)) with J taken with respect
// to the physical parameters. With zero degrees of freedom every error is
// +Inf.
func standardErrors(shape Shape, x []float64, p [numParams]float64, ssr float64) ([numParams]float64, error) {
	var out [numParams]float64

	n := len(x)
	J := mat.NewDense(n, numParams, nil)
	row := make([]float64, numParams)
	for i, xi := range x {
		shape.grad(row, xi, p)
		J.SetRow(i, row)
	}

	var jtj mat.Dense
	jtj.Mul(J.T(), J)

	var cov mat.Dense
	if err := cov.Inverse(&jtj); err != nil {
		return out, fmt.Errorf("%w: singular covariance: %v", ErrConvergence, err)
	}

	dof := n - numParams
	if dof == 0 {
		for i := range out {
			out[i] = math.Inf(1)
		}
		return out, nil
	}

	s2 := ssr / float64(dof)
	for i := range out {
		out[i] = math.Sqrt(math.Abs(cov.At(i, i)) * s2)
	}
	return out, nil
}

func square(q []float64) [numParams]float64 {
	var p [numParams]float64
	for i := range p {
		p[i] = q[i] * q[i]
	}
	return p
}

func startQ(v float64) float64 {
	if !(v > 0) {
		return qFloor
	}
	return max(math.Sqrt(v), qFloor)
}
