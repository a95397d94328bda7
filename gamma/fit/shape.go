package fit

import (
	"fmt"
	"math"
)

// Shape selects the line shape model.
type Shape int

const (
	// ShapeGaussian is A*exp(-(x-c)^2/(2w^2)) + b.
	ShapeGaussian Shape = iota
	// ShapeLorentzian is (A/pi) * w/((x-c)^2 + w^2) + b.
	ShapeLorentzian
)

func (s Shape) String() string {
	switch s {
	case ShapeGaussian:
		return "gaussian"
	case ShapeLorentzian:
		return "lorentzian"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// ParseShape maps a shape name to a Shape.
func ParseShape(name string) (Shape, error) {
	switch name {
	case "gaussian", "gauss":
		return ShapeGaussian, nil
	case "lorentzian", "lorentz":
		return ShapeLorentzian, nil
	default:
		return 0, fmt.Errorf("fit: unknown shape %q", name)
	}
}

// Gaussian evaluates the unnormalised Gaussian with height amp.
func Gaussian(x, amp, cen, wid, base float64) float64 {
	d := x - cen
	return amp*math.Exp(-d*d/(2*wid*wid)) + base
}

// Lorentzian evaluates the area-normalised Lorentzian with half width wid.
func Lorentzian(x, amp, cen, wid, base float64) float64 {
	d := x - cen
	return (amp/math.Pi)*(wid/(d*d+wid*wid)) + base
}

// Eval evaluates the shape at x for p = {amplitude, center, width, baseline}.
func (s Shape) Eval(x float64, p [4]float64) float64 {
	if s == ShapeLorentzian {
		return Lorentzian(x, p[0], p[1], p[2], p[3])
	}
	return Gaussian(x, p[0], p[1], p[2], p[3])
}

// grad writes the partial derivatives of the shape at x with respect to
// {amplitude, center, width, baseline} into g.
func (s Shape) grad(g []float64, x float64, p [4]float64) {
	amp, cen, wid := p[0], p[1], p[2]
	d := x - cen
	if s == ShapeLorentzian {
		den := d*d + wid*wid
		g[0] = wid / (math.Pi * den)
		g[1] = (amp / math.Pi) * 2 * wid * d / (den * den)
		g[2] = (amp / math.Pi) * (d*d - wid*wid) / (den * den)
		g[3] = 1
		return
	}
	e := math.Exp(-d * d / (2 * wid * wid))
	g[0] = e
	g[1] = amp * e * d / (wid * wid)
	g[2] = amp * e * d * d / (wid * wid * wid)
	g[3] = 1
}
