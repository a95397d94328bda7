package peak

import (
	"github.com/cwbudde/algo-gamma/gamma/spectrum"
)

// Domain is the window of a spectrum around one peak center.
type Domain struct {
	Center float64
	Width  float64
	Bins   spectrum.Spectrum
}

// Empty reports whether the domain holds no bins.
func (d Domain) Empty() bool { return len(d.Bins) == 0 }

// Isolate returns one domain per center, holding every bin whose position lies
// in [center-width/2, center+width/2]. A center outside the spectrum or a
// non-positive width produces an empty domain; it is kept in place so domain i
// always belongs to center i.
func Isolate(s spectrum.Spectrum, centers []float64, width float64) []Domain {
	out := make([]Domain, len(centers))
	for i, c := range centers {
		out[i] = Domain{Center: c, Width: width, Bins: window(s, c, width)}
	}
	return out
}

// IsolateCandidates is [Isolate] over the candidate positions.
func IsolateCandidates(s spectrum.Spectrum, cands []Candidate, width float64) []Domain {
	return Isolate(s, Centers(cands), width)
}

func window(s spectrum.Spectrum, center, width float64) spectrum.Spectrum {
	if !(width > 0) {
		return spectrum.Spectrum{}
	}
	lo := center - width/2
	hi := center + width/2

	start := len(s)
	for i, b := range s {
		if b.Position >= lo {
			start = i
			break
		}
	}
	end := start
	for end < len(s) && s[end].Position <= hi {
		end++
	}

	out := make(spectrum.Spectrum, end-start)
	copy(out, s[start:end])
	return out
}
