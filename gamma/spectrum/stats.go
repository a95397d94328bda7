package spectrum

// Summary holds whole-spectrum statistics.
type Summary struct {
	Bins         int
	TotalCounts  float64
	MaxCounts    float64
	MaxBin       int
	PeakPosition float64 // position of MaxBin
	AxisMin      float64
	AxisMax      float64
	Centroid     float64 // counts-weighted mean position
}

// Summarize computes a [Summary] in a single pass.
//
//	centroid = sum(x_i * c_i) / sum(c_i)
//
// The centroid is 0 when the total counts are 0.
func Summarize(s Spectrum) Summary {
	if len(s) == 0 {
		return Summary{}
	}

	sum := Summary{
		Bins:         len(s),
		MaxCounts:    s[0].Counts,
		PeakPosition: s[0].Position,
		AxisMin:      s[0].Position,
		AxisMax:      s[len(s)-1].Position,
	}

	weighted := 0.0
	for i, b := range s {
		sum.TotalCounts += b.Counts
		weighted += b.Position * b.Counts
		if b.Counts > sum.MaxCounts {
			sum.MaxCounts = b.Counts
			sum.PeakPosition = b.Position
			sum.MaxBin = i
		}
	}
	if sum.TotalCounts != 0 {
		sum.Centroid = weighted / sum.TotalCounts
	}
	return sum
}
