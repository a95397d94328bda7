package pipeline

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts pipeline activity. A nil *Metrics records nothing.
type Metrics struct {
	Runs        prometheus.Counter
	Peaks       prometheus.Counter
	Fits        *prometheus.CounterVec // label "outcome": ok, empty_domain, convergence, canceled
	Matches     prometheus.Counter
	FitDuration prometheus.Histogram
	Calibration *prometheus.GaugeVec // label "param": scale, offset
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Runs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gammaspotter",
			Name:      "runs_total",
			Help:      "Spectra processed.",
		}),
		Peaks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gammaspotter",
			Name:      "peaks_detected_total",
			Help:      "Peak candidates passing the prominence and width filters.",
		}),
		Fits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gammaspotter",
			Name:      "fits_total",
			Help:      "Peak fits by outcome.",
		}, []string{"outcome"}),
		Matches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gammaspotter",
			Name:      "matches_total",
			Help:      "Isotope matches reported.",
		}),
		FitDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "gammaspotter",
			Name:      "fit_stage_seconds",
			Help:      "Wall time of the fit stage per spectrum.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
		Calibration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "gammaspotter",
			Name:      "calibration",
			Help:      "Most recently derived calibration parameters.",
		}, []string{"param"}),
	}
	for _, c := range []prometheus.Collector{m.Runs, m.Peaks, m.Fits, m.Matches, m.FitDuration, m.Calibration} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("pipeline: register metrics: %w", err)
		}
	}
	return m, nil
}

// WriteTextfile writes every metric gathered from g to path in the text
// exposition format, for the node exporter textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("pipeline: write metrics: %w", err)
	}
	return nil
}

func (m *Metrics) observeRun(peaks, matches int) {
	if m == nil {
		return
	}
	m.Runs.Inc()
	m.Peaks.Add(float64(peaks))
	m.Matches.Add(float64(matches))
}

func (m *Metrics) observeFit(outcome string) {
	if m == nil {
		return
	}
	m.Fits.WithLabelValues(outcome).Inc()
}

func (m *Metrics) observeFitDuration(seconds float64) {
	if m == nil {
		return
	}
	m.FitDuration.Observe(seconds)
}

func (m *Metrics) observeCalibration(scale, offset float64) {
	if m == nil {
		return
	}
	m.Calibration.WithLabelValues("scale").Set(scale)
	m.Calibration.WithLabelValues("offset").Set(offset)
}
