// Exports harness summaries as Prometheus metrics, labelled by run title.

package sim

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "supplychain_sim"

// Metrics records every reported Summary into Prometheus collectors.
// It implements Reporter so it can be combined with text or JSON sinks
// through MultiReporter.
type Metrics struct {
	Trials  *prometheus.CounterVec
	Runs    *prometheus.CounterVec
	Average *prometheus.GaugeVec
	Maximum *prometheus.GaugeVec
	Minimum *prometheus.GaugeVec
	StdDev  *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	gauge := func(name, help string) *prometheus.GaugeVec {
		return prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      name,
			Help:      help,
		}, []string{"title"})
	}
	m := &Metrics{
		Trials: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "trials_total",
			Help:      "Number of completed trials.",
		}, []string{"title"}),
		Runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "runs_total",
			Help:      "Number of completed simulation runs.",
		}, []string{"title"}),
		Average: gauge("average", "Average result of the last run."),
		Maximum: gauge("maximum", "Maximum result of the last run."),
		Minimum: gauge("minimum", "Minimum result of the last run."),
		StdDev:  gauge("stddev", "Sample standard deviation of the last run."),
	}
	for _, c := range []prometheus.Collector{m.Trials, m.Runs, m.Average, m.Maximum, m.Minimum, m.StdDev} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("registering simulation metrics: %w", err)
		}
	}
	return m, nil
}

func (m *Metrics) Report(s Summary) error {
	m.Trials.WithLabelValues(s.Title).Add(float64(s.Count))
	m.Runs.WithLabelValues(s.Title).Inc()
	m.Average.WithLabelValues(s.Title).Set(s.Average.InexactFloat64())
	m.Maximum.WithLabelValues(s.Title).Set(s.Maximum.InexactFloat64())
	m.Minimum.WithLabelValues(s.Title).Set(s.Minimum.InexactFloat64())
	m.StdDev.WithLabelValues(s.Title).Set(s.Stats.StdDev)
	return nil
}

// Close is a no-op: collectors stay registered so the caller can export
// them after the session ends.
func (m *Metrics) Close() error { return nil }
