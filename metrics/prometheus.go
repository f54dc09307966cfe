package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus is a Sink backed by github.com/prometheus/client_golang. A
// single counter vector and histogram vector are registered once and
// reused across calls, labelled by the metric name passed to IncCounter
// / ObserveDuration so that callers don't need to predeclare every
// counter they might ever emit.
type Prometheus struct {
	counters   *prometheus.CounterVec
	histograms *prometheus.HistogramVec
}

// NewPrometheus registers the compiler's counter and histogram vectors
// against reg and returns a Sink that reports to them.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	p := &Prometheus{
		counters: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bb",
			Name:      "events_total",
			Help:      "Compiler pipeline events by name.",
		}, []string{"name"}),
		histograms: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "bb",
			Name:      "duration_seconds",
			Help:      "Compiler pipeline stage durations by name.",
		}, []string{"name"}),
	}
	reg.MustRegister(p.counters, p.histograms)
	return p
}

// IncCounter implements Sink. tags are ignored beyond the metric name;
// this sink labels only by name to keep cardinality bounded.
func (p *Prometheus) IncCounter(name string, tags ...string) {
	p.counters.WithLabelValues(name).Inc()
}

// ObserveDuration implements Sink.
func (p *Prometheus) ObserveDuration(name string, d time.Duration, tags ...string) {
	p.histograms.WithLabelValues(name).Observe(d.Seconds())
}
