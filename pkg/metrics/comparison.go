package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ComparisonMetrics records comparison generation outcomes.
type ComparisonMetrics struct {
	duration     prometheus.Histogram
	pricedMovers prometheus.Counter
	failedMovers prometheus.Counter
	generations  *prometheus.CounterVec
}

// NewComparisonMetrics registers the comparison metrics on the provided registerer.
func NewComparisonMetrics(reg prometheus.Registerer) *ComparisonMetrics {
	if reg == nil {
		return &ComparisonMetrics{}
	}
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "comparison_generation_duration_seconds",
		Help:    "Duration of comparison generation runs in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	priced := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "comparison_priced_movers_total",
		Help: "Movers successfully priced during comparison generation.",
	})
	failed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "comparison_failed_movers_total",
		Help: "Movers skipped because pricing failed during comparison generation.",
	})
	generations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "comparison_generations_total",
		Help: "Comparison generation runs by outcome.",
	}, []string{"outcome"})
	reg.MustRegister(duration, priced, failed, generations)
	return &ComparisonMetrics{
		duration:     duration,
		pricedMovers: priced,
		failedMovers: failed,
		generations:  generations,
	}
}

// ObserveGeneration records the duration for a generation run.
func (c *ComparisonMetrics) ObserveGeneration(duration time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.Observe(duration.Seconds())
}

// AddPricedMovers increments the priced-mover counter.
func (c *ComparisonMetrics) AddPricedMovers(n int) {
	if c == nil || c.pricedMovers == nil || n <= 0 {
		return
	}
	c.pricedMovers.Add(float64(n))
}

// AddFailedMovers increments the failed-mover counter.
func (c *ComparisonMetrics) AddFailedMovers(n int) {
	if c == nil || c.failedMovers == nil || n <= 0 {
		return
	}
	c.failedMovers.Add(float64(n))
}

// IncGeneration records a generation run outcome (ready/failed/conflict).
func (c *ComparisonMetrics) IncGeneration(outcome string) {
	if c == nil || c.generations == nil {
		return
	}
	if outcome == "" {
		outcome = "unknown"
	}
	c.generations.WithLabelValues(outcome).Inc()
}
