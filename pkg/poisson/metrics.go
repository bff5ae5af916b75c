package poisson

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const shapeLabel = "shape"

var (
	packRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pointarray_poisson_runs",
		Help: "The number of poisson-disc packing runs.",
	}, []string{
		shapeLabel,
	})

	packAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pointarray_poisson_attempts",
		Help: "The number of candidates drawn by poisson-disc packing.",
	}, []string{
		shapeLabel,
	})

	packElements = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pointarray_poisson_elements",
		Help:    "The number of points produced per packing run.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 8),
	}, []string{
		shapeLabel,
	})

	packDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "pointarray_poisson_duration_seconds",
		Help: "The time spent packing.",
	}, []string{
		shapeLabel,
	})
)

func instrumentRun(shape Shape, stats Stats) {
	labels := prometheus.Labels{shapeLabel: shape.String()}
	packRuns.With(labels).Inc()
	packAttempts.With(labels).Add(float64(stats.Attempts))
	packElements.With(labels).Observe(float64(stats.Elements))
	packDuration.With(labels).Observe(stats.Elapsed.Seconds())
}
