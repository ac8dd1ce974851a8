package exporter

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	buildsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "steam",
		Subsystem: "profile",
		Name:      "builds_total",
		Help:      "Profile exports by result",
	}, []string{"result"})

	buildDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "steam",
		Subsystem: "profile",
		Name:      "build_duration_seconds",
		Help:      "Wall time of a full profile export",
		Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
	})
)

func init() {
	prometheus.MustRegister(buildsTotal)
	prometheus.MustRegister(buildDuration)
}

func observeBuild(result string, start time.Time) {
	buildsTotal.WithLabelValues(result).Inc()
	buildDuration.Observe(time.Since(start).Seconds())
}
