package steam

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	apiRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "steam",
		Subsystem: "api",
		Name:      "requests_total",
		Help:      "Steam Web API requests by endpoint and HTTP status code (\"error\" for transport failures)",
	}, []string{"endpoint", "code"})

	apiRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "steam",
		Subsystem: "api",
		Name:      "request_duration_seconds",
		Help:      "Latency of Steam Web API requests",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint"})
)

func init() {
	prometheus.MustRegister(apiRequests)
	prometheus.MustRegister(apiRequestDuration)
}
