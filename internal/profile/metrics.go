package profile

import "github.com/prometheus/client_golang/prometheus"

var (
	gamesScheduled = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "steam",
		Subsystem: "profile",
		Name:      "games_scheduled_total",
		Help:      "Owned games handed to the achievement fan-out",
	})

	achievementsJoined = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "steam",
		Subsystem: "profile",
		Name:      "achievements_joined_total",
		Help:      "Achieved achievements merged with global percentages and schema metadata",
	})
)

func init() {
	prometheus.MustRegister(gamesScheduled)
	prometheus.MustRegister(achievementsJoined)
}
