package api

import (
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
)

// PrefixGatherer keeps or drops metric families by name prefix.
type PrefixGatherer struct {
	gatherer prometheus.Gatherer
	prefixes []string
	// exclude inverts the match
	exclude bool
}

func NewFilteredGatherer(gatherer prometheus.Gatherer, prefix string) *PrefixGatherer {
	return &PrefixGatherer{gatherer: gatherer, prefixes: []string{prefix}}
}

func NewExcludedPrefixGatherer(gatherer prometheus.Gatherer, excluded []string) *PrefixGatherer {
	return &PrefixGatherer{gatherer: gatherer, prefixes: excluded, exclude: true}
}

func (g *PrefixGatherer) Gather() ([]*dto.MetricFamily, error) {
	all, err := g.gatherer.Gather()
	if err != nil {
		return nil, err
	}

	filtered := make([]*dto.MetricFamily, 0, len(all))
	for _, mf := range all {
		if mf.Name == nil {
			continue
		}
		if g.matches(mf.GetName()) != g.exclude {
			filtered = append(filtered, mf)
		}
	}

	return filtered, nil
}

func (g *PrefixGatherer) matches(name string) bool {
	for _, prefix := range g.prefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// SystemMetricsHandler serves everything except the steam_* application metrics.
func SystemMetricsHandler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(NewExcludedPrefixGatherer(gatherer, []string{"steam_"}), promhttp.HandlerOpts{})
}

// SteamHandler serves only steam_* metrics.
func SteamHandler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(NewFilteredGatherer(gatherer, "steam_"), promhttp.HandlerOpts{})
}
