package api

import (
	"github.com/go-chi/chi/v5"
)

func NewRouter(handlers *Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Get("/", handlers.HandleRoot)

	// Process and runtime metrics only
	r.Get("/metrics", handlers.HandleAllMetrics)

	// Steam API and profile export metrics
	r.Get("/metrics/steam", handlers.HandleSteamMetrics)

	r.Get("/profile/{steam_id}", handlers.HandleProfile)

	return r
}
