package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joshhsoj1902/steam-profile-exporter/internal/logger"
	"github.com/joshhsoj1902/steam-profile-exporter/internal/steam"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

type SteamCollector interface {
	Collect(ctx context.Context, steamId string) (string, error)
}

// RunLocker serializes exports per steamid. Acquire reports false when
// another export for the same steamid is in flight.
type RunLocker interface {
	Acquire(ctx context.Context, steamId string) (release func(), acquired bool, err error)
}

type Handlers struct {
	steamCollector SteamCollector
	locker         RunLocker
	gatherer       prometheus.Gatherer
}

// NewHandlers wires the handlers. locker may be nil.
func NewHandlers(steamCollector SteamCollector, locker RunLocker) *Handlers {
	return &Handlers{
		steamCollector: steamCollector,
		locker:         locker,
		gatherer:       prometheus.DefaultGatherer,
	}
}

// HandleAllMetrics handles /metrics - serves only system metrics (Go runtime, process, etc.)
func (h *Handlers) HandleAllMetrics(w http.ResponseWriter, r *http.Request) {
	logger.Log.WithFields(logrus.Fields{
		"path":   r.URL.Path,
		"method": r.Method,
		"ip":     r.RemoteAddr,
	}).Debug("System metrics request received")

	SystemMetricsHandler(h.gatherer).ServeHTTP(w, r)
}

// HandleSteamMetrics handles /metrics/steam
func (h *Handlers) HandleSteamMetrics(w http.ResponseWriter, r *http.Request) {
	logger.Log.WithFields(logrus.Fields{
		"path":   r.URL.Path,
		"method": r.Method,
		"ip":     r.RemoteAddr,
	}).Debug("Steam metrics request received")

	SteamHandler(h.gatherer).ServeHTTP(w, r)
}

// HandleProfile handles /profile/{steam_id} and responds with the rendered literal.
func (h *Handlers) HandleProfile(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	steamId := chi.URLParam(r, "steam_id")

	logger.Log.WithFields(logrus.Fields{
		"path":     r.URL.Path,
		"method":   r.Method,
		"steam_id": steamId,
		"ip":       r.RemoteAddr,
	}).Info("Profile request received")

	if _, err := strconv.ParseUint(steamId, 10, 64); err != nil {
		logger.Log.WithField("steam_id", steamId).Warn("Profile request with non-numeric steam_id")
		http.Error(w, "steam_id must be a numeric 64-bit Steam ID", http.StatusBadRequest)
		return
	}

	if h.steamCollector == nil {
		logger.Log.Error("Steam collector not initialized")
		http.Error(w, "Steam collector not initialized - STEAM_KEY environment variable is required", http.StatusInternalServerError)
		return
	}

	if h.locker != nil {
		release, acquired, err := h.locker.Acquire(r.Context(), steamId)
		if err != nil {
			logger.Log.WithError(err).WithField("steam_id", steamId).Error("Failed to acquire run lock")
			http.Error(w, "run lock unavailable", http.StatusServiceUnavailable)
			return
		}
		if !acquired {
			logger.Log.WithField("steam_id", steamId).Warn("Export already running for steam_id")
			http.Error(w, "an export for this steam_id is already running", http.StatusTooManyRequests)
			return
		}
		defer release()
	}

	out, err := h.steamCollector.Collect(r.Context(), steamId)
	if err != nil {
		status := http.StatusInternalServerError
		var remoteErr *steam.RemoteError
		var decodeErr *steam.DecodeError
		if errors.As(err, &remoteErr) || errors.As(err, &decodeErr) {
			status = http.StatusBadGateway
		}

		logger.Log.WithFields(logrus.Fields{
			"steam_id": steamId,
			"error":    err.Error(),
			"status":   status,
			"duration": time.Since(start),
		}).Error("Failed to export Steam profile")
		http.Error(w, err.Error(), status)
		return
	}

	logger.Log.WithFields(logrus.Fields{
		"steam_id": steamId,
		"duration": time.Since(start),
	}).Info("Profile export completed successfully")

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(out))
}

// HandleRoot serves a simple front page
func (h *Handlers) HandleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	w.Write([]byte(`<html>
<head><title>Steam Profile Exporter</title></head>
<body>
	<h1>Steam Profile Exporter</h1>
	<p>Renders a Steam profile with badges, games, achievements and friends as an embeddable source literal</p>
	<h2>Endpoints:</h2>
	<ul>
		<li><a href="/profile/{steam_id}">/profile/{steam_id}</a> - Rendered profile literal</li>
		<li><a href="/metrics">/metrics</a> - System metrics only (Go runtime, process, etc.)</li>
		<li><a href="/metrics/steam">/metrics/steam</a> - Steam API and export metrics</li>
	</ul>
</body>
</html>`))
}
