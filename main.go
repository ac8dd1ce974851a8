package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joshhsoj1902/steam-profile-exporter/internal/api"
	"github.com/joshhsoj1902/steam-profile-exporter/internal/config"
	"github.com/joshhsoj1902/steam-profile-exporter/internal/exporter"
	"github.com/joshhsoj1902/steam-profile-exporter/internal/logger"
	"github.com/joshhsoj1902/steam-profile-exporter/internal/profile"
	"github.com/joshhsoj1902/steam-profile-exporter/internal/runlock"
	"github.com/joshhsoj1902/steam-profile-exporter/internal/steam"
	"github.com/sirupsen/logrus"
)

// Usage:
//
//	steam-profile-exporter          render STEAM_ID's profile to stdout
//	steam-profile-exporter serve    serve /profile/{steam_id} over HTTP
func main() {
	cfg, err := config.Load("")
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load configuration")
	}
	logger.Configure(cfg.Log.Level, cfg.Log.Format)

	logger.Log.WithFields(logrus.Fields{
		"api_origin":    cfg.Steam.APIOrigin,
		"pacer":         cfg.Steam.Pacer,
		"stagger_step":  cfg.Steam.StaggerStep,
		"lang":          cfg.Steam.Lang,
		"steam_key_set": cfg.Steam.Key != "",
	}).Debug("Configuration loaded")

	client := steam.NewClient(cfg.Steam.Key,
		steam.WithOrigin(cfg.Steam.APIOrigin),
		steam.WithTimeout(cfg.Steam.RequestTimeout),
		steam.WithLang(cfg.Steam.Lang),
	)

	collector := exporter.NewCollector(profile.NewAssembler(client, newPacer(cfg.Steam)))

	if len(os.Args) > 1 && os.Args[1] == "serve" {
		serve(cfg, collector)
		return
	}

	if err := runOnce(cfg, collector); err != nil {
		logger.Log.WithError(err).Error("Profile export failed")
		os.Exit(1)
	}
}

// newPacer builds the configured pacer. One pacer is shared by every export,
// so concurrent serve requests draw from the same bucket.
func newPacer(cfg config.SteamConfig) steam.Pacer {
	if cfg.Pacer == config.PacerBucket {
		return steam.NewBucketPacer(cfg.StaggerStep)
	}
	return steam.StaggerPacer{Step: cfg.StaggerStep}
}

func runOnce(cfg *config.Config, collector *exporter.Collector) error {
	if cfg.Steam.SteamID == "" {
		return fmt.Errorf("steam.steam_id is required - set STEAM_ID environment variable")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	out, err := collector.Collect(ctx, cfg.Steam.SteamID)
	if err != nil {
		return err
	}

	_, err = os.Stdout.WriteString(out)
	return err
}

func serve(cfg *config.Config, collector *exporter.Collector) {
	var locker api.RunLocker
	if cfg.Redis.Addr != "" {
		lock := runlock.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.LockTTL)
		defer lock.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := lock.Ping(pingCtx); err != nil {
			logger.Log.WithError(err).WithField("redis_addr", cfg.Redis.Addr).Warn("Redis not reachable at startup")
		}
		cancel()

		locker = lock
		logger.Log.WithFields(logrus.Fields{
			"redis_addr": cfg.Redis.Addr,
			"lock_ttl":   cfg.Redis.LockTTL,
		}).Info("Per-steamid run lock enabled")
	}

	handlers := api.NewHandlers(collector, locker)
	router := api.NewRouter(handlers)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.WithField("port", cfg.HTTP.Port).Info("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Log.WithError(err).Fatal("Server forced to shutdown")
	}

	logger.Log.Info("Server exited")
}
