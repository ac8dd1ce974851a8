// Package exporter runs the full pipeline: assemble a profile, then render it.
package exporter

import (
	"context"
	"time"

	"github.com/joshhsoj1902/steam-profile-exporter/internal/literal"
	"github.com/joshhsoj1902/steam-profile-exporter/internal/logger"
	"github.com/joshhsoj1902/steam-profile-exporter/internal/profile"
	"github.com/sirupsen/logrus"
)

// Builder is implemented by *profile.Assembler.
type Builder interface {
	Build(ctx context.Context, steamId string) (*profile.Profile, error)
}

type Collector struct {
	builder Builder
}

func NewCollector(builder Builder) *Collector {
	return &Collector{builder: builder}
}

// Collect returns the rendered profile literal for steamId. No partial output
// is produced on error.
func (c *Collector) Collect(ctx context.Context, steamId string) (string, error) {
	start := time.Now()

	p, err := c.builder.Build(ctx, steamId)
	if err == nil {
		var out string
		out, err = literal.Render(p)
		if err == nil {
			observeBuild("success", start)
			logger.Log.WithFields(logrus.Fields{
				"steam_id": steamId,
				"bytes":    len(out),
				"duration": time.Since(start),
			}).Info("Rendered profile literal")
			return out, nil
		}
	}

	observeBuild("error", start)
	logger.Log.WithFields(logrus.Fields{
		"steam_id": steamId,
		"error":    err.Error(),
		"duration": time.Since(start),
	}).Error("Profile export failed")
	return "", err
}
