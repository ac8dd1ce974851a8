package profile

import (
	"context"

	"github.com/joshhsoj1902/steam-profile-exporter/internal/logger"
	"github.com/joshhsoj1902/steam-profile-exporter/internal/steam"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Scheduler runs a Joiner for every game concurrently. Each Joiner's start is
// delayed by the Pacer according to its index; the Joiners themselves are
// never serialized.
type Scheduler struct {
	joiner *Joiner
	pacer  steam.Pacer
}

func NewScheduler(joiner *Joiner, pacer steam.Pacer) *Scheduler {
	if pacer == nil {
		pacer = steam.StaggerPacer{Step: steam.DefaultStaggerStep}
	}
	return &Scheduler{joiner: joiner, pacer: pacer}
}

// Run returns joined achievements keyed by appid. Games without an
// achievement list have no entry. The first Joiner error cancels the rest and
// is returned.
func (s *Scheduler) Run(ctx context.Context, steamId string, games []steam.OwnedGame) (map[uint64]GameAchievements, error) {
	// one slot per game, so no two goroutines share a write target
	results := make([]*GameAchievements, len(games))

	g, gctx := errgroup.WithContext(ctx)
	for i, game := range games {
		g.Go(func() error {
			if err := s.pacer.Wait(gctx, i); err != nil {
				return err
			}
			res, err := s.joiner.Join(gctx, steamId, game.AppId)
			if err != nil {
				logger.Log.WithFields(logrus.Fields{
					"steam_id": steamId,
					"game":     game.Name,
					"app_id":   game.AppId,
					"error":    err.Error(),
				}).Error("Achievement join failed, aborting")
				return errors.Wrapf(err, "achievements for app %d", game.AppId)
			}
			results[i] = res
			return nil
		})
	}
	gamesScheduled.Add(float64(len(games)))

	if err := g.Wait(); err != nil {
		return nil, err
	}

	byApp := make(map[uint64]GameAchievements, len(games))
	for _, res := range results {
		if res != nil {
			byApp[res.AppID] = *res
		}
	}
	return byApp, nil
}
