package profile

import (
	"context"

	"github.com/joshhsoj1902/steam-profile-exporter/internal/logger"
	"github.com/joshhsoj1902/steam-profile-exporter/internal/steam"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// GameAchievements is the joined achievement data for one game.
type GameAchievements struct {
	AppID uint64
	// Total is the game's full achievement count, taken before the
	// achieved-only filter: the larger of the schema and the player's list.
	Total        int
	Achievements []Achievement
}

// Joiner merges a player's achievement states with the app's global unlock
// percentages and achievement schema.
type Joiner struct {
	source AchievementSource
}

func NewJoiner(source AchievementSource) *Joiner {
	return &Joiner{source: source}
}

// Join returns nil without error when the player has no achievement list for
// the app (no stats, or the section is private).
func (j *Joiner) Join(ctx context.Context, steamId string, appId uint64) (*GameAchievements, error) {
	stats, err := j.source.GetPlayerAchievements(ctx, steamId, appId)
	if err != nil {
		return nil, errors.Wrap(err, "player achievements")
	}
	if stats.Achievements == nil {
		logger.Log.WithFields(logrus.Fields{
			"steam_id": steamId,
			"app_id":   appId,
		}).Debug("No player achievement list, skipping game")
		return nil, nil
	}

	globals, err := j.source.GetGlobalAchievementPercentages(ctx, appId)
	if err != nil {
		return nil, errors.Wrap(err, "global achievement percentages")
	}
	schema, err := j.source.GetSchemaForGame(ctx, appId)
	if err != nil {
		return nil, errors.Wrap(err, "achievement schema")
	}

	percentByName := make(map[string]float64, len(globals))
	for _, g := range globals {
		percentByName[g.Name] = float64(g.Percent)
	}
	metaByName := make(map[string]steam.SchemaAchievement, len(schema))
	for _, s := range schema {
		metaByName[s.Name] = s
	}

	result := &GameAchievements{
		AppID:        appId,
		Total:        max(len(stats.Achievements), len(schema)),
		Achievements: make([]Achievement, 0, len(stats.Achievements)),
	}

	for _, a := range stats.Achievements {
		if a.Achieved == 0 {
			continue
		}
		result.Achievements = append(result.Achievements, joinAchievement(a, percentByName, metaByName))
	}

	achievementsJoined.Add(float64(len(result.Achievements)))
	logger.Log.WithFields(logrus.Fields{
		"steam_id": steamId,
		"app_id":   appId,
		"total":    result.Total,
		"achieved": len(result.Achievements),
	}).Debug("Joined achievements for game")

	return result, nil
}

// joinAchievement attaches percent and schema fields only on a key match.
func joinAchievement(a steam.PlayerAchievement, percentByName map[string]float64, metaByName map[string]steam.SchemaAchievement) Achievement {
	out := Achievement{
		APIName:     a.APIName,
		Achieved:    a.Achieved,
		UnlockTime:  a.UnlockTime,
		Name:        normalizeQuotes(a.Name),
		Description: normalizeQuotes(a.Description),
	}

	if p, ok := percentByName[a.APIName]; ok {
		rounded := roundPercent(p)
		out.Percent = &rounded
	}

	if meta, ok := metaByName[a.APIName]; ok {
		icon, iconGray, hidden := meta.Icon, meta.IconGray, meta.Hidden
		out.Icon = &icon
		out.IconGray = &iconGray
		out.Hidden = &hidden
		if out.Name == "" {
			out.Name = normalizeQuotes(meta.DisplayName)
		}
		if out.Description == "" {
			out.Description = normalizeQuotes(meta.Description)
		}
	}

	return out
}
