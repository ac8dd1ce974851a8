package profile

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/joshhsoj1902/steam-profile-exporter/internal/logger"
	"github.com/joshhsoj1902/steam-profile-exporter/internal/steam"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Assembler builds a Profile from the Steam API, failing on the first error.
type Assembler struct {
	api       SteamAPI
	scheduler *Scheduler
}

func NewAssembler(api SteamAPI, pacer steam.Pacer) *Assembler {
	return &Assembler{
		api:       api,
		scheduler: NewScheduler(NewJoiner(api), pacer),
	}
}

func (a *Assembler) Build(ctx context.Context, steamId string) (*Profile, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"run_id":   uuid.NewString(),
		"steam_id": steamId,
	})
	log.Info("Starting profile build")

	summaries, err := a.api.GetPlayerSummaries(ctx, []string{steamId})
	if err != nil {
		return nil, errors.Wrap(err, "player summary")
	}
	if len(summaries) == 0 {
		return nil, fmt.Errorf("no player summary found for Steam ID %s", steamId)
	}
	user := summaries[0]

	level, err := a.api.GetSteamLevel(ctx, steamId)
	if err != nil {
		return nil, errors.Wrap(err, "steam level")
	}

	badgesResp, err := a.api.GetBadges(ctx, steamId)
	if err != nil {
		return nil, errors.Wrap(err, "badges")
	}

	owned, err := a.api.GetOwnedGames(ctx, steamId)
	if err != nil {
		return nil, errors.Wrap(err, "owned games")
	}
	ownedGames := uniqueGames(owned.Games)

	log.WithField("game_count", len(ownedGames)).Info("Fetching achievements for owned games")
	byApp, err := a.scheduler.Run(ctx, steamId, ownedGames)
	if err != nil {
		return nil, err
	}

	friends, err := a.friends(ctx, steamId)
	if err != nil {
		return nil, err
	}

	p := &Profile{
		SteamID:    user.SteamID,
		Avatar:     user.AvatarFull,
		LastLogoff: user.LastLogoff,
		Username:   normalizeQuotes(user.PersonaName),
		Level:      level,
		Badges:     badges(badgesResp.Badges),
		Games:      games(ownedGames, byApp),
		Friends:    friends,
	}

	log.WithFields(logrus.Fields{
		"badges":           len(p.Badges),
		"games":            len(p.Games),
		"games_with_stats": len(byApp),
		"friends":          len(p.Friends),
	}).Info("Completed profile build")

	return p, nil
}

// uniqueGames keeps the first entry for each appid, preserving order.
func uniqueGames(in []steam.OwnedGame) []steam.OwnedGame {
	seen := make(map[uint64]struct{}, len(in))
	out := make([]steam.OwnedGame, 0, len(in))
	for _, g := range in {
		if _, dup := seen[g.AppId]; dup {
			continue
		}
		seen[g.AppId] = struct{}{}
		out = append(out, g)
	}
	return out
}

func badges(in []steam.Badge) []Badge {
	out := make([]Badge, 0, len(in))
	for _, b := range in {
		badge := Badge{
			BadgeID:        b.BadgeID,
			CompletionTime: b.CompletionTime,
			Level:          b.Level,
			Scarcity:       b.Scarcity,
		}
		if b.Kind == steam.BadgeCommunity {
			communityID := string(*b.CommunityID)
			badge.CommunityID = &communityID
			badge.AppID = b.AppID
		}
		out = append(out, badge)
	}
	return out
}

// games left-joins owned games with the per-appid achievement results.
func games(owned []steam.OwnedGame, byApp map[uint64]GameAchievements) []Game {
	out := make([]Game, 0, len(owned))
	for _, g := range owned {
		game := Game{
			AppID:          g.AppId,
			Name:           normalizeQuotes(g.Name),
			Playtime:       g.PlaytimeForever,
			Playtime2Weeks: g.Playtime2Weeks,
			LastPlayed:     g.RTimeLastPlayed,
			IconURL:        gameIconURL(g.AppId, g.ImgIconURL),
		}
		if res, ok := byApp[g.AppId]; ok {
			total := res.Total
			game.NumAchievements = &total
			game.Achievements = res.Achievements
		}
		out = append(out, game)
	}
	return out
}

// friends resolves the relationship list into identities, batching summary
// lookups at the endpoint limit. Output order follows the summary responses.
func (a *Assembler) friends(ctx context.Context, steamId string) ([]Friend, error) {
	entries, err := a.api.GetFriendList(ctx, steamId)
	if err != nil {
		return nil, errors.Wrap(err, "friend list")
	}

	since := make(map[string]int64, len(entries))
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if _, dup := since[e.SteamID]; dup {
			continue
		}
		since[e.SteamID] = e.FriendSince
		ids = append(ids, e.SteamID)
	}

	friends := make([]Friend, 0, len(ids))
	for start := 0; start < len(ids); start += steam.MaxSummaryIDs {
		end := min(start+steam.MaxSummaryIDs, len(ids))
		players, err := a.api.GetPlayerSummaries(ctx, ids[start:end])
		if err != nil {
			return nil, errors.Wrap(err, "friend summaries")
		}
		for _, p := range players {
			friendSince, ok := since[p.SteamID]
			if !ok {
				logger.Log.WithFields(logrus.Fields{
					"steam_id":  steamId,
					"friend_id": p.SteamID,
				}).Warn("Summary returned for a steamid outside the friend list, skipping")
				continue
			}
			friends = append(friends, Friend{
				SteamID:     p.SteamID,
				Avatar:      p.AvatarFull,
				LastLogoff:  p.LastLogoff,
				Username:    normalizeQuotes(p.PersonaName),
				FriendSince: friendSince,
			})
		}
	}

	return friends, nil
}
