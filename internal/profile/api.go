package profile

import (
	"context"

	"github.com/joshhsoj1902/steam-profile-exporter/internal/steam"
)

// AchievementSource is the part of the Steam API a Joiner needs.
type AchievementSource interface {
	GetPlayerAchievements(ctx context.Context, steamId string, appId uint64) (steam.PlayerStats, error)
	GetGlobalAchievementPercentages(ctx context.Context, appId uint64) ([]steam.GlobalAchievement, error)
	GetSchemaForGame(ctx context.Context, appId uint64) ([]steam.SchemaAchievement, error)
}

// SteamAPI is implemented by *steam.Client.
type SteamAPI interface {
	AchievementSource
	GetPlayerSummaries(ctx context.Context, steamIds []string) ([]steam.PlayerSummary, error)
	GetFriendList(ctx context.Context, steamId string) ([]steam.FriendEntry, error)
	GetOwnedGames(ctx context.Context, steamId string) (steam.OwnedGamesResponse, error)
	GetSteamLevel(ctx context.Context, steamId string) (int, error)
	GetBadges(ctx context.Context, steamId string) (steam.BadgesResponse, error)
}

var _ SteamAPI = (*steam.Client)(nil)
