package profile

import (
	"context"
	"sync"

	"github.com/joshhsoj1902/steam-profile-exporter/internal/steam"
)

// fakeAPI is an in-memory SteamAPI. It is safe for concurrent use.
type fakeAPI struct {
	mu sync.Mutex

	summaries map[string]steam.PlayerSummary
	friends   []steam.FriendEntry
	level     int
	badges    steam.BadgesResponse
	owned     steam.OwnedGamesResponse
	stats     map[uint64]steam.PlayerStats
	globals   map[uint64][]steam.GlobalAchievement
	schemas   map[uint64][]steam.SchemaAchievement

	// errs fails a method by name; appErrs fails GetPlayerAchievements per app.
	errs    map[string]error
	appErrs map[uint64]error

	// beforePlayerAchievements runs before a player achievement lookup returns.
	beforePlayerAchievements func(ctx context.Context, appId uint64) error

	// unrequested is appended to every GetPlayerSummaries answer.
	unrequested []steam.PlayerSummary

	calls          map[string]int
	summaryBatches [][]string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		summaries: map[string]steam.PlayerSummary{},
		stats:     map[uint64]steam.PlayerStats{},
		globals:   map[uint64][]steam.GlobalAchievement{},
		schemas:   map[uint64][]steam.SchemaAchievement{},
		errs:      map[string]error{},
		appErrs:   map[uint64]error{},
		calls:     map[string]int{},
	}
}

func (f *fakeAPI) record(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
	return f.errs[name]
}

func (f *fakeAPI) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

// GetPlayerSummaries answers in reverse request order, like a server that
// does not preserve ordering.
func (f *fakeAPI) GetPlayerSummaries(_ context.Context, steamIds []string) ([]steam.PlayerSummary, error) {
	if err := f.record("GetPlayerSummaries"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.summaryBatches = append(f.summaryBatches, append([]string(nil), steamIds...))
	f.mu.Unlock()

	out := []steam.PlayerSummary{}
	for i := len(steamIds) - 1; i >= 0; i-- {
		if p, ok := f.summaries[steamIds[i]]; ok {
			out = append(out, p)
		}
	}
	return append(out, f.unrequested...), nil
}

func (f *fakeAPI) GetFriendList(_ context.Context, _ string) ([]steam.FriendEntry, error) {
	if err := f.record("GetFriendList"); err != nil {
		return nil, err
	}
	return f.friends, nil
}

func (f *fakeAPI) GetPlayerAchievements(ctx context.Context, _ string, appId uint64) (steam.PlayerStats, error) {
	if err := f.record("GetPlayerAchievements"); err != nil {
		return steam.PlayerStats{}, err
	}
	if f.beforePlayerAchievements != nil {
		if err := f.beforePlayerAchievements(ctx, appId); err != nil {
			return steam.PlayerStats{}, err
		}
	}
	if err := f.appErrs[appId]; err != nil {
		return steam.PlayerStats{}, err
	}
	return f.stats[appId], nil
}

func (f *fakeAPI) GetGlobalAchievementPercentages(_ context.Context, appId uint64) ([]steam.GlobalAchievement, error) {
	if err := f.record("GetGlobalAchievementPercentages"); err != nil {
		return nil, err
	}
	return f.globals[appId], nil
}

func (f *fakeAPI) GetSchemaForGame(_ context.Context, appId uint64) ([]steam.SchemaAchievement, error) {
	if err := f.record("GetSchemaForGame"); err != nil {
		return nil, err
	}
	return f.schemas[appId], nil
}

func (f *fakeAPI) GetOwnedGames(_ context.Context, _ string) (steam.OwnedGamesResponse, error) {
	if err := f.record("GetOwnedGames"); err != nil {
		return steam.OwnedGamesResponse{}, err
	}
	return f.owned, nil
}

func (f *fakeAPI) GetSteamLevel(_ context.Context, _ string) (int, error) {
	if err := f.record("GetSteamLevel"); err != nil {
		return 0, err
	}
	return f.level, nil
}

func (f *fakeAPI) GetBadges(_ context.Context, _ string) (steam.BadgesResponse, error) {
	if err := f.record("GetBadges"); err != nil {
		return steam.BadgesResponse{}, err
	}
	return f.badges, nil
}

func ptr[T any](v T) *T { return &v }
