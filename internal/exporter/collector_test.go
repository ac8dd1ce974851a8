package exporter

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/joshhsoj1902/steam-profile-exporter/internal/profile"
	"github.com/joshhsoj1902/steam-profile-exporter/internal/steam"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBuilder struct {
	profile *profile.Profile
	err     error
}

func (s stubBuilder) Build(context.Context, string) (*profile.Profile, error) {
	return s.profile, s.err
}

func TestCollect_Success(t *testing.T) {
	before := testutil.ToFloat64(buildsTotal.WithLabelValues("success"))

	c := NewCollector(stubBuilder{profile: &profile.Profile{
		SteamID:  "1",
		Username: "Alice 'The Gamer'",
		Badges:   []profile.Badge{},
		Games:    []profile.Game{},
		Friends:  []profile.Friend{},
	}})

	out, err := c.Collect(context.Background(), "1")
	require.NoError(t, err)
	assert.Contains(t, out, `export const profile: Profile = {\"steamid\":\"1\"`)
	assert.Equal(t, before+1, testutil.ToFloat64(buildsTotal.WithLabelValues("success")))
}

func TestCollect_Error(t *testing.T) {
	before := testutil.ToFloat64(buildsTotal.WithLabelValues("error"))

	c := NewCollector(stubBuilder{err: errors.New("boom")})
	out, err := c.Collect(context.Background(), "1")
	require.EqualError(t, err, "boom")
	assert.Empty(t, out)
	assert.Equal(t, before+1, testutil.ToFloat64(buildsTotal.WithLabelValues("error")))
}

// steamServer is a fake Steam Web API covering every endpoint the pipeline uses.
func steamServer(t *testing.T, status map[string]int) *httptest.Server {
	t.Helper()
	bodies := map[string]string{
		steam.PlayerSummariesEndpoint: `{"response":{"players":[{"steamid":"76561197960287930","personaname":"Alice \"The Gamer\"","avatarfull":"https://avatars.steamstatic.com/abc123_full.jpg","lastlogoff":1700000000}]}}`,
		steam.SteamLevelEndpoint:      `{"response":{"player_level":7}}`,
		steam.BadgesEndpoint:          `{"response":{"badges":[{"badgeid":13,"level":3,"completion_time":1,"xp":1,"scarcity":100},{"badgeid":1,"appid":440,"level":1,"completion_time":2,"xp":1,"communityid":"9","scarcity":5}]}}`,
		steam.OwnedGamesEndpoint:      `{"response":{"game_count":1,"games":[{"appid":440,"name":"Team Fortress 2","playtime_forever":60,"img_icon_url":"abc","rtime_last_played":5}]}}`,
		steam.PlayerAchievementsEndpoint: `{"playerstats":{"steamID":"76561197960287930","gameName":"TF2","achievements":[
			{"apiname":"A","achieved":1,"unlocktime":10,"name":"First","description":"d"},
			{"apiname":"B","achieved":0,"unlocktime":0,"name":"Second","description":"d"}],"success":true}}`,
		steam.GlobalAchievementsEndpoint: `{"achievementpercentages":{"achievements":[{"name":"A","percent":"33.333"}]}}`,
		steam.SchemaForGameEndpoint:      `{"game":{"availableGameStats":{"achievements":[{"name":"A","hidden":0,"icon":"https://steamcdn-a.akamaihd.net/steamcommunity/public/images/apps/440/a.jpg","icongray":"https://steamcdn-a.akamaihd.net/steamcommunity/public/images/apps/440/ag.jpg"}]}}}`,
		steam.FriendListEndpoint:         `{"friendslist":{"friends":[]}}`,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := strings.Trim(r.URL.Path, "/")
		if code, ok := status[route]; ok {
			w.WriteHeader(code)
			_, _ = w.Write([]byte("denied"))
			return
		}
		_, _ = w.Write([]byte(bodies[route]))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCollect_EndToEnd(t *testing.T) {
	srv := steamServer(t, nil)
	client := steam.NewClient("key", steam.WithOrigin(srv.URL))
	c := NewCollector(profile.NewAssembler(client, steam.StaggerPacer{Step: time.Millisecond}))

	out, err := c.Collect(context.Background(), "76561197960287930")
	require.NoError(t, err)

	assert.Contains(t, out, `\"username\":\"Alice \'The Gamer\'\"`)
	assert.Contains(t, out, `\"avatar\":\"abc123_full.jpg\"`)
	assert.Contains(t, out, `\"icon_url\":\"abc.jpg\"`)
	assert.Contains(t, out, `\"num_achievements\":2`)
	assert.Contains(t, out, `\"percent\":33.3`)
	assert.Contains(t, out, `\"icon\":\"440/a.jpg\"`)
	assert.NotContains(t, out, `\"apiname\":\"B\"`)
	assert.Contains(t, out, `\"friends\":[]`)
}

func TestCollect_EndToEnd_Forbidden(t *testing.T) {
	srv := steamServer(t, map[string]int{steam.SchemaForGameEndpoint: http.StatusForbidden})
	client := steam.NewClient("key", steam.WithOrigin(srv.URL))
	c := NewCollector(profile.NewAssembler(client, steam.StaggerPacer{Step: time.Millisecond}))

	out, err := c.Collect(context.Background(), "76561197960287930")
	require.Error(t, err)
	assert.Empty(t, out)
	assert.Contains(t, err.Error(), "403")
	assert.Contains(t, err.Error(), "Forbidden")

	var remoteErr *steam.RemoteError
	require.True(t, errors.As(err, &remoteErr))
	assert.Equal(t, "denied", remoteErr.Body)
}
