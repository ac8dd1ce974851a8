package steam

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/joshhsoj1902/steam-profile-exporter/internal/logger"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	APIOrigin = "https://api.steampowered.com"

	PlayerSummariesEndpoint    = "ISteamUser/GetPlayerSummaries/v0002"
	FriendListEndpoint         = "ISteamUser/GetFriendList/v0001"
	PlayerAchievementsEndpoint = "ISteamUserStats/GetPlayerAchievements/v0001"
	GlobalAchievementsEndpoint = "ISteamUserStats/GetGlobalAchievementPercentagesForApp/v0002"
	SchemaForGameEndpoint      = "ISteamUserStats/GetSchemaForGame/v2"
	OwnedGamesEndpoint         = "IPlayerService/GetOwnedGames/v0001"
	SteamLevelEndpoint         = "IPlayerService/GetSteamLevel/v1"
	BadgesEndpoint             = "IPlayerService/GetBadges/v1"

	// MaxSummaryIDs is the most steamids GetPlayerSummaries accepts per call.
	MaxSummaryIDs = 100
)

type Client struct {
	apiKey     string
	origin     string
	lang       string
	httpClient *http.Client
}

type Option func(*Client)

// WithOrigin points the client at another API host, e.g. a test server.
func WithOrigin(origin string) Option {
	return func(c *Client) {
		c.origin = strings.TrimRight(origin, "/")
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithLang sets the language used for achievement names and descriptions.
func WithLang(lang string) Option {
	return func(c *Client) {
		c.lang = lang
	}
}

func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey: apiKey,
		origin: APIOrigin,
		lang:   "en",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) getJSON(ctx context.Context, endpoint string, params map[string]string, target interface{}) error {
	url := c.origin + "/" + endpoint + "/"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}

	q := req.URL.Query()
	for k, v := range params {
		q.Add(k, v)
	}
	q.Add("key", c.apiKey)
	q.Add("format", "json")
	req.URL.RawQuery = q.Encode()

	if logger.Log.IsLevelEnabled(logrus.DebugLevel) {
		debugQuery := req.URL.Query()
		debugQuery.Set("key", "[HIDDEN]")
		logger.Log.WithFields(logrus.Fields{
			"endpoint": endpoint,
			"params":   debugQuery.Encode(),
		}).Debug("Making Steam API request")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		apiRequests.WithLabelValues(endpoint, "error").Inc()
		logger.Log.WithError(err).WithField("endpoint", endpoint).Error("Steam API request failed")
		return errors.Wrapf(err, "%s request failed", endpoint)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	apiRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	apiRequests.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()
	if err != nil {
		logger.Log.WithError(err).WithField("endpoint", endpoint).Error("Failed to read Steam API response body")
		return errors.Wrapf(err, "%s: failed to read response body", endpoint)
	}

	logger.Log.WithFields(logrus.Fields{
		"endpoint":    endpoint,
		"status_code": resp.StatusCode,
		"body_length": len(body),
	}).Debug("Steam API response received")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		remoteErr := &RemoteError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Reason:     reasonPhrase(resp),
			Body:       string(body),
		}
		logger.Log.WithFields(logrus.Fields{
			"endpoint":    endpoint,
			"status_code": resp.StatusCode,
			"body":        preview(body),
		}).Error("Unexpected Steam API response")
		return remoteErr
	}

	// Check if the response starts with HTML (common error case)
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '<' {
		logger.Log.WithFields(logrus.Fields{
			"endpoint": endpoint,
			"body":     preview(body),
		}).Error("Received HTML instead of JSON from Steam API")
		return &DecodeError{Endpoint: endpoint, Err: fmt.Errorf("received HTML instead of JSON: %s", preview(body))}
	}

	if err := json.Unmarshal(body, target); err != nil {
		logger.Log.WithError(err).WithFields(logrus.Fields{
			"endpoint":     endpoint,
			"body_preview": preview(body),
		}).Error("Failed to decode Steam API JSON response")
		return &DecodeError{Endpoint: endpoint, Err: err}
	}

	return nil
}

// reasonPhrase extracts "Forbidden" from a "403 Forbidden" status line.
func reasonPhrase(resp *http.Response) string {
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason == "" {
		reason = http.StatusText(resp.StatusCode)
	}
	return reason
}

func preview(body []byte) string {
	s := string(body)
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}

func validateSteamID(steamId string) error {
	if steamId == "" {
		return fmt.Errorf("steam ID cannot be empty")
	}
	// Steam IDs are numeric, typically 17 digits
	if _, err := strconv.ParseUint(steamId, 10, 64); err != nil {
		return fmt.Errorf("invalid Steam ID format: '%s' - Steam IDs must be numeric (e.g., 76561197987123908). You may have used a username instead", steamId)
	}
	return nil
}

// GetPlayerSummaries returns identity records for up to MaxSummaryIDs Steam IDs.
// Players are not guaranteed to come back in request order.
func (c *Client) GetPlayerSummaries(ctx context.Context, steamIds []string) ([]PlayerSummary, error) {
	if len(steamIds) == 0 {
		return nil, fmt.Errorf("steamIds cannot be empty")
	}
	if len(steamIds) > MaxSummaryIDs {
		return nil, fmt.Errorf("at most %d steamIds per request, got %d", MaxSummaryIDs, len(steamIds))
	}

	params := map[string]string{
		"steamids": strings.Join(steamIds, ","),
	}

	var resp PlayerSummariesHttpResponse
	if err := c.getJSON(ctx, PlayerSummariesEndpoint, params, &resp); err != nil {
		return nil, err
	}
	if resp.Response == nil || resp.Response.Players == nil {
		return nil, missingField(PlayerSummariesEndpoint, "response.players")
	}

	return resp.Response.Players, nil
}

// GetFriendList returns the relationship list of a public profile.
func (c *Client) GetFriendList(ctx context.Context, steamId string) ([]FriendEntry, error) {
	if err := validateSteamID(steamId); err != nil {
		return nil, err
	}

	params := map[string]string{
		"steamid":      steamId,
		"relationship": "all",
	}

	var resp FriendListHttpResponse
	if err := c.getJSON(ctx, FriendListEndpoint, params, &resp); err != nil {
		return nil, err
	}
	if resp.FriendsList == nil {
		return nil, missingField(FriendListEndpoint, "friendslist")
	}

	return resp.FriendsList.Friends, nil
}

// GetPlayerAchievements returns the player's achievement states for one app.
func (c *Client) GetPlayerAchievements(ctx context.Context, steamId string, appId uint64) (PlayerStats, error) {
	params := map[string]string{
		"steamid": steamId,
		"appid":   strconv.FormatUint(appId, 10),
		"l":       c.lang,
	}

	var resp PlayerAchievementsHttpResponse
	if err := c.getJSON(ctx, PlayerAchievementsEndpoint, params, &resp); err != nil {
		return PlayerStats{}, err
	}
	if resp.PlayerStats == nil {
		return PlayerStats{}, missingField(PlayerAchievementsEndpoint, "playerstats")
	}

	return *resp.PlayerStats, nil
}

// GetOwnedGames retrieves the list of games owned by a Steam user
func (c *Client) GetOwnedGames(ctx context.Context, steamId string) (OwnedGamesResponse, error) {
	if err := validateSteamID(steamId); err != nil {
		return OwnedGamesResponse{}, err
	}

	params := map[string]string{
		"steamid":                   steamId,
		"include_appinfo":           "true",
		"include_played_free_games": "true",
	}

	var resp OwnedGamesHttpResponse
	if err := c.getJSON(ctx, OwnedGamesEndpoint, params, &resp); err != nil {
		return OwnedGamesResponse{}, err
	}
	if resp.Response == nil {
		return OwnedGamesResponse{}, missingField(OwnedGamesEndpoint, "response")
	}

	return *resp.Response, nil
}

// GetGlobalAchievementPercentages returns the global unlock table for an app.
// Apps without achievements yield an empty table.
func (c *Client) GetGlobalAchievementPercentages(ctx context.Context, appId uint64) ([]GlobalAchievement, error) {
	params := map[string]string{
		"gameid": strconv.FormatUint(appId, 10),
	}

	var resp GlobalAchievementHttpResponse
	if err := c.getJSON(ctx, GlobalAchievementsEndpoint, params, &resp); err != nil {
		return nil, err
	}
	if resp.AchievementPercentages == nil {
		return []GlobalAchievement{}, nil
	}

	return resp.AchievementPercentages.Achievements, nil
}

// GetSchemaForGame returns achievement metadata (display text, icons, hidden flag).
func (c *Client) GetSchemaForGame(ctx context.Context, appId uint64) ([]SchemaAchievement, error) {
	params := map[string]string{
		"appid": strconv.FormatUint(appId, 10),
		"l":     c.lang,
	}

	var resp SchemaHttpResponse
	if err := c.getJSON(ctx, SchemaForGameEndpoint, params, &resp); err != nil {
		return nil, err
	}
	if resp.Game == nil || resp.Game.AvailableGameStats == nil {
		return []SchemaAchievement{}, nil
	}

	return resp.Game.AvailableGameStats.Achievements, nil
}

func (c *Client) GetSteamLevel(ctx context.Context, steamId string) (int, error) {
	if err := validateSteamID(steamId); err != nil {
		return 0, err
	}

	params := map[string]string{
		"steamid": steamId,
	}

	var resp SteamLevelHttpResponse
	if err := c.getJSON(ctx, SteamLevelEndpoint, params, &resp); err != nil {
		return 0, err
	}
	if resp.Response == nil || resp.Response.PlayerLevel == nil {
		return 0, missingField(SteamLevelEndpoint, "response.player_level")
	}

	return *resp.Response.PlayerLevel, nil
}

func (c *Client) GetBadges(ctx context.Context, steamId string) (BadgesResponse, error) {
	if err := validateSteamID(steamId); err != nil {
		return BadgesResponse{}, err
	}

	params := map[string]string{
		"steamid": steamId,
	}

	var resp BadgesHttpResponse
	if err := c.getJSON(ctx, BadgesEndpoint, params, &resp); err != nil {
		return BadgesResponse{}, err
	}
	if resp.Response == nil {
		return BadgesResponse{}, missingField(BadgesEndpoint, "response")
	}

	return *resp.Response, nil
}
