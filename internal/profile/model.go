// Package profile assembles one user's Steam data into a denormalized Profile.
package profile

// Optional fields are pointers (or nil slices) and are omitted from the
// serialized form when no source value exists; they are never defaulted.

type Profile struct {
	SteamID    string   `json:"steamid"`
	Avatar     string   `json:"avatar"`
	LastLogoff *int64   `json:"lastlogoff,omitempty"`
	Username   string   `json:"username"`
	Level      int      `json:"level"`
	Badges     []Badge  `json:"badges"`
	Games      []Game   `json:"games"`
	Friends    []Friend `json:"friends"`
}

// Badge is a plain profile badge when CommunityID and AppID are nil, and a
// community badge tied to AppID otherwise.
type Badge struct {
	BadgeID        int     `json:"badgeid"`
	CompletionTime int64   `json:"completion_time"`
	Level          int     `json:"level"`
	Scarcity       int64   `json:"scarcity"`
	CommunityID    *string `json:"communityid"`
	AppID          *uint64 `json:"appid"`
}

type Game struct {
	AppID          uint64 `json:"appid"`
	Name           string `json:"name"`
	Playtime       int    `json:"playtime"`
	Playtime2Weeks *int   `json:"playtime_2weeks,omitempty"`
	LastPlayed     int64  `json:"last_played"`
	IconURL        string `json:"icon_url"`
	// NumAchievements and Achievements are set together, only for games whose
	// player achievement list could be read.
	NumAchievements *int          `json:"num_achievements,omitempty"`
	Achievements    []Achievement `json:"achievements,omitzero"`
}

type Achievement struct {
	APIName     string   `json:"apiname"`
	Achieved    int      `json:"achieved"`
	UnlockTime  int64    `json:"unlocktime"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Percent     *float64 `json:"percent,omitempty"`
	Icon        *string  `json:"icon,omitempty"`
	IconGray    *string  `json:"icongray,omitempty"`
	Hidden      *int     `json:"hidden,omitempty"`
}

type Friend struct {
	SteamID     string `json:"steamid"`
	Avatar      string `json:"avatar"`
	LastLogoff  *int64 `json:"lastlogoff,omitempty"`
	Username    string `json:"username"`
	FriendSince int64  `json:"friend_since"`
}
