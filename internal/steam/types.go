package steam

import "encoding/json"

// Fields that Steam may omit are pointers or slices; a nil value means the
// field was absent from the response.

type PlayerSummary struct {
	SteamID      string `json:"steamid"`
	PersonaName  string `json:"personaname"`
	ProfileURL   string `json:"profileurl"`
	Avatar       string `json:"avatar"`
	AvatarMedium string `json:"avatarmedium"`
	AvatarFull   string `json:"avatarfull"`
	PersonaState int    `json:"personastate"`
	LastLogoff   *int64 `json:"lastlogoff,omitempty"`
}

type PlayerSummariesHttpResponse struct {
	Response *struct {
		Players []PlayerSummary `json:"players"`
	} `json:"response"`
}

type FriendEntry struct {
	SteamID      string `json:"steamid"`
	Relationship string `json:"relationship"`
	FriendSince  int64  `json:"friend_since"`
}

type FriendListHttpResponse struct {
	FriendsList *struct {
		Friends []FriendEntry `json:"friends"`
	} `json:"friendslist"`
}

type PlayerAchievement struct {
	APIName     string `json:"apiname"`
	Achieved    int    `json:"achieved"`
	UnlockTime  int64  `json:"unlocktime"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type PlayerStats struct {
	SteamID  string `json:"steamID"`
	GameName string `json:"gameName"`
	// Achievements is nil when the game exposes no stats or the section is private.
	Achievements []PlayerAchievement `json:"achievements"`
	Success      bool                `json:"success"`
}

type PlayerAchievementsHttpResponse struct {
	PlayerStats *PlayerStats `json:"playerstats"`
}

type OwnedGame struct {
	AppId                    uint64 `json:"appid"`
	Name                     string `json:"name"`
	PlaytimeForever          int    `json:"playtime_forever"` // This is in minutes
	Playtime2Weeks           *int   `json:"playtime_2weeks,omitempty"`
	ImgIconURL               string `json:"img_icon_url"`
	RTimeLastPlayed          int64  `json:"rtime_last_played"`
	HasCommunityVisibleStats bool   `json:"has_community_visible_stats"`
}

type OwnedGamesResponse struct {
	GameCount uint        `json:"game_count"`
	Games     []OwnedGame `json:"games"`
}

type OwnedGamesHttpResponse struct {
	Response *OwnedGamesResponse `json:"response"`
}

type GlobalAchievement struct {
	Name    string    `json:"name"`
	Percent FlexFloat `json:"percent"`
}

type GlobalAchievementHttpResponse struct {
	AchievementPercentages *struct {
		Achievements []GlobalAchievement `json:"achievements"`
	} `json:"achievementpercentages"`
}

type SchemaAchievement struct {
	Name         string `json:"name"`
	DefaultValue int    `json:"defaultvalue"`
	DisplayName  string `json:"displayName"`
	Hidden       int    `json:"hidden"`
	Description  string `json:"description"`
	Icon         string `json:"icon"`
	IconGray     string `json:"icongray"`
}

type SchemaHttpResponse struct {
	Game *struct {
		GameName           string `json:"gameName"`
		GameVersion        string `json:"gameVersion"`
		AvailableGameStats *struct {
			Achievements []SchemaAchievement `json:"achievements"`
		} `json:"availableGameStats"`
	} `json:"game"`
}

type SteamLevelHttpResponse struct {
	Response *struct {
		PlayerLevel *int `json:"player_level"`
	} `json:"response"`
}

// BadgeKind discriminates the two shapes GetBadges returns.
type BadgeKind int

const (
	BadgePlain BadgeKind = iota
	// BadgeCommunity badges carry a communityid and are tied to an app.
	BadgeCommunity
)

func (k BadgeKind) String() string {
	if k == BadgeCommunity {
		return "community"
	}
	return "plain"
}

type Badge struct {
	Kind           BadgeKind   `json:"-"`
	BadgeID        int         `json:"badgeid"`
	Level          int         `json:"level"`
	CompletionTime int64       `json:"completion_time"`
	XP             int         `json:"xp"`
	Scarcity       int64       `json:"scarcity"`
	AppID          *uint64     `json:"appid,omitempty"`
	CommunityID    *FlexString `json:"communityid,omitempty"`
	BorderColor    *int        `json:"border_color,omitempty"`
}

// UnmarshalJSON decides the badge variant once, from the presence of communityid.
func (b *Badge) UnmarshalJSON(data []byte) error {
	type raw Badge
	var r raw
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*b = Badge(r)
	b.Kind = BadgePlain
	if b.CommunityID != nil {
		b.Kind = BadgeCommunity
	}
	return nil
}

type BadgesResponse struct {
	Badges                     []Badge `json:"badges"`
	PlayerXP                   int     `json:"player_xp"`
	PlayerLevel                int     `json:"player_level"`
	PlayerXPNeededToLevelUp    int     `json:"player_xp_needed_to_level_up"`
	PlayerXPNeededCurrentLevel int     `json:"player_xp_needed_current_level"`
}

type BadgesHttpResponse struct {
	Response *BadgesResponse `json:"response"`
}
