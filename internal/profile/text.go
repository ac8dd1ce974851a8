package profile

import (
	"fmt"
	"math"
	"strings"
)

// GameIconURLFormat is the CDN location of a game's icon, by appid and icon hash.
const GameIconURLFormat = "https://media.steampowered.com/steamcommunity/public/images/apps/%d/%s.jpg"

// normalizeQuotes replaces double quotes in user or publisher supplied text;
// the serialized profile uses double quotes as its only string delimiter.
func normalizeQuotes(s string) string {
	return strings.ReplaceAll(s, `"`, `'`)
}

func roundPercent(p float64) float64 {
	return math.Round(p*10) / 10
}

func gameIconURL(appId uint64, hash string) string {
	if hash == "" {
		return ""
	}
	return fmt.Sprintf(GameIconURLFormat, appId, hash)
}
