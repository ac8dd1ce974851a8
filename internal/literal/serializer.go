// Package literal renders a Profile as a sanitized source literal that can be
// embedded in a generated file which is later passed through a shell.
package literal

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
	"unicode"

	"github.com/joshhsoj1902/steam-profile-exporter/internal/profile"
	"github.com/pkg/errors"
)

const (
	// AvatarHostPrefix is removed from avatar URLs; consumers re-add it.
	AvatarHostPrefix = "https://avatars.steamstatic.com/"
	// AchievementIconHostPrefix is removed from achievement icon URLs,
	// leaving "<appid>/<hash>.jpg".
	AchievementIconHostPrefix = "https://steamcdn-a.akamaihd.net/steamcommunity/public/images/apps/"
)

// gameIconPrefix matches the app-templated CDN path in front of game icons.
var gameIconPrefix = regexp.MustCompile(`https://media\.steampowered\.com/steamcommunity/public/images/apps/\d+/`)

var metaEscaper = strings.NewReplacer(
	`'`, `\'`,
	`$`, `\$`,
	`(`, `\(`,
	`)`, `\)`,
	`"`, `\"`,
	`!`, `\!`,
)

// unescapeLineSeparators turns the \u2028 and \u2029 escapes written by
// encoding/json back into raw runes, as JSON.stringify emits them. Escapes
// are consumed in pairs so an escaped backslash followed by "u2028" is kept.
func unescapeLineSeparators(s string) string {
	if !strings.Contains(s, `\u202`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			continue
		}
		switch seq := s[i:min(i+6, len(s))]; seq {
		case `\u2028`:
			b.WriteRune('\u2028')
			i += 5
		case `\u2029`:
			b.WriteRune('\u2029')
			i += 5
		default:
			b.WriteString(s[i : i+2])
			i++
		}
	}
	return b.String()
}

// Canonical returns the compact JSON form of p.
func Canonical(p *profile.Profile) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(p); err != nil {
		return "", errors.Wrap(err, "encode profile")
	}
	return unescapeLineSeparators(strings.TrimSuffix(buf.String(), "\n")), nil
}

// Sanitize applies the rewrites in a fixed order; each step assumes the
// previous ones already ran.
func Sanitize(s string) string {
	s = stripBackslashes(s)
	s = escapeMetacharacters(s)
	s = stripNonASCII(s)
	s = stripCDNPrefixes(s)
	return s
}

func stripBackslashes(s string) string {
	return strings.ReplaceAll(s, `\`, "")
}

func escapeMetacharacters(s string) string {
	return metaEscaper.Replace(s)
}

func stripNonASCII(s string) string {
	return strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)
}

func stripCDNPrefixes(s string) string {
	s = strings.ReplaceAll(s, AvatarHostPrefix, "")
	s = strings.ReplaceAll(s, AchievementIconHostPrefix, "")
	return gameIconPrefix.ReplaceAllString(s, "")
}

// Render returns the declaration template with the sanitized profile assigned
// to its constant.
func Render(p *profile.Profile) (string, error) {
	canonical, err := Canonical(p)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(declarations)
	b.WriteString(constPrefix)
	b.WriteString(Sanitize(canonical))
	b.WriteString(constSuffix)
	return b.String(), nil
}
