// Package models defines client-side data models used by the dossier CLI.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/dossier/internal/common"
)

// Rank is the display label attached to a personnel profile. It carries no
// authorization meaning.
type Rank string

const (
	RankCadet     Rank = "Cadet"
	RankSoldier   Rank = "Soldier"
	RankOfficer   Rank = "Officer"
	RankCommander Rank = "Commander"
)

// Ranks lists every valid rank in ascending order.
var Ranks = []Rank{RankCadet, RankSoldier, RankOfficer, RankCommander}

// ParseRank matches s against the known ranks ignoring case and surrounding
// spaces, and returns the canonical spelling.
func ParseRank(s string) (Rank, error) {
	s = strings.TrimSpace(s)
	for _, r := range Ranks {
		if strings.EqualFold(s, string(r)) {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", common.ErrInvalidRank, s)
}

// Theme is the display mode preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeCamo  Theme = "camo"

	// DefaultTheme is applied when no valid preference has been saved.
	DefaultTheme = ThemeLight
)

// Themes lists every valid theme.
var Themes = []Theme{ThemeLight, ThemeDark, ThemeCamo}

// ValidTheme reports whether t is one of the supported themes.
func ValidTheme(t Theme) bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeCamo:
		return true
	default:
		return false
	}
}

// NormalizeTheme coerces t to a supported value, falling back to the default.
func NormalizeTheme(t Theme) Theme {
	if ValidTheme(t) {
		return t
	}
	return DefaultTheme
}

// Platform names a social network a profile may link to.
type Platform string

const (
	PlatformLinkedIn  Platform = "linkedin"
	PlatformInstagram Platform = "instagram"
	PlatformFacebook  Platform = "facebook"
	PlatformTwitter   Platform = "twitter"
)

// Platforms is the fixed, ordered set of supported platforms.
var Platforms = []Platform{PlatformLinkedIn, PlatformInstagram, PlatformFacebook, PlatformTwitter}

// ParsePlatform matches s case-insensitively against Platforms.
// "x" is accepted as an alias for twitter.
func ParsePlatform(s string) (Platform, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "x" {
		return PlatformTwitter, true
	}
	for _, p := range Platforms {
		if s == string(p) {
			return p, true
		}
	}
	return "", false
}

// SocialLinks maps each platform to a URL. Empty means unset.
type SocialLinks struct {
	LinkedIn  string `json:"linkedin"`
	Instagram string `json:"instagram"`
	Facebook  string `json:"facebook"`
	Twitter   string `json:"twitter"`
}

// Get returns the URL stored for p.
func (s SocialLinks) Get(p Platform) string {
	switch p {
	case PlatformLinkedIn:
		return s.LinkedIn
	case PlatformInstagram:
		return s.Instagram
	case PlatformFacebook:
		return s.Facebook
	case PlatformTwitter:
		return s.Twitter
	}
	return ""
}

// With returns a copy of s with the URL for p replaced.
func (s SocialLinks) With(p Platform, url string) SocialLinks {
	switch p {
	case PlatformLinkedIn:
		s.LinkedIn = url
	case PlatformInstagram:
		s.Instagram = url
	case PlatformFacebook:
		s.Facebook = url
	case PlatformTwitter:
		s.Twitter = url
	}
	return s
}

// Profile is the display/editable personnel record of an account.
type Profile struct {
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Rank        Rank        `json:"rank"`
	Bio         string      `json:"bio"`
	Avatar      string      `json:"avatar"`
	SocialLinks SocialLinks `json:"socialLinks"`
	Theme       Theme       `json:"theme"`
}

// Account is the durable unit stored under the account's email.
//
// Secret is compared verbatim on sign-in and is stored in plain text. This
// mirrors the browser portal's local storage format and is not a
// recommendation: the store never leaves the user's machine.
type Account struct {
	// ID is a stable opaque identifier used in logs instead of the email.
	ID        string    `json:"id,omitempty"`
	Secret    string    `json:"password"`
	Profile   Profile   `json:"profile"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}
