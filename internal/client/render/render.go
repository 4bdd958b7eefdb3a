// Package render draws profiles and status lines for the terminal, styled
// after the current display theme.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/dossier/internal/client/models"
)

type palette struct {
	accent lipgloss.Color
	muted  lipgloss.Color
	border lipgloss.Color
	ok     lipgloss.Color
	fail   lipgloss.Color
}

var palettes = map[models.Theme]palette{
	models.ThemeLight: {accent: "#4B5320", muted: "#6B6B6B", border: "#8A8A5C", ok: "#2E7D32", fail: "#C62828"},
	models.ThemeDark:  {accent: "#C2B280", muted: "#9E9E9E", border: "#5C5C3D", ok: "#81C784", fail: "#E57373"},
	models.ThemeCamo:  {accent: "#A3B18A", muted: "#7F8C6A", border: "#588157", ok: "#B5C99A", fail: "#D4A373"},
}

var rankBadges = map[models.Rank]string{
	models.RankCadet:     "▪",
	models.RankSoldier:   "▪▪",
	models.RankOfficer:   "★",
	models.RankCommander: "★★",
}

var platformLabels = map[models.Platform]string{
	models.PlatformLinkedIn:  "LinkedIn",
	models.PlatformInstagram: "Instagram",
	models.PlatformFacebook:  "Facebook",
	models.PlatformTwitter:   "X (Twitter)",
}

// Renderer formats output for one writer. SetTheme swaps the palette; it
// is meant to be subscribed to the preference store.
type Renderer struct {
	r     *lipgloss.Renderer
	theme models.Theme
	p     palette
}

func New(w io.Writer, theme models.Theme) *Renderer {
	rd := &Renderer{r: lipgloss.NewRenderer(w)}
	rd.SetTheme(theme)
	return rd
}

// SetTheme switches the palette. Unknown themes use the default palette.
func (rd *Renderer) SetTheme(t models.Theme) {
	rd.theme = models.NormalizeTheme(t)
	rd.p = palettes[rd.theme]
}

// Theme returns the theme currently in effect.
func (rd *Renderer) Theme() models.Theme {
	return rd.theme
}

// Result renders a one-line success or failure message.
func (rd *Renderer) Result(ok bool, msg string) string {
	c, mark := rd.p.fail, "✗"
	if ok {
		c, mark = rd.p.ok, "✓"
	}
	return rd.r.NewStyle().Foreground(c).Render(mark + " " + msg)
}

// Muted renders secondary text.
func (rd *Renderer) Muted(s string) string {
	return rd.r.NewStyle().Foreground(rd.p.muted).Render(s)
}

// Profile renders the personnel card for p.
func (rd *Renderer) Profile(p models.Profile) string {
	title := rd.r.NewStyle().Bold(true).Foreground(rd.p.accent)
	label := rd.r.NewStyle().Foreground(rd.p.muted).Width(12)

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", title.Render(p.Name), rd.badge(p.Rank))
	fmt.Fprintf(&b, "%s%s\n", label.Render("Email"), p.Email)
	fmt.Fprintf(&b, "%s%s\n", label.Render("Theme"), p.Theme)
	if p.Avatar != "" {
		fmt.Fprintf(&b, "%s%s\n", label.Render("Avatar"), p.Avatar)
	}

	bio := p.Bio
	if bio == "" {
		bio = rd.Muted("No bio on file.")
	}
	fmt.Fprintf(&b, "%s%s\n", label.Render("Bio"), bio)

	for _, pl := range models.Platforms {
		url := p.SocialLinks.Get(pl)
		if url == "" {
			url = rd.Muted("-")
		}
		fmt.Fprintf(&b, "%s%s\n", label.Render(platformLabels[pl]), url)
	}

	card := rd.r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(rd.p.border).
		Padding(0, 1)
	return card.Render(strings.TrimRight(b.String(), "\n"))
}

func (rd *Renderer) badge(r models.Rank) string {
	return rd.r.NewStyle().
		Foreground(rd.p.accent).
		Render(fmt.Sprintf("[%s %s]", rankBadges[r], r))
}
