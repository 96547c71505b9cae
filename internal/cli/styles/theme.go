// Package styles provides reusable lipgloss-based TUI components.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/consent/internal/domain/entity"
)

// Palette is the set of base colors a Theme is derived from.
type Palette struct {
	Background     string
	Surface        string
	SurfaceVariant string
	Text           string
	Muted          string
	Accent         string
	Border         string
	Error          string
	Warning        string
}

// DarkPalette is used on dark terminals and whenever detection is skipped.
var DarkPalette = Palette{
	Background:     "#0a0a0b",
	Surface:        "#1a1a1b",
	SurfaceVariant: "#2d2d2d",
	Text:           "#ffffff",
	Muted:          "#909090",
	Accent:         "#4ade80",
	Border:         "#333333",
	Error:          "#ef4444",
	Warning:        "#f59e0b",
}

// LightPalette is used when the terminal reports a light background.
var LightPalette = Palette{
	Background:     "#fafafa",
	Surface:        "#ececec",
	SurfaceVariant: "#dcdcdc",
	Text:           "#111111",
	Muted:          "#606060",
	Accent:         "#15803d",
	Border:         "#c8c8c8",
	Error:          "#b91c1c",
	Warning:        "#b45309",
}

// Theme holds the colors of a Palette and the styles built from them.
type Theme struct {
	Background     lipgloss.Color
	SurfaceVariant lipgloss.Color
	Text           lipgloss.Color
	Muted          lipgloss.Color
	Accent         lipgloss.Color
	Border         lipgloss.Color
	Error          lipgloss.Color
	Warning        lipgloss.Color
	Success        lipgloss.Color

	Title        lipgloss.Style
	Subtitle     lipgloss.Style
	Normal       lipgloss.Style
	Subtle       lipgloss.Style
	Highlight    lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	SuccessStyle lipgloss.Style

	Button         lipgloss.Style
	ButtonSelected lipgloss.Style
	ButtonAllow    lipgloss.Style
	ButtonDeny     lipgloss.Style

	Badge      lipgloss.Style
	BadgeMuted lipgloss.Style
	Box        lipgloss.Style
}

// NewTheme returns the dark theme.
func NewTheme() *Theme {
	return NewThemeFromPalette(DarkPalette)
}

// NewAdaptiveTheme picks the light or dark palette from the terminal background.
func NewAdaptiveTheme() *Theme {
	if lipgloss.HasDarkBackground() {
		return NewTheme()
	}
	return NewThemeFromPalette(LightPalette)
}

// NewThemeFromPalette builds every style from p.
func NewThemeFromPalette(p Palette) *Theme {
	t := &Theme{
		Background:     lipgloss.Color(p.Background),
		SurfaceVariant: lipgloss.Color(p.SurfaceVariant),
		Text:           lipgloss.Color(p.Text),
		Muted:          lipgloss.Color(p.Muted),
		Accent:         lipgloss.Color(p.Accent),
		Border:         lipgloss.Color(p.Border),
		Error:          lipgloss.Color(p.Error),
		Warning:        lipgloss.Color(p.Warning),
		Success:        lipgloss.Color(p.Accent),
	}

	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	t.Title = fg(t.Text).Bold(true)
	t.Subtitle = fg(t.Muted).Bold(true)
	t.Normal = fg(t.Text)
	t.Subtle = fg(t.Muted)
	t.Highlight = fg(t.Accent).Bold(true)
	t.ErrorStyle = fg(t.Error)
	t.WarningStyle = fg(t.Warning)
	t.SuccessStyle = fg(t.Success)

	t.Button = fg(t.Muted).Background(lipgloss.Color(p.Surface)).Padding(0, 2)
	t.ButtonSelected = fg(t.Background).Background(t.Accent).Padding(0, 2).Bold(true)
	t.ButtonAllow = t.Button.Foreground(t.Success)
	t.ButtonDeny = t.Button.Foreground(t.Error)

	t.Badge = fg(t.Background).Background(t.Accent).Padding(0, 1)
	t.BadgeMuted = fg(t.Text).Background(t.SurfaceVariant).Padding(0, 1)
	t.Box = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(1, 2)
	return t
}

// DecisionColor is the color outcomes with decision d are drawn in.
func (t *Theme) DecisionColor(d entity.PermissionDecision) lipgloss.Color {
	switch d {
	case entity.PermissionAllow:
		return t.Success
	case entity.PermissionBlock:
		return t.Error
	default:
		return t.Muted
	}
}
