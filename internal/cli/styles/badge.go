package styles

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/consent/internal/domain/entity"
)

// DecisionBadge renders an allow/block/default badge.
func (t *Theme) DecisionBadge(d entity.PermissionDecision) string {
	if !d.IsDecisive() {
		return t.BadgeMuted.Render(string(d))
	}
	return t.StatusBadge(string(d), t.Background, t.DecisionColor(d))
}

// CauseBadge renders a dismissal cause badge.
func (t *Theme) CauseBadge(c entity.DismissalCause) string {
	if c == "" {
		return ""
	}
	return t.BadgeMuted.Render(string(c))
}

// TimeBadge renders a relative time badge.
func (t *Theme) TimeBadge(tm time.Time) string {
	return t.BadgeMuted.Render(RelativeTime(tm))
}

// StatusBadge renders a status badge with custom colors.
func (t *Theme) StatusBadge(text string, fg, bg lipgloss.Color) string {
	style := lipgloss.NewStyle().
		Foreground(fg).
		Background(bg).
		Padding(0, 1)
	return style.Render(text)
}

// RelativeTime formats a time as a human-readable relative string.
func RelativeTime(tm time.Time) string {
	return relativeTime(time.Now(), tm)
}

// relativeUnits are tried largest first; the first that fits at least once wins.
var relativeUnits = []struct {
	size   time.Duration
	suffix string
}{
	{24 * time.Hour, "d"},
	{time.Hour, "h"},
	{time.Minute, "m"},
}

func relativeTime(now, tm time.Time) string {
	diff := now.Sub(tm)
	for _, u := range relativeUnits {
		if diff >= u.size {
			return fmt.Sprintf("%d%s ago", int(diff/u.size), u.suffix)
		}
	}
	return "just now"
}
