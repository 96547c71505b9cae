package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/consent/internal/application/usecase"
)

// ScenarioRenderer renders scenario run reports.
type ScenarioRenderer struct {
	theme *Theme
}

// NewScenarioRenderer creates a new scenario renderer with the given theme.
func NewScenarioRenderer(theme *Theme) *ScenarioRenderer {
	return &ScenarioRenderer{theme: theme}
}

// RenderReport renders every step, then the delegate calls of each request.
func (r *ScenarioRenderer) RenderReport(report *usecase.ScenarioReport) string {
	t := r.theme
	ok := lipgloss.NewStyle().Foreground(t.Success).Render(IconCheck)
	ko := lipgloss.NewStyle().Foreground(t.Error).Render(IconX)

	status := t.SuccessStyle.Render("passed")
	if !report.Passed {
		status = t.ErrorStyle.Render("failed")
	}

	lines := []string{fmt.Sprintf("\n  %s %s", t.Title.Render(report.Name), status), ""}
	for _, s := range report.Steps {
		icon := ok
		if s.Error != "" {
			icon = ko
		}
		line := fmt.Sprintf("  %s %s %s", icon, t.Subtle.Render(fmt.Sprintf("%2d", s.Index)), string(s.Action))
		if s.Error != "" {
			line += "  " + t.ErrorStyle.Render(s.Error)
		}
		lines = append(lines, line)
	}

	if len(report.Requests) > 0 {
		lines = append(lines, "", "  "+t.Subtitle.Render("Delegate calls"))
		for _, req := range report.Requests {
			calls := t.Subtle.Render("(none)")
			if len(req.Calls) > 0 {
				calls = strings.Join(req.Calls, " → ")
			}
			lines = append(lines, fmt.Sprintf("  %s %s", t.Highlight.Render(req.Name), calls))
		}
	}

	return strings.Join(lines, "\n") + "\n"
}
