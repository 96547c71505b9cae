package styles

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
)

// ConfigRenderer renders config and journal status messages.
type ConfigRenderer struct {
	theme *Theme
}

// NewConfigRenderer creates a new config renderer with the given theme.
func NewConfigRenderer(theme *Theme) *ConfigRenderer {
	return &ConfigRenderer{theme: theme}
}

// RenderConfigInfo renders the config file location.
func (r *ConfigRenderer) RenderConfigInfo(path string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	return fmt.Sprintf("\n  %s Config %s\n", iconStyle.Render(IconInfo), r.theme.Subtle.Render(path))
}

// RenderSchemaWritten renders the success message after writing a JSON schema.
func (r *ConfigRenderer) RenderSchemaWritten(path string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Success)
	return fmt.Sprintf(
		"\n  %s Wrote %s %s\n",
		iconStyle.Render(IconCheck),
		r.theme.Highlight.Render(filepath.Base(path)),
		r.theme.Subtle.Render("("+path+")"),
	)
}

// RenderPurged renders how many journal rows a purge removed.
func (r *ConfigRenderer) RenderPurged(count int64, retentionDays int) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	return fmt.Sprintf(
		"\n  %s Purged %s outcomes older than %d days\n",
		iconStyle.Render(IconTrash),
		r.theme.Highlight.Render(fmt.Sprintf("%d", count)),
		retentionDays,
	)
}

// RenderError renders an error line.
func (r *ConfigRenderer) RenderError(err error) string {
	return fmt.Sprintf("\n  %s %s\n", r.theme.ErrorStyle.Render(IconX), r.theme.ErrorStyle.Render(err.Error()))
}
