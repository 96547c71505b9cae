package styles

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/consent/internal/domain/entity"
)

// NewStyledTable creates a themed table model.
func NewStyledTable(theme *Theme, columns []table.Column, rows []table.Row, width, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
		table.WithWidth(width),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Foreground(theme.Accent).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(theme.Text).
		Background(theme.SurfaceVariant).
		Bold(true)
	s.Cell = s.Cell.
		Foreground(theme.Text)

	t.SetStyles(s)
	return t
}

// JournalTableColumns returns columns for the outcome journal table.
func JournalTableColumns() []table.Column {
	return []table.Column{
		{Title: "Ended", Width: 10},
		{Title: "Origin", Width: 28},
		{Title: "Permissions", Width: 24},
		{Title: "Decision", Width: 9},
		{Title: "Cause", Width: 30},
		{Title: "Took", Width: 8},
	}
}

// OutcomeRow converts a journal outcome to a table row.
func OutcomeRow(o entity.DialogOutcome) table.Row {
	decision := string(o.Decision)
	if o.Ephemeral {
		decision += "*"
	}
	return table.Row{
		RelativeTime(time.UnixMilli(o.EndedAt)),
		o.Origin,
		strings.Join(entity.PermissionTypesToStrings(o.Types), ","),
		decision,
		string(o.Cause),
		formatMillis(o.DurationMillis()),
	}
}

// CountTableColumns returns columns for the decision/cause summary table.
func CountTableColumns() []table.Column {
	return []table.Column{
		{Title: "Decision", Width: 10},
		{Title: "Cause", Width: 30},
		{Title: "Count", Width: 8},
	}
}

// CountRow converts an aggregate to a table row.
func CountRow(c entity.OutcomeCount) table.Row {
	return table.Row{string(c.Decision), string(c.Cause), strconv.Itoa(c.Count)}
}

func formatMillis(ms int64) string {
	if ms < 1000 {
		return strconv.FormatInt(ms, 10) + "ms"
	}
	return strconv.FormatFloat(float64(ms)/1000, 'f', 1, 64) + "s"
}

// TableWidth is the width a table needs to show every column in full.
func TableWidth(columns []table.Column) int {
	w := 0
	for _, c := range columns {
		w += c.Width + 2
	}
	return w
}
