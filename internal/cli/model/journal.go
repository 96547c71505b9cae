package model

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/consent/internal/application/usecase"
	"github.com/bnema/consent/internal/cli/styles"
	"github.com/bnema/consent/internal/domain/entity"
)

const journalRecentLimit = 50

// JournalModel displays the outcome journal: a decision summary and the
// latest outcomes.
type JournalModel struct {
	counts      []entity.OutcomeCount
	recent      []entity.DialogOutcome
	table       table.Model
	showRecent  bool
	loading     bool
	err         error
	width       int
	height      int
	summarySpan time.Duration

	ctx       context.Context
	journalUC *usecase.ManageJournalUseCase
	theme     *styles.Theme
}

// NewJournalModel creates a journal model summarizing the last span (0 for all time).
func NewJournalModel(ctx context.Context, theme *styles.Theme, journalUC *usecase.ManageJournalUseCase, span time.Duration) JournalModel {
	return JournalModel{
		ctx:         ctx,
		journalUC:   journalUC,
		theme:       theme,
		summarySpan: span,
		loading:     true,
		width:       80,
		height:      24,
	}
}

// journalLoadedMsg is sent when the journal has been read.
type journalLoadedMsg struct {
	counts []entity.OutcomeCount
	recent []entity.DialogOutcome
	err    error
}

// Init implements tea.Model.
func (m JournalModel) Init() tea.Cmd {
	return m.load
}

func (m JournalModel) load() tea.Msg {
	counts, err := m.journalUC.Summary(m.ctx, m.summarySpan)
	if err != nil {
		return journalLoadedMsg{err: err}
	}
	recent, err := m.journalUC.ListRecent(m.ctx, journalRecentLimit)
	return journalLoadedMsg{counts: counts, recent: recent, err: err}
}

// Update implements tea.Model.
func (m JournalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateTable()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.showRecent = !m.showRecent
			m.updateTable()
		case "r":
			m.loading = true
			return m, m.load
		default:
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case journalLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.counts = msg.counts
			m.recent = msg.recent
			m.updateTable()
		}
	}

	return m, nil
}

func (m *JournalModel) updateTable() {
	var (
		columns []table.Column
		rows    []table.Row
	)
	if m.showRecent {
		columns = styles.JournalTableColumns()
		for _, o := range m.recent {
			rows = append(rows, styles.OutcomeRow(o))
		}
	} else {
		columns = styles.CountTableColumns()
		for _, c := range m.counts {
			rows = append(rows, styles.CountRow(c))
		}
	}

	tableHeight := min(len(rows)+1, m.height-10)
	tableHeight = max(tableHeight, 3)

	m.table = styles.NewStyledTable(m.theme, columns, rows, m.width-4, tableHeight)
}

// totals returns the number of allowed, blocked and undecided outcomes.
func (m JournalModel) totals() (allowed, blocked, other int) {
	for _, c := range m.counts {
		switch c.Decision {
		case entity.PermissionAllow:
			allowed += c.Count
		case entity.PermissionBlock:
			blocked += c.Count
		default:
			other += c.Count
		}
	}
	return allowed, blocked, other
}

// View implements tea.Model.
func (m JournalModel) View() string {
	t := m.theme

	if m.loading {
		return t.Box.Render(t.Subtle.Render("Loading journal..."))
	}
	if m.err != nil {
		return t.Box.Render(t.ErrorStyle.Render("Error: " + m.err.Error()))
	}
	if len(m.counts) == 0 && len(m.recent) == 0 {
		return t.Box.Render(t.Subtle.Render("No outcomes recorded yet"))
	}

	allowed, blocked, other := m.totals()
	span := "all time"
	if m.summarySpan > 0 {
		span = "last " + m.summarySpan.String()
	}
	header := lipgloss.JoinVertical(
		lipgloss.Left,
		t.Title.Render("Permission journal"),
		"",
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			t.DecisionBadge(entity.PermissionAllow),
			" ",
			t.Badge.Render(fmt.Sprintf("%d", allowed)),
			" ",
			t.DecisionBadge(entity.PermissionBlock),
			" ",
			t.Badge.Render(fmt.Sprintf("%d", blocked)),
			" ",
			t.BadgeMuted.Render(fmt.Sprintf("%d undecided", other)),
			" ",
			t.BadgeMuted.Render(span),
		),
	)

	title := "By decision and cause"
	if m.showRecent {
		title = "Latest outcomes"
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		"",
		t.Subtitle.Render(title),
		m.table.View(),
		"",
		t.Subtle.Render("tab switch view • r reload • q quit"),
	)
}
