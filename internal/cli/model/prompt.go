// Package model provides Bubble Tea models for CLI commands.
package model

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/bnema/consent/internal/application/usecase"
	"github.com/bnema/consent/internal/cli/styles"
	"github.com/bnema/consent/internal/domain/entity"
	"github.com/bnema/consent/internal/logging"
	"github.com/bnema/consent/internal/ui"
	"github.com/bnema/consent/internal/ui/component"
)

const (
	snapshotKey  = "tui-snapshot"
	tickInterval = 500 * time.Millisecond
	maxRecent    = 8
)

// SnapshotMsg is what the prompt screen shows, captured on the UI loop.
type SnapshotMsg struct {
	ActiveID     string
	ActiveOrigin string
	ActiveWindow string
	ActiveState  entity.DialogState
	Pending      []string
	Windows      []string
	Recent       []entity.DialogOutcome
	Background   bool
}

// TakeSnapshot reads the app state. UI loop only.
func TakeSnapshot(app *ui.App) SnapshotMsg {
	snap := SnapshotMsg{
		Pending:    app.Queue().Pending(),
		Windows:    app.Windows(),
		Recent:     app.RecentOutcomes(),
		Background: app.Suspended(entity.ModalScopeTab),
	}
	if req, state, ok := app.Queue().Active(); ok {
		snap.ActiveID = req.ID
		snap.ActiveOrigin = req.Origin
		snap.ActiveWindow = req.WindowID()
		snap.ActiveState = state
	}
	return snap
}

// Bind makes every app change reach p as a SnapshotMsg. Bursts of changes
// produce one snapshot.
func Bind(app *ui.App, p *tea.Program) {
	notify := func() {
		app.PostCoalesced(snapshotKey, func() { p.Send(TakeSnapshot(app)) })
	}
	app.SetNotifier(notify)
	notify()
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// PromptModel is the interactive permission prompt screen.
type PromptModel struct {
	help help.Model
	keys styles.PromptKeyMap

	snap   SnapshotMsg
	width  int
	height int

	ctx   context.Context
	app   *ui.App
	demo  *demoSource
	theme *styles.Theme
}

// NewPromptModel creates the prompt screen for app.
func NewPromptModel(ctx context.Context, theme *styles.Theme, app *ui.App) PromptModel {
	log := logging.FromContext(ctx)
	log.Debug().Msg("creating prompt model")

	return PromptModel{
		help:   styles.NewStyledHelp(theme),
		keys:   styles.DefaultPromptKeyMap(),
		ctx:    ctx,
		app:    app,
		demo:   &demoSource{},
		theme:  theme,
		width:  80,
		height: 24,
	}
}

// Init implements tea.Model.
func (m PromptModel) Init() tea.Cmd {
	return tick()
}

// Update implements tea.Model.
func (m PromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case SnapshotMsg:
		m.snap = msg

	case tickMsg:
		return m, tick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m PromptModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.app.Quit()
		return m, tea.Quit
	}
	if m.app.Popup().HandleKey(msg) {
		return m, nil
	}

	app, demo, ctx := m.app, m.demo, m.ctx
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Enqueue):
		app.Post(func() { demo.enqueue(ctx, app) })
	case key.Matches(msg, m.keys.CloseWindow):
		app.Post(func() { demo.replaceActiveWindow(ctx, app) })
	case key.Matches(msg, m.keys.Background):
		app.Post(func() { app.SetBackground(entity.ModalScopeTab, !app.Suspended(entity.ModalScopeTab)) })
	}
	return m, nil
}

// View implements tea.Model.
func (m PromptModel) View() string {
	t := m.theme
	snap := m.snap

	badges := []string{
		t.Badge.Render(fmt.Sprintf("%d windows", len(snap.Windows))),
		t.BadgeMuted.Render(fmt.Sprintf("%d waiting", len(snap.Pending))),
	}
	if snap.Background {
		badges = append(badges, t.StatusBadge("background", t.Background, t.Warning))
	}
	header := lipgloss.JoinVertical(
		lipgloss.Left,
		t.Title.Render("Permission prompts"),
		strings.Join(badges, " "),
	)

	sections := []string{header, ""}

	if popup := m.app.Popup().View(t, m.width, m.height); popup != "" {
		sections = append(sections, popup)
	} else if snap.ActiveID != "" {
		sections = append(sections, t.Subtle.Render(fmt.Sprintf("%s on %s: %s", snap.ActiveOrigin, snap.ActiveWindow, snap.ActiveState)))
	} else {
		sections = append(sections, t.Subtle.Render("No permission dialog. Press a to request one."))
	}

	if len(snap.Pending) > 0 {
		sections = append(sections, "", t.Subtitle.Render("Waiting"), t.Normal.Render(strings.Join(snap.Pending, "  ")))
	}

	if toast := m.app.Toaster().View(t); toast != "" {
		sections = append(sections, "", toast)
	}

	if len(snap.Recent) > 0 {
		sections = append(sections, "", t.Subtitle.Render("Recent outcomes"), m.recentTable().View())
	}

	sections = append(sections, "", m.help.View(m.keys))
	return t.Box.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m PromptModel) recentTable() table.Model {
	recent := m.snap.Recent
	if len(recent) > maxRecent {
		recent = recent[:maxRecent]
	}
	rows := make([]table.Row, len(recent))
	for i, o := range recent {
		rows[i] = styles.OutcomeRow(o)
	}
	return styles.NewStyledTable(m.theme, styles.JournalTableColumns(), rows, m.width-4, len(rows)+1)
}

type demoPrompt struct {
	origin    string
	types     []entity.PermissionType
	variant   entity.EmbeddedPromptVariant
	ephemeral bool
}

var demoPrompts = []demoPrompt{
	{origin: "https://meet.example.com", types: []entity.PermissionType{entity.PermissionTypeCamera, entity.PermissionTypeMicrophone}, ephemeral: true},
	{origin: "https://maps.example.com", types: []entity.PermissionType{entity.PermissionTypeGeolocation}},
	{origin: "https://news.example.com", types: []entity.PermissionType{entity.PermissionTypeNotification}},
	{origin: "https://meet.example.com", types: []entity.PermissionType{entity.PermissionTypeCamera}, variant: entity.PromptVariantOSPrompt},
	{origin: "https://maps.example.com", types: []entity.PermissionType{entity.PermissionTypeGeolocation}, variant: entity.PromptVariantOSSystemSettings},
	{origin: "https://chat.example.com", types: []entity.PermissionType{entity.PermissionTypeMicrophone}, variant: entity.PromptVariantPreviouslyGranted},
	{origin: "https://chat.example.com", types: []entity.PermissionType{entity.PermissionTypeCamera}, variant: entity.PromptVariantPreviouslyDenied, ephemeral: true},
	{origin: "https://intranet.example.com", types: []entity.PermissionType{entity.PermissionTypeClipboard}, variant: entity.PromptVariantAdministratorGranted},
}

// demoSource feeds the prompt screen with requests. UI loop only.
type demoSource struct {
	requests int
	windows  int
}

func (d *demoSource) openWindow(ctx context.Context, app *ui.App) (entity.WindowRef, bool) {
	d.windows++
	w, err := app.OpenWindow(fmt.Sprintf("tab-%d", d.windows))
	if err != nil {
		logging.FromContext(ctx).Error().Err(err).Msg("failed to open window")
		return nil, false
	}
	return w, true
}

func (d *demoSource) enqueue(ctx context.Context, app *ui.App) {
	ids := app.Windows()
	if len(ids) == 0 {
		if _, ok := d.openWindow(ctx, app); !ok {
			return
		}
		ids = app.Windows()
	}
	w, ok := app.Window(ids[d.requests%len(ids)])
	if !ok {
		return
	}

	p := demoPrompts[d.requests%len(demoPrompts)]
	d.requests++
	id := fmt.Sprintf("req-%d", d.requests)

	log := logging.FromContext(ctx)
	_, err := app.Prompts().CreateRequest(ctx, usecase.CreateRequestInput{
		ID:            id,
		Origin:        p.origin,
		Types:         p.types,
		Variant:       p.variant,
		Window:        w,
		ShowEphemeral: p.ephemeral,
		Delegate:      &loggingDelegate{log: log.With().Str("request_id", id).Logger()},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create permission request")
		app.Toaster().Show(ctx, err.Error(), component.ToastError)
	}
}

// replaceActiveWindow closes the window of the dialog on screen and opens a
// fresh one in its place.
func (d *demoSource) replaceActiveWindow(ctx context.Context, app *ui.App) {
	req, _, ok := app.Queue().Active()
	if !ok {
		return
	}
	app.CloseWindow(req.WindowID())
	d.openWindow(ctx, app)
}

// loggingDelegate reports every result it receives to the log.
type loggingDelegate struct {
	log zerolog.Logger
}

func (d *loggingDelegate) Accept()         { d.log.Info().Msg("accept") }
func (d *loggingDelegate) AcceptThisTime() { d.log.Info().Msg("accept this time") }
func (d *loggingDelegate) Deny()           { d.log.Info().Msg("deny") }
func (d *loggingDelegate) Acknowledge()    { d.log.Info().Msg("acknowledge") }
func (d *loggingDelegate) Resumed()        { d.log.Debug().Msg("resumed") }
func (d *loggingDelegate) Release()        { d.log.Debug().Msg("release") }

func (d *loggingDelegate) Dismiss(cause entity.DismissalCause) {
	d.log.Info().Str("cause", string(cause)).Msg("dismiss")
}

func (d *loggingDelegate) SystemPermissionResolved(granted bool) {
	d.log.Info().Bool("granted", granted).Msg("system permission resolved")
}
