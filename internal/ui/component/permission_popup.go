package component

import (
	"context"
	"errors"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/consent/internal/application/port"
	"github.com/bnema/consent/internal/cli/styles"
	"github.com/bnema/consent/internal/domain/entity"
	"github.com/bnema/consent/internal/logging"
	"github.com/bnema/consent/internal/ui/mainloop"
)

var (
	// ErrNoDialog is returned when input arrives while no dialog is visible.
	ErrNoDialog = errors.New("no permission dialog visible")
	// ErrButtonNotShown is returned when pressing a button the dialog does not offer.
	ErrButtonNotShown = errors.New("button not shown on permission dialog")
)

// popupButton is one rendered button of the popup.
type popupButton struct {
	label  string
	button entity.DialogButton
}

// popupView is the immutable snapshot the terminal renders.
type popupView struct {
	requestID string
	windowID  string
	variant   entity.EmbeddedPromptVariant
	title     string
	message   string
	icon      string
	buttons   []popupButton
}

// PermissionPopup is the terminal presenter for permission dialogs.
//
// ShowDialog, UpdateDialog and DismissDialog run on the UI loop. HandleKey
// and View run on the bubbletea goroutine; user input is posted back to the
// UI loop before any dialog callback fires.
type PermissionPopup struct {
	post mainloop.PostFunc
	keys styles.PromptKeyMap

	mu        sync.Mutex
	current   *port.PermissionDialogModel
	view      *popupView
	selected  int
	suspended map[entity.ModalScope]bool
	disabled  bool
	notify    func()
}

var _ port.ModalDialogPresenter = (*PermissionPopup)(nil)

// NewPermissionPopup creates a popup that delivers input through post.
func NewPermissionPopup(post mainloop.PostFunc) *PermissionPopup {
	return &PermissionPopup{
		post:      post,
		keys:      styles.DefaultPromptKeyMap(),
		suspended: make(map[entity.ModalScope]bool),
	}
}

// SetNotifier registers fn to be called whenever the rendered content changes.
func (pp *PermissionPopup) SetNotifier(fn func()) {
	pp.mu.Lock()
	defer pp.mu.Unlock()
	pp.notify = fn
}

// SetDisabled makes ShowDialog refuse every dialog, as a surface without a
// dialog manager would.
func (pp *PermissionPopup) SetDisabled(disabled bool) {
	pp.mu.Lock()
	defer pp.mu.Unlock()
	pp.disabled = disabled
}

// Suspend holds back dialogs of scope, as when the host surface goes to the background.
func (pp *PermissionPopup) Suspend(scope entity.ModalScope) {
	pp.mu.Lock()
	pp.suspended[scope] = true
	pp.mu.Unlock()
	pp.changed()
}

// Resume releases dialogs of scope.
func (pp *PermissionPopup) Resume(scope entity.ModalScope) {
	pp.mu.Lock()
	delete(pp.suspended, scope)
	pp.mu.Unlock()
	pp.changed()
}

// ShowDialog implements port.ModalDialogPresenter.
func (pp *PermissionPopup) ShowDialog(ctx context.Context, model *port.PermissionDialogModel) bool {
	log := logging.FromContext(ctx)

	pp.mu.Lock()
	if pp.disabled {
		pp.mu.Unlock()
		log.Debug().Str("request_id", model.RequestID).Msg("popup disabled, refusing dialog")
		return false
	}
	if pp.current != nil && pp.current != model {
		pp.mu.Unlock()
		log.Warn().
			Str("request_id", model.RequestID).
			Str("visible", pp.current.RequestID).
			Msg("permission popup already visible, refusing dialog")
		return false
	}
	pp.current = model
	pp.view = snapshot(model)
	pp.selected = defaultSelection(pp.view)
	pp.mu.Unlock()

	log.Debug().Str("request_id", model.RequestID).Str("variant", string(model.Variant)).Msg("permission popup shown")
	pp.changed()
	return true
}

// UpdateDialog implements port.ModalDialogPresenter.
func (pp *PermissionPopup) UpdateDialog(_ context.Context, model *port.PermissionDialogModel) {
	pp.mu.Lock()
	if pp.current != model {
		pp.mu.Unlock()
		return
	}
	pp.view = snapshot(model)
	pp.selected = defaultSelection(pp.view)
	pp.mu.Unlock()
	pp.changed()
}

// DismissDialog implements port.ModalDialogPresenter. OnDismissed is
// delivered on a later loop iteration, like a closing animation would.
func (pp *PermissionPopup) DismissDialog(_ context.Context, model *port.PermissionDialogModel, cause entity.DismissalCause) {
	pp.mu.Lock()
	if pp.current == model {
		pp.current = nil
		pp.view = nil
	}
	pp.mu.Unlock()
	pp.changed()

	pp.post(func() {
		if model.OnDismissed != nil {
			model.OnDismissed(cause)
		}
	})
}

// IsSuspended implements port.ModalDialogPresenter.
func (pp *PermissionPopup) IsSuspended(scope entity.ModalScope) bool {
	pp.mu.Lock()
	defer pp.mu.Unlock()
	return pp.suspended[scope]
}

// IsVisible returns whether a dialog is on screen.
func (pp *PermissionPopup) IsVisible() bool {
	pp.mu.Lock()
	defer pp.mu.Unlock()
	return pp.view != nil
}

// VisibleRequestID returns the ID of the request on screen, if any.
func (pp *PermissionPopup) VisibleRequestID() (string, bool) {
	pp.mu.Lock()
	defer pp.mu.Unlock()
	if pp.view == nil {
		return "", false
	}
	return pp.view.requestID, true
}

// HandleKey reacts to a key press. It returns false when no dialog is
// visible or the key means nothing to the popup.
func (pp *PermissionPopup) HandleKey(msg tea.KeyMsg) bool {
	pp.mu.Lock()
	if pp.view == nil {
		pp.mu.Unlock()
		return false
	}
	model := pp.current
	view := pp.view
	n := len(view.buttons)

	var (
		button  entity.DialogButton
		cause   entity.DismissalCause
		handled = true
	)
	switch {
	case key.Matches(msg, pp.keys.Allow):
		button = entity.DialogButtonPositive
	case key.Matches(msg, pp.keys.AllowOnce):
		button = entity.DialogButtonPositiveEphemeral
	case key.Matches(msg, pp.keys.Deny):
		button = entity.DialogButtonNegative
	case n > 0 && key.Matches(msg, pp.keys.Left):
		pp.selected = (pp.selected - 1 + n) % n
	case n > 0 && key.Matches(msg, pp.keys.Right):
		pp.selected = (pp.selected + 1) % n
	case n > 0 && key.Matches(msg, pp.keys.Confirm):
		button = view.buttons[pp.selected].button
	case key.Matches(msg, pp.keys.Back):
		cause = entity.DismissalCauseNavigateBack
	case key.Matches(msg, pp.keys.Outside):
		cause = entity.DismissalCauseTouchOutside
	default:
		handled = false
	}
	if button != "" && !view.has(button) {
		button = ""
	}
	pp.mu.Unlock()

	switch {
	case button != "":
		pp.post(func() { pp.click(model, button) })
	case cause != "":
		pp.post(func() { pp.userDismiss(model, cause) })
	case handled:
		pp.changed()
	}
	return handled
}

// Press presses button on the visible dialog, as HandleKey would.
func (pp *PermissionPopup) Press(button entity.DialogButton) error {
	pp.mu.Lock()
	model, view := pp.current, pp.view
	pp.mu.Unlock()

	if view == nil {
		return ErrNoDialog
	}
	if !view.has(button) {
		return ErrButtonNotShown
	}
	pp.post(func() { pp.click(model, button) })
	return nil
}

// Close dismisses the visible dialog from the user side with cause.
func (pp *PermissionPopup) Close(cause entity.DismissalCause) error {
	pp.mu.Lock()
	model := pp.current
	pp.mu.Unlock()

	if model == nil {
		return ErrNoDialog
	}
	pp.post(func() { pp.userDismiss(model, cause) })
	return nil
}

// click runs on the UI loop. Input aimed at a dialog that is gone is dropped.
func (pp *PermissionPopup) click(model *port.PermissionDialogModel, button entity.DialogButton) {
	pp.mu.Lock()
	live := pp.current == model
	pp.mu.Unlock()
	if live && model.OnClick != nil {
		model.OnClick(button)
	}
}

// userDismiss closes the dialog from the user side and reports cause.
func (pp *PermissionPopup) userDismiss(model *port.PermissionDialogModel, cause entity.DismissalCause) {
	pp.mu.Lock()
	if pp.current != model {
		pp.mu.Unlock()
		return
	}
	pp.current = nil
	pp.view = nil
	pp.mu.Unlock()
	pp.changed()

	if model.OnDismissed != nil {
		model.OnDismissed(cause)
	}
}

func (pp *PermissionPopup) changed() {
	pp.mu.Lock()
	notify := pp.notify
	pp.mu.Unlock()
	if notify != nil {
		notify()
	}
}

// View renders the popup for a terminal of width x height cells, or "" when hidden.
func (pp *PermissionPopup) View(theme *styles.Theme, width, height int) string {
	pp.mu.Lock()
	view := pp.view
	selected := pp.selected
	pp.mu.Unlock()

	if view == nil {
		return ""
	}

	boxWidth, marginTop := CalculateModalDimensions(width, height, PermissionPopupSizeDefaults)
	inner := max(boxWidth-theme.Box.GetHorizontalFrameSize(), 10)

	title := view.title
	if view.icon != "" {
		title = view.icon + " " + title
	}

	rendered := make([]string, 0, len(view.buttons)*2)
	for i, b := range view.buttons {
		var style lipgloss.Style
		switch {
		case i == selected:
			style = theme.ButtonSelected
		case b.button == entity.DialogButtonNegative:
			style = theme.ButtonDeny
		default:
			style = theme.ButtonAllow
		}
		if i > 0 {
			rendered = append(rendered, " ")
		}
		rendered = append(rendered, style.Render(b.label))
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		theme.Title.Width(inner).Render(title),
		"",
		theme.Normal.Width(inner).Render(view.message),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center, rendered...),
		"",
		theme.Subtle.Render(view.footer()),
	)

	return lipgloss.NewStyle().
		MarginTop(marginTop).
		Render(theme.Box.Width(boxWidth).Render(content))
}

func snapshot(model *port.PermissionDialogModel) *popupView {
	v := &popupView{
		requestID: model.RequestID,
		windowID:  model.WindowID,
		variant:   model.Variant,
		title:     model.Title,
		message:   model.Message,
		icon:      model.Icon,
	}
	if model.NegativeLabel != "" {
		v.buttons = append(v.buttons, popupButton{label: model.NegativeLabel, button: entity.DialogButtonNegative})
	}
	if model.ShowsEphemeralButton() {
		v.buttons = append(v.buttons, popupButton{
			label:  model.PositiveEphemeralLabel,
			button: entity.DialogButtonPositiveEphemeral,
		})
	}
	if model.PositiveLabel != "" {
		v.buttons = append(v.buttons, popupButton{label: model.PositiveLabel, button: entity.DialogButtonPositive})
	}
	return v
}

// defaultSelection focuses the negative button when there is one.
func defaultSelection(v *popupView) int {
	for i, b := range v.buttons {
		if b.button == entity.DialogButtonNegative {
			return i
		}
	}
	return 0
}

func (v *popupView) has(button entity.DialogButton) bool {
	for _, b := range v.buttons {
		if b.button == button {
			return true
		}
	}
	return false
}

func (v *popupView) footer() string {
	hint := "y allow • n don't allow • esc close"
	if v.has(entity.DialogButtonPositiveEphemeral) {
		hint = "y allow • t this time • n don't allow • esc close"
	}
	if !v.has(entity.DialogButtonNegative) {
		hint = "y ok • esc close"
	}
	return hint
}
