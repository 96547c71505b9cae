package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/bnema/consent/internal/application/port"
	"github.com/bnema/consent/internal/application/usecase"
	"github.com/bnema/consent/internal/domain/entity"
	"github.com/bnema/consent/internal/logging"
	"github.com/bnema/consent/internal/ui/component"
	"github.com/bnema/consent/internal/ui/dialog"
	"github.com/bnema/consent/internal/ui/mainloop"
	"github.com/bnema/consent/internal/ui/window"
)

const recentOutcomes = 20

// App wires the prompt queue to the terminal popup and the window registry.
//
// Apart from Run, Quit, Post and the read-only accessors, methods must run on
// the UI loop: post them from other goroutines.
type App struct {
	deps *Dependencies
	ctx  context.Context
	loop *mainloop.Loop

	popup   *component.PermissionPopup
	toaster *component.Toaster
	windows *window.Registry
	queue   *dialog.PermissionQueue
	prompts *usecase.ManagePermissionPromptsUseCase

	mu      sync.Mutex
	recent  []entity.DialogOutcome
	notify  func()
	cancel  context.CancelCauseFunc
	stopped bool
}

var _ port.PromptHarness = (*App)(nil)

// New creates a new App with the given dependencies.
func New(deps *Dependencies) (*App, error) {
	if err := deps.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancelCause(logging.WithComponent(deps.Ctx, "app"))

	app := &App{
		deps:    deps,
		ctx:     ctx,
		loop:    deps.Loop,
		popup:   component.NewPermissionPopup(deps.Loop.Poster()),
		toaster: component.NewToaster(),
		windows: window.NewRegistry(),
		cancel:  cancel,
	}

	opts := []dialog.QueueOption{
		dialog.WithStrictTransitions(deps.Config.Prompt.StrictTransitions),
		dialog.WithRecorder(app),
	}
	if deps.Settings != nil {
		opts = append(opts, dialog.WithSettingsLauncher(deps.Settings))
	}
	app.queue = dialog.NewPermissionQueue(ctx, app.popup, deps.OSPerms, opts...)
	app.queue.AddObserver(port.PermissionDialogObserverFunc(app.onDialogResult))
	app.prompts = usecase.NewManagePermissionPromptsUseCase(app.queue, deps.Config.Prompt.OfferEphemeral)

	return app, nil
}

// Run drains the UI loop until ctx is cancelled or Quit is called.
func (a *App) Run(ctx context.Context) error {
	log := logging.FromContext(ctx)
	log.Debug().Msg("starting UI loop")

	err := a.loop.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Quit stops the UI loop after the tasks already posted.
func (a *App) Quit() {
	a.mu.Lock()
	if a.stopped {
		a.mu.Unlock()
		return
	}
	a.stopped = true
	a.mu.Unlock()

	a.cancel(errors.New("app quit"))
	a.loop.Stop()
}

// Post runs fn on the UI loop.
func (a *App) Post(fn func()) bool {
	return a.loop.Post(fn)
}

// PostCoalesced runs fn on the UI loop, merged with other fns posted under key
// before the loop gets to it.
func (a *App) PostCoalesced(key string, fn func()) {
	a.loop.PostCoalesced(key, fn)
}

// Settle implements port.PromptHarness.
func (a *App) Settle() int {
	return a.loop.Drain()
}

// SetNotifier registers fn, called from any goroutine whenever what the
// terminal shows may have changed.
func (a *App) SetNotifier(fn func()) {
	a.mu.Lock()
	a.notify = fn
	a.mu.Unlock()
	a.popup.SetNotifier(fn)
}

// Popup returns the permission popup presenter.
func (a *App) Popup() *component.PermissionPopup {
	return a.popup
}

// Toaster returns the app-level toaster.
func (a *App) Toaster() *component.Toaster {
	return a.toaster
}

// Prompts returns the caller boundary of the queue.
func (a *App) Prompts() *usecase.ManagePermissionPromptsUseCase {
	return a.prompts
}

// Queue returns the permission queue. UI loop only.
func (a *App) Queue() *dialog.PermissionQueue {
	return a.queue
}

// Windows returns the open window ids.
func (a *App) Windows() []string {
	return a.windows.IDs()
}

// OpenWindow implements port.PromptHarness.
func (a *App) OpenWindow(id string) (entity.WindowRef, error) {
	w, err := a.windows.Open(id)
	if err != nil {
		return nil, fmt.Errorf("open window %s: %w", id, err)
	}
	logging.FromContext(a.ctx).Debug().Str("window_id", id).Msg("window opened")
	a.changed()
	return w, nil
}

// Window returns the open window id.
func (a *App) Window(id string) (entity.WindowRef, bool) {
	w, ok := a.windows.Get(id)
	if !ok {
		return nil, false
	}
	return w, true
}

// CloseWindow implements port.PromptHarness. Requests of the window end
// before the next queued one is shown.
func (a *App) CloseWindow(id string) bool {
	if !a.windows.Close(id) {
		return false
	}
	logging.FromContext(a.ctx).Debug().Str("window_id", id).Msg("window closed")
	a.queue.OnWindowDestroyed(id)
	a.changed()
	return true
}

// SetBackground implements port.PromptHarness. Coming back to the
// foreground re-drives the active dialog and releases the queue.
func (a *App) SetBackground(scope entity.ModalScope, background bool) {
	if background {
		a.popup.Suspend(scope)
	} else {
		a.popup.Resume(scope)
		a.queue.OnSurfaceResumed("")
	}
	a.changed()
}

// Suspended reports whether scope is in the background.
func (a *App) Suspended(scope entity.ModalScope) bool {
	return a.popup.IsSuspended(scope)
}

// Press implements port.PromptHarness.
func (a *App) Press(button entity.DialogButton) error {
	return a.popup.Press(button)
}

// DismissByUser implements port.PromptHarness.
func (a *App) DismissByUser(cause entity.DismissalCause) error {
	return a.popup.Close(cause)
}

// VisibleRequestID implements port.PromptHarness.
func (a *App) VisibleRequestID() (string, bool) {
	return a.popup.VisibleRequestID()
}

// RecordOutcome keeps the latest outcomes for display and forwards them to
// the configured recorder.
func (a *App) RecordOutcome(ctx context.Context, outcome entity.DialogOutcome) error {
	a.mu.Lock()
	a.recent = append(a.recent, outcome)
	if over := len(a.recent) - recentOutcomes; over > 0 {
		a.recent = append(a.recent[:0:0], a.recent[over:]...)
	}
	a.mu.Unlock()
	a.changed()

	if a.deps.Recorder == nil {
		return nil
	}
	return a.deps.Recorder.RecordOutcome(ctx, outcome)
}

// RecentOutcomes returns the latest outcomes, newest first.
func (a *App) RecentOutcomes() []entity.DialogOutcome {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]entity.DialogOutcome, len(a.recent))
	for i, o := range a.recent {
		out[len(a.recent)-1-i] = o
	}
	return out
}

func (a *App) onDialogResult(w entity.WindowRef, types []entity.PermissionType, decision entity.PermissionDecision) {
	level := component.ToastSuccess
	verb := "allowed"
	if decision == entity.PermissionBlock {
		level = component.ToastWarning
		verb = "blocked"
	}
	a.toaster.Show(a.ctx,
		fmt.Sprintf("%s %s on %s", strings.Join(entity.PermissionTypesToStrings(types), ", "), verb, w.ID()),
		level,
	)
	a.changed()
}

func (a *App) changed() {
	a.mu.Lock()
	notify := a.notify
	a.mu.Unlock()
	if notify != nil {
		notify()
	}
}
