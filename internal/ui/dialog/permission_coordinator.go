package dialog

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/consent/internal/application/port"
	"github.com/bnema/consent/internal/domain/entity"
	"github.com/bnema/consent/internal/logging"
)

// coordinatorDeps are the collaborators a coordinator drives.
type coordinatorDeps struct {
	presenter port.ModalDialogPresenter
	osPerms   port.OSPermissionRequester
	settings  port.SettingsLauncher
	strict    bool
}

// coordinatorHooks report back to the queue that owns the coordinator.
type coordinatorHooks struct {
	onEnded   func(o outcome, final entity.DialogState)
	onResumed func()
}

// PermissionCoordinator owns the state machine of the one request on screen
// and turns its effects into presenter, OS and settings calls.
// All methods must be called on the UI thread.
type PermissionCoordinator struct {
	ctx     context.Context
	request *entity.PermissionRequest
	deps    coordinatorDeps
	hooks   coordinatorHooks

	machine machine
	model   *port.PermissionDialogModel

	pending     []dialogEvent
	dispatching bool
	showing     bool
	showFailed  bool
	osRequestID uint64
	destroyed   bool
}

func newPermissionCoordinator(
	ctx context.Context,
	request *entity.PermissionRequest,
	variant entity.EmbeddedPromptVariant,
	deps coordinatorDeps,
	hooks coordinatorHooks,
) *PermissionCoordinator {
	if variant == "" {
		variant = request.EffectiveVariant()
	}
	ctx = logging.WithComponent(ctx, "permission_coordinator")
	ctx = logging.WithRequest(ctx, request.ID, request.Origin, request.WindowID())

	return &PermissionCoordinator{
		ctx:     ctx,
		request: request,
		deps:    deps,
		hooks:   hooks,
		machine: newMachine(variant, request.ShowEphemeral),
	}
}

// State returns the current dialog state.
func (c *PermissionCoordinator) State() entity.DialogState {
	return c.machine.state
}

// Variant returns the variant currently on screen.
func (c *PermissionCoordinator) Variant() entity.EmbeddedPromptVariant {
	return c.machine.variant
}

// Embedded reports whether the embedded state machine is driving the request.
func (c *PermissionCoordinator) Embedded() bool {
	return c.machine.embedded
}

// Request returns the request being shown.
func (c *PermissionCoordinator) Request() *entity.PermissionRequest {
	return c.request
}

// Show starts the flow. It returns false when the presenter could not display
// the dialog; the request has not ended in that case and the caller decides.
func (c *PermissionCoordinator) Show() bool {
	if c.deps.presenter == nil {
		return false
	}
	c.showing = true
	c.dispatch(dialogEvent{kind: eventShow})
	c.showing = false
	return !c.showFailed
}

// UpdateDialog re-renders the screen, switching to variant when it is set.
func (c *PermissionCoordinator) UpdateDialog(variant entity.EmbeddedPromptVariant) {
	c.dispatch(dialogEvent{kind: eventUpdate, variant: variant})
}

// Dismiss is the forced dismissal coming from the caller side.
func (c *PermissionCoordinator) Dismiss() {
	c.dispatch(dialogEvent{kind: eventForcedDismissal})
}

// ContextInvalidated ends the flow because the owning window went away.
func (c *PermissionCoordinator) ContextInvalidated() {
	c.dispatch(dialogEvent{kind: eventContextInvalidated})
}

// SurfaceResumed re-drives the active screen after the host came back to the foreground.
func (c *PermissionCoordinator) SurfaceResumed() {
	c.dispatch(dialogEvent{kind: eventSurfaceResumed})
}

// Destroy turns every later event, including presenter and OS callbacks,
// into a no-op. Safe to call twice.
func (c *PermissionCoordinator) Destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true
	c.pending = nil
}

// Destroyed reports whether Destroy has run.
func (c *PermissionCoordinator) Destroyed() bool {
	return c.destroyed
}

func (c *PermissionCoordinator) onClick(button entity.DialogButton) {
	c.dispatch(dialogEvent{kind: eventButtonClicked, button: button})
}

func (c *PermissionCoordinator) onDismissed(cause entity.DismissalCause) {
	c.dispatch(dialogEvent{kind: eventDialogDismissed, cause: cause})
}

// dispatch feeds ev to the machine. Events raised while effects run (a
// presenter or OS requester calling back synchronously) are queued and handled
// once the current transition is complete.
func (c *PermissionCoordinator) dispatch(ev dialogEvent) {
	if c.destroyed {
		return
	}
	c.pending = append(c.pending, ev)
	if c.dispatching {
		return
	}

	c.dispatching = true
	defer func() { c.dispatching = false }()

	for len(c.pending) > 0 && !c.destroyed {
		next := c.pending[0]
		c.pending = c.pending[1:]
		c.step(next)
	}
}

func (c *PermissionCoordinator) step(ev dialogEvent) {
	log := logging.FromContext(c.ctx)

	from := c.machine.state
	next, effects, err := reduce(c.machine, transitionInput{
		event:        ev,
		contextValid: c.request.ContextValid(),
	})
	if err != nil {
		c.contractViolation(err)
		return
	}
	c.machine = next

	if from != next.state {
		log.Debug().
			Str("event", ev.kind.String()).
			Str("from", string(from)).
			Str("to", string(next.state)).
			Str("variant", string(next.variant)).
			Msg("permission dialog transition")
	}

	for _, eff := range effects {
		if c.destroyed {
			return
		}
		c.run(eff)
	}
}

func (c *PermissionCoordinator) contractViolation(err error) {
	if c.deps.strict {
		panic(err)
	}
	logging.FromContext(c.ctx).Error().Err(err).Msg("ignoring permission dialog event")
}

func (c *PermissionCoordinator) run(eff effect) {
	switch eff.kind {
	case effectPresentDialog:
		c.present()
	case effectUpdateDialog:
		if c.model == nil {
			c.present()
			return
		}
		fillDialogModel(c.model, c.request, c.machine.variant)
		c.deps.presenter.UpdateDialog(c.ctx, c.model)
	case effectDismissDialog:
		if c.model != nil {
			c.deps.presenter.DismissDialog(c.ctx, c.model, eff.cause)
		}
	case effectRequestOSPermission:
		c.requestOSPermission()
	case effectAbandonOSPermission:
		c.osRequestID++
	case effectOpenSettings:
		c.openSettings()
	case effectNotifyResumed:
		if c.hooks.onResumed != nil {
			c.hooks.onResumed()
		}
	case effectFinish:
		c.finish(eff.outcome)
	}
}

func (c *PermissionCoordinator) finish(o outcome) {
	if c.hooks.onEnded != nil {
		c.hooks.onEnded(o, c.machine.state)
	}
}

func (c *PermissionCoordinator) present() {
	if c.model == nil {
		c.model = buildDialogModel(c.request, c.machine.variant)
		c.model.OnClick = c.onClick
		c.model.OnDismissed = c.onDismissed
	} else {
		fillDialogModel(c.model, c.request, c.machine.variant)
	}

	if c.deps.presenter.ShowDialog(c.ctx, c.model) {
		return
	}
	logging.FromContext(c.ctx).Warn().Msg("presenter refused permission dialog")
	c.pending = nil

	// A refusal on the first show is the queue's call to make.
	if c.showing {
		c.showFailed = true
		c.machine.state = entity.DialogStateNotShowing
		return
	}
	c.machine.state = entity.DialogStateEnded
	c.finish(dismissedWith(entity.DismissalCauseAutodismissNoDialogManager))
}

func (c *PermissionCoordinator) requestOSPermission() {
	log := logging.FromContext(c.ctx)

	c.osRequestID++
	id := c.osRequestID

	if c.deps.osPerms == nil {
		log.Debug().Msg("no OS permission requester, treating as granted")
		c.dispatch(dialogEvent{kind: eventOSPermissionResult, granted: true})
		return
	}

	deliver := func(granted bool) {
		if id != c.osRequestID || !c.machine.state.IsRequestingOSPermission() {
			log.Debug().Uint64("os_request", id).Msg("dropping stale OS permission result")
			return
		}
		c.dispatch(dialogEvent{kind: eventOSPermissionResult, granted: granted})
	}

	issued := c.deps.osPerms.RequestPermissions(c.ctx, c.request.Types, port.OSPermissionCallback{
		OnAccepted: func() { deliver(true) },
		OnCanceled: func() { deliver(false) },
	})
	if !issued {
		log.Debug().Msg("OS permission already satisfied")
		deliver(true)
	}
}

func (c *PermissionCoordinator) openSettings() {
	log := logging.FromContext(c.ctx)

	if c.deps.settings == nil {
		log.Warn().Msg("no settings launcher available")
		return
	}

	err := c.deps.settings.OpenPermissionSettings(c.ctx, c.request.Types)
	if err == nil {
		return
	}
	log.Debug().Err(err).Msg("permission settings screen unavailable, opening app settings")

	if fallbackErr := c.deps.settings.OpenAppSettings(c.ctx); fallbackErr != nil {
		log.Warn().Err(errors.Join(err, fallbackErr)).Msg("failed to open settings")
	}
}

func (c *PermissionCoordinator) String() string {
	return fmt.Sprintf("PermissionCoordinator(%s, %s)", c.request.ID, c.machine.state)
}
