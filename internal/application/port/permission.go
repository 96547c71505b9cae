// Package port defines interfaces for the collaborators of the permission prompt queue.
package port

//go:generate mockgen -destination=mocks/mock_outcome_recorder.go -package=mocks github.com/bnema/consent/internal/application/port OutcomeRecorder
//go:generate mockery --name=PermissionRequestDelegate|PermissionPromptQueue|OutcomeJournal --with-expecter --output=mocks --outpkg=mocks

import (
	"context"
	"errors"

	"github.com/bnema/consent/internal/domain/entity"
)

// ErrNilDelegate is returned when a request arrives without a delegate to
// report its result to.
var ErrNilDelegate = errors.New("permission request delegate is nil")

// OSPermissionCallback receives the result of an OS-level permission request.
// Exactly one of the two functions is called.
type OSPermissionCallback struct {
	OnAccepted func()
	OnCanceled func()
}

// OSPermissionRequester asks the operating system for the grants behind a capability set.
type OSPermissionRequester interface {
	// RequestPermissions requests whatever OS permission is missing for types.
	// It returns false when nothing had to be requested (already satisfied); the
	// callback is then never invoked. When it returns true the callback fires
	// later on the UI thread, or synchronously before RequestPermissions returns.
	RequestPermissions(ctx context.Context, types []entity.PermissionType, callback OSPermissionCallback) bool
}

// SettingsLauncher opens external settings surfaces.
type SettingsLauncher interface {
	// OpenPermissionSettings opens the capability-specific settings screen.
	OpenPermissionSettings(ctx context.Context, types []entity.PermissionType) error

	// OpenAppSettings opens the generic application settings screen.
	OpenAppSettings(ctx context.Context) error
}

// PermissionDialogModel is the view-model handed to the presenter.
// The presenter renders it and reports user input through the callbacks,
// always on the UI thread.
type PermissionDialogModel struct {
	RequestID string
	WindowID  string
	Scope     entity.ModalScope
	Variant   entity.EmbeddedPromptVariant

	Title                  string
	Message                string
	Icon                   string
	PositiveLabel          string
	PositiveEphemeralLabel string
	NegativeLabel          string

	// OnClick is invoked when a button is pressed.
	OnClick func(button entity.DialogButton)

	// OnDismissed is invoked once the dialog has been removed from screen,
	// whether the user closed it or DismissDialog was called.
	OnDismissed func(cause entity.DismissalCause)
}

// ShowsEphemeralButton returns true when the "allow this time" button is offered.
func (m *PermissionDialogModel) ShowsEphemeralButton() bool {
	return m.PositiveEphemeralLabel != ""
}

// ModalDialogPresenter displays consent dialogs.
// This is implemented by the UI layer.
type ModalDialogPresenter interface {
	// ShowDialog displays the model. It returns false when no dialog can be
	// shown at all (no dialog manager for the surface).
	ShowDialog(ctx context.Context, model *PermissionDialogModel) bool

	// UpdateDialog re-renders the content of an already visible model
	// without closing the dialog shell.
	UpdateDialog(ctx context.Context, model *PermissionDialogModel)

	// DismissDialog closes the model. OnDismissed must follow with cause.
	DismissDialog(ctx context.Context, model *PermissionDialogModel, cause entity.DismissalCause)

	// IsSuspended reports whether dialogs of the given scope are currently held back
	// (surface in background).
	IsSuspended(scope entity.ModalScope) bool
}

// PermissionRequestDelegate is the caller-owned side of a request.
// The dialog reports exactly one terminal call (Accept, AcceptThisTime, Deny,
// Dismiss, Acknowledge or SystemPermissionResolved) followed by Release,
// except for forced dismissals, which only Release.
type PermissionRequestDelegate interface {
	Accept()
	AcceptThisTime()
	Deny()
	Dismiss(cause entity.DismissalCause)
	Acknowledge()
	SystemPermissionResolved(granted bool)

	// Resumed tells the caller the host surface came back to the foreground.
	Resumed()

	// Release frees the caller handle. It is the last call the dialog makes.
	Release()
}

// PermissionDialogObserver is notified of decisive (allow/block) results.
type PermissionDialogObserver interface {
	OnDialogResult(window entity.WindowRef, types []entity.PermissionType, decision entity.PermissionDecision)
}

// PermissionDialogObserverFunc adapts a function to PermissionDialogObserver.
type PermissionDialogObserverFunc func(window entity.WindowRef, types []entity.PermissionType, decision entity.PermissionDecision)

// OnDialogResult calls f.
func (f PermissionDialogObserverFunc) OnDialogResult(
	window entity.WindowRef,
	types []entity.PermissionType,
	decision entity.PermissionDecision,
) {
	f(window, types, decision)
}

// OutcomeRecorder records the diagnostic outcome of every ended request
// (metrics, journal). Implementations must not block the UI thread for long.
type OutcomeRecorder interface {
	RecordOutcome(ctx context.Context, outcome entity.DialogOutcome) error
}

// PermissionPromptQueue is the dialog queue as seen from the caller boundary.
// Implemented by the UI layer; every call must happen on the UI loop.
type PermissionPromptQueue interface {
	Enqueue(req *entity.PermissionRequest, delegate PermissionRequestDelegate) error
	DismissFromNative(id string) bool
	UpdateDialog(id string, variant entity.EmbeddedPromptVariant) (bool, error)
}
