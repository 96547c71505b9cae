package dialog

import (
	"context"
	"fmt"

	"github.com/bnema/consent/internal/application/port"
	"github.com/bnema/consent/internal/domain/entity"
)

type fakeWindow struct {
	id    string
	valid bool
}

func newFakeWindow(id string) *fakeWindow {
	return &fakeWindow{id: id, valid: true}
}

func (w *fakeWindow) ID() string    { return w.id }
func (w *fakeWindow) IsValid() bool { return w.valid }

// fakePresenter records presenter calls. DismissDialog reports the dismissal
// back synchronously, like a presenter without close animation.
type fakePresenter struct {
	refuseShow bool
	suspended  map[entity.ModalScope]bool
	// holdDismissCallback keeps OnDismissed pending until FinishDismiss.
	holdDismissCallback bool

	shown     []*port.PermissionDialogModel
	updated   []*port.PermissionDialogModel
	dismissed []entity.DismissalCause
	current   *port.PermissionDialogModel
	held      *entity.DismissalCause
}

func (p *fakePresenter) ShowDialog(_ context.Context, model *port.PermissionDialogModel) bool {
	if p.refuseShow {
		return false
	}
	snapshot := *model
	p.shown = append(p.shown, &snapshot)
	p.current = model
	return true
}

func (p *fakePresenter) UpdateDialog(_ context.Context, model *port.PermissionDialogModel) {
	snapshot := *model
	p.updated = append(p.updated, &snapshot)
}

func (p *fakePresenter) DismissDialog(_ context.Context, model *port.PermissionDialogModel, cause entity.DismissalCause) {
	p.dismissed = append(p.dismissed, cause)
	if p.holdDismissCallback {
		p.held = &cause
		return
	}
	p.current = nil
	model.OnDismissed(cause)
}

func (p *fakePresenter) IsSuspended(scope entity.ModalScope) bool {
	return p.suspended[scope]
}

// Click presses button on the dialog currently on screen.
func (p *fakePresenter) Click(button entity.DialogButton) {
	if p.current == nil {
		panic("no dialog on screen")
	}
	p.current.OnClick(button)
}

// UserDismiss closes the dialog on screen the way the user would.
func (p *fakePresenter) UserDismiss(cause entity.DismissalCause) {
	model := p.current
	if model == nil {
		panic("no dialog on screen")
	}
	p.current = nil
	model.OnDismissed(cause)
}

// FinishDismiss delivers a held OnDismissed callback.
func (p *fakePresenter) FinishDismiss() {
	if p.held == nil || p.current == nil {
		return
	}
	cause := *p.held
	model := p.current
	p.held = nil
	p.current = nil
	model.OnDismissed(cause)
}

// fakeOSRequester answers immediately when answer is set, otherwise keeps the
// callback until Respond.
type fakeOSRequester struct {
	alreadySatisfied bool
	answer           *bool

	calls    [][]entity.PermissionType
	callback *port.OSPermissionCallback
}

func (r *fakeOSRequester) RequestPermissions(
	_ context.Context,
	types []entity.PermissionType,
	callback port.OSPermissionCallback,
) bool {
	r.calls = append(r.calls, types)
	if r.alreadySatisfied {
		return false
	}
	if r.answer != nil {
		if *r.answer {
			callback.OnAccepted()
		} else {
			callback.OnCanceled()
		}
		return true
	}
	r.callback = &callback
	return true
}

func (r *fakeOSRequester) Respond(granted bool) {
	if r.callback == nil {
		return
	}
	cb := r.callback
	r.callback = nil
	if granted {
		cb.OnAccepted()
	} else {
		cb.OnCanceled()
	}
}

func boolPtr(v bool) *bool { return &v }

type fakeSettingsLauncher struct {
	permissionErr error
	permission    [][]entity.PermissionType
	app           int
}

func (l *fakeSettingsLauncher) OpenPermissionSettings(_ context.Context, types []entity.PermissionType) error {
	l.permission = append(l.permission, types)
	return l.permissionErr
}

func (l *fakeSettingsLauncher) OpenAppSettings(context.Context) error {
	l.app++
	return nil
}

// recordingDelegate logs every call as a short string.
type recordingDelegate struct {
	calls []string
	// onRelease runs inside Release, to exercise re-entrant callers.
	onRelease func()
}

func (d *recordingDelegate) Accept()         { d.calls = append(d.calls, "accept") }
func (d *recordingDelegate) AcceptThisTime() { d.calls = append(d.calls, "accept_this_time") }
func (d *recordingDelegate) Deny()           { d.calls = append(d.calls, "deny") }
func (d *recordingDelegate) Dismiss(cause entity.DismissalCause) {
	d.calls = append(d.calls, "dismiss:"+string(cause))
}
func (d *recordingDelegate) Acknowledge() { d.calls = append(d.calls, "acknowledge") }
func (d *recordingDelegate) SystemPermissionResolved(granted bool) {
	d.calls = append(d.calls, fmt.Sprintf("system_resolved:%t", granted))
}
func (d *recordingDelegate) Resumed() { d.calls = append(d.calls, "resumed") }
func (d *recordingDelegate) Release() {
	d.calls = append(d.calls, "release")
	if d.onRelease != nil {
		d.onRelease()
	}
}

type recordedResult struct {
	windowID string
	types    []entity.PermissionType
	decision entity.PermissionDecision
}

type fakeRecorder struct {
	outcomes []entity.DialogOutcome
	err      error
}

func (r *fakeRecorder) RecordOutcome(_ context.Context, o entity.DialogOutcome) error {
	r.outcomes = append(r.outcomes, o)
	return r.err
}

func newRequest(id string, window *fakeWindow, types ...entity.PermissionType) *entity.PermissionRequest {
	if len(types) == 0 {
		types = []entity.PermissionType{entity.PermissionTypeGeolocation}
	}
	return &entity.PermissionRequest{
		ID:     id,
		Origin: "https://example.com",
		Types:  types,
		Window: window,
	}
}
