// Package dialog drives permission consent dialogs: one request on screen at a
// time, the rest waiting in arrival order.
package dialog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/consent/internal/application/port"
	"github.com/bnema/consent/internal/domain/entity"
	"github.com/bnema/consent/internal/logging"
)

var (
	// ErrDuplicateRequest is returned when a request ID is already queued or active.
	ErrDuplicateRequest = errors.New("permission request already enqueued")
	// ErrNilDelegate is port.ErrNilDelegate.
	ErrNilDelegate = port.ErrNilDelegate
)

// ObserverID identifies a registered observer for RemoveObserver.
type ObserverID uint64

type observerSlot struct {
	id       ObserverID
	observer port.PermissionDialogObserver
}

type queueEntry struct {
	request  *entity.PermissionRequest
	delegate port.PermissionRequestDelegate

	// variant overrides the request's own variant after an update.
	variant    entity.EmbeddedPromptVariant
	enqueuedAt time.Time
	ended      bool
}

func (e *queueEntry) currentVariant() entity.EmbeddedPromptVariant {
	if e.variant != "" {
		return e.variant
	}
	return e.request.EffectiveVariant()
}

// QueueOption configures a PermissionQueue.
type QueueOption func(*PermissionQueue)

// WithStrictTransitions makes invalid dialog transitions panic instead of being logged.
func WithStrictTransitions(strict bool) QueueOption {
	return func(q *PermissionQueue) {
		q.strict = strict
	}
}

// WithRecorder sets where ended requests are reported.
func WithRecorder(recorder port.OutcomeRecorder) QueueOption {
	return func(q *PermissionQueue) {
		q.recorder = recorder
	}
}

// WithSettingsLauncher sets the launcher used by the system settings screen.
func WithSettingsLauncher(launcher port.SettingsLauncher) QueueOption {
	return func(q *PermissionQueue) {
		q.settings = launcher
	}
}

// WithClock replaces time.Now for outcome timestamps.
func WithClock(now func() time.Time) QueueOption {
	return func(q *PermissionQueue) {
		if now != nil {
			q.now = now
		}
	}
}

// PermissionQueue shows permission requests one at a time in FIFO order.
//
// It is not safe for concurrent use: every method, and every callback handed
// to the presenter or the OS requester, must run on the UI loop.
type PermissionQueue struct {
	ctx       context.Context
	presenter port.ModalDialogPresenter
	osPerms   port.OSPermissionRequester
	settings  port.SettingsLauncher
	recorder  port.OutcomeRecorder
	strict    bool
	now       func() time.Time

	queue       []*queueEntry
	active      *queueEntry
	coordinator *PermissionCoordinator
	scheduling  bool

	observers      []observerSlot
	nextObserverID ObserverID
}

// NewPermissionQueue creates the process-wide permission queue.
// A nil presenter makes every request end with no dialog manager.
func NewPermissionQueue(
	ctx context.Context,
	presenter port.ModalDialogPresenter,
	osPerms port.OSPermissionRequester,
	opts ...QueueOption,
) *PermissionQueue {
	q := &PermissionQueue{
		ctx:       logging.WithComponent(ctx, "permission_queue"),
		presenter: presenter,
		osPerms:   osPerms,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Enqueue appends req and shows it right away when nothing else is on screen.
func (q *PermissionQueue) Enqueue(req *entity.PermissionRequest, delegate port.PermissionRequestDelegate) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("enqueue permission request: %w", err)
	}
	if delegate == nil {
		return ErrNilDelegate
	}
	if q.find(req.ID) != nil {
		return fmt.Errorf("%w: %s", ErrDuplicateRequest, req.ID)
	}

	q.queue = append(q.queue, &queueEntry{
		request:    req,
		delegate:   delegate,
		enqueuedAt: q.now(),
	})

	logging.FromContext(q.ctx).Debug().
		Str("request_id", req.ID).
		Str("origin", req.Origin).
		Strs("types", entity.PermissionTypesToStrings(req.Types)).
		Str("variant", string(req.EffectiveVariant())).
		Int("queued", len(q.queue)).
		Msg("permission request enqueued")

	q.scheduleNext()
	return nil
}

// DismissFromNative force-dismisses the request with id. The active request is
// short-circuited to ended; a queued one is dropped without being shown.
// It reports whether the request was still pending.
func (q *PermissionQueue) DismissFromNative(id string) bool {
	if e := q.active; e != nil && e.request.ID == id {
		if q.coordinator != nil {
			q.coordinator.Dismiss()
		}
		if !e.ended {
			q.finish(e, outcome{kind: outcomeForced, cause: entity.DismissalCauseUnspecified}, entity.DialogStateEnded)
		}
		return true
	}

	entry := q.remove(id)
	if entry == nil {
		return false
	}
	q.finish(entry, outcome{kind: outcomeForced, cause: entity.DismissalCauseUnspecified}, entity.DialogStateNotShowing)
	return true
}

// UpdateDialog re-renders the request with id. An empty variant keeps the
// current one. A queued request picks the variant up when it is shown.
func (q *PermissionQueue) UpdateDialog(id string, variant entity.EmbeddedPromptVariant) (bool, error) {
	if !variant.IsValid() {
		return false, fmt.Errorf("%w: %q", entity.ErrUnknownPromptVariant, variant)
	}

	if q.active != nil && q.active.request.ID == id {
		q.coordinator.UpdateDialog(variant)
		return true, nil
	}
	for _, e := range q.queue {
		if e.request.ID == id {
			if variant != "" {
				e.variant = variant
			}
			return true, nil
		}
	}
	return false, nil
}

// OnWindowDestroyed ends every request that belongs to windowID, queued or active.
func (q *PermissionQueue) OnWindowDestroyed(windowID string) {
	var purged []*queueEntry
	kept := q.queue[:0]
	for _, e := range q.queue {
		if e.request.WindowID() == windowID {
			purged = append(purged, e)
			continue
		}
		kept = append(kept, e)
	}
	for i := len(kept); i < len(q.queue); i++ {
		q.queue[i] = nil
	}
	q.queue = kept

	for _, e := range purged {
		q.finish(e, dismissedWith(entity.DismissalCauseAutodismissNoContext), entity.DialogStateNotShowing)
	}

	if q.active != nil && q.active.request.WindowID() == windowID {
		q.coordinator.ContextInvalidated()
	}

	if len(purged) > 0 {
		logging.FromContext(q.ctx).Debug().
			Str("window_id", windowID).
			Int("purged", len(purged)).
			Msg("dropped queued permission requests for destroyed window")
	}
}

// OnSurfaceResumed re-drives the active screen of windowID, or of any window
// when windowID is empty, and shows the next request if the queue was held back.
func (q *PermissionQueue) OnSurfaceResumed(windowID string) {
	if q.active != nil && (windowID == "" || q.active.request.WindowID() == windowID) {
		q.coordinator.SurfaceResumed()
	}
	q.scheduleNext()
}

// AddObserver registers o for decisive results.
func (q *PermissionQueue) AddObserver(o port.PermissionDialogObserver) ObserverID {
	q.nextObserverID++
	q.observers = append(q.observers, observerSlot{id: q.nextObserverID, observer: o})
	return q.nextObserverID
}

// RemoveObserver unregisters the observer with id.
func (q *PermissionQueue) RemoveObserver(id ObserverID) {
	for i, slot := range q.observers {
		if slot.id == id {
			q.observers = append(q.observers[:i:i], q.observers[i+1:]...)
			return
		}
	}
}

// Active returns the request on screen, if any.
func (q *PermissionQueue) Active() (*entity.PermissionRequest, entity.DialogState, bool) {
	if q.active == nil || q.coordinator == nil {
		return nil, entity.DialogStateNotShowing, false
	}
	return q.active.request, q.coordinator.State(), true
}

// Pending returns the IDs of the queued requests in display order.
func (q *PermissionQueue) Pending() []string {
	ids := make([]string, len(q.queue))
	for i, e := range q.queue {
		ids[i] = e.request.ID
	}
	return ids
}

func (q *PermissionQueue) find(id string) *queueEntry {
	if q.active != nil && q.active.request.ID == id {
		return q.active
	}
	for _, e := range q.queue {
		if e.request.ID == id {
			return e
		}
	}
	return nil
}

func (q *PermissionQueue) remove(id string) *queueEntry {
	for i, e := range q.queue {
		if e.request.ID == id {
			q.queue = append(q.queue[:i:i], q.queue[i+1:]...)
			return e
		}
	}
	return nil
}

// scheduleNext activates the head of the queue when nothing is active.
// Requests that end without being shown are handled in the same loop, so the
// work is bounded by the queue length.
func (q *PermissionQueue) scheduleNext() {
	if q.scheduling {
		return
	}
	q.scheduling = true
	defer func() { q.scheduling = false }()

	log := logging.FromContext(q.ctx)

	for q.active == nil && len(q.queue) > 0 {
		head := q.queue[0]

		if q.presenter != nil && q.presenter.IsSuspended(head.request.EffectiveScope()) {
			log.Debug().Str("request_id", head.request.ID).Msg("presenter suspended, holding queue")
			return
		}

		q.queue[0] = nil
		q.queue = q.queue[1:]

		if !head.request.ContextValid() {
			q.finish(head, dismissedWith(entity.DismissalCauseAutodismissNoContext), entity.DialogStateNotShowing)
			continue
		}
		if q.presenter == nil {
			q.finish(head, dismissedWith(entity.DismissalCauseAutodismissNoDialogManager), entity.DialogStateNotShowing)
			continue
		}

		q.activate(head)
	}
}

func (q *PermissionQueue) activate(e *queueEntry) {
	q.active = e
	q.coordinator = newPermissionCoordinator(
		q.ctx,
		e.request,
		e.currentVariant(),
		coordinatorDeps{
			presenter: q.presenter,
			osPerms:   q.osPerms,
			settings:  q.settings,
			strict:    q.strict,
		},
		coordinatorHooks{
			onEnded:   func(o outcome, final entity.DialogState) { q.finish(e, o, final) },
			onResumed: e.delegate.Resumed,
		},
	)

	if !q.coordinator.Show() {
		q.finish(e, dismissedWith(entity.DismissalCauseAutodismissNoDialogManager), entity.DialogStateNotShowing)
	}
}

// finish is the single place a request ends: it reports the outcome to the
// delegate, releases it, records the outcome and moves the queue on.
func (q *PermissionQueue) finish(e *queueEntry, o outcome, final entity.DialogState) {
	if e.ended {
		return
	}
	e.ended = true

	if q.active == e {
		if q.coordinator != nil {
			e.variant = q.coordinator.Variant()
			q.coordinator.Destroy()
		}
		q.active = nil
		q.coordinator = nil
	}

	deliverOutcome(e.delegate, o)
	e.delegate.Release()

	decision := o.decision()
	logging.FromContext(q.ctx).Info().
		Str("request_id", e.request.ID).
		Str("origin", e.request.Origin).
		Str("outcome", o.String()).
		Str("decision", string(decision)).
		Str("cause", string(o.cause)).
		Str("state", string(final)).
		Msg("permission request ended")

	q.record(e, o, final)
	if decision.IsDecisive() {
		q.notifyObservers(e.request, decision)
	}

	q.scheduleNext()
}

func deliverOutcome(d port.PermissionRequestDelegate, o outcome) {
	switch o.kind {
	case outcomeAccept:
		d.Accept()
	case outcomeAcceptThisTime:
		d.AcceptThisTime()
	case outcomeDeny:
		d.Deny()
	case outcomeDismiss:
		d.Dismiss(o.cause)
	case outcomeAcknowledge:
		d.Acknowledge()
	case outcomeSystemResolved:
		d.SystemPermissionResolved(o.granted)
	case outcomeForced:
		// The caller asked for the dismissal; it needs no answer.
	}
}

func (q *PermissionQueue) record(e *queueEntry, o outcome, final entity.DialogState) {
	if q.recorder == nil {
		return
	}

	types := make([]entity.PermissionType, len(e.request.Types))
	copy(types, e.request.Types)

	out := entity.DialogOutcome{
		RequestID:  e.request.ID,
		Origin:     e.request.Origin,
		WindowID:   e.request.WindowID(),
		Types:      types,
		Variant:    e.currentVariant(),
		Decision:   o.decision(),
		Cause:      o.cause,
		FinalState: final,
		Ephemeral:  o.kind == outcomeAcceptThisTime,
		StartedAt:  e.enqueuedAt.UnixMilli(),
		EndedAt:    q.now().UnixMilli(),
	}
	if err := q.recorder.RecordOutcome(q.ctx, out); err != nil {
		logging.FromContext(q.ctx).Warn().Err(err).Str("request_id", e.request.ID).Msg("failed to record permission outcome")
	}
}

func (q *PermissionQueue) notifyObservers(req *entity.PermissionRequest, decision entity.PermissionDecision) {
	// Observers may unregister themselves while being notified.
	observers := make([]observerSlot, len(q.observers))
	copy(observers, q.observers)

	for _, slot := range observers {
		slot.observer.OnDialogResult(req.Window, req.Types, decision)
	}
}

var _ port.PermissionPromptQueue = (*PermissionQueue)(nil)
