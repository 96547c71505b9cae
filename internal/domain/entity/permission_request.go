package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyPermissionTypes is returned when a request asks for nothing.
	ErrEmptyPermissionTypes = errors.New("permission request has no permission types")
	// ErrNilWindow is returned when a request has no owning window.
	ErrNilWindow = errors.New("permission request has no window")
	// ErrUnknownPromptVariant is returned for an unrecognised embedded variant.
	ErrUnknownPromptVariant = errors.New("unknown embedded prompt variant")
)

// WindowRef is a weak reference to the surface (tab, window) a request belongs to.
// Holding it does not keep the surface alive; IsValid reports whether it still is.
type WindowRef interface {
	ID() string
	IsValid() bool
}

// PermissionRequest describes one permission ask. It is immutable once created:
// the queue and the dialog only ever read it.
type PermissionRequest struct {
	ID      string
	Origin  string
	Types   []PermissionType
	Message string
	Icon    string

	PositiveLabel          string
	PositiveEphemeralLabel string
	NegativeLabel          string

	Variant       EmbeddedPromptVariant
	Scope         ModalScope
	Window        WindowRef
	ShowEphemeral bool
}

// Validate checks the invariants a request must satisfy before it is queued.
func (r *PermissionRequest) Validate() error {
	if r == nil {
		return errors.New("permission request is nil")
	}
	if len(r.Types) == 0 {
		return ErrEmptyPermissionTypes
	}
	if r.Window == nil {
		return ErrNilWindow
	}
	if !r.Variant.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownPromptVariant, r.Variant)
	}
	return nil
}

// WindowID returns the owning window id, or "" when the window is unset.
func (r *PermissionRequest) WindowID() string {
	if r == nil || r.Window == nil {
		return ""
	}
	return r.Window.ID()
}

// ContextValid reports whether the owning window still exists.
func (r *PermissionRequest) ContextValid() bool {
	return r != nil && r.Window != nil && r.Window.IsValid()
}

// EffectiveVariant maps the empty variant to PromptVariantNone.
func (r *PermissionRequest) EffectiveVariant() EmbeddedPromptVariant {
	if r.Variant == "" {
		return PromptVariantNone
	}
	return r.Variant
}

// EffectiveScope defaults to tab modality.
func (r *PermissionRequest) EffectiveScope() ModalScope {
	if r.Scope == "" {
		return ModalScopeTab
	}
	return r.Scope
}

// DialogOutcome is the diagnostic record emitted once per ended request.
type DialogOutcome struct {
	RequestID  string
	Origin     string
	WindowID   string
	Types      []PermissionType
	Variant    EmbeddedPromptVariant
	Decision   PermissionDecision
	Cause      DismissalCause
	FinalState DialogState // state the request was in when it ended
	Ephemeral  bool
	StartedAt  int64 // Unix milliseconds
	EndedAt    int64 // Unix milliseconds
}

// DurationMillis returns how long the request was active.
func (o *DialogOutcome) DurationMillis() int64 {
	if o.EndedAt < o.StartedAt {
		return 0
	}
	return o.EndedAt - o.StartedAt
}

// OutcomeCount aggregates journal rows sharing a decision and a cause.
type OutcomeCount struct {
	Decision PermissionDecision
	Cause    DismissalCause
	Count    int
}
