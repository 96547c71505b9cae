// Package usecase contains application use cases that orchestrate domain logic.
package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/bnema/consent/internal/application/port"
	"github.com/bnema/consent/internal/domain/entity"
	"github.com/bnema/consent/internal/logging"
)

// RequestHandle is the caller's reference to a pending request. It stays
// valid until the request ends; a stale handle never aliases a newer request.
type RequestHandle struct {
	index      uint32
	generation uint32
}

// IsZero reports whether h was never issued.
func (h RequestHandle) IsZero() bool {
	return h.generation == 0
}

func (h RequestHandle) String() string {
	return fmt.Sprintf("%d:%d", h.index, h.generation)
}

// CreateRequestInput describes a permission prompt asked for by the caller.
type CreateRequestInput struct {
	// ID is optional; a random one is generated when empty.
	ID                     string
	Origin                 string
	Types                  []entity.PermissionType
	Message                string
	Icon                   string
	PositiveLabel          string
	PositiveEphemeralLabel string
	NegativeLabel          string
	Variant                entity.EmbeddedPromptVariant
	Scope                  entity.ModalScope
	Window                 entity.WindowRef
	ShowEphemeral          bool

	// Delegate receives the result. Its Release is the last call made.
	Delegate port.PermissionRequestDelegate
}

type promptSlot struct {
	generation uint32
	request    *entity.PermissionRequest
	live       bool
}

// ManagePermissionPromptsUseCase is the boundary the embedding application
// talks to: it builds requests, hands them to the queue and keeps a handle
// per pending request. Must be used from the UI loop.
type ManagePermissionPromptsUseCase struct {
	queue          port.PermissionPromptQueue
	offerEphemeral bool
	newID          func() string

	slots []promptSlot
	free  []uint32
}

// NewManagePermissionPromptsUseCase creates the use case. When offerEphemeral
// is false the "allow this time" option is never shown.
func NewManagePermissionPromptsUseCase(queue port.PermissionPromptQueue, offerEphemeral bool) *ManagePermissionPromptsUseCase {
	return &ManagePermissionPromptsUseCase{
		queue:          queue,
		offerEphemeral: offerEphemeral,
		newID:          uuid.NewString,
	}
}

// CreateRequest validates input and enqueues it.
func (uc *ManagePermissionPromptsUseCase) CreateRequest(ctx context.Context, input CreateRequestInput) (RequestHandle, error) {
	if input.Delegate == nil {
		return RequestHandle{}, fmt.Errorf("create permission request: %w", port.ErrNilDelegate)
	}

	types := make([]entity.PermissionType, len(input.Types))
	copy(types, input.Types)

	id := input.ID
	if id == "" {
		id = uc.newID()
	}

	req := &entity.PermissionRequest{
		ID:                     id,
		Origin:                 input.Origin,
		Types:                  types,
		Message:                input.Message,
		Icon:                   input.Icon,
		PositiveLabel:          input.PositiveLabel,
		PositiveEphemeralLabel: input.PositiveEphemeralLabel,
		NegativeLabel:          input.NegativeLabel,
		Variant:                input.Variant,
		Scope:                  input.Scope,
		Window:                 input.Window,
		ShowEphemeral:          input.ShowEphemeral && uc.offerEphemeral,
	}
	if err := req.Validate(); err != nil {
		return RequestHandle{}, fmt.Errorf("create permission request: %w", err)
	}

	ctx = logging.WithRequest(logging.WithComponent(ctx, "permission_prompts"), req.ID, req.Origin, req.WindowID())
	log := logging.FromContext(ctx).With().
		Strs("types", entity.PermissionTypesToStrings(req.Types)).
		Logger()

	for _, t := range req.Types {
		if !t.IsKnown() {
			log.Warn().Str("type", string(t)).Msg("unknown permission type, showing generic text")
		}
	}

	handle := uc.allocate(req)
	delegate := &releasingDelegate{PermissionRequestDelegate: input.Delegate, release: func() { uc.releaseSlot(handle) }}

	// The queue may end the request, and release the slot, before Enqueue returns.
	if err := uc.queue.Enqueue(req, delegate); err != nil {
		uc.releaseSlot(handle)
		return RequestHandle{}, fmt.Errorf("enqueue permission request: %w", err)
	}

	log.Debug().Stringer("handle", handle).Msg("permission request created")
	return handle, nil
}

// DismissFromNative force-dismisses the request behind h. Unknown or already
// released handles are ignored.
func (uc *ManagePermissionPromptsUseCase) DismissFromNative(ctx context.Context, h RequestHandle) bool {
	req, ok := uc.Lookup(h)
	if !ok {
		logging.FromContext(ctx).Debug().Stringer("handle", h).Msg("dismiss for released permission request ignored")
		return false
	}
	return uc.queue.DismissFromNative(req.ID)
}

// UpdateDialog switches the request behind h to variant, or re-renders it
// when variant is empty.
func (uc *ManagePermissionPromptsUseCase) UpdateDialog(ctx context.Context, h RequestHandle, variant entity.EmbeddedPromptVariant) error {
	req, ok := uc.Lookup(h)
	if !ok {
		logging.FromContext(ctx).Debug().Stringer("handle", h).Msg("update for released permission request ignored")
		return nil
	}
	if _, err := uc.queue.UpdateDialog(req.ID, variant); err != nil {
		return fmt.Errorf("update permission dialog %s: %w", req.ID, err)
	}
	return nil
}

// Lookup returns the request behind h while it is pending.
func (uc *ManagePermissionPromptsUseCase) Lookup(h RequestHandle) (*entity.PermissionRequest, bool) {
	slot := uc.slot(h)
	if slot == nil {
		return nil, false
	}
	return slot.request, true
}

// Pending returns the number of requests that have not ended yet.
func (uc *ManagePermissionPromptsUseCase) Pending() int {
	return len(uc.slots) - len(uc.free)
}

func (uc *ManagePermissionPromptsUseCase) slot(h RequestHandle) *promptSlot {
	if h.IsZero() || int(h.index) >= len(uc.slots) {
		return nil
	}
	s := &uc.slots[h.index]
	if !s.live || s.generation != h.generation {
		return nil
	}
	return s
}

func (uc *ManagePermissionPromptsUseCase) allocate(req *entity.PermissionRequest) RequestHandle {
	var index uint32
	if n := len(uc.free); n > 0 {
		index = uc.free[n-1]
		uc.free = uc.free[:n-1]
	} else {
		index = uint32(len(uc.slots))
		uc.slots = append(uc.slots, promptSlot{})
	}

	s := &uc.slots[index]
	s.generation++
	if s.generation == 0 {
		s.generation = 1
	}
	s.request = req
	s.live = true
	return RequestHandle{index: index, generation: s.generation}
}

func (uc *ManagePermissionPromptsUseCase) releaseSlot(h RequestHandle) {
	s := uc.slot(h)
	if s == nil {
		return
	}
	s.live = false
	s.request = nil
	uc.free = append(uc.free, h.index)
}

// releasingDelegate frees the handle slot before handing Release to the caller.
type releasingDelegate struct {
	port.PermissionRequestDelegate
	release  func()
	released bool
}

func (d *releasingDelegate) Release() {
	if d.released {
		return
	}
	d.released = true
	d.release()
	d.PermissionRequestDelegate.Release()
}
