package entity_test

import (
	"errors"
	"testing"

	"github.com/bnema/consent/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubWindow struct {
	id    string
	valid bool
}

func (w *stubWindow) ID() string    { return w.id }
func (w *stubWindow) IsValid() bool { return w.valid }

func TestPermissionType_IsKnown(t *testing.T) {
	for _, pt := range entity.KnownPermissionTypes() {
		assert.True(t, pt.IsKnown(), string(pt))
	}
	assert.False(t, entity.PermissionType("telepathy").IsKnown())
}

func TestNeedsOSPermission(t *testing.T) {
	tests := []struct {
		permType entity.PermissionType
		expected bool
	}{
		{entity.PermissionTypeGeolocation, true},
		{entity.PermissionTypeCamera, true},
		{entity.PermissionTypeMicrophone, true},
		{entity.PermissionTypeNearbyDevices, true},
		{entity.PermissionTypeClipboard, false},
		{entity.PermissionTypeStorageAccess, false},
		{entity.PermissionTypePointerLock, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.permType), func(t *testing.T) {
			assert.Equal(t, tt.expected, entity.NeedsOSPermission(tt.permType))
		})
	}
}

func TestPermissionDecision_IsDecisive(t *testing.T) {
	assert.True(t, entity.PermissionAllow.IsDecisive())
	assert.True(t, entity.PermissionBlock.IsDecisive())
	assert.False(t, entity.PermissionDefault.IsDecisive())
	assert.False(t, entity.PermissionDecision("").IsDecisive())
}

func TestPermissionTypesToStrings(t *testing.T) {
	types := []entity.PermissionType{
		entity.PermissionTypeCamera,
		entity.PermissionTypeMicrophone,
	}

	assert.Equal(t, []string{"camera", "microphone"}, entity.PermissionTypesToStrings(types))
	assert.Empty(t, entity.PermissionTypesToStrings(nil))
}

func TestEmbeddedPromptVariant(t *testing.T) {
	assert.False(t, entity.EmbeddedPromptVariant("").IsEmbedded())
	assert.False(t, entity.PromptVariantNone.IsEmbedded())
	assert.True(t, entity.PromptVariantAsk.IsEmbedded())
	assert.True(t, entity.PromptVariantOSPrompt.IsEmbedded())

	assert.True(t, entity.EmbeddedPromptVariant("").IsValid())
	assert.False(t, entity.EmbeddedPromptVariant("sideways").IsValid())

	assert.True(t, entity.PromptVariantAdministratorDenied.IsAdministratorControlled())
	assert.False(t, entity.PromptVariantPreviouslyDenied.IsAdministratorControlled())
}

func TestDialogState_Classification(t *testing.T) {
	assert.False(t, entity.DialogStateNotShowing.IsActive())
	assert.False(t, entity.DialogStateEnded.IsActive())
	assert.True(t, entity.DialogStatePromptOpen.IsActive())
	assert.True(t, entity.DialogStateShowSystemPrompt.IsActive())

	assert.True(t, entity.DialogStatePromptNegativeClicked.IsClicked())
	assert.False(t, entity.DialogStatePromptOpen.IsClicked())

	assert.True(t, entity.DialogStateRequestOSPermissionEphemeral.IsRequestingOSPermission())
	assert.True(t, entity.DialogStateShowSystemPrompt.IsRequestingOSPermission())
	assert.False(t, entity.DialogStatePromptPositiveClicked.IsRequestingOSPermission())
}

func TestPermissionRequest_Validate(t *testing.T) {
	window := &stubWindow{id: "tab-1", valid: true}

	valid := &entity.PermissionRequest{
		ID:     "req-1",
		Types:  []entity.PermissionType{entity.PermissionTypeGeolocation},
		Window: window,
	}
	require.NoError(t, valid.Validate())

	noTypes := &entity.PermissionRequest{ID: "req-2", Window: window}
	assert.ErrorIs(t, noTypes.Validate(), entity.ErrEmptyPermissionTypes)

	noWindow := &entity.PermissionRequest{
		ID:    "req-3",
		Types: []entity.PermissionType{entity.PermissionTypeCamera},
	}
	assert.ErrorIs(t, noWindow.Validate(), entity.ErrNilWindow)

	badVariant := &entity.PermissionRequest{
		ID:      "req-4",
		Types:   []entity.PermissionType{entity.PermissionTypeCamera},
		Window:  window,
		Variant: "sideways",
	}
	err := badVariant.Validate()
	assert.True(t, errors.Is(err, entity.ErrUnknownPromptVariant))

	var nilReq *entity.PermissionRequest
	assert.Error(t, nilReq.Validate())
}

func TestPermissionRequest_Defaults(t *testing.T) {
	window := &stubWindow{id: "tab-7", valid: true}
	req := &entity.PermissionRequest{
		Types:  []entity.PermissionType{entity.PermissionTypeCamera},
		Window: window,
	}

	assert.Equal(t, entity.PromptVariantNone, req.EffectiveVariant())
	assert.Equal(t, entity.ModalScopeTab, req.EffectiveScope())
	assert.Equal(t, "tab-7", req.WindowID())
	assert.True(t, req.ContextValid())

	window.valid = false
	assert.False(t, req.ContextValid())

	var nilReq *entity.PermissionRequest
	assert.Equal(t, "", nilReq.WindowID())
	assert.False(t, nilReq.ContextValid())
}

func TestDialogOutcome_DurationMillis(t *testing.T) {
	o := entity.DialogOutcome{StartedAt: 1000, EndedAt: 1750}
	assert.Equal(t, int64(750), o.DurationMillis())

	skewed := entity.DialogOutcome{StartedAt: 2000, EndedAt: 1000}
	assert.Equal(t, int64(0), skewed.DurationMillis())
}
