package dialog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/consent/internal/domain/entity"
)

func TestBuildHeadingAndBody(t *testing.T) {
	tests := []struct {
		name        string
		origin      string
		types       []entity.PermissionType
		wantHeading string
		wantBody    string
	}{
		{
			name:        "single type",
			origin:      "https://maps.example.com",
			types:       []entity.PermissionType{entity.PermissionTypeGeolocation},
			wantHeading: "Allow Location Access?",
			wantBody:    "https://maps.example.com wants to know your location.",
		},
		{
			name:        "camera and microphone",
			origin:      "https://meet.example.com",
			types:       []entity.PermissionType{entity.PermissionTypeMicrophone, entity.PermissionTypeCamera},
			wantHeading: "Allow Microphone and Camera?",
			wantBody:    "https://meet.example.com wants to use your microphone and use your camera.",
		},
		{
			name:   "three types keep order",
			origin: "https://x.example",
			types: []entity.PermissionType{
				entity.PermissionTypeCamera, entity.PermissionTypeMicrophone, entity.PermissionTypeGeolocation,
			},
			wantHeading: "Allow Camera, Microphone, and Location?",
			wantBody:    "https://x.example wants to use your camera, use your microphone, and know your location.",
		},
		{
			name:        "duplicates collapse",
			origin:      "https://x.example",
			types:       []entity.PermissionType{entity.PermissionTypeCamera, entity.PermissionTypeCamera},
			wantHeading: "Allow Camera Access?",
			wantBody:    "https://x.example wants to use your camera.",
		},
		{
			name:        "no origin",
			types:       []entity.PermissionType{entity.PermissionTypeNotification},
			wantHeading: "Allow Notifications Access?",
			wantBody:    "This site wants to show notifications.",
		},
		{
			name:        "unknown type",
			origin:      "https://x.example",
			types:       []entity.PermissionType{"telepathy"},
			wantHeading: "Allow telepathy Access?",
			wantBody:    "https://x.example wants to access your device.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantHeading, buildHeading(tt.types))
			assert.Equal(t, tt.wantBody, buildBody(tt.origin, tt.types))
		})
	}
}

func TestBuildDialogModel_ButtonLabelsPerVariant(t *testing.T) {
	tests := []struct {
		variant           entity.EmbeddedPromptVariant
		ephemeral         bool
		wantPositive      string
		wantEphemeral     string
		wantNegative      string
		wantEphemeralShow bool
	}{
		{variant: entity.PromptVariantNone, wantPositive: "Allow", wantNegative: "Don't allow"},
		{variant: entity.PromptVariantNone, ephemeral: true, wantPositive: "Allow while visiting the site", wantEphemeral: "Allow this time", wantNegative: "Don't allow", wantEphemeralShow: true},
		{variant: entity.PromptVariantAsk, wantPositive: "Allow", wantNegative: "Not now"},
		{variant: entity.PromptVariantOSSystemSettings, ephemeral: true, wantPositive: "Open settings", wantNegative: "Cancel"},
		{variant: entity.PromptVariantPreviouslyGranted, wantPositive: "Continue allowing", wantNegative: "Stop allowing"},
		{variant: entity.PromptVariantPreviouslyDenied, wantPositive: "Allow this time", wantNegative: "Continue not allowing"},
		{variant: entity.PromptVariantAdministratorDenied, wantPositive: "Got it"},
	}

	for _, tt := range tests {
		t.Run(string(tt.variant), func(t *testing.T) {
			req := newRequest("r", newFakeWindow("w"))
			req.Variant = tt.variant
			req.ShowEphemeral = tt.ephemeral

			model := buildDialogModel(req, tt.variant)
			assert.Equal(t, "r", model.RequestID)
			assert.Equal(t, "w", model.WindowID)
			assert.Equal(t, tt.variant, model.Variant)
			assert.Equal(t, tt.wantPositive, model.PositiveLabel)
			assert.Equal(t, tt.wantEphemeral, model.PositiveEphemeralLabel)
			assert.Equal(t, tt.wantNegative, model.NegativeLabel)
			assert.Equal(t, tt.wantEphemeralShow, model.ShowsEphemeralButton())
		})
	}
}

func TestFillDialogModel_RequestTextOnlyAppliesToInitialScreen(t *testing.T) {
	req := newRequest("r", newFakeWindow("w"))
	req.Variant = entity.PromptVariantAsk
	req.Message = "Share where you are so we can show nearby stores."
	req.PositiveLabel = "Share location"

	model := buildDialogModel(req, entity.PromptVariantAsk)
	assert.Equal(t, "Share where you are so we can show nearby stores.", model.Message)
	assert.Equal(t, "Share location", model.PositiveLabel)
	assert.Equal(t, "Allow Location Access?", model.Title)

	fillDialogModel(model, req, entity.PromptVariantPreviouslyDenied)
	assert.Equal(t, entity.PromptVariantPreviouslyDenied, model.Variant)
	assert.Equal(t, "Allow this time", model.PositiveLabel)
	assert.Equal(t, "https://example.com can't use location.", model.Message)
}

func TestFillDialogModel_EmptyVariantMeansNone(t *testing.T) {
	req := newRequest("r", newFakeWindow("w"))
	model := buildDialogModel(req, "")
	assert.Equal(t, entity.PromptVariantNone, model.Variant)
	assert.Equal(t, "Allow", model.PositiveLabel)
}
