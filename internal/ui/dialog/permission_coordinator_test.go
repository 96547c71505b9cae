package dialog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/consent/internal/domain/entity"
)

type endedCall struct {
	outcome outcome
	state   entity.DialogState
}

type coordinatorHarness struct {
	presenter *fakePresenter
	osPerms   *fakeOSRequester
	settings  *fakeSettingsLauncher
	ended     []endedCall
	resumed   int
}

func newCoordinatorHarness() *coordinatorHarness {
	return &coordinatorHarness{
		presenter: &fakePresenter{},
		osPerms:   &fakeOSRequester{},
		settings:  &fakeSettingsLauncher{},
	}
}

func (h *coordinatorHarness) coordinator(req *entity.PermissionRequest, strict bool) *PermissionCoordinator {
	return newPermissionCoordinator(
		context.Background(),
		req,
		"",
		coordinatorDeps{
			presenter: h.presenter,
			osPerms:   h.osPerms,
			settings:  h.settings,
			strict:    strict,
		},
		coordinatorHooks{
			onEnded: func(o outcome, final entity.DialogState) {
				h.ended = append(h.ended, endedCall{outcome: o, state: final})
			},
			onResumed: func() { h.resumed++ },
		},
	)
}

func TestPermissionCoordinator_PositiveClickRequestsOSPermission(t *testing.T) {
	h := newCoordinatorHarness()
	req := newRequest("r1", newFakeWindow("w1"))
	c := h.coordinator(req, true)

	require.True(t, c.Show())
	require.Len(t, h.presenter.shown, 1)
	assert.Equal(t, "Allow Location Access?", h.presenter.shown[0].Title)
	assert.Equal(t, entity.DialogStatePromptOpen, c.State())

	h.presenter.Click(entity.DialogButtonPositive)

	assert.Equal(t, []entity.DismissalCause{entity.DismissalCausePositiveButton}, h.presenter.dismissed)
	assert.Equal(t, entity.DialogStateRequestOSPermissionPersistent, c.State())
	require.Len(t, h.osPerms.calls, 1)
	assert.Empty(t, h.ended)

	h.osPerms.Respond(true)
	require.Len(t, h.ended, 1)
	assert.Equal(t, outcomeAccept, h.ended[0].outcome.kind)
	assert.Equal(t, entity.DialogStateEnded, h.ended[0].state)
}

func TestPermissionCoordinator_WaitsForDismissCallbackBeforeOSRequest(t *testing.T) {
	h := newCoordinatorHarness()
	h.presenter.holdDismissCallback = true
	c := h.coordinator(newRequest("r1", newFakeWindow("w1")), true)

	require.True(t, c.Show())
	h.presenter.Click(entity.DialogButtonPositive)

	assert.Equal(t, entity.DialogStatePromptPositiveClicked, c.State())
	assert.Empty(t, h.osPerms.calls)

	h.presenter.FinishDismiss()
	assert.Equal(t, entity.DialogStateRequestOSPermissionPersistent, c.State())
	assert.Len(t, h.osPerms.calls, 1)
}

func TestPermissionCoordinator_WindowClosedBeforeDismissCallback(t *testing.T) {
	h := newCoordinatorHarness()
	h.presenter.holdDismissCallback = true
	window := newFakeWindow("w1")
	c := h.coordinator(newRequest("r1", window), true)

	require.True(t, c.Show())
	h.presenter.Click(entity.DialogButtonPositive)
	window.valid = false
	h.presenter.FinishDismiss()

	assert.Empty(t, h.osPerms.calls)
	require.Len(t, h.ended, 1)
	assert.Equal(t, entity.DismissalCauseAutodismissNoContext, h.ended[0].outcome.cause)
	assert.Equal(t, entity.PermissionDefault, h.ended[0].outcome.decision())
}

func TestPermissionCoordinator_SynchronousOSAnswer(t *testing.T) {
	h := newCoordinatorHarness()
	h.osPerms.answer = boolPtr(false)
	c := h.coordinator(newRequest("r1", newFakeWindow("w1")), true)

	require.True(t, c.Show())
	h.presenter.Click(entity.DialogButtonPositive)

	require.Len(t, h.ended, 1)
	assert.Equal(t, entity.DismissalCauseAutodismissOSDenied, h.ended[0].outcome.cause)
}

func TestPermissionCoordinator_AlreadySatisfiedCountsAsGranted(t *testing.T) {
	h := newCoordinatorHarness()
	h.osPerms.alreadySatisfied = true
	req := newRequest("r1", newFakeWindow("w1"))
	req.ShowEphemeral = true
	c := h.coordinator(req, true)

	require.True(t, c.Show())
	assert.True(t, h.presenter.shown[0].ShowsEphemeralButton())
	h.presenter.Click(entity.DialogButtonPositiveEphemeral)

	require.Len(t, h.ended, 1)
	assert.Equal(t, outcomeAcceptThisTime, h.ended[0].outcome.kind)
}

func TestPermissionCoordinator_ShowReturnsFalseWhenPresenterRefuses(t *testing.T) {
	h := newCoordinatorHarness()
	h.presenter.refuseShow = true
	c := h.coordinator(newRequest("r1", newFakeWindow("w1")), true)

	assert.False(t, c.Show())
	assert.Equal(t, entity.DialogStateNotShowing, c.State())
	assert.Empty(t, h.ended)
}

func TestPermissionCoordinator_ShowWithoutPresenter(t *testing.T) {
	h := newCoordinatorHarness()
	c := newPermissionCoordinator(context.Background(), newRequest("r1", newFakeWindow("w1")), "", coordinatorDeps{}, coordinatorHooks{})

	assert.False(t, c.Show())
	assert.Empty(t, h.ended)
}

func TestPermissionCoordinator_OSPromptNeverPresentsDialog(t *testing.T) {
	h := newCoordinatorHarness()
	req := newRequest("r1", newFakeWindow("w1"), entity.PermissionTypeCamera)
	req.Variant = entity.PromptVariantOSPrompt
	c := h.coordinator(req, true)

	require.True(t, c.Show())
	assert.True(t, c.Embedded())
	assert.Empty(t, h.presenter.shown)
	assert.Equal(t, entity.DialogStateShowSystemPrompt, c.State())
	require.Len(t, h.osPerms.calls, 1)
	assert.Equal(t, []entity.PermissionType{entity.PermissionTypeCamera}, h.osPerms.calls[0])

	h.osPerms.Respond(true)
	require.Len(t, h.ended, 1)
	assert.Equal(t, outcomeSystemResolved, h.ended[0].outcome.kind)
	assert.True(t, h.ended[0].outcome.granted)
}

func TestPermissionCoordinator_UpdateInSystemPromptDropsStaleResult(t *testing.T) {
	h := newCoordinatorHarness()
	req := newRequest("r1", newFakeWindow("w1"))
	req.Variant = entity.PromptVariantOSPrompt
	c := h.coordinator(req, true)

	require.True(t, c.Show())
	stale := h.osPerms.callback

	c.UpdateDialog("")
	require.Len(t, h.osPerms.calls, 2)

	stale.OnCanceled()
	assert.Empty(t, h.ended, "result of the superseded OS request is ignored")

	h.osPerms.Respond(true)
	require.Len(t, h.ended, 1)
	assert.True(t, h.ended[0].outcome.granted)
}

func TestPermissionCoordinator_UpdateToDialogDropsPendingOSResult(t *testing.T) {
	h := newCoordinatorHarness()
	req := newRequest("r1", newFakeWindow("w1"))
	req.Variant = entity.PromptVariantOSPrompt
	c := h.coordinator(req, true)

	require.True(t, c.Show())
	pending := h.osPerms.callback

	c.UpdateDialog(entity.PromptVariantAsk)
	require.Equal(t, entity.DialogStatePromptOpen, c.State())
	require.Len(t, h.presenter.shown, 1)

	assert.NotPanics(t, pending.OnAccepted)
	assert.NotPanics(t, pending.OnCanceled)
	assert.Equal(t, entity.DialogStatePromptOpen, c.State())
	assert.Empty(t, h.ended, "the dialog now decides the request")
}

func TestPermissionCoordinator_UpdateSwitchesScreenWithoutReopening(t *testing.T) {
	h := newCoordinatorHarness()
	req := newRequest("r1", newFakeWindow("w1"), entity.PermissionTypeMicrophone)
	req.Variant = entity.PromptVariantAsk
	c := h.coordinator(req, true)

	require.True(t, c.Show())
	c.UpdateDialog(entity.PromptVariantPreviouslyDenied)

	assert.Len(t, h.presenter.shown, 1)
	require.Len(t, h.presenter.updated, 1)
	assert.Equal(t, entity.PromptVariantPreviouslyDenied, h.presenter.updated[0].Variant)
	assert.Equal(t, "Allow this time", h.presenter.updated[0].PositiveLabel)
	assert.Equal(t, entity.PromptVariantPreviouslyDenied, c.Variant())
}

func TestPermissionCoordinator_SystemSettingsFallsBackToAppSettings(t *testing.T) {
	h := newCoordinatorHarness()
	h.settings.permissionErr = errors.New("no such screen")
	req := newRequest("r1", newFakeWindow("w1"))
	req.Variant = entity.PromptVariantOSSystemSettings
	c := h.coordinator(req, true)

	require.True(t, c.Show())
	h.presenter.Click(entity.DialogButtonPositive)

	assert.Len(t, h.settings.permission, 1)
	assert.Equal(t, 1, h.settings.app)
	require.Len(t, h.ended, 1)
	assert.Equal(t, outcomeAcknowledge, h.ended[0].outcome.kind)
}

func TestPermissionCoordinator_ForcedDismissClosesDialog(t *testing.T) {
	h := newCoordinatorHarness()
	c := h.coordinator(newRequest("r1", newFakeWindow("w1")), true)

	require.True(t, c.Show())
	c.Dismiss()

	assert.Equal(t, []entity.DismissalCause{entity.DismissalCauseUnspecified}, h.presenter.dismissed)
	require.Len(t, h.ended, 1)
	assert.Equal(t, outcomeForced, h.ended[0].outcome.kind)

	c.Dismiss()
	assert.Len(t, h.ended, 1)
}

func TestPermissionCoordinator_SurfaceResumedRedrivesEmbeddedScreen(t *testing.T) {
	h := newCoordinatorHarness()
	req := newRequest("r1", newFakeWindow("w1"))
	req.Variant = entity.PromptVariantAsk
	c := h.coordinator(req, true)

	require.True(t, c.Show())
	c.SurfaceResumed()

	assert.Equal(t, 1, h.resumed)
	assert.Len(t, h.presenter.updated, 1)
}

func TestPermissionCoordinator_DestroyIsIdempotentAndSilencesCallbacks(t *testing.T) {
	h := newCoordinatorHarness()
	c := h.coordinator(newRequest("r1", newFakeWindow("w1")), true)
	require.True(t, c.Show())

	c.Destroy()
	c.Destroy()
	assert.True(t, c.Destroyed())

	h.presenter.Click(entity.DialogButtonPositive)
	assert.Empty(t, h.presenter.dismissed)
	assert.Empty(t, h.ended)
	assert.Equal(t, entity.DialogStatePromptOpen, c.State())
}

func TestPermissionCoordinator_InvalidTransitionPanicsWhenStrict(t *testing.T) {
	h := newCoordinatorHarness()
	h.presenter.holdDismissCallback = true
	c := h.coordinator(newRequest("r1", newFakeWindow("w1")), true)
	require.True(t, c.Show())
	model := h.presenter.current

	h.presenter.Click(entity.DialogButtonPositive)
	assert.PanicsWithError(t, "invalid permission dialog transition: button_clicked in state prompt_positive_clicked", func() {
		model.OnClick(entity.DialogButtonNegative)
	})
}

func TestPermissionCoordinator_InvalidTransitionIgnoredWhenLenient(t *testing.T) {
	h := newCoordinatorHarness()
	h.presenter.holdDismissCallback = true
	c := h.coordinator(newRequest("r1", newFakeWindow("w1")), false)
	require.True(t, c.Show())
	model := h.presenter.current

	h.presenter.Click(entity.DialogButtonPositive)
	assert.NotPanics(t, func() { model.OnClick(entity.DialogButtonNegative) })
	assert.Equal(t, entity.DialogStatePromptPositiveClicked, c.State())

	h.presenter.FinishDismiss()
	assert.Equal(t, entity.DialogStateRequestOSPermissionPersistent, c.State())
}
