package osperm_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/consent/internal/application/port"
	"github.com/bnema/consent/internal/domain/entity"
	"github.com/bnema/consent/internal/infrastructure/osperm"
)

type postQueue struct {
	tasks []func()
}

func (q *postQueue) post(fn func()) {
	q.tasks = append(q.tasks, fn)
}

func (q *postQueue) drain() {
	for len(q.tasks) > 0 {
		fn := q.tasks[0]
		q.tasks = q.tasks[1:]
		fn()
	}
}

type callbackResult struct {
	accepted, canceled int
}

func (r *callbackResult) callback() port.OSPermissionCallback {
	return port.OSPermissionCallback{
		OnAccepted: func() { r.accepted++ },
		OnCanceled: func() { r.canceled++ },
	}
}

func TestSimulator_AlreadyGrantedNeedsNoPrompt(t *testing.T) {
	q := &postQueue{}
	sim := osperm.NewSimulator(q.post, osperm.WithGranted(entity.PermissionTypeCamera))
	res := &callbackResult{}

	requested := sim.RequestPermissions(context.Background(),
		[]entity.PermissionType{entity.PermissionTypeCamera, entity.PermissionTypeClipboard}, res.callback())

	assert.False(t, requested)
	assert.Empty(t, q.tasks)
	assert.Equal(t, 0, sim.Requests())
}

func TestSimulator_GrantIsAsynchronousAndSticky(t *testing.T) {
	q := &postQueue{}
	sim := osperm.NewSimulator(q.post)
	res := &callbackResult{}
	types := []entity.PermissionType{entity.PermissionTypeGeolocation}

	require.True(t, sim.RequestPermissions(context.Background(), types, res.callback()))
	assert.Zero(t, res.accepted, "answer must not arrive before the loop runs")

	q.drain()
	assert.Equal(t, 1, res.accepted)
	assert.True(t, sim.IsGranted(entity.PermissionTypeGeolocation))

	assert.False(t, sim.RequestPermissions(context.Background(), types, res.callback()))
	assert.Equal(t, 1, sim.Requests())
}

func TestSimulator_ScriptedDenial(t *testing.T) {
	q := &postQueue{}
	sim := osperm.NewSimulator(q.post, osperm.WithAnswer(entity.PermissionTypeMicrophone, false))
	res := &callbackResult{}

	require.True(t, sim.RequestPermissions(context.Background(),
		[]entity.PermissionType{entity.PermissionTypeCamera, entity.PermissionTypeMicrophone}, res.callback()))
	q.drain()

	assert.Equal(t, 0, res.accepted)
	assert.Equal(t, 1, res.canceled)
	assert.True(t, sim.IsGranted(entity.PermissionTypeCamera))
	assert.False(t, sim.IsGranted(entity.PermissionTypeMicrophone))
}

func TestSimulator_CancelledContext(t *testing.T) {
	q := &postQueue{}
	sim := osperm.NewSimulator(q.post)
	res := &callbackResult{}
	ctx, cancel := context.WithCancel(context.Background())

	require.True(t, sim.RequestPermissions(ctx, []entity.PermissionType{entity.PermissionTypeVR}, res.callback()))
	cancel()
	q.drain()

	assert.Equal(t, 1, res.canceled)
	assert.False(t, sim.IsGranted(entity.PermissionTypeVR))
}

func TestSimulator_DelayUsesAfterFunc(t *testing.T) {
	q := &postQueue{}
	var gotDelay time.Duration
	var timer func()
	sim := osperm.NewSimulator(q.post,
		osperm.WithDelay(300*time.Millisecond),
		osperm.WithAfterFunc(func(d time.Duration, fn func()) {
			gotDelay = d
			timer = fn
		}),
	)
	res := &callbackResult{}

	require.True(t, sim.RequestPermissions(context.Background(),
		[]entity.PermissionType{entity.PermissionTypeNotification}, res.callback()))
	assert.Equal(t, 300*time.Millisecond, gotDelay)
	assert.Empty(t, q.tasks)

	require.NotNil(t, timer)
	timer()
	q.drain()
	assert.Equal(t, 1, res.accepted)
}

func TestSimulator_RevokeAndNonOSTypes(t *testing.T) {
	sim := osperm.NewSimulator((&postQueue{}).post, osperm.WithGranted(entity.PermissionTypeCamera))

	assert.True(t, sim.IsGranted(entity.PermissionTypeClipboard))
	sim.Revoke(entity.PermissionTypeCamera)
	assert.False(t, sim.IsGranted(entity.PermissionTypeCamera))
}

func TestSimulator_Settings(t *testing.T) {
	ctx := context.Background()
	sim := osperm.NewSimulator((&postQueue{}).post)

	require.NoError(t, sim.OpenPermissionSettings(ctx, []entity.PermissionType{entity.PermissionTypeCamera}))
	require.NoError(t, sim.OpenAppSettings(ctx))
	assert.Equal(t, []string{"camera", "app"}, sim.OpenedSettings())

	unavailable := osperm.NewSimulator((&postQueue{}).post, osperm.WithSettingsUnavailable())
	assert.ErrorIs(t, unavailable.OpenPermissionSettings(ctx, nil), osperm.ErrSettingsUnavailable)
}

func TestScenarioOptions(t *testing.T) {
	q := &postQueue{}
	sim := osperm.NewSimulator(q.post, osperm.ScenarioOptions(entity.ScenarioOS{
		Granted:             []entity.PermissionType{entity.PermissionTypeCamera},
		Denied:              []entity.PermissionType{entity.PermissionTypeMicrophone},
		SettingsUnavailable: true,
	})...)

	assert.True(t, sim.IsGranted(entity.PermissionTypeCamera))
	assert.False(t, sim.IsGranted(entity.PermissionTypeMicrophone))

	var granted *bool
	issued := sim.RequestPermissions(context.Background(),
		[]entity.PermissionType{entity.PermissionTypeMicrophone},
		port.OSPermissionCallback{
			OnAccepted: func() { v := true; granted = &v },
			OnCanceled: func() { v := false; granted = &v },
		})
	require.True(t, issued)
	require.Len(t, q.tasks, 1, "no delay means the answer is posted right away")
	q.drain()
	require.NotNil(t, granted)
	assert.False(t, *granted)

	assert.ErrorIs(t, sim.OpenPermissionSettings(context.Background(), nil), osperm.ErrSettingsUnavailable)
}
