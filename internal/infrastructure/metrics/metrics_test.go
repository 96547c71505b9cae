package metrics_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/bnema/consent/internal/application/port/mocks"
	"github.com/bnema/consent/internal/domain/build"
	"github.com/bnema/consent/internal/domain/entity"
	"github.com/bnema/consent/internal/infrastructure/metrics"
)

func sampleOutcome(decision entity.PermissionDecision, cause entity.DismissalCause) entity.DialogOutcome {
	return entity.DialogOutcome{
		RequestID:  "req-1",
		Origin:     "https://example.com",
		WindowID:   "win-1",
		Types:      []entity.PermissionType{entity.PermissionTypeCamera, entity.PermissionTypeMicrophone},
		Variant:    entity.PromptVariantNone,
		Decision:   decision,
		Cause:      cause,
		FinalState: entity.DialogStateEnded,
		StartedAt:  1_000,
		EndedAt:    1_750,
	}
}

func TestMetrics_RecordOutcome(t *testing.T) {
	m := metrics.NewMetrics("consent")

	require.NoError(t, m.RecordOutcome(context.Background(),
		sampleOutcome(entity.PermissionAllow, entity.DismissalCausePositiveButton)))
	require.NoError(t, m.RecordOutcome(context.Background(),
		sampleOutcome(entity.PermissionDefault, entity.DismissalCauseNavigateBack)))

	assert.InDelta(t, 1, testutil.ToFloat64(m.Outcomes.WithLabelValues("allow", "positive_button", "none")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Outcomes.WithLabelValues("default", "navigate_back", "none")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.OutcomeTypes.WithLabelValues("camera", "allow")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.OutcomeTypes.WithLabelValues("microphone", "default")), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(m.EphemeralGrants), 0)
	assert.Equal(t, 2, testutil.CollectAndCount(m.DialogDuration))
}

func TestMetrics_EphemeralGrant(t *testing.T) {
	m := metrics.NewMetrics("consent")
	o := sampleOutcome(entity.PermissionAllow, entity.DismissalCausePositiveButton)
	o.Ephemeral = true

	require.NoError(t, m.RecordOutcome(context.Background(), o))

	assert.InDelta(t, 1, testutil.ToFloat64(m.EphemeralGrants), 0)
}

func TestMetrics_SeparateRegistries(t *testing.T) {
	// Two instances must not collide on registration.
	a := metrics.NewMetrics("consent")
	b := metrics.NewMetrics("consent")
	assert.NotSame(t, a.Registry(), b.Registry())
}

func TestMultiRecorder_CallsEveryRecorder(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := mocks.NewMockOutcomeRecorder(ctrl)
	second := mocks.NewMockOutcomeRecorder(ctrl)
	outcome := sampleOutcome(entity.PermissionBlock, entity.DismissalCauseNegativeButton)

	first.EXPECT().RecordOutcome(gomock.Any(), outcome).Return(errors.New("disk full"))
	second.EXPECT().RecordOutcome(gomock.Any(), outcome).Return(nil)

	m := metrics.NewMetrics("consent")
	mr := metrics.NewMultiRecorder(m, first, nil, second)
	assert.Equal(t, 2, mr.Len())

	err := mr.RecordOutcome(context.Background(), outcome)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.InDelta(t, 1, testutil.ToFloat64(m.RecordFailures), 0)
}

func TestMultiRecorder_NoFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	rec := mocks.NewMockOutcomeRecorder(ctrl)
	rec.EXPECT().RecordOutcome(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	mr := metrics.NewMultiRecorder(nil, rec)
	ctx := context.Background()
	require.NoError(t, mr.RecordOutcome(ctx, sampleOutcome(entity.PermissionAllow, entity.DismissalCausePositiveButton)))
	require.NoError(t, mr.RecordOutcome(ctx, sampleOutcome(entity.PermissionBlock, entity.DismissalCauseNegativeButton)))
}

type fakeJournal struct {
	outcomes []entity.DialogOutcome
	err      error
	limit    int
}

func (f *fakeJournal) RecordOutcome(_ context.Context, o entity.DialogOutcome) error {
	f.outcomes = append(f.outcomes, o)
	return nil
}

func (f *fakeJournal) ListRecent(_ context.Context, limit int) ([]entity.DialogOutcome, error) {
	f.limit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.outcomes, nil
}

func (f *fakeJournal) CountSince(context.Context, time.Time) ([]entity.OutcomeCount, error) {
	return nil, nil
}

func (f *fakeJournal) PurgeOlderThan(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func TestServer_Metrics(t *testing.T) {
	m := metrics.NewMetrics("consent")
	require.NoError(t, m.RecordOutcome(context.Background(),
		sampleOutcome(entity.PermissionAllow, entity.DismissalCausePositiveButton)))

	rec := httptest.NewRecorder()
	metrics.NewServer(m, nil).Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "consent_dialog_outcomes_total")
}

func TestMetrics_SetBuildInfo(t *testing.T) {
	m := metrics.NewMetrics("consent")
	m.SetBuildInfo(build.Info{Version: "0.9.0", Commit: "abc"})
	m.SetBuildInfo(build.Info{Version: "1.0.0", Commit: "def"})

	assert.Equal(t, 1, testutil.CollectAndCount(m.BuildInfo))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BuildInfo.WithLabelValues("1.0.0", "def", "unknown")))
}

func TestServer_Health(t *testing.T) {
	rec := httptest.NewRecorder()
	metrics.NewServer(metrics.NewMetrics("consent"), &fakeJournal{}).Router().
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","journal_enabled":true}`, rec.Body.String())
}

func TestServer_ListOutcomes(t *testing.T) {
	journal := &fakeJournal{}
	require.NoError(t, journal.RecordOutcome(context.Background(),
		sampleOutcome(entity.PermissionAllow, entity.DismissalCausePositiveButton)))
	router := metrics.NewServer(metrics.NewMetrics("consent"), journal).Router()

	tests := []struct {
		name      string
		query     string
		wantCode  int
		wantLimit int
	}{
		{name: "default limit", query: "", wantCode: http.StatusOK, wantLimit: 50},
		{name: "explicit limit", query: "?limit=5", wantCode: http.StatusOK, wantLimit: 5},
		{name: "zero limit", query: "?limit=0", wantCode: http.StatusBadRequest},
		{name: "garbage limit", query: "?limit=abc", wantCode: http.StatusBadRequest},
		{name: "too large", query: "?limit=501", wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			journal.limit = 0
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/outcomes"+tt.query, nil))

			require.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode != http.StatusOK {
				assert.Contains(t, rec.Body.String(), "invalid_limit")
				return
			}
			assert.Equal(t, tt.wantLimit, journal.limit)

			var body struct {
				Outcomes []map[string]any `json:"outcomes"`
			}
			require.NoError(t, json.NewDecoder(strings.NewReader(rec.Body.String())).Decode(&body))
			require.Len(t, body.Outcomes, 1)
			assert.Equal(t, "allow", body.Outcomes[0]["decision"])
			assert.InDelta(t, 750, body.Outcomes[0]["duration_ms"], 0)
		})
	}
}

func TestServer_ListOutcomesWithoutJournal(t *testing.T) {
	rec := httptest.NewRecorder()
	metrics.NewServer(metrics.NewMetrics("consent"), nil).Router().
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/outcomes", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_ListOutcomesJournalError(t *testing.T) {
	rec := httptest.NewRecorder()
	metrics.NewServer(metrics.NewMetrics("consent"), &fakeJournal{err: errors.New("locked")}).Router().
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/outcomes", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestServer_ListenAndServeStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- metrics.NewServer(metrics.NewMetrics("consent"), nil).ListenAndServe(ctx, "127.0.0.1:0")
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
