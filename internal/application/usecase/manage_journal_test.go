package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	portmocks "github.com/bnema/consent/internal/application/port/mocks"
	"github.com/bnema/consent/internal/application/usecase"
	"github.com/bnema/consent/internal/domain/entity"
	"github.com/bnema/consent/internal/logging"
)

func testContext() context.Context {
	return logging.WithContext(context.Background(), zerolog.Nop())
}

func TestManageJournal_ListRecentClampsLimit(t *testing.T) {
	ctx := testContext()
	journal := portmocks.NewMockOutcomeJournal(t)
	uc := usecase.NewManageJournalUseCase(journal, 30)

	journal.EXPECT().ListRecent(ctx, 50).Return([]entity.DialogOutcome{{RequestID: "a"}}, nil).Once()
	journal.EXPECT().ListRecent(ctx, 500).Return(nil, nil).Once()
	journal.EXPECT().ListRecent(ctx, 7).Return(nil, errors.New("disk gone")).Once()

	got, err := uc.ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = uc.ListRecent(ctx, 10_000)
	require.NoError(t, err)

	_, err = uc.ListRecent(ctx, 7)
	assert.ErrorContains(t, err, "disk gone")
}

func TestManageJournal_Summary(t *testing.T) {
	ctx := testContext()
	journal := portmocks.NewMockOutcomeJournal(t)
	uc := usecase.NewManageJournalUseCase(journal, 0)

	counts := []entity.OutcomeCount{{Decision: entity.PermissionAllow, Cause: entity.DismissalCausePositiveButton, Count: 3}}
	journal.EXPECT().
		CountSince(ctx, mock.MatchedBy(func(since time.Time) bool {
			diff := time.Since(since) - 24*time.Hour
			return diff > -time.Minute && diff < time.Minute
		})).
		Return(counts, nil).Once()
	journal.EXPECT().CountSince(ctx, time.Time{}).Return(nil, nil).Once()

	got, err := uc.Summary(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, counts, got)

	_, err = uc.Summary(ctx, 0)
	require.NoError(t, err)
}

func TestManageJournal_PurgeUsesRetention(t *testing.T) {
	ctx := testContext()
	journal := portmocks.NewMockOutcomeJournal(t)
	uc := usecase.NewManageJournalUseCase(journal, 30)

	journal.EXPECT().
		PurgeOlderThan(ctx, mock.MatchedBy(func(cutoff time.Time) bool {
			expected := time.Now().AddDate(0, 0, -30)
			diff := expected.Sub(cutoff)
			return diff > -time.Minute && diff < time.Minute
		})).
		Return(int64(4), nil).Twice()

	deleted, err := uc.Purge(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(4), deleted)

	assert.Equal(t, int64(4), uc.ApplyRetention(ctx))

	_, err = uc.Purge(ctx, -1)
	assert.Error(t, err)
}

func TestManageJournal_NoRetentionKeepsEverything(t *testing.T) {
	ctx := testContext()
	journal := portmocks.NewMockOutcomeJournal(t)
	uc := usecase.NewManageJournalUseCase(journal, 0)

	deleted, err := uc.Purge(ctx, 0)
	require.NoError(t, err)
	assert.Zero(t, deleted)
	assert.Zero(t, uc.ApplyRetention(ctx))
}

func TestManageJournal_Disabled(t *testing.T) {
	ctx := testContext()
	uc := usecase.NewManageJournalUseCase(nil, 30)

	_, err := uc.ListRecent(ctx, 10)
	assert.ErrorIs(t, err, usecase.ErrJournalDisabled)
	_, err = uc.Summary(ctx, time.Hour)
	assert.ErrorIs(t, err, usecase.ErrJournalDisabled)
	_, err = uc.Purge(ctx, 1)
	assert.ErrorIs(t, err, usecase.ErrJournalDisabled)
	assert.Zero(t, uc.ApplyRetention(ctx))
}
