package model

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	portmocks "github.com/bnema/consent/internal/application/port/mocks"
	"github.com/bnema/consent/internal/application/usecase"
	"github.com/bnema/consent/internal/cli/styles"
	"github.com/bnema/consent/internal/domain/entity"
)

func TestJournalModel_LoadsSummaryAndRecent(t *testing.T) {
	ctx := context.Background()
	journal := portmocks.NewMockOutcomeJournal(t)
	journal.EXPECT().CountSince(ctx, mock.Anything).Return([]entity.OutcomeCount{
		{Decision: entity.PermissionAllow, Cause: entity.DismissalCausePositiveButton, Count: 3},
		{Decision: entity.PermissionBlock, Cause: entity.DismissalCauseNegativeButton, Count: 1},
		{Decision: entity.PermissionDefault, Cause: entity.DismissalCauseTouchOutside, Count: 2},
	}, nil)
	journal.EXPECT().ListRecent(ctx, journalRecentLimit).Return([]entity.DialogOutcome{
		{RequestID: "r1", Origin: "https://maps.example.com", Decision: entity.PermissionAllow, EndedAt: time.Now().UnixMilli()},
	}, nil)

	m := NewJournalModel(ctx, styles.NewTheme(), usecase.NewManageJournalUseCase(journal, 0), 24*time.Hour)
	assert.Contains(t, m.View(), "Loading")

	next, _ := m.Update(m.Init()())
	m = next.(JournalModel)
	require.NoError(t, m.err)

	allowed, blocked, other := m.totals()
	assert.Equal(t, 3, allowed)
	assert.Equal(t, 1, blocked)
	assert.Equal(t, 2, other)
	assert.Contains(t, m.View(), "By decision and cause")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(JournalModel)
	assert.True(t, m.showRecent)
	assert.Contains(t, m.View(), "maps.example.com")
}

func TestJournalModel_ShowsError(t *testing.T) {
	ctx := context.Background()
	journal := portmocks.NewMockOutcomeJournal(t)
	journal.EXPECT().CountSince(ctx, mock.Anything).Return(nil, errors.New("locked"))

	m := NewJournalModel(ctx, styles.NewTheme(), usecase.NewManageJournalUseCase(journal, 0), 0)
	next, _ := m.Update(m.Init()())
	assert.Contains(t, next.View(), "locked")
}
