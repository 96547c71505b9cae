package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/consent/internal/application/port"
	"github.com/bnema/consent/internal/domain/entity"
	"github.com/bnema/consent/internal/logging"
)

const (
	defaultJournalLimit = 50
	maxJournalLimit     = 500
)

// ErrJournalDisabled is returned when the journal is not configured.
var ErrJournalDisabled = errors.New("outcome journal is disabled")

// ManageJournalUseCase reads and trims the outcome journal.
type ManageJournalUseCase struct {
	journal       port.OutcomeJournal
	retentionDays int
	now           func() time.Time
}

// NewManageJournalUseCase creates the use case. A retentionDays of 0 keeps
// outcomes forever.
func NewManageJournalUseCase(journal port.OutcomeJournal, retentionDays int) *ManageJournalUseCase {
	return &ManageJournalUseCase{
		journal:       journal,
		retentionDays: retentionDays,
		now:           time.Now,
	}
}

// ListRecent returns the newest outcomes first. The limit is clamped to
// 1..500; 0 means the default of 50.
func (uc *ManageJournalUseCase) ListRecent(ctx context.Context, limit int) ([]entity.DialogOutcome, error) {
	if uc.journal == nil {
		return nil, ErrJournalDisabled
	}
	switch {
	case limit <= 0:
		limit = defaultJournalLimit
	case limit > maxJournalLimit:
		limit = maxJournalLimit
	}

	outcomes, err := uc.journal.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list outcomes: %w", err)
	}
	return outcomes, nil
}

// Summary aggregates the outcomes of the last window by decision and cause.
// A zero window covers the whole journal.
func (uc *ManageJournalUseCase) Summary(ctx context.Context, window time.Duration) ([]entity.OutcomeCount, error) {
	if uc.journal == nil {
		return nil, ErrJournalDisabled
	}

	var since time.Time
	if window > 0 {
		since = uc.now().Add(-window)
	}
	counts, err := uc.journal.CountSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("summarize outcomes: %w", err)
	}
	return counts, nil
}

// Purge deletes outcomes older than days. A days of 0 uses the configured
// retention; when that is 0 too nothing is deleted.
func (uc *ManageJournalUseCase) Purge(ctx context.Context, days int) (int64, error) {
	if uc.journal == nil {
		return 0, ErrJournalDisabled
	}
	if days < 0 {
		return 0, fmt.Errorf("purge outcomes: negative age %d", days)
	}
	if days == 0 {
		days = uc.retentionDays
	}
	if days == 0 {
		return 0, nil
	}

	cutoff := uc.now().AddDate(0, 0, -days)
	deleted, err := uc.journal.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge outcomes: %w", err)
	}

	logging.FromContext(ctx).Info().
		Int("days", days).
		Int64("deleted", deleted).
		Msg("purged outcome journal")
	return deleted, nil
}

// ApplyRetention runs Purge with the configured retention. Failures are
// logged, not returned: retention must never block startup.
func (uc *ManageJournalUseCase) ApplyRetention(ctx context.Context) int64 {
	if uc.journal == nil || uc.retentionDays == 0 {
		return 0
	}
	deleted, err := uc.Purge(ctx, 0)
	if err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("failed to apply journal retention")
		return 0
	}
	return deleted
}
