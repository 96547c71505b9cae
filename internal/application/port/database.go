package port

import (
	"context"
	"time"

	"github.com/bnema/consent/internal/domain/entity"
)

// OutcomeJournal is the persistent history of ended permission requests.
type OutcomeJournal interface {
	OutcomeRecorder

	// ListRecent returns the newest outcomes first, at most limit of them.
	ListRecent(ctx context.Context, limit int) ([]entity.DialogOutcome, error)

	// CountSince aggregates outcomes ended at or after since by decision and cause.
	CountSince(ctx context.Context, since time.Time) ([]entity.OutcomeCount, error)

	// PurgeOlderThan deletes outcomes ended before cutoff and returns how many went.
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
