package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/consent/internal/application/port"
	"github.com/bnema/consent/internal/domain/entity"
	"github.com/bnema/consent/internal/logging"
)

const typeSeparator = ","

const (
	insertOutcomeSQL = `INSERT INTO dialog_outcomes (
	request_id, origin, window_id, permission_types, variant, decision,
	cause, final_state, ephemeral, started_at, ended_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	listRecentSQL = `SELECT request_id, origin, window_id, permission_types, variant, decision,
	cause, final_state, ephemeral, started_at, ended_at
FROM dialog_outcomes
ORDER BY ended_at DESC, id DESC
LIMIT ?`

	countSinceSQL = `SELECT decision, cause, COUNT(*)
FROM dialog_outcomes
WHERE ended_at >= ?
GROUP BY decision, cause
ORDER BY COUNT(*) DESC, decision, cause`

	purgeSQL = `DELETE FROM dialog_outcomes WHERE ended_at < ?`
)

type outcomeRepo struct {
	db *sql.DB
}

// NewOutcomeRepository creates a SQLite-backed outcome journal.
func NewOutcomeRepository(db *sql.DB) port.OutcomeJournal {
	return &outcomeRepo{db: db}
}

func (r *outcomeRepo) RecordOutcome(ctx context.Context, outcome entity.DialogOutcome) error {
	log := logging.FromContext(ctx)
	log.Debug().
		Str("request_id", outcome.RequestID).
		Str("decision", string(outcome.Decision)).
		Str("cause", string(outcome.Cause)).
		Msg("recording dialog outcome")

	_, err := r.db.ExecContext(ctx, insertOutcomeSQL,
		outcome.RequestID,
		outcome.Origin,
		outcome.WindowID,
		strings.Join(entity.PermissionTypesToStrings(outcome.Types), typeSeparator),
		string(outcome.Variant),
		string(outcome.Decision),
		string(outcome.Cause),
		string(outcome.FinalState),
		outcome.Ephemeral,
		outcome.StartedAt,
		outcome.EndedAt,
	)
	if err != nil {
		return fmt.Errorf("insert dialog outcome %s: %w", outcome.RequestID, err)
	}
	return nil
}

func (r *outcomeRepo) ListRecent(ctx context.Context, limit int) ([]entity.DialogOutcome, error) {
	if limit <= 0 {
		return nil, errors.New("limit must be positive")
	}

	rows, err := r.db.QueryContext(ctx, listRecentSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("list dialog outcomes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	outcomes := make([]entity.DialogOutcome, 0, limit)
	for rows.Next() {
		var (
			o                                    entity.DialogOutcome
			types, variant, decision, cause, fin string
		)
		if err := rows.Scan(
			&o.RequestID, &o.Origin, &o.WindowID, &types, &variant, &decision,
			&cause, &fin, &o.Ephemeral, &o.StartedAt, &o.EndedAt,
		); err != nil {
			return nil, fmt.Errorf("scan dialog outcome: %w", err)
		}
		o.Types = parseTypes(types)
		o.Variant = entity.EmbeddedPromptVariant(variant)
		o.Decision = entity.PermissionDecision(decision)
		o.Cause = entity.DismissalCause(cause)
		o.FinalState = entity.DialogState(fin)
		outcomes = append(outcomes, o)
	}
	return outcomes, rows.Err()
}

func (r *outcomeRepo) CountSince(ctx context.Context, since time.Time) ([]entity.OutcomeCount, error) {
	rows, err := r.db.QueryContext(ctx, countSinceSQL, since.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("count dialog outcomes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var counts []entity.OutcomeCount
	for rows.Next() {
		var decision, cause string
		var count int
		if err := rows.Scan(&decision, &cause, &count); err != nil {
			return nil, fmt.Errorf("scan outcome count: %w", err)
		}
		counts = append(counts, entity.OutcomeCount{
			Decision: entity.PermissionDecision(decision),
			Cause:    entity.DismissalCause(cause),
			Count:    count,
		})
	}
	return counts, rows.Err()
}

func (r *outcomeRepo) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, purgeSQL, cutoff.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("purge dialog outcomes: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n > 0 {
		logging.FromContext(ctx).Info().Int64("deleted", n).Time("cutoff", cutoff).Msg("purged old dialog outcomes")
	}
	return n, nil
}

func parseTypes(joined string) []entity.PermissionType {
	if joined == "" {
		return nil
	}
	parts := strings.Split(joined, typeSeparator)
	types := make([]entity.PermissionType, len(parts))
	for i, p := range parts {
		types[i] = entity.PermissionType(p)
	}
	return types
}
