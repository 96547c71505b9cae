package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/bnema/consent/internal/application/port"
	"github.com/bnema/consent/internal/domain/entity"
	"github.com/bnema/consent/internal/logging"
)

// Journal is the outcome journal kept in the SQLite file at a path. The file
// is opened and migrated by the first call that needs it, so commands that
// never touch history never load the SQLite runtime.
type Journal struct {
	path string

	mu     sync.Mutex
	opened bool
	db     *sql.DB
	repo   port.OutcomeJournal
	err    error
}

var _ port.OutcomeJournal = (*Journal)(nil)

// NewJournal returns a journal for path without touching the file.
func NewJournal(path string) *Journal {
	return &Journal{path: path}
}

// open connects once; a failed open is remembered and returned to every caller.
func (j *Journal) open(ctx context.Context) (port.OutcomeJournal, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if !j.opened {
		j.opened = true
		log := logging.FromContext(ctx)
		log.Debug().Str("path", j.path).Msg("opening journal")

		db, err := NewConnection(ctx, j.path)
		if err != nil {
			log.Error().Err(err).Str("path", j.path).Msg("journal unavailable")
			j.err = fmt.Errorf("open journal %s: %w", j.path, err)
		} else {
			j.db = db
			j.repo = NewOutcomeRepository(db)
		}
	}
	return j.repo, j.err
}

// DB returns the underlying connection, opening it if needed.
func (j *Journal) DB(ctx context.Context) (*sql.DB, error) {
	if _, err := j.open(ctx); err != nil {
		return nil, err
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.db, nil
}

// Opened reports whether a connection is currently held.
func (j *Journal) Opened() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.db != nil
}

// Path is the journal file location.
func (j *Journal) Path() string { return j.path }

// Close releases the connection if one was opened.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	db := j.db
	j.db = nil
	return Close(db)
}

func (j *Journal) RecordOutcome(ctx context.Context, outcome entity.DialogOutcome) error {
	repo, err := j.open(ctx)
	if err != nil {
		return err
	}
	return repo.RecordOutcome(ctx, outcome)
}

func (j *Journal) ListRecent(ctx context.Context, limit int) ([]entity.DialogOutcome, error) {
	repo, err := j.open(ctx)
	if err != nil {
		return nil, err
	}
	return repo.ListRecent(ctx, limit)
}

func (j *Journal) CountSince(ctx context.Context, since time.Time) ([]entity.OutcomeCount, error) {
	repo, err := j.open(ctx)
	if err != nil {
		return nil, err
	}
	return repo.CountSince(ctx, since)
}

func (j *Journal) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	repo, err := j.open(ctx)
	if err != nil {
		return 0, err
	}
	return repo.PurgeOlderThan(ctx, cutoff)
}
