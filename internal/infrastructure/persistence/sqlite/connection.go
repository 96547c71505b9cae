// Package sqlite stores the permission dialog outcome journal in SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver" // database/sql driver "sqlite3"
	_ "github.com/ncruces/go-sqlite3/embed"  // bundled SQLite build

	"github.com/bnema/consent/internal/logging"
)

const journalDirPerm = 0o750

// journalPragmas are applied by the driver to every connection it opens.
var journalPragmas = []string{
	"busy_timeout(5000)",
	"journal_mode(wal)",
	"synchronous(normal)",
	"temp_store(memory)",
	"foreign_keys(on)",
}

// journalDSN turns a file path into a SQLite URI carrying journalPragmas.
func journalDSN(path string) string {
	u := url.URL{
		Scheme:   "file",
		Opaque:   (&url.URL{Path: path}).EscapedPath(),
		RawQuery: url.Values{"_pragma": journalPragmas}.Encode(),
	}
	return u.String()
}

// NewConnection opens the journal at path, creating its directory, and
// migrates it to the current schema.
func NewConnection(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		return nil, errors.New("journal path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), journalDirPerm); err != nil {
		return nil, fmt.Errorf("create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite3", journalDSN(path))
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	// One writer; the pool never grows past the single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect journal: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	logging.FromContext(ctx).Info().Str("path", path).Msg("journal open")
	return db, nil
}

// Close closes db; a nil db is a no-op.
func Close(db *sql.DB) error {
	if db == nil {
		return nil
	}
	return db.Close()
}
