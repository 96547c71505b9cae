// Package cli provides CLI commands using Bubble Tea TUI.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/bnema/consent/internal/application/port"
	"github.com/bnema/consent/internal/application/usecase"
	"github.com/bnema/consent/internal/cli/styles"
	"github.com/bnema/consent/internal/domain/build"
	"github.com/bnema/consent/internal/infrastructure/config"
	"github.com/bnema/consent/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/consent/internal/logging"
)

// App holds CLI dependencies.
type App struct {
	Config    *config.Config
	Theme     *styles.Theme
	BuildInfo build.Info

	// Journal is nil when the journal is disabled.
	Journal   port.OutcomeJournal
	JournalUC *usecase.ManageJournalUseCase

	journal    *sqlite.Journal
	ctx        context.Context
	logCleanup func()
}

// NewApp creates a new CLI application with all dependencies.
// The database is only opened by the first command that touches the journal.
func NewApp() (*App, error) {
	if err := config.Init(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := config.Get()

	logger := logging.New(logging.Config{
		Level:      logging.ParseLevel(cfg.Logging.Level),
		Format:     cfg.Logging.Format,
		TimeFormat: "15:04:05",
	})
	ctx := logging.WithContext(context.Background(), logger)

	app := &App{
		Config: cfg,
		Theme:  styles.NewAdaptiveTheme(),
		ctx:    ctx,
	}

	if cfg.Journal.Enabled {
		app.journal = sqlite.NewJournal(cfg.Journal.Path)
		app.Journal = app.journal
		logger.Debug().Str("journal", cfg.Journal.Path).Msg("journal configured")
	}
	app.JournalUC = usecase.NewManageJournalUseCase(app.Journal, cfg.Journal.RetentionDays)

	return app, nil
}

// UseFileLog moves logging off the terminal, which the TUI is about to own.
// Logs go to the rotating file when enabled and are dropped otherwise.
func (a *App) UseFileLog() error {
	cfg := a.Config.Logging

	var (
		out     io.Writer = io.Discard
		cleanup func()
	)
	if cfg.EnableFileLog {
		rotator, err := logging.NewLogRotator(logging.RotatorConfig{
			Dir:        cfg.LogDir,
			MaxSizeMB:  cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAgeDays: cfg.MaxAge,
			Compress:   cfg.Compress,
		})
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		out = rotator
		cleanup = func() { _ = rotator.Close() }
	}

	logger := logging.New(logging.Config{
		Level:      logging.ParseLevel(cfg.Level),
		Format:     "json",
		TimeFormat: zerolog.TimeFieldFormat,
		Output:     out,
	})
	if a.logCleanup != nil {
		a.logCleanup()
	}
	a.logCleanup = cleanup
	a.ctx = logging.WithContext(context.Background(), logger)
	return nil
}

// Close releases all resources.
func (a *App) Close() error {
	if a.logCleanup != nil {
		a.logCleanup()
	}
	if a.journal != nil {
		return a.journal.Close()
	}
	return nil
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}
