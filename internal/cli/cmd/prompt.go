package cmd

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/consent/internal/cli/model"
	"github.com/bnema/consent/internal/domain/entity"
	"github.com/bnema/consent/internal/infrastructure/config"
	"github.com/bnema/consent/internal/infrastructure/metrics"
	"github.com/bnema/consent/internal/infrastructure/osperm"
	"github.com/bnema/consent/internal/logging"
	"github.com/bnema/consent/internal/ui"
	"github.com/bnema/consent/internal/ui/mainloop"
)

var (
	promptGranted []string
	promptDenied  []string
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Open the interactive permission queue",
	Long: `Open the permission queue in the terminal.

Press a to have a site ask for a permission, answer with y / t / n, close the
tab with w or send it to the background with b. The OS permission prompt is
simulated; --granted and --denied decide how it answers.

Logs go to the log file while the queue owns the terminal (see 'consent logs').

Examples:
  consent prompt
  consent prompt --granted camera,microphone
  consent prompt --denied geolocation`,
	RunE: runPrompt,
}

func init() {
	rootCmd.AddCommand(promptCmd)
	promptCmd.Flags().StringSliceVar(&promptGranted, "granted", nil, "permission types the OS has already granted")
	promptCmd.Flags().StringSliceVar(&promptDenied, "denied", nil, "permission types the OS refuses")
}

func runPrompt(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	simOpts, err := simulatorOptions(a.Config, promptGranted, promptDenied)
	if err != nil {
		return err
	}

	if err := a.UseFileLog(); err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(logging.WithComponent(a.Ctx(), "prompt"))
	defer cancel()
	log := logging.FromContext(ctx)

	if deleted := a.JournalUC.ApplyRetention(ctx); deleted > 0 {
		log.Info().Int64("deleted", deleted).Msg("journal retention applied")
	}

	var m *metrics.Metrics
	if a.Config.Metrics.Enabled {
		m = metrics.NewMetrics(a.Config.Metrics.Namespace)
		m.SetBuildInfo(a.BuildInfo)
	}

	loop := mainloop.NewLoop()
	sim := osperm.NewSimulator(loop.Poster(), simOpts...)
	uiApp, err := ui.New(&ui.Dependencies{
		Ctx:      ctx,
		Config:   a.Config,
		Loop:     loop,
		OSPerms:  sim,
		Settings: sim,
		Recorder: metrics.NewMultiRecorder(m, a.Journal),
	})
	if err != nil {
		return fmt.Errorf("create prompt app: %w", err)
	}

	watchConfig(ctx)

	p := tea.NewProgram(model.NewPromptModel(ctx, a.Theme, uiApp), tea.WithAltScreen())
	model.Bind(uiApp, p)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return uiApp.Run(gctx)
	})
	if m != nil {
		g.Go(func() error {
			return metrics.NewServer(m, a.Journal).ListenAndServe(gctx, a.Config.Metrics.ListenAddr)
		})
	}
	g.Go(func() error {
		defer cancel()
		defer uiApp.Quit()

		go func() {
			<-gctx.Done()
			p.Quit()
		}()
		_, err := p.Run()
		return err
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info().Msg("prompt closed")
	return nil
}

// simulatorOptions builds the OS simulator from the config and the
// --granted/--denied flags.
func simulatorOptions(cfg *config.Config, granted, denied []string) ([]osperm.Option, error) {
	grantedTypes, err := parsePermissionTypes(granted)
	if err != nil {
		return nil, fmt.Errorf("--granted: %w", err)
	}
	deniedTypes, err := parsePermissionTypes(denied)
	if err != nil {
		return nil, fmt.Errorf("--denied: %w", err)
	}

	opts := []osperm.Option{
		osperm.WithDelay(time.Duration(cfg.Prompt.OSResponseDelayMs) * time.Millisecond),
		osperm.WithGranted(grantedTypes...),
	}
	for _, t := range deniedTypes {
		opts = append(opts, osperm.WithAnswer(t, false))
	}
	return opts, nil
}

func parsePermissionTypes(names []string) ([]entity.PermissionType, error) {
	types := make([]entity.PermissionType, 0, len(names))
	for _, name := range names {
		t := entity.PermissionType(name)
		if !t.IsKnown() {
			return nil, fmt.Errorf("unknown permission type %q", name)
		}
		types = append(types, t)
	}
	return types, nil
}

// watchConfig applies a stricter log level right away. Prompt settings apply on
// the next start.
func watchConfig(ctx context.Context) {
	mgr := config.GetManager()
	if mgr == nil {
		return
	}
	log := logging.FromContext(ctx)
	mgr.OnConfigChange(func(prev, next config.Config) {
		if prev.Logging.Level != next.Logging.Level {
			zerolog.SetGlobalLevel(logging.ParseLevel(next.Logging.Level))
			log.Info().Str("level", next.Logging.Level).Msg("log level changed")
		}
		if prev.Prompt != next.Prompt {
			log.Info().Msg("prompt settings changed, restart the prompt to apply")
		}
	})
	if err := mgr.Watch(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to watch config file")
	}
}
