package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/consent/internal/application/port"
	"github.com/bnema/consent/internal/application/usecase"
	"github.com/bnema/consent/internal/cli/styles"
	"github.com/bnema/consent/internal/domain/entity"
	"github.com/bnema/consent/internal/infrastructure/config"
	"github.com/bnema/consent/internal/infrastructure/osperm"
	"github.com/bnema/consent/internal/infrastructure/scenario"
	"github.com/bnema/consent/internal/logging"
	"github.com/bnema/consent/internal/ui"
	"github.com/bnema/consent/internal/ui/mainloop"
)

// ErrScenarioFailed is returned when at least one scenario did not pass.
var ErrScenarioFailed = errors.New("scenario failed")

var (
	simulateJSON   bool
	simulateRecord bool
	simulateStrict bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <scenario>...",
	Short: "Replay scenario files against the queue",
	Long: `Replay scripted prompt sessions without a terminal UI.

A scenario opens windows, creates requests, presses buttons, closes tabs and
checks what each requester was told. The OS permission prompt answers
instantly, as the scenario's os section says.

Examples:
  consent simulate scenarios/allow_camera.yaml
  consent simulate scenarios/*.yaml --json
  consent simulate scenarios/fifo_queue.yaml --record`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().BoolVar(&simulateJSON, "json", false, "print the reports as JSON")
	simulateCmd.Flags().BoolVar(&simulateRecord, "record", false, "write the outcomes to the journal")
	simulateCmd.Flags().BoolVar(&simulateStrict, "strict", false, "panic on dialog contract violations")
}

func runSimulate(_ *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	cfg := *a.Config
	if simulateStrict {
		cfg.Prompt.StrictTransitions = true
	}
	var recorder port.OutcomeRecorder
	if simulateRecord {
		if a.Journal == nil {
			return usecase.ErrJournalDisabled
		}
		recorder = a.Journal
	}

	ctx := logging.WithComponent(a.Ctx(), "simulate")
	reports := make([]*usecase.ScenarioReport, 0, len(args))
	for _, path := range args {
		report, err := simulateFile(ctx, &cfg, recorder, path)
		if err != nil {
			return err
		}
		reports = append(reports, report)
	}

	if err := printReports(os.Stdout, a.Theme, reports, simulateJSON); err != nil {
		return err
	}

	for _, r := range reports {
		if !r.Passed {
			return fmt.Errorf("%w: %s", ErrScenarioFailed, r.Name)
		}
	}
	return nil
}

// simulateFile runs one scenario on a fresh loop, queue and OS simulator.
func simulateFile(ctx context.Context, cfg *config.Config, recorder port.OutcomeRecorder, path string) (*usecase.ScenarioReport, error) {
	sc, err := scenario.Load(path)
	if err != nil {
		return nil, err
	}
	return simulateScenario(ctx, cfg, recorder, sc)
}

func simulateScenario(ctx context.Context, cfg *config.Config, recorder port.OutcomeRecorder, sc *entity.Scenario) (*usecase.ScenarioReport, error) {
	loop := mainloop.NewLoop()
	sim := osperm.NewSimulator(loop.Poster(), osperm.ScenarioOptions(sc.OS)...)

	uiApp, err := ui.New(&ui.Dependencies{
		Ctx:      ctx,
		Config:   cfg,
		Loop:     loop,
		OSPerms:  sim,
		Settings: sim,
		Recorder: recorder,
	})
	if err != nil {
		return nil, fmt.Errorf("create app: %w", err)
	}
	defer uiApp.Quit()

	return usecase.NewRunScenarioUseCase(uiApp, uiApp.Prompts()).Execute(ctx, sc)
}

func printReports(w io.Writer, theme *styles.Theme, reports []*usecase.ScenarioReport, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}

	renderer := styles.NewScenarioRenderer(theme)
	for _, r := range reports {
		if _, err := fmt.Fprint(w, renderer.RenderReport(r)); err != nil {
			return err
		}
	}
	return nil
}
