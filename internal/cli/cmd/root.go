// Package cmd provides Cobra CLI commands for consent.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/consent/internal/cli"
	"github.com/bnema/consent/internal/domain/build"
)

// standalone marks commands that run without config, logger or journal.
const standalone = "consent.standalone"

var standaloneAnnotation = map[string]string{standalone: "true"}

var (
	app       *cli.App
	buildInfo build.Info
)

var rootCmd = &cobra.Command{
	Use:   "consent",
	Short: "A permission consent dialog queue for the terminal",
	Long: `Consent shows permission requests one at a time.

Pages ask for the camera, the microphone, the location and more. Consent
queues each app's requests, shows the head of the queue in a terminal
dialog, consults the simulated operating system when the app itself lacks
access, and tells the requester how it ended.

  consent prompt      the interactive queue
  consent simulate    replay scenario files headless
  consent journal     browse recorded outcomes
  consent serve       expose metrics and outcomes over HTTP`,
	SilenceUsage:      true,
	PersistentPreRunE: initApp,
	PersistentPostRun: func(*cobra.Command, []string) {
		if app != nil {
			_ = app.Close()
		}
	},
}

func initApp(cmd *cobra.Command, _ []string) error {
	if isStandalone(cmd) {
		return nil
	}
	a, err := cli.NewApp()
	if err != nil {
		return fmt.Errorf("initialize app: %w", err)
	}
	a.BuildInfo = buildInfo
	app = a
	return nil
}

// isStandalone covers annotated commands and cobra's own help and completion.
func isStandalone(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[standalone] == "true" {
			return true
		}
		if c.Name() == "help" || c.Name() == "completion" {
			return true
		}
	}
	return false
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// SetBuildInfo records the version stamped into the binary.
func SetBuildInfo(info build.Info) {
	buildInfo = info
}

func requireApp() (*cli.App, error) {
	if app == nil {
		return nil, errors.New("app not initialized")
	}
	return app, nil
}
