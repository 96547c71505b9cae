package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bnema/consent/internal/infrastructure/metrics"
	"github.com/bnema/consent/internal/logging"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the journal and health endpoints over HTTP",
	Long: `Serve /healthz, /metrics and /v1/outcomes without opening the prompt.

/v1/outcomes?limit=N returns the latest journal entries as JSON.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default metrics.listen_addr)")
}

func runServe(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	addr := serveAddr
	if addr == "" {
		addr = a.Config.Metrics.ListenAddr
	}

	ctx, stop := signal.NotifyContext(logging.WithComponent(a.Ctx(), "serve"), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.NewMetrics(a.Config.Metrics.Namespace)
	m.SetBuildInfo(a.BuildInfo)
	server := metrics.NewServer(m, a.Journal)
	return server.ListenAndServe(ctx, addr)
}
