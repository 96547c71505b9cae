package cmd

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/consent/internal/cli/model"
	"github.com/bnema/consent/internal/cli/styles"
)

var (
	journalLimit int
	journalSince time.Duration
	journalPlain bool
	journalDays  int
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Inspect the outcome journal",
	Long:  `Every ended permission request is recorded in a SQLite journal. Browse, summarize and purge it.`,
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the latest outcomes",
	RunE:  runJournalList,
}

var journalSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Count outcomes by decision and cause",
	Long: `Count outcomes by decision and cause.

Examples:
  consent journal summary              # Interactive, all time
  consent journal summary --since 24h  # Last day only
  consent journal summary --plain      # Print the table and exit`,
	RunE: runJournalSummary,
}

var journalPurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete old outcomes",
	Long:  `Delete outcomes older than --days, or than journal.retention_days when --days is not set.`,
	RunE:  runJournalPurge,
}

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalListCmd)
	journalCmd.AddCommand(journalSummaryCmd)
	journalCmd.AddCommand(journalPurgeCmd)

	journalListCmd.Flags().IntVarP(&journalLimit, "limit", "n", 20, "number of outcomes to show")
	journalSummaryCmd.Flags().DurationVar(&journalSince, "since", 0, "only count outcomes newer than this (0 for all)")
	journalSummaryCmd.Flags().BoolVar(&journalPlain, "plain", false, "print the table instead of opening the viewer")
	journalPurgeCmd.Flags().IntVar(&journalDays, "days", 0, "delete outcomes older than this many days")
}

func runJournalList(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	outcomes, err := a.JournalUC.ListRecent(a.Ctx(), journalLimit)
	if err != nil {
		return err
	}
	if len(outcomes) == 0 {
		fmt.Println(a.Theme.Subtle.Render("No outcomes recorded yet"))
		return nil
	}

	cols := styles.JournalTableColumns()
	rows := make([]table.Row, len(outcomes))
	for i, o := range outcomes {
		rows[i] = styles.OutcomeRow(o)
	}
	t := styles.NewStyledTable(a.Theme, cols, rows, styles.TableWidth(cols), len(rows)+1)
	fmt.Println(t.View())
	return nil
}

func runJournalSummary(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	if !journalPlain {
		m := model.NewJournalModel(a.Ctx(), a.Theme, a.JournalUC, journalSince)
		_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
		return err
	}

	counts, err := a.JournalUC.Summary(a.Ctx(), journalSince)
	if err != nil {
		return err
	}
	if len(counts) == 0 {
		fmt.Println(a.Theme.Subtle.Render("No outcomes recorded yet"))
		return nil
	}

	cols := styles.CountTableColumns()
	rows := make([]table.Row, len(counts))
	for i, c := range counts {
		rows[i] = styles.CountRow(c)
	}
	t := styles.NewStyledTable(a.Theme, cols, rows, styles.TableWidth(cols), len(rows)+1)
	fmt.Println(t.View())
	return nil
}

func runJournalPurge(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	renderer := styles.NewConfigRenderer(a.Theme)

	days := journalDays
	if days == 0 {
		days = a.Config.Journal.RetentionDays
	}
	deleted, err := a.JournalUC.Purge(a.Ctx(), journalDays)
	if err != nil {
		fmt.Println(renderer.RenderError(err))
		return nil
	}
	fmt.Println(renderer.RenderPurged(deleted, days))
	return nil
}
