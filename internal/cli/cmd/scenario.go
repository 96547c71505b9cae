package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/consent/internal/cli/styles"
	"github.com/bnema/consent/internal/infrastructure/scenario"
)

var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Work with scenario files",
}

var scenarioValidateCmd = &cobra.Command{
	Use:   "validate <scenario>...",
	Short: "Check scenario files without running them",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runScenarioValidate,
}

var scenarioSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of scenario files",
	RunE:  runScenarioSchema,
}

func init() {
	rootCmd.AddCommand(scenarioCmd)
	scenarioCmd.AddCommand(scenarioValidateCmd)
	scenarioCmd.AddCommand(scenarioSchemaCmd)
}

func runScenarioValidate(_ *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	failed := 0
	for _, path := range args {
		sc, err := scenario.Load(path)
		if err != nil {
			fmt.Printf("%s %v\n", a.Theme.ErrorStyle.Render(styles.IconX), err)
			failed++
			continue
		}
		fmt.Printf("%s %s %s\n", a.Theme.SuccessStyle.Render(styles.IconCheck), sc.Name, a.Theme.Subtle.Render(fmt.Sprintf("(%d steps)", len(sc.Steps))))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d scenarios are invalid", failed, len(args))
	}
	return nil
}

func runScenarioSchema(cmd *cobra.Command, _ []string) error {
	data, err := json.MarshalIndent(scenario.Schema(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
