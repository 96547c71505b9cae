package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/consent/internal/cli/styles"
	"github.com/bnema/consent/internal/infrastructure/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Show where the configuration lives, print the effective values and write its JSON schema.`,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as JSON",
	Long:  `Print the configuration after defaults, config.toml and CONSENT_* environment variables are merged.`,
	RunE:  runConfigShow,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Write config.schema.json next to config.toml",
	Long: `Write a JSON schema for config.toml so editors with taplo or
Even Better TOML can validate and complete it.`,
	RunE: runConfigSchema,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSchemaCmd)
}

func runConfigPath(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	renderer := styles.NewConfigRenderer(a.Theme)

	mgr := config.GetManager()
	if mgr == nil {
		fmt.Println(renderer.RenderError(fmt.Errorf("configuration not loaded")))
		return nil
	}
	fmt.Println(renderer.RenderConfigInfo(mgr.ConfigFilePath()))
	return nil
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(a.Config, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func runConfigSchema(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	renderer := styles.NewConfigRenderer(a.Theme)

	mgr := config.GetManager()
	if mgr == nil {
		fmt.Println(renderer.RenderError(fmt.Errorf("configuration not loaded")))
		return nil
	}
	path, err := mgr.GenerateSchemaFile()
	if err != nil {
		fmt.Println(renderer.RenderError(err))
		return nil
	}
	fmt.Println(renderer.RenderSchemaWritten(path))
	return nil
}
