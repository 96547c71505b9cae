package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/consent/internal/cli/styles"
)

var aboutCmd = &cobra.Command{
	Use:   "about",
	Short: "Show version and build information",
	Long:  `Display version, build info, repository URL, and contributors.`,
	RunE:  runAbout,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short:       "Print the version",
	Annotations: standaloneAnnotation,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), buildInfo.String())
	},
}

func init() {
	rootCmd.AddCommand(aboutCmd)
	rootCmd.AddCommand(versionCmd)
}

func runAbout(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	renderer := styles.NewAboutRenderer(a.Theme)
	fmt.Fprintln(cmd.OutOrStdout(), renderer.Render(a.BuildInfo))
	return nil
}
