package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/bnema/consent/internal/infrastructure/config"
	"github.com/bnema/consent/internal/infrastructure/scenario"
)

const dirPerm = 0o755

var (
	genDocsOutputDir string
	genDocsFormat    string
)

// docFormat generates one kind of documentation into dir and returns the
// file extension it writes.
type docFormat struct {
	ext        string
	defaultDir func() (string, error)
	generate   func(root *cobra.Command, dir string) error
}

var docFormats = map[string]docFormat{
	"man": {
		ext:        ".1",
		defaultDir: manPageDir,
		generate: func(root *cobra.Command, dir string) error {
			return doc.GenManTree(root, manHeader(), dir)
		},
	},
	"markdown": {
		ext:        ".md",
		defaultDir: func() (string, error) { return "./docs", nil },
		generate:   doc.GenMarkdownTree,
	},
	"schema": {
		ext:        ".json",
		defaultDir: func() (string, error) { return "./docs/schema", nil },
		generate: func(_ *cobra.Command, dir string) error {
			return writeSchemas(dir, map[string]*jsonschema.Schema{
				"config.schema.json":   config.Schema(),
				"scenario.schema.json": scenario.Schema(),
			})
		},
	},
}

var genDocsCmd = &cobra.Command{
	Use:   "gen-docs",
	Short: "Generate man pages, markdown or JSON schemas",
	Long: `Generate documentation from the command tree and file formats.

Formats:
  man       manual pages, installed to ~/.local/share/man/man1 by default
  markdown  one markdown file per command, in ./docs
  schema    JSON schemas of config.toml and scenario files, in ./docs/schema

Run 'mandb' if 'man consent' does not find the pages right away.`,
	Example: `  consent gen-docs
  consent gen-docs --format markdown
  consent gen-docs --format schema -o ./schemas`,
	Annotations: standaloneAnnotation,
	RunE:        runGenDocs,
}

func init() {
	rootCmd.AddCommand(genDocsCmd)
	genDocsCmd.Flags().StringVarP(&genDocsOutputDir, "output", "o", "", "output directory")
	genDocsCmd.Flags().StringVarP(&genDocsFormat, "format", "f", "man", "output format: "+strings.Join(docFormatNames(), ", "))
}

func docFormatNames() []string {
	names := make([]string, 0, len(docFormats))
	for name := range docFormats {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func runGenDocs(cmd *cobra.Command, _ []string) error {
	return genDocs(cmd.OutOrStdout(), rootCmd, genDocsFormat, genDocsOutputDir)
}

func genDocs(w io.Writer, root *cobra.Command, format, dir string) error {
	f, ok := docFormats[format]
	if !ok {
		return fmt.Errorf("unsupported format %q (use: %s)", format, strings.Join(docFormatNames(), ", "))
	}

	if dir == "" {
		d, err := f.defaultDir()
		if err != nil {
			return fmt.Errorf("resolve %s directory: %w", format, err)
		}
		dir = d
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	root.DisableAutoGenTag = true
	if err := f.generate(root, dir); err != nil {
		return fmt.Errorf("generate %s docs: %w", format, err)
	}

	fmt.Fprintf(w, "Wrote %s docs to %s\n", format, dir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == f.ext {
			fmt.Fprintf(w, "  - %s\n", e.Name())
		}
	}
	return nil
}

// manHeader dates the pages with the build date so release builds are
// reproducible.
func manHeader() *doc.GenManHeader {
	date := time.Now()
	if t, err := time.Parse(time.RFC3339, buildInfo.BuildDate); err == nil {
		date = t
	}
	return &doc.GenManHeader{
		Title:   "CONSENT",
		Section: "1",
		Source:  buildInfo.String(),
		Manual:  "Consent Manual",
		Date:    &date,
	}
}

func writeSchemas(dir string, schemas map[string]*jsonschema.Schema) error {
	for name, schema := range schemas {
		data, err := json.MarshalIndent(schema, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal %s: %w", name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), append(data, '\n'), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	return nil
}

// manPageDir is man1 under the XDG data home shared by all applications.
func manPageDir() (string, error) {
	dirs, err := config.GetXDGDirs()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(dirs.DataHome), "man", "man1"), nil
}
