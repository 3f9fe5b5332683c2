package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/aymanbagabas/go-udiff"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/alexander-akhmetov/stageplay/internal/config"
	"github.com/alexander-akhmetov/stageplay/internal/stage"
)

var (
	showStage int
	showQuery string
	fmtDiff   bool
	fmtWrite  bool
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and format stage catalogs",
	Long: `Inspect and format stage catalogs.

A catalog is a YAML file with a name, a list of stages and optional stats:

  name: My Demo
  stats:
    - label: Execution Time
      value: 2.3s
  stages:
    - title: Natural Language Input
      description: User describes the task
      format: text        # text, json or markdown
      payload: |
        Deploy a token

When no catalog is given, the configured catalog or the built-in demo is used.`,
}

var catalogShowCmd = &cobra.Command{
	Use:   "show [catalog.yaml]",
	Short: "List the stages of a catalog",
	Long: `List the stages of a catalog as a table.

With --stage and --query, print a single value from a JSON stage payload
instead, e.g. --stage 2 --query token`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCatalogShow,
}

var catalogFmtCmd = &cobra.Command{
	Use:   "fmt [catalog.yaml]",
	Short: "Normalize a catalog file",
	Long: `Normalize a catalog: JSON payloads are pretty-printed and the YAML is
re-emitted in canonical form. The result is printed to stdout unless -d or
-w is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCatalogFmt,
}

var catalogExportCmd = &cobra.Command{
	Use:   "export [catalog.yaml]",
	Short: "Export a catalog as JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCatalogExport,
}

func init() {
	catalogShowCmd.Flags().IntVarP(&showStage, "stage", "s", 0, "Stage number (1-based) to query")
	catalogShowCmd.Flags().StringVarP(&showQuery, "query", "q", "", "gjson path into the stage's JSON payload")
	catalogFmtCmd.Flags().BoolVarP(&fmtDiff, "diff", "d", false, "Print a unified diff instead of the formatted catalog")
	catalogFmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "Write the formatted catalog back to the file")

	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogFmtCmd)
	catalogCmd.AddCommand(catalogExportCmd)
}

// catalogPath picks the explicit argument, then the configured catalog.
// An empty result means the built-in demo.
func catalogPath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	cfg, err := config.Load()
	if err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}
	return cfg.Catalog, nil
}

// loadCatalog reads the catalog at path, or the built-in demo when path is empty.
func loadCatalog(path string) (*stage.Catalog, error) {
	if path == "" {
		return stage.Demo()
	}
	return stage.Load(path)
}

func runCatalogShow(cmd *cobra.Command, args []string) error {
	path, err := catalogPath(args)
	if err != nil {
		return err
	}
	cat, err := loadCatalog(path)
	if err != nil {
		return err
	}

	if showQuery != "" || showStage != 0 {
		return queryStage(cmd.OutOrStdout(), cat, showStage, showQuery)
	}

	out := cmd.OutOrStdout()
	if name := cat.Name(); name != "" {
		fmt.Fprintln(out, name)
	}
	fmt.Fprintln(out, stageTable(cat))
	return nil
}

func queryStage(out io.Writer, cat *stage.Catalog, number int, path string) error {
	if number == 0 || path == "" {
		return errors.New("--stage and --query must be used together")
	}
	s, err := cat.Get(number - 1)
	if err != nil {
		return err
	}
	v, err := s.Query(path)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, v)
	return nil
}

func stageTable(cat *stage.Catalog) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Title", "Format", "Description"})
	for _, s := range cat.Stages() {
		tw.AppendRow(table.Row{strconv.Itoa(s.Index + 1), s.Title, string(s.Format), s.Description})
	}
	if stats := cat.Stats(); len(stats) > 0 {
		tw.AppendSeparator()
		for _, st := range stats {
			tw.AppendRow(table.Row{"", st.Label, "", st.Value})
		}
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

func runCatalogFmt(cmd *cobra.Command, args []string) error {
	path, err := catalogPath(args)
	if err != nil {
		return err
	}

	var original []byte
	if path == "" {
		if fmtWrite {
			return errors.New("-w needs a catalog file; the built-in demo cannot be rewritten")
		}
		cat, err := stage.Demo()
		if err != nil {
			return err
		}
		if original, err = stage.Marshal(cat, false); err != nil {
			return err
		}
	} else if original, err = os.ReadFile(path); err != nil {
		return fmt.Errorf("read catalog: %w", err)
	}

	formatted, err := formatCatalog(original)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case fmtDiff:
		label := path
		if label == "" {
			label = "demo.yaml"
		}
		fmt.Fprint(out, udiff.Unified(label, label+" (formatted)", string(original), string(formatted)))
	case fmtWrite:
		if string(original) == string(formatted) {
			return nil
		}
		if err := os.WriteFile(path, formatted, 0o644); err != nil {
			return fmt.Errorf("write catalog: %w", err)
		}
		fmt.Fprintf(out, "formatted %s\n", path)
	default:
		_, err = out.Write(formatted)
		return err
	}
	return nil
}

// formatCatalog parses raw catalog YAML and returns its normalized form.
func formatCatalog(data []byte) ([]byte, error) {
	cat, err := stage.Parse(data)
	if err != nil {
		return nil, err
	}
	return stage.Marshal(cat, true)
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	path, err := catalogPath(args)
	if err != nil {
		return err
	}
	cat, err := loadCatalog(path)
	if err != nil {
		return err
	}
	doc, err := stage.ExportJSON(cat)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), doc)
	return nil
}
