package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/alexander-akhmetov/stageplay/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage stageplay configuration",
	Long:  `View and manage stageplay configuration.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show resolved configuration with source annotations",
	Long: `Show the fully resolved configuration with annotations indicating
where each value came from.

Configuration is loaded from multiple sources with the following precedence:
  1. Embedded defaults (built into binary)
  2. Global config (~/.config/stageplay/config.yaml)
  3. Environment variables (STAGEPLAY_*)
  4. Local config (.stageplay/config.yaml)
  5. CLI flags (highest precedence)`,
	RunE: runConfigShow,
}

func init() {
	configCmd.AddCommand(configShowCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	printConfig(cmd.OutOrStdout(), cfg)
	return nil
}

func printConfig(out io.Writer, cfg *config.Config) {
	fmt.Fprintln(out, "# Stageplay Configuration")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "## Sources (in order of precedence)")
	for _, src := range cfg.Sources() {
		fmt.Fprintf(out, "  - %s\n", src)
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "## Directories")
	fmt.Fprintf(out, "  Global config: %s\n", cfg.ConfigDir())
	if cfg.LocalDir() != "" {
		fmt.Fprintf(out, "  Local config:  %s\n", cfg.LocalDir())
	} else {
		fmt.Fprintf(out, "  Local config:  (none detected)\n")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "## Playback Settings")
	fmt.Fprintf(out, "  interval:       %s\n", cfg.Interval)
	fmt.Fprintf(out, "  restart_policy: %s\n", cfg.RestartPolicy)
	if cfg.Catalog != "" {
		fmt.Fprintf(out, "  catalog:        %s\n", cfg.Catalog)
	} else {
		fmt.Fprintf(out, "  catalog:        (built-in demo)\n")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "## Viewer Settings")
	fmt.Fprintf(out, "  autoplay:   %t\n", cfg.Autoplay)
	fmt.Fprintf(out, "  hide_stats: %t\n", cfg.HideStats)
}
