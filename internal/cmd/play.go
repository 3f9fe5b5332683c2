package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexander-akhmetov/stageplay/internal/cli"
	"github.com/alexander-akhmetov/stageplay/internal/config"
	"github.com/alexander-akhmetov/stageplay/internal/playback"
	"github.com/alexander-akhmetov/stageplay/internal/timing"
	"github.com/alexander-akhmetov/stageplay/internal/tui"
)

var (
	printMode     bool
	interval      time.Duration
	restartPolicy string
	autoplay      bool
	hideStats     bool
)

var playCmd = &cobra.Command{
	Use:   "play [catalog.yaml]",
	Short: "Play a catalog of stages",
	Long: `Play a catalog of stages, advancing one stage per interval.

Without a catalog argument the configured catalog is used, or the built-in
demo when none is configured.

Controls:
  enter/space - Play the demo
  r           - Reset to the beginning
  q           - Quit
  ↑/↓         - Scroll the payload

With --print (or when stdout is not a terminal) the run starts immediately,
each stage is streamed to stdout and the command exits once the run
completes. Ctrl-C resets the run and exits.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVarP(&printMode, "print", "p", false, "Stream stages to stdout instead of the interactive viewer")
	playCmd.Flags().DurationVarP(&interval, "interval", "i", 0, "Time between stages (overrides STAGEPLAY_INTERVAL)")
	playCmd.Flags().StringVar(&restartPolicy, "restart-policy", "", "What play does during a run: ignore or restart")
	playCmd.Flags().BoolVar(&autoplay, "autoplay", false, "Start playing as soon as the viewer opens")
	playCmd.Flags().BoolVar(&hideStats, "hide-stats", false, "Do not show aggregate stats after the run")
}

func runPlay(cmd *cobra.Command, args []string) error {
	timing.Start()
	timing.Log("runPlay: begin")

	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	timing.Log("runPlay: config loaded")

	cat, err := loadCatalog(cfg.Catalog)
	if err != nil {
		return err
	}

	ctrl, err := playback.New(cat, cfg.PlaybackOptions()...)
	if err != nil {
		return fmt.Errorf("create controller: %w", err)
	}
	timing.Log("runPlay: controller ready")

	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	if printMode || !isTTY {
		width := 80
		if isTTY {
			if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
				width = w
			}
		}

		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		_, err := cli.Run(ctx, ctrl, cli.Options{
			Out:       os.Stdout,
			IsTTY:     isTTY,
			Width:     width,
			HideStats: cfg.HideStats,
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	return tui.Run(ctrl, tui.Options{
		Autoplay:  cfg.Autoplay,
		HideStats: cfg.HideStats,
	})
}

// loadConfig resolves configuration and layers the play flags on top.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("interval") && interval <= 0 {
		return nil, fmt.Errorf("--interval must be positive, got %s", interval)
	}
	cfg.ApplyCLIFlags(overridesFromFlags(cmd, args))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func overridesFromFlags(cmd *cobra.Command, args []string) config.Overrides {
	var o config.Overrides
	flags := cmd.Flags()
	if flags.Changed("interval") {
		o.Interval = interval
	}
	if flags.Changed("restart-policy") {
		o.RestartPolicy = restartPolicy
	}
	if flags.Changed("autoplay") {
		o.Autoplay = &autoplay
	}
	if flags.Changed("hide-stats") {
		o.HideStats = &hideStats
	}
	if len(args) > 0 {
		o.Catalog = args[0]
	}
	return o
}
