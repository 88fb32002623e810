package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/phone-secrets/internal/core"
	"github.com/vovakirdan/phone-secrets/internal/platform/tui"
	"github.com/vovakirdan/phone-secrets/internal/registry"
	"github.com/vovakirdan/phone-secrets/internal/session"
	"github.com/vovakirdan/phone-secrets/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play the adventure",
	Long: `Start the adventure where you left it, or jump straight to a level
given by its number or its ID.

Controls:
  Arrows/WASD - Move, pick, tune
  Enter/Space - Select, place, confirm
  X           - Cancel a selection or take the other choice
  Tab         - Switch between columns
  N           - Next level (once completed)
  1-5         - Jump to a level
  Esc         - Welcome screen
  H           - Level 3 run history
  ?           - All keys
  Q/Ctrl+C    - Quit

Pace options (Level 3):
  relaxed - Slower dopamine decay, longer simulation
  normal  - Reference tuning
  intense - Faster decay, shorter simulation
  fixed   - Reference tuning, ignores config overrides

Examples:
  phone play
  phone play 2
  phone play assembly
  phone play dopamine --pace relaxed
  phone play --config ./my-phone.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	start := 0
	if len(args) == 1 {
		info, ok := registry.Lookup(args[0])
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown level %q\n", args[0])
			if s := registry.Suggest(args[0]); len(s) > 0 {
				fmt.Fprintf(os.Stderr, "Did you mean: %s?\n", strings.Join(s, ", "))
			}
			fmt.Fprintln(os.Stderr, "Run 'phone list' to see available levels.")
			os.Exit(1)
		}
		start = info.Number
	}

	gameCfg, err := loadGameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
		Profile:  flagProfile,
	}

	opts := session.Options{
		Config:  gameCfg,
		Seed:    cfg.Seed,
		Profile: cfg.Profile,
		Logger:  logger,
	}

	var runs tui.RunSource
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open progress database: %v\n", err)
		logger.Warn("playing without persistence", "err", err)
		// Continue without storage - progress lasts until exit
		store = nil
	} else {
		opts.Store = store.Progress(cfg.Profile)
		opts.Recorder = store
		runs = store
	}

	sess := session.New(opts)
	if start > 0 {
		//nolint:errcheck // Lookup only returns registered levels
		sess.Navigate(start)
	}

	runErr := tui.Run(sess, runs, cfg)
	sess.Close()

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
