// phone is an educational terminal game about the smartphone: its history,
// its materials, its effect on the brain, its components and its signal.
//
// Usage:
//
//	phone play [level]     - Play the adventure, optionally from a level
//	phone list             - List the levels
//	phone scores           - Show the Level 3 run history
//	phone export <file>    - Export the run history as CSV
//	phone reset            - Clear saved progress
//	phone serve            - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 20)
//	--seed <value>      - Set RNG seed for reproducible runs
//	--db <path>         - Set database path (default: ~/.phone-secrets/progress.db)
//	--config <path>     - Level tuning YAML
//	--pace <preset>     - Level 3 pace: relaxed, normal, intense, fixed
//	--profile <name>    - Whose progress is loaded and saved
//	--log-file <path>   - Write logs to a file
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/phone-secrets/internal/config"

	// Import levels to register them
	_ "github.com/vovakirdan/phone-secrets/internal/levels/assembly"
	_ "github.com/vovakirdan/phone-secrets/internal/levels/dopamine"
	_ "github.com/vovakirdan/phone-secrets/internal/levels/materials"
	_ "github.com/vovakirdan/phone-secrets/internal/levels/signal"
	_ "github.com/vovakirdan/phone-secrets/internal/levels/timeline"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagPace     string
	flagProfile  string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "phone",
	Short: "Phone Secrets - what hides inside your smartphone",
	Long: `Phone Secrets is an educational game played in the terminal.
Five levels take you through the history of the telephone, the minerals
it is made of, the dopamine loop of social apps, the components inside
the case and the physics of the radio signal.

Available commands:
  play     - Play the adventure
  list     - Show the levels
  scores   - View the Level 3 run history
  export   - Export the run history as CSV
  reset    - Clear saved progress
  serve    - Start SSH server for remote play

Examples:
  phone play
  phone play 3
  phone play signal --pace intense
  phone scores --profile alice
  phone serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 20, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.phone-secrets/progress.db", "Path to progress database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom level tuning YAML")
	rootCmd.PersistentFlags().StringVar(&flagPace, "pace", "", "Level 3 pace: relaxed, normal, intense, fixed")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", defaultProfile(), "Profile whose progress is used")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (default: discarded)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(serveCmd)
}

func defaultProfile() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "local"
}

// newLogger builds the logger of the commands that run a terminal UI.
// Logs go to --log-file so they never draw over the alternate screen.
// The returned cleanup must be called on exit.
func newLogger() (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	var w io.Writer = io.Discard
	cleanup := func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		cleanup = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "phone",
	})
	return logger, cleanup, nil
}

// loadGameConfig loads the level tuning and applies --pace.
func loadGameConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	pace, err := config.ParsePace(flagPace)
	if err != nil {
		return cfg, err
	}
	config.ApplyPace(&cfg, pace)
	return cfg, nil
}
