package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/phone-secrets/internal/platform/tui"
	"github.com/vovakirdan/phone-secrets/internal/storage"
)

var (
	flagScoresAll         bool
	flagScoresLimit       int
	flagScoresInteractive bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the Level 3 run history",
	Long: `Display the latest Level 3 runs of the profile with its best run
and totals.

Examples:
  phone scores
  phone scores --profile alice --limit 20
  phone scores --all
  phone scores -i`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "Show runs of every profile")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVarP(&flagScoresInteractive, "interactive", "i", false, "Browse the history in a table")
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening progress database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunHistory(store, flagProfile, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	profile := flagProfile
	if flagScoresAll {
		profile = ""
	}

	runs, err := store.RecentRuns(profile, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	if flagScoresAll {
		fmt.Println("Level 3 runs - everyone")
	} else {
		fmt.Printf("Level 3 runs - %s\n", flagProfile)
	}
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'phone play 3' to record the first one!")
		return
	}

	fmt.Printf("  %-16s  %-10s  %-9s  %-8s  %-10s  %s\n", "Date", "Profile", "Wellbeing", "Dopamine", "Outcome", "Crashes")
	fmt.Printf("  %-16s  %-10s  %-9s  %-8s  %-10s  %s\n", "----", "-------", "---------", "--------", "-------", "-------")

	for _, r := range runs {
		dateStr := r.CreatedAt.Local().Format("2006-01-02 15:04")
		fmt.Printf("  %-16s  %-10s  %-9d  %-8d  %-10s  %d\n", dateStr, r.Profile, r.Wellbeing, r.Dopamine, r.Tier, r.Crashes)
	}

	if flagScoresAll {
		return
	}

	fmt.Println()
	if best, err := store.BestRun(flagProfile); err == nil && best != nil {
		fmt.Printf("Best: wellbeing %d%% with %d crashes (%s)\n", best.Wellbeing, best.Crashes, best.Tier)
	}
	if stats, err := store.Stats(flagProfile); err == nil {
		fmt.Printf("Runs: %d, average wellbeing %.0f%%, %d crashes in total\n",
			stats.Runs, stats.AvgWellbeing, stats.TotalCrashes)
	}
}
