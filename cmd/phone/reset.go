package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/phone-secrets/internal/storage"
)

var flagResetRuns bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear saved progress",
	Long: `Forget the completed levels of the profile so the next game starts
on the welcome screen. With --runs the Level 3 history is deleted too.

Examples:
  phone reset
  phone reset --profile alice --runs`,
	Args: cobra.NoArgs,
	Run:  runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&flagResetRuns, "runs", false, "Also delete the Level 3 run history")
}

func runReset(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening progress database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.Progress(flagProfile).Clear(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	fmt.Printf("Progress of %s cleared.\n", flagProfile)

	if !flagResetRuns {
		return
	}
	if err := store.ClearRuns(flagProfile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	fmt.Printf("Run history of %s deleted.\n", flagProfile)
}
