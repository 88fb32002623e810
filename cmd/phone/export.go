package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/phone-secrets/internal/storage"
)

var flagExportAll bool

var exportCmd = &cobra.Command{
	Use:   "export <file.csv>",
	Short: "Export the Level 3 run history as CSV",
	Long: `Write every recorded Level 3 run of the profile to a CSV file.
Use "-" to write to standard output.

Examples:
  phone export runs.csv
  phone export --all - > everyone.csv`,
	Args: cobra.ExactArgs(1),
	Run:  runExport,
}

func init() {
	exportCmd.Flags().BoolVar(&flagExportAll, "all", false, "Export runs of every profile")
}

// exportLimit caps one export; the table grows by one row per run.
const exportLimit = 100000

func runExport(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening progress database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	profile := flagProfile
	if flagExportAll {
		profile = ""
	}
	runs, err := store.RecentRuns(profile, exportLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	out := os.Stdout
	if args[0] != "-" {
		f, err := os.Create(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", args[0], err)
			return
		}
		defer f.Close()
		out = f
	}

	if err := storage.WriteRunsCSV(out, runs); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	if out != os.Stdout {
		fmt.Printf("Exported %d runs to %s\n", len(runs), args[0])
	}
}
