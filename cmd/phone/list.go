package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/phone-secrets/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all levels",
	Long:  `Shows the levels of the adventure in play order.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	levels := registry.List()

	if len(levels) == 0 {
		fmt.Println("No levels available.")
		return
	}

	fmt.Println("Levels:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	maxTitleLen := 5
	for _, l := range levels {
		maxIDLen = max(maxIDLen, len(l.ID))
		maxTitleLen = max(maxTitleLen, len(l.Title))
	}

	fmt.Printf("  %-3s  %-*s  %-*s  %s\n", "#", maxIDLen, "ID", maxTitleLen, "Title", "Topic")
	fmt.Printf("  %-3s  %-*s  %-*s  %s\n", "-", maxIDLen, "--", maxTitleLen, "-----", "-----")

	for _, l := range levels {
		fmt.Printf("  %-3d  %-*s  %-*s  %s\n", l.Number, maxIDLen, l.ID, maxTitleLen, l.Title, l.Topic)
	}

	fmt.Println()
	fmt.Println("Run 'phone play <# or id>' to start at a level.")
}
