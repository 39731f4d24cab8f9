package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-gym/internal/policy"
	"github.com/vovakirdan/snake-gym/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List environment presets",
	Long:  `Shows every registered environment preset and the available policies.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	presets := registry.List()

	if len(presets) == 0 {
		fmt.Println("No environments available.")
		return
	}

	fmt.Println("Available environments:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, p := range presets {
		if len(p.ID) > maxIDLen {
			maxIDLen = len(p.ID)
		}
	}

	fmt.Printf("  %-*s  %-4s  %s\n", maxIDLen, "ID", "Grid", "Title")
	fmt.Printf("  %-*s  %-4s  %s\n", maxIDLen, "--", "----", "-----")

	for _, p := range presets {
		fmt.Printf("  %-*s  %-4d  %s\n", maxIDLen, p.ID, p.Config.GridSize, p.Title)
	}

	fmt.Println()
	fmt.Printf("Policies: %v\n", policy.Names())
	fmt.Println("Run 'snakegym play --env <id>' to play an environment.")
}
