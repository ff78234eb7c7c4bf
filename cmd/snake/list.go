package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available boards",
	Long:  `Shows every board variant that can be passed to 'snake play'.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	variants := registry.List()

	if len(variants) == 0 {
		fmt.Println("No boards available.")
		return
	}

	fmt.Println("Available boards:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, v := range variants {
		if len(v.ID) > maxIDLen {
			maxIDLen = len(v.ID)
		}
	}

	fmt.Printf("  %-*s  %-7s  %-8s  %s\n", maxIDLen, "ID", "Size", "Edges", "Description")
	fmt.Printf("  %-*s  %-7s  %-8s  %s\n", maxIDLen, "--", "----", "-----", "-----------")

	for _, v := range variants {
		size := fmt.Sprintf("%dx%d", v.Width, v.Height)
		fmt.Printf("  %-*s  %-7s  %-8s  %s\n", maxIDLen, v.ID, size, v.Boundary, v.Description)
	}

	fmt.Println()
	fmt.Println("Run 'snake play <id>' to play a board.")
}
