package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all levels",
	Long:  `Shows the levels from the active configuration, in menu order.`,
	RunE:  runList,
}

func runList(cmd *cobra.Command, _ []string) error {
	set, err := loadLevels()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Available levels:")
	fmt.Fprintln(out)

	maxIDLen := 2 // "ID" header
	for _, id := range set.IDs() {
		maxIDLen = max(maxIDLen, len(id))
	}

	fmt.Fprintf(out, "  %-*s  %-7s  %-6s  %s\n", maxIDLen, "ID", "Divisor", "Seed", "Name")
	fmt.Fprintf(out, "  %-*s  %-7s  %-6s  %s\n", maxIDLen, "--", "-------", "----", "----")
	for i := 0; i < set.Len(); i++ {
		l := set.At(i)
		fmt.Fprintf(out, "  %-*s  %-7d  %-6d  %s\n", maxIDLen, l.ID, l.Divisor, l.Seed, l.Name)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'factory play <id>' to play a level.")
	return nil
}
