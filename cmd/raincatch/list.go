package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/raincatch/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available scenes",
	Long:  `Shows a list of all registered scenes.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		printScenes(cmd.OutOrStdout(), registry.List())
	},
}

func printScenes(w io.Writer, scenes []registry.Info) {
	if len(scenes) == 0 {
		fmt.Fprintln(w, "No scenes available.")
		return
	}

	fmt.Fprintln(w, "Available scenes:")
	fmt.Fprintln(w)

	maxIDLen := 2 // "ID" header
	for _, s := range scenes {
		maxIDLen = max(maxIDLen, len(s.ID))
	}

	fmt.Fprintf(w, "  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Fprintf(w, "  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, s := range scenes {
		fmt.Fprintf(w, "  %-*s  %s\n", maxIDLen, s.ID, s.Title)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'raincatch play <id>' to play a scene.")
}
