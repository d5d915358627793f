// raincatch is a terminal rain-catching game built on a small frame-stepped
// simulation core.
//
// Usage:
//
//	raincatch list            - List available scenes
//	raincatch play [scene]    - Play a scene (menu when omitted)
//	raincatch sim [scene]     - Run a scene headless and print diagnostics
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible runs
//	--log-level <level>   - debug, info, warn, error (default: info)
//	--log-file <path>     - Log destination (play default: ~/.raincatch/raincatch.log)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import scenes to register them
	_ "github.com/vovakirdan/raincatch/internal/games/raincatch"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "raincatch",
	Short: "Rain Catch - catch falling droplets in your terminal",
	Long: `Rain Catch is a terminal game: steer a bucket to catch droplets that
bounce off rotating and drifting obstacles.

Available commands:
  list     - Show all available scenes
  play     - Play a scene
  sim      - Run a scene headless and print collision diagnostics

Examples:
  raincatch list
  raincatch play
  raincatch play storm --difficulty hard
  raincatch sim storm --frames 3600 --seed 7`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file path")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
}
