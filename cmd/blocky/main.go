// blocky solves, verifies and generates Blocky sliding-block puzzles.
//
// Usage:
//
//	blocky sets [set]                 - List level sets, or the levels of one set
//	blocky solve <set> [level]        - Find optimal solutions
//	blocky verify [set...]            - Check that every level of the sets is solvable
//	blocky generate                   - Generate random solvable levels
//	blocky replay <set> <level> <mv>  - Play a move list against a level
//	blocky runs [set]                 - Show recorded run history
//
// Global flags:
//
//	--config <path>     - Config file (default: search ~/.blocky, ./configs)
//	--db <path>         - Run history database (default from config)
//	--log-level <lvl>   - debug, info, warn or error
//	--workers <n>       - Solver workers per search layer
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	// Import level sets to register them
	_ "github.com/vovakirdan/blocky/internal/games/blocky/levels"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
	flagWorkers  int
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blocky",
	Short: "Blocky - sliding-block puzzle solver and generator",
	Long: `Blocky is a sliding-block puzzle engine. The player slides until it
hits something; pieces react by bouncing, breaking, popping or pushing.
This tool finds provably shortest solutions, verifies level sets and
generates new solvable levels.

Available commands:
  sets      - Show level sets
  solve     - Solve levels optimally
  verify    - Verify that level sets are solvable
  generate  - Generate random levels
  replay    - Replay a move list
  runs      - Show run history

Examples:
  blocky sets classic
  blocky solve classic 3
  blocky verify --jobs 8
  blocky generate --difficulty hard --seed 42
  blocky replay tutorial 2 RD
  blocky runs --stats`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setup()
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().IntVar(&flagWorkers, "workers", 0, "Solver workers per search layer (0 = from config)")

	// Add subcommands
	rootCmd.AddCommand(setsCmd)
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(runsCmd)
}
