package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blocky/internal/games/blocky/core"
	"github.com/vovakirdan/blocky/internal/registry"
	"github.com/vovakirdan/blocky/internal/storage"
)

var (
	flagSolveShow     bool
	flagSolveNoRecord bool
)

var solveCmd = &cobra.Command{
	Use:   "solve <set> [level]",
	Short: "Find optimal solutions",
	Long: `Find the shortest move sequence that wins a level. Without a level
number every level of the set is solved in turn.

Solutions are printed as move letters (L, U, R, D) followed by their
length, and recorded in the run history.

Examples:
  blocky solve tutorial
  blocky solve classic 5
  blocky solve classic 5 --show --workers 8`,
	Args: cobra.RangeArgs(1, 2),
	Run:  runSolve,
}

func init() {
	solveCmd.Flags().BoolVar(&flagSolveShow, "show", false, "Print the level layout before its solution")
	solveCmd.Flags().BoolVar(&flagSolveNoRecord, "no-record", false, "Do not record runs in the history")
}

func runSolve(cmd *cobra.Command, args []string) {
	set := loadSet(args[0])

	first, last := 1, set.Len()
	if len(args) == 2 {
		first = parseLevelIndex(set, args[1])
		last = first
	}

	var store *storage.Store
	if !flagSolveNoRecord {
		store = openStore()
		if store != nil {
			defer store.Close()
		}
	}

	solver := newSolver()
	failed := 0
	for i := first; i <= last; i++ {
		lvl, err := set.Level(i)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading level %d: %v\n", i, err)
			os.Exit(1)
		}

		if flagSolveShow {
			fmt.Print(renderRows(lvl.Rows()))
		}

		run := solveLevel(cmd, solver, set, i, lvl)
		record(store, run)
		if run.Status != storage.StatusSolved {
			failed++
		}
	}

	if failed > 0 {
		os.Exit(1)
	}
}

// solveLevel solves one level, prints the outcome and returns the run to record.
func solveLevel(cmd *cobra.Command, solver *core.Solver, set registry.LevelSet, i int, lvl *core.Level) storage.Run {
	logger.Debug("solving", "set", set.Name(), "level", i, "workers", cfg.Solver.Workers)

	start := time.Now()
	res, err := solver.Solve(cmd.Context(), lvl)
	elapsed := time.Since(start)

	run := storage.Run{
		Set:        set.Name(),
		LevelID:    i,
		Nodes:      res.Nodes,
		DurationMs: elapsed.Milliseconds(),
	}

	label := fmt.Sprintf("%2d. %-24s", i, set.LevelName(i))
	switch {
	case err == nil:
		run.Status = storage.StatusSolved
		run.Moves = len(res.Moves)
		run.Solution = core.MoveString(res.Moves)
		fmt.Printf("  %s %s %s\n", label, paint(movesStyle, core.FormatMoves(res.Moves)),
			paint(dimStyle, fmt.Sprintf("(%d configs, %s)", res.Nodes, elapsed.Round(time.Millisecond))))
	case errors.Is(err, core.ErrUnsolvable):
		run.Status = storage.StatusUnsolvable
		fmt.Printf("  %s %s %s\n", label, paint(failStyle, "unsolvable"),
			paint(dimStyle, fmt.Sprintf("(%d configs, %d fatal, %d invalid)", res.Nodes, res.Fatal, res.Invalid)))
	default:
		run.Status = storage.StatusFailed
		fmt.Printf("  %s %s\n", label, paint(failStyle, "error"))
		logger.Error("solve failed", "set", set.Name(), "level", i, "error", err)
	}

	logger.Debug("solved", "set", set.Name(), "level", i,
		"status", run.Status, "nodes", res.Nodes, "edges", res.Edges, "wins", res.Wins)
	return run
}
