package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blocky/internal/games/blocky/core"
	"github.com/vovakirdan/blocky/internal/storage"
)

var (
	flagReplayTrace    bool
	flagReplayNoRecord bool
)

var replayCmd = &cobra.Command{
	Use:   "replay <set> <level> <moves>",
	Short: "Play a move list against a level",
	Long: `Play a sequence of moves (letters L, U, R, D) against a level and
report whether it wins, and whether it is as short as the optimal
solution. Moves after the level is won or lost are ignored.

Examples:
  blocky replay tutorial 1 R
  blocky replay classic 5 RRDR --trace
  blocky replay classic 2 "R D L"`,
	Args: cobra.ExactArgs(3),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagReplayTrace, "trace", false, "Print every event of every move")
	replayCmd.Flags().BoolVar(&flagReplayNoRecord, "no-record", false, "Do not record the replay in the history")
}

func runReplay(cmd *cobra.Command, args []string) {
	set := loadSet(args[0])
	index := parseLevelIndex(set, args[1])

	moves, err := core.ParseMoves(args[2])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing moves: %v\n", err)
		os.Exit(1)
	}

	lvl, err := set.Level(index)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading level: %v\n", err)
		os.Exit(1)
	}

	m := core.NewModel(
		core.WithChainLimit(cfg.Solver.ChainLimit),
		core.WithListener(core.ListenerFuncs{
			Win:   func() { logger.Debug("level won", "set", set.Name(), "level", index) },
			Fatal: func() { logger.Debug("fatal move", "set", set.Name(), "level", index) },
		}),
	)
	if err := m.LoadLevel(lvl); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading level: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(paint(titleStyle, fmt.Sprintf("%s %d. %s", set.Title(), index, set.LevelName(index))))
	fmt.Print(renderRows(lvl.Rows()))
	fmt.Println()

	for n, d := range moves {
		if m.Outcome() != core.OutcomeNone {
			logger.Warn("ignoring moves after the level ended", "ignored", len(moves)-n)
			break
		}

		changed, err := m.Move(d)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error on move %d (%s): %v\n", n+1, d, err)
			os.Exit(1)
		}

		status := "moved"
		if !changed {
			status = paint(dimStyle, "blocked")
		}
		fmt.Printf("  %2d. %-5s %s\n", n+1, d, status)
		if flagReplayTrace {
			for _, ev := range m.Events() {
				fmt.Println(paint(dimStyle, "        "+formatEvent(ev)))
			}
		}
	}

	layout, err := m.Layout()
	if err == nil {
		fmt.Println()
		fmt.Print(renderRows(core.TagRows(layout)))
	}

	made, _ := m.MovesMade()
	run := storage.Run{
		Set:      set.Name(),
		LevelID:  index,
		Status:   storage.StatusLost,
		Moves:    made,
		Solution: core.MoveString(moves),
	}

	fmt.Println()
	switch m.Outcome() {
	case core.OutcomeWon:
		run.Status = storage.StatusWon
		fmt.Printf("%s in %d moves", paint(okStyle, "Won"), made)
		optimal, err := m.FoundOptimalSolution()
		switch {
		case errors.Is(err, core.ErrImpossibleOptimum):
			fmt.Println()
			logger.Error("replay beat the solver", "set", set.Name(), "level", index, "error", err)
		case err != nil:
			fmt.Println()
			logger.Warn("could not check optimality", "error", err)
		case optimal:
			fmt.Println(paint(okStyle, " (optimal)"))
		default:
			best, _ := lvl.Moves()
			fmt.Println(paint(dimStyle, fmt.Sprintf(" (optimal is %d)", best)))
		}
	case core.OutcomeFatal:
		fmt.Println(paint(failStyle, "Lost: the player was destroyed"))
	default:
		fmt.Println(paint(failStyle, fmt.Sprintf("Not won after %d moves", made)))
	}

	if !flagReplayNoRecord {
		if store := openStore(); store != nil {
			record(store, run)
			store.Close()
		}
	}

	if run.Status != storage.StatusWon {
		os.Exit(1)
	}
}

func formatEvent(ev core.Event) string {
	switch ev.Kind {
	case core.EventSlide:
		return fmt.Sprintf("%s %s %s -> %s", ev.Kind, ev.Piece, ev.From, ev.To)
	case core.EventRender:
		return fmt.Sprintf("%s %s %s as %s", ev.Kind, ev.Piece, ev.From, ev.As)
	case core.EventDelete:
		return fmt.Sprintf("%s %s %s", ev.Kind, ev.Piece, ev.From)
	default:
		return ev.Kind.String()
	}
}
