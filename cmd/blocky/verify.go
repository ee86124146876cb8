package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/blocky/internal/games/blocky/core"
	"github.com/vovakirdan/blocky/internal/registry"
	"github.com/vovakirdan/blocky/internal/storage"
)

var (
	flagVerifyJobs   int
	flagVerifyRecord bool
)

var verifyCmd = &cobra.Command{
	Use:   "verify [set...]",
	Short: "Check that every level of the sets is solvable",
	Long: `Solve every level of the given sets (all sets by default) concurrently
and report any level without a solution. Exits non-zero if any level is
unsolvable or the search fails.

Examples:
  blocky verify
  blocky verify classic --jobs 2
  blocky verify tutorial classic --record`,
	Run: runVerify,
}

func init() {
	verifyCmd.Flags().IntVar(&flagVerifyJobs, "jobs", runtime.NumCPU(), "Levels solved at the same time")
	verifyCmd.Flags().BoolVar(&flagVerifyRecord, "record", false, "Record results in the run history")
}

type verifyJob struct {
	set   registry.LevelSet
	index int
	level *core.Level

	moves   []core.Dir
	nodes   int
	elapsed time.Duration
	err     error
}

func runVerify(cmd *cobra.Command, args []string) {
	names := args
	if len(names) == 0 {
		for _, info := range registry.List() {
			names = append(names, info.ID)
		}
	}

	var jobs []*verifyJob
	for _, name := range names {
		set := loadSet(name)
		for i := 1; i <= set.Len(); i++ {
			lvl, err := set.Level(i)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error loading %s level %d: %v\n", name, i, err)
				os.Exit(1)
			}
			jobs = append(jobs, &verifyJob{set: set, index: i, level: lvl})
		}
	}

	jobsLimit := flagVerifyJobs
	if jobsLimit < 1 {
		jobsLimit = 1
	}
	logger.Info("verifying", "sets", len(names), "levels", len(jobs), "jobs", jobsLimit)

	solver := newSolver()
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(jobsLimit)
	for _, job := range jobs {
		g.Go(func() error {
			start := time.Now()
			res, err := solver.Solve(ctx, job.level)
			job.moves, job.nodes, job.elapsed, job.err = res.Moves, res.Nodes, time.Since(start), err
			// Level failures are reported below. Only cancellation stops the group.
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: verification interrupted: %v\n", err)
		os.Exit(1)
	}

	var store *storage.Store
	if flagVerifyRecord {
		store = openStore()
		if store != nil {
			defer store.Close()
		}
	}

	failed := 0
	current := ""
	for _, job := range jobs {
		if job.set.Name() != current {
			current = job.set.Name()
			fmt.Println(paint(titleStyle, job.set.Title()))
		}

		run := storage.Run{
			Set:        job.set.Name(),
			LevelID:    job.index,
			Nodes:      job.nodes,
			DurationMs: job.elapsed.Milliseconds(),
		}
		label := fmt.Sprintf("%2d. %-24s", job.index, job.set.LevelName(job.index))
		switch {
		case job.err == nil:
			run.Status = storage.StatusSolved
			run.Moves = len(job.moves)
			run.Solution = core.MoveString(job.moves)
			fmt.Printf("  %s %s %s\n", label, paint(okStyle, "ok"), paint(dimStyle, core.FormatMoves(job.moves)))
		case errors.Is(job.err, core.ErrUnsolvable):
			failed++
			run.Status = storage.StatusUnsolvable
			fmt.Printf("  %s %s\n", label, paint(failStyle, "unsolvable"))
		default:
			failed++
			run.Status = storage.StatusFailed
			fmt.Printf("  %s %s %s\n", label, paint(failStyle, "error"), paint(dimStyle, job.err.Error()))
		}
		record(store, run)
	}

	fmt.Println()
	if failed > 0 {
		fmt.Println(paint(failStyle, fmt.Sprintf("%d of %d levels failed", failed, len(jobs))))
		os.Exit(1)
	}
	fmt.Println(paint(okStyle, fmt.Sprintf("All %d levels solvable", len(jobs))))
}
