package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blocky/internal/config"
	"github.com/vovakirdan/blocky/internal/games/blocky/core"
	"github.com/vovakirdan/blocky/internal/registry"
	"github.com/vovakirdan/blocky/internal/storage"
)

var (
	cfg    = config.Default()
	logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "blocky"})
)

// setup loads the configuration, applies flag overrides and builds the logger.
func setup() {
	c, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if flagDBPath != "" {
		c.Storage.DBPath = flagDBPath
	}
	if flagLogLevel != "" {
		c.Log.Level = flagLogLevel
	}
	if flagWorkers > 0 {
		c.Solver.Workers = flagWorkers
	}
	cfg = c

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "blocky",
	})
	if lvl, err := log.ParseLevel(cfg.Log.Level); err == nil {
		logger.SetLevel(lvl)
	} else {
		logger.Warn("unknown log level, using info", "level", cfg.Log.Level)
	}
}

// newSolver builds a solver from the solver config.
func newSolver() *core.Solver {
	return core.NewSolver(cfg.Solver.SolverOptions()...)
}

// loadSet creates a registered level set whose levels use the configured solver.
func loadSet(name string) registry.LevelSet {
	if !registry.Exists(name) {
		fmt.Fprintf(os.Stderr, "Error: unknown level set %q\n", name)
		fmt.Fprintln(os.Stderr, "Run 'blocky sets' to see available sets.")
		os.Exit(1)
	}

	set, err := registry.Create(name, core.WithSolver(newSolver()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading level set: %v\n", err)
		os.Exit(1)
	}
	return set
}

// parseLevelIndex parses a 1-based level index within the set.
func parseLevelIndex(set registry.LevelSet, arg string) int {
	i, err := strconv.Atoi(arg)
	if err != nil || i < 1 || i > set.Len() {
		fmt.Fprintf(os.Stderr, "Error: level must be between 1 and %d, got %q\n", set.Len(), arg)
		os.Exit(1)
	}
	return i
}

// openStore opens the run history. Commands keep working without it.
func openStore() *storage.Store {
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		logger.Warn("could not open run history", "path", cfg.Storage.DBPath, "error", err)
		return nil
	}
	return store
}

// record saves a run if the history is available.
func record(store *storage.Store, run storage.Run) {
	if store == nil {
		return
	}
	id, err := store.SaveRun(run)
	if err != nil {
		logger.Warn("could not record run", "set", run.Set, "level", run.LevelID, "error", err)
		return
	}
	logger.Debug("recorded run", "id", id, "set", run.Set, "level", run.LevelID, "status", run.Status)
}
