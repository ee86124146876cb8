package config

import (
	_ "embed"
)

//go:embed defaults/blocky.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Solver: SolverConfig{
			Workers:    4,
			ChainLimit: 256,
			MaxNodes:   2000000,
		},
		Generator: GeneratorConfig{
			Size:        6,
			MinMoves:    4,
			Density:     0.25,
			MaxAttempts: 500,
		},
		Storage: StorageConfig{
			DBPath: "~/.blocky/runs.db",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
