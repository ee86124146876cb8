// Package config provides YAML-based configuration loading and generator
// difficulty presets for Blocky.
package config

import "github.com/vovakirdan/blocky/internal/games/blocky/core"

// Config contains all configuration for the blocky tool.
type Config struct {
	Solver    SolverConfig    `yaml:"solver"`
	Generator GeneratorConfig `yaml:"generator"`
	Storage   StorageConfig   `yaml:"storage"`
	Log       LogConfig       `yaml:"log"`
}

// SolverConfig defines search parameters for the level solver.
type SolverConfig struct {
	Workers    int `yaml:"workers"`     // Concurrent expansions per layer
	ChainLimit int `yaml:"chain_limit"` // Max nested slides within one move
	MaxNodes   int `yaml:"max_nodes"`   // 0 = unbounded
}

// GeneratorConfig defines parameters for random level generation.
type GeneratorConfig struct {
	Size        int     `yaml:"size"`
	MinMoves    int     `yaml:"min_moves"`
	Density     float64 `yaml:"density"`      // Chance an interior cell holds a piece
	MaxAttempts int     `yaml:"max_attempts"` // 0 = retry until found
}

// StorageConfig defines where run history is kept.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// LogConfig defines logging behavior.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// SolverOptions converts the solver section into solver options.
func (c SolverConfig) SolverOptions() []core.SolverOption {
	return []core.SolverOption{
		core.WithWorkers(c.Workers),
		core.WithSolverChainLimit(c.ChainLimit),
		core.WithMaxNodes(c.MaxNodes),
	}
}

// Params converts the generator section into generator parameters.
func (c GeneratorConfig) Params(seed uint64) core.GenParams {
	return core.GenParams{
		Size:        c.Size,
		MinMoves:    c.MinMoves,
		Density:     c.Density,
		MaxAttempts: c.MaxAttempts,
		Seed:        seed,
	}
}
