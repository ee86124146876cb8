package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedMatchesDefault(t *testing.T) {
	cfg := Default()
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded defaults differ from Default():\n%+v\n%+v", cfg, Default())
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blocky.yaml")
	data := []byte("solver:\n  workers: 9\ngenerator:\n  min_moves: 7\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Solver.Workers != 9 {
		t.Errorf("expected workers 9, got %d", cfg.Solver.Workers)
	}
	if cfg.Generator.MinMoves != 7 {
		t.Errorf("expected min_moves 7, got %d", cfg.Generator.MinMoves)
	}
	// Keys missing from the file keep their defaults.
	if cfg.Solver.ChainLimit != Default().Solver.ChainLimit {
		t.Errorf("expected default chain limit, got %d", cfg.Solver.ChainLimit)
	}
	if cfg.Storage.DBPath != Default().Storage.DBPath {
		t.Errorf("expected default db path, got %q", cfg.Storage.DBPath)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("solver: [oops"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("expected error for malformed file")
	}
}

func TestLoadLocalConfigsDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)

	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join("configs", "blocky.yaml"), []byte("log:\n  level: debug\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected level from ./configs, got %q", cfg.Log.Level)
	}
}

func TestLoadUserConfigWins(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)

	if err := os.MkdirAll(filepath.Join(dir, ".blocky"), 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".blocky", "config.yaml"), []byte("log:\n  level: warn\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join("configs", "blocky.yaml"), []byte("log:\n  level: debug\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("expected level from ~/.blocky, got %q", cfg.Log.Level)
	}
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset   DifficultyPreset
		size     int
		minMoves int
	}{
		{DifficultyEasy, 4, 2},
		{DifficultyNormal, 6, 4},
		{DifficultyHard, 7, 6},
		{DifficultyExpert, 8, 8},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := Default().Generator
			ApplyPreset(&cfg, tt.preset)
			if cfg.Size != tt.size || cfg.MinMoves != tt.minMoves {
				t.Errorf("got size %d min moves %d, want %d and %d", cfg.Size, cfg.MinMoves, tt.size, tt.minMoves)
			}
			if err := cfg.Params(1).Validate(); err != nil {
				t.Errorf("preset produces invalid params: %v", err)
			}
		})
	}

	cfg := GeneratorConfig{MaxAttempts: 0}
	ApplyPreset(&cfg, DifficultyHard)
	if cfg.MaxAttempts != 0 {
		t.Errorf("unbounded attempts must stay unbounded, got %d", cfg.MaxAttempts)
	}

	if _, ok := ParsePreset("impossible"); ok {
		t.Error("expected unknown preset to be rejected")
	}
}
