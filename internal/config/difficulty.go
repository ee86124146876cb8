package config

// DifficultyPreset represents a named generator difficulty.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyExpert DifficultyPreset = "expert"
)

// Presets lists the presets in increasing difficulty.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyExpert}
}

// ParsePreset returns the preset with the given name.
func ParsePreset(name string) (DifficultyPreset, bool) {
	for _, p := range Presets() {
		if string(p) == name {
			return p, true
		}
	}
	return "", false
}

// ApplyPreset modifies the generator config for a difficulty preset.
// MaxAttempts is only ever raised; 0 (unbounded) is kept.
func ApplyPreset(cfg *GeneratorConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Size, cfg.MinMoves, cfg.Density = 4, 2, 0.20
		cfg.MaxAttempts = maxI(cfg.MaxAttempts, 200)
	case DifficultyNormal:
		cfg.Size, cfg.MinMoves, cfg.Density = 6, 4, 0.25
		cfg.MaxAttempts = maxI(cfg.MaxAttempts, 500)
	case DifficultyHard:
		cfg.Size, cfg.MinMoves, cfg.Density = 7, 6, 0.30
		cfg.MaxAttempts = maxI(cfg.MaxAttempts, 2000)
	case DifficultyExpert:
		cfg.Size, cfg.MinMoves, cfg.Density = 8, 8, 0.30
		cfg.MaxAttempts = maxI(cfg.MaxAttempts, 5000)
	}
}

func maxI(a, b int) int {
	if a == 0 {
		return 0
	}
	if a > b {
		return a
	}
	return b
}
