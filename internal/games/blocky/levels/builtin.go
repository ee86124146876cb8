package levels

import (
	"github.com/vovakirdan/blocky/internal/games/blocky/core"
	"github.com/vovakirdan/blocky/internal/registry"
)

func init() {
	registry.Register("tutorial", func(opts ...core.LevelOption) (registry.LevelSet, error) {
		return Tutorial(opts...)
	})
	registry.Register("classic", func(opts ...core.LevelOption) (registry.LevelSet, error) {
		return Classic(opts...)
	})
}

// Tutorial returns the introductory set: one mechanic per level.
func Tutorial(opts ...core.LevelOption) (*Set, error) {
	return NewBuilder("tutorial", "Tutorial", opts...).
		Add("Slide",
			"XXXXX",
			"XP--W",
			"XXXXX",
		).
		Add("Turn",
			"XXXXX",
			"XP--X",
			"X--WX",
			"XXXXX",
		).
		Add("Push",
			"XXXXXX",
			"XP-Y-W",
			"XXXXXX",
		).
		Add("Bounce",
			"XXXXXXX",
			"XW-P-BX",
			"XXXXXXX",
		).
		Add("Crack",
			"XXXXXXX",
			"XP-C--W",
			"XXXXXXX",
		).
		Add("Pop",
			"XXXXXX",
			"XPO--X",
			"XXXXWX",
			"XXXXXX",
		).
		Add("Red",
			"XXXXXX",
			"XP--RX",
			"X-XXXX",
			"X---WX",
			"XXXXXX",
		).
		Build()
}

// Classic returns the main set.
func Classic(opts ...core.LevelOption) (*Set, error) {
	return NewBuilder("classic", "Classic", opts...).
		Add("Clear the Way",
			"XXXXXXX",
			"XP---YW",
			"X-XXXXX",
			"XXXXXXX",
		).
		Add("Detour",
			"XXXXXXX",
			"XP---SX",
			"X-XX--X",
			"X--S--X",
			"XXX---W",
			"XXXXXXX",
		).
		Add("One Way",
			"XXXXXXX",
			"X--O-PX",
			"X-XXXXX",
			"W-----X",
			"XXXXXXX",
		).
		Add("Long Way Round",
			"XXXXXXXX",
			"X-P--C-X",
			"X-XXX-XX",
			"X-B---RX",
			"X-XXXXXX",
			"X-----WX",
			"XXXXXXXX",
		).
		Add("Breakthrough",
			"XXXXXXX",
			"XP-C--X",
			"XSXXX-X",
			"X--S--W",
			"XXXXXXX",
		).
		Build()
}
