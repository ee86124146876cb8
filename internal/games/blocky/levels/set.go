// Package levels provides ordered level sets for Blocky and the built-in
// sets shipped with the game.
// This package depends on core but core does not depend on levels.
package levels

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/blocky/internal/games/blocky/core"
)

var (
	ErrEmptySet    = errors.New("levels: a set needs at least one level")
	ErrNoSuchLevel = errors.New("levels: level does not exist in this set")
	ErrLastLevel   = errors.New("levels: cannot advance past the last level")
	ErrFirstLevel  = errors.New("levels: cannot go back from the first level")
)

// Set is an ordered collection of levels with a cursor on the current one.
// Levels are addressed from 1. A Set is not safe for concurrent navigation;
// the levels it hands out are.
type Set struct {
	name   string
	title  string
	levels []*core.Level
	names  []string
	cur    int
}

// NewSet creates a set positioned on its first level. names may be nil or
// hold one display name per level.
func NewSet(name, title string, lvls []*core.Level, names []string) (*Set, error) {
	if len(lvls) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptySet, name)
	}
	if names != nil && len(names) != len(lvls) {
		return nil, fmt.Errorf("levels: set %s has %d levels but %d names", name, len(lvls), len(names))
	}

	s := &Set{
		name:   name,
		title:  title,
		levels: append([]*core.Level(nil), lvls...),
		names:  make([]string, len(lvls)),
	}
	copy(s.names, names)
	return s, nil
}

// Name returns the set identifier.
func (s *Set) Name() string {
	return s.name
}

// Title returns the display title.
func (s *Set) Title() string {
	return s.title
}

// Len returns the number of levels.
func (s *Set) Len() int {
	return len(s.levels)
}

// Index returns the 1-based index of the current level.
func (s *Set) Index() int {
	return s.cur + 1
}

// Current returns the current level.
func (s *Set) Current() *core.Level {
	return s.levels[s.cur]
}

// Level returns the level at the given 1-based index without moving the cursor.
func (s *Set) Level(i int) (*core.Level, error) {
	if i < 1 || i > len(s.levels) {
		return nil, fmt.Errorf("%w: level %d of %d", ErrNoSuchLevel, i, len(s.levels))
	}
	return s.levels[i-1], nil
}

// LevelName returns the display name of the level at the given 1-based
// index, or "level <i>" when it has none.
func (s *Set) LevelName(i int) string {
	if i >= 1 && i <= len(s.names) && s.names[i-1] != "" {
		return s.names[i-1]
	}
	return fmt.Sprintf("level %d", i)
}

// Levels returns every level in order.
func (s *Set) Levels() []*core.Level {
	return append([]*core.Level(nil), s.levels...)
}

// GoTo moves the cursor to the given 1-based index and returns that level.
// The cursor does not move on error.
func (s *Set) GoTo(i int) (*core.Level, error) {
	lvl, err := s.Level(i)
	if err != nil {
		return nil, err
	}
	s.cur = i - 1
	return lvl, nil
}

// Next advances to the following level.
func (s *Set) Next() (*core.Level, error) {
	if s.cur+1 >= len(s.levels) {
		return nil, ErrLastLevel
	}
	return s.GoTo(s.cur + 2)
}

// Prev goes back to the previous level.
func (s *Set) Prev() (*core.Level, error) {
	if s.cur == 0 {
		return nil, ErrFirstLevel
	}
	return s.GoTo(s.cur)
}

// Restart moves the cursor back to the first level.
func (s *Set) Restart() *core.Level {
	s.cur = 0
	return s.levels[0]
}

// Builder assembles a Set from tag rows, numbering levels from 1 in the
// order they are added.
type Builder struct {
	name  string
	title string
	opts  []core.LevelOption
	defs  []levelDef
}

type levelDef struct {
	name string
	rows []string
}

// NewBuilder creates a builder for a set. Options are applied to every level.
func NewBuilder(name, title string, opts ...core.LevelOption) *Builder {
	return &Builder{name: name, title: title, opts: opts}
}

// Add appends a level given as tag rows (X - W S O C R B P Y).
func (b *Builder) Add(name string, rows ...string) *Builder {
	b.defs = append(b.defs, levelDef{name: name, rows: rows})
	return b
}

// Build validates every level and returns the set.
func (b *Builder) Build() (*Set, error) {
	lvls := make([]*core.Level, 0, len(b.defs))
	names := make([]string, 0, len(b.defs))
	for i, def := range b.defs {
		lvl, err := core.LevelFromRows(i+1, def.rows, b.opts...)
		if err != nil {
			return nil, fmt.Errorf("levels: set %s level %d (%s): %w", b.name, i+1, def.name, err)
		}
		lvls = append(lvls, lvl)
		names = append(names, def.name)
	}
	return NewSet(b.name, b.title, lvls, names)
}
