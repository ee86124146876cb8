package levels

import (
	"errors"
	"testing"

	"github.com/vovakirdan/blocky/internal/games/blocky/core"
)

func testSet(t *testing.T) *Set {
	t.Helper()
	s, err := NewBuilder("test", "Test").
		Add("one", "XXXX", "XP-W", "XXXX").
		Add("two", "XXXXX", "XP--W", "XXXXX").
		Add("", "XXXXXX", "XP---W", "XXXXXX").
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return s
}

func TestSetNavigation(t *testing.T) {
	s := testSet(t)

	if s.Len() != 3 || s.Index() != 1 || s.Current().ID() != 1 {
		t.Fatalf("expected to start on level 1 of 3, got %d of %d", s.Index(), s.Len())
	}

	if _, err := s.Prev(); !errors.Is(err, ErrFirstLevel) {
		t.Errorf("expected ErrFirstLevel, got %v", err)
	}

	lvl, err := s.Next()
	if err != nil || lvl.ID() != 2 {
		t.Fatalf("Next: got %v, %v", lvl, err)
	}
	if lvl, _ := s.Next(); lvl.ID() != 3 {
		t.Errorf("expected level 3, got %d", lvl.ID())
	}
	if _, err := s.Next(); !errors.Is(err, ErrLastLevel) {
		t.Errorf("expected ErrLastLevel, got %v", err)
	}
	if s.Index() != 3 {
		t.Errorf("failed Next must not move the cursor, at %d", s.Index())
	}

	if lvl, _ := s.Prev(); lvl.ID() != 2 {
		t.Errorf("expected level 2, got %d", lvl.ID())
	}

	if _, err := s.GoTo(4); !errors.Is(err, ErrNoSuchLevel) {
		t.Errorf("expected ErrNoSuchLevel, got %v", err)
	}
	if _, err := s.GoTo(0); !errors.Is(err, ErrNoSuchLevel) {
		t.Errorf("expected ErrNoSuchLevel, got %v", err)
	}

	if lvl := s.Restart(); lvl.ID() != 1 || s.Index() != 1 {
		t.Errorf("Restart should return to level 1, at %d", s.Index())
	}
}

func TestSetLevelNames(t *testing.T) {
	s := testSet(t)

	if got := s.LevelName(1); got != "one" {
		t.Errorf("LevelName(1) = %q", got)
	}
	if got := s.LevelName(3); got != "level 3" {
		t.Errorf("LevelName(3) = %q", got)
	}
	if got := s.LevelName(9); got != "level 9" {
		t.Errorf("LevelName(9) = %q", got)
	}
}

func TestBuilderReportsBadLevel(t *testing.T) {
	_, err := NewBuilder("broken", "Broken").
		Add("fine", "XXXX", "XP-W", "XXXX").
		Add("no player", "XXXX", "X--W", "XXXX").
		Build()

	var lerr core.LevelError
	if !errors.As(err, &lerr) || lerr.Code != "PLAYER_COUNT" {
		t.Errorf("expected PLAYER_COUNT, got %v", err)
	}
}

func TestEmptySet(t *testing.T) {
	if _, err := NewBuilder("empty", "Empty").Build(); !errors.Is(err, ErrEmptySet) {
		t.Errorf("expected ErrEmptySet, got %v", err)
	}
}

func TestBuilderAppliesOptions(t *testing.T) {
	solver := core.NewSolver(core.WithWorkers(2))
	s, err := NewBuilder("opts", "Opts", core.WithSolver(solver)).
		Add("one", "XXXX", "XP-W", "XXXX").
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	moves, err := s.Current().Solution()
	if err != nil || len(moves) != 1 {
		t.Errorf("expected a one-move solution, got %v, %v", moves, err)
	}
}

func TestBuiltinSetsAreSolvable(t *testing.T) {
	tests := []struct {
		name  string
		build func(...core.LevelOption) (*Set, error)
		want  []int
	}{
		{"tutorial", Tutorial, []int{1, 2, 2, 1, 2, 2, 2}},
		{"classic", Classic, []int{2, 3, 3, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := tt.build()
			if err != nil {
				t.Fatalf("build failed: %v", err)
			}
			if s.Len() != len(tt.want) {
				t.Fatalf("expected %d levels, got %d", len(tt.want), s.Len())
			}

			for i, want := range tt.want {
				lvl, _ := s.Level(i + 1)
				moves, err := lvl.Solution()
				if err != nil {
					t.Errorf("%s: %v", s.LevelName(i+1), err)
					continue
				}
				if len(moves) != want {
					t.Errorf("%s: expected %d moves, got %s", s.LevelName(i+1), want, core.FormatMoves(moves))
				}

				m := core.NewModel()
				if err := m.LoadLevel(lvl); err != nil {
					t.Fatalf("LoadLevel failed: %v", err)
				}
				for _, d := range moves {
					if _, err := m.Move(d); err != nil {
						t.Fatalf("%s: replay failed: %v", s.LevelName(i+1), err)
					}
				}
				if m.Outcome() != core.OutcomeWon {
					t.Errorf("%s: replay ended %s", s.LevelName(i+1), m.Outcome())
				}
			}
		})
	}
}
