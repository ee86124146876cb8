package core_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/blocky/internal/games/blocky/core"
)

func mustLevel(t *testing.T, rows ...string) *core.Level {
	t.Helper()
	lvl, err := core.LevelFromRows(1, rows)
	if err != nil {
		t.Fatalf("LevelFromRows failed: %v", err)
	}
	return lvl
}

func mustModel(t *testing.T, lvl *core.Level, opts ...core.Option) *core.Model {
	t.Helper()
	m := core.NewModel(opts...)
	if err := m.LoadLevel(lvl); err != nil {
		t.Fatalf("LoadLevel failed: %v", err)
	}
	return m
}

func mustMove(t *testing.T, m *core.Model, d core.Dir) bool {
	t.Helper()
	changed, err := m.Move(d)
	if err != nil {
		t.Fatalf("Move(%s) failed: %v", d, err)
	}
	return changed
}

func movesMade(t *testing.T, m *core.Model) int {
	t.Helper()
	n, err := m.MovesMade()
	if err != nil {
		t.Fatalf("MovesMade failed: %v", err)
	}
	return n
}

func cellAt(t *testing.T, m *core.Model, p core.Pos) core.Piece {
	t.Helper()
	layout, err := m.Layout()
	if err != nil {
		t.Fatalf("Layout failed: %v", err)
	}
	return layout[p.Row][p.Col]
}

func TestMoveAgainstWallIsRejected(t *testing.T) {
	m := mustModel(t, mustLevel(t,
		"XXX",
		"XPX",
		"XXX",
	))
	before, _ := m.Key()

	for _, d := range core.AllDirs() {
		if mustMove(t, m, d) {
			t.Errorf("move %s: expected no change", d)
		}
	}

	if n := movesMade(t, m); n != 0 {
		t.Errorf("expected move counter 0, got %d", n)
	}
	after, _ := m.Key()
	if before != after {
		t.Errorf("board changed: %q -> %q", before, after)
	}
}

func TestSlideStopsBeforeObstacle(t *testing.T) {
	m := mustModel(t, mustLevel(t,
		"XXXXXX",
		"XP--SX",
		"XXXXXX",
	))

	if !mustMove(t, m, core.DirRight) {
		t.Fatal("expected move to change the board")
	}

	pos, ok := m.PlayerPos()
	if !ok || pos != core.P(1, 3) {
		t.Errorf("expected player at (1,3), got %v (on board: %v)", pos, ok)
	}
	if got := cellAt(t, m, core.P(1, 3)).Render().Kind; got != core.KindPlayer {
		t.Errorf("cell (1,3) renders as %s, want player", got)
	}
	if n := movesMade(t, m); n != 1 {
		t.Errorf("expected move counter 1, got %d", n)
	}

	events := m.Events()
	if len(events) != 1 || events[0].Kind != core.EventSlide {
		t.Fatalf("expected one slide event, got %+v", events)
	}
	if events[0].From != core.P(1, 1) || events[0].To != core.P(1, 3) {
		t.Errorf("slide event %v -> %v, want (1,1) -> (1,3)", events[0].From, events[0].To)
	}
}

func TestWinNotifiesListener(t *testing.T) {
	wins, fatals := 0, 0
	m := mustModel(t, mustLevel(t,
		"XXXXX",
		"XP--X",
		"X--WX",
		"XXXXX",
	), core.WithListener(core.ListenerFuncs{
		Win:   func() { wins++ },
		Fatal: func() { fatals++ },
	}))

	mustMove(t, m, core.DirRight)
	if m.Outcome() != core.OutcomeNone {
		t.Fatalf("expected no outcome after first move, got %s", m.Outcome())
	}
	mustMove(t, m, core.DirDown)

	if m.Outcome() != core.OutcomeWon {
		t.Errorf("expected win, got %s", m.Outcome())
	}
	if wins != 1 || fatals != 0 {
		t.Errorf("expected 1 win and 0 fatal notifications, got %d and %d", wins, fatals)
	}
	if n := movesMade(t, m); n != 2 {
		t.Errorf("winning move should count: expected 2, got %d", n)
	}

	if _, err := m.Move(core.DirLeft); !errors.Is(err, core.ErrLevelOver) {
		t.Errorf("expected ErrLevelOver after win, got %v", err)
	}
}

func TestRedBlockIsFatal(t *testing.T) {
	fatals := 0
	m := mustModel(t, mustLevel(t,
		"XXXX",
		"XPRX",
		"XXXX",
	), core.WithListener(core.ListenerFuncs{Fatal: func() { fatals++ }}))

	if !mustMove(t, m, core.DirRight) {
		t.Fatal("expected fatal move to change the board")
	}
	if m.Outcome() != core.OutcomeFatal {
		t.Errorf("expected fatal outcome, got %s", m.Outcome())
	}
	if fatals != 1 {
		t.Errorf("expected one fatal notification, got %d", fatals)
	}
	if _, ok := m.PlayerPos(); ok {
		t.Error("player should no longer be on the board")
	}

	// The level restarts rather than completing.
	if err := m.Restart(); err != nil {
		t.Fatalf("Restart failed: %v", err)
	}
	pos, ok := m.PlayerPos()
	if !ok || pos != core.P(1, 1) {
		t.Errorf("expected player back at (1,1), got %v", pos)
	}
	if m.Outcome() != core.OutcomeNone {
		t.Errorf("expected outcome reset, got %s", m.Outcome())
	}
	if n := movesMade(t, m); n != 0 {
		t.Errorf("expected move counter reset, got %d", n)
	}
}

func TestPopRestoredOnRestart(t *testing.T) {
	m := mustModel(t, mustLevel(t,
		"XXXXX",
		"XPO-X",
		"XXXXX",
	))
	pop := core.P(1, 2)

	for round := 0; round < 2; round++ {
		if got := cellAt(t, m, pop); got.Kind != core.KindPop || got.Spent {
			t.Fatalf("round %d: expected fresh pop, got %+v", round, got)
		}

		mustMove(t, m, core.DirRight)

		pos, _ := m.PlayerPos()
		if pos != core.P(1, 3) {
			t.Errorf("round %d: expected player at (1,3), got %v", round, pos)
		}
		if got := cellAt(t, m, pop).Render().Kind; got != core.KindSolid {
			t.Errorf("round %d: pop should render as solid, got %s", round, got)
		}

		// The pop is now solid: sliding back stops at it.
		if mustMove(t, m, core.DirLeft) {
			t.Errorf("round %d: expected popped cell to block", round)
		}

		if err := m.Restart(); err != nil {
			t.Fatalf("Restart failed: %v", err)
		}
	}
}

func TestCrackedOpensWhenHit(t *testing.T) {
	m := mustModel(t, mustLevel(t,
		"XXXXXXX",
		"XP-C--W",
		"XXXXXXX",
	))

	if !mustMove(t, m, core.DirRight) {
		t.Fatal("expected hitting a cracked block to count as a change")
	}
	pos, _ := m.PlayerPos()
	if pos != core.P(1, 2) {
		t.Errorf("expected player to stop at (1,2), got %v", pos)
	}

	var rendered bool
	for _, ev := range m.Events() {
		if ev.Kind == core.EventRender && ev.From == core.P(1, 3) && ev.As == core.KindEmpty {
			rendered = true
		}
	}
	if !rendered {
		t.Errorf("expected render event for cracked block, got %+v", m.Events())
	}

	mustMove(t, m, core.DirRight)
	if m.Outcome() != core.OutcomeWon {
		t.Errorf("expected win through opened block, got %s", m.Outcome())
	}
}

func TestPushYellowIntoGoal(t *testing.T) {
	m := mustModel(t, mustLevel(t,
		"XXXXXX",
		"XP-Y-W",
		"XXXXXX",
	))

	mustMove(t, m, core.DirRight)

	board, err := m.Board()
	if err != nil {
		t.Fatalf("Board failed: %v", err)
	}
	if _, ok := board.Find(core.KindYellow); ok {
		t.Error("yellow block should have been removed at the goal")
	}
	if m.Outcome() != core.OutcomeNone {
		t.Errorf("yellow reaching the goal must not win, got %s", m.Outcome())
	}

	var deleted bool
	for _, ev := range m.Events() {
		if ev.Kind == core.EventDelete && ev.Piece == core.KindYellow {
			deleted = true
		}
	}
	if !deleted {
		t.Errorf("expected delete event, got %+v", m.Events())
	}
}

func TestBlueReflects(t *testing.T) {
	m := mustModel(t, mustLevel(t,
		"XXXXXXX",
		"X--P-BX",
		"XXXXXXX",
	))

	mustMove(t, m, core.DirRight)

	pos, _ := m.PlayerPos()
	if pos != core.P(1, 1) {
		t.Errorf("expected player reflected to (1,1), got %v", pos)
	}
	if n := movesMade(t, m); n != 1 {
		t.Errorf("a reflected slide is one move, got %d", n)
	}
}

func TestYellowReflectsIntoPlayer(t *testing.T) {
	m := mustModel(t, mustLevel(t,
		"XXXXXXXX",
		"XP-Y-B-X",
		"XXXXXXXX",
	))

	if !mustMove(t, m, core.DirRight) {
		t.Fatal("expected chained move to change the board")
	}

	pos, _ := m.PlayerPos()
	if pos != core.P(1, 1) {
		t.Errorf("expected player pushed back to (1,1), got %v", pos)
	}
	board, _ := m.Board()
	if y, ok := board.Find(core.KindYellow); !ok || y != core.P(1, 3) {
		t.Errorf("expected yellow back at (1,3), got %v", y)
	}
}

func TestReflectorPingPongIsBounded(t *testing.T) {
	m := mustModel(t, mustLevel(t,
		"XXXXXX",
		"XBP-BX",
		"XXXXXX",
	), core.WithChainLimit(32))
	before, _ := m.Key()

	_, err := m.Move(core.DirRight)
	if !errors.Is(err, core.ErrChainLimit) {
		t.Fatalf("expected ErrChainLimit, got %v", err)
	}

	after, _ := m.Key()
	if before != after {
		t.Errorf("failed move must leave the board untouched: %q -> %q", before, after)
	}
	if n := movesMade(t, m); n != 0 {
		t.Errorf("failed move must not count, got %d", n)
	}
	if pos, ok := m.PlayerPos(); !ok || pos != core.P(1, 2) {
		t.Errorf("expected player still at (1,2), got %v", pos)
	}
}

func TestMovePieceAtDoesNotCount(t *testing.T) {
	m := mustModel(t, mustLevel(t,
		"XXXXXX",
		"XP-Y-W",
		"XXXXXX",
	))

	changed, err := m.MovePieceAt(core.P(1, 3), core.DirRight)
	if err != nil {
		t.Fatalf("MovePieceAt failed: %v", err)
	}
	if !changed {
		t.Error("expected yellow to move")
	}
	if n := movesMade(t, m); n != 0 {
		t.Errorf("moving a piece directly must not count, got %d", n)
	}

	if _, err := m.MovePieceAt(core.P(1, 2), core.DirRight); !errors.Is(err, core.ErrNotMoving) {
		t.Errorf("expected ErrNotMoving for an empty cell, got %v", err)
	}
}

func TestOperationsBeforeLoad(t *testing.T) {
	m := core.NewModel()

	if _, err := m.Move(core.DirUp); !errors.Is(err, core.ErrNoLevel) {
		t.Errorf("Move: expected ErrNoLevel, got %v", err)
	}
	if _, err := m.Layout(); !errors.Is(err, core.ErrNoLevel) {
		t.Errorf("Layout: expected ErrNoLevel, got %v", err)
	}
	if _, err := m.MovesMade(); !errors.Is(err, core.ErrNoLevel) {
		t.Errorf("MovesMade: expected ErrNoLevel, got %v", err)
	}
	if err := m.Restart(); !errors.Is(err, core.ErrNoLevel) {
		t.Errorf("Restart: expected ErrNoLevel, got %v", err)
	}
	if err := m.LoadLevel(nil); !errors.Is(err, core.ErrNoLevel) {
		t.Errorf("LoadLevel(nil): expected ErrNoLevel, got %v", err)
	}
}

func TestReplayIsDeterministic(t *testing.T) {
	lvl := mustLevel(t,
		"XXXXXXXX",
		"XP-Y-B-X",
		"X-O-C--X",
		"X--S-Y-W",
		"XXXXXXXX",
	)
	moves := []core.Dir{core.DirRight, core.DirDown, core.DirRight, core.DirUp, core.DirLeft, core.DirDown}

	play := func() string {
		m := mustModel(t, lvl)
		for _, d := range moves {
			if _, err := m.Move(d); err != nil {
				if errors.Is(err, core.ErrLevelOver) {
					break
				}
				t.Fatalf("Move(%s) failed: %v", d, err)
			}
		}
		b, _ := m.Board()
		return b.String()
	}

	first, second := play(), play()
	if first != second {
		t.Errorf("replays differ:\n%s\n---\n%s", first, second)
	}
}

func TestRestartReplaysWinningSequence(t *testing.T) {
	lvl := mustLevel(t,
		"XXXXXXX",
		"XP-C--X",
		"XSXXX-X",
		"X--S--W",
		"XXXXXXX",
	)
	m := mustModel(t, lvl)
	moves, err := core.ParseMoves("RRDR")
	if err != nil {
		t.Fatalf("ParseMoves failed: %v", err)
	}

	for round := 0; round < 2; round++ {
		for _, d := range moves {
			mustMove(t, m, d)
		}
		if m.Outcome() != core.OutcomeWon {
			t.Fatalf("round %d: expected win, got %s", round, m.Outcome())
		}
		if n := movesMade(t, m); n != len(moves) {
			t.Errorf("round %d: expected %d moves, got %d", round, len(moves), n)
		}
		if err := m.Restart(); err != nil {
			t.Fatalf("Restart failed: %v", err)
		}
	}
}

func TestFoundOptimalSolution(t *testing.T) {
	lvl := mustLevel(t,
		"XXXXX",
		"XP--X",
		"X--WX",
		"XXXXX",
	)

	tests := []struct {
		name  string
		moves string
		want  bool
	}{
		{"optimal", "RD", true},
		{"other optimal", "DR", true},
		{"detour", "RLRD", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mustModel(t, lvl)
			moves, _ := core.ParseMoves(tt.moves)
			for _, d := range moves {
				mustMove(t, m, d)
			}
			if m.Outcome() != core.OutcomeWon {
				t.Fatalf("expected win, got %s", m.Outcome())
			}
			got, err := m.FoundOptimalSolution()
			if err != nil {
				t.Fatalf("FoundOptimalSolution failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("FoundOptimalSolution() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCloneIsIndependent(t *testing.T) {
	notified := 0
	m := mustModel(t, mustLevel(t,
		"XXXXX",
		"XP--W",
		"XXXXX",
	), core.WithListener(core.ListenerFuncs{Win: func() { notified++ }}))

	c := m.Clone()
	mustMove(t, c, core.DirRight)

	if c.Outcome() != core.OutcomeWon {
		t.Errorf("clone should have won, got %s", c.Outcome())
	}
	if m.Outcome() != core.OutcomeNone {
		t.Errorf("original must be untouched, got %s", m.Outcome())
	}
	if n := movesMade(t, m); n != 0 {
		t.Errorf("original move counter changed to %d", n)
	}
	if notified != 0 {
		t.Error("clone must not notify the original's listener")
	}
}
