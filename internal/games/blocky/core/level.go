package core

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Level is a playable puzzle: an id, the initial layout and the player's
// start position. A Level is immutable once built, apart from its optimal
// solution, which is computed on first request and cached for its lifetime.
type Level struct {
	id     int
	layout [][]Piece
	start  Pos
	solver *Solver

	once     sync.Once
	solution []Dir
	solveErr error
}

// LevelOption configures a Level.
type LevelOption func(*Level)

// WithSolver sets the solver used to compute the level's solution.
func WithSolver(s *Solver) LevelOption {
	return func(l *Level) {
		l.solver = s
	}
}

// NewLevel validates and builds a level from a layout of pieces.
// The layout is copied; later changes to it do not affect the level.
func NewLevel(id int, layout [][]Piece, start Pos, opts ...LevelOption) (*Level, error) {
	if id < 1 {
		return nil, levelErr("BAD_ID", "level id must be > 0, got %d", id)
	}
	if len(layout) == 0 {
		return nil, levelErr("EMPTY_LAYOUT", "level %d has no rows", id)
	}

	cells := copyLayout(layout)
	players := 0
	for r, row := range cells {
		for c := range row {
			p := &row[c]
			if p.Kind == KindNone || p.Kind.IsMoving() {
				return nil, levelErr("BAD_PIECE", "level %d: %s is not a board piece at %v", id, p.Kind, P(r, c))
			}
			p.Pos = P(r, c)
			if !p.Occupied() {
				continue
			}
			if !p.Kind.IsContainer() || !p.Occupant.Kind.IsMoving() {
				return nil, levelErr("BAD_OCCUPANT", "level %d: %s cannot hold %s at %v",
					id, p.Kind, p.Occupant.Kind, p.Pos)
			}
			p.Occupant.Pos = p.Pos
			if p.Occupant.Kind == KindPlayer {
				players++
			}
		}
	}
	if players != 1 {
		return nil, levelErr("PLAYER_COUNT", "level %d must have exactly one player, found %d", id, players)
	}

	if start.Row < 0 || start.Row >= len(cells) || start.Col < 0 || start.Col >= len(cells[start.Row]) {
		return nil, levelErr("START_OFF_BOARD", "level %d: player position %v is not on the board", id, start)
	}
	if cells[start.Row][start.Col].Occupant.Kind != KindPlayer {
		return nil, levelErr("START_NOT_PLAYER", "level %d: player position %v is incorrect", id, start)
	}

	l := &Level{
		id:     id,
		layout: cells,
		start:  start,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// ID returns the level id.
func (l *Level) ID() int {
	return l.id
}

// Start returns the player's initial position.
func (l *Level) Start() Pos {
	return l.start
}

// Layout returns a copy of the initial layout.
func (l *Level) Layout() [][]Piece {
	return copyLayout(l.layout)
}

// Width returns the length of the longest row.
func (l *Level) Width() int {
	return (&Board{Rows: l.layout}).Width()
}

// Height returns the number of rows.
func (l *Level) Height() int {
	return len(l.layout)
}

// Rows returns the initial layout as tag rows.
func (l *Level) Rows() []string {
	return TagRows(l.layout)
}

// String returns the initial layout as tag rows.
func (l *Level) String() string {
	return strings.Join(l.Rows(), "\n")
}

// Solution returns an optimal move sequence for the level. The first call
// runs the solver; every later call, from any goroutine, returns the same
// cached answer.
func (l *Level) Solution() ([]Dir, error) {
	l.once.Do(func() {
		s := l.solver
		if s == nil {
			s = NewSolver()
		}
		res, err := s.Solve(context.Background(), l)
		if err != nil {
			l.solveErr = fmt.Errorf("level %d: %w", l.id, err)
			return
		}
		l.solution = res.Moves
	})

	if l.solveErr != nil {
		return nil, l.solveErr
	}
	return append([]Dir(nil), l.solution...), nil
}

// Moves returns the number of moves in the optimal solution.
func (l *Level) Moves() (int, error) {
	sol, err := l.Solution()
	if err != nil {
		return 0, err
	}
	return len(sol), nil
}

// Cell is a piece-type tag for building levels. Occupant pre-seeds a
// moving piece inside a container cell.
type Cell struct {
	Kind     Kind
	Occupant Kind
}

// BuildLevel builds a level from a grid of tags. Pieces are named after
// their tag and a running count per tag, e.g. "S1", "S2", "P1". A bare
// Player or Yellow tag is placed inside an Empty cell.
func BuildLevel(id int, grid [][]Cell, start Pos, opts ...LevelOption) (*Level, error) {
	if len(grid) == 0 {
		return nil, levelErr("EMPTY_LAYOUT", "level %d has no rows", id)
	}

	counts := make(map[rune]int)
	name := func(k Kind) string {
		r := k.Rune()
		counts[r]++
		return fmt.Sprintf("%c%d", r, counts[r])
	}

	layout := make([][]Piece, len(grid))
	for r, row := range grid {
		layout[r] = make([]Piece, len(row))
		for c, cell := range row {
			pos := P(r, c)
			kind, occupant := cell.Kind, cell.Occupant
			if kind.IsMoving() {
				kind, occupant = KindEmpty, kind
			}

			p := NewPiece(kind, name(kind), pos)
			if occupant != KindNone {
				p.Occupant = Mover{Kind: occupant, Name: name(occupant), Pos: pos}
			}
			layout[r][c] = p
		}
	}

	return NewLevel(id, layout, start, opts...)
}

// TagGrid converts rows of tag characters (X - W S O C R B P Y) into cells.
func TagGrid(rows ...string) ([][]Cell, error) {
	grid := make([][]Cell, len(rows))
	for r, row := range rows {
		grid[r] = make([]Cell, 0, len(row))
		for c, ch := range row {
			kind, ok := KindFromRune(ch)
			if !ok {
				return nil, levelErr("BAD_TAG", "char %q at %v cannot be parsed as a piece", ch, P(r, c))
			}
			grid[r] = append(grid[r], Cell{Kind: kind})
		}
	}
	return grid, nil
}

// FindPlayer returns the position of the player tag in a grid.
func FindPlayer(grid [][]Cell) (Pos, bool) {
	for r, row := range grid {
		for c, cell := range row {
			if cell.Kind == KindPlayer || cell.Occupant == KindPlayer {
				return P(r, c), true
			}
		}
	}
	return Pos{}, false
}

// LevelFromRows builds a level from tag rows, locating the player itself.
func LevelFromRows(id int, rows []string, opts ...LevelOption) (*Level, error) {
	if len(rows) == 0 {
		return nil, levelErr("EMPTY_LAYOUT", "level %d has no rows", id)
	}
	grid, err := TagGrid(rows...)
	if err != nil {
		return nil, err
	}
	start, ok := FindPlayer(grid)
	if !ok {
		return nil, levelErr("PLAYER_COUNT", "level %d must have exactly one player, found 0", id)
	}
	return BuildLevel(id, grid, start, opts...)
}
