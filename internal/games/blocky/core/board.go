package core

import (
	"fmt"
	"strings"
)

// Board is the grid of pieces, addressed by Pos. Rows may differ in length.
type Board struct {
	Rows [][]Piece
}

// NewBoard creates a board from a layout, copying every row.
func NewBoard(layout [][]Piece) *Board {
	return &Board{Rows: copyLayout(layout)}
}

// InBounds returns true if the position addresses a cell.
func (b *Board) InBounds(p Pos) bool {
	return p.Row >= 0 && p.Row < len(b.Rows) && p.Col >= 0 && p.Col < len(b.Rows[p.Row])
}

// At returns a pointer to the cell at p so that piece reactions can mutate it.
func (b *Board) At(p Pos) (*Piece, error) {
	if !b.InBounds(p) {
		return nil, fmt.Errorf("%w: %v", ErrOffBoard, p)
	}
	return &b.Rows[p.Row][p.Col], nil
}

// Set replaces the cell at p.
func (b *Board) Set(p Pos, piece Piece) error {
	if !b.InBounds(p) {
		return fmt.Errorf("%w: %v", ErrOffBoard, p)
	}
	b.Rows[p.Row][p.Col] = piece
	return nil
}

// Width returns the length of the longest row.
func (b *Board) Width() int {
	width := 0
	for _, row := range b.Rows {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}

// Height returns the number of rows.
func (b *Board) Height() int {
	return len(b.Rows)
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	return &Board{Rows: copyLayout(b.Rows)}
}

// Layout returns a copy of the cells.
func (b *Board) Layout() [][]Piece {
	return copyLayout(b.Rows)
}

// Key returns the canonical configuration of the board: the identifiers of
// every non-static cell in row-major order. Two boards built from the same
// level have equal keys exactly when their mutable content matches.
func (b *Board) Key() string {
	var sb strings.Builder
	for _, row := range b.Rows {
		for _, p := range row {
			sb.WriteString(p.Identifier())
		}
		sb.WriteByte('|')
	}
	return sb.String()
}

// Find returns the position of the first mover of the given kind.
func (b *Board) Find(kind Kind) (Pos, bool) {
	for _, row := range b.Rows {
		for _, p := range row {
			if p.Occupant.Kind == kind {
				return p.Pos, true
			}
		}
	}
	return Pos{}, false
}

// Count returns how many cells render as the given kind.
func (b *Board) Count(kind Kind) int {
	n := 0
	for _, row := range b.Rows {
		for _, p := range row {
			if p.Render().Kind == kind {
				n++
			}
		}
	}
	return n
}

// String renders the board as tag rows, one line per row.
func (b *Board) String() string {
	return strings.Join(TagRows(b.Rows), "\n")
}

// TagRows returns the render identity of each cell as tag characters.
func TagRows(layout [][]Piece) []string {
	rows := make([]string, len(layout))
	for i, row := range layout {
		var sb strings.Builder
		for _, p := range row {
			sb.WriteRune(p.Render().Kind.Rune())
		}
		rows[i] = sb.String()
	}
	return rows
}

func copyLayout(layout [][]Piece) [][]Piece {
	out := make([][]Piece, len(layout))
	for i, row := range layout {
		out[i] = make([]Piece, len(row))
		copy(out[i], row)
	}
	return out
}
