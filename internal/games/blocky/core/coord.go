package core

import "fmt"

// Pos represents a cell on the board.
// Row increases downward, Col increases to the right.
// Pos is a value type, so handing one out never aliases board state.
type Pos struct {
	Row int
	Col int
}

// P is a convenience constructor for Pos.
func P(row, col int) Pos {
	return Pos{Row: row, Col: col}
}

// String returns a string representation of the position.
func (p Pos) String() string {
	return fmt.Sprintf("(row: %d, col: %d)", p.Row, p.Col)
}

// Add returns a new Pos offset by (dRow, dCol).
func (p Pos) Add(dRow, dCol int) Pos {
	return Pos{Row: p.Row + dRow, Col: p.Col + dCol}
}

// Step returns the neighbouring position in the given direction.
func (p Pos) Step(d Dir) Pos {
	dRow, dCol := d.Delta()
	return p.Add(dRow, dCol)
}

// Valid reports whether both coordinates are non-negative.
func (p Pos) Valid() bool {
	return p.Row >= 0 && p.Col >= 0
}
