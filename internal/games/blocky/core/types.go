// Package core provides the rules engine for the Blocky sliding-block puzzle:
// pieces, the commands their collisions produce, the simulator that resolves
// a slide, levels, the optimal-solution solver and the random level generator.
// This package is UI-agnostic and deterministic.
package core

import (
	"fmt"
	"strings"
)

// Dir represents one of the four slide directions.
// The declaration order is also the order the solver expands moves in.
type Dir uint8

const (
	DirLeft Dir = iota
	DirUp
	DirRight
	DirDown
)

// AllDirs returns every direction in expansion order.
func AllDirs() []Dir {
	return []Dir{DirLeft, DirUp, DirRight, DirDown}
}

// String returns the lower-case name of the direction.
func (d Dir) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirUp:
		return "up"
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	default:
		return "unknown"
	}
}

// Letter returns the single upper-case letter used in move strings.
func (d Dir) Letter() byte {
	switch d {
	case DirLeft:
		return 'L'
	case DirUp:
		return 'U'
	case DirRight:
		return 'R'
	case DirDown:
		return 'D'
	default:
		return '?'
	}
}

// Delta returns the (dRow, dCol) offset for moving one cell in this direction.
// Up decreases Row, Down increases Row.
func (d Dir) Delta() (dRow, dCol int) {
	switch d {
	case DirLeft:
		return 0, -1
	case DirUp:
		return -1, 0
	case DirRight:
		return 0, 1
	case DirDown:
		return 1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the reverse direction.
func (d Dir) Opposite() Dir {
	switch d {
	case DirLeft:
		return DirRight
	case DirUp:
		return DirDown
	case DirRight:
		return DirLeft
	case DirDown:
		return DirUp
	default:
		return d
	}
}

// ParseDir parses a direction from its name or letter, case-insensitively.
func ParseDir(s string) (Dir, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "l", "left":
		return DirLeft, nil
	case "u", "up":
		return DirUp, nil
	case "r", "right":
		return DirRight, nil
	case "d", "down":
		return DirDown, nil
	}
	return 0, fmt.Errorf("core: unknown direction %q", s)
}

// ParseMoves parses a compact move string such as "RDLU".
// Whitespace and commas are ignored.
func ParseMoves(s string) ([]Dir, error) {
	moves := make([]Dir, 0, len(s))
	for _, r := range s {
		if r == ' ' || r == ',' || r == '\t' || r == '\n' {
			continue
		}
		d, err := ParseDir(string(r))
		if err != nil {
			return nil, err
		}
		moves = append(moves, d)
	}
	return moves, nil
}

// MoveString returns the compact letter form of a move list, e.g. "RD".
func MoveString(moves []Dir) string {
	var b strings.Builder
	b.Grow(len(moves))
	for _, d := range moves {
		b.WriteByte(d.Letter())
	}
	return b.String()
}

// FormatMoves returns the move list followed by its length, e.g. "RD, 2".
func FormatMoves(moves []Dir) string {
	return fmt.Sprintf("%s, %d", MoveString(moves), len(moves))
}
