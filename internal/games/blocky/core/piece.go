package core

import "fmt"

// Kind identifies a piece variant.
type Kind uint8

const (
	KindNone Kind = iota
	KindWall
	KindEmpty
	KindGoal
	KindSolid
	KindPop
	KindCracked
	KindRed
	KindBlue
	KindYellow
	KindPlayer
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindWall:
		return "wall"
	case KindEmpty:
		return "empty"
	case KindGoal:
		return "goal"
	case KindSolid:
		return "solid"
	case KindPop:
		return "pop"
	case KindCracked:
		return "cracked"
	case KindRed:
		return "red"
	case KindBlue:
		return "blue"
	case KindYellow:
		return "yellow"
	case KindPlayer:
		return "player"
	default:
		return "none"
	}
}

// Rune returns the tag character for the kind.
func (k Kind) Rune() rune {
	switch k {
	case KindWall:
		return 'X'
	case KindEmpty:
		return '-'
	case KindGoal:
		return 'W'
	case KindSolid:
		return 'S'
	case KindPop:
		return 'O'
	case KindCracked:
		return 'C'
	case KindRed:
		return 'R'
	case KindBlue:
		return 'B'
	case KindYellow:
		return 'Y'
	case KindPlayer:
		return 'P'
	default:
		return '?'
	}
}

// KindFromRune returns the kind for a tag character.
func KindFromRune(r rune) (Kind, bool) {
	switch r {
	case 'X':
		return KindWall, true
	case '-':
		return KindEmpty, true
	case 'W':
		return KindGoal, true
	case 'S':
		return KindSolid, true
	case 'O':
		return KindPop, true
	case 'C':
		return KindCracked, true
	case 'R':
		return KindRed, true
	case 'B':
		return KindBlue, true
	case 'Y':
		return KindYellow, true
	case 'P':
		return KindPlayer, true
	default:
		return KindNone, false
	}
}

// IsMoving reports whether pieces of this kind can slide.
func (k Kind) IsMoving() bool {
	return k == KindPlayer || k == KindYellow
}

// IsContainer reports whether pieces of this kind can hold a moving piece.
func (k Kind) IsContainer() bool {
	return k == KindEmpty || k == KindPop || k == KindCracked
}

// IsStatic reports whether pieces of this kind never change during play.
// Static pieces carry no information for configuration keys.
func (k Kind) IsStatic() bool {
	return k == KindWall || k == KindGoal
}

// Mover is a moving piece (Player or Yellow). A mover always lives inside
// a container cell, including at the start of a level.
type Mover struct {
	Kind Kind
	Name string
	Pos  Pos
}

// AsPiece returns the mover as a stand-alone piece, used for rendering.
func (m Mover) AsPiece() Piece {
	return Piece{Kind: m.Kind, Name: m.Name, Pos: m.Pos}
}

// ReachedGoal returns what happens when this mover hits a goal.
// The player wins; a yellow block is removed from the board.
func (m Mover) ReachedGoal() Command {
	if m.Kind == KindPlayer {
		return SignalWin()
	}
	return Delete(m)
}

// hitBy is the reaction of a mover at rest being struck by another mover:
// it is pushed on in the same direction.
func (m Mover) hitBy(_ Mover, d Dir) Command {
	return Move(m, d)
}

// Piece is a single board cell.
//
// Spent records the one-way state change of Pop (has popped into Solid)
// and Cracked (has cracked open into Empty). Occupant is the moving piece
// held by a container; its zero value means the container is vacant.
type Piece struct {
	Kind     Kind
	Name     string
	Pos      Pos
	Spent    bool
	Occupant Mover
}

// NewPiece creates a piece of the given kind.
func NewPiece(kind Kind, name string, pos Pos) Piece {
	return Piece{Kind: kind, Name: name, Pos: pos}
}

// Occupied reports whether the piece holds a moving piece.
func (p *Piece) Occupied() bool {
	return p.Occupant.Kind != KindNone
}

// CanBeEntered reports whether a moving piece may slide into this cell.
func (p *Piece) CanBeEntered() bool {
	switch p.Kind {
	case KindEmpty:
		return !p.Occupied()
	case KindPop:
		return !p.Spent && !p.Occupied()
	case KindCracked:
		return p.Spent && !p.Occupied()
	default:
		return false
	}
}

// EnteredBy places the mover inside this piece and returns the command to
// run as a consequence. A Pop collapses into Solid on first occupancy.
func (p *Piece) EnteredBy(m Mover) (Command, error) {
	if !p.Kind.IsContainer() {
		return NoOp(), fmt.Errorf("%w: %s at %v", ErrNotEnterable, p.Kind, p.Pos)
	}
	if !p.CanBeEntered() {
		if p.Occupied() {
			return NoOp(), fmt.Errorf("%w: %s at %v", ErrOccupied, p.Kind, p.Pos)
		}
		return NoOp(), fmt.Errorf("%w: %s at %v", ErrNotEnterable, p.Kind, p.Pos)
	}

	m.Pos = p.Pos
	p.Occupant = m

	if p.Kind == KindPop {
		p.Spent = true
		return ChangeRender(*p, KindSolid), nil
	}
	return NoOp(), nil
}

// HitBy returns the reaction to the mover, travelling in direction d,
// stopping against this piece.
func (p *Piece) HitBy(m Mover, d Dir) (Command, error) {
	switch p.Kind {
	case KindWall, KindSolid:
		return NoOp(), nil
	case KindRed:
		return Combo(NoOp(), Delete(m)), nil
	case KindBlue:
		return Combo(NoOp(), Move(m, d.Opposite())), nil
	case KindGoal:
		return m.ReachedGoal(), nil
	case KindPop:
		if p.Occupied() {
			return p.Occupant.hitBy(m, d), nil
		}
		if p.Spent {
			return NoOp(), nil
		}
		return NoOp(), fmt.Errorf("%w: %s at %v", ErrBadHit, p.Kind, p.Pos)
	case KindCracked:
		if !p.Spent {
			p.Spent = true
			return ChangeRender(*p, KindEmpty), nil
		}
		if p.Occupied() {
			return p.Occupant.hitBy(m, d), nil
		}
		return NoOp(), fmt.Errorf("%w: %s at %v", ErrBadHit, p.Kind, p.Pos)
	case KindEmpty:
		if p.Occupied() {
			return p.Occupant.hitBy(m, d), nil
		}
		return NoOp(), fmt.Errorf("%w: %s at %v", ErrBadHit, p.Kind, p.Pos)
	default:
		return NoOp(), fmt.Errorf("%w: %s at %v", ErrBadHit, p.Kind, p.Pos)
	}
}

// Extract removes and returns the moving piece held by this cell.
func (p *Piece) Extract() (Mover, error) {
	if !p.Kind.IsContainer() || !p.Occupied() {
		return Mover{}, fmt.Errorf("%w: %v", ErrNotMoving, p.Pos)
	}
	m := p.Occupant
	p.Occupant = Mover{}
	return m, nil
}

// ReplacementAfterExtraction returns what the cell becomes once its mover
// has left. Containers simply stay behind, vacated.
func (p *Piece) ReplacementAfterExtraction() Piece {
	out := *p
	out.Occupant = Mover{}
	return out
}

// Render returns the piece this cell should be drawn as: the occupant if
// there is one, Solid for a popped Pop, Empty for a cracked Cracked.
func (p Piece) Render() Piece {
	if p.Occupied() {
		return p.Occupant.AsPiece()
	}
	switch {
	case p.Kind == KindPop && p.Spent:
		return Piece{Kind: KindSolid, Name: p.Name, Pos: p.Pos}
	case p.Kind == KindCracked && p.Spent:
		return Piece{Kind: KindEmpty, Name: p.Name, Pos: p.Pos}
	}
	return p
}

// Identifier returns the content identifier of this cell for configuration
// keys. Static pieces return an empty string.
func (p Piece) Identifier() string {
	if p.Kind.IsStatic() {
		return ""
	}

	id := string(p.Kind.Rune())
	if p.Spent {
		id += "!"
	}
	if p.Occupied() {
		id += "+" + string(p.Occupant.Kind.Rune())
	}
	return id
}
