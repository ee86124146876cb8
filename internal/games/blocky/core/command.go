package core

// Op identifies what a Command does.
type Op uint8

const (
	OpNoOp Op = iota
	OpMove
	OpDelete
	OpChangeRender
	OpWin
	OpFatal
	OpCombo
)

// String returns the name of the operation.
func (o Op) String() string {
	switch o {
	case OpNoOp:
		return "noop"
	case OpMove:
		return "move"
	case OpDelete:
		return "delete"
	case OpChangeRender:
		return "change-render"
	case OpWin:
		return "win"
	case OpFatal:
		return "fatal"
	case OpCombo:
		return "combo"
	default:
		return "unknown"
	}
}

// Command is an effect produced by a piece interaction. Pieces only build
// commands; the Model is the single place that executes them, so the piece
// model never touches simulator internals.
type Command struct {
	Op    Op
	Mover Mover // OpMove, OpDelete
	Dir   Dir   // OpMove
	Piece Piece // OpChangeRender: the piece changing appearance
	As    Kind  // OpChangeRender: what it now looks like

	First  *Command // OpCombo, executed first
	Second *Command // OpCombo
}

// NoOp returns a command that changes nothing.
func NoOp() Command {
	return Command{Op: OpNoOp}
}

// Move returns a command that slides the mover in the given direction.
func Move(m Mover, d Dir) Command {
	return Command{Op: OpMove, Mover: m, Dir: d}
}

// Delete returns a command that removes the mover from the board.
// Deleting the player is a fatal move.
func Delete(m Mover) Command {
	return Command{Op: OpDelete, Mover: m}
}

// ChangeRender returns a command recording that p now appears as another kind.
func ChangeRender(p Piece, as Kind) Command {
	return Command{Op: OpChangeRender, Piece: p, As: as}
}

// SignalWin returns a command that reports the level as beaten.
func SignalWin() Command {
	return Command{Op: OpWin}
}

// SignalFatal returns a command that reports a fatal move.
func SignalFatal() Command {
	return Command{Op: OpFatal}
}

// Combo returns a command that runs first and then second.
// It reports a change if either of them did.
func Combo(first, second Command) Command {
	return Command{Op: OpCombo, First: &first, Second: &second}
}
