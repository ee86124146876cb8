package core

import (
	"errors"
	"fmt"
)

// DefaultChainLimit bounds how many times a single slide may re-issue
// itself (reflections, pushes). Two reflectors facing each other across a
// single cell would otherwise bounce a piece forever.
const DefaultChainLimit = 256

// Outcome is the terminal state reached by the last move, if any.
type Outcome uint8

const (
	OutcomeNone Outcome = iota
	OutcomeWon
	OutcomeFatal
)

// String returns the name of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeWon:
		return "won"
	case OutcomeFatal:
		return "fatal"
	default:
		return "none"
	}
}

// Listener receives terminal events from a Model.
type Listener interface {
	OnWin()
	OnFatalMove()
}

// ListenerFuncs adapts plain functions to Listener. Nil fields are ignored.
type ListenerFuncs struct {
	Win   func()
	Fatal func()
}

// OnWin implements Listener.
func (f ListenerFuncs) OnWin() {
	if f.Win != nil {
		f.Win()
	}
}

// OnFatalMove implements Listener.
func (f ListenerFuncs) OnFatalMove() {
	if f.Fatal != nil {
		f.Fatal()
	}
}

// EventKind identifies an entry of a move trace.
type EventKind uint8

const (
	EventSlide EventKind = iota
	EventDelete
	EventRender
	EventWin
	EventFatal
)

// String returns the name of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventSlide:
		return "slide"
	case EventDelete:
		return "delete"
	case EventRender:
		return "render"
	case EventWin:
		return "win"
	case EventFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Event records one effect of a move, in the order it happened.
type Event struct {
	Kind  EventKind
	Piece Kind   // piece affected (slide, delete, render)
	Name  string // name of the piece affected
	From  Pos
	To    Pos  // slide destination
	As    Kind // render: new appearance
}

// Option configures a Model.
type Option func(*Model)

// WithListener sets the listener notified of wins and fatal moves.
func WithListener(l Listener) Option {
	return func(m *Model) {
		m.listener = l
	}
}

// WithChainLimit sets how deep a single move may chain before it is
// rejected with ErrChainLimit. Values below 1 keep the default.
func WithChainLimit(n int) Option {
	return func(m *Model) {
		if n > 0 {
			m.chainLimit = n
		}
	}
}

// Model is the simulator: it owns the live board of a loaded level, the
// player position and the move counter, and resolves directional moves.
type Model struct {
	level      *Level
	board      *Board
	player     Pos  // INVARIANT: cell at player holds the player while hasPlayer
	hasPlayer  bool // false once the player has been deleted
	moves      int
	outcome    Outcome
	events     []Event
	listener   Listener
	chainLimit int
	atomic     bool // restore state when a move fails
}

// NewModel creates a simulator with no level loaded.
func NewModel(opts ...Option) *Model {
	m := &Model{
		chainLimit: DefaultChainLimit,
		atomic:     true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// LoadLevel loads a level and starts it from the beginning.
func (m *Model) LoadLevel(level *Level) error {
	if level == nil {
		return fmt.Errorf("%w: tried to load nil level", ErrNoLevel)
	}
	m.level = level
	return m.Restart()
}

// Restart rebuilds the board from the level's initial layout, never from
// the live board, and resets the move counter.
func (m *Model) Restart() error {
	if m.level == nil {
		return ErrNoLevel
	}
	m.board = NewBoard(m.level.layout)
	m.player = m.level.start
	m.hasPlayer = true
	m.moves = 0
	m.outcome = OutcomeNone
	m.events = nil
	return nil
}

// Level returns the loaded level, or nil.
func (m *Model) Level() *Level {
	return m.level
}

// Move slides the player in the given direction. It returns whether
// anything changed; a rejected move leaves the move counter untouched.
// Errors are contract violations and leave the model as it was.
func (m *Model) Move(d Dir) (bool, error) {
	if err := m.requirePlayable(); err != nil {
		return false, err
	}

	var saved *modelState
	if m.atomic {
		saved = m.save()
	}
	m.events = nil

	// The counter goes up first so that a winning move still counts.
	m.moves++
	changed, err := m.slide(m.player, d, 0)
	if err != nil {
		if saved != nil {
			m.restore(saved)
		}
		return false, err
	}
	if !changed {
		m.moves--
	}

	m.notify()
	return changed, nil
}

// MovePieceAt slides whatever moving piece is at pos. It does not count
// as a player move. Moving a cell that holds no moving piece is an error.
func (m *Model) MovePieceAt(pos Pos, d Dir) (bool, error) {
	if err := m.requirePlayable(); err != nil {
		return false, err
	}

	var saved *modelState
	if m.atomic {
		saved = m.save()
	}
	m.events = nil

	changed, err := m.slide(pos, d, 0)
	if err != nil {
		if saved != nil {
			m.restore(saved)
		}
		return false, err
	}

	m.notify()
	return changed, nil
}

// Layout returns a copy of the live board.
func (m *Model) Layout() ([][]Piece, error) {
	if m.level == nil {
		return nil, ErrNoLevel
	}
	return m.board.Layout(), nil
}

// Board returns a copy of the live board.
func (m *Model) Board() (*Board, error) {
	if m.level == nil {
		return nil, ErrNoLevel
	}
	return m.board.Clone(), nil
}

// Key returns the configuration key of the live board.
func (m *Model) Key() (string, error) {
	if m.level == nil {
		return "", ErrNoLevel
	}
	return m.board.Key(), nil
}

// Clone returns an independent copy of the model. The copy carries no
// listener, so simulating on it never reaches a client's callbacks.
func (m *Model) Clone() *Model {
	c := &Model{
		level:      m.level,
		player:     m.player,
		hasPlayer:  m.hasPlayer,
		moves:      m.moves,
		outcome:    m.outcome,
		chainLimit: m.chainLimit,
		atomic:     m.atomic,
	}
	if m.board != nil {
		c.board = m.board.Clone()
	}
	if len(m.events) > 0 {
		c.events = append([]Event(nil), m.events...)
	}
	return c
}

// LevelIndex returns the id of the loaded level.
func (m *Model) LevelIndex() (int, error) {
	if m.level == nil {
		return 0, ErrNoLevel
	}
	return m.level.ID(), nil
}

// LevelWidth returns the width of the live board.
func (m *Model) LevelWidth() (int, error) {
	if m.level == nil {
		return 0, ErrNoLevel
	}
	return m.board.Width(), nil
}

// LevelHeight returns the height of the live board.
func (m *Model) LevelHeight() (int, error) {
	if m.level == nil {
		return 0, ErrNoLevel
	}
	return m.board.Height(), nil
}

// MovesMade returns the number of accepted moves since the last (re)load.
func (m *Model) MovesMade() (int, error) {
	if m.level == nil {
		return 0, ErrNoLevel
	}
	return m.moves, nil
}

// FoundOptimalSolution reports whether the moves made so far equal the
// level's optimal solution length. Fewer moves than the proven optimum
// means the solver is wrong and is reported as ErrImpossibleOptimum.
func (m *Model) FoundOptimalSolution() (bool, error) {
	if m.level == nil {
		return false, ErrNoLevel
	}
	optimum, err := m.level.Moves()
	if err != nil {
		return false, err
	}
	if m.moves < optimum {
		return false, fmt.Errorf("%w (%d instead of %d)", ErrImpossibleOptimum, m.moves, optimum)
	}
	return m.moves == optimum, nil
}

// Outcome returns the terminal state reached, if any.
func (m *Model) Outcome() Outcome {
	return m.outcome
}

// Events returns the trace of the last move.
func (m *Model) Events() []Event {
	return append([]Event(nil), m.events...)
}

// PlayerPos returns the cached player position and whether the player is
// still on the board.
func (m *Model) PlayerPos() (Pos, bool) {
	return m.player, m.hasPlayer
}

func (m *Model) requirePlayable() error {
	if m.level == nil {
		return ErrNoLevel
	}
	if m.outcome != OutcomeNone {
		return ErrLevelOver
	}
	if !m.hasPlayer {
		return ErrNoPlayer
	}
	return nil
}

// slide moves the piece at from as far as it goes in direction d, then
// resolves what it hit. depth counts how many slides this one is nested in.
func (m *Model) slide(from Pos, d Dir, depth int) (bool, error) {
	if depth > m.chainLimit {
		return false, fmt.Errorf("%w (%d)", ErrChainLimit, m.chainLimit)
	}

	here, err := m.board.At(from)
	if err != nil {
		return false, err
	}
	if !here.Occupied() {
		return false, fmt.Errorf("%w: %v", ErrNotMoving, from)
	}
	mover := here.Occupant

	cur := from
	next, err := m.board.At(cur.Step(d))
	if err != nil {
		return false, err
	}

	moved := false
	for next.CanBeEntered() {
		here, err = m.board.At(cur)
		if err != nil {
			return false, err
		}
		mover, err = here.Extract()
		if err != nil {
			return false, err
		}
		onEnter, err := next.EnteredBy(mover)
		if err != nil {
			return false, err
		}
		if _, err := m.execute(onEnter, depth); err != nil {
			return false, err
		}

		cur = cur.Step(d)
		moved = true

		next, err = m.board.At(cur.Step(d))
		if err != nil {
			return false, err
		}
	}

	here, err = m.board.At(cur)
	if err != nil {
		return false, err
	}
	mover = here.Occupant

	if mover.Kind == KindPlayer {
		m.player = cur
	}
	if moved {
		m.events = append(m.events, Event{
			Kind:  EventSlide,
			Piece: mover.Kind,
			Name:  mover.Name,
			From:  from,
			To:    cur,
		})
	}

	onHit, err := next.HitBy(mover, d)
	if err != nil {
		return false, err
	}
	changed, err := m.execute(onHit, depth)
	if err != nil {
		return false, err
	}

	return moved || changed, nil
}

// execute runs a command against the live board and reports whether it
// changed anything.
func (m *Model) execute(cmd Command, depth int) (bool, error) {
	switch cmd.Op {
	case OpNoOp:
		return false, nil

	case OpMove:
		return m.slide(cmd.Mover.Pos, cmd.Dir, depth+1)

	case OpDelete:
		cell, err := m.board.At(cmd.Mover.Pos)
		if err != nil {
			return false, err
		}
		removed := false
		if cell.Occupied() {
			gone := cell.Occupant
			cell.Occupant = Mover{}
			removed = true
			m.events = append(m.events, Event{
				Kind:  EventDelete,
				Piece: gone.Kind,
				Name:  gone.Name,
				From:  gone.Pos,
			})
			if gone.Kind == KindPlayer {
				m.hasPlayer = false
			}
		}
		if cmd.Mover.Kind == KindPlayer {
			fatal, err := m.execute(SignalFatal(), depth)
			return removed || fatal, err
		}
		return removed, nil

	case OpChangeRender:
		m.events = append(m.events, Event{
			Kind:  EventRender,
			Piece: cmd.Piece.Kind,
			Name:  cmd.Piece.Name,
			From:  cmd.Piece.Pos,
			As:    cmd.As,
		})
		return true, nil

	case OpWin:
		if m.outcome == OutcomeNone {
			m.outcome = OutcomeWon
		}
		m.events = append(m.events, Event{Kind: EventWin})
		return true, nil

	case OpFatal:
		if m.outcome == OutcomeNone {
			m.outcome = OutcomeFatal
		}
		m.events = append(m.events, Event{Kind: EventFatal})
		return true, nil

	case OpCombo:
		if cmd.First == nil || cmd.Second == nil {
			return false, errors.New("core: combo command missing a part")
		}
		first, err := m.execute(*cmd.First, depth)
		if err != nil {
			return false, err
		}
		second, err := m.execute(*cmd.Second, depth)
		if err != nil {
			return false, err
		}
		return first || second, nil

	default:
		return false, fmt.Errorf("core: unknown command %v", cmd.Op)
	}
}

// notify reports a terminal outcome reached by the last move.
func (m *Model) notify() {
	if m.listener == nil {
		return
	}
	for _, ev := range m.events {
		switch ev.Kind {
		case EventWin:
			m.listener.OnWin()
			return
		case EventFatal:
			m.listener.OnFatalMove()
			return
		}
	}
}

type modelState struct {
	board     *Board
	player    Pos
	hasPlayer bool
	moves     int
	outcome   Outcome
}

func (m *Model) save() *modelState {
	return &modelState{
		board:     m.board.Clone(),
		player:    m.player,
		hasPlayer: m.hasPlayer,
		moves:     m.moves,
		outcome:   m.outcome,
	}
}

func (m *Model) restore(s *modelState) {
	m.board = s.board
	m.player = s.player
	m.hasPlayer = s.hasPlayer
	m.moves = s.moves
	m.outcome = s.outcome
	m.events = nil
}
