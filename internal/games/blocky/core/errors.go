package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for the core package.
var (
	// Contract violations: the caller asked for something the rules forbid.
	ErrNoLevel      = errors.New("core: no level loaded")
	ErrNotMoving    = errors.New("core: no moving piece at position")
	ErrOccupied     = errors.New("core: tried to enter an occupied piece")
	ErrNotEnterable = errors.New("core: tried to enter a piece that cannot be entered")
	ErrOffBoard     = errors.New("core: position is not on the board")
	ErrNoPlayer     = errors.New("core: player is no longer on the board")
	ErrLevelOver    = errors.New("core: level already won or lost")
	ErrBadHit       = errors.New("core: hit a piece that should have been entered")

	// Bounded non-termination: a single slide kept re-issuing itself.
	ErrChainLimit = errors.New("core: move chain exceeded limit")

	// Solver and generator outcomes.
	ErrUnsolvable       = errors.New("core: no solution exists for this level")
	ErrSearchLimit      = errors.New("core: search exceeded node limit")
	ErrGenerationFailed = errors.New("core: could not generate a level meeting the requirements")

	// ErrImpossibleOptimum reports a recorded move count below the proven optimum.
	ErrImpossibleOptimum = errors.New("core: found quicker solution than thought possible")
)

// LevelError describes why a level could not be constructed.
type LevelError struct {
	Code    string
	Message string
}

func (e LevelError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func levelErr(code, format string, args ...any) error {
	return LevelError{Code: code, Message: fmt.Sprintf(format, args...)}
}
