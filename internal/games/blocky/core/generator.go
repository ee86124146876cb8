package core

import (
	"context"
	"errors"
	"fmt"
)

// GenParams configures the level generator.
type GenParams struct {
	Size        int     // Interior side length; the board adds a wall border
	MinMoves    int     // Minimum optimal solution length to accept
	Density     float64 // Probability of an interior cell holding a piece (0-1)
	MaxAttempts int     // Candidate boards to try (0 = no limit)
	Seed        uint64  // RNG seed for deterministic variety
}

// DefaultGenParams returns sensible defaults for level generation.
func DefaultGenParams() GenParams {
	return GenParams{
		Size:        6,
		MinMoves:    4,
		Density:     0.25,
		MaxAttempts: 500,
		Seed:        0,
	}
}

// Validate checks that the parameters can produce a level.
func (p GenParams) Validate() error {
	if p.Size < 1 {
		return levelErr("BAD_PARAMS", "size must be > 0, got %d", p.Size)
	}
	if p.MinMoves < 1 {
		return levelErr("BAD_PARAMS", "min moves must be > 0, got %d", p.MinMoves)
	}
	if p.Density < 0 || p.Density > 1 {
		return levelErr("BAD_PARAMS", "density must be within [0, 1], got %v", p.Density)
	}
	if p.MaxAttempts < 0 {
		return levelErr("BAD_PARAMS", "max attempts must be >= 0, got %d", p.MaxAttempts)
	}
	return nil
}

// SimpleRNG is a deterministic pseudo-random number generator (xorshift64).
type SimpleRNG struct {
	state uint64
}

// NewRNG creates a new RNG with the given seed.
func NewRNG(seed uint64) *SimpleRNG {
	if seed == 0 {
		seed = 88172645463325252 // Default seed
	}
	return &SimpleRNG{state: seed}
}

// Next returns the next random uint64.
func (r *SimpleRNG) Next() uint64 {
	r.state ^= r.state << 13
	r.state ^= r.state >> 7
	r.state ^= r.state << 17
	return r.state
}

// Float returns a random float64 in [0, 1).
func (r *SimpleRNG) Float() float64 {
	return float64(r.Next()&0x7FFFFFFFFFFFFFFF) / float64(0x8000000000000000)
}

// Intn returns a random int in [0, n).
func (r *SimpleRNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// interiorKinds are the pieces scattered over a generated board.
var interiorKinds = []Kind{KindSolid, KindPop, KindCracked, KindYellow, KindBlue, KindRed}

// GenerateRows synthesizes one random candidate board as tag rows: a wall
// border, a goal in the right wall, the player somewhere inside and random
// pieces elsewhere. The candidate is not checked for solvability.
func GenerateRows(p GenParams, rng *SimpleRNG) []string {
	side := p.Size + 2
	goalRow := p.Size/2 + 1
	player := P(rng.Intn(p.Size)+1, rng.Intn(p.Size)+1)

	rows := make([]string, side)
	for r := 0; r < side; r++ {
		line := make([]rune, side)
		for c := 0; c < side; c++ {
			pos := P(r, c)
			switch {
			case r == 0 || r == side-1 || c == 0:
				line[c] = KindWall.Rune()
			case c == side-1:
				if r == goalRow {
					line[c] = KindGoal.Rune()
				} else {
					line[c] = KindWall.Rune()
				}
			case pos == player:
				line[c] = KindPlayer.Rune()
			case rng.Float() < p.Density:
				line[c] = interiorKinds[rng.Intn(len(interiorKinds))].Rune()
			default:
				line[c] = KindEmpty.Rune()
			}
		}
		rows[r] = string(line)
	}
	return rows
}

// Generate builds a random level whose optimal solution needs at least
// p.MinMoves moves. Candidates that are unsolvable, too short or that
// the solver rejects are discarded whole. It returns the level and the
// number of candidates tried.
func Generate(ctx context.Context, id int, p GenParams, s *Solver) (*Level, int, error) {
	if err := p.Validate(); err != nil {
		return nil, 0, err
	}
	if s == nil {
		s = NewSolver()
	}

	rng := NewRNG(p.Seed)
	for attempt := 1; p.MaxAttempts == 0 || attempt <= p.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, attempt - 1, err
		}

		level, err := LevelFromRows(id, GenerateRows(p, rng), WithSolver(s))
		if err != nil {
			return nil, attempt, err
		}

		res, err := s.Solve(ctx, level)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, attempt, err
			}
			continue
		}
		if len(res.Moves) < p.MinMoves {
			continue
		}

		level.once.Do(func() {
			level.solution = res.Moves
		})
		return level, attempt, nil
	}

	return nil, p.MaxAttempts, fmt.Errorf("%w after %d attempts (size %d, min moves %d)",
		ErrGenerationFailed, p.MaxAttempts, p.Size, p.MinMoves)
}
