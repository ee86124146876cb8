package core

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// SolverOption configures a Solver.
type SolverOption func(*Solver)

// WithWorkers sets how many configurations are expanded concurrently.
func WithWorkers(n int) SolverOption {
	return func(s *Solver) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithMaxNodes bounds the number of distinct configurations the solver may
// discover before giving up with ErrSearchLimit. 0 means no bound.
func WithMaxNodes(n int) SolverOption {
	return func(s *Solver) {
		if n >= 0 {
			s.maxNodes = n
		}
	}
}

// WithSolverChainLimit sets the chain limit of the models the solver runs.
func WithSolverChainLimit(n int) SolverOption {
	return func(s *Solver) {
		if n > 0 {
			s.chainLimit = n
		}
	}
}

// Solver finds the shortest move sequence that beats a level.
//
// It works in two passes. Expansion discovers every configuration reachable
// from the start, one breadth-first layer at a time: the four moves of each
// frontier configuration are tried on cloned models in parallel, and the
// results are merged into the configuration table by a single writer in
// frontier order, so the graph is the same for any number of workers.
// Relaxation then links every child to its parents and propagates
// solution lengths backwards from the winning terminal until nothing
// improves.
type Solver struct {
	workers    int
	maxNodes   int
	chainLimit int
}

// NewSolver creates a solver. By default it expands on a single worker
// with no node bound.
func NewSolver(opts ...SolverOption) *Solver {
	s := &Solver{workers: 1}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Result is the outcome of a successful solve.
type Result struct {
	Moves   []Dir // optimal move sequence, empty only when already won
	Nodes   int   // distinct configurations discovered
	Edges   int   // accepted moves between configurations and terminals
	Wins    int   // moves that beat the level
	Fatal   int   // moves that lost it
	Invalid int   // moves rejected for exceeding the chain limit
}

// Solve finds an optimal solution for the level.
func (s *Solver) Solve(ctx context.Context, level *Level) (Result, error) {
	m := NewModel(WithChainLimit(s.chainLimit))
	if err := m.LoadLevel(level); err != nil {
		return Result{}, err
	}
	return s.SolveModel(ctx, m)
}

// SolveModel finds an optimal solution from the model's current state.
// The model itself is not modified.
func (s *Solver) SolveModel(ctx context.Context, m *Model) (Result, error) {
	if m.level == nil {
		return Result{}, ErrNoLevel
	}
	switch m.outcome {
	case OutcomeWon:
		return Result{Moves: []Dir{}}, nil
	case OutcomeFatal:
		return Result{}, ErrUnsolvable
	}

	root := m.Clone()
	root.atomic = false
	if s.chainLimit > 0 {
		root.chainLimit = s.chainLimit
	}

	g, err := s.expand(ctx, root)
	if err != nil {
		return Result{}, err
	}
	g.linkParents()
	g.relax()

	res := g.result()
	moves, ok := g.solution()
	if !ok {
		return res, ErrUnsolvable
	}
	res.Moves = moves
	return res, nil
}

type nodeKind uint8

const (
	nodeConfig nodeKind = iota
	nodeWin
	nodeFatal
)

// link is an edge endpoint: the node on the other side and the move taken.
type link struct {
	node int
	dir  Dir
}

// node is one entry of the graph arena. Nodes refer to each other by index.
type node struct {
	kind     nodeKind
	key      string
	model    *Model // set while the node waits on the frontier
	children []link
	parents  []link
	dist     int  // moves to a win, -1 while unknown
	via      link // first move of the adopted solution
}

type graph struct {
	nodes   []node
	index   map[string]int
	root    int
	edges   int
	wins    int
	fatal   int
	invalid int
}

const (
	winNode   = 0
	fatalNode = 1
)

func newGraph() *graph {
	g := &graph{index: make(map[string]int)}
	g.nodes = append(g.nodes,
		node{kind: nodeWin, dist: 0},
		node{kind: nodeFatal, dist: -1},
	)
	return g
}

func (g *graph) add(key string, m *Model) int {
	g.nodes = append(g.nodes, node{kind: nodeConfig, key: key, model: m, dist: -1})
	idx := len(g.nodes) - 1
	g.index[key] = idx
	return idx
}

// configs returns the number of configuration nodes.
func (g *graph) configs() int {
	return len(g.nodes) - 2
}

type moveKind uint8

const (
	moveRejected moveKind = iota
	moveInvalid
	moveWin
	moveFatal
	moveConfig
)

type moveResult struct {
	kind  moveKind
	dir   Dir
	key   string
	model *Model
}

// tryMoves plays every direction on its own clone of m.
func tryMoves(m *Model) ([]moveResult, error) {
	dirs := AllDirs()
	out := make([]moveResult, len(dirs))
	for i, d := range dirs {
		out[i].dir = d

		c := m.Clone()
		changed, err := c.Move(d)
		if err != nil {
			if errors.Is(err, ErrChainLimit) {
				out[i].kind = moveInvalid
				continue
			}
			return nil, fmt.Errorf("expanding %s: %w", d, err)
		}

		switch {
		case !changed:
			out[i].kind = moveRejected
		case c.outcome == OutcomeWon:
			out[i].kind = moveWin
		case c.outcome == OutcomeFatal:
			out[i].kind = moveFatal
		default:
			out[i].kind = moveConfig
			out[i].key = c.board.Key()
			out[i].model = c
		}
	}
	return out, nil
}

// expand discovers the reachable configuration graph from root.
func (s *Solver) expand(ctx context.Context, root *Model) (*graph, error) {
	g := newGraph()
	g.root = g.add(root.board.Key(), root)
	frontier := []int{g.root}

	for len(frontier) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		results := make([][]moveResult, len(frontier))
		eg, _ := errgroup.WithContext(ctx)
		eg.SetLimit(s.workers)
		for i, idx := range frontier {
			i, m := i, g.nodes[idx].model
			eg.Go(func() error {
				res, err := tryMoves(m)
				if err != nil {
					return err
				}
				results[i] = res
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}

		var next []int
		for i, idx := range frontier {
			g.nodes[idx].model = nil
			for _, mr := range results[i] {
				switch mr.kind {
				case moveRejected:
					continue
				case moveInvalid:
					g.invalid++
					continue
				case moveWin:
					g.wins++
					g.nodes[idx].children = append(g.nodes[idx].children, link{node: winNode, dir: mr.dir})
				case moveFatal:
					g.fatal++
					g.nodes[idx].children = append(g.nodes[idx].children, link{node: fatalNode, dir: mr.dir})
				case moveConfig:
					child, seen := g.index[mr.key]
					if !seen {
						if s.maxNodes > 0 && g.configs() >= s.maxNodes {
							return nil, fmt.Errorf("%w (%d)", ErrSearchLimit, s.maxNodes)
						}
						child = g.add(mr.key, mr.model)
						next = append(next, child)
					}
					if child == idx {
						continue
					}
					g.nodes[idx].children = append(g.nodes[idx].children, link{node: child, dir: mr.dir})
				}
				g.edges++
			}
		}
		frontier = next
	}

	return g, nil
}

// linkParents walks the graph breadth-first from the root and records,
// on every child, each parent that reaches it and the move used.
func (g *graph) linkParents() {
	visited := make([]bool, len(g.nodes))
	visited[g.root] = true
	queue := []int{g.root}

	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]

		for _, ch := range g.nodes[idx].children {
			child := &g.nodes[ch.node]
			child.parents = append(child.parents, link{node: idx, dir: ch.dir})
			if !visited[ch.node] {
				visited[ch.node] = true
				if child.kind == nodeConfig {
					queue = append(queue, ch.node)
				}
			}
		}
	}
}

// relax propagates solution lengths from the winning terminal to its
// ancestors. A parent adopts 1 + child.dist only when that is strictly
// shorter, then notifies its own parents; every adoption lowers a value
// bounded below by zero, so the work queue drains.
func (g *graph) relax() {
	queue := []int{winNode}

	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		dist := g.nodes[idx].dist

		for _, pl := range g.nodes[idx].parents {
			parent := &g.nodes[pl.node]
			if parent.dist < 0 || dist+1 < parent.dist {
				parent.dist = dist + 1
				parent.via = link{node: idx, dir: pl.dir}
				queue = append(queue, pl.node)
			}
		}
	}
}

// solution follows adopted moves from the root to the winning terminal.
func (g *graph) solution() ([]Dir, bool) {
	root := g.nodes[g.root]
	if root.dist < 0 {
		return nil, false
	}

	moves := make([]Dir, 0, root.dist)
	idx := g.root
	for idx != winNode {
		n := g.nodes[idx]
		if n.dist <= 0 || len(moves) > len(g.nodes) {
			return nil, false
		}
		moves = append(moves, n.via.dir)
		idx = n.via.node
	}
	return moves, true
}

func (g *graph) result() Result {
	return Result{
		Nodes:   g.configs(),
		Edges:   g.edges,
		Wins:    g.wins,
		Fatal:   g.fatal,
		Invalid: g.invalid,
	}
}
