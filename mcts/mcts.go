// Package mcts implements a PUCT-guided Monte Carlo Tree Search
// driver: a reusable search tree over a board position, expanded on
// demand by a pluggable evaluator, producing either a deterministic or
// stochastic move choice plus training targets (visit-count policy,
// terminal value).
//
// The concurrency model is single-threaded cooperative: a single MCTS
// value is used from one goroutine at a time, Run never suspends, and
// there is no cancellation. Callers bound cost via Options.NumSimulations.
package mcts

import (
	"bytes"
	"log"
	"time"

	"github.com/pkg/errors"

	"github.com/alphabeth-othello/evaluator"
	"github.com/alphabeth-othello/mcts/xrand"
	"github.com/alphabeth-othello/othello"
)

// Stats summarises the last call to Run.
type Stats struct {
	Simulations   int
	RootVisits    int
	MaxDepth      int
	TerminalLeafs int
	Elapsed       time.Duration
}

// MCTS holds a single owned root, a reference to an evaluator,
// immutable search parameters, and a seeded random source. It
// exclusively owns the root node and transitively the whole tree;
// Children are exclusively owned by their parent, Parent is a
// non-owning back-reference.
type MCTS struct {
	root  *TreeNode
	eval  evaluator.Evaluator
	opts  Options
	rng   *xrand.Source
	stats Stats

	logBuf bytes.Buffer
	logger *log.Logger
}

// New constructs an MCTS driver with no root set. Call SetRoot before
// Run, ApplyMoveToRoot, or any target getter.
func New(eval evaluator.Evaluator, opts Options, seed int64) *MCTS {
	m := &MCTS{
		eval: eval,
		opts: opts,
		rng:  xrand.New(seed),
	}
	m.logger = log.New(&m.logBuf, "", log.Ltime)
	return m
}

// Log returns the accumulated log buffer contents.
func (m *MCTS) Log() string { return m.logBuf.String() }

// Stats returns the counters from the most recent Run call.
func (m *MCTS) Stats() Stats { return m.stats }

// Root returns the current root node, or nil if none is set. Exposed
// for inspection and testing; callers must not mutate it.
func (m *MCTS) Root() *TreeNode { return m.root }

// SetRoot discards the existing tree and installs a fresh unexpanded
// root for (board, side).
func (m *MCTS) SetRoot(board othello.Board, side othello.Player) {
	m.root = newRoot(board, side)
}

// ApplyMoveToRoot advances the tree by one ply. If the root already
// has a child for move's slot, that subtree is promoted (its
// accumulated statistics are preserved and its parent link cleared).
// Otherwise a fresh unexpanded root is constructed by applying move to
// the current root's board and toggling the side to move.
func (m *MCTS) ApplyMoveToRoot(move othello.Move) error {
	if m.root == nil {
		return errors.WithStack(ErrNoRoot)
	}
	slot := move.Slot()
	if child, ok := m.root.Children[slot]; ok {
		child.Parent = nil
		child.MoveFromParent = noParentSlot
		m.root = child
		return nil
	}
	board := m.root.Board
	board.Apply(m.root.Side, move)
	m.root = newRoot(board, othello.Opponent(m.root.Side))
	return nil
}

// AddDirichletNoise mixes exploration noise into the root's priors:
// Dirichlet(alpha) over the legal non-pass slots, mixed in with weight
// epsilon. If the root is not yet expanded, it is expanded first
// (without contributing a backpropagated visit) so priors exist to
// perturb.
func (m *MCTS) AddDirichletNoise() error {
	if m.root == nil {
		return errors.WithStack(ErrNoRoot)
	}
	if m.root.IsTerminal() {
		return nil
	}
	if !m.root.Expanded {
		m.root.expand(m.eval)
	}

	var slots []int
	for i := 0; i < othello.NumSquares; i++ {
		if m.root.LegalMask&(uint64(1)<<uint(i)) != 0 {
			slots = append(slots, i)
		}
	}
	if len(slots) == 0 {
		return nil
	}

	noise := m.rng.Dirichlet(len(slots), float64(m.opts.DirichletAlpha))
	eps := m.opts.DirichletEpsilon
	for i, slot := range slots {
		m.root.Prior[slot] = (1-eps)*m.root.Prior[slot] + eps*float32(noise[i])
	}
	return nil
}

// Run executes Options.NumSimulations simulations starting at the
// current root, accumulating statistics in place.
func (m *MCTS) Run() error {
	if m.root == nil {
		return errors.WithStack(ErrNoRoot)
	}
	// Expand the root once, up front, so every one of the
	// NumSimulations rounds below descends into and credits a child
	// edge. Otherwise a fresh root's first simulation would spend
	// itself expanding the root with nothing to backpropagate,
	// undercounting the root's total visit count by one.
	if !m.root.Expanded && !m.root.IsTerminal() {
		m.root.expand(m.eval)
	}

	start := time.Now()
	maxDepth, terminalLeafs := 0, 0
	for i := 0; i < m.opts.NumSimulations; i++ {
		depth, terminal := m.runSimulation()
		if depth > maxDepth {
			maxDepth = depth
		}
		if terminal {
			terminalLeafs++
		}
	}
	m.stats = Stats{
		Simulations:   m.opts.NumSimulations,
		RootVisits:    m.root.totalVisits(),
		MaxDepth:      maxDepth,
		TerminalLeafs: terminalLeafs,
		Elapsed:       time.Since(start),
	}
	m.logger.Printf("simulations=%d root_visits=%d max_depth=%d terminal_leafs=%d elapsed=%s",
		m.stats.Simulations, m.stats.RootVisits, m.stats.MaxDepth, m.stats.TerminalLeafs, m.stats.Elapsed)
	return nil
}

// runSimulation performs one selection/expansion/backpropagation
// round and reports the depth reached and whether the leaf was
// terminal.
func (m *MCTS) runSimulation() (depth int, terminal bool) {
	node := m.root
	for node.Expanded && !node.IsTerminal() {
		slot := node.selectSlot(m.opts.CPuct)
		child, ok := node.Children[slot]
		if !ok {
			child = m.descend(node, slot)
			node = child
			depth++
			break
		}
		node = child
		depth++
	}

	leaf := node
	var value float32
	if leaf.IsTerminal() {
		terminal = true
		value = terminalValue(leaf)
	} else {
		value = leaf.expand(m.eval)
	}
	m.backpropagate(leaf, value)
	return depth, terminal
}

// descend creates the child of node at slot by applying the
// corresponding move (PASS leaves the board unchanged and only
// toggles the side to move) and attaches it with a parent back-link.
func (m *MCTS) descend(node *TreeNode, slot int) *TreeNode {
	move := othello.MoveFromSlot(slot)
	board := node.Board
	board.Apply(node.Side, move)
	child := newNode(board, othello.Opponent(node.Side), node, slot)
	node.Children[slot] = child
	return child
}

// terminalValue computes (count(leaf.side) - count(opponent)) / 64.
func terminalValue(leaf *TreeNode) float32 {
	own := leaf.Board.CountDisks(leaf.Side)
	opp := leaf.Board.CountDisks(othello.Opponent(leaf.Side))
	return float32(own-opp) / float32(othello.NumSquares)
}

// backpropagate walks from leaf up to the root, crediting each parent
// edge with one visit and the running value (negated at every step,
// since each ancestor's stored statistics are from its own side's
// perspective, alternating with depth).
func (m *MCTS) backpropagate(leaf *TreeNode, value float32) {
	node := leaf
	v := value
	for node.Parent != nil {
		parent := node.Parent
		slot := node.MoveFromParent
		parent.VisitCount[slot]++
		parent.ValueSum[slot] += v
		v = -v
		node = parent
	}
}

// BestMove returns the root's chosen move. Without temperature it is
// the legal slot with the largest visit count (ties broken by the
// lowest slot index); with temperature it is sampled from the
// categorical distribution proportional to visit counts using the
// seeded random source.
func (m *MCTS) BestMove(temperature bool) (othello.Move, error) {
	if m.root == nil {
		return othello.Pass, errors.WithStack(ErrNoRoot)
	}
	if !m.root.Expanded && !m.root.IsTerminal() {
		m.root.expand(m.eval)
	}
	slots := m.root.legalSlots()
	if len(slots) == 0 {
		return othello.Pass, nil
	}

	if !temperature {
		best := slots[0]
		for _, slot := range slots[1:] {
			if m.root.VisitCount[slot] > m.root.VisitCount[best] {
				best = slot
			}
		}
		return othello.MoveFromSlot(best), nil
	}

	weights := make([]float64, len(slots))
	for i, slot := range slots {
		weights[i] = float64(m.root.VisitCount[slot])
	}
	idx := m.rng.SampleCategorical(weights)
	return othello.MoveFromSlot(slots[idx]), nil
}

// PolicyTarget returns a length-65 vector of visit_count[i] / sum, or
// all zeros if the root has received no visits.
func (m *MCTS) PolicyTarget() ([]float32, error) {
	if m.root == nil {
		return nil, errors.WithStack(ErrNoRoot)
	}
	out := make([]float32, othello.NumSlots)
	var sum int
	for _, v := range m.root.VisitCount {
		sum += v
	}
	if sum == 0 {
		return out, nil
	}
	for i, v := range m.root.VisitCount {
		out[i] = float32(v) / float32(sum)
	}
	return out, nil
}

// ValueTarget requires the root to be terminal: it returns 0 on a
// tie, +1 if the root's side has more disks, -1 if fewer.
func (m *MCTS) ValueTarget() (float32, error) {
	if m.root == nil {
		return 0, errors.WithStack(ErrNoRoot)
	}
	if !m.root.IsTerminal() {
		return 0, errors.WithStack(ErrNotTerminal)
	}
	own := m.root.Board.CountDisks(m.root.Side)
	opp := m.root.Board.CountDisks(othello.Opponent(m.root.Side))
	switch {
	case own > opp:
		return 1, nil
	case own < opp:
		return -1, nil
	default:
		return 0, nil
	}
}
