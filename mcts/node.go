package mcts

import (
	"github.com/chewxy/math32"
	"gorgonia.org/vecf32"

	"github.com/alphabeth-othello/evaluator"
	"github.com/alphabeth-othello/othello"
)

// noParentSlot marks the root's MoveFromParent, which is otherwise
// undefined.
const noParentSlot = -1

// TreeNode is a single position reached during search. Per-slot
// statistics (slots 0..63 are board squares, slot 64 is PASS) are only
// meaningful for legal moves; every other slot stays zero. A node is
// exclusively owned by its parent through Children; Parent is a
// non-owning back-reference, nil only at the root.
type TreeNode struct {
	Board othello.Board
	Side  othello.Player

	Expanded   bool
	LegalMoves []othello.Move
	LegalMask  uint64

	Prior      [othello.NumSlots]float32
	ValueSum   [othello.NumSlots]float32
	VisitCount [othello.NumSlots]int

	Children map[int]*TreeNode

	Parent         *TreeNode
	MoveFromParent int
}

func newNode(board othello.Board, side othello.Player, parent *TreeNode, moveFromParent int) *TreeNode {
	return &TreeNode{
		Board:          board,
		Side:           side,
		Children:       make(map[int]*TreeNode),
		Parent:         parent,
		MoveFromParent: moveFromParent,
	}
}

func newRoot(board othello.Board, side othello.Player) *TreeNode {
	return newNode(board, side, nil, noParentSlot)
}

// IsTerminal reports whether neither side has a board move at this
// position.
func (n *TreeNode) IsTerminal() bool {
	return n.Board.IsGameOver()
}

// totalVisits sums VisitCount across all slots at this node.
func (n *TreeNode) totalVisits() int {
	total := 0
	for _, v := range n.VisitCount {
		total += v
	}
	return total
}

// meanValue returns Q(slot): value_sum/visit_count, or 0 if unvisited.
func (n *TreeNode) meanValue(slot int) float32 {
	if n.VisitCount[slot] == 0 {
		return 0
	}
	return n.ValueSum[slot] / float32(n.VisitCount[slot])
}

// ucbScore computes Q + c_puct*P*sqrt(total_visits)/(1+N) for slot.
func (n *TreeNode) ucbScore(slot int, totalVisits int, cPuct float32) float32 {
	q := n.meanValue(slot)
	p := n.Prior[slot]
	exploration := cPuct * p * math32.Sqrt(float32(totalVisits)) / (1 + float32(n.VisitCount[slot]))
	return q + exploration
}

// legalSlots returns the move slots considered during selection: every
// legal non-pass square, plus PASS when it is the node's only legal
// move.
func (n *TreeNode) legalSlots() []int {
	if len(n.LegalMoves) == 1 && n.LegalMoves[0].IsPass() {
		return []int{othello.PassSlot}
	}
	slots := make([]int, 0, len(n.LegalMoves))
	for i := 0; i < othello.NumSquares; i++ {
		if n.LegalMask&(uint64(1)<<uint(i)) != 0 {
			slots = append(slots, i)
		}
	}
	return slots
}

// selectSlot picks the legal slot maximising ucbScore, tie-broken by
// the lowest slot index.
func (n *TreeNode) selectSlot(cPuct float32) int {
	total := n.totalVisits()
	best := -1
	var bestScore float32
	for _, slot := range n.legalSlots() {
		score := n.ucbScore(slot, total, cPuct)
		if best == -1 || score > bestScore {
			best = slot
			bestScore = score
		}
	}
	return best
}

// expand evaluates the node's position, records legal moves and the
// legality mask, and writes normalised priors for legal non-pass
// slots. Precondition: !n.Expanded && !n.IsTerminal(). The evaluator is
// invoked exactly once; its value is returned for the caller to use in
// backpropagation.
func (n *TreeNode) expand(eval evaluator.Evaluator) (value float32) {
	policy, value := eval.Evaluate(n.Board, n.Side)

	n.LegalMoves = n.Board.ValidMoves(n.Side)
	n.LegalMask = 0
	for _, m := range n.LegalMoves {
		if !m.IsPass() {
			n.LegalMask |= uint64(1) << uint(m.Slot())
		}
	}

	var sum float32
	for i := 0; i < othello.NumSquares; i++ {
		if n.LegalMask&(uint64(1)<<uint(i)) != 0 && i < len(policy) {
			n.Prior[i] = policy[i]
			sum += policy[i]
		}
	}
	if sum > 1e-8 {
		// Every slot outside LegalMask is already zero, so scaling the
		// whole board range leaves them at zero and only renormalises
		// the legal priors.
		vecf32.Scale(n.Prior[:othello.NumSquares], 1/sum)
	}

	n.Expanded = true
	return value
}
