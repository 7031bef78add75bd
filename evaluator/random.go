package evaluator

import (
	"math/rand"

	"github.com/alphabeth-othello/othello"
)

// Random is a deterministic-given-seed evaluator returning a uniform
// policy over legal moves and a uniform random value in [-1, 1]. It
// exists to exercise mcts against an evaluator whose value signal
// carries no information, distinct from Disk's informative one.
type Random struct {
	Rand *rand.Rand
}

// NewRandom returns a Random evaluator seeded deterministically.
func NewRandom(seed int64) *Random {
	return &Random{Rand: rand.New(rand.NewSource(seed))}
}

// Evaluate implements Evaluator.
func (r *Random) Evaluate(board othello.Board, side othello.Player) (policy []float32, value float32) {
	policy = make([]float32, othello.NumSlots)
	moves := board.ValidMoves(side)
	p := float32(1) / float32(len(moves))
	for _, m := range moves {
		policy[m.Slot()] = p
	}
	value = r.Rand.Float32()*2 - 1
	return policy, value
}
