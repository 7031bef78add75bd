package evaluator

import "github.com/alphabeth-othello/othello"

// Disk is the reference evaluator used in tests: a uniform policy over
// legal moves (including PASS when it is the only one), and a value
// equal to the normalised disk differential from side's perspective,
// zero when the board holds no disks at all.
type Disk struct{}

// Evaluate implements Evaluator.
func (Disk) Evaluate(board othello.Board, side othello.Player) (policy []float32, value float32) {
	policy = make([]float32, othello.NumSlots)
	moves := board.ValidMoves(side)
	p := float32(1) / float32(len(moves))
	for _, m := range moves {
		policy[m.Slot()] = p
	}

	black := board.CountDisks(othello.Black)
	white := board.CountDisks(othello.White)
	total := black + white
	if total == 0 {
		return policy, 0
	}
	diff := float32(black-white) / float32(total)
	if side == othello.White {
		diff = -diff
	}
	return policy, diff
}
