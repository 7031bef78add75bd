// Package evaluator defines the position-evaluation contract consumed
// by the mcts package, plus a couple of reference implementations used
// in tests and self-play.
package evaluator

import "github.com/alphabeth-othello/othello"

// Evaluator is the sole capability mcts requires of a position
// evaluator: given a board and the side to move, return a policy over
// the othello.NumSlots move slots (not required to be normalised) and
// a value in [-1, 1] from side's perspective.
//
// Evaluate is called synchronously and has no error return; a backend
// that can fail internally should panic instead.
type Evaluator interface {
	Evaluate(board othello.Board, side othello.Player) (policy []float32, value float32)
}
