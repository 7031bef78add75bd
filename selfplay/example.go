// Package selfplay plays evaluators against each other over the mcts
// driver and produces (board tensor, visit-count policy, terminal
// value) training examples.
package selfplay

import "github.com/alphabeth-othello/othello"

// Example is one training example: the board tensor as seen by the
// side to move, the MCTS visit-count policy target, and the game's
// final value from that side's perspective.
type Example struct {
	Board  []float32
	Policy []float32
	Value  float32
}

// Augmenter expands one example into several, e.g. via board
// symmetries.
type Augmenter func(Example) []Example
