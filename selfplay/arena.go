package selfplay

import (
	"bytes"
	"fmt"
	"io"
	"log"

	"github.com/chewxy/math32"
	"github.com/hashicorp/go-multierror"

	"github.com/alphabeth-othello/evaluator"
	"github.com/alphabeth-othello/mcts"
	"github.com/alphabeth-othello/othello"
)

// Side names one of the two players in an Arena match by the evaluator
// driving its moves. In every Play call the Arena's first Side plays
// Black and its second plays White.
type Side struct {
	Name string
	Eval evaluator.Evaluator
	tree *mcts.MCTS
	wins, losses, draws int
}

// Arena plays two evaluators against each other over fresh mcts.MCTS
// trees and records training examples. A single Arena only ever
// touches its own two trees from one goroutine.
type Arena struct {
	a, b   *Side
	opts   mcts.Options
	seed   int64
	buf    bytes.Buffer
	logger *log.Logger
}

// NewArena builds an Arena from two named evaluators.
func NewArena(a, b *Side, opts mcts.Options, seed int64) *Arena {
	ar := &Arena{a: a, b: b, opts: opts, seed: seed}
	ar.logger = log.New(&ar.buf, "", log.Ltime)
	return ar
}

// Play plays one game to completion, black moving first, and returns
// one Example per recorded ply plus the game's winner. If record is
// false, no examples are collected. The value fields are left holding
// the mover's colour during play and backfilled from the true outcome
// once the game ends.
func (ar *Arena) Play(record bool) (examples []Example, winner othello.Player) {
	ar.a.tree = mcts.New(ar.a.Eval, ar.opts, ar.seed)
	ar.b.tree = mcts.New(ar.b.Eval, ar.opts, ar.seed+1)
	ar.a.tree.SetRoot(othello.New(), othello.Black)
	ar.b.tree.SetRoot(othello.New(), othello.Black)

	board := othello.New()
	side := othello.Black
	mover, other := ar.a, ar.b

	for !board.IsGameOver() {
		if err := mover.tree.Run(); err != nil {
			ar.logger.Printf("%s: run failed: %v", mover.Name, err)
			break
		}
		move, err := mover.tree.BestMove(record)
		if err != nil {
			ar.logger.Printf("%s: best move failed: %v", mover.Name, err)
			break
		}
		ar.logger.Printf("%s to move (%v): plays %v", mover.Name, side, move)

		if record {
			policy, perr := mover.tree.PolicyTarget()
			if perr == nil && validPolicy(policy) {
				examples = append(examples, Example{
					Board:  board.ToTensor(side),
					Policy: policy,
					Value:  float32(side),
				})
			}
		}

		board.Apply(side, move)
		side = othello.Opponent(side)

		if err := mover.tree.ApplyMoveToRoot(move); err != nil {
			ar.logger.Printf("%s: advancing own tree: %v", mover.Name, err)
		}
		if err := other.tree.ApplyMoveToRoot(move); err != nil {
			ar.logger.Printf("%s: advancing opponent tree: %v", other.Name, err)
		}
		mover, other = other, mover
	}

	winner = board.Winner()
	for i := range examples {
		switch {
		case winner == othello.None:
			examples[i].Value = 0
		case othello.Player(examples[i].Value) == winner:
			examples[i].Value = 1
		default:
			examples[i].Value = -1
		}
	}

	ar.recordResult(winner)
	return examples, winner
}

func (ar *Arena) recordResult(winner othello.Player) {
	switch winner {
	case othello.None:
		ar.a.draws++
		ar.b.draws++
	case othello.Black:
		ar.a.wins++
		ar.b.losses++
	case othello.White:
		ar.b.wins++
		ar.a.losses++
	}
}

// Log writes both sides' MCTS logs to w.
func (ar *Arena) Log(w io.Writer) {
	io.WriteString(w, ar.buf.String())
	fmt.Fprintf(w, "\n%s:\n\n%s\n", ar.a.Name, ar.a.tree.Log())
	fmt.Fprintf(w, "\n%s:\n\n%s\n", ar.b.Name, ar.b.tree.Log())
}

// Close releases both sides' evaluators, if they implement io.Closer,
// aggregating any errors.
func (ar *Arena) Close() error {
	var result *multierror.Error
	if c, ok := ar.a.Eval.(io.Closer); ok {
		if err := c.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if c, ok := ar.b.Eval.(io.Closer); ok {
		if err := c.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

func validPolicy(policy []float32) bool {
	for _, v := range policy {
		if math32.IsInf(v, 0) || math32.IsNaN(v) {
			return false
		}
	}
	return true
}
