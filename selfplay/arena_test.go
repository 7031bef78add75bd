package selfplay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alphabeth-othello/evaluator"
	"github.com/alphabeth-othello/mcts"
	"github.com/alphabeth-othello/othello"
)

func quickOptions() mcts.Options {
	opts := mcts.DefaultOptions()
	opts.NumSimulations = 8
	return opts
}

func TestArenaPlayWithoutRecordingReturnsNoExamples(t *testing.T) {
	a := &Side{Name: "A", Eval: evaluator.Disk{}}
	b := &Side{Name: "B", Eval: evaluator.Disk{}}
	ar := NewArena(a, b, quickOptions(), 1)

	examples, winner := ar.Play(false)
	assert.Empty(t, examples)
	assert.NotEqual(t, othello.Player(99), winner)
}

func TestArenaPlayRecordsValidExamples(t *testing.T) {
	a := &Side{Name: "A", Eval: evaluator.Disk{}}
	b := &Side{Name: "B", Eval: evaluator.Disk{}}
	ar := NewArena(a, b, quickOptions(), 2)

	examples, _ := ar.Play(true)
	require.NotEmpty(t, examples)
	for _, ex := range examples {
		require.Len(t, ex.Board, 3*othello.NumSquares)
		require.Len(t, ex.Policy, othello.NumSlots)
		assert.GreaterOrEqual(t, ex.Value, float32(-1))
		assert.LessOrEqual(t, ex.Value, float32(1))
	}
}

func TestArenaCloseAggregatesCloserErrors(t *testing.T) {
	a := &Side{Name: "A", Eval: evaluator.Disk{}}
	b := &Side{Name: "B", Eval: evaluator.Disk{}}
	ar := NewArena(a, b, quickOptions(), 3)
	assert.NoError(t, ar.Close())
}

func TestDihedralAugmentProducesEightVariantsPreservingPass(t *testing.T) {
	board := othello.New()
	policy := make([]float32, othello.NumSlots)
	policy[othello.PassSlot] = 1
	ex := Example{Board: board.ToTensor(othello.Black), Policy: policy, Value: 0.5}

	variants := DihedralAugment(ex)
	require.Len(t, variants, 8)
	for _, v := range variants {
		assert.Equal(t, float32(1), v.Policy[othello.PassSlot])
		assert.Equal(t, ex.Value, v.Value)

		var sum float32
		for _, p := range v.Board[:othello.NumSquares] {
			sum += p
		}
		assert.Equal(t, float32(2), sum)
	}
	assert.Equal(t, ex.Board, variants[0].Board)
}
