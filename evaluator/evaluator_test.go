package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alphabeth-othello/othello"
)

func TestDiskUniformPolicyOverLegalMoves(t *testing.T) {
	b := othello.New()
	policy, value := Disk{}.Evaluate(b, othello.Black)

	var sum float32
	for _, mv := range b.ValidMoves(othello.Black) {
		sum += policy[mv.Slot()]
	}
	assert.InDelta(t, float32(1), sum, 1e-6)
	assert.InDelta(t, float32(0), value, 1e-6) // starting position is even
}

func TestDiskValueIsZeroWithNoDisks(t *testing.T) {
	var b othello.Board
	_, value := Disk{}.Evaluate(b, othello.Black)
	assert.Zero(t, value)
}

func TestDiskValueSignFlipsByPerspective(t *testing.T) {
	b := othello.New()
	b.Apply(othello.Black, othello.Move{X: 3, Y: 2}) // black: 4, white: 1

	_, blackValue := Disk{}.Evaluate(b, othello.Black)
	_, whiteValue := Disk{}.Evaluate(b, othello.White)

	assert.Greater(t, blackValue, float32(0))
	assert.Equal(t, -blackValue, whiteValue)
}

func TestRandomValueInRange(t *testing.T) {
	r := NewRandom(1)
	b := othello.New()
	for i := 0; i < 50; i++ {
		_, value := r.Evaluate(b, othello.Black)
		assert.GreaterOrEqual(t, value, float32(-1))
		assert.LessOrEqual(t, value, float32(1))
	}
}
