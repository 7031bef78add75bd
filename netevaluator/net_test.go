package netevaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alphabeth-othello/othello"
)

func TestNetEvaluateShapeAndRange(t *testing.T) {
	net, err := New(DefaultConfig())
	require.NoError(t, err)
	defer net.Close()

	board := othello.New()
	policy, value := net.Evaluate(board, othello.Black)

	require.Len(t, policy, othello.NumSlots)
	var sum float32
	for _, p := range policy {
		assert.GreaterOrEqual(t, p, float32(0))
		sum += p
	}
	assert.InDelta(t, float32(1), sum, 1e-3)
	assert.GreaterOrEqual(t, value, float32(-1))
	assert.LessOrEqual(t, value, float32(1))
}

func TestInvalidConfigRejected(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 19
	_, err := New(cfg)
	assert.Error(t, err)
}
