package mcts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alphabeth-othello/evaluator"
	"github.com/alphabeth-othello/othello"
)

func newTestMCTS(seed int64) *MCTS {
	opts := Options{NumSimulations: 64, CPuct: 1.5, DirichletAlpha: 0.3, DirichletEpsilon: 0.25}
	return New(evaluator.Disk{}, opts, seed)
}

func TestRunProducesMoveAmongOpeningMoves(t *testing.T) {
	m := newTestMCTS(7)
	m.SetRoot(othello.New(), othello.Black)
	require.NoError(t, m.Run())

	move, err := m.BestMove(false)
	require.NoError(t, err)

	opening := map[othello.Move]bool{
		{X: 3, Y: 2}: true,
		{X: 2, Y: 3}: true,
		{X: 5, Y: 4}: true,
		{X: 4, Y: 5}: true,
	}
	assert.True(t, opening[move], "unexpected move %v", move)

	var sum int
	for _, v := range m.Root().VisitCount {
		sum += v
	}
	assert.Equal(t, 64, sum)
}

func TestApplyMoveToRootReusesSubtreeStatistics(t *testing.T) {
	m := newTestMCTS(7)
	m.SetRoot(othello.New(), othello.Black)
	require.NoError(t, m.Run())

	move, err := m.BestMove(false)
	require.NoError(t, err)
	slot := move.Slot()
	child := m.Root().Children[slot]
	require.NotNil(t, child)
	childVisitsBefore := child.totalVisits()

	require.NoError(t, m.ApplyMoveToRoot(move))
	assert.Same(t, child, m.Root())
	assert.Nil(t, m.Root().Parent)
	assert.Equal(t, childVisitsBefore, m.Root().totalVisits())
}

func TestApplyMoveToRootWithoutExistingChildBuildsFreshRoot(t *testing.T) {
	m := newTestMCTS(7)
	m.SetRoot(othello.New(), othello.Black)

	require.NoError(t, m.ApplyMoveToRoot(othello.Move{X: 3, Y: 2}))
	want := othello.New()
	want.Apply(othello.Black, othello.Move{X: 3, Y: 2})
	assert.Equal(t, want, m.Root().Board)
	assert.Equal(t, othello.White, m.Root().Side)
	assert.False(t, m.Root().Expanded)
}

func TestValueTargetTerminalBoard(t *testing.T) {
	var b othello.Board
	for i := 0; i < 40; i++ {
		b.Black |= uint64(1) << uint(i)
	}
	for i := 40; i < 64; i++ {
		b.White |= uint64(1) << uint(i)
	}

	m := newTestMCTS(1)
	m.SetRoot(b, othello.Black)
	v, err := m.ValueTarget()
	require.NoError(t, err)
	assert.Equal(t, float32(1), v)

	m.SetRoot(b, othello.White)
	v, err = m.ValueTarget()
	require.NoError(t, err)
	assert.Equal(t, float32(-1), v)
}

func TestValueTargetRequiresTerminalRoot(t *testing.T) {
	m := newTestMCTS(1)
	m.SetRoot(othello.New(), othello.Black)
	_, err := m.ValueTarget()
	assert.ErrorIs(t, err, ErrNotTerminal)
}

func TestOperationsWithoutRootReturnErrNoRoot(t *testing.T) {
	m := newTestMCTS(1)
	_, err := m.BestMove(false)
	assert.ErrorIs(t, err, ErrNoRoot)

	err = m.ApplyMoveToRoot(othello.Pass)
	assert.ErrorIs(t, err, ErrNoRoot)

	_, err = m.PolicyTarget()
	assert.ErrorIs(t, err, ErrNoRoot)

	_, err = m.ValueTarget()
	assert.ErrorIs(t, err, ErrNoRoot)

	err = m.Run()
	assert.ErrorIs(t, err, ErrNoRoot)
}

func TestForcedPassBuildsOnlyPassChild(t *testing.T) {
	// Black has no board move; White does (by bracketing the single
	// Black disk at (1,0) from the empty corner).
	var b othello.Board
	for y := 0; y < othello.Size; y++ {
		for x := 0; x < othello.Size; x++ {
			if x == 0 && y == 0 {
				continue
			}
			if x == 1 && y == 0 {
				b.Black |= uint64(1) << uint(y*othello.Size+x)
				continue
			}
			b.White |= uint64(1) << uint(y*othello.Size+x)
		}
	}
	m := newTestMCTS(3)
	m.SetRoot(b, othello.Black)
	require.NoError(t, m.Run())

	move, err := m.BestMove(false)
	require.NoError(t, err)
	assert.True(t, move.IsPass())
	assert.Len(t, m.Root().Children, 1)
	assert.Contains(t, m.Root().Children, othello.PassSlot)
}

func TestPolicyTargetSumsToOne(t *testing.T) {
	m := newTestMCTS(9)
	m.SetRoot(othello.New(), othello.Black)
	require.NoError(t, m.Run())

	policy, err := m.PolicyTarget()
	require.NoError(t, err)
	var sum float32
	for _, p := range policy {
		sum += p
	}
	assert.InDelta(t, float32(1), sum, 1e-5)
}

func TestDirichletNoiseKeepsRootPriorsNormalised(t *testing.T) {
	m := newTestMCTS(5)
	m.SetRoot(othello.New(), othello.Black)
	require.NoError(t, m.AddDirichletNoise())
	require.True(t, m.Root().Expanded)

	var sum float32
	for _, slot := range m.Root().legalSlots() {
		sum += m.Root().Prior[slot]
	}
	assert.InDelta(t, float32(1), sum, 1e-4)
}

func TestParentChildInvariant(t *testing.T) {
	m := newTestMCTS(11)
	m.SetRoot(othello.New(), othello.Black)
	require.NoError(t, m.Run())

	var walk func(n *TreeNode)
	walk = func(n *TreeNode) {
		for slot, child := range n.Children {
			assert.Same(t, n, child.Parent)
			assert.Equal(t, slot, child.MoveFromParent)
			walk(child)
		}
	}
	walk(m.Root())
}
