package othello

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStartingPosition(t *testing.T) {
	b := New()
	assert.Equal(t, 2, b.CountDisks(Black))
	assert.Equal(t, 2, b.CountDisks(White))
	assert.False(t, b.IsGameOver())
	assert.Zero(t, b.Black&b.White)
}

func TestValidMovesStartingPosition(t *testing.T) {
	b := New()
	moves := b.ValidMoves(Black)
	want := []Move{{3, 2}, {2, 3}, {5, 4}, {4, 5}}
	require.Equal(t, want, moves)
	for _, m := range moves {
		assert.True(t, b.IsValid(Black, m))
	}
}

func TestApplyFlipsBracketedRun(t *testing.T) {
	b := New()
	ok := b.Apply(Black, Move{3, 2})
	require.True(t, ok)

	assert.Equal(t, Black, b.At(3, 2))
	assert.Equal(t, Black, b.At(3, 3))
	assert.Equal(t, Black, b.At(3, 4))
	assert.Equal(t, Black, b.At(4, 3))
	assert.Equal(t, White, b.At(4, 4))

	assert.Equal(t, 4, b.CountDisks(Black))
	assert.Equal(t, 1, b.CountDisks(White))
	assert.Zero(t, b.Black&b.White)
}

func TestApplyIllegalMoveLeavesBoardUnchanged(t *testing.T) {
	b := New()
	before := b
	ok := b.Apply(Black, Move{0, 0})
	assert.False(t, ok)
	assert.Equal(t, before, b)

	ok = b.Apply(Black, Move{3, 3}) // occupied square
	assert.False(t, ok)
	assert.Equal(t, before, b)
}

func TestOffBoardIsInvalid(t *testing.T) {
	b := New()
	assert.False(t, b.IsValid(Black, Move{-1, 4}))
	assert.False(t, b.IsValid(Black, Move{8, 4}))
	assert.Equal(t, None, b.At(-1, 4))
	assert.Equal(t, None, b.At(8, 4))
}

func TestWinnerHasMoreDisks(t *testing.T) {
	var b Board
	// 40 black disks, 24 white disks, rest empty.
	for i := 0; i < 40; i++ {
		b.Black |= uint64(1) << uint(i)
	}
	for i := 40; i < 64; i++ {
		b.White |= uint64(1) << uint(i)
	}
	assert.Equal(t, Black, b.Winner())
}

func TestForcedPass(t *testing.T) {
	// A position where Black has no move but White does: fill the board
	// with White except for an empty corner and one Black disk beside it.
	// Black cannot flip into the corner; White can, by bracketing that disk.
	var b Board
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			if x == 0 && y == 0 {
				continue
			}
			if x == 1 && y == 0 {
				b.Black |= bit(x, y)
				continue
			}
			b.White |= bit(x, y)
		}
	}
	require.False(t, b.HasValidMove(Black))
	require.True(t, b.HasValidMove(White))
	assert.Equal(t, []Move{Pass}, b.ValidMoves(Black))

	before := b
	ok := b.Apply(Black, Pass)
	assert.True(t, ok)
	assert.Equal(t, before, b)
}

func TestToTensorRecoversDiskCountFromOwnPlane(t *testing.T) {
	b := New()
	b.Apply(Black, Move{3, 2})
	tensor := b.ToTensor(Black)
	require.Len(t, tensor, 3*NumSquares)

	var sum float32
	for _, v := range tensor[:NumSquares] {
		sum += v
	}
	assert.Equal(t, float32(b.CountDisks(Black)), sum)
}

func TestMoveSlotRoundTrip(t *testing.T) {
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			m := Move{int8(x), int8(y)}
			assert.Equal(t, m, MoveFromSlot(m.Slot()))
		}
	}
	assert.Equal(t, Pass, MoveFromSlot(Pass.Slot()))
	assert.Equal(t, PassSlot, Pass.Slot())
}

func TestOpponentPanicsOnNone(t *testing.T) {
	assert.Panics(t, func() { Opponent(None) })
}
