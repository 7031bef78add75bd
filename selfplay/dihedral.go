package selfplay

import "github.com/alphabeth-othello/othello"

// dihedralTransform maps a board coordinate to its image under one of
// the square's 8 symmetries (the dihedral group D4).
type dihedralTransform func(x, y int) (int, int)

// Dihedral is the 8 symmetries of the 8x8 board: identity, the three
// non-trivial rotations, and the four reflections (horizontal,
// vertical, and both diagonals). Index 0 is always the identity.
var Dihedral = [8]dihedralTransform{
	func(x, y int) (int, int) { return x, y },
	func(x, y int) (int, int) { return y, othello.Size - 1 - x },
	func(x, y int) (int, int) { return othello.Size - 1 - x, othello.Size - 1 - y },
	func(x, y int) (int, int) { return othello.Size - 1 - y, x },
	func(x, y int) (int, int) { return othello.Size - 1 - x, y },
	func(x, y int) (int, int) { return x, othello.Size - 1 - y },
	func(x, y int) (int, int) { return y, x },
	func(x, y int) (int, int) { return othello.Size - 1 - y, othello.Size - 1 - x },
}

// DihedralAugment returns ex plus its 7 non-trivial symmetric
// variants, applied to both the board tensor's three planes and the
// policy target's 64 board slots. The PASS slot (index 64) is
// invariant under every transform and is copied unchanged.
func DihedralAugment(ex Example) []Example {
	out := make([]Example, 0, len(Dihedral))
	for _, t := range Dihedral {
		out = append(out, transformExample(ex, t))
	}
	return out
}

func transformExample(ex Example, t dihedralTransform) Example {
	board := make([]float32, len(ex.Board))
	policy := make([]float32, len(ex.Policy))
	if len(ex.Policy) == othello.NumSlots {
		policy[othello.PassSlot] = ex.Policy[othello.PassSlot]
	}

	planeSize := othello.NumSquares
	planes := len(ex.Board) / planeSize
	for y := 0; y < othello.Size; y++ {
		for x := 0; x < othello.Size; x++ {
			nx, ny := t(x, y)
			srcIdx := y*othello.Size + x
			dstIdx := ny*othello.Size + nx
			for p := 0; p < planes; p++ {
				board[p*planeSize+dstIdx] = ex.Board[p*planeSize+srcIdx]
			}
			if len(ex.Policy) == othello.NumSlots {
				policy[dstIdx] = ex.Policy[srcIdx]
			}
		}
	}

	return Example{Board: board, Policy: policy, Value: ex.Value}
}
