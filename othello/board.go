// Package othello implements the bitboard engine: move generation,
// legality tests, applying a move with ray flips, terminal detection
// and tensor encoding for evaluators.
package othello

import "math/bits"

// Size is the board's width and height.
const Size = 8

// NumSquares is the number of board squares.
const NumSquares = Size * Size

// PassSlot is the move-slot index reserved for PASS. Board squares
// occupy slots [0, PassSlot).
const PassSlot = NumSquares

// NumSlots is the total number of move slots (board squares + PASS).
const NumSlots = NumSquares + 1

// Board is the bitboard game state: one bit per square per colour.
// The invariant Black&White == 0 must hold after every public
// operation; a square is empty iff its bit is clear in both boards.
type Board struct {
	Black uint64
	White uint64
}

// New returns a Board in the standard Othello starting position:
// black at (4,3),(3,4); white at (3,3),(4,4).
func New() Board {
	var b Board
	b.Black = bit(4, 3) | bit(3, 4)
	b.White = bit(3, 3) | bit(4, 4)
	return b
}

func index(x, y int) int { return y*Size + x }

func bit(x, y int) uint64 { return uint64(1) << uint(index(x, y)) }

func onBoard(x, y int) bool { return x >= 0 && x < Size && y >= 0 && y < Size }

// directions are the eight unit rays a flip search walks along.
var directions = [8][2]int{
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

// At returns the occupant of (x,y), or None for off-board coordinates
// or an empty square.
func (b Board) At(x, y int) Player {
	if !onBoard(x, y) {
		return None
	}
	m := bit(x, y)
	switch {
	case b.Black&m != 0:
		return Black
	case b.White&m != 0:
		return White
	default:
		return None
	}
}

func (b Board) bitboardFor(p Player) uint64 {
	if p == Black {
		return b.Black
	}
	return b.White
}

// flipMask returns the bitmask of opponent disks that would be
// bracketed (flipped) by side placing a disk at (x,y). It is zero iff
// the move is illegal (occupied square, off-board, or brackets in zero
// directions).
func (b Board) flipMask(side Player, x, y int) uint64 {
	if !onBoard(x, y) || b.At(x, y) != None {
		return 0
	}
	own := b.bitboardFor(side)
	opp := b.bitboardFor(Opponent(side))

	var flips uint64
	for _, d := range directions {
		var run uint64
		cx, cy := x+d[0], y+d[1]
		for onBoard(cx, cy) {
			m := bit(cx, cy)
			if opp&m != 0 {
				run |= m
				cx += d[0]
				cy += d[1]
				continue
			}
			if own&m != 0 && run != 0 {
				flips |= run
			}
			break
		}
	}
	return flips
}

// IsValid reports whether move is legal for side. PASS is legal iff
// side has no board move available.
func (b Board) IsValid(side Player, move Move) bool {
	if move.IsPass() {
		return !b.HasValidMove(side)
	}
	return b.flipMask(side, int(move.X), int(move.Y)) != 0
}

// ValidMoves returns the ordered list of legal moves for side: board
// squares scanned row-major (y outer, x inner, both ascending), or
// [Pass] if none exist.
func (b Board) ValidMoves(side Player) []Move {
	var moves []Move
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			if b.flipMask(side, x, y) != 0 {
				moves = append(moves, Move{X: int8(x), Y: int8(y)})
			}
		}
	}
	if len(moves) == 0 {
		return []Move{Pass}
	}
	return moves
}

// HasValidMove reports whether side has at least one board move. PASS
// never counts.
func (b Board) HasValidMove(side Player) bool {
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			if b.flipMask(side, x, y) != 0 {
				return true
			}
		}
	}
	return false
}

// IsGameOver reports whether neither side has a board move.
func (b Board) IsGameOver() bool {
	return !b.HasValidMove(Black) && !b.HasValidMove(White)
}

// Apply places a disk of side on move's square and flips every
// bracketed run, or applies a no-op PASS. It returns false (leaving
// the board unchanged) for an illegal non-pass move.
func (b *Board) Apply(side Player, move Move) bool {
	if move.IsPass() {
		return !b.HasValidMove(side)
	}
	flips := b.flipMask(side, int(move.X), int(move.Y))
	if flips == 0 {
		return false
	}
	placed := bit(int(move.X), int(move.Y))
	if side == Black {
		b.Black |= placed | flips
		b.White &^= flips
	} else {
		b.White |= placed | flips
		b.Black &^= flips
	}
	return true
}

// Clone returns an independent copy of b. Board holds no pointers or
// slices, so this is a plain value copy; it exists so callers can snapshot
// a board by value without relying on assignment alone being obviously safe.
func (b Board) Clone() Board {
	return b
}

// CountDisks returns the popcount of side's bitboard.
func (b Board) CountDisks(side Player) int {
	return bits.OnesCount64(b.bitboardFor(side))
}

// Winner returns the side with more disks, or None on a tie.
// Meaningful only once IsGameOver is true.
func (b Board) Winner() Player {
	black, white := b.CountDisks(Black), b.CountDisks(White)
	switch {
	case black > white:
		return Black
	case white > black:
		return White
	default:
		return None
	}
}

// ToTensor encodes the board from side's perspective as 192 floats:
// three row-major 8x8 planes, own disks, opponent disks, and side's
// legality mask (1.0 at each legal non-pass square).
func (b Board) ToTensor(side Player) []float32 {
	out := make([]float32, 3*NumSquares)
	own := b.bitboardFor(side)
	opp := b.bitboardFor(Opponent(side))
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			i := index(x, y)
			m := bit(x, y)
			if own&m != 0 {
				out[i] = 1
			}
			if opp&m != 0 {
				out[NumSquares+i] = 1
			}
		}
	}
	for _, mv := range b.ValidMoves(side) {
		if !mv.IsPass() {
			out[2*NumSquares+index(int(mv.X), int(mv.Y))] = 1
		}
	}
	return out
}

// String renders the board as an 8x8 ASCII grid: '.' empty, 'B' black,
// 'W' white.
func (b Board) String() string {
	buf := make([]byte, 0, Size*(Size+1))
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			switch b.At(x, y) {
			case Black:
				buf = append(buf, 'B')
			case White:
				buf = append(buf, 'W')
			default:
				buf = append(buf, '.')
			}
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}
