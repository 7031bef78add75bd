package othello

import "fmt"

// Move is a board coordinate, or the PASS sentinel when a side has no
// legal board move.
type Move struct {
	X, Y int8
}

// Pass is the sentinel move representing a forced turn skip.
var Pass = Move{X: -1, Y: -1}

// IsPass reports whether m is the PASS sentinel.
func (m Move) IsPass() bool {
	return m == Pass
}

// Slot returns the move's index in [0, NumSlots): y*8+x for a board
// move, PassSlot for Pass.
func (m Move) Slot() int {
	if m.IsPass() {
		return PassSlot
	}
	return index(int(m.X), int(m.Y))
}

// String renders a board move as its algebraic square (e.g. "d3") or
// "pass".
func (m Move) String() string {
	if m.IsPass() {
		return "pass"
	}
	return fmt.Sprintf("%c%d", 'a'+m.X, m.Y+1)
}

// MoveFromSlot is the inverse of Slot.
func MoveFromSlot(slot int) Move {
	if slot == PassSlot {
		return Pass
	}
	return Move{X: int8(slot % Size), Y: int8(slot / Size)}
}
