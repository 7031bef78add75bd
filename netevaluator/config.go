package netevaluator

// Config configures the small dual (policy+value) network: trunk
// width, shared layer depth, batch size, board geometry, feature
// planes, and action space. Fixed here to Othello's 8x8 board, 3 input
// planes (own, opponent, legality; see othello.Board.ToTensor) and 65
// move slots.
type Config struct {
	K            int  `json:"k"`             // number of hidden units in the shared trunk
	SharedLayers int  `json:"shared_layers"` // shared dense blocks; not read: New always builds one
	BatchSize    int  `json:"batch_size"`    // not read: Train uses every example it is given as one batch
	Width        int  `json:"width"`         // board width
	Height       int  `json:"height"`        // board height
	Features     int  `json:"features"`      // input planes
	ActionSpace  int  `json:"action_space"`  // output move slots
	FwdOnly      bool `json:"fwd_only"`      // not read: New always builds a forward-only graph
}

// DefaultConfig returns sane defaults for an 8x8 Othello board.
func DefaultConfig() Config {
	k := round(8 * 8 / 3)
	return Config{
		K:            k,
		SharedLayers: 1,
		BatchSize:    32,
		Width:        8,
		Height:       8,
		Features:     3,
		ActionSpace:  65,
	}
}

// IsValid reports whether the configuration is usable.
func (c Config) IsValid() bool {
	return c.K >= 1 &&
		c.ActionSpace == 65 &&
		c.SharedLayers >= 0 &&
		c.BatchSize >= 1 &&
		c.Width == 8 && c.Height == 8 &&
		c.Features > 0
}

// round rounds a to the nearest power of two.
func round(a int) int {
	n := a - 1
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++

	lt := n / 2
	if (a - lt) < (n - a) {
		return lt
	}
	return n
}
