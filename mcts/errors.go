package mcts

import "github.com/pkg/errors"

// Sentinel errors for two precondition violations: calling an
// operation that requires a root before one has been set, or asking
// for a value target on a non-terminal root. These are recoverable
// library errors rather than fatal checks.
var (
	ErrNoRoot      = errors.New("mcts: no root set; call SetRoot first")
	ErrNotTerminal = errors.New("mcts: value target requested for a non-terminal root")
)
