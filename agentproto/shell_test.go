package agentproto

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alphabeth-othello/evaluator"
	"github.com/alphabeth-othello/mcts"
	"github.com/alphabeth-othello/othello"
)

func TestNegotiateSideParsesBlackAndWhite(t *testing.T) {
	black, err := NegotiateSide(bufio.NewReader(strings.NewReader("Black\n")))
	require.NoError(t, err)
	assert.Equal(t, othello.Black, black)

	white, err := NegotiateSide(bufio.NewReader(strings.NewReader("White\n")))
	require.NoError(t, err)
	assert.Equal(t, othello.White, white)
}

func TestNegotiateSideRejectsUnknownToken(t *testing.T) {
	_, err := NegotiateSide(bufio.NewReader(strings.NewReader("Purple\n")))
	assert.Error(t, err)
}

func TestShellRunRepliesWithLegalMoveAndHandlesPass(t *testing.T) {
	opts := mcts.DefaultOptions()
	opts.NumSimulations = 4
	engine := mcts.New(evaluator.Disk{}, opts, 7)
	engine.SetRoot(othello.New(), othello.Black)

	// -1 -1 0 kicks off the session: no opponent move has happened yet,
	// so the shell's root is asked to reply as Black immediately.
	in := strings.NewReader("-1 -1 0\n")
	var out strings.Builder
	shell := NewShell(engine, othello.Black, in, &out)

	require.NoError(t, shell.Run())
	fields := strings.Fields(out.String())
	require.Len(t, fields, 2)
}

func TestParseLineRejectsMalformedInput(t *testing.T) {
	_, _, err := parseLine("3 4\n")
	assert.Error(t, err)

	_, _, err = parseLine("x y 10\n")
	assert.Error(t, err)

	move, ms, err := parseLine("-1 -1 500\n")
	require.NoError(t, err)
	assert.True(t, move.IsPass())
	assert.Equal(t, 500, ms)
}
