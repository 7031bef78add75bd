// Package agentproto is a thin I/O shell: a line-oriented protocol
// that feeds opponent moves into an mcts.MCTS engine and writes back
// the engine's reply. Socket errors and malformed lines are its only
// concern; the search itself lives entirely in mcts.
package agentproto

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/alphabeth-othello/mcts"
	"github.com/alphabeth-othello/othello"
)

// Shell drives one mcts.MCTS engine over a line-oriented byte stream.
type Shell struct {
	engine *mcts.MCTS
	side   othello.Player
	r      *bufio.Reader
	w      io.Writer
}

// NewShell builds a Shell around engine, reading the protocol stream
// from r and writing replies to w. engine must already have its root
// set to the game's starting position via SetRoot.
func NewShell(engine *mcts.MCTS, side othello.Player, r io.Reader, w io.Writer) *Shell {
	return &Shell{engine: engine, side: side, r: bufio.NewReader(r), w: w}
}

// Side returns the colour this shell was negotiated to play.
func (s *Shell) Side() othello.Player { return s.side }

// NegotiateSide reads a single line from the stream and returns
// othello.Black or othello.White according to whether it contains
// "Black" or "White".
func NegotiateSide(r *bufio.Reader) (othello.Player, error) {
	token, err := r.ReadString('\n')
	if err != nil && token == "" {
		return othello.None, errors.Wrap(err, "agentproto: reading side token")
	}
	switch {
	case strings.Contains(token, "Black"):
		return othello.Black, nil
	case strings.Contains(token, "White"):
		return othello.White, nil
	default:
		return othello.None, errors.Errorf("agentproto: side token %q names neither Black nor White", strings.TrimSpace(token))
	}
}

// Run reads "x y ms" lines until EOF or a malformed line, applying
// each as the opponent's move (or a pass when x == y == -1), then runs
// the engine and writes back its chosen move as "x y\n" (again using
// -1 -1 for a pass). A -1 -1 line received while the engine's root
// already has this shell's side to move applies nothing and only asks
// for a reply. The ms field is parsed but otherwise unused.
func (s *Shell) Run() error {
	for {
		line, err := s.r.ReadString('\n')
		if err == io.EOF && strings.TrimSpace(line) == "" {
			return nil
		}
		if err != nil && err != io.EOF {
			return errors.Wrap(err, "agentproto: reading move line")
		}

		move, _, perr := parseLine(line)
		if perr != nil {
			return perr
		}

		// A pass that arrives while it is already this shell's turn (the
		// opening line when playing Black) carries no opponent move.
		if !(move.IsPass() && s.engine.Root() != nil && s.engine.Root().Side == s.side) {
			if err := s.engine.ApplyMoveToRoot(move); err != nil {
				return errors.Wrap(err, "agentproto: applying opponent move")
			}
		}

		if err := s.engine.Run(); err != nil {
			return errors.Wrap(err, "agentproto: running search")
		}
		best, err := s.engine.BestMove(false)
		if err != nil {
			return errors.Wrap(err, "agentproto: selecting move")
		}
		if err := s.engine.ApplyMoveToRoot(best); err != nil {
			return errors.Wrap(err, "agentproto: applying own move")
		}

		if _, err := fmt.Fprintf(s.w, "%d %d\n", best.X, best.Y); err != nil {
			return errors.Wrap(err, "agentproto: writing reply")
		}

		if err == io.EOF {
			return nil
		}
	}
}

// parseLine parses a "x y ms" protocol line into a Move (Pass iff
// x == y == -1) and the remaining-milliseconds field.
func parseLine(line string) (move othello.Move, ms int, err error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return othello.Move{}, 0, errors.Errorf("agentproto: malformed line %q: want 3 fields, got %d", strings.TrimSpace(line), len(fields))
	}
	x, err := strconv.Atoi(fields[0])
	if err != nil {
		return othello.Move{}, 0, errors.Wrapf(err, "agentproto: parsing x in %q", line)
	}
	y, err := strconv.Atoi(fields[1])
	if err != nil {
		return othello.Move{}, 0, errors.Wrapf(err, "agentproto: parsing y in %q", line)
	}
	ms, err = strconv.Atoi(fields[2])
	if err != nil {
		return othello.Move{}, 0, errors.Wrapf(err, "agentproto: parsing ms in %q", line)
	}
	if x == -1 && y == -1 {
		return othello.Pass, ms, nil
	}
	return othello.Move{X: int8(x), Y: int8(y)}, ms, nil
}
