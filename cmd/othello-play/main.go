// othello-play drives the engine in one of three modes: self-play
// (logging each move and the final board and winner; no training
// examples are written), an interactive human-vs-engine
// stdio loop, or the agentproto line-protocol shell over a TCP
// listener.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"net"
	"os"

	"github.com/alphabeth-othello/agentproto"
	"github.com/alphabeth-othello/evaluator"
	"github.com/alphabeth-othello/mcts"
	"github.com/alphabeth-othello/othello"
)

var (
	mode   = flag.String("mode", "human", "one of: human, selfplay, serve")
	addr   = flag.String("addr", ":4000", "listen address for -mode=serve")
	numSim = flag.Int("num_simulations", 800, "MCTS simulations per move")
	cPuct  = flag.Float64("c_puct", 1.5, "PUCT exploration constant")
	seed   = flag.Int64("seed", 1, "random seed for the search's noise source")
)

func main() {
	flag.Parse()

	opts := mcts.DefaultOptions()
	opts.NumSimulations = *numSim
	opts.CPuct = float32(*cPuct)
	if !opts.IsValid() {
		log.Fatal("othello-play: invalid MCTS options")
	}

	switch *mode {
	case "human":
		runHuman(opts)
	case "selfplay":
		runSelfPlay(opts)
	case "serve":
		runServe(opts)
	default:
		log.Fatalf("othello-play: unknown -mode %q", *mode)
	}
}

func runHuman(opts mcts.Options) {
	board := othello.New()
	side := othello.Black
	engine := mcts.New(evaluator.Disk{}, opts, *seed)
	engine.SetRoot(board, side)

	scanner := bufio.NewScanner(os.Stdin)
	for !board.IsGameOver() {
		fmt.Println(board.String())
		if side == othello.Black {
			if err := engine.Run(); err != nil {
				log.Fatal(err)
			}
			move, err := engine.BestMove(false)
			if err != nil {
				log.Fatal(err)
			}
			fmt.Printf("engine plays %s\n", move)
			board.Apply(side, move)
			if err := engine.ApplyMoveToRoot(move); err != nil {
				log.Fatal(err)
			}
		} else {
			moves := board.ValidMoves(side)
			fmt.Printf("your move (valid: %v): ", moves)
			if !scanner.Scan() {
				return
			}
			var x, y int
			if _, err := fmt.Sscanf(scanner.Text(), "%d %d", &x, &y); err != nil {
				fmt.Println("malformed move, try again")
				continue
			}
			move := othello.Move{X: int8(x), Y: int8(y)}
			if !board.IsValid(side, move) {
				fmt.Println("illegal move, try again")
				continue
			}
			board.Apply(side, move)
			if err := engine.ApplyMoveToRoot(move); err != nil {
				log.Fatal(err)
			}
		}
		side = othello.Opponent(side)
	}
	fmt.Println(board.String())
	fmt.Printf("winner: %s\n", board.Winner())
}

func runSelfPlay(opts mcts.Options) {
	board := othello.New()
	side := othello.Black
	engine := mcts.New(evaluator.Disk{}, opts, *seed)
	engine.SetRoot(board, side)

	for !board.IsGameOver() {
		if err := engine.Run(); err != nil {
			log.Fatal(err)
		}
		move, err := engine.BestMove(true)
		if err != nil {
			log.Fatal(err)
		}
		board.Apply(side, move)
		log.Printf("%s plays %s", side, move)
		if err := engine.ApplyMoveToRoot(move); err != nil {
			log.Fatal(err)
		}
		side = othello.Opponent(side)
	}
	log.Printf("final board:\n%s", board.String())
	log.Printf("winner: %s", board.Winner())
}

func runServe(opts mcts.Options) {
	ln, err := net.Listen("tcp", *addr)
	if err != nil {
		log.Fatal(err)
	}
	defer ln.Close()
	log.Printf("othello-play: listening on %s", *addr)

	for {
		conn, err := ln.Accept()
		if err != nil {
			log.Printf("othello-play: accept: %v", err)
			continue
		}
		go serveConn(conn, opts)
	}
}

func serveConn(conn net.Conn, opts mcts.Options) {
	defer conn.Close()
	r := bufio.NewReader(conn)
	side, err := agentproto.NegotiateSide(r)
	if err != nil {
		log.Printf("othello-play: negotiating side: %v", err)
		return
	}

	engine := mcts.New(evaluator.Disk{}, opts, *seed)
	engine.SetRoot(othello.New(), othello.Black)

	shell := agentproto.NewShell(engine, side, r, conn)
	if err := shell.Run(); err != nil {
		log.Printf("othello-play: session ended: %v", err)
	}
}
