// render-tree runs a fixed number of MCTS simulations from the
// starting position and writes the resulting subtree as Graphviz DOT,
// for visual debugging of search behaviour.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/alphabeth-othello/evaluator"
	"github.com/alphabeth-othello/mcts"
	"github.com/alphabeth-othello/othello"
	"github.com/alphabeth-othello/viz"
)

var (
	numSim   = flag.Int("num_simulations", 100, "MCTS simulations to run before rendering")
	maxDepth = flag.Int("max_depth", 2, "tree depth to render (-1 for unlimited)")
	outPath  = flag.String("out", "tree.dot", "output DOT file path")
	seed     = flag.Int64("seed", 1, "random seed for the search's noise source")
)

func main() {
	flag.Parse()

	opts := mcts.DefaultOptions()
	opts.NumSimulations = *numSim
	if !opts.IsValid() {
		log.Fatal("render-tree: invalid MCTS options")
	}

	engine := mcts.New(evaluator.Disk{}, opts, *seed)
	engine.SetRoot(othello.New(), othello.Black)
	if err := engine.Run(); err != nil {
		log.Fatal(err)
	}

	dot, err := viz.TreeDOT(engine.Root(), *maxDepth)
	if err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile(*outPath, []byte(dot), 0644); err != nil {
		log.Fatal(err)
	}
	log.Printf("render-tree: wrote %s", *outPath)
}
