package viz

import (
	"fmt"

	"github.com/awalterschulze/gographviz"

	"github.com/alphabeth-othello/mcts"
	"github.com/alphabeth-othello/othello"
)

// TreeDOT renders an MCTS subtree rooted at node as a Graphviz DOT
// string, down to maxDepth levels (maxDepth < 0 means unlimited). Each
// node is labelled with its side to move and total visit count; each
// edge is labelled with the move and that edge's visit count and mean
// value.
func TreeDOT(root *mcts.TreeNode, maxDepth int) (string, error) {
	g := gographviz.NewGraph()
	if err := g.SetName("mcts"); err != nil {
		return "", err
	}
	if err := g.SetDir(true); err != nil {
		return "", err
	}

	ids := make(map[*mcts.TreeNode]string)
	var walk func(n *mcts.TreeNode, depth int) error
	walk = func(n *mcts.TreeNode, depth int) error {
		id := nodeID(ids, n)
		label := fmt.Sprintf("\"%s\\nvisits=%d\"", n.Side, totalVisits(n))
		if err := g.AddNode("mcts", id, map[string]string{"label": label}); err != nil {
			return err
		}
		if maxDepth >= 0 && depth >= maxDepth {
			return nil
		}
		for slot, child := range n.Children {
			childID := nodeID(ids, child)
			if err := walk(child, depth+1); err != nil {
				return err
			}
			move := othello.MoveFromSlot(slot)
			edgeLabel := fmt.Sprintf("\"%s n=%d q=%.2f\"", move, n.VisitCount[slot], meanValue(n, slot))
			if err := g.AddEdge(id, childID, true, map[string]string{"label": edgeLabel}); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(root, 0); err != nil {
		return "", err
	}
	return g.String(), nil
}

func nodeID(ids map[*mcts.TreeNode]string, n *mcts.TreeNode) string {
	if id, ok := ids[n]; ok {
		return id
	}
	id := fmt.Sprintf("n%d", len(ids))
	ids[n] = id
	return id
}

func totalVisits(n *mcts.TreeNode) int {
	total := 0
	for _, v := range n.VisitCount {
		total += v
	}
	return total
}

func meanValue(n *mcts.TreeNode, slot int) float32 {
	if n.VisitCount[slot] == 0 {
		return 0
	}
	return n.ValueSum[slot] / float32(n.VisitCount[slot])
}
