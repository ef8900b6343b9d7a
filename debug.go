package touchtree

import (
	"fmt"
	"io"
	"os"
)

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations and HitTest (which lack a Scene pointer) can check it cheaply.
// Only valid with a single Scene; multiple Scenes with differing debug modes
// will reflect whichever called SetDebugMode last.
var globalDebug bool

// debugOut is where debug diagnostics go. Tests swap it out.
var debugOut io.Writer = os.Stderr

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. In release mode callers skip this entirely.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("touchtree debug: %s on disposed node %q", op, n.Name))
	}
}

// debugMaxTreeDepth is the depth at which AddChild starts warning. It sits
// well below MaxHitDepth so deep trees are noticed before hit testing
// refuses them.
const debugMaxTreeDepth = 32

// debugCheckTreeDepth measures the deepest path through n: its ancestors plus
// the height of the subtree it brings along.
func debugCheckTreeDepth(n *Node) {
	depth := subtreeHeight(n) - 1
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(debugOut, "[touchtree] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.Name)
	}
}

// subtreeHeight counts the nodes on the longest downward path from n.
func subtreeHeight(n *Node) int {
	h := 0
	for _, c := range n.children {
		h = max(h, subtreeHeight(c))
	}
	return h + 1
}

// debugCheckChildCount warns if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		_, _ = fmt.Fprintf(debugOut, "[touchtree] warning: node %q has %d children (threshold %d)\n",
			n.Name, len(n.children), debugMaxChildCount)
	}
}

// debugReportHitError reports a hit test that gave up on a malformed tree.
func debugReportHitError(root *Node, err error) {
	_, _ = fmt.Fprintf(debugOut, "[touchtree] hit test under %q: %v\n", root.Name, err)
}

// debugLogPress prints the chain a pointer press resolved to.
func debugLogPress(pointerID int, wx, wy float64, chain HitChain) {
	if len(chain) == 0 {
		_, _ = fmt.Fprintf(debugOut, "[touchtree] pointer %d press (%.1f, %.1f): no hit\n", pointerID, wx, wy)
		return
	}
	_, _ = fmt.Fprintf(debugOut, "[touchtree] pointer %d press (%.1f, %.1f): %s\n", pointerID, wx, wy, chain)
}
