package touchtree

import (
	"errors"
	"strings"
)

// MaxHitDepth bounds how deep HitTestChecked descends. Trees built through
// AddChild cannot contain cycles, so exceeding it means the tree is
// unreasonably deep rather than malformed.
const MaxHitDepth = 256

// ErrHitDepthExceeded is returned by HitTestChecked when the traversal
// descends past MaxHitDepth.
var ErrHitDepthExceeded = errors.New("touchtree: hit test exceeded maximum tree depth")

// HitChain is the result of a hit test: every node that should observe the
// interaction, innermost (deepest) first and the tested root last.
type HitChain []*Node

// Target returns the deepest node of the chain, or nil if it is empty.
func (c HitChain) Target() *Node {
	if len(c) == 0 {
		return nil
	}
	return c[0]
}

// Contains reports whether n is part of the chain.
func (c HitChain) Contains(n *Node) bool {
	for _, m := range c {
		if m == n {
			return true
		}
	}
	return false
}

// Equal reports whether both chains hold the same nodes in the same order.
func (c HitChain) Equal(other HitChain) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if c[i] != other[i] {
			return false
		}
	}
	return true
}

// Names returns the node names, deepest first.
func (c HitChain) Names() []string {
	names := make([]string, len(c))
	for i, n := range c {
		names[i] = n.Name
	}
	return names
}

// String formats the chain as "child > parent > root".
func (c HitChain) String() string {
	return strings.Join(c.Names(), " > ")
}

// HitTest returns the chain of nodes under (x, y), applying each node's
// PointerEvents mode. The point is in the coordinate space of root's parent,
// which is world space for a scene root. HitTest never mutates the tree and
// never fails: an unreachable point yields an empty chain.
//
// Children are tested topmost first (reverse paint order) and the first
// child that produces a hit answers for its parent. Trees deeper than
// MaxHitDepth yield an empty chain; use HitTestChecked to see why.
func HitTest(root *Node, x, y float64) HitChain {
	chain, err := HitTestChecked(root, x, y)
	if err != nil {
		if globalDebug {
			debugReportHitError(root, err)
		}
		return nil
	}
	return chain
}

// HitTestChecked is HitTest with the depth guard surfaced as an error.
func HitTestChecked(root *Node, x, y float64) (HitChain, error) {
	if root == nil {
		return nil, nil
	}
	return resolve(root, x, y, 0)
}

// resolve is the recursive step. (px, py) is in the parent's space.
func resolve(n *Node, px, py float64, depth int) (HitChain, error) {
	rule := n.PointerEvents.permeability()
	if !n.Visible || (!rule.self && !rule.children) {
		// Pruned before any geometry work: bounds may be stale.
		return nil, nil
	}
	if depth >= MaxHitDepth {
		return nil, ErrHitDepthExceeded
	}

	lx, ly, ok := n.parentToLocal(px, py)
	if !ok || !n.containsLocal(lx, ly) {
		return nil, nil
	}

	if rule.children {
		for i := len(n.paintOrder) - 1; i >= 0; i-- {
			chain, err := resolve(n.paintOrder[i], lx, ly, depth+1)
			if err != nil {
				return nil, err
			}
			if len(chain) > 0 {
				if rule.self {
					chain = append(chain, n)
				}
				return chain, nil
			}
		}
	}

	if !rule.self {
		return nil, nil
	}
	// Sized for every ancestor so bubbling back up never reallocates.
	chain := make(HitChain, 1, depth+1)
	chain[0] = n
	return chain, nil
}

// ChainFrom builds the chain a hit on n would produce if n were the terminal
// node, walking Parent up to and including root. Ancestors whose mode keeps
// them out of chains (box-none) are omitted. It returns nil if n is not in
// root's subtree or if n or an ancestor prunes its subtree.
func ChainFrom(n, root *Node) HitChain {
	if n == nil || root == nil || !isAncestor(root, n) {
		return nil
	}
	var chain HitChain
	for p := n; p != nil; p = p.Parent {
		rule := p.PointerEvents.permeability()
		if !p.Visible || (!rule.self && !rule.children) {
			return nil
		}
		if p != n && !rule.children {
			// A box-only ancestor swallows the hit.
			return nil
		}
		if rule.self {
			chain = append(chain, p)
		}
		if p == root {
			break
		}
	}
	return chain
}
