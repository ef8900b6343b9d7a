package touchtree

// PointerContext carries pointer event data. Node is the node whose callback
// is running; Target is the deepest node of Chain.
type PointerContext struct {
	Node      *Node
	Target    *Node
	Chain     HitChain
	UserData  any
	GlobalX   float64
	GlobalY   float64
	LocalX    float64
	LocalY    float64
	Button    MouseButton
	PointerID int
	Modifiers KeyModifiers

	prop *propagation
}

// ClickContext carries click event data.
type ClickContext = PointerContext

// propagation is shared by every context of one dispatched event.
type propagation struct {
	stopped bool
}

// StopPropagation prevents the event from reaching nodes further up the chain.
// Scene-level handlers have already run by the time node callbacks fire.
func (ctx PointerContext) StopPropagation() {
	if ctx.prop != nil {
		ctx.prop.stopped = true
	}
}

// --- ID counter ---

// nodeIDCounter is a plain counter (no atomic, trees are built on one goroutine).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is one entry in the interaction tree. A single flat struct serves
// every node so the resolver never dispatches through an interface except
// for HitShape.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy. Parent is a non-owning back-reference; children are owned.
	Parent     *Node
	children   []*Node
	paintOrder []*Node // children stable-sorted by zIndex, rebuilt on mutation

	// Transform (local)
	X, Y         float64
	ScaleX       float64
	ScaleY       float64
	Rotation     float64
	SkewX, SkewY float64
	PivotX       float64
	PivotY       float64

	// Layout size. Used as the hit region when HitShape is nil.
	Width, Height float64

	// Computed
	worldTransform affine
	transformDirty bool

	// Interaction
	Visible       bool
	PointerEvents PointerEvents
	HitShape      HitShape
	zIndex        int

	// Overlay
	Color Color

	// Metadata
	UserData any

	// Per-node callbacks (nil by default). They run while an event bubbles
	// along the hit chain, deepest node first.
	OnPointerDown  func(PointerContext)
	OnPointerUp    func(PointerContext)
	OnPointerMove  func(PointerContext)
	OnPointerEnter func(PointerContext)
	OnPointerLeave func(PointerContext)
	OnClick        func(ClickContext)

	disposed bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Color = ColorWhite
	n.Visible = true
	n.transformDirty = true
	n.worldTransform = identityAffine
}

// NewContainer creates a node with no size. It only takes part in hit testing
// once it is given a HitShape or a size.
func NewContainer(name string) *Node {
	n := &Node{Name: name}
	nodeDefaults(n)
	return n
}

// NewBox creates a node whose hit region is the rectangle (0, 0, w, h).
func NewBox(name string, w, h float64) *Node {
	n := &Node{Name: name, Width: w, Height: h}
	nodeDefaults(n)
	return n
}

// --- Tree manipulation ---

// AddChild appends child on top of this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	n.checkAttach(child, "AddChild")
	if child.Parent != nil {
		child.Parent.detach(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	n.rebuildPaintOrder()
	markSubtreeDirty(child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild.
func (n *Node) AddChildAt(child *Node, index int) {
	n.checkAttach(child, "AddChildAt")
	if child.Parent != nil {
		child.Parent.detach(child)
	}
	if index < 0 || index > len(n.children) {
		panic("touchtree: child index out of range")
	}
	child.Parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	n.rebuildPaintOrder()
	markSubtreeDirty(child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

func (n *Node) checkAttach(child *Node, op string) {
	if child == nil {
		panic("touchtree: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, op+" (parent)")
		debugCheckDisposed(child, op+" (child)")
	}
	if isAncestor(child, n) {
		panic("touchtree: adding child would create a cycle")
	}
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if globalDebug {
		debugCheckDisposed(n, "RemoveChild (parent)")
		debugCheckDisposed(child, "RemoveChild (child)")
	}
	if child.Parent != n {
		panic("touchtree: child's parent is not this node")
	}
	n.detach(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveChildAt removes and returns the child at the given index.
func (n *Node) RemoveChildAt(index int) *Node {
	if index < 0 || index >= len(n.children) {
		panic("touchtree: child index out of range")
	}
	child := n.children[index]
	n.RemoveChild(child)
	return child
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	for _, child := range n.children {
		child.Parent = nil
		markSubtreeDirty(child)
	}
	clear(n.children)
	n.children = n.children[:0]
	n.rebuildPaintOrder()
}

// Children returns the children in insertion order. The returned slice MUST
// NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// PaintOrder returns the children bottom-most first: insertion order, stable
// sorted by ZIndex. The last entry is the visually topmost child. The
// returned slice MUST NOT be mutated by the caller.
func (n *Node) PaintOrder() []*Node {
	return n.paintOrder
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given insertion index.
func (n *Node) ChildAt(index int) *Node {
	if index < 0 || index >= len(n.children) {
		panic("touchtree: child index out of range")
	}
	return n.children[index]
}

// SetChildIndex moves child to a new index among its siblings.
func (n *Node) SetChildIndex(child *Node, index int) {
	if child.Parent != n {
		panic("touchtree: child's parent is not this node")
	}
	if index < 0 || index >= len(n.children) {
		panic("touchtree: child index out of range")
	}
	oldIndex := -1
	for i, c := range n.children {
		if c == child {
			oldIndex = i
			break
		}
	}
	if oldIndex == index {
		return
	}
	if oldIndex < index {
		copy(n.children[oldIndex:], n.children[oldIndex+1:index+1])
	} else {
		copy(n.children[index+1:], n.children[index:oldIndex])
	}
	n.children[index] = child
	n.rebuildPaintOrder()
}

// ZIndex returns the node's stacking key among its siblings.
func (n *Node) ZIndex() int {
	return n.zIndex
}

// SetZIndex sets the node's stacking key. Higher values paint later and win
// hit-test ties; equal values keep insertion order.
func (n *Node) SetZIndex(z int) {
	if n.zIndex == z {
		return
	}
	n.zIndex = z
	if n.Parent != nil {
		n.Parent.rebuildPaintOrder()
	}
}

// Find returns the first node named name in a depth-first walk of the
// subtree rooted at n (n included), or nil.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, child := range n.children {
		if found := child.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.paintOrder = nil
	n.Parent = nil
	n.HitShape = nil
	n.UserData = nil
	n.OnPointerDown = nil
	n.OnPointerUp = nil
	n.OnPointerMove = nil
	n.OnPointerEnter = nil
	n.OnPointerLeave = nil
	n.OnClick = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// detach removes child from n.children without clearing child.Parent.
func (n *Node) detach(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			break
		}
	}
	n.rebuildPaintOrder()
}

// rebuildPaintOrder recomputes the zIndex-sorted child order. Insertion sort:
// stable, allocation-free once the buffer has grown, and O(n) for the usual
// already-sorted case.
func (n *Node) rebuildPaintOrder() {
	nc := len(n.children)
	if cap(n.paintOrder) < nc {
		n.paintOrder = make([]*Node, nc)
	}
	clear(n.paintOrder[:cap(n.paintOrder)])
	n.paintOrder = n.paintOrder[:nc]
	copy(n.paintOrder, n.children)
	for i := 1; i < nc; i++ {
		key := n.paintOrder[i]
		j := i - 1
		for j >= 0 && n.paintOrder[j].zIndex > key.zIndex {
			n.paintOrder[j+1] = n.paintOrder[j]
			j--
		}
		n.paintOrder[j+1] = key
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
