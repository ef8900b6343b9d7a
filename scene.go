package touchtree

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// EventSink receives a record of every event the scene dispatches. Set one
// with Scene.SetEventSink to log or replay interaction.
type EventSink interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent is the sink-facing record of a dispatched event. Node
// fields describe the node the event was delivered for: the chain target for
// bubbling events, the entering or leaving node for enter/leave.
type InteractionEvent struct {
	Type      EventType
	PointerID int
	NodeID    uint32
	NodeName  string
	Chain     []string
	GlobalX   float64
	GlobalY   float64
	LocalX    float64
	LocalY    float64
	Button    MouseButton
	Modifiers KeyModifiers
}

// Scene owns a node tree and turns pointer input into events delivered along
// hit chains.
type Scene struct {
	root   *Node
	sink   EventSink
	debug  bool
	camera *Camera

	// ClearColor fills the screen before the overlay is drawn. A zero alpha
	// leaves the screen untouched.
	ClearColor Color
	// ShowChain prints the mouse pointer's current hit chain in the corner.
	ShowChain bool

	// Input state
	handlers     handlerRegistry
	captured     [maxPointers]*Node
	pointers     [maxPointers]pointerState
	touchIDs     []ebiten.TouchID
	primaryTouch ebiten.TouchID
	touchActive  bool
	injectQueue  []syntheticPointerEvent
	testRunner   *TestRunner

	// Overlay buffers, reused across frames
	outlineBuf []Vec2
	vertices   []ebiten.Vertex
	indices    []uint16
}

// NewScene creates a new scene with a root container that covers the whole
// plane, so hit testing is bounded only by the root's children.
func NewScene() *Scene {
	root := NewContainer("root")
	root.HitShape = HitEverywhere{}
	return &Scene{root: root}
}

// Root returns the scene's root node.
func (s *Scene) Root() *Node {
	return s.root
}

// SetRoot replaces the scene's root node. Pointer state referring to the old
// tree is dropped without firing leave events.
func (s *Scene) SetRoot(root *Node) {
	if root == nil {
		panic("touchtree: scene root cannot be nil")
	}
	if root.Parent != nil {
		root.RemoveFromParent()
	}
	s.root = root
	markSubtreeDirty(root)
	s.captured = [maxPointers]*Node{}
	s.pointers = [maxPointers]pointerState{}
}

// Update refreshes cached world transforms, advances the camera and any
// attached test runner, then processes pointer input.
func (s *Scene) Update() {
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = 60
	}
	dt := float32(1.0 / float64(tps))

	updateWorldTransform(s.root, identityAffine, false)

	if s.camera != nil {
		s.camera.update(dt)
	}
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInput()
}

// HitTest resolves a screen-space point through the camera and returns the
// chain of nodes under it.
func (s *Scene) HitTest(screenX, screenY float64) HitChain {
	wx, wy := screenToWorld(s.camera, screenX, screenY)
	return HitTest(s.root, wx, wy)
}

// HoverChain returns the chain the given pointer is currently over, as of the
// last processed frame. The returned slice MUST NOT be mutated.
func (s *Scene) HoverChain(pointerID int) HitChain {
	if pointerID < 0 || pointerID >= maxPointers {
		return nil
	}
	return s.pointers[pointerID].hover
}

// NewCamera creates a camera with the given viewport and makes it the scene's
// camera. Screen points are converted to world points through it.
func (s *Scene) NewCamera(viewport Rect) *Camera {
	s.camera = newCamera(viewport)
	return s.camera
}

// Camera returns the scene's camera, or nil when screen and world coincide.
func (s *Scene) Camera() *Camera {
	return s.camera
}

// SetEventSink sets the optional event sink.
func (s *Scene) SetEventSink(sink EventSink) {
	s.sink = sink
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth and child count warnings are printed, and every
// press logs the chain it resolved to.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}
