package touchtree

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// --- Constants ---

const (
	maxPointers  = 2 // pointer 0 = mouse, 1 = primary touch
	mousePointer = 0
	touchPointer = 1
)

// --- Per-pointer state ---

type pointerState struct {
	down        bool
	lastX       float64
	lastY       float64
	pressTarget *Node       // chain target at press time, for click detection
	hover       HitChain    // chain as of the last frame, for enter/leave
	button      MouseButton // button captured at press time
}

// --- Handler registry ---

type pointerHandler struct {
	id uint32
	fn func(PointerContext)
}

type handlerRegistry struct {
	byEvent [len(eventTypeNames)][]pointerHandler
	nextID  uint32
}

// CallbackHandle allows removing a registered scene-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil || int(h.event) >= len(h.reg.byEvent) {
		return
	}
	s := h.reg.byEvent[h.event]
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = pointerHandler{}
			h.reg.byEvent[h.event] = s[:len(s)-1]
			return
		}
	}
}

func (s *Scene) on(event EventType, fn func(PointerContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.byEvent[event] = append(s.handlers.byEvent[event], pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: event}
}

// --- Scene-level event registration ---

// OnPointerDown registers a scene-level callback for pointer down events.
// Scene-level callbacks run once per event, before any node callback.
func (s *Scene) OnPointerDown(fn func(PointerContext)) CallbackHandle {
	return s.on(EventPointerDown, fn)
}

// OnPointerUp registers a scene-level callback for pointer up events.
func (s *Scene) OnPointerUp(fn func(PointerContext)) CallbackHandle {
	return s.on(EventPointerUp, fn)
}

// OnPointerMove registers a scene-level callback for pointer move events.
func (s *Scene) OnPointerMove(fn func(PointerContext)) CallbackHandle {
	return s.on(EventPointerMove, fn)
}

// OnPointerEnter registers a scene-level callback fired for each node that
// joins a pointer's hit chain.
func (s *Scene) OnPointerEnter(fn func(PointerContext)) CallbackHandle {
	return s.on(EventPointerEnter, fn)
}

// OnPointerLeave registers a scene-level callback fired for each node that
// leaves a pointer's hit chain.
func (s *Scene) OnPointerLeave(fn func(PointerContext)) CallbackHandle {
	return s.on(EventPointerLeave, fn)
}

// OnClick registers a scene-level callback for click events.
func (s *Scene) OnClick(fn func(ClickContext)) CallbackHandle {
	return s.on(EventClick, fn)
}

// CapturePointer routes all events for pointerID to node and its ancestors
// until the pointer is released. The chain follows the same rules as a hit
// on node, so capture never makes a box-none or pruned node the target: if
// node has no chain under the scene root the capture is dropped and the
// pointer goes back to ordinary hit testing.
func (s *Scene) CapturePointer(pointerID int, node *Node) {
	if pointerID >= 0 && pointerID < maxPointers {
		s.captured[pointerID] = node
	}
}

// ReleasePointer stops routing events for pointerID to a captured node.
func (s *Scene) ReleasePointer(pointerID int) {
	if pointerID >= 0 && pointerID < maxPointers {
		s.captured[pointerID] = nil
	}
}

// --- Input processing ---

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= ModMeta
	}
	return mods
}

// processInput is called from Scene.Update to handle mouse and touch input.
// An injected event, when queued, replaces real input for the frame. While a
// test runner is attached only injected input is processed.
func (s *Scene) processInput() {
	mods := readModifiers()
	if s.processInjectedInput(mods) || s.testRunner != nil {
		return
	}
	s.processMousePointer(mods)
	s.processTouchPointer(mods)
}

// screenToWorld converts screen coordinates to world coordinates using the camera.
func screenToWorld(cam *Camera, sx, sy float64) (float64, float64) {
	if cam != nil {
		return cam.ScreenToWorld(sx, sy)
	}
	return sx, sy
}

// processMousePointer handles mouse input (pointer 0).
func (s *Scene) processMousePointer(mods KeyModifiers) {
	mx, my := ebiten.CursorPosition()
	wx, wy := screenToWorld(s.camera, float64(mx), float64(my))

	var pressed bool
	var button MouseButton
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)

	if left || right || middle {
		pressed = true
		if left {
			button = MouseButtonLeft
		} else if right {
			button = MouseButtonRight
		} else {
			button = MouseButtonMiddle
		}
	}

	s.processPointer(mousePointer, wx, wy, pressed, button, mods)
}

// processTouchPointer follows the first touch to go down (pointer 1) until it
// lifts. Other simultaneous touches are ignored.
func (s *Scene) processTouchPointer(mods KeyModifiers) {
	s.touchIDs = ebiten.AppendTouchIDs(s.touchIDs[:0])

	if !s.touchActive {
		if len(s.touchIDs) == 0 {
			return
		}
		s.primaryTouch = s.touchIDs[0]
		s.touchActive = true
	}

	for _, tid := range s.touchIDs {
		if tid == s.primaryTouch {
			tx, ty := ebiten.TouchPosition(tid)
			wx, wy := screenToWorld(s.camera, float64(tx), float64(ty))
			s.processPointer(touchPointer, wx, wy, true, MouseButtonLeft, mods)
			return
		}
	}

	// Primary touch lifted: release where it was last seen, then leave
	// everything since a touch has no hover.
	ps := &s.pointers[touchPointer]
	s.processPointer(touchPointer, ps.lastX, ps.lastY, false, MouseButtonLeft, mods)
	s.updateHover(touchPointer, nil, ps.lastX, ps.lastY, MouseButtonLeft, mods)
	s.touchActive = false
}

// resolvePointerChain returns the chain for a pointer: the captured node's
// chain when captured, otherwise a fresh hit test. A capture whose chain is
// empty (the node left the tree or can no longer be hit) is dropped.
func (s *Scene) resolvePointerChain(pointerID int, wx, wy float64) HitChain {
	if c := s.captured[pointerID]; c != nil {
		if chain := ChainFrom(c, s.root); len(chain) > 0 {
			return chain
		}
		s.captured[pointerID] = nil
	}
	return HitTest(s.root, wx, wy)
}

// processPointer runs the pointer state machine for a single pointer.
func (s *Scene) processPointer(pointerID int, wx, wy float64, pressed bool, button MouseButton, mods KeyModifiers) {
	ps := &s.pointers[pointerID]
	chain := s.resolvePointerChain(pointerID, wx, wy)

	s.updateHover(pointerID, chain, wx, wy, button, mods)

	moved := wx != ps.lastX || wy != ps.lastY
	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.pressTarget = chain.Target()
		if s.debug {
			debugLogPress(pointerID, wx, wy, chain)
		}
		s.dispatch(EventPointerDown, chain, pointerID, wx, wy, button, mods)
	case !pressed && ps.down:
		s.dispatch(EventPointerUp, chain, pointerID, wx, wy, ps.button, mods)
		if target := chain.Target(); target != nil && target == ps.pressTarget {
			s.dispatch(EventClick, chain, pointerID, wx, wy, ps.button, mods)
		}
		s.captured[pointerID] = nil
		ps.down = false
		ps.pressTarget = nil
	case moved:
		b := button
		if ps.down {
			b = ps.button
		}
		s.dispatch(EventPointerMove, chain, pointerID, wx, wy, b, mods)
	}
	ps.lastX = wx
	ps.lastY = wy
}

// updateHover fires leave for nodes that dropped out of the pointer's chain
// (deepest first) and enter for nodes that joined it (outermost first).
func (s *Scene) updateHover(pointerID int, chain HitChain, wx, wy float64, button MouseButton, mods KeyModifiers) {
	ps := &s.pointers[pointerID]
	prev := ps.hover
	if prev.Equal(chain) {
		return
	}
	ps.hover = chain
	for _, n := range prev {
		if !chain.Contains(n) {
			s.dispatchTo(EventPointerLeave, n, prev, pointerID, wx, wy, button, mods)
		}
	}
	for i := len(chain) - 1; i >= 0; i-- {
		if n := chain[i]; !prev.Contains(n) {
			s.dispatchTo(EventPointerEnter, n, chain, pointerID, wx, wy, button, mods)
		}
	}
}

// --- Event dispatch ---

func (s *Scene) newContext(node *Node, chain HitChain, pointerID int, wx, wy float64, button MouseButton, mods KeyModifiers) PointerContext {
	ctx := PointerContext{
		Node: node, Target: chain.Target(), Chain: chain,
		GlobalX: wx, GlobalY: wy,
		Button: button, PointerID: pointerID, Modifiers: mods,
		prop: &propagation{},
	}
	if node != nil {
		ctx.UserData = node.UserData
		ctx.LocalX, ctx.LocalY = node.WorldToLocal(wx, wy)
	}
	return ctx
}

// dispatch delivers a bubbling event: scene-level handlers once, then node
// callbacks along the chain, deepest first, until propagation stops.
// Events with an empty chain still reach scene-level handlers.
func (s *Scene) dispatch(event EventType, chain HitChain, pointerID int, wx, wy float64, button MouseButton, mods KeyModifiers) {
	ctx := s.newContext(chain.Target(), chain, pointerID, wx, wy, button, mods)
	for _, h := range s.handlers.byEvent[event] {
		h.fn(ctx)
	}
	for _, n := range chain {
		if ctx.prop.stopped {
			break
		}
		fn := n.callback(event)
		if fn == nil {
			continue
		}
		nctx := ctx
		nctx.Node = n
		nctx.UserData = n.UserData
		nctx.LocalX, nctx.LocalY = n.WorldToLocal(wx, wy)
		fn(nctx)
	}
	s.emit(event, ctx)
}

// dispatchTo delivers a non-bubbling event to a single node.
func (s *Scene) dispatchTo(event EventType, node *Node, chain HitChain, pointerID int, wx, wy float64, button MouseButton, mods KeyModifiers) {
	ctx := s.newContext(node, chain, pointerID, wx, wy, button, mods)
	for _, h := range s.handlers.byEvent[event] {
		h.fn(ctx)
	}
	if fn := node.callback(event); fn != nil {
		fn(ctx)
	}
	s.emit(event, ctx)
}

// callback returns the node's callback for event, or nil.
func (n *Node) callback(event EventType) func(PointerContext) {
	switch event {
	case EventPointerDown:
		return n.OnPointerDown
	case EventPointerUp:
		return n.OnPointerUp
	case EventPointerMove:
		return n.OnPointerMove
	case EventClick:
		return n.OnClick
	case EventPointerEnter:
		return n.OnPointerEnter
	case EventPointerLeave:
		return n.OnPointerLeave
	}
	return nil
}

// --- Event sink ---

func (s *Scene) emit(event EventType, ctx PointerContext) {
	if s.sink == nil {
		return
	}
	ev := InteractionEvent{
		Type:      event,
		PointerID: ctx.PointerID,
		Chain:     ctx.Chain.Names(),
		GlobalX:   ctx.GlobalX,
		GlobalY:   ctx.GlobalY,
		LocalX:    ctx.LocalX,
		LocalY:    ctx.LocalY,
		Button:    ctx.Button,
		Modifiers: ctx.Modifiers,
	}
	if ctx.Node != nil {
		ev.NodeID = ctx.Node.ID
		ev.NodeName = ctx.Node.Name
	}
	s.sink.EmitEvent(ev)
}
