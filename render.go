package touchtree

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Overlay alpha for nodes outside and inside the mouse pointer's hit chain.
const (
	overlayIdleAlpha  = 0.35
	overlayHoverAlpha = 0.8
)

// whitePixel is the 1x1 source image for solid fills. Created on first Draw
// so that building trees and hit testing never touch the GPU.
var whitePixel *ebiten.Image

// Draw renders every visible node's hit region in paint order, tinted with
// the node's Color. Nodes in the mouse pointer's hover chain are drawn more
// opaque. Nodes whose mode is none are still drawn: rendering and hit
// testing are independent.
func (s *Scene) Draw(screen *ebiten.Image) {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(color.White)
	}
	if s.ClearColor.A > 0 {
		c := s.ClearColor
		screen.Fill(color.NRGBA{
			R: uint8(c.R * 255), G: uint8(c.G * 255), B: uint8(c.B * 255), A: uint8(c.A * 255),
		})
	}

	view := identityAffine
	if s.camera != nil {
		view = s.camera.computeViewMatrix()
	}

	s.vertices = s.vertices[:0]
	s.indices = s.indices[:0]
	s.appendOverlay(s.root, view)
	if len(s.indices) > 0 {
		screen.DrawTriangles(s.vertices, s.indices, whitePixel, &ebiten.DrawTrianglesOptions{})
	}

	if s.ShowChain {
		msg := "hit: (none)"
		if chain := s.pointers[mousePointer].hover; len(chain) > 0 {
			msg = "hit: " + chain.String()
		}
		ebitenutil.DebugPrintAt(screen, msg, 4, 4)
	}
}

// appendOverlay fan-triangulates each node's outline into the shared vertex
// buffer. Outlines are convex (rects, circles, convex polygons), so a fan
// from the first point covers them.
func (s *Scene) appendOverlay(n *Node, view affine) {
	if !n.Visible {
		return
	}
	s.outlineBuf = n.outline(s.outlineBuf)
	if pts := s.outlineBuf; len(pts) >= 3 && len(s.vertices)+len(pts) <= 0xffff {
		m := view.mul(n.worldTransform)
		alpha := overlayIdleAlpha
		if s.pointers[mousePointer].hover.Contains(n) {
			alpha = overlayHoverAlpha
		}
		c := n.Color
		cr, cg, cb, ca := float32(c.R), float32(c.G), float32(c.B), float32(c.A*alpha)

		base := uint16(len(s.vertices))
		for _, p := range pts {
			x, y := m.apply(p.X, p.Y)
			s.vertices = append(s.vertices, ebiten.Vertex{
				DstX: float32(x), DstY: float32(y),
				SrcX: 0.5, SrcY: 0.5,
				ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
			})
		}
		for i := 1; i < len(pts)-1; i++ {
			s.indices = append(s.indices, base, base+uint16(i), base+uint16(i+1))
		}
	}
	for _, child := range n.paintOrder {
		s.appendOverlay(child, view)
	}
}
