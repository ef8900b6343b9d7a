package touchtree

import "math"

// HitShape is a point-containment predicate in a node's local coordinates.
// The resolver treats it as a black box.
type HitShape interface {
	Contains(x, y float64) bool
}

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// HitPolygon is a convex polygon hit area in local coordinates.
// Points must define a convex polygon in either winding order.
type HitPolygon struct {
	Points []Vec2
}

// Contains reports whether (x, y) lies inside a convex polygon using cross-product sign test.
func (p HitPolygon) Contains(x, y float64) bool {
	n := len(p.Points)
	if n < 3 {
		return false
	}

	var positive, negative bool
	for i := 0; i < n; i++ {
		a := p.Points[i]
		b := p.Points[(i+1)%n]

		cross := (b.X-a.X)*(y-a.Y) - (b.Y-a.Y)*(x-a.X)
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}

// HitEverywhere contains every finite point. The scene root uses it so that
// hit testing is bounded only by its children.
type HitEverywhere struct{}

// Contains reports whether (x, y) is a finite point.
func (HitEverywhere) Contains(x, y float64) bool {
	return !math.IsNaN(x) && !math.IsNaN(y) && !math.IsInf(x, 0) && !math.IsInf(y, 0)
}

// containsLocal tests whether (lx, ly) falls inside the node's bounds.
// HitShape wins when set; otherwise the bounds are (0, 0, Width, Height) and
// a zero-sized node contains nothing.
func (n *Node) containsLocal(lx, ly float64) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	if n.Width == 0 && n.Height == 0 {
		return false
	}
	return lx >= 0 && lx <= n.Width && ly >= 0 && ly <= n.Height
}

// outline returns the local-space polygon approximating the node's bounds,
// used by the overlay renderer. HitEverywhere and unknown shapes have none.
func (n *Node) outline(buf []Vec2) []Vec2 {
	buf = buf[:0]
	switch s := n.HitShape.(type) {
	case nil:
		if n.Width == 0 && n.Height == 0 {
			return buf
		}
		return append(buf, Vec2{0, 0}, Vec2{n.Width, 0}, Vec2{n.Width, n.Height}, Vec2{0, n.Height})
	case HitRect:
		return append(buf,
			Vec2{s.X, s.Y}, Vec2{s.X + s.Width, s.Y},
			Vec2{s.X + s.Width, s.Y + s.Height}, Vec2{s.X, s.Y + s.Height})
	case HitCircle:
		const segments = 24
		for i := 0; i < segments; i++ {
			sin, cos := math.Sincos(2 * math.Pi * float64(i) / segments)
			buf = append(buf, Vec2{s.CenterX + cos*s.Radius, s.CenterY + sin*s.Radius})
		}
		return buf
	case HitPolygon:
		return append(buf, s.Points...)
	default:
		return buf
	}
}
