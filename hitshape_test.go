package touchtree

import (
	"math"
	"testing"
)

func TestHitRectContains(t *testing.T) {
	r := HitRect{X: 10, Y: 20, Width: 100, Height: 50}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"outside left", 5, 40, false},
		{"outside right", 115, 40, false},
		{"outside top", 50, 15, false},
		{"outside bottom", 50, 75, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("HitRect.Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestHitCircleContains(t *testing.T) {
	c := HitCircle{CenterX: 50, CenterY: 50, Radius: 25}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"center", 50, 50, true},
		{"on circumference", 75, 50, true},
		{"inside", 60, 50, true},
		{"outside", 80, 50, false},
		{"outside diagonal", 70, 70, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("HitCircle.Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestHitPolygonContains(t *testing.T) {
	// Triangle wound both ways must behave the same.
	cw := HitPolygon{Points: []Vec2{{0, 0}, {100, 0}, {0, 100}}}
	ccw := HitPolygon{Points: []Vec2{{0, 0}, {0, 100}, {100, 0}}}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside", 20, 20, true},
		{"vertex", 0, 0, true},
		{"on hypotenuse", 50, 50, true},
		{"beyond hypotenuse", 60, 60, false},
		{"negative", -1, 10, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cw.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("cw.Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
			if got := ccw.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("ccw.Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestHitPolygonDegenerate(t *testing.T) {
	p := HitPolygon{Points: []Vec2{{0, 0}, {10, 10}}}
	if p.Contains(5, 5) {
		t.Error("a two-point polygon should contain nothing")
	}
}

func TestHitEverywhere(t *testing.T) {
	var h HitEverywhere
	if !h.Contains(-1e9, 1e9) {
		t.Error("HitEverywhere should contain far finite points")
	}
	if h.Contains(math.NaN(), 0) || h.Contains(0, math.Inf(1)) {
		t.Error("HitEverywhere should reject NaN and Inf")
	}
}

func TestContainsLocalBoundsFallback(t *testing.T) {
	n := NewBox("n", 40, 20)
	if !n.containsLocal(40, 20) {
		t.Error("edge of bounds should be inside")
	}
	if n.containsLocal(41, 10) {
		t.Error("point right of bounds should be outside")
	}

	empty := NewContainer("empty")
	if empty.containsLocal(0, 0) {
		t.Error("zero-sized node should contain nothing")
	}

	n.HitShape = HitCircle{CenterX: 0, CenterY: 0, Radius: 5}
	if !n.containsLocal(-3, 0) {
		t.Error("HitShape should replace the bounds rectangle")
	}
	if n.containsLocal(30, 10) {
		t.Error("HitShape should replace the bounds rectangle")
	}
}

func TestOutline(t *testing.T) {
	n := NewBox("n", 10, 20)
	if got := n.outline(nil); len(got) != 4 || got[2] != (Vec2{10, 20}) {
		t.Errorf("box outline = %v", got)
	}
	n.HitShape = HitCircle{Radius: 5}
	if got := n.outline(nil); len(got) != 24 {
		t.Errorf("circle outline has %d points, want 24", len(got))
	}
	n.HitShape = HitEverywhere{}
	if got := n.outline(nil); len(got) != 0 {
		t.Errorf("HitEverywhere outline = %v, want empty", got)
	}
}
