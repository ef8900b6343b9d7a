package touchtree

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// nodeDoc is the document form of a Node. Pointer fields distinguish
// "absent" from zero where the node default is not zero.
type nodeDoc struct {
	Name          string    `yaml:"name"`
	PointerEvents string    `yaml:"pointerEvents,omitempty"`
	X             float64   `yaml:"x,omitempty"`
	Y             float64   `yaml:"y,omitempty"`
	Width         float64   `yaml:"width,omitempty"`
	Height        float64   `yaml:"height,omitempty"`
	ScaleX        *float64  `yaml:"scaleX,omitempty"`
	ScaleY        *float64  `yaml:"scaleY,omitempty"`
	Rotation      float64   `yaml:"rotation,omitempty"`
	PivotX        float64   `yaml:"pivotX,omitempty"`
	PivotY        float64   `yaml:"pivotY,omitempty"`
	ZIndex        int       `yaml:"zIndex,omitempty"`
	Visible       *bool     `yaml:"visible,omitempty"`
	Color         []float64 `yaml:"color,omitempty"`
	Shape         *shapeDoc `yaml:"shape,omitempty"`
	Children      []nodeDoc `yaml:"children,omitempty"`
}

type shapeDoc struct {
	Rect       *HitRect     `yaml:"rect,omitempty"`
	Circle     *circleDoc   `yaml:"circle,omitempty"`
	Polygon    [][2]float64 `yaml:"polygon,omitempty"`
	Everywhere bool         `yaml:"everywhere,omitempty"`
}

type circleDoc struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Radius float64 `yaml:"radius"`
}

// LoadTree builds a node tree from a YAML (or JSON) document:
//
//	name: root
//	width: 640
//	height: 480
//	children:
//	  - name: overlay
//	    pointerEvents: box-none
//	    width: 640
//	    height: 480
//	    children:
//	      - {name: button, x: 20, y: 20, width: 100, height: 40}
//
// Shapes are given as {rect: {x, y, width, height}}, {circle: {x, y, radius}},
// {polygon: [[x, y], ...]} or {everywhere: true}. Children are listed
// bottom-most first.
func LoadTree(data []byte) (*Node, error) {
	var doc nodeDoc
	if err := decodeStrict(data, &doc); err != nil {
		return nil, fmt.Errorf("load tree: %w", err)
	}
	root, err := doc.build("", 0)
	if err != nil {
		return nil, fmt.Errorf("load tree: %w", err)
	}
	return root, nil
}

// decodeStrict decodes a YAML document, rejecting keys that match no field.
func decodeStrict(data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(v)
}

func (d *nodeDoc) build(path string, depth int) (*Node, error) {
	if depth >= MaxHitDepth {
		return nil, fmt.Errorf("%s: tree deeper than %d", path, MaxHitDepth)
	}
	if d.Name == "" {
		return nil, fmt.Errorf("%s: node name is required", pathOr(path))
	}
	path += "/" + d.Name

	n := NewBox(d.Name, d.Width, d.Height)
	if d.PointerEvents != "" {
		mode, err := ParsePointerEvents(d.PointerEvents)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		n.PointerEvents = mode
	}
	n.X, n.Y = d.X, d.Y
	if d.ScaleX != nil {
		n.ScaleX = *d.ScaleX
	}
	if d.ScaleY != nil {
		n.ScaleY = *d.ScaleY
	}
	n.Rotation = d.Rotation
	n.PivotX, n.PivotY = d.PivotX, d.PivotY
	n.zIndex = d.ZIndex
	if d.Visible != nil {
		n.Visible = *d.Visible
	}
	if len(d.Color) > 0 {
		c, err := parseColor(d.Color)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		n.Color = c
	}
	if d.Shape != nil {
		shape, err := d.Shape.build()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		n.HitShape = shape
	}

	for i := range d.Children {
		child, err := d.Children[i].build(path, depth+1)
		if err != nil {
			return nil, err
		}
		n.AddChild(child)
	}
	return n, nil
}

func pathOr(path string) string {
	if path == "" {
		return "/"
	}
	return path
}

func (s *shapeDoc) build() (HitShape, error) {
	var shapes []HitShape
	if s.Rect != nil {
		shapes = append(shapes, *s.Rect)
	}
	if s.Circle != nil {
		shapes = append(shapes, HitCircle{CenterX: s.Circle.X, CenterY: s.Circle.Y, Radius: s.Circle.Radius})
	}
	if len(s.Polygon) > 0 {
		if len(s.Polygon) < 3 {
			return nil, errors.New("polygon needs at least 3 points")
		}
		pts := make([]Vec2, len(s.Polygon))
		for i, p := range s.Polygon {
			pts[i] = Vec2{p[0], p[1]}
		}
		shapes = append(shapes, HitPolygon{Points: pts})
	}
	if s.Everywhere {
		shapes = append(shapes, HitEverywhere{})
	}
	if len(shapes) != 1 {
		return nil, fmt.Errorf("shape must name exactly one of rect, circle, polygon, everywhere (got %d)", len(shapes))
	}
	return shapes[0], nil
}

func parseColor(v []float64) (Color, error) {
	switch len(v) {
	case 3:
		return Color{v[0], v[1], v[2], 1}, nil
	case 4:
		return Color{v[0], v[1], v[2], v[3]}, nil
	}
	return Color{}, fmt.Errorf("color needs 3 or 4 components, got %d", len(v))
}
