package shape

import (
	"encoding/json"
	"fmt"
)

// Point is a coordinate in canvas space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

const (
	TypeRect   = "rect"
	TypeCircle = "circle"
	TypePencil = "pencil"
)

// Shape is the closed set of things that can live on a board. Every shape
// carries a globally unique id assigned by the client that drew it.
type Shape interface {
	ID() string
	isShape()
}

// Rect is an axis-aligned rectangle. Width and height are signed: a shape
// dragged right-to-left is stored with negative extents and normalized with
// abs only when drawn.
type Rect struct {
	Id     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type Circle struct {
	Id      string  `json:"id"`
	CenterX float64 `json:"centerX"`
	CenterY float64 `json:"centerY"`
	// Radius keeps the sign it was drawn with; geometry always uses the
	// magnitude.
	Radius float64 `json:"radius"`
}

// Pencil is a freehand stroke. Point order defines the path; an empty point
// list is legal and renders as nothing.
type Pencil struct {
	Id     string  `json:"id"`
	Points []Point `json:"points"`
}

func (r *Rect) ID() string   { return r.Id }
func (c *Circle) ID() string { return c.Id }
func (p *Pencil) ID() string { return p.Id }

func (*Rect) isShape()   {}
func (*Circle) isShape() {}
func (*Pencil) isShape() {}

// shapeJSON is the union of all wire fields, discriminated by the type tag.
type shapeJSON struct {
	Id      string  `json:"id"`
	Type    string  `json:"type"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	CenterX float64 `json:"centerX"`
	CenterY float64 `json:"centerY"`
	Radius  float64 `json:"radius"`
	Points  []Point `json:"points"`
}

// Marshal encodes a shape into its tagged wire form.
func Marshal(s Shape) ([]byte, error) {
	switch v := s.(type) {
	case *Rect:
		return json.Marshal(struct {
			Type string `json:"type"`
			*Rect
		}{TypeRect, v})
	case *Circle:
		return json.Marshal(struct {
			Type string `json:"type"`
			*Circle
		}{TypeCircle, v})
	case *Pencil:
		return json.Marshal(struct {
			Type string `json:"type"`
			*Pencil
		}{TypePencil, v})
	default:
		return nil, fmt.Errorf("unknown shape %T", s)
	}
}

// Unmarshal decodes a tagged shape payload.
func Unmarshal(data []byte) (Shape, error) {
	var raw shapeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	switch raw.Type {
	case TypeRect:
		return &Rect{Id: raw.Id, X: raw.X, Y: raw.Y, Width: raw.Width, Height: raw.Height}, nil
	case TypeCircle:
		return &Circle{Id: raw.Id, CenterX: raw.CenterX, CenterY: raw.CenterY, Radius: raw.Radius}, nil
	case TypePencil:
		return &Pencil{Id: raw.Id, Points: raw.Points}, nil
	default:
		return nil, fmt.Errorf("unknown shape type %q", raw.Type)
	}
}
