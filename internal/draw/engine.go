package draw

import (
	"image/color"
	"log"
	"math"

	"github.com/google/uuid"

	"github.com/MonishPuttu/DRAWIFY/internal/shape"
)

// Tool selects what a primary-button gesture produces.
type Tool int

const (
	ToolRect Tool = iota
	ToolCircle
	ToolPencil
	ToolEraser
)

// Transport carries finalized events to the room. Send must not block the
// gesture path for long; failures are logged, not surfaced.
type Transport interface {
	Send(ev shape.Event) error
}

// Engine is the tool state machine: it turns pointer gestures in canvas
// space into shape mutations, applies them optimistically to the store,
// redraws, and emits the event outward. Inbound remote events go through
// ApplyRemote and never interrupt an in-progress local gesture.
type Engine struct {
	store     *shape.Store
	viewport  *Viewport
	surface   Surface
	transport Transport
	theme     Theme

	tool    Tool
	drawing bool
	startX  float64
	startY  float64
	points  []shape.Point
}

func NewEngine(store *shape.Store, viewport *Viewport, surface Surface, transport Transport) *Engine {
	e := &Engine{
		store:     store,
		viewport:  viewport,
		surface:   surface,
		transport: transport,
		theme:     ThemeDark,
		tool:      ToolCircle,
	}
	store.SetOnChange(e.Redraw)
	viewport.OnChange = e.Redraw
	return e
}

// SetTool switches the active tool and redraws immediately.
func (e *Engine) SetTool(t Tool) {
	e.tool = t
	e.Redraw()
}

func (e *Engine) Tool() Tool { return e.tool }

// SetTheme swaps the two-color palette and redraws.
func (e *Engine) SetTheme(t Theme) {
	e.theme = t
	e.Redraw()
}

func (e *Engine) Theme() Theme { return e.theme }

// PointerDown handles a primary-button press at a canvas-space point. The
// eraser acts on press alone; the geometric tools anchor a new gesture.
func (e *Engine) PointerDown(p shape.Point) {
	if e.tool == ToolEraser {
		e.erase(p)
		return
	}
	e.drawing = true
	e.startX = p.X
	e.startY = p.Y
	if e.tool == ToolPencil {
		e.points = []shape.Point{p}
	}
}

// PointerMove renders a live preview of the pending shape. Nothing is
// committed to the store until release.
func (e *Engine) PointerMove(p shape.Point) {
	if !e.drawing {
		return
	}
	if e.tool == ToolPencil {
		e.points = append(e.points, p)
	}
	e.Redraw()
	e.strokePreview(p)
}

// PointerUp finalizes the gesture: the shape gets a fresh id, lands in the
// store (which triggers the redraw), and goes out on the transport.
func (e *Engine) PointerUp(p shape.Point) {
	if !e.drawing {
		return
	}
	e.drawing = false

	width := p.X - e.startX
	height := p.Y - e.startY

	var s shape.Shape
	id := uuid.NewString()
	switch e.tool {
	case ToolRect:
		s = &shape.Rect{Id: id, X: e.startX, Y: e.startY, Width: width, Height: height}
	case ToolCircle:
		// Radius is half the larger drag delta and the center sits at the
		// anchor offset by that radius on both axes: the circle is inscribed
		// in the drag's bounding square. Kept exactly as the product behaves.
		radius := math.Max(width, height) / 2
		s = &shape.Circle{Id: id, CenterX: e.startX + radius, CenterY: e.startY + radius, Radius: radius}
	case ToolPencil:
		s = &shape.Pencil{Id: id, Points: e.points}
		e.points = nil
	default:
		return
	}

	e.store.Apply(shape.Event{Shape: s})
	e.emit(shape.Event{Shape: s})
}

// Detach unhooks the engine from its store and viewport so a destroyed
// board instance cannot keep mutating them.
func (e *Engine) Detach() {
	e.store.SetOnChange(nil)
	e.viewport.OnChange = nil
	e.surface = nil
	e.transport = nil
}

// ApplyRemote merges an event received from the room into the store. The
// store's id check makes redelivery and the sender's own echo no-ops.
func (e *Engine) ApplyRemote(ev shape.Event) {
	e.store.Apply(ev)
}

func (e *Engine) erase(p shape.Point) {
	hit := e.store.HitTest(p)
	if hit == nil {
		return
	}
	ev := shape.Event{DeleteID: hit.ID()}
	e.store.Apply(ev)
	e.emit(ev)
}

func (e *Engine) emit(ev shape.Event) {
	if e.transport == nil {
		return
	}
	if err := e.transport.Send(ev); err != nil {
		log.Println("could not send draw event:", err)
	}
}

// Redraw clears the surface to the theme background and strokes every stored
// shape in order. The surface re-derives its screen mapping from the current
// viewport, so pan and zoom changes take effect without touching the data.
func (e *Engine) Redraw() {
	if e.surface == nil {
		return
	}
	e.surface.Clear(e.theme.Background)
	for _, s := range e.store.All() {
		e.strokeShape(s)
	}
}

func (e *Engine) strokeShape(s shape.Shape) {
	switch v := s.(type) {
	case *shape.Rect:
		// Negative extents are normalized here, at draw time only; the store
		// keeps the signed values the shape was drawn with.
		e.surface.StrokeRect(normalizeRect(v.X, v.Y, v.Width, v.Height, e.theme.Stroke))
	case *shape.Circle:
		e.surface.StrokeCircle(v.CenterX, v.CenterY, math.Abs(v.Radius), e.theme.Stroke)
	case *shape.Pencil:
		if len(v.Points) == 0 {
			return
		}
		e.surface.StrokePath(v.Points, e.theme.Stroke)
	}
}

func (e *Engine) strokePreview(p shape.Point) {
	if e.surface == nil {
		return
	}
	width := p.X - e.startX
	height := p.Y - e.startY
	switch e.tool {
	case ToolRect:
		e.surface.StrokeRect(normalizeRect(e.startX, e.startY, width, height, e.theme.Stroke))
	case ToolCircle:
		radius := math.Max(width, height) / 2
		e.surface.StrokeCircle(e.startX+radius, e.startY+radius, math.Abs(radius), e.theme.Stroke)
	case ToolPencil:
		if len(e.points) == 0 {
			return
		}
		e.surface.StrokePath(e.points, e.theme.Stroke)
	}
}

func normalizeRect(x, y, w, h float64, c color.Color) (float64, float64, float64, float64, color.Color) {
	if w < 0 {
		x += w
		w = -w
	}
	if h < 0 {
		y += h
		h = -h
	}
	return x, y, w, h, c
}
