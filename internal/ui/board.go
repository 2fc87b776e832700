package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/MonishPuttu/DRAWIFY/internal/draw"
	"github.com/MonishPuttu/DRAWIFY/internal/shape"
)

// BoardWidget is the desktop canvas: it feeds pointer gestures into the
// drawing engine and renders the shape store as Fyne canvas objects.
type BoardWidget struct {
	widget.BaseWidget
	engine   *draw.Engine
	viewport *draw.Viewport
	surface  *objectSurface
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ fyne.Scrollable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ desktop.Hoverable = (*BoardWidget)(nil)

// NewBoardWidget builds the widget and its engine for a canvas of the given
// size. The transport may be nil for an offline board.
func NewBoardWidget(width, height float64, store *shape.Store, transport draw.Transport) *BoardWidget {
	b := &BoardWidget{
		viewport: draw.NewViewport(width, height),
		surface:  &objectSurface{},
	}
	b.surface.viewport = b.viewport
	b.surface.refresh = func() { b.Refresh() }
	b.engine = draw.NewEngine(store, b.viewport, b.surface, transport)
	b.ExtendBaseWidget(b)
	b.engine.Redraw()
	return b
}

func (b *BoardWidget) Engine() *draw.Engine { return b.engine }

// ApplyRemote merges a broadcast event into the board.
func (b *BoardWidget) ApplyRemote(ev shape.Event) {
	fyne.Do(func() { b.engine.ApplyRemote(ev) })
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	switch e.Button {
	case desktop.MouseButtonPrimary:
		b.engine.PointerDown(b.viewport.ToCanvas(pointOf(e.Position)))
	case desktop.MouseButtonTertiary:
		b.viewport.BeginDrag(pointOf(e.Position))
	}
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	switch e.Button {
	case desktop.MouseButtonPrimary:
		b.engine.PointerUp(b.viewport.ToCanvas(pointOf(e.Position)))
	case desktop.MouseButtonTertiary:
		b.viewport.EndDrag()
	}
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	b.engine.PointerMove(b.viewport.ToCanvas(pointOf(e.Position)))
}

func (b *BoardWidget) DragEnd() {}

func (b *BoardWidget) MouseMoved(e *desktop.MouseEvent) {
	if b.viewport.Dragging() {
		b.viewport.DragTo(pointOf(e.Position))
	}
}

func (b *BoardWidget) MouseIn(*desktop.MouseEvent) {}
func (b *BoardWidget) MouseOut()                   {}

func (b *BoardWidget) Scrolled(e *fyne.ScrollEvent) {
	b.viewport.HandleWheel(float64(e.Scrolled.DY))
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	return &boardRenderer{board: b}
}

func pointOf(p fyne.Position) shape.Point {
	return shape.Point{X: float64(p.X), Y: float64(p.Y)}
}

// objectSurface turns the engine's canvas-space strokes into positioned Fyne
// objects, using the viewport's inverse transform for every frame.
type objectSurface struct {
	viewport   *draw.Viewport
	objects    []fyne.CanvasObject
	background *canvas.Rectangle
	refresh    func()
}

func (s *objectSurface) Clear(bg color.Color) {
	if s.background == nil {
		s.background = canvas.NewRectangle(bg)
	}
	s.background.FillColor = bg
	s.objects = s.objects[:0]
	s.objects = append(s.objects, s.background)
	s.done()
}

func (s *objectSurface) StrokeRect(x, y, w, h float64, c color.Color) {
	topLeft := s.viewport.ToScreen(shape.Point{X: x, Y: y})
	botRight := s.viewport.ToScreen(shape.Point{X: x + w, Y: y + h})

	r := canvas.NewRectangle(color.Transparent)
	r.StrokeColor = c
	r.StrokeWidth = 2
	r.Move(fyne.NewPos(float32(topLeft.X), float32(topLeft.Y)))
	r.Resize(fyne.NewSize(float32(botRight.X-topLeft.X), float32(botRight.Y-topLeft.Y)))
	s.objects = append(s.objects, r)
	s.done()
}

func (s *objectSurface) StrokeCircle(cx, cy, radius float64, c color.Color) {
	topLeft := s.viewport.ToScreen(shape.Point{X: cx - radius, Y: cy - radius})
	botRight := s.viewport.ToScreen(shape.Point{X: cx + radius, Y: cy + radius})

	circle := canvas.NewCircle(color.Transparent)
	circle.StrokeColor = c
	circle.StrokeWidth = 2
	circle.Position1 = fyne.NewPos(float32(topLeft.X), float32(topLeft.Y))
	circle.Position2 = fyne.NewPos(float32(botRight.X), float32(botRight.Y))
	s.objects = append(s.objects, circle)
	s.done()
}

func (s *objectSurface) StrokePath(points []shape.Point, c color.Color) {
	for i := 1; i < len(points); i++ {
		from := s.viewport.ToScreen(points[i-1])
		to := s.viewport.ToScreen(points[i])
		segment := canvas.NewLine(c)
		segment.StrokeWidth = 2
		segment.Position1 = fyne.NewPos(float32(from.X), float32(from.Y))
		segment.Position2 = fyne.NewPos(float32(to.X), float32(to.Y))
		s.objects = append(s.objects, segment)
	}
	s.done()
}

func (s *objectSurface) done() {
	if s.refresh != nil {
		s.refresh()
	}
}

type boardRenderer struct {
	board *BoardWidget
}

func (r *boardRenderer) Objects() []fyne.CanvasObject {
	return r.board.surface.objects
}

func (r *boardRenderer) Layout(size fyne.Size) {
	if r.board.surface.background != nil {
		r.board.surface.background.Resize(size)
	}
}

func (r *boardRenderer) MinSize() fyne.Size {
	return fyne.NewSize(640, 480)
}

func (r *boardRenderer) Refresh() {
	canvas.Refresh(r.board)
}

// Destroy detaches the engine so a torn-down board stops mutating its store
// and viewport.
func (r *boardRenderer) Destroy() {
	r.board.engine.Detach()
}
