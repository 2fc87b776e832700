package export

import (
	"math"

	"github.com/jung-kurt/gofpdf"

	"github.com/MonishPuttu/DRAWIFY/internal/shape"
)

// pdfScale maps canvas units onto the A4 page.
const pdfScale = 3

// PDF writes the store's shapes to a PDF file in draw order.
func PDF(path string, store *shape.Store) error {
	p := gofpdf.New("P", "mm", "A4", "")
	p.AddPage()
	p.SetDrawColor(0, 0, 0)
	p.SetLineWidth(0.5)

	for _, s := range store.All() {
		switch v := s.(type) {
		case *shape.Rect:
			x, y := v.X, v.Y
			w, h := v.Width, v.Height
			if w < 0 {
				x += w
				w = -w
			}
			if h < 0 {
				y += h
				h = -h
			}
			p.Rect(x/pdfScale, y/pdfScale, w/pdfScale, h/pdfScale, "D")
		case *shape.Circle:
			p.Circle(v.CenterX/pdfScale, v.CenterY/pdfScale, math.Abs(v.Radius)/pdfScale, "D")
		case *shape.Pencil:
			for i := 1; i < len(v.Points); i++ {
				p.Line(
					v.Points[i-1].X/pdfScale, v.Points[i-1].Y/pdfScale,
					v.Points[i].X/pdfScale, v.Points[i].Y/pdfScale,
				)
			}
		}
	}
	return p.OutputFileAndClose(path)
}
