package draw

import (
	"image/color"

	"github.com/MonishPuttu/DRAWIFY/internal/shape"
)

// Surface is where the engine strokes shapes. All coordinates are canvas
// space; the implementation maps them to the device with the viewport's
// inverse transform. A frame is Clear followed by any number of strokes.
type Surface interface {
	Clear(background color.Color)
	StrokeRect(x, y, width, height float64, c color.Color)
	StrokeCircle(centerX, centerY, radius float64, c color.Color)
	StrokePath(points []shape.Point, c color.Color)
}

// Theme picks the background fill and the single stroke color. Two discrete
// themes exist; there is no per-shape color.
type Theme struct {
	Name       string
	Background color.Color
	Stroke     color.Color
}

var (
	ThemeDark = Theme{
		Name:       "dark",
		Background: color.Black,
		Stroke:     color.White,
	}
	ThemeLight = Theme{
		Name:       "light",
		Background: color.White,
		Stroke:     color.Black,
	}
)
