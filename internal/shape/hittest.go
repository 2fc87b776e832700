package shape

import "math"

// PencilHitTolerance is how close (in canvas units) a point must be to a
// stroke vertex for the eraser to pick it up.
const PencilHitTolerance = 10

// HitTest returns the topmost shape containing the point, scanning from the
// most recently added shape backwards so that visually covering shapes win
// ties. Returns nil when nothing is hit.
func (s *Store) HitTest(p Point) Shape {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := len(s.shapes) - 1; i >= 0; i-- {
		if contains(s.shapes[i], p) {
			return s.shapes[i]
		}
	}
	return nil
}

func contains(s Shape, p Point) bool {
	switch v := s.(type) {
	case *Rect:
		minX := math.Min(v.X, v.X+v.Width)
		maxX := math.Max(v.X, v.X+v.Width)
		minY := math.Min(v.Y, v.Y+v.Height)
		maxY := math.Max(v.Y, v.Y+v.Height)
		return p.X >= minX && p.X <= maxX && p.Y >= minY && p.Y <= maxY
	case *Circle:
		return math.Hypot(p.X-v.CenterX, p.Y-v.CenterY) <= math.Abs(v.Radius)
	case *Pencil:
		for _, q := range v.Points {
			if math.Hypot(p.X-q.X, p.Y-q.Y) <= PencilHitTolerance {
				return true
			}
		}
		return false
	default:
		return false
	}
}
