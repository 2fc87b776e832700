package shape

import (
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestApplyIsIdempotentOnShapeID(t *testing.T) {
	s := NewStore()
	redraws := 0
	s.SetOnChange(func() { redraws++ })

	c := &Circle{Id: "s1", CenterX: 10, CenterY: 10, Radius: 5}
	s.Apply(Event{Shape: c})
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 1, redraws)

	// broadcast echo of the same shape
	s.Apply(Event{Shape: &Circle{Id: "s1", CenterX: 99, CenterY: 99, Radius: 1}})
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 1, redraws)

	got := s.All()[0].(*Circle)
	assert.Equal(t, 10.0, got.CenterX)
}

func TestDeleteAbsentIDIsNoOp(t *testing.T) {
	s := NewStore()
	s.Apply(Event{Shape: &Rect{Id: "a", Width: 5, Height: 5}})

	redraws := 0
	s.SetOnChange(func() { redraws++ })

	s.Apply(Event{DeleteID: "nope"})
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 0, redraws)

	s.Apply(Event{DeleteID: "a"})
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 1, redraws)
}

func TestDrawOrderIsInsertionOrder(t *testing.T) {
	s := NewStore()
	s.Apply(Event{Shape: &Rect{Id: "below", Width: 10, Height: 10}})
	s.Apply(Event{Shape: &Rect{Id: "above", Width: 10, Height: 10}})
	s.Apply(Event{DeleteID: "below"})
	s.Apply(Event{Shape: &Rect{Id: "below", Width: 10, Height: 10}})

	all := s.All()
	assert.Equal(t, "above", all[0].ID())
	assert.Equal(t, "below", all[1].ID())
}

func TestHitTestPrefersNewestShape(t *testing.T) {
	s := NewStore()
	s.Apply(Event{Shape: &Rect{Id: "old", X: 0, Y: 0, Width: 20, Height: 20}})
	s.Apply(Event{Shape: &Circle{Id: "new", CenterX: 10, CenterY: 10, Radius: 15}})

	hit := s.HitTest(Point{X: 10, Y: 10})
	assert.NotEqual(t, hit, nil)
	assert.Equal(t, "new", hit.ID())
}

func TestHitTestGeometry(t *testing.T) {
	s := NewStore()
	// drawn backwards: negative extents must still contain interior points
	s.Apply(Event{Shape: &Rect{Id: "r", X: 0, Y: 0, Width: -10, Height: -10}})
	assert.NotEqual(t, s.HitTest(Point{X: -5, Y: -5}), nil)
	assert.Equal(t, s.HitTest(Point{X: 5, Y: 5}), nil)

	s2 := NewStore()
	s2.Apply(Event{Shape: &Circle{Id: "c", CenterX: 0, CenterY: 0, Radius: -5}})
	assert.NotEqual(t, s2.HitTest(Point{X: 3, Y: 0}), nil)
	assert.Equal(t, s2.HitTest(Point{X: 6, Y: 0}), nil)

	s3 := NewStore()
	s3.Apply(Event{Shape: &Pencil{Id: "p", Points: []Point{{X: 100, Y: 100}}}})
	assert.NotEqual(t, s3.HitTest(Point{X: 105, Y: 100}), nil)
	assert.Equal(t, s3.HitTest(Point{X: 120, Y: 100}), nil)

	// an empty stroke is never hit
	s4 := NewStore()
	s4.Apply(Event{Shape: &Pencil{Id: "empty"}})
	assert.Equal(t, s4.HitTest(Point{X: 0, Y: 0}), nil)
}
