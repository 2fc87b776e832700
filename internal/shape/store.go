package shape

import "sync"

// Store holds the shapes of one room in draw order. The socket reader and
// the UI mutate it from different goroutines, so every access goes through
// the lock.
type Store struct {
	mu       sync.RWMutex
	shapes   []Shape
	onChange func()
}

func NewStore() *Store {
	return &Store{}
}

// SetOnChange registers the redraw callback fired after every successful
// mutation.
func (s *Store) SetOnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// Apply merges one event into the store. A shape whose id is already present
// is skipped, so redelivery and the sender's own broadcast echo are harmless.
// Deleting an absent id is a no-op.
func (s *Store) Apply(ev Event) {
	s.mu.Lock()
	changed := false
	if ev.Shape != nil {
		if !s.containsLocked(ev.Shape.ID()) {
			s.shapes = append(s.shapes, ev.Shape)
			changed = true
		}
	} else if ev.DeleteID != "" {
		for i, sh := range s.shapes {
			if sh.ID() == ev.DeleteID {
				s.shapes = append(s.shapes[:i], s.shapes[i+1:]...)
				changed = true
				break
			}
		}
	}
	fn := s.onChange
	s.mu.Unlock()

	if changed && fn != nil {
		fn()
	}
}

func (s *Store) containsLocked(id string) bool {
	for _, sh := range s.shapes {
		if sh.ID() == id {
			return true
		}
	}
	return false
}

// Contains reports whether a shape with the given id is in the store.
func (s *Store) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.containsLocked(id)
}

// All returns the shapes in draw order: later additions draw on top.
func (s *Store) All() []Shape {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Shape, len(s.shapes))
	copy(out, s.shapes)
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.shapes)
}
