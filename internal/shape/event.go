package shape

import (
	"encoding/json"
	"errors"
)

var ErrEmptyEvent = errors.New("event carries neither a shape nor a deletion")

// Event is the unit of board synchronization: either a shape create/update
// or a deletion by id. Exactly one of the two is set.
type Event struct {
	Shape    Shape
	DeleteID string
}

type eventJSON struct {
	Shape       json.RawMessage `json:"shape,omitempty"`
	DeleteShape string          `json:"deleteShape,omitempty"`
}

func (e Event) MarshalJSON() ([]byte, error) {
	if e.Shape != nil {
		raw, err := Marshal(e.Shape)
		if err != nil {
			return nil, err
		}
		return json.Marshal(eventJSON{Shape: raw})
	}
	if e.DeleteID != "" {
		return json.Marshal(eventJSON{DeleteShape: e.DeleteID})
	}
	return nil, ErrEmptyEvent
}

func (e *Event) UnmarshalJSON(data []byte) error {
	var raw eventJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw.Shape) > 0 {
		s, err := Unmarshal(raw.Shape)
		if err != nil {
			return err
		}
		e.Shape = s
		e.DeleteID = ""
		return nil
	}
	if raw.DeleteShape != "" {
		e.Shape = nil
		e.DeleteID = raw.DeleteShape
		return nil
	}
	return ErrEmptyEvent
}
