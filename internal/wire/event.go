// Package wire holds the socket envelope and snapshot payloads shared by the
// server and the Go client.
package wire

import "encoding/json"

const (
	EventJoinRoom  = "join_room"
	EventLeaveRoom = "leave_room"
	EventChat      = "chat"
)

// SocketEvent is the envelope for every websocket message in both
// directions. For chat events Message carries the JSON-encoded draw event;
// the server relays it verbatim.
type SocketEvent struct {
	Type    string `json:"type"`
	RoomID  string `json:"roomId,omitempty"`
	Message string `json:"message,omitempty"`
}

func (e SocketEvent) Encode() ([]byte, error) {
	return json.Marshal(e)
}

func Decode(payload []byte) (SocketEvent, error) {
	var e SocketEvent
	err := json.Unmarshal(payload, &e)
	return e, err
}

// ChatRecord is one persisted room-history entry, also the element of the
// snapshot response.
type ChatRecord struct {
	RoomID  string `json:"roomId"`
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

// Snapshot is the reply of the room history endpoint: up to the cap of the
// most recent records, in replay order.
type Snapshot struct {
	Messages []ChatRecord `json:"messages"`
}
