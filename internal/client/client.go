// Package client is the Go-side counterpart of the room server: it dials the
// websocket with a token, joins rooms, ships draw events and replays the
// join snapshot.
package client

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/MonishPuttu/DRAWIFY/internal/shape"
	"github.com/MonishPuttu/DRAWIFY/internal/wire"
)

// Conn is one authenticated websocket connection. A connection can be joined
// to any number of rooms at once.
type Conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

// Dial connects and authenticates against a server reachable at an http(s)
// base URL.
func Dial(serverURL, token string) (*Conn, error) {
	ws, resp, err := websocket.DefaultDialer.Dial(wsEndpoint(serverURL, token), nil)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			return nil, fmt.Errorf("server rejected token: %w", err)
		}
		return nil, err
	}
	return &Conn{ws: ws}, nil
}

func wsEndpoint(serverURL, token string) string {
	base := serverURL
	switch {
	case strings.HasPrefix(base, "https"):
		base = "wss" + strings.TrimPrefix(base, "https")
	case strings.HasPrefix(base, "http"):
		base = "ws" + strings.TrimPrefix(base, "http")
	}
	return base + "/ws?token=" + token
}

func (c *Conn) writeEvent(ev wire.SocketEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteJSON(ev)
}

func (c *Conn) Join(roomID string) error {
	return c.writeEvent(wire.SocketEvent{Type: wire.EventJoinRoom, RoomID: roomID})
}

func (c *Conn) Leave(roomID string) error {
	return c.writeEvent(wire.SocketEvent{Type: wire.EventLeaveRoom, RoomID: roomID})
}

// SendEvent publishes one draw event into a room.
func (c *Conn) SendEvent(roomID string, ev shape.Event) error {
	message, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return c.writeEvent(wire.SocketEvent{Type: wire.EventChat, RoomID: roomID, Message: string(message)})
}

// Listen delivers inbound chat events until the connection dies. Frames that
// fail to decode are dropped, matching the server's tolerance.
func (c *Conn) Listen(onEvent func(roomID string, ev shape.Event)) error {
	for {
		_, payload, err := c.ws.ReadMessage()
		if err != nil {
			return err
		}
		envelope, err := wire.Decode(payload)
		if err != nil || envelope.Type != wire.EventChat {
			continue
		}
		var ev shape.Event
		if err := json.Unmarshal([]byte(envelope.Message), &ev); err != nil {
			log.Println("dropping malformed draw event:", err)
			continue
		}
		onEvent(envelope.RoomID, ev)
	}
}

func (c *Conn) Close() error {
	return c.ws.Close()
}

// RoomTransport binds a connection and a room into the engine's outbound
// path.
type RoomTransport struct {
	Conn   *Conn
	RoomID string
}

func (t *RoomTransport) Send(ev shape.Event) error {
	return t.Conn.SendEvent(t.RoomID, ev)
}

// Login exchanges credentials for a bearer token.
func Login(serverURL, username, password string) (string, error) {
	body, err := json.Marshal(map[string]string{"username": username, "password": password})
	if err != nil {
		return "", err
	}
	resp, err := http.Post(serverURL+"/auth/login", "application/json", strings.NewReader(string(body)))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	token, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login failed: %s", strings.TrimSpace(string(token)))
	}
	return string(token), nil
}

// FetchSnapshot pulls a room's recorded events and decodes them in replay
// order. Records whose payload no longer parses are skipped; the board
// renders whatever survives.
func FetchSnapshot(serverURL, roomID string) ([]shape.Event, error) {
	resp, err := http.Get(serverURL + "/rooms/" + roomID + "/chats")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("snapshot request failed with status %d", resp.StatusCode)
	}

	compressed, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	payload, err := wire.Decompress(compressed)
	if err != nil {
		return nil, err
	}

	var snapshot wire.Snapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return nil, err
	}

	events := make([]shape.Event, 0, len(snapshot.Messages))
	for _, record := range snapshot.Messages {
		var ev shape.Event
		if err := json.Unmarshal([]byte(record.Message), &ev); err != nil {
			log.Println("skipping malformed history record:", err)
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}
