package server

import (
	"log"
	"time"

	"github.com/gorilla/websocket"

	"github.com/MonishPuttu/DRAWIFY/internal/wire"
)

// https://github.com/gorilla/websocket/blob/main/examples/chat/client.go
var (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 20 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 64 * 1024

	// Outbound buffer per connection. A recipient that falls this far
	// behind starts losing broadcasts instead of stalling the room.
	sendBufferSize = 256
)

type Client struct {
	connection *websocket.Conn
	manager    *Manager
	userID     string
	send       chan []byte
	rooms      map[string]struct{}
}

type ClientList map[*Client]bool

func NewClient(conn *websocket.Conn, m *Manager, userID string) *Client {
	return &Client{
		connection: conn,
		manager:    m,
		userID:     userID,
		send:       make(chan []byte, sendBufferSize),
		rooms:      make(map[string]struct{}),
	}
}

func (client *Client) WriteMsgs() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.manager.removeClient(client)
	}()

	for {
		select {
		case payload, ok := <-client.send:
			client.connection.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Server closed the channel
				client.connection.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := client.connection.WriteMessage(websocket.TextMessage, payload); err != nil {
				log.Println("could not write message to client:", err)
			}
		case <-ticker.C:
			client.connection.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.connection.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Println("could not ping client:", err)
				return
			}
		}
	}
}

func (client *Client) ReadUserMsgs() {
	defer client.manager.removeClient(client)

	client.connection.SetReadLimit(int64(maxMessageSize))
	client.connection.SetReadDeadline(time.Now().Add(pongWait))
	client.connection.SetPongHandler(func(string) error { client.connection.SetReadDeadline(time.Now().Add(pongWait)); return nil })

	for {
		_, payload, err := client.connection.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Println("error reading message:", err)
			}
			break
		}

		request, err := wire.Decode(payload)
		if err != nil {
			// a malformed frame is dropped, the connection lives on
			log.Println("error unmarshalling message:", err)
			continue
		}
		if err := client.manager.routeEvent(request, client); err != nil {
			log.Println("error handling message:", err)
		}
	}
}

// trySend queues a payload without ever blocking; a full buffer means this
// recipient misses the message.
func (client *Client) trySend(payload []byte) {
	select {
	case client.send <- payload:
	default:
		log.Println("dropping message for slow client", client.userID)
	}
}
