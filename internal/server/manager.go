package server

import (
	"errors"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/MonishPuttu/DRAWIFY/internal/wire"
)

var (
	websocketUpgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
	ErrUnknownEvent = errors.New("unknown event type")
	ErrMissingRoom  = errors.New("event names no room")
)

type EventHandler func(event wire.SocketEvent, c *Client) error

// Manager owns every live connection, the room membership map and the
// persistence queue. It is constructed and started by its owner; there is no
// process-wide instance.
type Manager struct {
	sync.RWMutex
	clients       ClientList
	roomSubs      map[string]map[*Client]struct{}
	eventHandlers map[string]EventHandler
	auth          *Auth
	queue         *PersistenceQueue
}

func NewManager(auth *Auth, history HistoryStore) *Manager {
	m := &Manager{
		clients:       make(ClientList),
		roomSubs:      make(map[string]map[*Client]struct{}),
		eventHandlers: make(map[string]EventHandler),
		auth:          auth,
		queue:         NewPersistenceQueue(history),
	}
	m.setupEventHandlers()
	return m
}

func (m *Manager) setupEventHandlers() {
	m.eventHandlers[wire.EventJoinRoom] = func(e wire.SocketEvent, c *Client) error {
		if e.RoomID == "" {
			return ErrMissingRoom
		}
		m.join(c, e.RoomID)
		return nil
	}
	m.eventHandlers[wire.EventLeaveRoom] = func(e wire.SocketEvent, c *Client) error {
		if e.RoomID == "" {
			return ErrMissingRoom
		}
		m.leave(c, e.RoomID)
		return nil
	}
	m.eventHandlers[wire.EventChat] = func(e wire.SocketEvent, c *Client) error {
		if e.RoomID == "" {
			return ErrMissingRoom
		}
		// enqueue first so a slow consumer cannot reorder history, then fan
		// out synchronously; persistence never blocks delivery
		m.queue.Enqueue(QueuedWrite{RoomID: e.RoomID, Message: e.Message, UserID: c.userID})
		m.broadcast(e)
		return nil
	}
}

// join adds the room to the connection's membership set. Duplicate joins are
// harmless: membership is tested by containment, not counted.
func (m *Manager) join(c *Client, roomID string) {
	m.Lock()
	defer m.Unlock()

	subs, ok := m.roomSubs[roomID]
	if !ok {
		subs = make(map[*Client]struct{})
		m.roomSubs[roomID] = subs
	}
	subs[c] = struct{}{}
	c.rooms[roomID] = struct{}{}
}

// leave removes the membership if present; leaving a room never joined is a
// no-op.
func (m *Manager) leave(c *Client, roomID string) {
	m.Lock()
	defer m.Unlock()

	if subs, ok := m.roomSubs[roomID]; ok {
		delete(subs, c)
		if len(subs) == 0 {
			delete(m.roomSubs, roomID)
		}
	}
	delete(c.rooms, roomID)
}

// broadcast relays the chat envelope verbatim to every member of the room,
// the sender included; the sender already applied the event optimistically
// and tolerates the echo through its store's id check.
func (m *Manager) broadcast(e wire.SocketEvent) {
	payload, err := wire.SocketEvent{Type: wire.EventChat, RoomID: e.RoomID, Message: e.Message}.Encode()
	if err != nil {
		log.Println("could not marshal chat event:", err)
		return
	}

	// trySend never blocks, so fan-out can stay under the read lock; that
	// also keeps removeClient from closing a channel mid-send.
	m.RLock()
	defer m.RUnlock()
	for client := range m.roomSubs[e.RoomID] {
		client.trySend(payload)
	}
}

// ServeWS authenticates and upgrades one connection. An invalid token is
// rejected before the upgrade, so the connection never appears in any room.
func (m *Manager) ServeWS(w http.ResponseWriter, r *http.Request) {
	userID, err := m.auth.Verify(r.URL.Query().Get("token"))
	if err != nil {
		log.Println("rejecting connection:", err)
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := websocketUpgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("could not upgrade request:", err)
		return
	}

	client := NewClient(conn, m, userID)
	m.addClient(client)

	go client.ReadUserMsgs()
	go client.WriteMsgs()
}

func (m *Manager) addClient(client *Client) {
	m.Lock()
	defer m.Unlock()

	m.clients[client] = true
	log.Println("nr clients:", len(m.clients))
}

func (m *Manager) removeClient(client *Client) {
	m.Lock()
	defer m.Unlock()

	if _, ok := m.clients[client]; ok {
		if client.connection != nil {
			client.connection.Close()
		}
		close(client.send)
		delete(m.clients, client)
		for roomID := range client.rooms {
			if subs, ok := m.roomSubs[roomID]; ok {
				delete(subs, client)
				if len(subs) == 0 {
					delete(m.roomSubs, roomID)
				}
			}
		}
	}
}

func (m *Manager) routeEvent(event wire.SocketEvent, c *Client) error {
	if handler, ok := m.eventHandlers[event.Type]; ok {
		return handler(event, c)
	}
	return ErrUnknownEvent
}

// memberOf reports whether the client currently belongs to the room.
func (m *Manager) memberOf(c *Client, roomID string) bool {
	m.RLock()
	defer m.RUnlock()
	_, ok := m.roomSubs[roomID][c]
	return ok
}
