package server

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/go-playground/assert/v2"

	"github.com/MonishPuttu/DRAWIFY/internal/shape"
	"github.com/MonishPuttu/DRAWIFY/internal/wire"
)

func newTestManager() (*Manager, *fakeHistory) {
	history := newFakeHistory()
	return NewManager(NewAuth([]byte("test-secret")), history), history
}

// addTestClient builds a client without a real socket; broadcasts land in
// its send buffer.
func addTestClient(m *Manager, userID string) *Client {
	c := NewClient(nil, m, userID)
	m.addClient(c)
	return c
}

func recvEnvelope(t *testing.T, c *Client) wire.SocketEvent {
	t.Helper()
	select {
	case payload := <-c.send:
		ev, err := wire.Decode(payload)
		assert.Equal(t, nil, err)
		return ev
	default:
		t.Fatal("expected a broadcast, send buffer is empty")
		return wire.SocketEvent{}
	}
}

func chatEvent(t *testing.T, roomID string, s shape.Shape) wire.SocketEvent {
	t.Helper()
	message, err := json.Marshal(shape.Event{Shape: s})
	assert.Equal(t, nil, err)
	return wire.SocketEvent{Type: wire.EventChat, RoomID: roomID, Message: string(message)}
}

func TestJoinLeaveMembership(t *testing.T) {
	m, _ := newTestManager()
	c := addTestClient(m, "u1")

	assert.Equal(t, nil, m.routeEvent(wire.SocketEvent{Type: wire.EventJoinRoom, RoomID: "r1"}, c))
	assert.Equal(t, true, m.memberOf(c, "r1"))

	// duplicate join is harmless
	assert.Equal(t, nil, m.routeEvent(wire.SocketEvent{Type: wire.EventJoinRoom, RoomID: "r1"}, c))
	assert.Equal(t, true, m.memberOf(c, "r1"))

	assert.Equal(t, nil, m.routeEvent(wire.SocketEvent{Type: wire.EventLeaveRoom, RoomID: "r1"}, c))
	assert.Equal(t, false, m.memberOf(c, "r1"))

	// leaving a room never joined is a no-op
	assert.Equal(t, nil, m.routeEvent(wire.SocketEvent{Type: wire.EventLeaveRoom, RoomID: "r2"}, c))
}

func TestChatFansOutToRoomMembersIncludingSender(t *testing.T) {
	m, _ := newTestManager()
	a := addTestClient(m, "ua")
	b := addTestClient(m, "ub")
	outsider := addTestClient(m, "uc")

	m.routeEvent(wire.SocketEvent{Type: wire.EventJoinRoom, RoomID: "r1"}, a)
	m.routeEvent(wire.SocketEvent{Type: wire.EventJoinRoom, RoomID: "r1"}, b)
	m.routeEvent(wire.SocketEvent{Type: wire.EventJoinRoom, RoomID: "r2"}, outsider)

	sent := chatEvent(t, "r1", &shape.Circle{Id: "s1", CenterX: 10, CenterY: 10, Radius: 5})
	assert.Equal(t, nil, m.routeEvent(sent, a))

	for _, c := range []*Client{a, b} {
		got := recvEnvelope(t, c)
		assert.Equal(t, wire.EventChat, got.Type)
		assert.Equal(t, "r1", got.RoomID)
		assert.Equal(t, sent.Message, got.Message)

		var ev shape.Event
		assert.Equal(t, nil, json.Unmarshal([]byte(got.Message), &ev))
		assert.Equal(t, "s1", ev.Shape.ID())
	}
	assert.Equal(t, 0, len(outsider.send))
}

func TestChatIsPersistedThroughQueue(t *testing.T) {
	m, history := newTestManager()
	a := addTestClient(m, "ua")
	m.routeEvent(wire.SocketEvent{Type: wire.EventJoinRoom, RoomID: "r1"}, a)

	m.routeEvent(chatEvent(t, "r1", &shape.Rect{Id: "s2", Width: 3, Height: 3}), a)
	m.queue.Wait()

	records := history.stored()
	assert.Equal(t, 1, len(records))
	assert.Equal(t, "r1", records[0].RoomID)
	assert.Equal(t, "ua", records[0].UserID)
}

func TestFailedPersistKeepsLiveDeliveryButNotHistory(t *testing.T) {
	m, history := newTestManager()
	a := addTestClient(m, "ua")
	b := addTestClient(m, "ub")
	m.routeEvent(wire.SocketEvent{Type: wire.EventJoinRoom, RoomID: "r1"}, a)
	m.routeEvent(wire.SocketEvent{Type: wire.EventJoinRoom, RoomID: "r1"}, b)

	sent := chatEvent(t, "r1", &shape.Circle{Id: "s1", Radius: 5})
	history.fail[sent.Message] = true

	m.routeEvent(sent, a)
	m.queue.Wait()

	// B got the live broadcast
	got := recvEnvelope(t, b)
	assert.Equal(t, sent.Message, got.Message)

	// a later joiner's snapshot does not contain s1: the data-loss window
	records, err := history.Recent(context.Background(), "r1", SnapshotCap)
	assert.Equal(t, nil, err)
	assert.Equal(t, 0, len(records))
}

func TestRouteEventRejectsUnknownAndRoomlessEvents(t *testing.T) {
	m, _ := newTestManager()
	c := addTestClient(m, "u1")

	assert.Equal(t, ErrUnknownEvent, m.routeEvent(wire.SocketEvent{Type: "pixel_party"}, c))
	assert.Equal(t, ErrMissingRoom, m.routeEvent(wire.SocketEvent{Type: wire.EventChat}, c))
	assert.Equal(t, ErrMissingRoom, m.routeEvent(wire.SocketEvent{Type: wire.EventJoinRoom}, c))
}

func TestRemoveClientDropsAllMemberships(t *testing.T) {
	m, _ := newTestManager()
	a := addTestClient(m, "ua")
	b := addTestClient(m, "ub")
	m.routeEvent(wire.SocketEvent{Type: wire.EventJoinRoom, RoomID: "r1"}, a)
	m.routeEvent(wire.SocketEvent{Type: wire.EventJoinRoom, RoomID: "r2"}, a)
	m.routeEvent(wire.SocketEvent{Type: wire.EventJoinRoom, RoomID: "r1"}, b)

	m.removeClient(a)
	assert.Equal(t, false, m.memberOf(a, "r1"))
	assert.Equal(t, false, m.memberOf(a, "r2"))

	// the room still works for the remaining member
	m.routeEvent(chatEvent(t, "r1", &shape.Rect{Id: "after", Width: 1, Height: 1}), b)
	got := recvEnvelope(t, b)
	assert.Equal(t, "r1", got.RoomID)
}

func TestSlowRecipientDoesNotStallOthers(t *testing.T) {
	m, _ := newTestManager()
	slow := addTestClient(m, "slow")
	fast := addTestClient(m, "fast")
	m.routeEvent(wire.SocketEvent{Type: wire.EventJoinRoom, RoomID: "r1"}, slow)
	m.routeEvent(wire.SocketEvent{Type: wire.EventJoinRoom, RoomID: "r1"}, fast)

	// fill the slow client's buffer to the brim
	for i := 0; i < sendBufferSize+10; i++ {
		m.routeEvent(chatEvent(t, "r1", &shape.Rect{Id: "x", Width: 1, Height: 1}), fast)
		<-fast.send
	}

	// fast still got every message; slow's overflow was dropped silently
	assert.Equal(t, sendBufferSize, len(slow.send))
}
