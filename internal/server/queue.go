package server

import (
	"context"
	"log"
	"sync"
)

// QueuedWrite is one drawing event awaiting a durable append to its room's
// history.
type QueuedWrite struct {
	RoomID  string
	Message string
	UserID  string
}

// PersistenceQueue decouples durable writes from broadcast: Enqueue never
// blocks the caller, and a single drain goroutine is the only writer to the
// history store, so appends keep their insertion order. A write that fails
// is logged and dropped; the event stays delivered in real time but is
// absent from history.
type PersistenceQueue struct {
	mu       sync.Mutex
	pending  []QueuedWrite
	draining bool
	history  HistoryStore
	idle     *sync.Cond
}

func NewPersistenceQueue(history HistoryStore) *PersistenceQueue {
	q := &PersistenceQueue{history: history}
	q.idle = sync.NewCond(&q.mu)
	return q
}

// Enqueue appends the write and makes sure exactly one drain loop is
// running. If one is already draining, the new item is left for it: the
// loop rechecks the queue before exiting.
func (q *PersistenceQueue) Enqueue(w QueuedWrite) {
	q.mu.Lock()
	q.pending = append(q.pending, w)
	if q.draining {
		q.mu.Unlock()
		return
	}
	q.draining = true
	q.mu.Unlock()

	go q.drain()
}

func (q *PersistenceQueue) drain() {
	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			q.draining = false
			q.idle.Broadcast()
			q.mu.Unlock()
			return
		}
		w := q.pending[0]
		q.pending = q.pending[1:]
		q.mu.Unlock()

		if err := q.history.Append(context.Background(), w.RoomID, w.Message, w.UserID); err != nil {
			log.Println("could not persist chat message:", err)
		}
	}
}

// Wait blocks until the queue is empty and no drain loop is running. Used on
// shutdown and in tests.
func (q *PersistenceQueue) Wait() {
	q.mu.Lock()
	for q.draining || len(q.pending) > 0 {
		q.idle.Wait()
	}
	q.mu.Unlock()
}

// Pending returns the number of writes not yet attempted.
func (q *PersistenceQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
