package server

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/MonishPuttu/DRAWIFY/internal/wire"
)

// SnapshotCap bounds how much history a joining client replays.
const SnapshotCap = 1000

// HistoryStore is the durable append-only record of a room's drawing
// events. Append is the only write; Recent serves the join snapshot.
type HistoryStore interface {
	Append(ctx context.Context, roomID, message, userID string) error
	Recent(ctx context.Context, roomID string, limit int) ([]wire.ChatRecord, error)
}

// RedisHistory keeps each room's events in a redis list, pushed in arrival
// order.
type RedisHistory struct {
	rdb *redis.Client
}

func NewRedisHistory(rdb *redis.Client) *RedisHistory {
	return &RedisHistory{rdb: rdb}
}

func (h *RedisHistory) Append(ctx context.Context, roomID, message, userID string) error {
	record, err := json.Marshal(wire.ChatRecord{RoomID: roomID, Message: message, UserID: userID})
	if err != nil {
		return err
	}
	return h.rdb.RPush(ctx, REDIS_KEYS.ROOM_HISTORY(roomID), record).Err()
}

func (h *RedisHistory) Recent(ctx context.Context, roomID string, limit int) ([]wire.ChatRecord, error) {
	raw, err := h.rdb.LRange(ctx, REDIS_KEYS.ROOM_HISTORY(roomID), int64(-limit), -1).Result()
	if err != nil {
		return nil, err
	}

	records := make([]wire.ChatRecord, 0, len(raw))
	for _, entry := range raw {
		var record wire.ChatRecord
		if err := json.Unmarshal([]byte(entry), &record); err != nil {
			// a corrupt entry is skipped, the rest of the history replays
			continue
		}
		records = append(records, record)
	}
	return records, nil
}
