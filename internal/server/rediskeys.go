package server

import "fmt"

var REDIS_KEYS = struct {
	USER         func(string) string
	ROOM_HISTORY func(string) string
}{
	func(username string) string {
		return fmt.Sprint("user:", username)
	},
	func(roomID string) string {
		return fmt.Sprint("room_history:", roomID)
	},
}
