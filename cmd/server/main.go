package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MonishPuttu/DRAWIFY/internal/discovery"
	"github.com/MonishPuttu/DRAWIFY/internal/server"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func connectRedis(addr string) *redis.Client {
	ctx := context.Background()
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	for err := rdb.Ping(ctx).Err(); err != nil; err = rdb.Ping(ctx).Err() {
		log.Println("can't connect to redis, retrying in 2 seconds:", err)
		time.Sleep(2 * time.Second)
	}
	log.Println("successfully connected to redis")
	return rdb
}

func main() {
	addr := envOr("DRAWIFY_ADDR", ":5000")
	redisAddr := envOr("REDIS_ADDR", "redis:6379")
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	rdb := connectRedis(redisAddr)

	auth := server.NewAuth([]byte(secret))
	history := server.NewRedisHistory(rdb)
	users := server.NewUserStore(rdb)
	manager := server.NewManager(auth, history)
	api := server.NewAPI(manager, auth, users, history)

	if port := portOf(addr); port != 0 {
		mdnsServer, err := discovery.Advertise(port)
		if err != nil {
			log.Println("could not advertise on the LAN:", err)
		} else {
			defer mdnsServer.Shutdown()
		}
	}

	log.Println("listening on", addr)
	log.Fatal(http.ListenAndServe(addr, api.Router()))
}

func portOf(addr string) int {
	i := strings.LastIndex(addr, ":")
	if i < 0 {
		return 0
	}
	port, err := strconv.Atoi(addr[i+1:])
	if err != nil {
		return 0
	}
	return port
}
