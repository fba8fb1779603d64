package mock

import (
	"strings"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var (
	redisOnce   sync.Once
	redisServer *miniredis.Miniredis
	redisConn   *redis.Client
)

// NewRedis starts the shared in-memory Redis once and returns a client for it.
func NewRedis() (*miniredis.Miniredis, *redis.Client) {
	redisOnce.Do(func() {
		server, err := miniredis.Run()
		if err != nil {
			panic(err)
		}
		redisServer = server
		redisConn = redis.NewClient(&redis.Options{Addr: server.Addr()})
	})

	return redisServer, redisConn
}

// ClearRedis removes every key.
func ClearRedis(server *miniredis.Miniredis) {
	server.FlushAll()
}

// KeysWithPrefix returns the keys starting with prefix.
func KeysWithPrefix(server *miniredis.Miniredis, prefix string) []string {
	var keys []string
	for _, key := range server.Keys() {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys
}
