package mock

import (
	"path"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// Redis is the in-memory Redis backing the summary cache in every scenario.
type Redis struct {
	server *miniredis.Miniredis
	Client *redis.Client
}

var (
	redisOnce   sync.Once
	sharedRedis *Redis
)

// SharedRedis starts miniredis on first use and returns the same instance afterwards.
func SharedRedis() *Redis {
	redisOnce.Do(func() {
		server, err := miniredis.Run()
		if err != nil {
			panic("failed to start miniredis. err: " + err.Error())
		}
		sharedRedis = &Redis{
			server: server,
			Client: redis.NewClient(&redis.Options{Addr: server.Addr()}),
		}
	})
	return sharedRedis
}

// Flush drops every key, cache versions included.
func (r *Redis) Flush() {
	r.server.FlushAll()
}

// CountKeys counts the keys matching a glob pattern.
func (r *Redis) CountKeys(pattern string) int {
	n := 0
	for _, key := range r.server.Keys() {
		if ok, _ := path.Match(pattern, key); ok {
			n++
		}
	}
	return n
}
