package cache

import (
	"os"

	"github.com/redis/go-redis/v9"
)

// FromEnv picks the cache backend. With REDIS_ADDR set the cache is
// shared across instances; otherwise it is per-process memory.
func FromEnv() (string, Store) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return "memory", NewMemory()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	prefix := os.Getenv("REDIS_KEY_PREFIX")
	if prefix == "" {
		prefix = "vivu:"
	}
	return "redis", NewRedis(client, prefix)
}
