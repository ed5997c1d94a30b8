package server

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

type localEntry struct {
	expires time.Time
	data    []byte
}

// Cache is a Redis-backed response cache with a small in-process layer
// in front of it.
type Cache struct {
	mu       sync.Mutex
	client   *redis.Client
	ctx      context.Context
	memCache map[string]localEntry
}

func NewCache(addr, password string, db int) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &Cache{
		client:   rdb,
		ctx:      context.Background(),
		memCache: make(map[string]localEntry),
	}
}

func (c *Cache) GetRaw(key string) ([]byte, bool) {
	c.mu.Lock()
	local, found := c.memCache[key]
	if found && time.Now().Before(local.expires) {
		c.mu.Unlock()
		return local.data, true
	}
	if found {
		delete(c.memCache, key)
	}
	c.mu.Unlock()

	data, err := c.client.Get(c.ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	c.mu.Lock()
	c.memCache[key] = localEntry{expires: time.Now().Add(time.Minute), data: data}
	c.mu.Unlock()
	return data, true
}

func (c *Cache) SetRaw(key string, data []byte, expiration time.Duration) error {
	c.mu.Lock()
	c.memCache[key] = localEntry{expires: time.Now().Add(expiration), data: data}
	c.mu.Unlock()
	return c.client.Set(c.ctx, key, data, expiration).Err()
}

// Flush drops the local layer and leaves Redis entries to expire.
func (c *Cache) Flush() {
	c.mu.Lock()
	c.memCache = make(map[string]localEntry)
	c.mu.Unlock()
}

func (c *Cache) Close() {
	c.client.Close()
}
