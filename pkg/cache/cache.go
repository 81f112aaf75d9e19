package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/matst80/slask-cars/pkg/common/jsoncompat"
	"github.com/redis/go-redis/v9"
)

var ErrMiss = errors.New("cache miss")

const DefaultMaxLocalEntries = 4096

type LocalEntry struct {
	Expires time.Time
	Data    []byte
}

// Cache keeps serialized values in process and, when configured, in redis.
// Local entries are consulted first.
type Cache struct {
	Addr     string
	Password string
	DB       int
	client   *redis.Client
	mu       sync.RWMutex
	memCache map[string]LocalEntry
	now      func() time.Time

	// MaxLocalEntries caps the in-process layer, 0 means unbounded.
	MaxLocalEntries int
}

func NewCache(addr, password string, db int) *Cache {
	c := NewLocalCache()
	c.Addr = addr
	c.Password = password
	c.DB = db
	if addr != "" {
		c.client = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		})
	}
	return c
}

// NewLocalCache returns a cache without a redis backend.
func NewLocalCache() *Cache {
	return &Cache{
		memCache:        make(map[string]LocalEntry),
		now:             time.Now,
		MaxLocalEntries: DefaultMaxLocalEntries,
	}
}

func (c *Cache) local(key string) ([]byte, bool) {
	c.mu.RLock()
	entry, found := c.memCache[key]
	c.mu.RUnlock()
	if !found {
		return nil, false
	}
	if entry.Expires.Before(c.now()) {
		c.mu.Lock()
		delete(c.memCache, key)
		c.mu.Unlock()
		return nil, false
	}
	return entry.Data, true
}

func (c *Cache) store(key string, data []byte, expiration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, found := c.memCache[key]; !found && c.MaxLocalEntries > 0 && len(c.memCache) >= c.MaxLocalEntries {
		c.sweep()
		if len(c.memCache) >= c.MaxLocalEntries {
			// every entry is live, start over rather than track recency
			clear(c.memCache)
		}
	}
	c.memCache[key] = LocalEntry{Expires: c.now().Add(expiration), Data: data}
}

// sweep drops expired entries, c.mu must be held.
func (c *Cache) sweep() int {
	now := c.now()
	n := 0
	for key, entry := range c.memCache {
		if entry.Expires.Before(now) {
			delete(c.memCache, key)
			n++
		}
	}
	return n
}

// Sweep drops every expired local entry and returns how many were removed.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sweep()
}

func (c *Cache) LocalLen() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.memCache)
}

func (c *Cache) Get(ctx context.Context, key string, out any) error {
	if data, ok := c.local(key); ok {
		return jsoncompat.Unmarshal(data, out)
	}
	if c.client == nil {
		return ErrMiss
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return err
	}
	if err = jsoncompat.Unmarshal(data, out); err != nil {
		return err
	}
	ttl := time.Minute
	if d, err := c.client.TTL(ctx, key).Result(); err == nil && d > 0 {
		ttl = d
	}
	c.store(key, data, ttl)
	return nil
}

func (c *Cache) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	data, err := jsoncompat.Marshal(value)
	if err != nil {
		return err
	}
	c.store(key, data, expiration)
	if c.client == nil {
		return nil
	}
	return c.client.Set(ctx, key, data, expiration).Err()
}

// Invalidate drops every local entry and, with redis, the keys matching prefix.
func (c *Cache) Invalidate(ctx context.Context, prefix string) error {
	c.mu.Lock()
	clear(c.memCache)
	c.mu.Unlock()
	if c.client == nil {
		return nil
	}
	iter := c.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (c *Cache) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}
