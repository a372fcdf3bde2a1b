package cache

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru"
)

type entry struct {
	v   []byte
	exp time.Time
}

// TTLCache is a bounded in-process cache. Entries expire lazily on read;
// the least recently used entry is evicted once Size is reached.
type TTLCache struct {
	lru *lru.Cache
	now func() time.Time
}

func NewTTLCache(size int) (*TTLCache, error) {
	if size <= 0 {
		size = 512
	}
	l, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &TTLCache{lru: l, now: time.Now}, nil
}

func (c *TTLCache) Get(key string) ([]byte, bool) {
	v, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}
	e := v.(entry)
	if !e.exp.IsZero() && c.now().After(e.exp) {
		c.lru.Remove(key)
		return nil, false
	}
	return e.v, true
}

func (c *TTLCache) Set(key string, v []byte, ttl time.Duration) {
	var exp time.Time
	if ttl > 0 {
		exp = c.now().Add(ttl)
	}
	c.lru.Add(key, entry{v: v, exp: exp})
}

func (c *TTLCache) Len() int { return c.lru.Len() }

// Implement BytesCache
func (c *TTLCache) GetBytes(_ context.Context, key string) ([]byte, bool, error) {
	b, ok := c.Get(key)
	return b, ok, nil
}

func (c *TTLCache) SetBytes(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.Set(key, value, ttl)
	return nil
}
