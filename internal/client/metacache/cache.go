// Package metacache caches decrypted item metadata so a name is decrypted
// once, not on every render. Entries are keyed by kind, item UUID and a
// digest of the ciphertext, so a re-encrypted payload misses and gets
// decrypted again. A TTL memory layer sits over a SQLite table that
// survives restarts.
package metacache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	ttlworker "github.com/FloatTech/ttl"
)

const defaultTTL = time.Hour

// Cache is the two-level decrypted-metadata cache.
type Cache struct {
	mem   *ttlworker.Cache[string, string]
	ttl   time.Duration
	store Store
}

// New builds a cache over the given store. ttl <= 0 falls back to one hour.
func New(store Store, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache{
		mem:   ttlworker.NewCache[string, string](ttl),
		ttl:   ttl,
		store: store,
	}
}

// Flush drops the memory layer, e.g. after the persistent cache was wiped
// on an account switch.
func (c *Cache) Flush() {
	c.mem = ttlworker.NewCache[string, string](c.ttl)
}

// Key builds a cache key for a metadata envelope of an item. kind is
// "file" or "folder".
func Key(kind, uuid, metadata string) string {
	sum := sha256.Sum256([]byte(metadata))
	return kind + ":" + uuid + ":" + hex.EncodeToString(sum[:8])
}

// Get returns the cached plaintext for key. The memory layer is consulted
// first; a persistent hit is promoted into memory.
func (c *Cache) Get(ctx context.Context, key string) (string, bool) {
	if v := c.mem.Get(key); v != "" {
		return v, true
	}

	v, err := c.store.Get(ctx, key)
	if err != nil || v == "" {
		return "", false
	}

	c.mem.Set(key, v)
	return v, true
}

// Put stores the plaintext in both layers. Persistence errors are dropped:
// the cache is an optimization and the memory layer already has the value.
func (c *Cache) Put(ctx context.Context, key, value string) {
	if value == "" {
		return
	}
	c.mem.Set(key, value)
	_ = c.store.Put(ctx, key, value)
}
