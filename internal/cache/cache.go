// Package cache implements the TTL'd key/value cache used by every remote
// data accessor. A fast in-process layer sits in front of the durable store,
// so entries survive a restart but reads rarely touch the backend.
package cache

import (
	"encoding/json"
	"log/slog"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/trekmate/trekmate-core/internal/storage"
)

// DefaultTTL applies when the caller does not override the entry lifetime.
const DefaultTTL = 5 * time.Minute

const storePrefix = "cache_"

var cacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "trekmate_cache_requests_total",
	Help: "Cache lookups partitioned by result.",
}, []string{"result"})

// envelope is the persisted shape of one entry. Expired entries are
// tombstoned lazily on the next read, never proactively swept.
type envelope struct {
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"` // unix milliseconds
	TTLMillis int64           `json:"ttl_ms"`
}

func (e envelope) expired(now time.Time) bool {
	return now.UnixMilli()-e.Timestamp > e.TTLMillis
}

// Cache is safe for concurrent use. Store failures are logged and swallowed;
// the cache never propagates a backend error to its caller.
type Cache struct {
	mem    *gocache.Cache
	store  storage.Store
	logger *slog.Logger
	now    func() time.Time
}

func New(store storage.Store, logger *slog.Logger) *Cache {
	// Cleanup interval zero: no janitor, expiry is checked on read.
	return &Cache{
		mem:    gocache.New(DefaultTTL, 0),
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Get unmarshals the stored value into out and reports whether a live entry
// was found. An expired entry is invalidated on the way out.
func (c *Cache) Get(key string, out any) bool {
	if raw, found := c.mem.Get(key); found {
		if data, ok := raw.([]byte); ok {
			if err := json.Unmarshal(data, out); err == nil {
				cacheRequests.WithLabelValues("hit").Inc()
				return true
			}
		}
	}

	stored, err := c.store.Get(storePrefix + key)
	if err != nil {
		cacheRequests.WithLabelValues("miss").Inc()
		return false
	}

	var env envelope
	if err := json.Unmarshal([]byte(stored), &env); err != nil {
		c.logger.Warn("discarding unreadable cache entry", slog.String("key", key), slog.Any("error", err))
		c.deleteStored(key)
		cacheRequests.WithLabelValues("miss").Inc()
		return false
	}
	if env.expired(c.now()) {
		c.deleteStored(key)
		cacheRequests.WithLabelValues("miss").Inc()
		return false
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		c.deleteStored(key)
		cacheRequests.WithLabelValues("miss").Inc()
		return false
	}

	// Repopulate the hot layer for the remainder of the entry's life.
	remaining := time.Duration(env.Timestamp+env.TTLMillis-c.now().UnixMilli()) * time.Millisecond
	if remaining > 0 {
		c.mem.Set(key, []byte(env.Data), remaining)
	}
	cacheRequests.WithLabelValues("hit").Inc()
	return true
}

// Set stores value under key for ttl, overwriting any existing entry. A ttl
// of zero means DefaultTTL.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("failed to marshal cache value", slog.String("key", key), slog.Any("error", err))
		return
	}
	c.mem.Set(key, data, ttl)

	env := envelope{Data: data, Timestamp: c.now().UnixMilli(), TTLMillis: ttl.Milliseconds()}
	raw, err := json.Marshal(env)
	if err != nil {
		c.logger.Warn("failed to marshal cache envelope", slog.String("key", key), slog.Any("error", err))
		return
	}
	if err := c.store.Set(storePrefix+key, string(raw)); err != nil {
		c.logger.Warn("cache write-through failed", slog.String("key", key), slog.Any("error", err))
	}
}

// Invalidate removes the entry if present; it is a no-op otherwise.
func (c *Cache) Invalidate(key string) {
	c.mem.Delete(key)
	c.deleteStored(key)
}

func (c *Cache) deleteStored(key string) {
	if err := c.store.Delete(storePrefix + key); err != nil {
		c.logger.Warn("cache invalidation failed", slog.String("key", key), slog.Any("error", err))
	}
}
