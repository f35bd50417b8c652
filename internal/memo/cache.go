package memo

import (
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"imfdata/internal/logging"
)

const defaultCapacity = 8

// Cache memoizes expensive feed artifacts keyed by request shape. Lookups
// are safe for concurrent use; repeat requests for the same key return the
// identical stored value.
type Cache[V any] struct {
	logger  *slog.Logger
	group   singleflight.Group
	entries *lru.Cache[string, V]
}

// New creates a cache bounded to capacity entries, evicting the least
// recently used entry once full. A capacity below one falls back to the
// default. The component name tags the cache's log lines.
func New[V any](component string, capacity int, logger *slog.Logger) *Cache[V] {
	if logger == nil {
		logger = logging.NewNop()
	}
	if capacity < 1 {
		capacity = defaultCapacity
	}
	entries, _ := lru.New[string, V](capacity)
	return &Cache[V]{
		logger:  logging.NewComponentLogger(logger, component),
		entries: entries,
	}
}

// Do returns the value cached under key, building and storing it on a miss.
// Concurrent callers for the same key share one in-flight build. A build
// error is returned to every waiter and nothing is stored.
func (c *Cache[V]) Do(key string, build func() (V, error)) (V, error) {
	if value, ok := c.entries.Get(key); ok {
		c.logger.Debug("cache hit", logging.String("key", key))
		return value, nil
	}

	result, err, _ := c.group.Do(key, func() (any, error) {
		if value, ok := c.entries.Get(key); ok {
			return value, nil
		}
		value, err := build()
		if err != nil {
			return nil, err
		}
		c.entries.Add(key, value)
		c.logger.Debug("cache store",
			logging.String("key", key),
			logging.Int("entry_count", c.entries.Len()))
		return value, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return result.(V), nil
}

// Lookup returns the value cached under key without building on a miss.
func (c *Cache[V]) Lookup(key string) (V, bool) {
	return c.entries.Get(key)
}

// Clear removes all entries.
func (c *Cache[V]) Clear() {
	c.entries.Purge()
	c.logger.Debug("cache cleared")
}

// Len returns the number of cached entries.
func (c *Cache[V]) Len() int {
	return c.entries.Len()
}
