package lang

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/zeebo/xxh3"

	"github.com/ardnew/stringed/log"
)

// DefaultCacheLimit is the number of distinct sources the default cache holds
// before it starts over.
const DefaultCacheLimit = 4096

// Cache memoizes [Parse] by source text. Programs that build code strings and
// exec them in a loop tend to parse the same few sources over and over.
//
// Parsed trees are never modified after parsing, so one tree may be shared by
// any number of machines. Failed parses are cached as well.
//
// A Cache is safe for concurrent use.
type Cache struct {
	entries sync.Map // uint64 -> *cacheEntry
	size    atomic.Int64
	limit   int64
}

type cacheEntry struct {
	node Node
	err  error
	src  string
	once sync.Once
}

// NewCache returns an empty cache holding at most limit sources. When full,
// it is emptied before the next source is added. A limit of zero or less
// means unbounded.
func NewCache(limit int) *Cache {
	return &Cache{limit: int64(limit)}
}

var defaultCache = NewCache(DefaultCacheLimit)

// DefaultCache returns the cache shared by machines started without
// [WithCache].
func DefaultCache() *Cache { return defaultCache }

// ClearCache empties the default cache.
func ClearCache() { defaultCache.Clear() }

// Len returns the number of cached sources.
func (c *Cache) Len() int { return int(c.size.Load()) }

// Clear removes every entry.
func (c *Cache) Clear() {
	c.entries.Range(func(key, _ any) bool {
		if _, ok := c.entries.LoadAndDelete(key); ok {
			c.size.Add(-1)
		}

		return true
	})
}

// Parse returns the tree for src, parsing it only the first time it is seen.
func (c *Cache) Parse(src string, logger log.Logger) (Node, error) {
	key := xxh3.HashString(src)

	if v, ok := c.entries.Load(key); ok {
		e := v.(*cacheEntry)
		if e.src != src {
			logger.Debug("parse cache collision", slog.Uint64("hash", key))

			return Parse(src)
		}

		e.once.Do(func() { e.node, e.err = Parse(src) })
		logger.Trace("parse cache hit", slog.Uint64("hash", key))

		return e.node, e.err
	}

	if c.limit > 0 && c.size.Load() >= c.limit {
		logger.Debug("parse cache full", slog.Int64("limit", c.limit))
		c.Clear()
	}

	v, loaded := c.entries.LoadOrStore(key, &cacheEntry{src: src})
	if !loaded {
		c.size.Add(1)
	}

	e := v.(*cacheEntry)
	if e.src != src {
		return Parse(src)
	}

	e.once.Do(func() {
		logger.Trace("parse cache miss",
			slog.Uint64("hash", key),
			slog.Int("bytes", len(src)),
		)

		e.node, e.err = Parse(src)
	})

	return e.node, e.err
}
