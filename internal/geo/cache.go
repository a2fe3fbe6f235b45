package geo

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrijs2005/carpool/internal/logging"
	"github.com/dmitrijs2005/carpool/internal/models"
)

type CacheConfig struct {
	TTL     time.Duration
	MaxSize int
}

// CacheStats are simple counters for cache behavior.
type CacheStats struct {
	Hits      int64         `json:"hits"`
	Misses    int64         `json:"misses"`
	Sets      int64         `json:"sets"`
	Evictions int64         `json:"evictions"`
	Size      int           `json:"size"`
	TTL       time.Duration `json:"ttl"`
}

type cachedCoordinate struct {
	coord    models.Coordinate
	cachedAt time.Time
}

// CachedResolver memoizes successful resolutions of the wrapped Resolver.
// Unresolved addresses are not cached, since a network failure and a
// genuine no-match look the same from here. Concurrent lookups of the same
// address share one upstream call.
type CachedResolver struct {
	next   Resolver
	logger logging.Logger
	group  singleflight.Group

	mu      sync.RWMutex
	cache   map[string]cachedCoordinate
	ttl     time.Duration
	maxSize int
	now     func() time.Time

	hits      int64
	misses    int64
	sets      int64
	evictions int64
}

func NewCachedResolver(next Resolver, c CacheConfig, logger logging.Logger) *CachedResolver {
	if c.TTL == 0 {
		c.TTL = 24 * time.Hour
	}
	if c.MaxSize == 0 {
		c.MaxSize = 1000
	}
	return &CachedResolver{
		next:    next,
		logger:  logger,
		cache:   make(map[string]cachedCoordinate),
		ttl:     c.TTL,
		maxSize: c.MaxSize,
		now:     time.Now,
	}
}

func cacheKey(address string) string {
	return strings.TrimSpace(address)
}

func (c *CachedResolver) Resolve(ctx context.Context, address string) (models.Coordinate, bool) {
	key := cacheKey(address)

	if coord, ok := c.get(key); ok {
		atomic.AddInt64(&c.hits, 1)
		c.logger.Debug(ctx, "geocode cache hit", "address", key)
		return coord, true
	}
	atomic.AddInt64(&c.misses, 1)

	type result struct {
		coord models.Coordinate
		ok    bool
	}
	// the shared lookup outlives any single caller; each caller stops waiting on its own ctx
	flight := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		if coord, ok := c.get(key); ok {
			return result{coord: coord, ok: true}, nil
		}
		coord, ok := c.next.Resolve(flight, address)
		if ok {
			c.set(key, coord)
		}
		return result{coord: coord, ok: ok}, nil
	})
	select {
	case res := <-ch:
		r := res.Val.(result)
		return r.coord, r.ok
	case <-ctx.Done():
		return models.Coordinate{}, false
	}
}

func (c *CachedResolver) get(key string) (models.Coordinate, bool) {
	c.mu.RLock()
	record, exists := c.cache[key]
	c.mu.RUnlock()
	if !exists {
		return models.Coordinate{}, false
	}

	if c.now().Sub(record.cachedAt) > c.ttl {
		c.mu.Lock()
		delete(c.cache, key)
		c.mu.Unlock()
		return models.Coordinate{}, false
	}
	return record.coord, true
}

func (c *CachedResolver) set(key string, coord models.Coordinate) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.cache[key]; !exists && len(c.cache) >= c.maxSize {
		for k := range c.cache {
			delete(c.cache, k)
			atomic.AddInt64(&c.evictions, 1)
			break
		}
	}

	c.cache[key] = cachedCoordinate{coord: coord, cachedAt: c.now()}
	atomic.AddInt64(&c.sets, 1)
}

// Clear drops every cached coordinate.
func (c *CachedResolver) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[string]cachedCoordinate)
}

func (c *CachedResolver) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

func (c *CachedResolver) Stats() CacheStats {
	return CacheStats{
		Hits:      atomic.LoadInt64(&c.hits),
		Misses:    atomic.LoadInt64(&c.misses),
		Sets:      atomic.LoadInt64(&c.sets),
		Evictions: atomic.LoadInt64(&c.evictions),
		Size:      c.Len(),
		TTL:       c.ttl,
	}
}
