package weather

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/orchardwatch/leaf-risk-service/internal/domain"
	"github.com/orchardwatch/leaf-risk-service/internal/observability"
)

// CachedProvider wraps a ClimateProvider with an in-memory TTL-bounded LRU
// cache. Coordinates are snapped to a ~100 m grid cell so nearby lookups
// share an entry.
type CachedProvider struct {
	inner   domain.ClimateProvider
	cache   *lruCache
	ttl     time.Duration
	metrics *observability.Metrics
	clock   clockwork.Clock
}

// NewCachedProvider creates a cache decorator around a climate provider.
func NewCachedProvider(inner domain.ClimateProvider, maxEntries int, ttl time.Duration, metrics *observability.Metrics) *CachedProvider {
	return &CachedProvider{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		ttl:     ttl,
		metrics: metrics,
		clock:   clockwork.NewRealClock(),
	}
}

func (c *CachedProvider) FetchReading(ctx context.Context, lat, lon float64) (domain.RawReading, error) {
	key := fmt.Sprintf("cell:%.3f,%.3f", lat, lon)

	if e, ok := c.cache.get(key); ok {
		if c.clock.Now().Before(e.expiresAt) {
			c.metrics.WeatherCache.WithLabelValues("hit").Inc()
			return e.value, nil
		}
		c.cache.delete(key)
		c.metrics.WeatherCache.WithLabelValues("expired").Inc()
	} else {
		c.metrics.WeatherCache.WithLabelValues("miss").Inc()
	}

	raw, err := c.inner.FetchReading(ctx, lat, lon)
	if err != nil {
		return raw, err
	}

	c.cache.put(key, cached{value: raw, expiresAt: c.clock.Now().Add(c.ttl)})
	return raw, nil
}

type cached struct {
	value     domain.RawReading
	expiresAt time.Time
}

// lruCache is a simple thread-safe LRU cache for station readings.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value cached
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (cached, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return cached{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value cached) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		delete(c.entries, key)
		c.remove(e)
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
