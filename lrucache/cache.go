/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package lrucache

import (
	"container/list"
	"fmt"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/acronis/go-cachekit/cache"
	"github.com/acronis/go-cachekit/optional"
)

type cacheEntry[K comparable, V any] struct {
	key       K
	value     V
	expiresAt time.Time // zero means the entry never expires
}

func (e *cacheEntry[K, V]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !e.expiresAt.After(now)
}

// LRUCache is an in-memory cache with LRU eviction, per-entry TTL,
// and an eviction callback.
//
// Eviction picks the least recently touched entry (Set and Get count as
// touches, Peek does not). Expired entries are removed lazily, only when
// Get, Peek, Resize, or iteration touches them; until then they occupy a
// capacity slot and count toward Len.
//
// Iteration and Resize operate over the key index in its insertion order,
// which diverges from recency order once any key has been re-accessed or
// overwritten. Set-triggered eviction always uses true recency order.
//
// LRUCache is not synchronized; concurrent use requires external locking.
type LRUCache[K comparable, V any] struct {
	maxEntries int
	defaultTTL time.Duration
	onEvict    cache.EvictionCallback[K, V]

	// lruList keeps entries in recency order, front is the most recently used.
	// index is an insertion-ordered map of keys to lruList elements.
	lruList *list.List
	index   *orderedmap.OrderedMap[K, *list.Element]

	metricsCollector cache.MetricsCollector

	now func() time.Time
}

var _ cache.Cache[string, int] = (*LRUCache[string, int])(nil)

// New creates a new LRUCache with the provided maximum number of entries and metrics collector.
func New[K comparable, V any](maxEntries int, metricsCollector cache.MetricsCollector) (*LRUCache[K, V], error) {
	return NewWithOpts[K, V](maxEntries, metricsCollector, cache.Options[K, V]{})
}

// NewWithOpts creates a new LRUCache with the provided maximum number of entries,
// metrics collector, and options.
// Metrics collector is used to collect statistics about cache usage.
// It can be nil, in this case, metrics will be disabled.
func NewWithOpts[K comparable, V any](
	maxEntries int, metricsCollector cache.MetricsCollector, opts cache.Options[K, V],
) (*LRUCache[K, V], error) {
	if maxEntries <= 0 {
		return nil, fmt.Errorf("%w, got %d", cache.ErrInvalidMaxEntries, maxEntries)
	}
	if opts.DefaultTTL < 0 {
		return nil, fmt.Errorf("defaultTTL must be greater or equal to 0 (no expiration)")
	}
	if metricsCollector == nil {
		metricsCollector = cache.DisabledMetrics{}
	}

	return &LRUCache[K, V]{
		maxEntries:       maxEntries,
		defaultTTL:       opts.DefaultTTL,
		onEvict:          opts.OnEvict,
		lruList:          list.New(),
		index:            orderedmap.New[K, *list.Element](),
		metricsCollector: metricsCollector,
		now:              time.Now,
	}, nil
}

// Set stores a value under the provided key using the cache's default TTL.
// If the cache is full, the least recently used entry is evicted and the
// eviction callback is invoked with it.
func (c *LRUCache[K, V]) Set(key K, value V) {
	c.SetWithTTL(key, value, c.defaultTTL)
}

// SetWithTTL stores a value under the provided key with a per-entry TTL
// overriding the cache's default. A non-positive ttl means the entry never
// expires. Overwriting an existing key replaces its value and expiry and
// marks it as the most recently used.
func (c *LRUCache[K, V]) SetWithTTL(key K, value V, ttl time.Duration) {
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = c.now().Add(ttl)
	}

	if elem, ok := c.index.Get(key); ok {
		elem.Value = &cacheEntry[K, V]{key: key, value: value, expiresAt: expiresAt}
		c.lruList.MoveToFront(elem)
		return
	}
	c.addNew(key, value, expiresAt)
}

// Get returns the value stored under the provided key and marks the entry
// as the most recently used.
func (c *LRUCache[K, V]) Get(key K) optional.Value[V] {
	return c.lookup(key, true)
}

// Peek returns the value stored under the provided key without changing its
// position in the eviction order. Like Get, it removes the entry if its TTL
// has elapsed.
func (c *LRUCache[K, V]) Peek(key K) optional.Value[V] {
	return c.lookup(key, false)
}

// Has reports whether a live (present and not expired) entry is stored under
// the provided key. It never mutates the cache: an expired entry observed by
// Has stays in place until a purging operation touches it.
func (c *LRUCache[K, V]) Has(key K) bool {
	elem, ok := c.index.Get(key)
	if !ok {
		return false
	}
	return !elem.Value.(*cacheEntry[K, V]).expired(c.now())
}

// Delete removes the entry stored under the provided key and reports whether
// it was present. The eviction callback is not invoked.
func (c *LRUCache[K, V]) Delete(key K) bool {
	elem, ok := c.index.Get(key)
	if !ok {
		return false
	}
	c.removeElem(key, elem)
	return true
}

// Clear removes all entries. The eviction callback is not invoked.
func (c *LRUCache[K, V]) Clear() {
	c.index = orderedmap.New[K, *list.Element]()
	c.lruList.Init()
	c.metricsCollector.SetAmount(0)
}

// Resize changes the cache capacity.
// Entries are scanned in key-index insertion order: expired ones are purged,
// and if more live entries remain than the new capacity allows, the excess
// oldest-by-insertion entries are evicted with the eviction callback invoked
// once per entry. The surviving entries are rebuilt in insertion order, which
// also becomes their new recency order.
func (c *LRUCache[K, V]) Resize(maxEntries int) error {
	if maxEntries <= 0 {
		return fmt.Errorf("%w, got %d", cache.ErrInvalidMaxEntries, maxEntries)
	}

	now := c.now()
	expired := 0
	var snapshot []*cacheEntry[K, V]
	for pair := c.index.Oldest(); pair != nil; pair = pair.Next() {
		entry := pair.Value.Value.(*cacheEntry[K, V])
		if entry.expired(now) {
			expired++
			continue
		}
		snapshot = append(snapshot, entry)
	}

	evicted := len(snapshot) - maxEntries
	if evicted < 0 {
		evicted = 0
	}

	c.maxEntries = maxEntries
	c.index = orderedmap.New[K, *list.Element]()
	c.lruList.Init()
	for _, entry := range snapshot[evicted:] {
		c.index.Set(entry.key, c.lruList.PushFront(entry))
	}

	c.metricsCollector.SetAmount(c.index.Len())
	if expired > 0 {
		c.metricsCollector.AddExpirations(expired)
	}
	if evicted > 0 {
		c.metricsCollector.AddEvictions(evicted)
	}
	if c.onEvict != nil {
		for _, entry := range snapshot[:evicted] {
			c.onEvict(entry.key, entry.value)
		}
	}
	return nil
}

// Len returns the number of stored entries, expired-but-untouched entries included.
func (c *LRUCache[K, V]) Len() int {
	return c.index.Len()
}

// MaxEntries returns the current capacity.
func (c *LRUCache[K, V]) MaxEntries() int {
	return c.maxEntries
}

func (c *LRUCache[K, V]) lookup(key K, touch bool) optional.Value[V] {
	elem, ok := c.index.Get(key)
	if !ok {
		c.metricsCollector.IncMisses()
		return optional.Empty[V]()
	}
	entry := elem.Value.(*cacheEntry[K, V])
	if entry.expired(c.now()) {
		c.removeElem(key, elem)
		c.metricsCollector.AddExpirations(1)
		c.metricsCollector.IncMisses()
		return optional.Empty[V]()
	}
	if touch {
		c.lruList.MoveToFront(elem)
	}
	c.metricsCollector.IncHits()
	return optional.Of(entry.value)
}

func (c *LRUCache[K, V]) addNew(key K, value V, expiresAt time.Time) {
	c.index.Set(key, c.lruList.PushFront(&cacheEntry[K, V]{key: key, value: value, expiresAt: expiresAt}))
	if c.index.Len() <= c.maxEntries {
		c.metricsCollector.SetAmount(c.index.Len())
		return
	}

	evictedEntry := c.removeOldest()
	c.metricsCollector.SetAmount(c.index.Len())
	c.metricsCollector.AddEvictions(1)
	if c.onEvict != nil && evictedEntry != nil {
		c.onEvict(evictedEntry.key, evictedEntry.value)
	}
}

func (c *LRUCache[K, V]) removeOldest() *cacheEntry[K, V] {
	elem := c.lruList.Back()
	if elem == nil {
		return nil
	}
	c.lruList.Remove(elem)
	entry := elem.Value.(*cacheEntry[K, V])
	c.index.Delete(entry.key)
	return entry
}

func (c *LRUCache[K, V]) removeElem(key K, elem *list.Element) {
	c.lruList.Remove(elem)
	c.index.Delete(key)
	c.metricsCollector.SetAmount(c.index.Len())
}
