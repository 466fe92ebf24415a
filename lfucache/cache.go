/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package lfucache

import (
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
	freq      int       // always >= 1 while the entry is stored
}

func (e *cacheEntry[K, V]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !e.expiresAt.After(now)
}

// LFUCache is an in-memory cache with LFU eviction, per-entry TTL,
// and an eviction callback.
//
// Eviction picks the entry with the lowest use count (Set and Get count as
// uses, Peek does not); ties at the same count are broken in favor of the key
// that has held that count the longest. Expired entries are removed lazily,
// only when Get, Peek, Resize, or iteration touches them; until then they
// occupy a capacity slot and count toward Len.
//
// Iteration and Resize operate over the key index in its insertion order,
// not over frequency order.
//
// LFUCache is not synchronized; concurrent use requires external locking.
type LFUCache[K comparable, V any] struct {
	maxEntries int
	defaultTTL time.Duration
	onEvict    cache.EvictionCallback[K, V]

	index *orderedmap.OrderedMap[K, *cacheEntry[K, V]]

	// buckets maps a use count to the insertion-ordered set of keys sharing it.
	// minFreq is the smallest count with a non-empty bucket, 0 when the cache is empty.
	buckets map[int]*orderedmap.OrderedMap[K, struct{}]
	minFreq int

	metricsCollector cache.MetricsCollector

	now func() time.Time
}

var _ cache.Cache[string, int] = (*LFUCache[string, int])(nil)

// New creates a new LFUCache with the provided maximum number of entries and metrics collector.
func New[K comparable, V any](maxEntries int, metricsCollector cache.MetricsCollector) (*LFUCache[K, V], error) {
	return NewWithOpts[K, V](maxEntries, metricsCollector, cache.Options[K, V]{})
}

// NewWithOpts creates a new LFUCache with the provided maximum number of entries,
// metrics collector, and options.
// Metrics collector is used to collect statistics about cache usage.
// It can be nil, in this case, metrics will be disabled.
func NewWithOpts[K comparable, V any](
	maxEntries int, metricsCollector cache.MetricsCollector, opts cache.Options[K, V],
) (*LFUCache[K, V], error) {
	if maxEntries <= 0 {
		return nil, fmt.Errorf("%w, got %d", cache.ErrInvalidMaxEntries, maxEntries)
	}
	if opts.DefaultTTL < 0 {
		return nil, fmt.Errorf("defaultTTL must be greater or equal to 0 (no expiration)")
	}
	if metricsCollector == nil {
		metricsCollector = cache.DisabledMetrics{}
	}

	return &LFUCache[K, V]{
		maxEntries:       maxEntries,
		defaultTTL:       opts.DefaultTTL,
		onEvict:          opts.OnEvict,
		index:            orderedmap.New[K, *cacheEntry[K, V]](),
		buckets:          make(map[int]*orderedmap.OrderedMap[K, struct{}]),
		metricsCollector: metricsCollector,
		now:              time.Now,
	}, nil
}

// Set stores a value under the provided key using the cache's default TTL.
// If the key is new and the cache is full, the least frequently used entry is
// evicted first and the eviction callback is invoked with it.
func (c *LFUCache[K, V]) Set(key K, value V) {
	c.SetWithTTL(key, value, c.defaultTTL)
}

// SetWithTTL stores a value under the provided key with a per-entry TTL
// overriding the cache's default. A non-positive ttl means the entry never
// expires. Overwriting an existing key replaces its value and expiry and
// counts as a use of the key, bumping its frequency.
func (c *LFUCache[K, V]) SetWithTTL(key K, value V, ttl time.Duration) {
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = c.now().Add(ttl)
	}

	if entry, ok := c.index.Get(key); ok {
		entry.value = value
		entry.expiresAt = expiresAt
		c.bump(entry)
		return
	}

	if c.index.Len() >= c.maxEntries {
		c.evict()
	}
	entry := &cacheEntry[K, V]{key: key, value: value, expiresAt: expiresAt, freq: 1}
	c.bucketFor(1).Set(key, struct{}{})
	c.minFreq = 1
	c.index.Set(key, entry)
	c.metricsCollector.SetAmount(c.index.Len())
}

// Get returns the value stored under the provided key and bumps the entry's
// use count.
func (c *LFUCache[K, V]) Get(key K) optional.Value[V] {
	return c.lookup(key, true)
}

// Peek returns the value stored under the provided key without bumping its
// use count. Like Get, it removes the entry if its TTL has elapsed.
func (c *LFUCache[K, V]) Peek(key K) optional.Value[V] {
	return c.lookup(key, false)
}

// Has reports whether a live (present and not expired) entry is stored under
// the provided key. It never mutates the cache: an expired entry observed by
// Has stays in place until a purging operation touches it.
func (c *LFUCache[K, V]) Has(key K) bool {
	entry, ok := c.index.Get(key)
	if !ok {
		return false
	}
	return !entry.expired(c.now())
}

// Delete removes the entry stored under the provided key and reports whether
// it was present. The eviction callback is not invoked.
func (c *LFUCache[K, V]) Delete(key K) bool {
	entry, ok := c.index.Get(key)
	if !ok {
		return false
	}
	c.removeEntry(entry)
	return true
}

// Clear removes all entries. The eviction callback is not invoked.
func (c *LFUCache[K, V]) Clear() {
	c.index = orderedmap.New[K, *cacheEntry[K, V]]()
	c.buckets = make(map[int]*orderedmap.OrderedMap[K, struct{}])
	c.minFreq = 0
	c.metricsCollector.SetAmount(0)
}

// Resize changes the cache capacity.
// Entries are scanned in key-index insertion order: expired ones are purged,
// and if more live entries remain than the new capacity allows, the excess
// oldest-by-insertion entries are evicted with the eviction callback invoked
// once per entry. Victim selection here follows insertion order, not
// frequency order. Surviving entries keep their use counts.
func (c *LFUCache[K, V]) Resize(maxEntries int) error {
	if maxEntries <= 0 {
		return fmt.Errorf("%w, got %d", cache.ErrInvalidMaxEntries, maxEntries)
	}

	now := c.now()
	expired := 0
	var snapshot []*cacheEntry[K, V]
	for pair := c.index.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value.expired(now) {
			expired++
			continue
		}
		snapshot = append(snapshot, pair.Value)
	}

	evicted := len(snapshot) - maxEntries
	if evicted < 0 {
		evicted = 0
	}

	c.maxEntries = maxEntries
	c.index = orderedmap.New[K, *cacheEntry[K, V]]()
	c.buckets = make(map[int]*orderedmap.OrderedMap[K, struct{}])
	c.minFreq = 0
	for _, entry := range snapshot[evicted:] {
		c.index.Set(entry.key, entry)
		c.bucketFor(entry.freq).Set(entry.key, struct{}{})
		if c.minFreq == 0 || entry.freq < c.minFreq {
			c.minFreq = entry.freq
		}
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
func (c *LFUCache[K, V]) Len() int {
	return c.index.Len()
}

// MaxEntries returns the current capacity.
func (c *LFUCache[K, V]) MaxEntries() int {
	return c.maxEntries
}

func (c *LFUCache[K, V]) lookup(key K, touch bool) optional.Value[V] {
	entry, ok := c.index.Get(key)
	if !ok {
		c.metricsCollector.IncMisses()
		return optional.Empty[V]()
	}
	if entry.expired(c.now()) {
		c.removeEntry(entry)
		c.metricsCollector.AddExpirations(1)
		c.metricsCollector.IncMisses()
		return optional.Empty[V]()
	}
	if touch {
		c.bump(entry)
	}
	c.metricsCollector.IncHits()
	return optional.Of(entry.value)
}

// bucketFor returns the key set for the provided frequency, creating it if absent.
func (c *LFUCache[K, V]) bucketFor(freq int) *orderedmap.OrderedMap[K, struct{}] {
	bucket := c.buckets[freq]
	if bucket == nil {
		bucket = orderedmap.New[K, struct{}]()
		c.buckets[freq] = bucket
	}
	return bucket
}

// bump moves the entry's key from its current frequency bucket to the next
// one, advancing minFreq when the minimum bucket empties.
func (c *LFUCache[K, V]) bump(entry *cacheEntry[K, V]) {
	bucket := c.buckets[entry.freq]
	bucket.Delete(entry.key)
	if bucket.Len() == 0 {
		delete(c.buckets, entry.freq)
		if c.minFreq == entry.freq {
			c.minFreq++
		}
	}
	entry.freq++
	c.bucketFor(entry.freq).Set(entry.key, struct{}{})
}

// evict removes the longest-resident key of the minFreq bucket.
// It is called before inserting a new key, which resets minFreq to 1,
// so minFreq is not adjusted here.
func (c *LFUCache[K, V]) evict() {
	bucket := c.buckets[c.minFreq]
	if bucket == nil {
		return
	}
	victim := bucket.Oldest()
	bucket.Delete(victim.Key)
	if bucket.Len() == 0 {
		delete(c.buckets, c.minFreq)
	}
	entry, _ := c.index.Get(victim.Key)
	c.index.Delete(victim.Key)
	c.metricsCollector.SetAmount(c.index.Len())
	c.metricsCollector.AddEvictions(1)
	if c.onEvict != nil && entry != nil {
		c.onEvict(entry.key, entry.value)
	}
}

func (c *LFUCache[K, V]) removeEntry(entry *cacheEntry[K, V]) {
	bucket := c.buckets[entry.freq]
	bucket.Delete(entry.key)
	if bucket.Len() == 0 {
		delete(c.buckets, entry.freq)
		if c.minFreq == entry.freq {
			c.advanceMinFreq()
		}
	}
	c.index.Delete(entry.key)
	c.metricsCollector.SetAmount(c.index.Len())
}

// advanceMinFreq re-scans upward for the next non-empty bucket after the
// minimum bucket emptied. All remaining entries have a higher count, so the
// scan is bounded by the largest count in use.
func (c *LFUCache[K, V]) advanceMinFreq() {
	if c.index.Len() == 0 {
		c.minFreq = 0
		return
	}
	for c.buckets[c.minFreq] == nil {
		c.minFreq++
	}
}
