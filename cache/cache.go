/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package cache

import (
	"errors"
	"iter"
	"time"

	"github.com/acronis/go-cachekit/optional"
)

// ErrInvalidMaxEntries is returned by the engines' constructors and Resize
// methods when the requested capacity is not a positive number.
var ErrInvalidMaxEntries = errors.New("maxEntries must be greater than 0")

// EvictionCallback is called synchronously with the key and value of an entry
// that was evicted to keep the cache within its capacity. It fires for
// capacity-triggered evictions (overflowing Set, shrinking Resize) only;
// explicit Delete and Clear calls and lazy expiry purges do not report.
// The cache's own bookkeeping is already consistent when the callback runs,
// so a panicking callback leaves the cache usable.
type EvictionCallback[K comparable, V any] func(key K, value V)

// Options represents construction options common to all eviction policies.
type Options[K comparable, V any] struct {
	// DefaultTTL is the time-to-live applied by Set. Zero means entries
	// never expire. Expired entries are not removed immediately, but only
	// when they are touched by Get, Peek, Resize, or iteration; until then
	// they still occupy a capacity slot and count toward Len.
	DefaultTTL time.Duration

	// OnEvict, if non-nil, is invoked for every capacity-triggered eviction.
	OnEvict EvictionCallback[K, V]
}

// Cache is the uniform operation surface implemented by every eviction-policy
// engine in this module.
type Cache[K comparable, V any] interface {
	// Set stores a value under the provided key using the default TTL.
	Set(key K, value V)

	// SetWithTTL stores a value under the provided key with a per-entry TTL
	// overriding the default. A non-positive ttl means the entry never expires.
	SetWithTTL(key K, value V, ttl time.Duration)

	// Get returns the value stored under the provided key and records a use
	// of the entry for eviction-ordering purposes.
	Get(key K) optional.Value[V]

	// Peek returns the value stored under the provided key without
	// influencing future eviction order.
	Peek(key K) optional.Value[V]

	// Has reports whether a live (present and not expired) entry is stored
	// under the provided key. It never mutates the cache.
	Has(key K) bool

	// Delete removes the entry stored under the provided key and reports
	// whether it was present.
	Delete(key K) bool

	// Clear removes all entries.
	Clear()

	// Resize changes the cache capacity, evicting excess entries if needed.
	Resize(maxEntries int) error

	// Len returns the number of stored entries, expired-but-untouched
	// entries included.
	Len() int

	// MaxEntries returns the current capacity.
	MaxEntries() int

	// Keys returns a lazy sequence over the keys of live entries.
	Keys() iter.Seq[K]

	// Values returns a lazy sequence over the values of live entries.
	Values() iter.Seq[V]

	// All returns a lazy sequence over the key-value pairs of live entries.
	All() iter.Seq2[K, V]

	// Backward returns the same sequence as All in reverse order.
	Backward() iter.Seq2[K, V]

	// ForEach calls fn for every live entry in the same order as All.
	ForEach(fn func(key K, value V))
}
