/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package lfucache

import "iter"

// All returns a lazy sequence over the key-value pairs of live entries in
// key-index insertion order (not frequency order). Expired entries
// encountered during traversal are removed. Each call produces a fresh
// sequence reflecting the current state.
func (c *LFUCache[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		pair := c.index.Oldest()
		for pair != nil {
			next := pair.Next()
			entry := pair.Value
			if entry.expired(c.now()) {
				c.removeEntry(entry)
				c.metricsCollector.AddExpirations(1)
				pair = next
				continue
			}
			if !yield(entry.key, entry.value) {
				return
			}
			pair = next
		}
	}
}

// Backward returns the same sequence as All in reverse insertion order.
func (c *LFUCache[K, V]) Backward() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		pair := c.index.Newest()
		for pair != nil {
			prev := pair.Prev()
			entry := pair.Value
			if entry.expired(c.now()) {
				c.removeEntry(entry)
				c.metricsCollector.AddExpirations(1)
				pair = prev
				continue
			}
			if !yield(entry.key, entry.value) {
				return
			}
			pair = prev
		}
	}
}

// Keys returns a lazy sequence over the keys of live entries in the same
// order as All.
func (c *LFUCache[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for key := range c.All() {
			if !yield(key) {
				return
			}
		}
	}
}

// Values returns a lazy sequence over the values of live entries in the same
// order as All.
func (c *LFUCache[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, value := range c.All() {
			if !yield(value) {
				return
			}
		}
	}
}

// ForEach calls fn for every live entry in the same order as All.
func (c *LFUCache[K, V]) ForEach(fn func(key K, value V)) {
	for key, value := range c.All() {
		fn(key, value)
	}
}
