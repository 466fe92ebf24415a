/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

// Package lfucache provides an in-memory cache with LFU eviction policy,
// lazy per-entry expiration, an eviction callback, and Prometheus metrics.
// Eviction is O(1): a per-frequency set of keys plus a tracked minimum
// frequency, with ties at the same frequency broken by longest residency.
// The cache is not synchronized; see the package cache doc for the
// concurrency contract.
package lfucache
