/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

// Package lrucache provides an in-memory cache with LRU eviction policy,
// lazy per-entry expiration, an eviction callback, and Prometheus metrics.
// The cache is not synchronized; see the package cache doc for the
// concurrency contract.
package lrucache
