/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

// Package cache defines the capability contract shared by the eviction-policy
// engines of this module (lrucache, lfucache): the Cache interface, the common
// construction options, the metrics collector, and a loadable configuration.
//
// The engines themselves are not synchronized. They assume a single logical
// caller at a time; concurrent use from multiple goroutines requires external
// synchronization.
package cache
