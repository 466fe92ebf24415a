/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package lfucache

import (
	"fmt"
	"log"

	"github.com/acronis/go-cachekit/cache"
)

func Example() {
	// Make LFU cache for storing maximum 3 entries.
	lfu, err := NewWithOpts[string, string](3, nil, cache.Options[string, string]{
		OnEvict: func(key, value string) {
			fmt.Printf("evicted %s\n", key)
		},
	})
	if err != nil {
		log.Fatal(err)
	}

	lfu.Set("a", "alpha")
	lfu.Set("b", "bravo")
	lfu.Set("c", "charlie")

	// "a" and "b" are used again, "c" stays at frequency 1.
	lfu.Get("a")
	lfu.Get("b")

	// The cache is full, so storing a fourth key evicts the least
	// frequently used one.
	lfu.Set("d", "delta")

	fmt.Println(lfu.Get("a").MustGet())
	fmt.Println(lfu.Get("d").OrElse("?"))

	// Output:
	// evicted c
	// alpha
	// delta
}
