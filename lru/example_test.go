// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package lru_test

import (
	"fmt"

	"github.com/FROST8ytes/cache/lru"
)

func ExampleCache() {
	c, err := lru.NewCacheWithOnEvict[int, string](2, func(k int, v string) {
		fmt.Printf("evicted %d=%s\n", k, v)
	})
	if err != nil {
		panic(err)
	}

	c.Put(1, "a")
	c.Put(2, "b")
	c.Get(1)
	c.Put(3, "c")

	_, ok := c.Get(2)
	fmt.Println("2 cached:", ok)

	prev, _ := c.Put(1, "z")
	fmt.Println("previous value of 1:", prev)
	fmt.Println("keys:", c.Keys(), "len:", c.Len())

	// Output:
	// evicted 2=b
	// 2 cached: false
	// previous value of 1: a
	// keys: [1 3] len: 2
}
