// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package lru

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/FROST8ytes/cache"
)

// checkInvariants walks the recency list and cross-checks it against the
// key index.
func checkInvariants[K comparable, V any](t *testing.T, c *Cache[K, V]) {
	t.Helper()
	require := require.New(t)

	require.LessOrEqual(c.Len(), c.Cap())
	require.Len(c.index, c.order.len())
	require.LessOrEqual(len(c.order.nodes), c.Cap()+1)

	seen := make(map[K]struct{}, c.Len())
	prev := sentinel
	for h := c.order.front(); h != sentinel; h = c.order.nodes[h].next {
		n := c.order.nodes[h]
		require.Equal(prev, n.prev)
		require.NotContains(seen, n.key)
		seen[n.key] = struct{}{}
		require.Equal(h, c.index[n.key])
		prev = h
	}
	require.Equal(prev, c.order.back())
	require.Len(seen, c.Len())
}

func newCache[K comparable, V any](t testing.TB, capacity int) *Cache[K, V] {
	t.Helper()
	c, err := NewCache[K, V](capacity)
	require.NoError(t, err)
	return c
}

func TestNewCacheRejectsNegativeCapacity(t *testing.T) {
	require := require.New(t)

	c, err := NewCache[int, string](-1)
	require.ErrorIs(err, cache.ErrInvalidCapacity)
	require.Nil(c)

	sc, err := NewSizedCache[int, string](-5, nil)
	require.ErrorIs(err, cache.ErrInvalidCapacity)
	require.Nil(sc)
}

func TestScenarios(t *testing.T) {
	require := require.New(t)

	c := newCache[int, string](t, 2)
	c.Put(1, "a")
	c.Put(2, "b")

	val, ok := c.Get(1)
	require.True(ok)
	require.Equal("a", val)
	require.Equal([]int{1, 2}, c.Keys())
	checkInvariants(t, c)

	c.Put(3, "c")
	_, ok = c.Get(2)
	require.False(ok)
	val, ok = c.Get(1)
	require.True(ok)
	require.Equal("a", val)
	val, ok = c.Get(3)
	require.True(ok)
	require.Equal("c", val)
	checkInvariants(t, c)

	prev, replaced := c.Put(1, "z")
	require.True(replaced)
	require.Equal("a", prev)
	require.Equal(2, c.Len())
	val, ok = c.Get(1)
	require.True(ok)
	require.Equal("z", val)
	require.True(c.Contains(3))
	checkInvariants(t, c)
}

func TestZeroCapacity(t *testing.T) {
	require := require.New(t)

	evicted := 0
	c, err := NewCacheWithOnEvict[int, string](0, func(int, string) { evicted++ })
	require.NoError(err)

	prev, replaced := c.Put(5, "x")
	require.False(replaced)
	require.Empty(prev)

	_, ok := c.Get(5)
	require.False(ok)
	require.False(c.Contains(5))
	require.Zero(c.Len())
	require.Zero(c.Cap())
	require.Zero(c.PortionFilled())
	require.Zero(evicted)
	checkInvariants(t, c)
}

func TestCapacityOne(t *testing.T) {
	require := require.New(t)

	c := newCache[int, string](t, 1)
	c.Put(1, "a")
	c.Put(2, "b")

	_, ok := c.Get(1)
	require.False(ok)
	val, ok := c.Get(2)
	require.True(ok)
	require.Equal("b", val)
	checkInvariants(t, c)
}

func TestGet(t *testing.T) {
	getTests := []struct {
		name       string
		keyToAdd   string
		keyToGet   string
		expectedOk bool
	}{
		{"string_hit", "myKey", "myKey", true},
		{"string_miss", "myKey", "nonsense", false},
	}

	for _, tt := range getTests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)

			c := newCache[string, int](t, 4)
			c.Put(tt.keyToAdd, 1234)
			val, ok := c.Get(tt.keyToGet)
			require.Equal(tt.expectedOk, ok)
			if ok {
				require.Equal(1234, val)
			}
		})
	}
}

func TestUpdateDoesNotEvict(t *testing.T) {
	require := require.New(t)

	evicted := make([]int, 0)
	c, err := NewCacheWithOnEvict[int, int](3, func(k, _ int) {
		evicted = append(evicted, k)
	})
	require.NoError(err)

	for i := range 3 {
		c.Put(i, i)
	}
	for i := range 10 {
		c.Put(i%3, i)
		require.Equal(3, c.Len())
	}
	require.Empty(evicted)
	checkInvariants(t, c)
}

func TestGetMovesToHead(t *testing.T) {
	require := require.New(t)

	c := newCache[string, int](t, 3)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3)

	key, _, ok := c.Oldest()
	require.True(ok)
	require.Equal("a", key)

	c.Get("a")
	key, _, _ = c.Newest()
	require.Equal("a", key)
	key, _, _ = c.Oldest()
	require.Equal("b", key)

	c.Put("d", 4)
	require.False(c.Contains("b"))
	require.Equal([]string{"d", "a", "c"}, c.Keys())
	checkInvariants(t, c)
}

func TestMissHasNoSideEffect(t *testing.T) {
	require := require.New(t)

	c := newCache[int, int](t, 3)
	for i := range 3 {
		c.Put(i, i)
	}
	before := c.Keys()

	_, ok := c.Get(42)
	require.False(ok)
	_, ok = c.Remove(42)
	require.False(ok)
	require.False(c.Contains(42))

	require.Equal(3, c.Len())
	require.Equal(before, c.Keys())
	checkInvariants(t, c)
}

func TestPeekAndContainsKeepRecency(t *testing.T) {
	require := require.New(t)

	c := newCache[int, string](t, 2)
	c.Put(1, "a")
	c.Put(2, "b")

	val, ok := c.Peek(1)
	require.True(ok)
	require.Equal("a", val)
	require.True(c.Contains(1))

	c.Put(3, "c")
	require.False(c.Contains(1))
	require.Equal([]int{3, 2}, c.Keys())
}

func TestRemove(t *testing.T) {
	require := require.New(t)

	evicted := 0
	c, err := NewCacheWithOnEvict[string, int](4, func(string, int) { evicted++ })
	require.NoError(err)

	c.Put("myKey", 1234)
	val, ok := c.Remove("myKey")
	require.True(ok)
	require.Equal(1234, val)

	_, ok = c.Get("myKey")
	require.False(ok)
	_, ok = c.Remove("myKey")
	require.False(ok)
	require.Zero(c.Len())
	require.Zero(evicted)
	checkInvariants(t, c)
}

func TestRemoveFromMiddleAndEnds(t *testing.T) {
	require := require.New(t)

	c := newCache[int, int](t, 5)
	for i := range 5 {
		c.Put(i, i*10)
	}
	// Keys are [4 3 2 1 0].
	for _, k := range []int{2, 4, 0} {
		_, ok := c.Remove(k)
		require.True(ok)
		checkInvariants(t, c)
	}
	require.Equal([]int{3, 1}, c.Keys())

	// Freed slots are reused rather than growing the slab.
	for i := 10; i < 13; i++ {
		c.Put(i, i)
	}
	require.Len(c.order.nodes, 6)
	require.Equal([]int{12, 11, 10, 3, 1}, c.Keys())
	checkInvariants(t, c)
}

func TestEvict(t *testing.T) {
	require := require.New(t)

	evictedKeys := make([]string, 0)
	c, err := NewCacheWithOnEvict[string, int](20, func(key string, _ int) {
		evictedKeys = append(evictedKeys, key)
	})
	require.NoError(err)

	for i := range 22 {
		c.Put(fmt.Sprintf("myKey%d", i), 1234)
	}
	require.Equal([]string{"myKey0", "myKey1"}, evictedKeys)

	// move 9 and 10 to the head
	c.Get("myKey10")
	c.Get("myKey9")
	for i := 22; i < 32; i++ {
		c.Put(fmt.Sprintf("myKey%d", i), 1234)
	}
	require.Len(evictedKeys, 12)
	require.True(c.Contains("myKey9"))
	require.True(c.Contains("myKey10"))
	require.False(c.Contains("myKey11"))
	checkInvariants(t, c)
}

func TestRemoveOldest(t *testing.T) {
	require := require.New(t)

	var evicted []int
	c, err := NewCacheWithOnEvict[int, string](3, func(k int, _ string) {
		evicted = append(evicted, k)
	})
	require.NoError(err)

	_, _, ok := c.RemoveOldest()
	require.False(ok)

	c.Put(1, "a")
	c.Put(2, "b")
	key, val, ok := c.RemoveOldest()
	require.True(ok)
	require.Equal(1, key)
	require.Equal("a", val)
	require.Equal([]int{1}, evicted)
	require.Equal(1, c.Len())
	checkInvariants(t, c)
}

func TestAllStopsEarly(t *testing.T) {
	require := require.New(t)

	c := newCache[int, int](t, 4)
	for i := range 4 {
		c.Put(i, i*i)
	}

	var got []int
	for k, v := range c.All() {
		require.Equal(k*k, v)
		got = append(got, k)
		if len(got) == 2 {
			break
		}
	}
	require.Equal([]int{3, 2}, got)
}

func TestBackwardFollowsEvictionOrder(t *testing.T) {
	require := require.New(t)

	c := newCache[int, string](t, 5)
	for i, v := range []string{"foo", "bar", "fizz", "buzz", "bazz"} {
		c.Put(i+1, v)
	}
	c.Get(3)
	c.Get(2)

	var backward []string
	for _, v := range c.Backward() {
		backward = append(backward, v)
	}
	require.Equal([]string{"foo", "buzz", "bazz", "fizz", "bar"}, backward)

	var forward []string
	for _, v := range c.All() {
		forward = append(forward, v)
	}
	require.Equal([]string{"bar", "fizz", "bazz", "buzz", "foo"}, forward)

	// Draining the cache evicts in exactly the order Backward reported.
	var evicted []string
	for {
		_, v, ok := c.RemoveOldest()
		if !ok {
			break
		}
		evicted = append(evicted, v)
	}
	require.Equal(backward, evicted)

	for range c.Backward() {
		require.FailNow("empty cache yielded an entry")
	}
}

func TestBackwardStopsEarly(t *testing.T) {
	require := require.New(t)

	c := newCache[int, int](t, 4)
	for i := range 4 {
		c.Put(i, i)
	}

	var got []int
	for k := range c.Backward() {
		got = append(got, k)
		if len(got) == 2 {
			break
		}
	}
	require.Equal([]int{0, 1}, got)
}

func TestFlush(t *testing.T) {
	require := require.New(t)

	c := newCache[string, string](t, 3)
	c.Put("a", "apple")
	c.Put("b", "banana")
	c.Put("c", "cherry")
	require.Equal(3, c.Len())
	require.Equal(1.0, c.PortionFilled())

	c.Flush()
	require.Zero(c.Len())
	require.Zero(c.PortionFilled())
	require.Equal(3, c.Cap())
	_, _, ok := c.Oldest()
	require.False(ok)
	checkInvariants(t, c)

	c.Put("d", "date")
	val, ok := c.Get("d")
	require.True(ok)
	require.Equal("date", val)
	checkInvariants(t, c)
}

func TestIndependentInstances(t *testing.T) {
	require := require.New(t)

	a := newCache[int, int](t, 1)
	b := newCache[int, int](t, 1)
	a.Put(1, 1)
	b.Put(2, 2)

	require.False(a.Contains(2))
	require.False(b.Contains(1))
}

func BenchmarkGetAllHits(b *testing.B) {
	b.ReportAllocs()
	type complexStruct struct {
		a, b, c, d, e, f int64
		k, l, m, n, o, p float64
	}
	c := newCache[int, complexStruct](b, 32)
	for z := range 32 {
		c.Put(z, complexStruct{a: int64(z)})
	}

	b.ResetTimer()
	for z := 0; z < b.N; z++ {
		// take the lower 5 bits as mod 32 so we always hit
		c.Get(z & 31)
	}
}

func BenchmarkPutEvicting(b *testing.B) {
	b.ReportAllocs()
	c := newCache[int, int](b, 1024)

	b.ResetTimer()
	for z := 0; z < b.N; z++ {
		c.Put(z, z)
	}
}
