// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package lru

import (
	"iter"
	"math"
)

// MaxCapacity is the largest number of entries a single cache can address.
const MaxCapacity = math.MaxUint32 - 1

// Slots preallocated up front; larger caches grow the slab on demand.
const preallocSlots = 4096

// handle addresses a slot in the slab. Slot 0 is the list sentinel.
type handle uint32

const sentinel handle = 0

type node[K comparable, V any] struct {
	key        K
	value      V
	prev, next handle
}

// recencyList is a circular doubly-linked list whose nodes live in a slab.
// The sentinel's next is the most recently used entry (head) and its prev is
// the least recently used entry (tail). Links are slab indices rather than
// pointers, so splicing never allocates and the GC has no chains to follow.
//
// Removed slots are threaded onto a free list through next and reused before
// the slab grows, which keeps the slab at most one slot larger than the
// largest number of live entries.
type recencyList[K comparable, V any] struct {
	nodes []node[K, V]
	free  handle // 0 when the free list is empty
	size  int
}

func newRecencyList[K comparable, V any](capacity int) recencyList[K, V] {
	return recencyList[K, V]{
		nodes: make([]node[K, V], 1, min(capacity, preallocSlots)+1),
	}
}

func (l *recencyList[K, V]) len() int {
	return l.size
}

// node returns the slot for h. The pointer is only valid until the next
// pushFront, which may grow the slab.
func (l *recencyList[K, V]) node(h handle) *node[K, V] {
	return &l.nodes[h]
}

// front returns the head, or the sentinel if the list is empty.
func (l *recencyList[K, V]) front() handle {
	return l.nodes[sentinel].next
}

// back returns the tail, or the sentinel if the list is empty.
func (l *recencyList[K, V]) back() handle {
	return l.nodes[sentinel].prev
}

// pushFront stores a new entry at the head and returns its handle.
func (l *recencyList[K, V]) pushFront(key K, value V) handle {
	h := l.alloc()
	n := &l.nodes[h]
	n.key = key
	n.value = value
	l.link(h)
	l.size++
	return h
}

func (l *recencyList[K, V]) moveToFront(h handle) {
	if l.nodes[sentinel].next == h {
		return
	}
	l.unlink(h)
	l.link(h)
}

// remove unlinks h, releases its slot and returns what it held.
func (l *recencyList[K, V]) remove(h handle) (K, V) {
	l.unlink(h)

	n := &l.nodes[h]
	key, value := n.key, n.value
	*n = node[K, V]{next: l.free}
	l.free = h
	l.size--
	return key, value
}

// reset drops every entry but keeps the slab's backing array.
func (l *recencyList[K, V]) reset() {
	clear(l.nodes)
	l.nodes = l.nodes[:1]
	l.free = sentinel
	l.size = 0
}

// all yields entries from head to tail. The list must not be modified while
// iterating.
func (l *recencyList[K, V]) all() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for h := l.front(); h != sentinel; h = l.nodes[h].next {
			n := &l.nodes[h]
			if !yield(n.key, n.value) {
				return
			}
		}
	}
}

// backward yields entries from tail to head, in eviction order. The list must
// not be modified while iterating.
func (l *recencyList[K, V]) backward() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for h := l.back(); h != sentinel; h = l.nodes[h].prev {
			n := &l.nodes[h]
			if !yield(n.key, n.value) {
				return
			}
		}
	}
}

func (l *recencyList[K, V]) alloc() handle {
	if h := l.free; h != sentinel {
		l.free = l.nodes[h].next
		return h
	}
	l.nodes = append(l.nodes, node[K, V]{})
	return handle(len(l.nodes) - 1)
}

// link inserts h directly after the sentinel.
func (l *recencyList[K, V]) link(h handle) {
	head := l.nodes[sentinel].next
	l.nodes[h].prev = sentinel
	l.nodes[h].next = head
	l.nodes[head].prev = h
	l.nodes[sentinel].next = h
}

func (l *recencyList[K, V]) unlink(h handle) {
	n := &l.nodes[h]
	l.nodes[n.prev].next = n.next
	l.nodes[n.next].prev = n.prev
}
