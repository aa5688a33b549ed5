// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package metercacher provides metered cache implementations.
package metercacher

import (
	"time"

	"github.com/luxfi/metric"

	"github.com/FROST8ytes/cache"
)

var _ cache.Cacher[struct{}, struct{}] = (*Cache[struct{}, struct{}])(nil)

// Cache wraps a Cacher with metrics. It adds no synchronization of its own;
// wrap a concurrency-safe Cacher if the metered cache is shared.
type Cache[K comparable, V any] struct {
	cache.Cacher[K, V]
	metrics *metrics
}

// New creates a new metered cache wrapper.
func New[K comparable, V any](
	namespace string,
	registry metric.Registry,
	c cache.Cacher[K, V],
) (*Cache[K, V], error) {
	metrics, err := newMetrics(namespace, registry)
	return &Cache[K, V]{
		Cacher:  c,
		metrics: metrics,
	}, err
}

func (c *Cache[K, V]) Put(key K, value V) (V, bool) {
	start := time.Now()
	prev, replaced := c.Cacher.Put(key, value)
	putDuration := time.Since(start)

	c.metrics.putCount.Inc()
	c.metrics.putTime.Add(float64(putDuration))
	c.updateFill()
	return prev, replaced
}

func (c *Cache[K, V]) Get(key K) (V, bool) {
	start := time.Now()
	value, has := c.Cacher.Get(key)
	getDuration := time.Since(start)

	labels := missLabels
	if has {
		labels = hitLabels
	}
	c.metrics.getCount.With(labels).Inc()
	c.metrics.getTime.With(labels).Add(float64(getDuration))

	return value, has
}

func (c *Cache[K, V]) Remove(key K) (V, bool) {
	value, had := c.Cacher.Remove(key)
	c.updateFill()
	return value, had
}

func (c *Cache[_, _]) Flush() {
	c.Cacher.Flush()
	c.updateFill()
}

func (c *Cache[_, _]) updateFill() {
	c.metrics.len.Set(float64(c.Cacher.Len()))
	c.metrics.portionFilled.Set(c.Cacher.PortionFilled())
}
