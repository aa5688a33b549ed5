// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metercacher

import (
	"errors"

	"github.com/luxfi/metric"
)

const (
	resultLabel = "result"
	hitResult   = "hit"
	missResult  = "miss"
)

var (
	resultLabels = []string{resultLabel}
	hitLabels    = metric.Labels{
		resultLabel: hitResult,
	}
	missLabels = metric.Labels{
		resultLabel: missResult,
	}
)

type metrics struct {
	getCount metric.CounterVec
	getTime  metric.GaugeVec

	putCount metric.Counter
	putTime  metric.Gauge

	len           metric.Gauge
	portionFilled metric.Gauge
}

// newMetrics builds the cache metrics and registers them with reg. A nil
// registry leaves them unregistered.
func newMetrics(
	namespace string,
	reg metric.Registry,
) (*metrics, error) {
	m := &metrics{
		getCount: metric.NewCounterVec(
			metric.CounterOpts{
				Namespace: namespace,
				Name:      "get_count",
				Help:      "number of get calls",
			},
			resultLabels,
		),
		getTime: metric.NewGaugeVec(
			metric.GaugeOpts{
				Namespace: namespace,
				Name:      "get_time",
				Help:      "time spent (ns) in get calls",
			},
			resultLabels,
		),
		putCount: metric.NewCounter(metric.CounterOpts{
			Namespace: namespace,
			Name:      "put_count",
			Help:      "number of put calls",
		}),
		putTime: metric.NewGauge(metric.GaugeOpts{
			Namespace: namespace,
			Name:      "put_time",
			Help:      "time spent (ns) in put calls",
		}),
		len: metric.NewGauge(metric.GaugeOpts{
			Namespace: namespace,
			Name:      "len",
			Help:      "number of entries",
		}),
		portionFilled: metric.NewGauge(metric.GaugeOpts{
			Namespace: namespace,
			Name:      "portion_filled",
			Help:      "fraction of cache filled",
		}),
	}
	if reg == nil {
		return m, nil
	}
	return m, errors.Join(
		reg.Register(metric.AsCollector(m.getCount)),
		reg.Register(metric.AsCollector(m.getTime)),
		reg.Register(metric.AsCollector(m.putCount)),
		reg.Register(metric.AsCollector(m.putTime)),
		reg.Register(metric.AsCollector(m.len)),
		reg.Register(metric.AsCollector(m.portionFilled)),
	)
}
