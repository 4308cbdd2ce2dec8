// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package block

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Register registers collectors for p's occupancy and counters with reg,
// labeled with pool=name.
//
// The collectors read p without synchronization. Gather only from the
// goroutine that owns p, or while p is otherwise idle.
func (p *Pool[T]) Register(reg prometheus.Registerer, name string) error {
	labels := prometheus.Labels{"pool": name}
	cs := []prometheus.Collector{
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name:        "block_pool_used_blocks",
			Help:        "Number of blocks currently allocated",
			ConstLabels: labels,
		}, func() float64 { return float64(p.Used()) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name:        "block_pool_capacity_blocks",
			Help:        "Total number of blocks in the pool",
			ConstLabels: labels,
		}, func() float64 { return float64(p.Cap()) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name:        "block_pool_high_water_blocks",
			Help:        "Largest number of blocks allocated at once",
			ConstLabels: labels,
		}, func() float64 { return float64(p.stats.HighWater) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name:        "block_pool_allocations_total",
			Help:        "Number of successful block allocations",
			ConstLabels: labels,
		}, func() float64 { return float64(p.stats.Allocs) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name:        "block_pool_exhausted_total",
			Help:        "Number of allocations refused because the pool was full",
			ConstLabels: labels,
		}, func() float64 { return float64(p.stats.Exhausted) }),
	}
	for _, c := range cs {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
