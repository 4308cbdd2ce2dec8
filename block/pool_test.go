// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package block

import (
	"math/rand/v2"
	"testing"
	"unsafe"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	a, b int64
	next Ref
}

func TestAllocateUntilExhausted(t *testing.T) {
	const n = 8
	p := NewPool[item](n)
	assert.Equal(t, n, p.Cap())
	assert.Equal(t, 0, p.Used())

	seen := map[Ref]bool{}
	for i := range n {
		r, err := p.Allocate()
		require.NoError(t, err)
		require.NotEqual(t, Nil, r)
		require.False(t, seen[r], "ref %d handed out twice", r)
		seen[r] = true
		assert.Equal(t, i+1, p.Used())
	}

	r, err := p.Allocate()
	assert.ErrorIs(t, err, ErrExhausted)
	assert.Equal(t, Nil, r)
	assert.Equal(t, n, p.Used())

	st := p.Stats()
	assert.Equal(t, uint64(n), st.Allocs)
	assert.Equal(t, uint64(1), st.Exhausted)
	assert.Equal(t, n, st.HighWater)
}

func TestFreeReusesAndZeroes(t *testing.T) {
	p := NewPool[item](2)
	r1, err := p.Allocate()
	require.NoError(t, err)
	x := p.Get(r1)
	x.a, x.b, x.next = 1, 2, 7
	_, err = p.Allocate()
	require.NoError(t, err)

	p.Free(r1)
	assert.Equal(t, 1, p.Used())

	r3, err := p.Allocate()
	require.NoError(t, err)
	assert.Equal(t, r1, r3, "free list should hand back the last freed block")
	assert.Equal(t, item{}, *p.Get(r3))
}

func TestFreeMisuse(t *testing.T) {
	p := NewPool[item](2)
	r, err := p.Allocate()
	require.NoError(t, err)
	p.Free(r)

	assert.Panics(t, func() { p.Free(r) }, "double free")
	assert.Panics(t, func() { p.Free(Nil) }, "free Nil")
	assert.Panics(t, func() { p.Free(3) }, "free out of range")
	assert.Panics(t, func() { p.Get(r) }, "get freed block")
}

func TestEmptyPool(t *testing.T) {
	p := NewPool[item](0)
	_, err := p.Allocate()
	assert.ErrorIs(t, err, ErrExhausted)
	assert.Panics(t, func() { NewPool[item](-1) })
}

func TestRandomChurn(t *testing.T) {
	const n = 64
	p := NewPool[item](n)
	live := map[Ref]int64{}
	for i := range 10_000 {
		if rand.IntN(2) == 0 && len(live) < n {
			r, err := p.Allocate()
			require.NoError(t, err)
			_, dup := live[r]
			require.False(t, dup)
			p.Get(r).a = int64(i)
			live[r] = int64(i)
		} else {
			for r, v := range live {
				require.Equal(t, v, p.Get(r).a)
				p.Free(r)
				delete(live, r)
				break
			}
		}
		require.Equal(t, len(live), p.Used())
	}
}

func TestBlockSize(t *testing.T) {
	assert.Equal(t, unsafe.Sizeof(item{}), NewPool[item](1).BlockSize())
}

func TestRegister(t *testing.T) {
	p := NewPool[item](4)
	reg := prometheus.NewRegistry()
	require.NoError(t, p.Register(reg, "test"))
	assert.Error(t, p.Register(reg, "test"), "duplicate registration")

	for range 4 {
		_, err := p.Allocate()
		require.NoError(t, err)
	}
	_, err := p.Allocate()
	require.ErrorIs(t, err, ErrExhausted)
	p.Free(2)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	got := map[string]float64{}
	for _, mf := range mfs {
		require.Len(t, mf.GetMetric(), 1)
		m := mf.GetMetric()[0]
		require.Equal(t, "pool", m.GetLabel()[0].GetName())
		require.Equal(t, "test", m.GetLabel()[0].GetValue())
		got[mf.GetName()] = value(mf.GetType(), m)
	}
	assert.Equal(t, map[string]float64{
		"block_pool_used_blocks":       3,
		"block_pool_capacity_blocks":   4,
		"block_pool_high_water_blocks": 4,
		"block_pool_allocations_total": 4,
		"block_pool_exhausted_total":   1,
	}, got)
}

func value(typ dto.MetricType, m *dto.Metric) float64 {
	if typ == dto.MetricType_COUNTER {
		return m.GetCounter().GetValue()
	}
	return m.GetGauge().GetValue()
}
