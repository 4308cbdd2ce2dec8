// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package block provides fixed-size block sources: arenas that hand out
// equally sized blocks from storage reserved up front, so that clients never
// touch the general allocator once the source has been built.
package block

import (
	"errors"
	"fmt"
	"math"
	"unsafe"
)

// A Ref identifies a block within a Source.
// The zero Ref, [Nil], refers to no block.
type Ref int32

// Nil is the Ref of no block.
const Nil Ref = 0

// ErrExhausted is returned by Allocate when every block is in use.
var ErrExhausted = errors.New("block: source exhausted")

// A Source supplies fixed-size blocks of type T.
//
// Sources do no locking. A Source shared between several clients
// must be serialized by the callers.
type Source[T any] interface {
	// Allocate returns a zeroed block, or ErrExhausted.
	Allocate() (Ref, error)

	// Free returns a block to the source. The Ref must not be used afterwards.
	Free(Ref)

	// Get returns the storage for an allocated block.
	// The pointer remains valid until the block is freed.
	Get(Ref) *T

	// Used returns the number of allocated blocks.
	Used() int
}

// Stats holds counters maintained by a Pool.
type Stats struct {
	Allocs    uint64 // successful Allocate calls
	Frees     uint64 // Free calls
	Exhausted uint64 // Allocate calls that found no free block
	HighWater int    // largest number of blocks in use at once
}

// inUse marks an allocated slot in Pool.links.
const inUse Ref = -1

// A Pool is a Source backed by a fixed array of blocks.
// Free blocks are kept on a singly linked list threaded through links,
// so allocation and release are O(1) and never allocate.
type Pool[T any] struct {
	slots []T
	links []Ref // for a free slot, the next free Ref; inUse otherwise
	free  Ref   // head of the free list
	used  int
	stats Stats
}

// NewPool returns a Pool holding n blocks.
func NewPool[T any](n int) *Pool[T] {
	if n < 0 || n >= math.MaxInt32 {
		panic(fmt.Sprintf("block: bad pool size %d", n))
	}
	p := &Pool[T]{
		slots: make([]T, n),
		links: make([]Ref, n),
	}
	for i := range p.links {
		// Slot i has Ref i+1; its successor on the free list is i+2.
		p.links[i] = Ref(i + 2)
	}
	if n > 0 {
		p.links[n-1] = Nil
		p.free = 1
	}
	return p
}

// Allocate implements Source.
func (p *Pool[T]) Allocate() (Ref, error) {
	r := p.free
	if r == Nil {
		p.stats.Exhausted++
		return Nil, ErrExhausted
	}
	p.free = p.links[r-1]
	p.links[r-1] = inUse
	p.used++
	p.stats.Allocs++
	p.stats.HighWater = max(p.stats.HighWater, p.used)
	return r, nil
}

// Free implements Source.
// It panics if r is Nil, out of range, or not allocated.
func (p *Pool[T]) Free(r Ref) {
	p.check(r)
	var zero T
	p.slots[r-1] = zero
	p.links[r-1] = p.free
	p.free = r
	p.used--
	p.stats.Frees++
}

// Get implements Source.
func (p *Pool[T]) Get(r Ref) *T {
	p.check(r)
	return &p.slots[r-1]
}

func (p *Pool[T]) check(r Ref) {
	if r <= Nil || int(r) > len(p.slots) {
		panic(fmt.Sprintf("block: ref %d out of range [1, %d]", r, len(p.slots)))
	}
	if p.links[r-1] != inUse {
		panic(fmt.Sprintf("block: ref %d is not allocated", r))
	}
}

// Used implements Source.
func (p *Pool[T]) Used() int { return p.used }

// Cap returns the total number of blocks in p.
func (p *Pool[T]) Cap() int { return len(p.slots) }

// BlockSize returns the size in bytes of one block.
func (p *Pool[T]) BlockSize() uintptr {
	var zero T
	return unsafe.Sizeof(zero)
}

// Stats returns a snapshot of p's counters.
func (p *Pool[T]) Stats() Stats { return p.stats }
