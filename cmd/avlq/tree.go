// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"cmp"
	"fmt"
	"log/slog"

	"github.com/jba/avl"
	"github.com/jba/avl/block"
)

// An item is the entry type the commands store: a labeled key.
type item struct {
	key   int64
	label string
}

func (it *item) String() string { return fmt.Sprintf("%s:%d", it.label, it.key) }

func compareItems(a, b *item) int { return cmp.Compare(a.key, b.key) }

func itemLabel(it *item) string { return it.String() }

type itemTree = avl.Tree[*item]

type itemPool = block.Pool[avl.Node[*item]]

// newItemTree builds a tree over a fresh pool of the given number of blocks.
// A capacity of zero or less means no limit beyond the pool.
func newItemTree(blocks, capacity int, logger *slog.Logger) (*itemTree, *itemPool, error) {
	if blocks < 0 {
		return nil, nil, fmt.Errorf("invalid block count %d", blocks)
	}
	if capacity <= 0 {
		capacity = avl.Unlimited
	}
	pool := block.NewPool[avl.Node[*item]](blocks)
	logger.Debug("pool created", "blocks", blocks, "block_size", pool.BlockSize())
	return avl.New(pool, capacity, compareItems, avl.WithLogger(logger)), pool, nil
}
