// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package avl implements an ordered multimap as an AVL tree whose
// nodes live in a fixed-size [block.Source] rather than on the heap.
//
// Entries with equal keys share one tree node and are kept in arrival
// order, so [Tree.Max] returns the oldest entry with the greatest key.
// A Tree is not safe for concurrent use.
package avl

// The implementation is an AVL tree. See:
// https://en.wikipedia.org/wiki/AVL_tree

import (
	"cmp"
	"fmt"
	"log/slog"
	"math"

	"github.com/jba/avl/block"
)

// Unlimited is a capacity that places no limit on the number of entries
// beyond the size of the block source.
const Unlimited = math.MaxInt

// A Tree is an ordered multimap of entries of type E.
//
// Entries are ordered by a comparison function on their keys.
// Two distinct entries may compare equal; both are kept.
// Entries are told apart by ==, so pointer types make good entries:
// the tree stores, compares and returns them but never copies what they point to.
type Tree[E comparable] struct {
	src      block.Source[Node[E]]
	cmp      func(E, E) int
	root     block.Ref
	max      block.Ref // node with the greatest key; Nil if empty
	size     int       // number of entries, not nodes
	capacity int
	log      *slog.Logger
}

// An Option configures a Tree.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger that reports rejected inserts at debug level.
// By default nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New returns an empty Tree that orders entries by cmp and stores its nodes in src.
// The tree borrows src; src may be shared with other trees, and must outlive t.
// Insert fails once the tree holds capacity entries.
func New[E comparable](src block.Source[Node[E]], capacity int, cmp func(E, E) int, opts ...Option) *Tree[E] {
	if src == nil || cmp == nil {
		panic("avl: nil source or comparison function")
	}
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	return &Tree[E]{
		src:      src,
		cmp:      cmp,
		capacity: capacity,
		log:      o.logger,
	}
}

// NewOrdered returns an empty Tree of entries ordered by their natural order.
func NewOrdered[E cmp.Ordered](src block.Source[Node[E]], capacity int, opts ...Option) *Tree[E] {
	return New(src, capacity, cmp.Compare[E], opts...)
}

// find returns the node whose key equals e's, or Nil.
// In the latter case, parent is the node under which e would be attached,
// and c is the comparison of e with parent's key.
func (t *Tree[E]) find(e E) (x, parent block.Ref, c int) {
	for x = t.root; x != block.Nil; {
		n := t.node(x)
		c = t.cmp(e, n.entry)
		if c == 0 {
			return x, parent, 0
		}
		parent = x
		if c < 0 {
			x = n.left
		} else {
			x = n.right
		}
	}
	return block.Nil, parent, c
}

// Insert adds e to t, after any entries already present with an equal key.
// It fails with [ErrFull] if t holds its capacity of entries, or with the
// source's error (such as [block.ErrExhausted]) if no block is available.
// On failure t is unchanged.
func (t *Tree[E]) Insert(e E) error {
	if t.size >= t.capacity {
		t.log.Debug("insert rejected", "reason", "capacity", "size", t.size, "capacity", t.capacity)
		return ErrFull
	}
	x, parent, c := t.find(e)
	r, err := t.src.Allocate()
	if err != nil {
		t.log.Debug("insert rejected", "reason", "source", "size", t.size, "err", err)
		return fmt.Errorf("avl: allocating node: %w", err)
	}
	n := t.node(r)
	*n = Node[E]{entry: e}
	t.size++

	if x != block.Nil {
		// Existing key: the group's front, and so the max, is unchanged.
		t.appendEntry(x, r)
		return nil
	}

	n.parent = parent
	n.height = 1
	switch {
	case parent == block.Nil:
		t.root = r
	case c < 0:
		t.node(parent).left = r
	default:
		t.node(parent).right = r
	}
	t.retraceInsert(parent)
	if t.max == block.Nil || t.cmp(e, t.node(t.max).entry) > 0 {
		t.max = r
	}
	return nil
}

// Remove removes e from t, comparing entries with ==, and reports whether it was present.
// Removing an entry that is not in t does nothing.
func (t *Tree[E]) Remove(e E) bool {
	x, _, _ := t.find(e)
	if x == block.Nil {
		return false
	}
	found, last := t.removeEntry(x, e)
	if !found {
		return false
	}
	t.size--
	if last {
		t.deleteNode(x)
	}
	return true
}

// deleteNode removes the node x, whose group holds only the entry being
// removed, from the tree and frees its block.
func (t *Tree[E]) deleteNode(x block.Ref) {
	n := t.node(x)
	if n.left != block.Nil && n.right != block.Nil {
		// Move the successor's group into x, then remove the successor,
		// which has no left child.
		s := t.minNode(n.right)
		sn := t.node(s)
		n.entry, n.next, n.tail = sn.entry, sn.next, sn.tail
		x, n = s, sn
	}

	child := n.left
	if child == block.Nil {
		child = n.right
	}
	p := n.parent
	if child != block.Nil {
		t.node(child).parent = p
	}
	t.replaceChild(p, x, child)
	wasMax := t.max == x
	t.src.Free(x)

	t.retraceDelete(p)
	if wasMax {
		t.max = block.Nil
		if t.root != block.Nil {
			t.max = t.maxNode(t.root)
		}
	}
}

// Contains reports whether e, compared with ==, is in t.
func (t *Tree[E]) Contains(e E) bool {
	x, _, _ := t.find(e)
	return x != block.Nil && t.groupContains(x, e)
}

// Max returns the earliest inserted of the entries with the greatest key, and true.
// If t is empty, the second return value is false.
func (t *Tree[E]) Max() (E, bool) {
	if t.max == block.Nil {
		var z E
		return z, false
	}
	return t.node(t.max).entry, true
}

// Min returns the earliest inserted of the entries with the least key, and true.
// If t is empty, the second return value is false.
func (t *Tree[E]) Min() (E, bool) {
	if t.root == block.Nil {
		var z E
		return z, false
	}
	return t.node(t.minNode(t.root)).entry, true
}

// Len returns the number of entries in t.
func (t *Tree[E]) Len() int { return t.size }

// IsEmpty reports whether t has no entries.
func (t *Tree[E]) IsEmpty() bool { return t.size == 0 }

// Cap returns the maximum number of entries t will hold.
func (t *Tree[E]) Cap() int { return t.capacity }

// Clear removes every entry from t and returns all its blocks to the source.
func (t *Tree[E]) Clear() {
	t.postOrderNodes(func(x block.Ref) bool {
		t.freeGroup(x)
		return true
	})
	t.root = block.Nil
	t.max = block.Nil
	t.size = 0
}
