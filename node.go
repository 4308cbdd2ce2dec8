// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package avl

import "github.com/jba/avl/block"

// A Node is the fixed-size block a Tree keeps in its [block.Source].
// Its fields are private to the tree; callers only name the type
// to construct a source, as in block.NewPool[avl.Node[E]](n).
//
// Every entry in a tree occupies exactly one Node.
// The first entry of a key owns the tree links; later entries with an
// equal key are chained behind it in arrival order. Together they form
// the key's group, and the entry in the tree node is always the group's front.
type Node[E any] struct {
	entry E
	next  block.Ref // next entry of the group
	tail  block.Ref // last entry of the group; Nil if the group has one entry

	// The fields below are meaningful only for the first block of a group.
	left   block.Ref
	right  block.Ref
	parent block.Ref
	height int8 // a leaf has height 1
}

func (t *Tree[E]) node(r block.Ref) *Node[E] {
	return t.src.Get(r)
}

// height returns the height of the subtree rooted at r; 0 for Nil.
func (t *Tree[E]) height(r block.Ref) int8 {
	if r == block.Nil {
		return 0
	}
	return t.node(r).height
}

// balance returns height(left) - height(right) at r.
func (t *Tree[E]) balance(r block.Ref) int {
	x := t.node(r)
	return int(t.height(x.left)) - int(t.height(x.right))
}

// fixHeight recomputes r's height from its children.
func (t *Tree[E]) fixHeight(r block.Ref) {
	x := t.node(r)
	x.height = 1 + max(t.height(x.left), t.height(x.right))
}

func (t *Tree[E]) minNode(r block.Ref) block.Ref {
	for l := t.node(r).left; l != block.Nil; l = t.node(r).left {
		r = l
	}
	return r
}

func (t *Tree[E]) maxNode(r block.Ref) block.Ref {
	for rt := t.node(r).right; rt != block.Nil; rt = t.node(r).right {
		r = rt
	}
	return r
}

// appendEntry adds the block d, already holding an entry,
// to the tail of the group headed by x.
func (t *Tree[E]) appendEntry(x, d block.Ref) {
	h := t.node(x)
	if h.tail == block.Nil {
		h.next = d
	} else {
		t.node(h.tail).next = d
	}
	h.tail = d
}

// groupContains reports whether the group headed by x holds e.
func (t *Tree[E]) groupContains(x block.Ref, e E) bool {
	for r := x; r != block.Nil; {
		n := t.node(r)
		if n.entry == e {
			return true
		}
		r = n.next
	}
	return false
}

// removeEntry removes e, compared by identity, from the group headed by x.
// It reports whether e was present, and whether it was the group's only entry.
// In that last case nothing is changed: the caller must remove x from the tree.
//
// Removing the front moves the second entry into x, so x keeps its place
// in the tree and the rest of the group keeps its order.
func (t *Tree[E]) removeEntry(x block.Ref, e E) (found, last bool) {
	h := t.node(x)
	if h.entry == e {
		if h.next == block.Nil {
			return true, true
		}
		second := h.next
		s := t.node(second)
		h.entry, h.next = s.entry, s.next
		if h.tail == second {
			h.tail = block.Nil
		}
		t.src.Free(second)
		return true, false
	}
	prev := x
	for r := h.next; r != block.Nil; {
		n := t.node(r)
		if n.entry != e {
			prev, r = r, n.next
			continue
		}
		t.node(prev).next = n.next
		if h.tail == r {
			if prev == x {
				h.tail = block.Nil
			} else {
				h.tail = prev
			}
		}
		t.src.Free(r)
		return true, false
	}
	return false, false
}

// freeGroup returns every block of the group headed by x to the source.
func (t *Tree[E]) freeGroup(x block.Ref) {
	for r := x; r != block.Nil; {
		next := t.node(r).next
		t.src.Free(r)
		r = next
	}
}
