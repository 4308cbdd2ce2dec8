// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package avl

import (
	"iter"

	"github.com/jba/avl/block"
	"github.com/jba/avl/rng"
)

// maxHeight bounds the height of any tree whose nodes are addressed by a block.Ref.
// An AVL tree of n nodes is less than 1.4405*log2(n+2) high; for n < 2^31 that is 45.
const maxHeight = 48

// postOrderNodes calls visit for each node of t, children before parents,
// until visit returns false. It keeps its stack in a fixed array.
// visit may free the node it is given.
func (t *Tree[E]) postOrderNodes(visit func(block.Ref) bool) {
	var stack [maxHeight]block.Ref
	sp := 0
	last := block.Nil
	x := t.root
	for x != block.Nil || sp > 0 {
		if x != block.Nil {
			stack[sp] = x
			sp++
			x = t.node(x).left
			continue
		}
		top := stack[sp-1]
		if r := t.node(top).right; r != block.Nil && r != last {
			x = r
			continue
		}
		sp--
		last = top
		if !visit(top) {
			return
		}
	}
}

// group calls yield for each entry of the group headed by x, in order.
func (t *Tree[E]) group(x block.Ref, yield func(E) bool) bool {
	for r := x; r != block.Nil; {
		n := t.node(r)
		if !yield(n.entry) {
			return false
		}
		r = n.next
	}
	return true
}

// PostOrder returns an iterator over the entries of t in post-order:
// for each node, the left subtree, then the right subtree,
// then the node's entries in insertion order.
// The behavior is undefined if t is modified during the iteration.
func (t *Tree[E]) PostOrder() iter.Seq[E] {
	return func(yield func(E) bool) {
		t.postOrderNodes(func(x block.Ref) bool {
			return t.group(x, yield)
		})
	}
}

// WalkPostOrder calls visit for every entry of t in post-order. See [Tree.PostOrder].
func (t *Tree[E]) WalkPostOrder(visit func(E)) {
	for e := range t.PostOrder() {
		visit(e)
	}
}

// All returns an iterator over the entries of t from smallest to largest key.
// Entries with equal keys are visited in insertion order.
// The behavior is undefined if t is modified during the iteration.
func (t *Tree[E]) All() iter.Seq[E] {
	return func(yield func(E) bool) {
		if t.root == block.Nil {
			return
		}
		x := t.minNode(t.root)
		for x != block.Nil && t.group(x, yield) {
			x = t.next(x)
		}
	}
}

// Backward returns an iterator over the entries of t from largest to smallest key.
// Entries with equal keys are still visited in insertion order.
// The behavior is undefined if t is modified during the iteration.
func (t *Tree[E]) Backward() iter.Seq[E] {
	return func(yield func(E) bool) {
		x := t.max
		for x != block.Nil && t.group(x, yield) {
			x = t.prev(x)
		}
	}
}

// Scan returns an iterator over the entries of t whose keys lie in r,
// in the direction of r. Entries with equal keys are visited in insertion order.
// The behavior is undefined if t is modified during the iteration.
func (t *Tree[E]) Scan(r rng.Range[E]) iter.Seq[E] {
	return func(yield func(E) bool) {
		if r.IsBackwards() {
			x := t.max
			if hi, inf, incl := r.High(); !inf {
				x = t.floor(hi, incl)
			}
			for x != block.Nil && r.AboveLow(t.cmp, t.node(x).entry) && t.group(x, yield) {
				x = t.prev(x)
			}
			return
		}
		x := block.Nil
		if lo, inf, incl := r.Low(); !inf {
			x = t.ceil(lo, incl)
		} else if t.root != block.Nil {
			x = t.minNode(t.root)
		}
		for x != block.Nil && r.BelowHigh(t.cmp, t.node(x).entry) && t.group(x, yield) {
			x = t.next(x)
		}
	}
}

// next returns the node following x in key order, or Nil.
func (t *Tree[E]) next(x block.Ref) block.Ref {
	if r := t.node(x).right; r != block.Nil {
		return t.minNode(r)
	}
	for {
		p := t.node(x).parent
		if p == block.Nil || t.node(p).left == x {
			return p
		}
		x = p
	}
}

// prev returns the node preceding x in key order, or Nil.
func (t *Tree[E]) prev(x block.Ref) block.Ref {
	if l := t.node(x).left; l != block.Nil {
		return t.maxNode(l)
	}
	for {
		p := t.node(x).parent
		if p == block.Nil || t.node(p).right == x {
			return p
		}
		x = p
	}
}

// ceil returns the node with the least key k such that k > key,
// or k >= key if incl is true. It returns Nil if there is none.
func (t *Tree[E]) ceil(key E, incl bool) block.Ref {
	best := block.Nil
	for x := t.root; x != block.Nil; {
		n := t.node(x)
		if c := t.cmp(n.entry, key); c > 0 || c == 0 && incl {
			best = x
			x = n.left
		} else {
			x = n.right
		}
	}
	return best
}

// floor returns the node with the greatest key k such that k < key,
// or k <= key if incl is true. It returns Nil if there is none.
func (t *Tree[E]) floor(key E, incl bool) block.Ref {
	best := block.Nil
	for x := t.root; x != block.Nil; {
		n := t.node(x)
		if c := t.cmp(n.entry, key); c < 0 || c == 0 && incl {
			best = x
			x = n.right
		} else {
			x = n.left
		}
	}
	return best
}
