// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package avl

import "github.com/jba/avl/block"

// retraceInsert walks from p, the parent of a new leaf, toward the root,
// updating heights. It performs at most one rotation: afterwards the rotated
// subtree has the height it had before the insertion, so no ancestor changes.
func (t *Tree[E]) retraceInsert(p block.Ref) {
	for p != block.Nil {
		x := t.node(p)
		old := x.height
		t.fixHeight(p)
		if b := t.balance(p); b > 1 || b < -1 {
			t.rebalance(p)
			return
		}
		if x.height == old {
			return
		}
		p = x.parent
	}
}

// retraceDelete walks from p, the parent of a removed node, to the root,
// updating heights and rotating at every unbalanced ancestor.
// A rotation after a deletion can shorten the subtree, so unlike
// retraceInsert it does not stop early.
func (t *Tree[E]) retraceDelete(p block.Ref) {
	for p != block.Nil {
		t.fixHeight(p)
		p = t.rebalance(p)
		p = t.node(p).parent
	}
}

// rebalance restores the balance of x, whose subtrees are balanced and
// differ in height by at most two, and returns the new root of the subtree.
func (t *Tree[E]) rebalance(x block.Ref) block.Ref {
	switch b := t.balance(x); {
	case b > 1:
		// Left-heavy. A right-leaning left child needs a left-right rotation.
		if l := t.node(x).left; t.balance(l) < 0 {
			t.rotateLeft(l)
		}
		return t.rotateRight(x)
	case b < -1:
		// Right-heavy. A left-leaning right child needs a right-left rotation.
		if r := t.node(x).right; t.balance(r) > 0 {
			t.rotateRight(r)
		}
		return t.rotateLeft(x)
	}
	return x
}

// replaceChild makes c take old's place as a child of p, or as the root if p is Nil.
// It does not set c's parent.
func (t *Tree[E]) replaceChild(p, old, c block.Ref) {
	if p == block.Nil {
		t.root = c
		return
	}
	pn := t.node(p)
	switch old {
	case pn.left:
		pn.left = c
	case pn.right:
		pn.right = c
	default:
		// unreachable
		panic("corrupt avl tree")
	}
}

// rotateLeft rotates the subtree rooted at node x,
// turning (x a (y b c)) into (y (x a b) c), and returns y.
func (t *Tree[E]) rotateLeft(x block.Ref) block.Ref {
	// p -> (x a (y b c))
	xn := t.node(x)
	p := xn.parent
	y := xn.right
	yn := t.node(y)
	b := yn.left

	yn.left = x
	xn.parent = y
	xn.right = b
	if b != block.Nil {
		t.node(b).parent = x
	}

	yn.parent = p
	t.replaceChild(p, x, y)
	t.fixHeight(x)
	t.fixHeight(y)
	return y
}

// rotateRight rotates the subtree rooted at node y,
// turning (y (x a b) c) into (x a (y b c)), and returns x.
func (t *Tree[E]) rotateRight(y block.Ref) block.Ref {
	// p -> (y (x a b) c)
	yn := t.node(y)
	p := yn.parent
	x := yn.left
	xn := t.node(x)
	b := xn.right

	xn.right = y
	yn.parent = x
	yn.left = b
	if b != block.Nil {
		t.node(b).parent = y
	}

	xn.parent = p
	t.replaceChild(p, y, x)
	t.fixHeight(y)
	t.fixHeight(x)
	return x
}
