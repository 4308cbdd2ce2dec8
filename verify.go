// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package avl

import (
	"fmt"
	"strings"

	"github.com/jba/avl/block"
	"github.com/xlab/treeprint"
)

// Verify checks the structure of t and returns an error describing the
// first violation found: keys out of order, a wrong parent link or
// stored height, a node out of balance, a damaged group, an entry count
// that disagrees with Len, or a stale Max.
// It is meant for tests and diagnostics; it runs in time proportional to Len.
func (t *Tree[E]) Verify() error {
	if t.root != block.Nil && t.node(t.root).parent != block.Nil {
		return fmt.Errorf("root %d has parent %d", t.root, t.node(t.root).parent)
	}
	count, _, err := t.verify(t.root, block.Nil, block.Nil, 0)
	if err != nil {
		return err
	}
	if count != t.size {
		return fmt.Errorf("tree holds %d entries, Len is %d", count, t.size)
	}
	want := block.Nil
	if t.root != block.Nil {
		want = t.maxNode(t.root)
	}
	if t.max != want {
		return fmt.Errorf("max is node %d, want rightmost node %d", t.max, want)
	}
	return nil
}

// verify checks the subtree at x, whose keys must lie strictly between
// those of the nodes lo and hi (Nil for no bound). It returns the number
// of entries and the height of the subtree.
func (t *Tree[E]) verify(x, lo, hi block.Ref, depth int) (count int, height int8, err error) {
	if x == block.Nil {
		return 0, 0, nil
	}
	if depth >= maxHeight {
		return 0, 0, fmt.Errorf("tree deeper than %d", maxHeight)
	}
	n := t.node(x)
	if lo != block.Nil && t.cmp(n.entry, t.node(lo).entry) <= 0 {
		return 0, 0, fmt.Errorf("node %d: key %v not greater than ancestor key %v", x, n.entry, t.node(lo).entry)
	}
	if hi != block.Nil && t.cmp(n.entry, t.node(hi).entry) >= 0 {
		return 0, 0, fmt.Errorf("node %d: key %v not less than ancestor key %v", x, n.entry, t.node(hi).entry)
	}
	for _, c := range []block.Ref{n.left, n.right} {
		if c != block.Nil && t.node(c).parent != x {
			return 0, 0, fmt.Errorf("node %d: child %d has parent %d", x, c, t.node(c).parent)
		}
	}
	lc, lh, err := t.verify(n.left, lo, x, depth+1)
	if err != nil {
		return 0, 0, err
	}
	rc, rh, err := t.verify(n.right, x, hi, depth+1)
	if err != nil {
		return 0, 0, err
	}
	height = 1 + max(lh, rh)
	if n.height != height {
		return 0, 0, fmt.Errorf("node %d: stored height %d, want %d", x, n.height, height)
	}
	if b := int(lh) - int(rh); b > 1 || b < -1 {
		return 0, 0, fmt.Errorf("node %d: balance factor %d", x, b)
	}
	gc, err := t.verifyGroup(x)
	if err != nil {
		return 0, 0, err
	}
	return lc + rc + gc, height, nil
}

// verifyGroup checks the group headed by x and returns its length.
func (t *Tree[E]) verifyGroup(x block.Ref) (int, error) {
	h := t.node(x)
	count := 1
	last := x
	for r := h.next; r != block.Nil; r = t.node(r).next {
		if c := t.cmp(t.node(r).entry, h.entry); c != 0 {
			return 0, fmt.Errorf("node %d: group entry %v has a different key from %v", x, t.node(r).entry, h.entry)
		}
		count++
		last = r
		if count > t.size {
			return 0, fmt.Errorf("node %d: group is longer than Len", x)
		}
	}
	switch {
	case last == x && h.tail != block.Nil:
		return 0, fmt.Errorf("node %d: single-entry group has tail %d", x, h.tail)
	case last != x && h.tail != last:
		return 0, fmt.Errorf("node %d: group tail is %d, want %d", x, h.tail, last)
	}
	return count, nil
}

// Sprint renders the shape of t as an indented tree, one line per node.
// Each line shows the node's entries, formatted with label, and its height.
// Children are prefixed with L or R.
func (t *Tree[E]) Sprint(label func(E) string) string {
	if t.root == block.Nil {
		return treeprint.NewWithRoot("(empty)").String()
	}
	tp := treeprint.NewWithRoot(t.nodeLabel(t.root, label))
	t.sprint(tp, t.root, label)
	return tp.String()
}

func (t *Tree[E]) sprint(tp treeprint.Tree, x block.Ref, label func(E) string) {
	n := t.node(x)
	for _, c := range []struct {
		side string
		ref  block.Ref
	}{{"L", n.left}, {"R", n.right}} {
		if c.ref == block.Nil {
			continue
		}
		b := tp.AddBranch(c.side + " " + t.nodeLabel(c.ref, label))
		t.sprint(b, c.ref, label)
	}
}

func (t *Tree[E]) nodeLabel(x block.Ref, label func(E) string) string {
	var parts []string
	t.group(x, func(e E) bool {
		parts = append(parts, label(e))
		return true
	})
	return fmt.Sprintf("%s (h=%d)", strings.Join(parts, " "), t.node(x).height)
}
