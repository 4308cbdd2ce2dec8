// Copyright 2024 The Go Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package avl_test

import (
	"cmp"
	"fmt"

	"github.com/jba/avl"
	"github.com/jba/avl/block"
	"github.com/jba/avl/rng"
)

type job struct {
	priority int
	name     string
}

func byPriority(a, b *job) int { return cmp.Compare(a.priority, b.priority) }

func ExampleTree_Max() {
	pool := block.NewPool[avl.Node[*job]](16)
	t := avl.New(pool, 10, byPriority)

	low := &job{1, "flush"}
	urgent1 := &job{9, "ack"}
	urgent2 := &job{9, "retry"}
	for _, j := range []*job{low, urgent1, urgent2} {
		if err := t.Insert(j); err != nil {
			panic(err)
		}
	}

	for !t.IsEmpty() {
		j, _ := t.Max()
		fmt.Println(j.name)
		t.Remove(j)
	}

	// Output:
	// ack
	// retry
	// flush
}

func ExampleTree_WalkPostOrder() {
	t := avl.NewOrdered(block.NewPool[avl.Node[int]](3), avl.Unlimited)
	t.Insert(1)
	t.Insert(2)
	t.Insert(3)

	t.WalkPostOrder(func(k int) { fmt.Println(k) })

	// Output:
	// 1
	// 3
	// 2
}

func ExampleTree_Scan() {
	t := avl.NewOrdered(block.NewPool[avl.Node[int]](8), avl.Unlimited)
	for _, k := range []int{5, 1, 4, 2, 3} {
		t.Insert(k)
	}

	for k := range t.Scan(rng.Above(1).To(4).Backwards()) {
		fmt.Println(k)
	}

	// Output:
	// 4
	// 3
	// 2
}

func ExampleTree_Insert_exhausted() {
	t := avl.NewOrdered(block.NewPool[avl.Node[int]](1), avl.Unlimited)
	fmt.Println(t.Insert(1))
	fmt.Println(t.Insert(2))

	// Output:
	// <nil>
	// avl: allocating node: block: source exhausted
}
