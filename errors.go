// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package avl

import "errors"

// ErrFull is returned by Insert when the tree already holds
// its configured maximum number of entries.
var ErrFull = errors.New("avl: tree is at capacity")
