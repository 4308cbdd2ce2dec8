// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/urfave/cli/v2"
)

var cmdDump = &cli.Command{
	Name:      "dump",
	Usage:     "insert integer keys in order and print the resulting tree",
	ArgsUsage: `<key>...`,
	Action: func(cctx *cli.Context) error {
		logger, err := configLogging(cctx, os.Stderr)
		if err != nil {
			return err
		}
		args := cctx.Args().Slice()
		tree, _, err := newItemTree(len(args), 0, logger)
		if err != nil {
			return err
		}
		for i, a := range args {
			key, err := strconv.ParseInt(a, 10, 64)
			if err != nil {
				return fmt.Errorf("bad key %q: %w", a, err)
			}
			if err := tree.Insert(&item{key: key, label: fmt.Sprint(i)}); err != nil {
				return err
			}
		}
		fmt.Fprint(cctx.App.Writer, tree.Sprint(itemLabel))
		return nil
	},
}
