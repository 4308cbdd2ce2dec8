// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"
)

var cmdReplay = &cli.Command{
	Name:      "replay",
	Usage:     "run a script of tree operations",
	ArgsUsage: `[<file>]`,
	Description: "Reads one operation per line from the file, or stdin if none is given:\n" +
		"  insert <key> <label>   remove <label>   contains <label>\n" +
		"  max   min   len   walk   all   dump   verify\n" +
		"Blank lines and lines starting with # are ignored.",
	Flags:  treeFlags,
	Action: runReplay,
}

func runReplay(cctx *cli.Context) error {
	logger, err := configLogging(cctx, os.Stderr)
	if err != nil {
		return err
	}
	in := io.Reader(os.Stdin)
	if cctx.Args().Len() > 0 {
		f, err := os.Open(cctx.Args().First())
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	s, err := newSession(cctx.Int("blocks"), cctx.Int("capacity"), logger, cctx.App.Writer)
	if err != nil {
		return err
	}
	return s.replay(in)
}

// A session applies script lines to one tree.
type session struct {
	tree  *itemTree
	pool  *itemPool
	items map[string]*item // every item ever inserted, by label
	out   io.Writer
	log   *slog.Logger
}

func newSession(blocks, capacity int, logger *slog.Logger, out io.Writer) (*session, error) {
	tree, pool, err := newItemTree(blocks, capacity, logger)
	if err != nil {
		return nil, err
	}
	return &session{
		tree:  tree,
		pool:  pool,
		items: map[string]*item{},
		out:   out,
		log:   logger,
	}, nil
}

func (s *session) replay(r io.Reader) error {
	sc := bufio.NewScanner(r)
	lineno := 0
	for sc.Scan() {
		lineno++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := s.exec(strings.Fields(line)); err != nil {
			return fmt.Errorf("line %d: %w", lineno, err)
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	s.log.Info("replay done", "lines", lineno, "entries", s.tree.Len(), "blocks_used", s.pool.Used())
	return nil
}

func (s *session) exec(args []string) error {
	op, args := args[0], args[1:]
	want := map[string]int{"insert": 2, "remove": 1, "contains": 1}[op]
	if len(args) != want {
		return fmt.Errorf("%s: want %d arguments, got %d", op, want, len(args))
	}
	switch op {
	case "insert":
		key, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("insert: bad key: %w", err)
		}
		label := args[1]
		if _, ok := s.items[label]; ok && s.tree.Contains(s.items[label]) {
			return fmt.Errorf("insert: label %q is already in the tree", label)
		}
		it := &item{key: key, label: label}
		s.items[label] = it
		if err := s.tree.Insert(it); err != nil {
			fmt.Fprintf(s.out, "insert %s: %v\n", it, err)
		} else {
			fmt.Fprintf(s.out, "insert %s: ok\n", it)
		}
	case "remove":
		it, err := s.lookup(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "remove %s: %t\n", it, s.tree.Remove(it))
	case "contains":
		it, err := s.lookup(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "contains %s: %t\n", it, s.tree.Contains(it))
	case "max", "min":
		get := s.tree.Max
		if op == "min" {
			get = s.tree.Min
		}
		if it, ok := get(); ok {
			fmt.Fprintf(s.out, "%s: %s\n", op, it)
		} else {
			fmt.Fprintf(s.out, "%s: empty\n", op)
		}
	case "len":
		fmt.Fprintf(s.out, "len: %d\n", s.tree.Len())
	case "walk", "all":
		seq := s.tree.PostOrder()
		if op == "all" {
			seq = s.tree.All()
		}
		var parts []string
		for it := range seq {
			parts = append(parts, it.String())
		}
		fmt.Fprintf(s.out, "%s: [%s]\n", op, strings.Join(parts, " "))
	case "dump":
		fmt.Fprint(s.out, s.tree.Sprint(itemLabel))
	case "verify":
		if err := s.tree.Verify(); err != nil {
			return fmt.Errorf("verify: %w", err)
		}
		fmt.Fprintln(s.out, "verify: ok")
	default:
		return fmt.Errorf("unknown operation %q", op)
	}
	return nil
}

func (s *session) lookup(label string) (*item, error) {
	it, ok := s.items[label]
	if !ok {
		return nil, fmt.Errorf("unknown label %q", label)
	}
	return it, nil
}
