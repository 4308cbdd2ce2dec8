// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"slices"
	"strings"

	"github.com/jba/avl"
	"github.com/jba/avl/block"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/urfave/cli/v2"
)

var cmdStress = &cli.Command{
	Name:  "stress",
	Usage: "run a random workload, checking the tree after every operation",
	Flags: append([]cli.Flag{
		&cli.IntFlag{
			Name:  "ops",
			Usage: "number of operations",
			Value: 100_000,
		},
		&cli.IntFlag{
			Name:  "keys",
			Usage: "number of distinct keys",
			Value: 500,
		},
		&cli.Uint64Flag{
			Name:    "seed",
			Usage:   "random seed",
			Value:   1,
			EnvVars: []string{"AVLQ_SEED"},
		},
		&cli.BoolFlag{
			Name:  "dump",
			Usage: "print the final tree",
		},
	}, treeFlags...),
	Action: runStress,
}

type stressConfig struct {
	ops      int
	keys     int
	seed     uint64
	blocks   int
	capacity int
}

type stressResult struct {
	inserted, rejected, removed, missed int
}

func runStress(cctx *cli.Context) error {
	logger, err := configLogging(cctx, os.Stderr)
	if err != nil {
		return err
	}
	cfg := stressConfig{
		ops:      cctx.Int("ops"),
		keys:     cctx.Int("keys"),
		seed:     cctx.Uint64("seed"),
		blocks:   cctx.Int("blocks"),
		capacity: cctx.Int("capacity"),
	}
	tree, pool, err := newItemTree(cfg.blocks, cfg.capacity, logger)
	if err != nil {
		return err
	}
	res, err := stress(tree, cfg, logger)
	if err != nil {
		return err
	}
	logger.Info("stress done",
		"ops", cfg.ops,
		"inserted", res.inserted,
		"rejected", res.rejected,
		"removed", res.removed,
		"missed", res.missed,
		"entries", tree.Len(),
	)
	if cctx.Bool("dump") {
		fmt.Fprint(cctx.App.Writer, tree.Sprint(itemLabel))
	}
	return printMetrics(cctx.App.Writer, pool)
}

// stress applies cfg.ops random inserts and removes to tree, comparing it
// with a sorted model after every step.
func stress(tree *itemTree, cfg stressConfig, logger *slog.Logger) (stressResult, error) {
	var res stressResult
	if cfg.keys <= 0 {
		return res, fmt.Errorf("invalid key count %d", cfg.keys)
	}
	r := rand.New(rand.NewPCG(cfg.seed, cfg.seed))
	var (
		model []*item // sorted by key, then insertion order
		seen  []*item // every item offered to the tree
	)
	for i := range cfg.ops {
		if len(seen) == 0 || r.IntN(2) == 0 {
			it := &item{key: r.Int64N(int64(cfg.keys)), label: fmt.Sprint("i", i)}
			seen = append(seen, it)
			switch err := tree.Insert(it); {
			case err == nil:
				res.inserted++
				j, _ := slices.BinarySearchFunc(model, it.key+1, func(x *item, k int64) int {
					return compareItems(x, &item{key: k})
				})
				model = slices.Insert(model, j, it)
			case errors.Is(err, avl.ErrFull), errors.Is(err, block.ErrExhausted):
				res.rejected++
			default:
				return res, fmt.Errorf("op %d: %w", i, err)
			}
		} else {
			it := seen[r.IntN(len(seen))]
			j := slices.Index(model, it)
			if got := tree.Remove(it); got != (j >= 0) {
				return res, fmt.Errorf("op %d: Remove(%s) = %t, want %t", i, it, got, j >= 0)
			}
			if j >= 0 {
				model = slices.Delete(model, j, j+1)
				res.removed++
			} else {
				res.missed++
			}
		}
		if err := check(tree, model); err != nil {
			return res, fmt.Errorf("op %d: %w", i, err)
		}
		if (i+1)%10_000 == 0 {
			logger.Debug("progress", "ops", i+1, "entries", tree.Len())
		}
	}
	return res, nil
}

func check(tree *itemTree, model []*item) error {
	if err := tree.Verify(); err != nil {
		return err
	}
	if tree.Len() != len(model) {
		return fmt.Errorf("Len() = %d, want %d", tree.Len(), len(model))
	}
	max, ok := tree.Max()
	if len(model) == 0 {
		if ok {
			return fmt.Errorf("Max() = %s on an empty tree", max)
		}
		return nil
	}
	i := len(model) - 1
	for i > 0 && model[i-1].key == model[i].key {
		i--
	}
	if max != model[i] {
		return fmt.Errorf("Max() = %s, want %s", max, model[i])
	}
	return nil
}

// printMetrics writes the pool's metrics to w, one per line.
func printMetrics(w io.Writer, pool *itemPool) error {
	reg := prometheus.NewRegistry()
	if err := pool.Register(reg, "stress"); err != nil {
		return err
	}
	mfs, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			var labels []string
			for _, lp := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
			}
			fmt.Fprintf(w, "%s{%s} %g\n", mf.GetName(), strings.Join(labels, ","), metricValue(mf.GetType(), m))
		}
	}
	return nil
}

func metricValue(typ dto.MetricType, m *dto.Metric) float64 {
	switch typ {
	case dto.MetricType_COUNTER:
		return m.GetCounter().GetValue()
	case dto.MetricType_GAUGE:
		return m.GetGauge().GetValue()
	}
	return 0
}
