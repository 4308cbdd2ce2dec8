// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	_ "github.com/joho/godotenv/autoload"

	"github.com/carlmjohnson/versioninfo"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(-1)
	}
}

var treeFlags = []cli.Flag{
	&cli.IntFlag{
		Name:    "blocks",
		Usage:   "number of blocks in the node pool",
		Value:   1024,
		EnvVars: []string{"AVLQ_BLOCKS"},
	},
	&cli.IntFlag{
		Name:    "capacity",
		Usage:   "maximum number of entries in the tree (0 for no limit beyond the pool)",
		Value:   0,
		EnvVars: []string{"AVLQ_CAPACITY"},
	},
}

func run(args []string) error {

	app := cli.App{
		Name:    "avlq",
		Usage:   "exercise and inspect block-backed AVL multimaps",
		Version: versioninfo.Short(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log verbosity level (eg: warn, info, debug)",
				Value:   "info",
				EnvVars: []string{"AVLQ_LOG_LEVEL", "LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   "log format: text or json",
				Value:   "text",
				EnvVars: []string{"AVLQ_LOG_FMT"},
			},
		},
	}
	app.Commands = []*cli.Command{
		cmdReplay,
		cmdStress,
		cmdDump,
		&cli.Command{
			Name:  "version",
			Usage: "print version",
			Action: func(cctx *cli.Context) error {
				fmt.Fprintln(cctx.App.Writer, versioninfo.Short())
				return nil
			},
		},
	}
	return app.Run(args)
}

// configLogging returns a logger writing to w at the level and in the
// format given by the global flags.
func configLogging(cctx *cli.Context, w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	switch strings.ToLower(cctx.String("log-level")) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, fmt.Errorf("unknown log level: %#v", cctx.String("log-level"))
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch strings.ToLower(cctx.String("log-format")) {
	case "text":
		handler = slog.NewTextHandler(w, opts)
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("invalid log format: %#v", cctx.String("log-format"))
	}
	return slog.New(handler), nil
}
