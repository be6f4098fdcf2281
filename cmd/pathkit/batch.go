// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gogpu/pathkit"
	"github.com/gogpu/pathkit/internal/parallel"
	"github.com/gogpu/pathkit/internal/pathjson"
)

// batchResult is one JSON line of batch output.
type batchResult struct {
	File    string              `json:"file"`
	Paths   []pathjson.Document `json:"paths,omitempty"`
	Lengths []float64           `json:"lengths,omitempty"`
	Error   string              `json:"error,omitempty"`
}

// runBatch applies one operation to every file argument on a worker pool
// and writes one JSON line per file, in argument order.
func runBatch(ctx context.Context, a *app, args []string) error {
	fs := a.flagSet("batch")
	opName := fs.String("op", "length", "operation: length, dash, offset, align or outline")
	workers := fs.Int("workers", 0, "worker goroutines (default GOMAXPROCS)")
	distance := fs.Float64("distance", 0, "offset distance for -op offset")
	weight := fs.Float64("weight", 1, "stroke weight for -op align and outline")
	alignment := fs.String("alignment", "inside", "stroke alignment for -op align")
	join := a.addJoinFlags(fs)
	dash := addDashFlags(fs)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("%w: batch needs at least one input file", errUsage)
	}

	var op pathOp
	switch *opName {
	case "length":
	case "dash":
		cfg, err := dash.config(a.cfg.Geometry.Tolerance)
		if err != nil {
			return err
		}
		op = dashOp(cfg)
	case "offset", "align", "outline":
		style, limit, err := join.resolve()
		if err != nil {
			return err
		}
		switch *opName {
		case "offset":
			op = offsetOp(pathkit.OffsetConfig{
				Distance:   *distance,
				JoinStyle:  style,
				MiterLimit: limit,
				Tolerance:  a.cfg.Geometry.Tolerance,
			})
		case "align":
			align, err := parseAlignment(*alignment)
			if err != nil {
				return err
			}
			op = alignOp(*weight, align, style, limit)
		default:
			op = outlineOp(*weight, style, limit)
		}
	default:
		return fmt.Errorf("%w: unknown batch operation %q", errUsage, *opName)
	}

	pool := parallel.NewWorkerPool(*workers)
	defer pool.Close()
	a.log.Debug("batch started", "op", *opName, "files", fs.NArg(), "workers", pool.Workers())

	results, err := parallel.Map(ctx, pool, fs.Args(), func(_ context.Context, file string) batchResult {
		return a.batchFile(file, op)
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(a.stdout)
	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
			a.log.Warn("batch file failed", "file", r.File, "error", r.Error)
		}
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	a.p.Fprintf(a.stderr, "batch %s: %d files, %d failed\n", *opName, len(results), failed)
	if failed > 0 {
		return fmt.Errorf("batch: %d of %d files failed", failed, len(results))
	}
	return nil
}

// batchFile runs op on one file. A zero op measures lengths instead.
func (a *app) batchFile(file string, op pathOp) batchResult {
	r := batchResult{File: file}
	paths, err := readFile(file)
	if err != nil {
		r.Error = err.Error()
		return r
	}

	if op.apply == nil {
		r.Lengths = make([]float64, len(paths))
		for i, p := range paths {
			r.Lengths[i] = pathkit.PathLength(p, a.flattenOptions()...)
		}
		return r
	}

	out, err := op.apply(paths)
	if err != nil {
		r.Error = err.Error()
		return r
	}
	r.Paths = make([]pathjson.Document, len(out))
	for i, p := range out {
		r.Paths[i] = pathjson.FromPath(p)
	}
	return r
}
