// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/gogpu/pathkit"
	"github.com/gogpu/pathkit/internal/config"
	"github.com/gogpu/pathkit/internal/preview"
)

// =============================================================================
// Queries
// =============================================================================

func runLength(_ context.Context, a *app, args []string) error {
	fs := a.flagSet("length")
	in := addInputFlags(fs)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	paths, err := a.readPaths(in, fs)
	if err != nil {
		return err
	}
	for i, p := range paths {
		a.p.Fprintf(a.stdout, "%d\t%.3f\n", i, pathkit.PathLength(p, a.flattenOptions()...))
	}
	return nil
}

func runPoint(_ context.Context, a *app, args []string) error {
	return a.runAtLength("point", args, pathkit.PointAtLength)
}

func runTangent(_ context.Context, a *app, args []string) error {
	return a.runAtLength("tangent", args, pathkit.TangentAtLength)
}

// runAtLength prints query(path, -at) for every input path, or "-" when the
// path has no geometry.
func (a *app) runAtLength(name string, args []string, query func(pathkit.VectorPath, float64, ...pathkit.Option) (pathkit.Point, bool)) error {
	fs := a.flagSet(name)
	in := addInputFlags(fs)
	at := fs.Float64("at", 0, "distance along the path")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	paths, err := a.readPaths(in, fs)
	if err != nil {
		return err
	}
	for i, p := range paths {
		pt, ok := query(p, *at, a.flattenOptions()...)
		if !ok {
			a.p.Fprintf(a.stdout, "%d\t-\n", i)
			continue
		}
		a.p.Fprintf(a.stdout, "%d\t%.3f\t%.3f\n", i, pt.X, pt.Y)
	}
	return nil
}

func runInfo(_ context.Context, a *app, args []string) error {
	fs := a.flagSet("info")
	in := addInputFlags(fs)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	paths, err := a.readPaths(in, fs)
	if err != nil {
		return err
	}
	opts := a.flattenOptions()
	for i, p := range paths {
		b := p.Bounds(opts...)
		a.p.Fprintf(a.stdout, "%d\trule=%s commands=%d subpaths=%d segments=%d length=%.3f area=%.3f bounds=[%.3f %.3f %.3f %.3f]\n",
			i, p.WindingRule, len(p.Commands),
			len(pathkit.FlattenPath(p, opts...)),
			len(pathkit.PathToSegments(p, a.cfg.Geometry.Tolerance)),
			pathkit.PathLength(p, opts...),
			pathkit.Area(p, opts...),
			b.Min.X, b.Min.Y, b.Max.X, b.Max.Y)
	}
	return nil
}

// =============================================================================
// Path operations
// =============================================================================

// pathOp transforms a batch of input paths into output paths.
type pathOp struct {
	name       string
	sourceMode preview.Mode
	apply      func(paths []pathkit.VectorPath) ([]pathkit.VectorPath, error)
}

func dashOp(cfg pathkit.DashConfig) pathOp {
	return pathOp{
		name:       "dash",
		sourceMode: preview.Stroke,
		apply: func(paths []pathkit.VectorPath) ([]pathkit.VectorPath, error) {
			var out []pathkit.VectorPath
			for _, p := range paths {
				out = append(out, pathkit.ApplyDashPattern(p, cfg).Paths...)
			}
			return out, nil
		},
	}
}

func offsetOp(cfg pathkit.OffsetConfig) pathOp {
	return pathOp{
		name:       "offset",
		sourceMode: preview.Fill,
		apply: func(paths []pathkit.VectorPath) ([]pathkit.VectorPath, error) {
			return collect(paths, func(p pathkit.VectorPath) pathkit.OffsetResult {
				return pathkit.OffsetPath(p, cfg)
			})
		},
	}
}

func alignOp(weight float64, align pathkit.StrokeAlignment, join pathkit.JoinStyle, miterLimit float64) pathOp {
	return pathOp{
		name:       "align",
		sourceMode: preview.Fill,
		apply: func(paths []pathkit.VectorPath) ([]pathkit.VectorPath, error) {
			return collect(paths, func(p pathkit.VectorPath) pathkit.OffsetResult {
				return pathkit.OffsetForStrokeAlignment(p, weight, align, join, miterLimit)
			})
		},
	}
}

// outlineOp emits one even-odd path per input holding the outer boundary
// followed by the inner boundary, which fills as the stroke ring.
func outlineOp(weight float64, join pathkit.JoinStyle, miterLimit float64) pathOp {
	return pathOp{
		name:       "outline",
		sourceMode: preview.Fill,
		apply: func(paths []pathkit.VectorPath) ([]pathkit.VectorPath, error) {
			out := make([]pathkit.VectorPath, 0, len(paths))
			for i, p := range paths {
				o := pathkit.CreateStrokeOutline(p, weight, join, miterLimit)
				var cmds []pathkit.PathCommand
				for _, side := range []pathkit.OffsetResult{o.Outer, o.Inner} {
					if !side.Success {
						return nil, fmt.Errorf("path %d: %w", i, side.Err)
					}
					for _, sp := range side.Paths {
						cmds = append(cmds, sp.Commands...)
					}
				}
				out = append(out, pathkit.NewVectorPath(pathkit.EvenOdd, cmds...))
			}
			return out, nil
		},
	}
}

func collect(paths []pathkit.VectorPath, fn func(pathkit.VectorPath) pathkit.OffsetResult) ([]pathkit.VectorPath, error) {
	var out []pathkit.VectorPath
	for i, p := range paths {
		r := fn(p)
		if !r.Success {
			return nil, fmt.Errorf("path %d: %w", i, r.Err)
		}
		out = append(out, r.Paths...)
	}
	return out, nil
}

// runPathOp parses flags, builds the operation and writes its results.
func (a *app) runPathOp(fs *flag.FlagSet, args []string, build func() (pathOp, error)) error {
	in := addInputFlags(fs)
	out := addOutputFlags(fs)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := out.validate(); err != nil {
		return err
	}
	op, err := build()
	if err != nil {
		return err
	}
	paths, err := a.readPaths(in, fs)
	if err != nil {
		return err
	}
	results, err := op.apply(paths)
	if err != nil {
		return fmt.Errorf("%s: %w", op.name, err)
	}
	a.p.Fprintf(a.stderr, "%s: %d paths in, %d paths out\n", op.name, len(paths), len(results))

	if err := a.writePaths(out, results); err != nil {
		return err
	}
	return a.writePreview(out,
		preview.Layer{Paths: paths, Color: sourceColor, Mode: op.sourceMode},
		preview.Layer{Paths: results, Color: resultColor, Mode: preview.Stroke},
	)
}

func runDash(_ context.Context, a *app, args []string) error {
	fs := a.flagSet("dash")
	dash := addDashFlags(fs)
	return a.runPathOp(fs, args, func() (pathOp, error) {
		cfg, err := dash.config(a.cfg.Geometry.Tolerance)
		if err != nil {
			return pathOp{}, err
		}
		return dashOp(cfg), nil
	})
}

func runOffset(_ context.Context, a *app, args []string) error {
	fs := a.flagSet("offset")
	distance := fs.Float64("distance", 0, "offset distance: positive grows, negative shrinks")
	join := a.addJoinFlags(fs)
	return a.runPathOp(fs, args, func() (pathOp, error) {
		style, limit, err := join.resolve()
		if err != nil {
			return pathOp{}, err
		}
		return offsetOp(pathkit.OffsetConfig{
			Distance:   *distance,
			JoinStyle:  style,
			MiterLimit: limit,
			Tolerance:  a.cfg.Geometry.Tolerance,
		}), nil
	})
}

func runAlign(_ context.Context, a *app, args []string) error {
	fs := a.flagSet("align")
	weight := fs.Float64("weight", 1, "stroke weight")
	alignment := fs.String("alignment", "inside", "stroke alignment: center, inside or outside")
	join := a.addJoinFlags(fs)
	return a.runPathOp(fs, args, func() (pathOp, error) {
		align, err := parseAlignment(*alignment)
		if err != nil {
			return pathOp{}, err
		}
		style, limit, err := join.resolve()
		if err != nil {
			return pathOp{}, err
		}
		return alignOp(*weight, align, style, limit), nil
	})
}

func runOutline(_ context.Context, a *app, args []string) error {
	fs := a.flagSet("outline")
	weight := fs.Float64("weight", 1, "stroke weight")
	join := a.addJoinFlags(fs)
	return a.runPathOp(fs, args, func() (pathOp, error) {
		style, limit, err := join.resolve()
		if err != nil {
			return pathOp{}, err
		}
		return outlineOp(*weight, style, limit), nil
	})
}

// =============================================================================
// Flag helpers
// =============================================================================

type joinFlags struct {
	join       string
	miterLimit float64
}

// addJoinFlags registers -join and -miter-limit with the configured
// defaults.
func (a *app) addJoinFlags(fs *flag.FlagSet) *joinFlags {
	j := &joinFlags{}
	fs.StringVar(&j.join, "join", a.cfg.Geometry.Join, "corner join: miter, bevel or round")
	fs.Float64Var(&j.miterLimit, "miter-limit", a.cfg.Geometry.MiterLimit, "miter length limit, in multiples of the distance")
	return j
}

func (j *joinFlags) resolve() (pathkit.JoinStyle, float64, error) {
	style, err := config.ParseJoin(j.join)
	if err != nil {
		return style, 0, fmt.Errorf("%w: %v", errUsage, err)
	}
	return style, j.miterLimit, nil
}

type dashFlags struct {
	pattern string
	offset  float64
}

func addDashFlags(fs *flag.FlagSet) *dashFlags {
	d := &dashFlags{}
	fs.StringVar(&d.pattern, "pattern", "", "comma-separated dash and gap lengths, e.g. 10,5")
	fs.Float64Var(&d.offset, "dash-offset", 0, "distance into the pattern at the path start")
	return d
}

func (d *dashFlags) config(tolerance float64) (pathkit.DashConfig, error) {
	pattern, err := parsePattern(d.pattern)
	if err != nil {
		return pathkit.DashConfig{}, err
	}
	cfg := pathkit.NewDashConfig(pattern...).WithOffset(d.offset)
	cfg.Tolerance = tolerance
	return cfg, nil
}

// parsePattern reads lengths separated by commas or spaces.
func parsePattern(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	pattern := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad dash length %q", errUsage, f)
		}
		pattern = append(pattern, v)
	}
	return pattern, nil
}

func parseAlignment(s string) (pathkit.StrokeAlignment, error) {
	for _, a := range []pathkit.StrokeAlignment{pathkit.StrokeCenter, pathkit.StrokeInside, pathkit.StrokeOutside} {
		if strings.EqualFold(s, a.String()) {
			return a, nil
		}
	}
	return pathkit.StrokeCenter, fmt.Errorf("%w: unknown alignment %q", errUsage, s)
}
