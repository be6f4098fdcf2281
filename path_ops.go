// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pathkit

import (
	"github.com/gogpu/pathkit/internal/flatten"
	"github.com/gogpu/pathkit/internal/geom"
)

// Path operations for flattening, area and bounding box computation.

// FlattenPath converts every sub-path to a polyline with curves replaced by
// line segments.
//
// Closed sub-paths end with their start point repeated. Sub-paths that never
// leave their MoveTo are omitted. Curve subdivision depth defaults to 10;
// once the bound is reached a curve piece is emitted as its chord.
func FlattenPath(path VectorPath, opts ...Option) [][]Point {
	o := resolveOptions(flatten.BoundedMaxDepth, opts)

	var lines [][]Point
	var line []Point
	var current, start Point

	flush := func() {
		if len(line) >= 2 {
			lines = append(lines, line)
		}
		line = nil
	}
	begin := func() {
		if len(line) == 0 {
			line = append(line, current)
		}
	}

	for _, cmd := range path.Commands {
		switch c := cmd.(type) {
		case MoveTo:
			flush()
			current, start = c.Point, c.Point
			line = append(line, current)
		case LineTo:
			begin()
			line = append(line, c.Point)
			current = c.Point
		case CubicTo:
			begin()
			flatten.Points(flatten.Cubic{P0: current, P1: c.Control1, P2: c.Control2, P3: c.Point},
				o.tolerance, o.maxDepth, &line)
			current = c.Point
		case Close:
			begin()
			if line[len(line)-1] != start {
				line = append(line, start)
			}
			flush()
			current = start
		}
	}
	flush()
	return lines
}

// Area returns the signed area enclosed by the flattened path.
//
// Every sub-path is treated as closed. The result is positive for
// counter-clockwise paths in a y-up frame, which is clockwise on screen
// (y down), and negative otherwise. Overlapping sub-paths add up regardless
// of the winding rule.
func Area(path VectorPath, opts ...Option) float64 {
	o := resolveOptions(flatten.DefaultMaxDepth, opts)
	var area float64
	for _, poly := range pathToPolygons(path, o.tolerance, o.maxDepth) {
		area += geom.SignedArea(poly)
	}
	return area
}

// Bounds returns the axis-aligned bounding box of the flattened path.
// An empty path has an empty Rect{}.
func (p VectorPath) Bounds(opts ...Option) Rect {
	o := resolveOptions(flatten.DefaultMaxDepth, opts)
	r := emptyRect
	var current Point
	var scratch []Point
	for _, cmd := range p.Commands {
		switch c := cmd.(type) {
		case MoveTo:
			r = r.expand(c.Point)
			current = c.Point
		case LineTo:
			r = r.expand(current).expand(c.Point)
			current = c.Point
		case CubicTo:
			r = r.expand(current)
			scratch = scratch[:0]
			flatten.Points(flatten.Cubic{P0: current, P1: c.Control1, P2: c.Control2, P3: c.Point},
				o.tolerance, o.maxDepth, &scratch)
			for _, pt := range scratch {
				r = r.expand(pt)
			}
			current = c.Point
		case Close:
		}
	}
	if r.IsEmpty() {
		return Rect{}
	}
	return r
}
