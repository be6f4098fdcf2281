// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pathkit

import (
	"github.com/gogpu/pathkit/internal/flatten"
	"github.com/gogpu/pathkit/internal/geom"
)

// Segment is a flattened straight piece of a path with its precomputed
// Euclidean length.
type Segment struct {
	Start  Point
	End    Point
	Length float64
}

// At returns the point at parameter t (0 to 1) along the segment.
func (s Segment) At(t float64) Point {
	return s.Start.Lerp(s.End, t)
}

// PathToSegments flattens the path into length-bearing line segments.
//
// Sub-paths are concatenated into one list. Close emits the segment back to
// the sub-path start. Segments of length ≤ 1e-10 are dropped. A non-positive
// tolerance selects DefaultTolerance.
func PathToSegments(path VectorPath, tolerance float64) []Segment {
	return pathToSegments(path, tolerance, flatten.DefaultMaxDepth)
}

func pathToSegments(path VectorPath, tolerance float64, maxDepth int) []Segment {
	segments := make([]Segment, 0, len(path.Commands))
	var current, start Point
	var scratch []Point

	push := func(a, b Point) {
		if l := a.Distance(b); l > geom.Epsilon {
			segments = append(segments, Segment{Start: a, End: b, Length: l})
		}
	}

	for _, cmd := range path.Commands {
		switch c := cmd.(type) {
		case MoveTo:
			current = c.Point
			start = c.Point
		case LineTo:
			push(current, c.Point)
			current = c.Point
		case CubicTo:
			scratch = scratch[:0]
			flatten.Points(flatten.Cubic{P0: current, P1: c.Control1, P2: c.Control2, P3: c.Point},
				tolerance, maxDepth, &scratch)
			for _, pt := range scratch {
				push(current, pt)
				current = pt
			}
			current = c.Point
		case Close:
			push(current, start)
			current = start
		}
	}
	return segments
}

// pathToPolygons flattens every sub-path into an implicitly closed polygon.
//
// A new polygon starts on every MoveTo and is completed by Close, the next
// MoveTo, or the end of the path. Consecutive duplicate points and a final
// point equal to the first are removed; polygons with fewer than three
// points bound no area and are dropped.
func pathToPolygons(path VectorPath, tolerance float64, maxDepth int) [][]Point {
	var polygons [][]Point
	var current Point
	var poly, scratch []Point

	add := func(p Point) {
		if n := len(poly); n > 0 && poly[n-1].Approx(p, geom.Epsilon) {
			return
		}
		poly = append(poly, p)
	}
	flush := func() {
		if n := len(poly); n > 1 && poly[n-1].Approx(poly[0], geom.Epsilon) {
			poly = poly[:n-1]
		}
		if len(poly) >= 3 {
			polygons = append(polygons, poly)
		}
		poly = nil
	}

	for _, cmd := range path.Commands {
		switch c := cmd.(type) {
		case MoveTo:
			flush()
			add(c.Point)
			current = c.Point
		case LineTo:
			if len(poly) == 0 {
				add(current)
			}
			add(c.Point)
			current = c.Point
		case CubicTo:
			if len(poly) == 0 {
				add(current)
			}
			scratch = scratch[:0]
			flatten.Points(flatten.Cubic{P0: current, P1: c.Control1, P2: c.Control2, P3: c.Point},
				tolerance, maxDepth, &scratch)
			for _, pt := range scratch {
				add(pt)
			}
			current = c.Point
		case Close:
			if len(poly) > 0 {
				current = poly[0]
			}
			flush()
		}
	}
	flush()
	return polygons
}
