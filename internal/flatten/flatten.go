// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package flatten approximates cubic Bezier curves with line segments.
//
// Curves are subdivided at t=0.5 with de Casteljau's construction until the
// control points lie within the flatness tolerance of the chord. The
// tolerance is measured as control-point deviation (pixels), not as an
// arc-length error. Every subdivision carries an explicit depth bound, so
// near-collinear inputs that never pass the flatness test still terminate.
package flatten

import "github.com/gogpu/pathkit/internal/geom"

const (
	// DefaultTolerance is the flatness tolerance used when callers pass a
	// non-positive value.
	DefaultTolerance = 0.5

	// DefaultMaxDepth bounds recursion for offsetting, dashing and
	// length queries. 2^16 pieces per curve is far beyond any visible need.
	DefaultMaxDepth = 16

	// BoundedMaxDepth bounds recursion for general-purpose path flattening.
	BoundedMaxDepth = 10
)

// Cubic is a cubic Bezier curve with start P0, controls P1 and P2, end P3.
type Cubic struct {
	P0, P1, P2, P3 geom.Point
}

// Eval evaluates the curve at parameter t (0 to 1).
func (c Cubic) Eval(t float64) geom.Point {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	d := 3 * mt * t * t
	e := t * t * t
	return geom.Point{
		X: a*c.P0.X + b*c.P1.X + d*c.P2.X + e*c.P3.X,
		Y: a*c.P0.Y + b*c.P1.Y + d*c.P2.Y + e*c.P3.Y,
	}
}

// Subdivide splits the curve at t=0.5 using de Casteljau's algorithm.
func (c Cubic) Subdivide() (Cubic, Cubic) {
	q0 := c.P0.Lerp(c.P1, 0.5)
	q1 := c.P1.Lerp(c.P2, 0.5)
	q2 := c.P2.Lerp(c.P3, 0.5)
	r0 := q0.Lerp(q1, 0.5)
	r1 := q1.Lerp(q2, 0.5)
	s := r0.Lerp(r1, 0.5)
	return Cubic{P0: c.P0, P1: q0, P2: r0, P3: s}, Cubic{P0: s, P1: r1, P2: q2, P3: c.P3}
}

// Flatness returns the summed perpendicular distance of both control points
// to the chord P0-P3. A degenerate chord measures against P0.
func (c Cubic) Flatness() float64 {
	return geom.LineDistance(c.P1, c.P0, c.P3) + geom.LineDistance(c.P2, c.P0, c.P3)
}

// Points appends the end points of the flattened pieces of c to out.
// P0 itself is not appended; the caller already holds it as its current
// point. A non-positive tolerance selects DefaultTolerance and a
// non-positive maxDepth selects DefaultMaxDepth.
func Points(c Cubic, tolerance float64, maxDepth int, out *[]geom.Point) {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	pointsRec(c, tolerance, maxDepth, out)
}

func pointsRec(c Cubic, tolerance float64, depth int, out *[]geom.Point) {
	if depth == 0 || c.Flatness() <= tolerance {
		*out = append(*out, c.P3)
		return
	}
	left, right := c.Subdivide()
	pointsRec(left, tolerance, depth-1, out)
	pointsRec(right, tolerance, depth-1, out)
}

// Polyline returns the flattened curve including its start point.
func Polyline(c Cubic, tolerance float64, maxDepth int) []geom.Point {
	points := make([]geom.Point, 1, 16)
	points[0] = c.P0
	Points(c, tolerance, maxDepth, &points)
	return points
}
