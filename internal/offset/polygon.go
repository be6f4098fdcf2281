// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package offset

import (
	"math"

	"github.com/gogpu/pathkit/internal/geom"
)

// Join specifies how offset edges meet at a vertex.
type Join int

const (
	// JoinMiter extends both edges to a sharp point.
	JoinMiter Join = iota
	// JoinBevel connects the offset edges with a straight line.
	JoinBevel
	// JoinRound connects the offset edges with a circular arc.
	JoinRound
)

// DefaultMiterLimit matches the SVG default.
const DefaultMiterLimit = 4.0

// roundPointsPerRadian controls the density of round-join arcs.
const roundPointsPerRadian = 6.0

// Polygon offsets the implicitly closed polygon by distance.
//
// A positive distance expands the shape and a negative one shrinks it,
// regardless of the polygon's winding. The result is a new implicitly closed
// polygon; the input is not modified. Fewer than two input points yield nil.
func Polygon(points []geom.Point, distance float64, join Join, miterLimit float64) []geom.Point {
	n := len(points)
	if n < 2 {
		return nil
	}
	if miterLimit <= 0 {
		miterLimit = DefaultMiterLimit
	}

	d := distance
	if geom.SignedArea(points) > 0 {
		d = -distance
	}

	out := make([]geom.Point, 0, n+n/2)
	for i := 0; i < n; i++ {
		prev := points[(i+n-1)%n]
		cur := points[i]
		next := points[(i+1)%n]
		out = appendVertex(out, prev, cur, next, d, join, miterLimit)
	}
	return out
}

// edgeNormal returns the unit left normal of the edge a->b, or the zero
// vector for a degenerate edge.
func edgeNormal(a, b geom.Point) geom.Point {
	return b.Sub(a).Perp().Normalize()
}

// appendVertex appends the offset geometry for vertex cur.
func appendVertex(out []geom.Point, prev, cur, next geom.Point, d float64, join Join, miterLimit float64) []geom.Point {
	n0 := edgeNormal(prev, cur)
	n1 := edgeNormal(cur, next)
	switch {
	case n0 == (geom.Point{}) && n1 == (geom.Point{}):
		return out
	case n0 == (geom.Point{}):
		n0 = n1
	case n1 == (geom.Point{}):
		n1 = n0
	}

	bisector := n0.Add(n1)
	blend := bisector.Length()
	if blend < geom.Epsilon {
		// Edges fold back onto each other.
		return append(out, cur.Add(n0.Mul(d)))
	}

	// |n0+n1| = 2cos(θ/2) for unit normals.
	miterFactor := 2 / blend
	if join == JoinMiter && miterFactor <= miterLimit {
		return append(out, cur.Add(bisector.Mul(d*miterFactor/blend)))
	}

	turn := cur.Sub(prev).Cross(next.Sub(cur))
	if join == JoinRound && turn*d < 0 {
		return appendArc(out, cur, n0.Mul(d), n1.Mul(d))
	}
	return appendBevel(out, cur.Add(n0.Mul(d)), cur.Add(n1.Mul(d)))
}

// appendBevel appends both edge-offset points, or one when they coincide.
func appendBevel(out []geom.Point, a, b geom.Point) []geom.Point {
	out = append(out, a)
	if !a.Approx(b, geom.Epsilon) {
		out = append(out, b)
	}
	return out
}

// appendArc appends points on the circle around center sweeping the short
// way from center+from to center+to, both ends included.
func appendArc(out []geom.Point, center, from, to geom.Point) []geom.Point {
	sweep := math.Atan2(from.Cross(to), from.Dot(to))
	steps := max(int(math.Ceil(math.Abs(sweep)*roundPointsPerRadian)), 2)
	for k := 0; k < steps; k++ {
		out = append(out, center.Add(from.Rotate(sweep*float64(k)/float64(steps))))
	}
	return append(out, center.Add(to))
}
