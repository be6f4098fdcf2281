// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package geom

import "math"

// LineDistance returns the perpendicular distance from p to the infinite
// line through a and b. When a and b coincide the distance to a is returned.
func LineDistance(p, a, b Point) float64 {
	ab := b.Sub(a)
	abLen := ab.Length()
	if abLen < Epsilon {
		return p.Distance(a)
	}
	return math.Abs(ab.Cross(p.Sub(a))) / abLen
}

// SignedArea returns the shoelace area of a closed polygon.
// The sign is positive when the vertices turn counter-clockwise in a y-up
// frame (clockwise on a y-down screen).
func SignedArea(points []Point) float64 {
	n := len(points)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		a := points[i]
		b := points[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}
