// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pathkit

import "math"

// PathBuilder provides a fluent interface for path construction.
// All methods return the builder for chaining.
type PathBuilder struct {
	rule WindingRule
	cmds []PathCommand
}

// BuildPath starts a new path builder with the given winding rule.
func BuildPath(rule WindingRule) *PathBuilder {
	return &PathBuilder{rule: rule, cmds: make([]PathCommand, 0, 16)}
}

// MoveTo starts a new sub-path.
func (b *PathBuilder) MoveTo(x, y float64) *PathBuilder {
	b.cmds = append(b.cmds, MoveTo{Point: Pt(x, y)})
	return b
}

// LineTo draws a line to a position.
func (b *PathBuilder) LineTo(x, y float64) *PathBuilder {
	b.cmds = append(b.cmds, LineTo{Point: Pt(x, y)})
	return b
}

// CubicTo draws a cubic Bezier curve.
func (b *PathBuilder) CubicTo(c1x, c1y, c2x, c2y, x, y float64) *PathBuilder {
	b.cmds = append(b.cmds, CubicTo{
		Control1: Pt(c1x, c1y),
		Control2: Pt(c2x, c2y),
		Point:    Pt(x, y),
	})
	return b
}

// Close closes the current sub-path.
func (b *PathBuilder) Close() *PathBuilder {
	b.cmds = append(b.cmds, Close{})
	return b
}

// Polygon adds a closed sub-path through the given points.
func (b *PathBuilder) Polygon(points ...Point) *PathBuilder {
	if len(points) == 0 {
		return b
	}
	b.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		b.LineTo(p.X, p.Y)
	}
	return b.Close()
}

// Rect adds a rectangle, wound counter-clockwise in a y-up frame.
func (b *PathBuilder) Rect(x, y, w, h float64) *PathBuilder {
	return b.MoveTo(x, y).
		LineTo(x+w, y).
		LineTo(x+w, y+h).
		LineTo(x, y+h).
		Close()
}

// Circle adds a circle approximated by four cubic Bezier curves.
func (b *PathBuilder) Circle(cx, cy, r float64) *PathBuilder {
	return b.Ellipse(cx, cy, r, r)
}

// Ellipse adds an axis-aligned ellipse approximated by four cubic Bezier
// curves.
func (b *PathBuilder) Ellipse(cx, cy, rx, ry float64) *PathBuilder {
	// 4/3 * (sqrt(2) - 1)
	const k = 0.5522847498307936
	ox := rx * k
	oy := ry * k

	return b.MoveTo(cx+rx, cy).
		CubicTo(cx+rx, cy+oy, cx+ox, cy+ry, cx, cy+ry).
		CubicTo(cx-ox, cy+ry, cx-rx, cy+oy, cx-rx, cy).
		CubicTo(cx-rx, cy-oy, cx-ox, cy-ry, cx, cy-ry).
		CubicTo(cx+ox, cy-ry, cx+rx, cy-oy, cx+rx, cy).
		Close()
}

// RoundRect adds a rectangle with rounded corners.
// The radius is clamped to half of the smaller side.
func (b *PathBuilder) RoundRect(x, y, w, h, r float64) *PathBuilder {
	r = math.Max(0, math.Min(r, math.Min(w, h)/2))
	const k = 0.5522847498307936
	o := r * k

	return b.MoveTo(x+r, y).
		LineTo(x+w-r, y).
		CubicTo(x+w-r+o, y, x+w, y+r-o, x+w, y+r).
		LineTo(x+w, y+h-r).
		CubicTo(x+w, y+h-r+o, x+w-r+o, y+h, x+w-r, y+h).
		LineTo(x+r, y+h).
		CubicTo(x+r-o, y+h, x, y+h-r+o, x, y+h-r).
		LineTo(x, y+r).
		CubicTo(x, y+r-o, x+r-o, y, x+r, y).
		Close()
}

// Build returns the constructed path. The builder may keep being used; later
// calls do not affect the returned value.
func (b *PathBuilder) Build() VectorPath {
	cmds := make([]PathCommand, len(b.cmds))
	copy(cmds, b.cmds)
	return VectorPath{WindingRule: b.rule, Commands: cmds}
}
