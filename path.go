// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pathkit

import (
	"math"

	"golang.org/x/image/math/f64"
)

// WindingRule selects which regions of a possibly self-overlapping path are
// inside for fill purposes.
type WindingRule int

const (
	// NonZero fills regions with a non-zero winding number.
	NonZero WindingRule = iota
	// EvenOdd fills regions crossed an odd number of times.
	EvenOdd
)

// String returns the rule name used by the JSON document format.
func (w WindingRule) String() string {
	switch w {
	case NonZero:
		return "NONZERO"
	case EvenOdd:
		return "EVENODD"
	default:
		return "UNKNOWN"
	}
}

// PathCommand is a single command of a VectorPath.
// The set of commands is closed: MoveTo, LineTo, CubicTo and Close.
type PathCommand interface {
	isPathCommand()
}

// MoveTo starts a new sub-path at Point.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathCommand() {}

// LineTo draws a straight line to Point.
type LineTo struct {
	Point Point
}

func (LineTo) isPathCommand() {}

// CubicTo draws a cubic Bezier curve to Point.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

func (CubicTo) isPathCommand() {}

// Close closes the current sub-path back to its most recent MoveTo.
type Close struct{}

func (Close) isPathCommand() {}

// VectorPath is a winding rule plus a command list.
//
// VectorPath values are treated as immutable: no function in this package
// modifies the Commands slice it is given, and every transform returns a new
// value.
type VectorPath struct {
	WindingRule WindingRule
	Commands    []PathCommand
}

// NewVectorPath creates a path from the given commands.
func NewVectorPath(rule WindingRule, cmds ...PathCommand) VectorPath {
	return VectorPath{WindingRule: rule, Commands: cmds}
}

// IsEmpty reports whether the path has no commands.
func (p VectorPath) IsEmpty() bool {
	return len(p.Commands) == 0
}

// LastPoint returns the pen position after the final command. A trailing
// Close returns the pen to the start of its sub-path. ok is false for a path
// without points.
func (p VectorPath) LastPoint() (pt Point, ok bool) {
	var start Point
	for _, cmd := range p.Commands {
		if _, isClose := cmd.(Close); isClose {
			pt = start
			continue
		}
		pt, ok = endPoint(cmd)
		if m, isMove := cmd.(MoveTo); isMove {
			start = m.Point
		}
	}
	return pt, ok
}

// Clone returns a copy of the path that shares no memory with p.
func (p VectorPath) Clone() VectorPath {
	cmds := make([]PathCommand, len(p.Commands))
	copy(cmds, p.Commands)
	return VectorPath{WindingRule: p.WindingRule, Commands: cmds}
}

// Transform applies the affine matrix m to every point of the path.
// m is laid out as [a c e; b d f] in row-major order:
// x' = m[0]*x + m[1]*y + m[2], y' = m[3]*x + m[4]*y + m[5].
func (p VectorPath) Transform(m f64.Aff3) VectorPath {
	apply := func(pt Point) Point {
		return Point{
			X: m[0]*pt.X + m[1]*pt.Y + m[2],
			Y: m[3]*pt.X + m[4]*pt.Y + m[5],
		}
	}
	cmds := make([]PathCommand, 0, len(p.Commands))
	for _, cmd := range p.Commands {
		switch c := cmd.(type) {
		case MoveTo:
			cmds = append(cmds, MoveTo{Point: apply(c.Point)})
		case LineTo:
			cmds = append(cmds, LineTo{Point: apply(c.Point)})
		case CubicTo:
			cmds = append(cmds, CubicTo{
				Control1: apply(c.Control1),
				Control2: apply(c.Control2),
				Point:    apply(c.Point),
			})
		case Close:
			cmds = append(cmds, c)
		}
	}
	return VectorPath{WindingRule: p.WindingRule, Commands: cmds}
}

// Translate returns the matrix that moves points by (tx, ty).
func Translate(tx, ty float64) f64.Aff3 {
	return f64.Aff3{1, 0, tx, 0, 1, ty}
}

// Scale returns the matrix that scales points by (sx, sy) around the origin.
func Scale(sx, sy float64) f64.Aff3 {
	return f64.Aff3{sx, 0, 0, 0, sy, 0}
}

// Rotate returns the matrix that rotates points by angle radians around the
// origin.
func Rotate(angle float64) f64.Aff3 {
	sin, cos := math.Sincos(angle)
	return f64.Aff3{cos, -sin, 0, sin, cos, 0}
}

// endPoint returns the point a command moves the pen to. Close has none.
func endPoint(cmd PathCommand) (Point, bool) {
	switch c := cmd.(type) {
	case MoveTo:
		return c.Point, true
	case LineTo:
		return c.Point, true
	case CubicTo:
		return c.Point, true
	default:
		return Point{}, false
	}
}

// polygonPath encodes a closed polygon as M L* Z.
func polygonPath(rule WindingRule, points []Point) VectorPath {
	cmds := make([]PathCommand, 0, len(points)+1)
	cmds = append(cmds, MoveTo{Point: points[0]})
	for _, pt := range points[1:] {
		cmds = append(cmds, LineTo{Point: pt})
	}
	cmds = append(cmds, Close{})
	return VectorPath{WindingRule: rule, Commands: cmds}
}

// polylinePath encodes an open polyline as M L*.
func polylinePath(rule WindingRule, points []Point) VectorPath {
	cmds := make([]PathCommand, 0, len(points))
	cmds = append(cmds, MoveTo{Point: points[0]})
	for _, pt := range points[1:] {
		cmds = append(cmds, LineTo{Point: pt})
	}
	return VectorPath{WindingRule: rule, Commands: cmds}
}
