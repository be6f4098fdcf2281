// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package svgpath converts between VectorPath values and SVG path data
// strings (the "d" attribute).
//
// Parsing covers the full path grammar, elliptical arcs included, through
// github.com/tdewolff/canvas; the result is reduced to MoveTo, LineTo,
// CubicTo and Close commands.
package svgpath

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tdewolff/canvas"

	"github.com/gogpu/pathkit"
)

// ErrSyntax is returned for malformed path data.
var ErrSyntax = errors.New("svgpath: syntax error")

// Format writes the path as absolute SVG path data.
func Format(p pathkit.VectorPath) string {
	var b strings.Builder
	for _, cmd := range p.Commands {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		switch c := cmd.(type) {
		case pathkit.MoveTo:
			b.WriteByte('M')
			writePoint(&b, c.Point)
		case pathkit.LineTo:
			b.WriteByte('L')
			writePoint(&b, c.Point)
		case pathkit.CubicTo:
			b.WriteByte('C')
			writePoint(&b, c.Control1)
			b.WriteByte(' ')
			writePoint(&b, c.Control2)
			b.WriteByte(' ')
			writePoint(&b, c.Point)
		case pathkit.Close:
			b.WriteByte('Z')
		}
	}
	return b.String()
}

func writePoint(b *strings.Builder, p pathkit.Point) {
	b.WriteString(strconv.FormatFloat(p.X, 'f', -1, 64))
	b.WriteByte(' ')
	b.WriteString(strconv.FormatFloat(p.Y, 'f', -1, 64))
}

// Parse reads SVG path data into a path with the given winding rule.
//
// Elliptical arcs are replaced by cubic approximations and quadratic curves
// are elevated to cubics. Zero-length segments are dropped, consecutive
// collinear lines merge into one, and a final line back to the sub-path
// start is folded into its Close.
func Parse(d string, rule pathkit.WindingRule) (pathkit.VectorPath, error) {
	d = strings.TrimLeft(d, separators)
	if d == "" {
		return pathkit.NewVectorPath(rule), nil
	}
	if d[0] != 'M' && d[0] != 'm' {
		return pathkit.VectorPath{}, fmt.Errorf("%w: path data must start with a moveto, found %q", ErrSyntax, d[0])
	}

	cp, err := canvas.ParseSVG(d)
	if err != nil {
		return pathkit.VectorPath{}, fmt.Errorf("%w: %v", ErrSyntax, err)
	}

	b := pathkit.BuildPath(rule)
	for _, seg := range cp.ReplaceArcs().Segments() {
		switch seg.Cmd {
		case canvas.MoveToCmd:
			b.MoveTo(seg.End.X, seg.End.Y)
		case canvas.LineToCmd:
			b.LineTo(seg.End.X, seg.End.Y)
		case canvas.QuadToCmd:
			// Degree elevation: cubic controls lie 2/3 of the way to the
			// quadratic control.
			start, q, end := point(seg.Start), point(seg.CP1()), point(seg.End)
			c1 := start.Lerp(q, 2.0/3)
			c2 := end.Lerp(q, 2.0/3)
			b.CubicTo(c1.X, c1.Y, c2.X, c2.Y, end.X, end.Y)
		case canvas.CubeToCmd:
			c1, c2 := seg.CP1(), seg.CP2()
			b.CubicTo(c1.X, c1.Y, c2.X, c2.Y, seg.End.X, seg.End.Y)
		case canvas.CloseCmd:
			b.Close()
		default:
			return pathkit.VectorPath{}, fmt.Errorf("%w: unexpected segment command %v", ErrSyntax, seg.Cmd)
		}
	}
	return b.Build(), nil
}

const separators = " \t\n\r\f,"

func point(p canvas.Point) pathkit.Point {
	return pathkit.Pt(p.X, p.Y)
}
