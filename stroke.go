// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pathkit

import "fmt"

// StrokeAlignment positions a stroke relative to the path geometry.
type StrokeAlignment int

const (
	// StrokeCenter centers the stroke on the path.
	StrokeCenter StrokeAlignment = iota
	// StrokeInside places the stroke entirely inside the shape.
	StrokeInside
	// StrokeOutside places the stroke entirely outside the shape.
	StrokeOutside
)

// String returns the upper-case alignment name.
func (a StrokeAlignment) String() string {
	switch a {
	case StrokeCenter:
		return "CENTER"
	case StrokeInside:
		return "INSIDE"
	case StrokeOutside:
		return "OUTSIDE"
	default:
		return fmt.Sprintf("StrokeAlignment(%d)", int(a))
	}
}

// StrokeOutline holds the two boundaries of a stroke.
// The ring between them is the stroked area; building it as a fill requires
// subtracting Inner from Outer, which this package does not do.
type StrokeOutline struct {
	Outer OffsetResult
	Inner OffsetResult
}

// OffsetForStrokeAlignment returns the path a stroke of the given weight
// should be centered on so that it renders with the given alignment.
//
// Inside offsets by -weight/2, Outside by +weight/2, and Center returns the
// path unchanged.
func OffsetForStrokeAlignment(path VectorPath, strokeWeight float64, alignment StrokeAlignment, join JoinStyle, miterLimit float64) OffsetResult {
	half := strokeWeight / 2
	var distance float64
	switch alignment {
	case StrokeInside:
		distance = -half
	case StrokeOutside:
		distance = half
	}
	return OffsetPath(path, OffsetConfig{
		Distance:   distance,
		JoinStyle:  join,
		MiterLimit: miterLimit,
	})
}

// CreateStrokeOutline offsets the path by +weight/2 and -weight/2 and
// returns both results uncombined.
func CreateStrokeOutline(path VectorPath, strokeWeight float64, join JoinStyle, miterLimit float64) StrokeOutline {
	half := strokeWeight / 2
	cfg := OffsetConfig{JoinStyle: join, MiterLimit: miterLimit}

	outer := cfg
	outer.Distance = half
	inner := cfg
	inner.Distance = -half

	return StrokeOutline{
		Outer: OffsetPath(path, outer),
		Inner: OffsetPath(path, inner),
	}
}
