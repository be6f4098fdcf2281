// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pathkit

import (
	"github.com/gogpu/pathkit/internal/flatten"
	"github.com/gogpu/pathkit/internal/geom"
)

// Arc-length queries. All three flatten the path once and scan the segments
// linearly, so they are O(n) in the flattened segment count.

// PathLength returns the arc length of the flattened path.
// An empty path has length 0.
func PathLength(path VectorPath, opts ...Option) float64 {
	o := resolveOptions(flatten.DefaultMaxDepth, opts)
	return totalLength(pathToSegments(path, o.tolerance, o.maxDepth))
}

func totalLength(segments []Segment) float64 {
	var total float64
	for _, s := range segments {
		total += s.Length
	}
	return total
}

// PointAtLength returns the point at the given distance along the path.
//
// Lengths at or before 0 return the first point and lengths beyond the total
// return the last point. ok is false when the path has no segments, which
// covers empty and move-only paths, matching PathLength returning 0 and
// TangentAtLength reporting false.
func PointAtLength(path VectorPath, length float64, opts ...Option) (pt Point, ok bool) {
	o := resolveOptions(flatten.DefaultMaxDepth, opts)
	segments := pathToSegments(path, o.tolerance, o.maxDepth)
	if len(segments) == 0 {
		return Point{}, false
	}
	if length <= 0 {
		return segments[0].Start, true
	}

	var acc float64
	for _, s := range segments {
		if acc+s.Length >= length {
			return s.At((length - acc) / s.Length), true
		}
		acc += s.Length
	}
	return segments[len(segments)-1].End, true
}

// TangentAtLength returns the unit direction of the path at the given
// distance.
//
// Zero-length segments never define a tangent. Past the end of the path the
// direction of the last segment is returned. ok is false when the path has
// no segment with a well-defined direction.
func TangentAtLength(path VectorPath, length float64, opts ...Option) (dir Point, ok bool) {
	o := resolveOptions(flatten.DefaultMaxDepth, opts)
	segments := pathToSegments(path, o.tolerance, o.maxDepth)

	var acc float64
	for _, s := range segments {
		if s.Length <= geom.Epsilon {
			continue
		}
		dir, ok = s.End.Sub(s.Start).Mul(1/s.Length), true
		if acc+s.Length >= length {
			return dir, true
		}
		acc += s.Length
	}
	return dir, ok
}
