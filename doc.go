// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package pathkit provides the vector-geometry kernel of a design tool:
// offsetting, dashing and arc-length queries on vector paths.
//
// # Overview
//
// A VectorPath is a winding rule plus a list of MoveTo, LineTo, CubicTo and
// Close commands. Every operation takes a path by value, leaves it untouched
// and returns freshly allocated results, so all functions are safe to call
// concurrently.
//
// # Quick Start
//
//	import "github.com/gogpu/pathkit"
//
//	square := pathkit.BuildPath(pathkit.NonZero).Rect(0, 0, 100, 100).Build()
//
//	// Grow the shape by 8 units with rounded corners
//	res := pathkit.OffsetPath(square, pathkit.OffsetConfig{
//	    Distance:  8,
//	    JoinStyle: pathkit.JoinRound,
//	})
//	if !res.Success {
//	    log.Printf("offset failed: %v", res.Err)
//	}
//
//	// Split the outline into 10-unit dashes with 5-unit gaps
//	dashes := pathkit.ApplyDashPattern(square, pathkit.NewDashConfig(10, 5))
//
//	// Walk along the path
//	mid, _ := pathkit.PointAtLength(square, pathkit.PathLength(square)/2)
//
// # Architecture
//
// The library is organized into:
//   - Public API: VectorPath, OffsetPath, ApplyDashPattern, PathLength,
//     PointAtLength, TangentAtLength
//   - Internal: geom (point math), flatten (cubic subdivision),
//     offset (polygon offset engine)
//   - Tooling: the pathkit command (cmd/pathkit) runs these operations on
//     JSON documents or SVG path data
//
// Curves are flattened by recursive subdivision with a flatness tolerance
// (default 0.5) and an explicit depth bound, so every call terminates in
// time proportional to path complexity.
//
// # Coordinate System
//
// Coordinates are plain float64 values. Signed areas follow the shoelace
// formula: positive for counter-clockwise paths in a y-up frame, which is
// clockwise on a y-down screen. Offsetting is winding-independent: a
// positive distance always grows the shape.
package pathkit
