// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package offset moves closed polygons inward or outward by a signed
// distance.
//
// # Algorithm Overview
//
// Every vertex is displaced along the normals of its two adjacent edges. The
// edge normal is the edge direction rotated 90 degrees counter-clockwise.
// That normal points into a counter-clockwise polygon and out of a clockwise
// one, so the distance is negated for counter-clockwise input: a positive
// distance always grows the shape.
//
// # Joins
//
// Where the two edge normals differ, the corner is resolved by the join
// style:
//   - JoinMiter: one point on the bisector at distance d/cos(θ/2), as long
//     as 1/cos(θ/2) stays within the miter limit
//   - JoinRound: an arc of points (about six per radian) on convex turns
//   - JoinBevel: the two edge-offset points, bridged by a flat edge
//
// Miters over the limit and round joins on concave turns fall back to bevel.
//
// # Limitations
//
// Self-intersections are not detected. Offsetting inward past a shape's
// medial axis yields self-overlapping output; callers that need clean
// geometry must run a Boolean union on the result.
package offset
