// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pathkit

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/gogpu/pathkit/internal/flatten"
	"github.com/gogpu/pathkit/internal/offset"
)

// JoinStyle specifies how offset edges meet at path corners.
type JoinStyle int

const (
	// JoinMiter extends both edges to a sharp point, falling back to a bevel
	// when the miter limit is exceeded.
	JoinMiter JoinStyle = iota
	// JoinBevel connects the edges with a straight line across the corner.
	JoinBevel
	// JoinRound connects the edges with a circular arc on convex corners.
	JoinRound
)

// String returns the lower-case join name.
func (j JoinStyle) String() string {
	switch j {
	case JoinMiter:
		return "miter"
	case JoinBevel:
		return "bevel"
	case JoinRound:
		return "round"
	default:
		return fmt.Sprintf("JoinStyle(%d)", int(j))
	}
}

// toInternal converts a JoinStyle to the offset engine's join.
func (j JoinStyle) toInternal() offset.Join {
	switch j {
	case JoinBevel:
		return offset.JoinBevel
	case JoinRound:
		return offset.JoinRound
	default:
		return offset.JoinMiter
	}
}

// OffsetConfig configures OffsetPath.
type OffsetConfig struct {
	// Distance is the signed offset: positive grows the shape outward,
	// negative shrinks it inward.
	Distance float64

	// JoinStyle selects the corner treatment. Default: JoinMiter.
	JoinStyle JoinStyle

	// MiterLimit is the maximum ratio of miter length to offset distance
	// before a miter join becomes a bevel. Zero selects DefaultMiterLimit;
	// values below 1 are treated as 1.
	MiterLimit float64

	// Tolerance is the curve flattening tolerance. Zero selects
	// DefaultTolerance.
	Tolerance float64
}

// OffsetResult holds the outcome of an offset operation.
//
// A single input path may produce several output paths, one per closed
// sub-path that survives offsetting.
type OffsetResult struct {
	Paths   []VectorPath
	Success bool
	Err     error
}

// withDefaults fills zero-valued fields.
func (c OffsetConfig) withDefaults() OffsetConfig {
	if c.MiterLimit <= 0 {
		c.MiterLimit = DefaultMiterLimit
	}
	c.MiterLimit = math.Max(1, c.MiterLimit)
	if c.Tolerance <= 0 {
		c.Tolerance = DefaultTolerance
	}
	return c
}

// validate reports configuration values that cannot produce geometry.
func (c OffsetConfig) validate() error {
	switch {
	case math.IsNaN(c.Distance) || math.IsInf(c.Distance, 0):
		return fmt.Errorf("%w: distance %v", ErrInvalidConfig, c.Distance)
	case math.IsNaN(c.MiterLimit):
		return fmt.Errorf("%w: miter limit %v", ErrInvalidConfig, c.MiterLimit)
	case math.IsNaN(c.Tolerance) || math.IsInf(c.Tolerance, 0):
		return fmt.Errorf("%w: tolerance %v", ErrInvalidConfig, c.Tolerance)
	}
	return nil
}

// OffsetPath moves every closed region of the path outward (positive
// distance) or inward (negative distance).
//
// Each sub-path is flattened to a polygon and offset independently; the
// surviving polygons are returned as closed M L* Z paths carrying the input
// winding rule. Zero distance returns the input path itself. Sub-paths that
// bound no area are skipped silently.
//
// Failures never panic: invalid configuration and non-finite geometry are
// reported through Success=false and Err, so callers processing many paths
// per frame can skip the failing one.
//
// Self-intersections produced by inward offsets past the shape's medial axis
// are not resolved.
func OffsetPath(path VectorPath, cfg OffsetConfig) OffsetResult {
	if err := cfg.validate(); err != nil {
		return offsetFailure(err)
	}
	if cfg.Distance == 0 {
		return OffsetResult{Paths: []VectorPath{path}, Success: true}
	}
	cfg = cfg.withDefaults()

	polygons := pathToPolygons(path, cfg.Tolerance, flatten.DefaultMaxDepth)
	paths := make([]VectorPath, 0, len(polygons))
	join := cfg.JoinStyle.toInternal()
	for i, poly := range polygons {
		if !allFinite(poly) {
			return offsetFailure(fmt.Errorf("%w: sub-path %d of input", ErrNonFiniteGeometry, i))
		}
		out := offset.Polygon(poly, cfg.Distance, join, cfg.MiterLimit)
		if len(out) < 3 {
			continue
		}
		if !allFinite(out) {
			return offsetFailure(fmt.Errorf("%w: offset of sub-path %d", ErrNonFiniteGeometry, i))
		}
		paths = append(paths, polygonPath(path.WindingRule, out))
	}

	Logger().Debug("path offset",
		slog.Float64("distance", cfg.Distance),
		slog.String("join", cfg.JoinStyle.String()),
		slog.Int("polygons", len(polygons)),
		slog.Int("paths", len(paths)))
	return OffsetResult{Paths: paths, Success: true}
}

func offsetFailure(err error) OffsetResult {
	Logger().Warn("path offset failed", slog.Any("error", err))
	return OffsetResult{Paths: []VectorPath{}, Success: false, Err: err}
}

func allFinite(points []Point) bool {
	for _, p := range points {
		if !p.IsFinite() {
			return false
		}
	}
	return true
}
