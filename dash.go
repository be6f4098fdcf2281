// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pathkit

import (
	"log/slog"
	"math"

	"github.com/gogpu/pathkit/internal/flatten"
)

// dashEpsilon treats near-equal remaining lengths as exact boundaries so
// floating-point drift does not produce sliver dashes.
const dashEpsilon = 1e-10

// maxDashSteps bounds the pattern elements one ApplyDashPattern call walks.
// A pattern that would need more than this over the path length produces no
// dashes.
const maxDashSteps = 1 << 22

// DashConfig defines a dash pattern applied along a path.
// A dash pattern consists of alternating dash and gap lengths.
// For example, [5, 3] creates a pattern of 5 units dash, 3 units gap.
type DashConfig struct {
	// Pattern contains alternating dash/gap lengths.
	// Negative lengths are treated as 0. If the pattern has an odd number of
	// elements, it is logically duplicated to create an even-length pattern
	// (e.g., [5] becomes [5, 5]).
	Pattern []float64

	// Offset is the distance into the pattern at which the path starts.
	// Negative offsets wrap around.
	Offset float64

	// Tolerance is the curve flattening tolerance. Zero selects
	// DefaultTolerance.
	Tolerance float64
}

// DashResult holds the dashes produced by ApplyDashPattern.
type DashResult struct {
	// Paths contains one open polyline (M L*) per visible dash.
	Paths []VectorPath

	// TotalLength is the flattened length of the input path.
	TotalLength float64
}

// NewDashConfig creates a dash configuration from alternating dash/gap
// lengths.
//
// Examples:
//
//	NewDashConfig(5, 3)        // 5 units dash, 3 units gap
//	NewDashConfig(10, 5, 2, 5) // 10 dash, 5 gap, 2 dash, 5 gap
//	NewDashConfig(5)           // equivalent to [5, 5]
func NewDashConfig(lengths ...float64) DashConfig {
	pattern := make([]float64, len(lengths))
	copy(pattern, lengths)
	return DashConfig{Pattern: pattern}
}

// WithOffset returns a copy of the configuration with the given offset.
func (c DashConfig) WithOffset(offset float64) DashConfig {
	c.Offset = offset
	return c
}

// PatternLength returns the total length of one complete pattern cycle
// after normalization.
func (c DashConfig) PatternLength() float64 {
	var total float64
	for _, l := range normalizePattern(c.Pattern) {
		total += l
	}
	return total
}

// IsDashed reports whether the pattern produces a dashed (not solid) line.
func (c DashConfig) IsDashed() bool {
	return c.PatternLength() > 0
}

// Scale returns a copy with all lengths and the offset multiplied by factor.
// Dash lengths are in path units, so they scale with the path geometry.
// Non-positive factors return c unchanged.
func (c DashConfig) Scale(factor float64) DashConfig {
	if factor <= 0 {
		return c
	}
	pattern := make([]float64, len(c.Pattern))
	for i, l := range c.Pattern {
		pattern[i] = l * factor
	}
	c.Pattern = pattern
	c.Offset *= factor
	return c
}

// normalizePattern clamps negative lengths to zero and duplicates odd-length
// patterns. The result never aliases the input.
func normalizePattern(pattern []float64) []float64 {
	if len(pattern) == 0 {
		return nil
	}
	n := len(pattern)
	if n%2 != 0 {
		n *= 2
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Max(0, pattern[i%len(pattern)])
	}
	return out
}

// dashCursor tracks the position inside the dash pattern.
type dashCursor struct {
	pattern   []float64
	index     int
	remaining float64
}

// newDashCursor positions the cursor where drawing would be had it started
// offset units earlier.
func newDashCursor(pattern []float64, patternLen, offset float64) dashCursor {
	offset = math.Mod(offset, patternLen)
	if offset < 0 {
		offset += patternLen
	}
	c := dashCursor{pattern: pattern}
	for i := 0; i < len(pattern); i++ {
		if offset < pattern[c.index] {
			break
		}
		offset -= pattern[c.index]
		c.index = (c.index + 1) % len(pattern)
	}
	c.remaining = math.Max(0, pattern[c.index]-offset)
	return c
}

// inDash reports whether the active element is a dash (even index).
func (c *dashCursor) inDash() bool {
	return c.index%2 == 0
}

// advance moves to the next pattern element.
func (c *dashCursor) advance() {
	c.index = (c.index + 1) % len(c.pattern)
	c.remaining = c.pattern[c.index]
}

// ApplyDashPattern splits the path into one open path per visible dash.
//
// An empty pattern returns the input path unchanged with TotalLength 0. A
// pattern whose normalized length is not positive returns no paths. A
// pattern so short that covering the path would take more than
// maxDashSteps elements returns no paths but still reports TotalLength. The
// pattern runs continuously across segment, curve and sub-path boundaries;
// a dash never bridges the jump between two sub-paths. Every returned path
// keeps the input winding rule.
func ApplyDashPattern(path VectorPath, cfg DashConfig) DashResult {
	if len(cfg.Pattern) == 0 {
		return DashResult{Paths: []VectorPath{path}}
	}
	pattern := normalizePattern(cfg.Pattern)
	patternLen := cfg.PatternLength()
	if patternLen <= 0 || math.IsInf(patternLen, 0) || math.IsNaN(patternLen) {
		return DashResult{}
	}

	segments := pathToSegments(path, cfg.Tolerance, flatten.DefaultMaxDepth)
	result := DashResult{TotalLength: totalLength(segments)}

	if steps := (result.TotalLength/patternLen + 1) * float64(len(pattern)); steps > maxDashSteps {
		Logger().Warn("dash pattern too dense",
			slog.Float64("length", result.TotalLength),
			slog.Float64("pattern", patternLen),
			slog.Float64("steps", steps))
		return result
	}

	cursor := newDashCursor(pattern, patternLen, cfg.Offset)
	var dash []Point
	flush := func() {
		if len(dash) >= 2 {
			result.Paths = append(result.Paths, polylinePath(path.WindingRule, dash))
		}
		dash = nil
	}

	for _, seg := range segments {
		if n := len(dash); n > 0 && !dash[n-1].Approx(seg.Start, dashEpsilon) {
			// Sub-path jump: end the open dash, the phase carries on.
			flush()
		}
		pos := 0.0
		for seg.Length-pos > dashEpsilon {
			if cursor.remaining <= dashEpsilon {
				if cursor.inDash() {
					flush()
				}
				cursor.advance()
				continue
			}
			step := math.Min(seg.Length-pos, cursor.remaining)
			if cursor.inDash() {
				if len(dash) == 0 {
					dash = append(dash, seg.At(pos/seg.Length))
				}
				dash = append(dash, seg.At((pos+step)/seg.Length))
			}
			pos += step
			cursor.remaining -= step
		}
	}
	flush()

	Logger().Debug("dash pattern applied",
		slog.Int("segments", len(segments)),
		slog.Int("dashes", len(result.Paths)),
		slog.Float64("length", result.TotalLength))
	return result
}
