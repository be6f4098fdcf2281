// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pathkit

import (
	"github.com/gogpu/pathkit/internal/flatten"
	"github.com/gogpu/pathkit/internal/offset"
)

const (
	// DefaultTolerance is the curve flattening tolerance, in the same units
	// as the path coordinates (pixels for scene geometry).
	DefaultTolerance = flatten.DefaultTolerance

	// DefaultMiterLimit is the miter limit used when none is given.
	DefaultMiterLimit = offset.DefaultMiterLimit
)

// Option configures curve flattening for measurement and flattening
// functions.
//
// Example:
//
//	// Measure with a finer tolerance than the default 0.5
//	l := pathkit.PathLength(p, pathkit.WithTolerance(0.05))
type Option func(*options)

// options holds the flattening parameters shared by the query functions.
type options struct {
	tolerance float64
	maxDepth  int
}

// WithTolerance sets the flatness tolerance. Non-positive values are
// ignored.
func WithTolerance(tolerance float64) Option {
	return func(o *options) {
		if tolerance > 0 {
			o.tolerance = tolerance
		}
	}
}

// WithMaxDepth bounds the recursive curve subdivision depth. Non-positive
// values are ignored.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		if depth > 0 {
			o.maxDepth = depth
		}
	}
}

// resolveOptions applies opts on top of the default tolerance and the given
// default depth.
func resolveOptions(defaultDepth int, opts []Option) options {
	o := options{
		tolerance: DefaultTolerance,
		maxDepth:  defaultDepth,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
