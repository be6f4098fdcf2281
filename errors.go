// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pathkit

import "errors"

var (
	// ErrInvalidConfig reports an offset configuration that cannot produce
	// geometry, such as a NaN or infinite distance.
	ErrInvalidConfig = errors.New("pathkit: invalid offset configuration")

	// ErrNonFiniteGeometry reports NaN or infinite coordinates in the input
	// path or in the computed offset.
	ErrNonFiniteGeometry = errors.New("pathkit: non-finite geometry")
)
