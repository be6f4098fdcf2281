// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package geom

import (
	"math"
	"testing"
)

func TestLineDistance(t *testing.T) {
	tests := []struct {
		name    string
		p, a, b Point
		want    float64
	}{
		{"above horizontal", Pt(5, 3), Pt(0, 0), Pt(10, 0), 3},
		{"below horizontal", Pt(5, -3), Pt(0, 0), Pt(10, 0), 3},
		{"beyond segment end uses infinite line", Pt(20, 4), Pt(0, 0), Pt(10, 0), 4},
		{"on line", Pt(2, 2), Pt(0, 0), Pt(4, 4), 0},
		{"degenerate chord", Pt(3, 4), Pt(0, 0), Pt(0, 0), 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LineDistance(tt.p, tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("LineDistance() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSignedArea(t *testing.T) {
	ccw := []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	if got := SignedArea(ccw); got != 100 {
		t.Errorf("SignedArea(ccw) = %v, want 100", got)
	}
	cw := []Point{{0, 0}, {0, 10}, {10, 10}, {10, 0}}
	if got := SignedArea(cw); got != -100 {
		t.Errorf("SignedArea(cw) = %v, want -100", got)
	}
	if got := SignedArea(ccw[:2]); got != 0 {
		t.Errorf("SignedArea(2 points) = %v, want 0", got)
	}
}

func TestPointNormalize(t *testing.T) {
	if got := Pt(3, 4).Normalize(); !got.Approx(Pt(0.6, 0.8), 1e-12) {
		t.Errorf("Normalize() = %v", got)
	}
	if got := Pt(1e-12, 0).Normalize(); got != (Point{}) {
		t.Errorf("Normalize() of tiny vector = %v, want zero", got)
	}
}

func TestPointIsFinite(t *testing.T) {
	if !Pt(1, 2).IsFinite() {
		t.Error("finite point reported non-finite")
	}
	if Pt(math.NaN(), 0).IsFinite() || Pt(0, math.Inf(-1)).IsFinite() {
		t.Error("non-finite point reported finite")
	}
}

func TestPointPerp(t *testing.T) {
	if got := Pt(1, 0).Perp(); got != Pt(0, 1) {
		t.Errorf("Perp() = %v, want (0,1)", got)
	}
}
