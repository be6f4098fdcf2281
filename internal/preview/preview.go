// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package preview rasterizes paths to a PNG image for quick visual checks
// of offset and dash results.
//
// All layers are fitted into the image together, so their relative
// placement is preserved. Closed shapes are filled; open paths such as
// dashes are stroked with a fixed pixel width.
package preview

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/gogpu/pathkit"
)

// Mode selects how a layer is painted.
type Mode int

const (
	// Fill paints the interior of each path using the nonzero rule.
	Fill Mode = iota
	// Stroke paints each flattened segment as a line of Options.StrokeWidth
	// pixels.
	Stroke
)

// Layer is a group of paths painted with one color.
type Layer struct {
	Paths []pathkit.VectorPath
	Color color.Color
	Mode  Mode
}

// Options controls the output image.
type Options struct {
	Width, Height int
	Margin        float64 // pixels kept free on every side
	StrokeWidth   float64 // pixels
	Background    color.Color
}

// DefaultOptions returns a 512x512 white canvas.
func DefaultOptions() Options {
	return Options{
		Width:       512,
		Height:      512,
		Margin:      16,
		StrokeWidth: 2,
		Background:  color.White,
	}
}

// Canvas paints layers into an RGBA image.
type Canvas struct {
	img   *image.RGBA
	opts  Options
	r     vector.Rasterizer
	scale float64
	dx    float64
	dy    float64
}

// NewCanvas creates a canvas whose coordinate mapping fits bounds.
func NewCanvas(opts Options, bounds pathkit.Rect) *Canvas {
	if opts.Width <= 0 || opts.Height <= 0 {
		d := DefaultOptions()
		opts.Width, opts.Height = d.Width, d.Height
	}
	if opts.Background == nil {
		opts.Background = color.White
	}
	if opts.StrokeWidth <= 0 {
		opts.StrokeWidth = 1
	}

	c := &Canvas{
		img:  image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height)),
		opts: opts,
	}
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)
	c.fit(bounds)
	return c
}

// fit computes a uniform scale and offset that centers bounds in the
// drawable area.
func (c *Canvas) fit(b pathkit.Rect) {
	availW := float64(c.opts.Width) - 2*c.opts.Margin
	availH := float64(c.opts.Height) - 2*c.opts.Margin
	w, h := b.Width(), b.Height()

	c.scale = 1
	switch {
	case w > 0 && h > 0:
		c.scale = math.Min(availW/w, availH/h)
	case w > 0:
		c.scale = availW / w
	case h > 0:
		c.scale = availH / h
	}
	if !(c.scale > 0) || math.IsInf(c.scale, 0) {
		c.scale = 1
	}
	c.dx = float64(c.opts.Width)/2 - (b.Min.X+w/2)*c.scale
	c.dy = float64(c.opts.Height)/2 - (b.Min.Y+h/2)*c.scale
}

func (c *Canvas) project(p pathkit.Point) (float32, float32) {
	return float32(p.X*c.scale + c.dx), float32(p.Y*c.scale + c.dy)
}

// Image returns the painted image.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Draw paints one layer.
func (c *Canvas) Draw(l Layer) {
	col := l.Color
	if col == nil {
		col = color.Black
	}
	src := image.NewUniform(col)
	for _, p := range l.Paths {
		c.r.Reset(c.opts.Width, c.opts.Height)
		switch l.Mode {
		case Stroke:
			c.addStroke(p)
		default:
			c.addFill(p)
		}
		c.r.Draw(c.img, c.img.Bounds(), src, image.Point{})
	}
}

// addFill adds every sub-path to the rasterizer, closing each one.
func (c *Canvas) addFill(p pathkit.VectorPath) {
	open := false
	for _, cmd := range p.Commands {
		switch cmd := cmd.(type) {
		case pathkit.MoveTo:
			if open {
				c.r.ClosePath()
			}
			c.r.MoveTo(c.project(cmd.Point))
			open = true
		case pathkit.LineTo:
			c.r.LineTo(c.project(cmd.Point))
		case pathkit.CubicTo:
			ax, ay := c.project(cmd.Control1)
			bx, by := c.project(cmd.Control2)
			x, y := c.project(cmd.Point)
			c.r.CubeTo(ax, ay, bx, by, x, y)
		case pathkit.Close:
			if open {
				c.r.ClosePath()
			}
			open = false
		}
	}
	if open {
		c.r.ClosePath()
	}
}

// addStroke adds one quad per flattened segment.
func (c *Canvas) addStroke(p pathkit.VectorPath) {
	half := c.opts.StrokeWidth / 2 / c.scale
	for _, s := range pathkit.PathToSegments(p, pathkit.DefaultTolerance/c.scale) {
		n := s.End.Sub(s.Start).Perp().Normalize().Mul(half)
		c.r.MoveTo(c.project(s.Start.Add(n)))
		c.r.LineTo(c.project(s.End.Add(n)))
		c.r.LineTo(c.project(s.End.Sub(n)))
		c.r.LineTo(c.project(s.Start.Sub(n)))
		c.r.ClosePath()
	}
}

// Render fits all layers into one image and paints them in order.
func Render(opts Options, layers ...Layer) *image.RGBA {
	bounds := pathkit.Rect{}
	first := true
	for _, l := range layers {
		for _, p := range l.Paths {
			if p.IsEmpty() {
				continue
			}
			b := p.Bounds()
			if first {
				bounds, first = b, false
			} else {
				bounds = bounds.Union(b)
			}
		}
	}
	c := NewCanvas(opts, bounds)
	for _, l := range layers {
		c.Draw(l)
	}
	return c.Image()
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}
