// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"flag"
	"fmt"
	"image/color"
	"io"
	"os"
	"strings"

	"github.com/gogpu/pathkit"
	"github.com/gogpu/pathkit/internal/pathjson"
	"github.com/gogpu/pathkit/internal/preview"
	"github.com/gogpu/pathkit/internal/svgpath"
)

// Preview colors.
var (
	sourceColor = color.NRGBA{R: 0xb0, G: 0xb0, B: 0xb0, A: 0xff}
	resultColor = color.NRGBA{R: 0xd0, G: 0x20, B: 0x20, A: 0xff}
)

type inputFlags struct {
	data string
	rule string
}

func addInputFlags(fs *flag.FlagSet) *inputFlags {
	in := &inputFlags{}
	fs.StringVar(&in.data, "d", "", "inline SVG path data instead of a JSON document")
	fs.StringVar(&in.rule, "rule", "nonzero", "winding rule for -d: nonzero or evenodd")
	return in
}

type outputFlags struct {
	format string
	png    string
}

func addOutputFlags(fs *flag.FlagSet) *outputFlags {
	out := &outputFlags{}
	fs.StringVar(&out.format, "format", "json", "output format: json or svg")
	fs.StringVar(&out.png, "png", "", "also render a PNG preview to this file")
	return out
}

func (o *outputFlags) validate() error {
	switch o.format {
	case "json", "svg":
		return nil
	default:
		return fmt.Errorf("%w: unknown format %q", errUsage, o.format)
	}
}

func parseRule(s string) (pathkit.WindingRule, error) {
	switch strings.ToLower(s) {
	case "nonzero":
		return pathkit.NonZero, nil
	case "evenodd":
		return pathkit.EvenOdd, nil
	default:
		return pathkit.NonZero, fmt.Errorf("%w: unknown winding rule %q", errUsage, s)
	}
}

// readPaths loads the command input: -d, a single file argument, or stdin.
func (a *app) readPaths(in *inputFlags, fs *flag.FlagSet) ([]pathkit.VectorPath, error) {
	if in.data != "" {
		if fs.NArg() > 0 {
			return nil, fmt.Errorf("%w: -d cannot be combined with a file argument", errUsage)
		}
		rule, err := parseRule(in.rule)
		if err != nil {
			return nil, err
		}
		p, err := svgpath.Parse(in.data, rule)
		if err != nil {
			return nil, err
		}
		return []pathkit.VectorPath{p}, nil
	}

	switch fs.NArg() {
	case 0:
		return readDocuments("stdin", a.stdin)
	case 1:
		if fs.Arg(0) == "-" {
			return readDocuments("stdin", a.stdin)
		}
		return readFile(fs.Arg(0))
	default:
		return nil, fmt.Errorf("%w: expected at most one input file, got %d", errUsage, fs.NArg())
	}
}

func readFile(name string) ([]pathkit.VectorPath, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readDocuments(name, f)
}

func readDocuments(name string, r io.Reader) ([]pathkit.VectorPath, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	paths, err := pathjson.DecodeAll(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return paths, nil
}

// writePaths prints paths to stdout in the selected format.
func (a *app) writePaths(out *outputFlags, paths []pathkit.VectorPath) error {
	if out.format == "svg" {
		for _, p := range paths {
			if _, err := fmt.Fprintln(a.stdout, svgpath.Format(p)); err != nil {
				return err
			}
		}
		return nil
	}
	data, err := pathjson.Encode(paths)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(a.stdout, "%s\n", data)
	return err
}

// writePreview renders the layers to out.png when it is set.
func (a *app) writePreview(out *outputFlags, layers ...preview.Layer) error {
	if out.png == "" {
		return nil
	}
	f, err := os.Create(out.png)
	if err != nil {
		return err
	}
	img := preview.Render(preview.DefaultOptions(), layers...)
	if err := preview.WritePNG(f, img); err != nil {
		f.Close()
		return fmt.Errorf("write preview %s: %w", out.png, err)
	}
	a.log.Info("preview written", "file", out.png)
	return f.Close()
}
