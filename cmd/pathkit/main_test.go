// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/pathkit"
	"github.com/gogpu/pathkit/internal/config"
	"github.com/gogpu/pathkit/internal/pathjson"
	"github.com/gogpu/pathkit/internal/svgpath"
)

const (
	squareD   = "M0 0 L100 0 L100 100 L0 100 Z"
	squareDoc = `{"commands": [
		{"type": "M", "x": 0, "y": 0},
		{"type": "L", "x": 100, "y": 0},
		{"type": "L", "x": 100, "y": 100},
		{"type": "L", "x": 0, "y": 100},
		{"type": "Z"}
	]}`
)

type result struct {
	stdout string
	stderr string
	err    error
}

// pathkitCmd runs the command with an isolated config and environment.
func pathkitCmd(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	for _, k := range []string{
		config.EnvTolerance, config.EnvMiterLimit, config.EnvJoin,
		config.EnvLogLevel, config.EnvLogFormat, config.EnvLogFile,
	} {
		t.Setenv(k, "")
	}
	cfg := filepath.Join(t.TempDir(), "absent.yaml")
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), append([]string{"-config", cfg}, args...),
		strings.NewReader(stdin), &stdout, &stderr)
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func checkBounds(t *testing.T, p pathkit.VectorPath, minX, minY, maxX, maxY float64) {
	t.Helper()
	b := p.Bounds()
	if !approx(b.Min.X, minX) || !approx(b.Min.Y, minY) || !approx(b.Max.X, maxX) || !approx(b.Max.Y, maxY) {
		t.Errorf("bounds = %+v, want [%v %v %v %v]", b, minX, minY, maxX, maxY)
	}
}

func writeDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// =============================================================================
// Queries
// =============================================================================

func TestQueries(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"length inline", "", []string{"length", "-d", "M0 0 L100 0"}, "0\t100.000\n"},
		{"point on arc", "", []string{"point", "-at", "-1", "-d", "M3 4 A50 50 0 0 1 103 4"}, "0\t3.000\t4.000\n"},
		{"length stdin", squareDoc, []string{"length"}, "0\t400.000\n"},
		{"length array", "[" + squareDoc + "," + squareDoc + "]", []string{"length", "-"}, "0\t400.000\n1\t400.000\n"},
		{"point", "", []string{"point", "-at", "150", "-d", squareD}, "0\t100.000\t50.000\n"},
		{"point clamps", "", []string{"point", "-at", "-5", "-d", "M3 4 L10 4"}, "0\t3.000\t4.000\n"},
		{"point empty", `{"commands": []}`, []string{"point", "-at", "1"}, "0\t-\n"},
		{"tangent", "", []string{"tangent", "-at", "50", "-d", "M0 0 L100 0"}, "0\t1.000\t0.000\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := pathkitCmd(t, tt.stdin, tt.args...)
			if r.err != nil {
				t.Fatalf("run() error: %v\n%s", r.err, r.stderr)
			}
			if r.stdout != tt.want {
				t.Errorf("stdout = %q, want %q", r.stdout, tt.want)
			}
		})
	}
}

func TestInfo(t *testing.T) {
	r := pathkitCmd(t, "", "info", "-rule", "evenodd", "-d", squareD)
	if r.err != nil {
		t.Fatalf("run() error: %v", r.err)
	}
	for _, want := range []string{
		"rule=EVENODD", "commands=5", "subpaths=1", "segments=4",
		"length=400.000", "area=10,000.000", "bounds=[0.000 0.000 100.000 100.000]",
	} {
		if !strings.Contains(r.stdout, want) {
			t.Errorf("info output %q missing %q", r.stdout, want)
		}
	}
}

// =============================================================================
// Path operations
// =============================================================================

func TestOffset(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		min, max float64
	}{
		{"grow miter", []string{"-distance", "10"}, -10, 110},
		{"shrink miter", []string{"-distance", "-10", "-miter-limit", "2"}, 10, 90},
		{"grow bevel", []string{"-distance", "10", "-join", "bevel"}, -10, 110},
		{"grow round", []string{"-distance", "10", "-join", "ROUND"}, -10, 110},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"offset", "-format", "svg"}, tt.args...)
			r := pathkitCmd(t, squareDoc, args...)
			if r.err != nil {
				t.Fatalf("run() error: %v", r.err)
			}
			p, err := svgpath.Parse(strings.TrimSpace(r.stdout), pathkit.NonZero)
			if err != nil {
				t.Fatalf("output is not path data: %v\n%s", err, r.stdout)
			}
			checkBounds(t, p, tt.min, tt.min, tt.max, tt.max)
			if !strings.Contains(r.stderr, "offset: 1 paths in, 1 paths out") {
				t.Errorf("summary missing: %q", r.stderr)
			}
		})
	}
}

func TestOffset_JSONOutputKeepsWinding(t *testing.T) {
	r := pathkitCmd(t, "", "offset", "-distance", "5", "-rule", "evenodd", "-d", squareD)
	if r.err != nil {
		t.Fatalf("run() error: %v", r.err)
	}
	paths, err := pathjson.DecodeAll([]byte(r.stdout))
	if err != nil {
		t.Fatalf("output is not a path document: %v", err)
	}
	if len(paths) != 1 || paths[0].WindingRule != pathkit.EvenOdd {
		t.Fatalf("paths = %+v", paths)
	}
	checkBounds(t, paths[0], -5, -5, 105, 105)
}

func TestDash(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		offset  string
		want    int
	}{
		{"even", "10,10", "0", 5},
		{"odd pattern", "25", "0", 2},
		{"spaces", "10 10", "10", 5},
		{"empty is identity", "", "0", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := pathkitCmd(t, "", "dash", "-pattern", tt.pattern, "-dash-offset", tt.offset, "-d", "M0 0 L100 0")
			if r.err != nil {
				t.Fatalf("run() error: %v", r.err)
			}
			paths, err := pathjson.DecodeAll([]byte(r.stdout))
			if err != nil {
				t.Fatalf("decode output: %v", err)
			}
			if len(paths) != tt.want {
				t.Errorf("got %d dashes, want %d", len(paths), tt.want)
			}
		})
	}
}

func TestAlign(t *testing.T) {
	tests := []struct {
		alignment string
		min, max  float64
	}{
		{"outside", -5, 105},
		{"INSIDE", 5, 95},
		{"center", 0, 100},
	}
	for _, tt := range tests {
		t.Run(tt.alignment, func(t *testing.T) {
			r := pathkitCmd(t, "", "align", "-weight", "10", "-alignment", tt.alignment, "-d", squareD)
			if r.err != nil {
				t.Fatalf("run() error: %v", r.err)
			}
			paths, err := pathjson.DecodeAll([]byte(r.stdout))
			if err != nil || len(paths) != 1 {
				t.Fatalf("DecodeAll() = %d paths, %v", len(paths), err)
			}
			checkBounds(t, paths[0], tt.min, tt.min, tt.max, tt.max)
		})
	}
}

func TestOutline(t *testing.T) {
	r := pathkitCmd(t, squareDoc, "outline", "-weight", "8", "-join", "bevel")
	if r.err != nil {
		t.Fatalf("run() error: %v", r.err)
	}
	paths, err := pathjson.DecodeAll([]byte(r.stdout))
	if err != nil || len(paths) != 1 {
		t.Fatalf("DecodeAll() = %d paths, %v", len(paths), err)
	}
	ring := paths[0]
	if ring.WindingRule != pathkit.EvenOdd {
		t.Errorf("WindingRule = %v, want EVENODD", ring.WindingRule)
	}
	checkBounds(t, ring, -4, -4, 104, 104)
	if got := len(pathkit.FlattenPath(ring)); got != 2 {
		t.Errorf("ring has %d sub-paths, want outer and inner", got)
	}
}

func TestPreview(t *testing.T) {
	out := filepath.Join(t.TempDir(), "offset.png")
	r := pathkitCmd(t, "", "offset", "-distance", "4", "-png", out, "-d", squareD)
	if r.err != nil {
		t.Fatalf("run() error: %v", r.err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("preview not written: %v", err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("preview is not PNG: %v", err)
	}
	if cfg.Width != 512 || cfg.Height != 512 {
		t.Errorf("preview size = %dx%d", cfg.Width, cfg.Height)
	}
}

// =============================================================================
// Configuration
// =============================================================================

func TestConfigFileSetsJoinDefault(t *testing.T) {
	for _, k := range []string{config.EnvTolerance, config.EnvMiterLimit, config.EnvJoin, config.EnvLogLevel, config.EnvLogFormat, config.EnvLogFile} {
		t.Setenv(k, "")
	}
	cfgPath := writeDoc(t, "config.yaml", "geometry:\n  join: bevel\n")

	offsetCommands := func(args ...string) int {
		var stdout, stderr bytes.Buffer
		if err := run(context.Background(), append([]string{"-config", cfgPath}, args...),
			strings.NewReader(""), &stdout, &stderr); err != nil {
			t.Fatalf("run() error: %v", err)
		}
		paths, err := pathjson.DecodeAll(stdout.Bytes())
		if err != nil || len(paths) != 1 {
			t.Fatalf("DecodeAll() = %d paths, %v", len(paths), err)
		}
		return len(paths[0].Commands)
	}

	// A bevelled square has two vertices per corner: M, seven L and Z.
	if got := offsetCommands("offset", "-distance", "5", "-d", squareD); got != 9 {
		t.Errorf("configured bevel: %d commands, want 9", got)
	}
	if got := offsetCommands("offset", "-distance", "5", "-join", "miter", "-d", squareD); got != 5 {
		t.Errorf("flag override: %d commands, want 5", got)
	}
}

func TestLogLevelFlag(t *testing.T) {
	r := pathkitCmd(t, "", "-log-level", "debug", "offset", "-distance", "1", "-d", squareD)
	if r.err != nil {
		t.Fatalf("run() error: %v", r.err)
	}
	if !strings.Contains(r.stderr, "path offset") {
		t.Errorf("debug log missing from stderr: %q", r.stderr)
	}
}

// =============================================================================
// Batch
// =============================================================================

func decodeLines(t *testing.T, s string) []batchResult {
	t.Helper()
	var out []batchResult
	sc := bufio.NewScanner(strings.NewReader(s))
	for sc.Scan() {
		var r batchResult
		if err := json.Unmarshal(sc.Bytes(), &r); err != nil {
			t.Fatalf("bad batch line %q: %v", sc.Text(), err)
		}
		out = append(out, r)
	}
	return out
}

func TestBatch_Offset(t *testing.T) {
	a := writeDoc(t, "a.json", squareDoc)
	b := writeDoc(t, "b.json", "["+squareDoc+","+squareDoc+"]")

	r := pathkitCmd(t, "", "batch", "-op", "offset", "-distance", "5", "-workers", "2", a, b)
	if r.err != nil {
		t.Fatalf("run() error: %v", r.err)
	}
	lines := decodeLines(t, r.stdout)
	if len(lines) != 2 {
		t.Fatalf("got %d result lines, want 2", len(lines))
	}
	if lines[0].File != a || lines[1].File != b {
		t.Errorf("results out of order: %s, %s", lines[0].File, lines[1].File)
	}
	if len(lines[0].Paths) != 1 || len(lines[1].Paths) != 2 {
		t.Errorf("paths per file = %d, %d; want 1, 2", len(lines[0].Paths), len(lines[1].Paths))
	}
	checkBounds(t, lines[1].Paths[1].Path(), -5, -5, 105, 105)
}

func TestBatch_LengthWithFailure(t *testing.T) {
	good := writeDoc(t, "good.json", squareDoc)
	bad := writeDoc(t, "bad.json", `{"commands": [{"type": "Q"}]}`)
	missing := filepath.Join(t.TempDir(), "missing.json")

	r := pathkitCmd(t, "", "batch", good, bad, missing)
	if r.err == nil || !strings.Contains(r.err.Error(), "2 of 3 files failed") {
		t.Fatalf("run() error = %v, want 2 of 3 failures", r.err)
	}
	lines := decodeLines(t, r.stdout)
	if len(lines) != 3 {
		t.Fatalf("got %d result lines, want 3", len(lines))
	}
	if len(lines[0].Lengths) != 1 || !approx(lines[0].Lengths[0], 400) {
		t.Errorf("lengths = %v, want [400]", lines[0].Lengths)
	}
	if !strings.Contains(lines[1].Error, "invalid document") {
		t.Errorf("bad file error = %q", lines[1].Error)
	}
	if lines[2].Error == "" {
		t.Error("missing file reported no error")
	}
}

func TestBatch_Dash(t *testing.T) {
	line := writeDoc(t, "line.json", `{"commands": [{"type": "M", "x": 0, "y": 0}, {"type": "L", "x": 100, "y": 0}]}`)
	r := pathkitCmd(t, "", "batch", "-op", "dash", "-pattern", "10,10", line)
	if r.err != nil {
		t.Fatalf("run() error: %v", r.err)
	}
	lines := decodeLines(t, r.stdout)
	if len(lines) != 1 || len(lines[0].Paths) != 5 {
		t.Errorf("batch dash = %+v, want 5 dashes", lines)
	}
}

// =============================================================================
// Errors
// =============================================================================

func TestErrors(t *testing.T) {
	tests := []struct {
		name   string
		stdin  string
		args   []string
		target error
	}{
		{"no command", "", nil, errUsage},
		{"unknown command", "", []string{"fly"}, errUsage},
		{"bad flag", "", []string{"length", "-nope"}, errUsage},
		{"bad format", "", []string{"offset", "-format", "xml", "-d", squareD}, errUsage},
		{"bad join", "", []string{"offset", "-join", "square", "-d", squareD}, errUsage},
		{"bad rule", "", []string{"length", "-rule", "odd", "-d", squareD}, errUsage},
		{"bad alignment", "", []string{"align", "-alignment", "left", "-d", squareD}, errUsage},
		{"bad pattern", "", []string{"dash", "-pattern", "10,x", "-d", squareD}, errUsage},
		{"d and file", "", []string{"length", "-d", squareD, "extra.json"}, errUsage},
		{"batch without files", "", []string{"batch"}, errUsage},
		{"batch bad op", "", []string{"batch", "-op", "fill", "x.json"}, errUsage},
		{"schema violation", `{"commands": [{"type": "M", "x": 1}]}`, []string{"length"}, pathjson.ErrInvalidDocument},
		{"bad path data", "", []string{"length", "-d", "M0 0 L1"}, svgpath.ErrSyntax},
		{"nan distance", "", []string{"offset", "-distance", "NaN", "-d", squareD}, pathkit.ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := pathkitCmd(t, tt.stdin, tt.args...)
			if !errors.Is(r.err, tt.target) {
				t.Errorf("run() error = %v, want %v", r.err, tt.target)
			}
		})
	}
}

func TestHelp(t *testing.T) {
	r := pathkitCmd(t, "", "-h")
	if !errors.Is(r.err, flag.ErrHelp) {
		t.Fatalf("run(-h) error = %v, want flag.ErrHelp", r.err)
	}
	for _, c := range commands {
		if !strings.Contains(r.stderr, c.name) {
			t.Errorf("usage does not list %q", c.name)
		}
	}
}
