// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package pathjson reads and writes vector paths as JSON documents.
//
// A document is an object with an optional "windingRule" ("NONZERO" by
// default, or "EVENODD") and a "commands" array:
//
//	{"windingRule": "EVENODD", "commands": [
//	  {"type": "M", "x": 0, "y": 0},
//	  {"type": "L", "x": 100, "y": 0},
//	  {"type": "C", "x1": 100, "y1": 50, "x2": 50, "y2": 100, "x": 0, "y": 100},
//	  {"type": "Z"}
//	]}
//
// Input is validated against an embedded JSON schema before decoding, so a
// malformed document reports every violation at once.
package pathjson

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/gogpu/pathkit"
)

//go:embed schema.json
var schemaJSON []byte

// ErrInvalidDocument is returned when input does not match the document
// schema.
var ErrInvalidDocument = errors.New("pathjson: invalid document")

// ValidationError lists the schema violations of one document.
type ValidationError struct {
	// Index is the position of the document in a batch, or -1.
	Index  int
	Issues []string
}

func (e *ValidationError) Error() string {
	prefix := "pathjson: invalid document"
	if e.Index >= 0 {
		prefix = fmt.Sprintf("%s %d", prefix, e.Index)
	}
	return prefix + ": " + strings.Join(e.Issues, "; ")
}

// Unwrap makes errors.Is(err, ErrInvalidDocument) hold.
func (e *ValidationError) Unwrap() error { return ErrInvalidDocument }

// Document is the wire form of a VectorPath.
type Document struct {
	WindingRule string    `json:"windingRule,omitempty"`
	Commands    []Command `json:"commands"`
}

// Command is the wire form of a PathCommand. Coordinates are pointers so
// that zero values survive encoding.
type Command struct {
	Type string   `json:"type"`
	X1   *float64 `json:"x1,omitempty"`
	Y1   *float64 `json:"y1,omitempty"`
	X2   *float64 `json:"x2,omitempty"`
	Y2   *float64 `json:"y2,omitempty"`
	X    *float64 `json:"x,omitempty"`
	Y    *float64 `json:"y,omitempty"`
}

var compiledSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
})

// Validate checks a single document against the schema.
func Validate(data []byte) error {
	return validate(data, -1)
}

func validate(data []byte, index int) error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("pathjson: compile schema: %w", err)
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		// Not JSON at all.
		return &ValidationError{Index: index, Issues: []string{err.Error()}}
	}
	if result.Valid() {
		return nil
	}
	issues := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		issues = append(issues, e.String())
	}
	return &ValidationError{Index: index, Issues: issues}
}

// Decode validates and decodes one document.
func Decode(data []byte) (pathkit.VectorPath, error) {
	return decode(data, -1)
}

func decode(data []byte, index int) (pathkit.VectorPath, error) {
	if err := validate(data, index); err != nil {
		return pathkit.VectorPath{}, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return pathkit.VectorPath{}, fmt.Errorf("pathjson: decode: %w", err)
	}
	return doc.Path(), nil
}

// DecodeAll decodes either a single document or a JSON array of documents.
func DecodeAll(data []byte) ([]pathkit.VectorPath, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		p, err := Decode(trimmed)
		if err != nil {
			return nil, err
		}
		return []pathkit.VectorPath{p}, nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, &ValidationError{Index: -1, Issues: []string{err.Error()}}
	}
	paths := make([]pathkit.VectorPath, 0, len(raw))
	for i, r := range raw {
		p, err := decode(r, i)
		if err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// Encode writes paths as an indented JSON array of documents.
func Encode(paths []pathkit.VectorPath) ([]byte, error) {
	docs := make([]Document, len(paths))
	for i, p := range paths {
		docs[i] = FromPath(p)
	}
	return json.MarshalIndent(docs, "", "  ")
}

// FromPath converts a path to its wire form.
func FromPath(p pathkit.VectorPath) Document {
	doc := Document{
		WindingRule: p.WindingRule.String(),
		Commands:    make([]Command, 0, len(p.Commands)),
	}
	for _, cmd := range p.Commands {
		switch c := cmd.(type) {
		case pathkit.MoveTo:
			doc.Commands = append(doc.Commands, Command{Type: "M", X: ptr(c.Point.X), Y: ptr(c.Point.Y)})
		case pathkit.LineTo:
			doc.Commands = append(doc.Commands, Command{Type: "L", X: ptr(c.Point.X), Y: ptr(c.Point.Y)})
		case pathkit.CubicTo:
			doc.Commands = append(doc.Commands, Command{
				Type: "C",
				X1:   ptr(c.Control1.X),
				Y1:   ptr(c.Control1.Y),
				X2:   ptr(c.Control2.X),
				Y2:   ptr(c.Control2.Y),
				X:    ptr(c.Point.X),
				Y:    ptr(c.Point.Y),
			})
		case pathkit.Close:
			doc.Commands = append(doc.Commands, Command{Type: "Z"})
		}
	}
	return doc
}

// Path converts a validated document to a VectorPath.
func (d Document) Path() pathkit.VectorPath {
	rule := pathkit.NonZero
	if d.WindingRule == pathkit.EvenOdd.String() {
		rule = pathkit.EvenOdd
	}
	cmds := make([]pathkit.PathCommand, 0, len(d.Commands))
	for _, c := range d.Commands {
		switch c.Type {
		case "M":
			cmds = append(cmds, pathkit.MoveTo{Point: pathkit.Pt(val(c.X), val(c.Y))})
		case "L":
			cmds = append(cmds, pathkit.LineTo{Point: pathkit.Pt(val(c.X), val(c.Y))})
		case "C":
			cmds = append(cmds, pathkit.CubicTo{
				Control1: pathkit.Pt(val(c.X1), val(c.Y1)),
				Control2: pathkit.Pt(val(c.X2), val(c.Y2)),
				Point:    pathkit.Pt(val(c.X), val(c.Y)),
			})
		case "Z":
			cmds = append(cmds, pathkit.Close{})
		}
	}
	return pathkit.NewVectorPath(rule, cmds...)
}

func ptr(v float64) *float64 { return &v }

func val(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
