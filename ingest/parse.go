// SPDX-License-Identifier: MIT
// Package: ingest
//
// parse.go — format parsers.

package ingest

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/katalvlaran/xorslp/bitmatrix"
)

// Entry is one parsed matrix.
type Entry struct {
	Title  string            `json:"title"`
	Group  string            `json:"group"`
	Matrix *bitmatrix.Matrix `json:"matrix"`
}

// magmaSeparator splits Magma export blocks.
const magmaSeparator = "-----------------"

var magmaRow = regexp.MustCompile(`\[([01 ]+)\]`)

// blockBuilder accumulates rows and the pending title of the current block.
type blockBuilder struct {
	format  string
	title   string
	rows    [][]string
	entries []Entry
}

func (b *blockBuilder) flush() error {
	if len(b.rows) == 0 {
		return nil
	}
	m, err := bitmatrix.ParseStrings(b.rows)
	if err != nil {
		return blockErrorf(b.format, len(b.entries)+1, err)
	}
	b.entries = append(b.entries, Entry{Title: b.title, Matrix: m})
	b.title, b.rows = "", nil

	return nil
}

func (b *blockBuilder) finish() ([]Entry, error) {
	if err := b.flush(); err != nil {
		return nil, err
	}
	if len(b.entries) == 0 {
		return nil, fmt.Errorf("%s: %w", b.format, ErrNoMatrices)
	}

	return b.entries, nil
}

// ParseText reads whitespace- or bracket-delimited rows ("[1 0 1]", "1 0 1",
// "101"). Blocks are separated by blank lines or dash lines ("-----"). A
// non-row line before a block becomes its title; a leading '#' is dropped.
func ParseText(content string) ([]Entry, error) {
	b := &blockBuilder{format: "text"}
	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case line == "" || isSeparator(line):
			if err := b.flush(); err != nil {
				return nil, err
			}
		case isRow(line):
			b.rows = append(b.rows, bitmatrix.SplitSymbols(line))
		default:
			if err := b.flush(); err != nil {
				return nil, err
			}
			b.title = strings.TrimSpace(strings.TrimLeft(line, "#"))
		}
	}

	return b.finish()
}

// ParseCSV reads comma-separated rows; blank lines separate matrices.
func ParseCSV(content string) ([]Entry, error) {
	b := &blockBuilder{format: "csv"}
	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			if err := b.flush(); err != nil {
				return nil, err
			}
			continue
		}
		if strings.HasPrefix(line, "#") {
			if err := b.flush(); err != nil {
				return nil, err
			}
			b.title = strings.TrimSpace(strings.TrimLeft(line, "#"))
			continue
		}
		fields := strings.Split(line, ",")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		b.rows = append(b.rows, fields)
	}

	return b.finish()
}

// ParseMagma reads Magma exports: blocks split on a long dash line, rows
// written as "[0 1 ...]". The first non-row line of a block is its title.
func ParseMagma(content string) ([]Entry, error) {
	b := &blockBuilder{format: "magma"}
	for _, block := range strings.Split(content, magmaSeparator) {
		if strings.TrimSpace(block) == "" {
			continue
		}
		for _, raw := range strings.Split(block, "\n") {
			line := strings.TrimSpace(raw)
			if line == "" {
				continue
			}
			matches := magmaRow.FindAllStringSubmatch(line, -1)
			if len(matches) == 0 {
				if b.title == "" && len(b.rows) == 0 {
					b.title = line
				}
				continue
			}
			for _, mt := range matches {
				b.rows = append(b.rows, strings.Fields(mt[1]))
			}
		}
		if len(b.rows) == 0 {
			b.title = ""
			continue
		}
		if err := b.flush(); err != nil {
			return nil, err
		}
	}

	return b.finish()
}

// jsonEntry accepts either a bare matrix or an object with metadata.
type jsonEntry struct {
	Title  string            `json:"title"`
	Group  string            `json:"group"`
	Matrix *bitmatrix.Matrix `json:"matrix"`
}

func (e *jsonEntry) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var m bitmatrix.Matrix
		if err := json.Unmarshal(data, &m); err != nil {
			return err
		}
		e.Matrix = &m
		return nil
	}
	type plain jsonEntry
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*e = jsonEntry(p)

	return nil
}

// ParseJSON reads a top-level array of matrices (or one bare matrix), or an object with
// "matrices" (array) and/or "matrix" (single). Each matrix is a 2-D array of
// 0/1 numbers or strings, or an object {"title", "group", "matrix"}.
func ParseJSON(content string) ([]Entry, error) {
	trimmed := strings.TrimSpace(content)
	var items []jsonEntry
	if strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal([]byte(trimmed), &items); err != nil {
			// A bare 2-D array is a single matrix.
			var m bitmatrix.Matrix
			if single := json.Unmarshal([]byte(trimmed), &m); single != nil {
				return nil, fmt.Errorf("json: %w: %w", ErrMalformed, err)
			}
			items = []jsonEntry{{Matrix: &m}}
		}
	} else {
		var doc struct {
			Matrices []jsonEntry `json:"matrices"`
			Matrix   *jsonEntry  `json:"matrix"`
		}
		if err := json.Unmarshal([]byte(trimmed), &doc); err != nil {
			return nil, fmt.Errorf("json: %w: %w", ErrMalformed, err)
		}
		items = doc.Matrices
		if doc.Matrix != nil {
			items = append(items, *doc.Matrix)
		}
	}

	out := make([]Entry, 0, len(items))
	for _, it := range items {
		if it.Matrix == nil {
			continue
		}
		out = append(out, Entry{Title: it.Title, Group: it.Group, Matrix: it.Matrix})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("json: %w", ErrNoMatrices)
	}

	return out, nil
}

// isSeparator reports a line made only of dashes (at least three).
func isSeparator(line string) bool {
	return len(line) >= 3 && strings.Trim(line, "-") == ""
}

// isRow reports whether line holds only 0/1 symbols and delimiters.
func isRow(line string) bool {
	digits := 0
	for _, c := range line {
		switch c {
		case '0', '1':
			digits++
		case ' ', '\t', '[', ']', ',', ';':
		default:
			return false
		}
	}

	return digits > 0
}
