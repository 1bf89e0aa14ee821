// SPDX-License-Identifier: MIT
// Package: bitmatrix
//
// codec.go — canonical textual forms and the content hash.
//
//   • Binary(): one "[b0 b1 ...]" line per row, joined by '\n'. This is the
//     canonical bit-string; Hash() digests exactly these bytes.
//   • Hex(): each row zero-padded on the right to a multiple of 4 bits, read
//     MSB-first in column order, upper-case, rows joined by ','.
//   • JSON: a 2-D array of 0/1; decoding also accepts "0"/"1" strings.

package bitmatrix

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"
)

const hexDigits = "0123456789ABCDEF"

// Binary returns the canonical display form.
func (m *Matrix) Binary() string {
	var sb strings.Builder
	sb.Grow(len(m.rows) * (2*m.cols + 2))
	for i, r := range m.rows {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteByte('[')
		for j := 0; j < m.cols; j++ {
			if j > 0 {
				sb.WriteByte(' ')
			}
			if r.Test(uint(j)) {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
		sb.WriteByte(']')
	}

	return sb.String()
}

// Hex returns the packed hexadecimal form.
func (m *Matrix) Hex() string {
	var sb strings.Builder
	width := (m.cols + 3) / 4
	for i, r := range m.rows {
		if i > 0 {
			sb.WriteByte(',')
		}
		for d := 0; d < width; d++ {
			nibble := 0
			for k := 0; k < 4; k++ {
				nibble <<= 1
				j := d*4 + k
				if j < m.cols && r.Test(uint(j)) {
					nibble |= 1
				}
			}
			sb.WriteByte(hexDigits[nibble])
		}
	}

	return sb.String()
}

// Hash returns the lower-case hex SHA3-256 digest of Binary().
func (m *Matrix) Hash() string {
	sum := sha3.Sum256([]byte(m.Binary()))

	return hex.EncodeToString(sum[:])
}

// ParseBinary decodes the Binary() form. Brackets are optional and symbols may
// be separated by spaces or written contiguously ("[101]" or "1 0 1").
func ParseBinary(s string) (*Matrix, error) {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rows = append(rows, SplitSymbols(line))
	}

	return ParseStrings(rows)
}

// SplitSymbols turns one textual row into symbols. Brackets, commas and
// whitespace are separators; a single token of 0/1 digits is split per digit.
func SplitSymbols(line string) []string {
	line = strings.NewReplacer("[", " ", "]", " ", ",", " ", ";", " ").Replace(line)
	fields := strings.Fields(line)
	if len(fields) == 1 && len(fields[0]) > 1 {
		out := make([]string, len(fields[0]))
		for i, c := range fields[0] {
			out[i] = string(c)
		}

		return out
	}

	return fields
}

// MarshalJSON encodes the matrix as a 2-D array of 0/1.
func (m *Matrix) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Bits())
}

// UnmarshalJSON decodes a 2-D array of numbers or "0"/"1" strings.
func (m *Matrix) UnmarshalJSON(data []byte) error {
	var raw [][]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("bitmatrix: decode: %w", err)
	}
	syms := make([][]string, len(raw))
	for i, row := range raw {
		syms[i] = make([]string, len(row))
		for j, cell := range row {
			var s string
			if err := json.Unmarshal(cell, &s); err != nil {
				s = string(cell) // number literal
			}
			syms[i][j] = s
		}
	}
	parsed, err := ParseStrings(syms)
	if err != nil {
		return err
	}
	*m = *parsed

	return nil
}
