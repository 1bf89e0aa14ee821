// SPDX-License-Identifier: MIT
// Package: bitmatrix
//
// matrix.go — the immutable Matrix type, constructors and accessors.
//
// Determinism & Performance:
//   • Rows are stored as bitset.BitSet of length Cols(); accessors that
//     expose a row return a clone so the receiver stays immutable.
//   • Validation runs once at construction: O(rows*cols).

package bitmatrix

import (
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Matrix is an immutable n×m matrix over GF(2).
type Matrix struct {
	rows []*bitset.BitSet // rows[i] bit j == entry (i, j)
	cols int
}

// Parse builds a Matrix from a 2-D array of 0/1 integers.
// Errors (all *ValidationError, matching ErrValidation):
//   - Empty         when len(rows) == 0 or the first row is empty.
//   - RaggedRows    when some row length differs from the first.
//   - InvalidSymbol when an entry is not 0 or 1.
//
// Complexity: O(rows*cols).
func Parse(rows [][]int) (*Matrix, error) {
	// 1. Shape checks first so Empty wins over anything else.
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, emptyError()
	}
	cols := len(rows[0])

	// 2. Walk every entry in row-major order; report the first violation.
	out := &Matrix{rows: make([]*bitset.BitSet, len(rows)), cols: cols}
	for i, row := range rows {
		if len(row) != cols {
			return nil, raggedError(i, cols, len(row))
		}
		bs := bitset.New(uint(cols))
		for j, v := range row {
			switch v {
			case 0:
			case 1:
				bs.Set(uint(j))
			default:
				return nil, symbolError(i, j, fmt.Sprint(v))
			}
		}
		out.rows[i] = bs
	}

	return out, nil
}

// ParseStrings builds a Matrix from rows of "0"/"1" symbols, the shape the
// original HTTP clients send. Surrounding whitespace on a symbol is ignored.
func ParseStrings(rows [][]string) (*Matrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, emptyError()
	}
	ints := make([][]int, len(rows))
	for i, row := range rows {
		ints[i] = make([]int, len(row))
		for j, sym := range row {
			switch strings.TrimSpace(sym) {
			case "0":
				ints[i][j] = 0
			case "1":
				ints[i][j] = 1
			default:
				return nil, symbolError(i, j, sym)
			}
		}
	}

	return Parse(ints)
}

// FromRows builds a Matrix from existing row vectors. Every row is cloned
// and must not have bits set at or beyond cols.
func FromRows(rows []*bitset.BitSet, cols int) (*Matrix, error) {
	if len(rows) == 0 || cols <= 0 {
		return nil, emptyError()
	}
	out := &Matrix{rows: make([]*bitset.BitSet, len(rows)), cols: cols}
	for i, r := range rows {
		if r == nil {
			return nil, raggedError(i, cols, 0)
		}
		if last, ok := lastSet(r); ok && last >= uint(cols) {
			return nil, raggedError(i, cols, int(last)+1)
		}
		bs := bitset.New(uint(cols))
		for j, ok := r.NextSet(0); ok; j, ok = r.NextSet(j + 1) {
			bs.Set(j)
		}
		out.rows[i] = bs
	}

	return out, nil
}

// Identity returns I_n.
func Identity(n int) (*Matrix, error) {
	if n <= 0 {
		return nil, emptyError()
	}
	out := &Matrix{rows: make([]*bitset.BitSet, n), cols: n}
	for i := 0; i < n; i++ {
		out.rows[i] = bitset.New(uint(n)).Set(uint(i))
	}

	return out, nil
}

// Rows returns the number of rows (targets).
func (m *Matrix) Rows() int { return len(m.rows) }

// Cols returns the number of columns (inputs).
func (m *Matrix) Cols() int { return m.cols }

// IsSquare reports Rows() == Cols().
func (m *Matrix) IsSquare() bool { return len(m.rows) == m.cols }

// At returns entry (i, j) as 0 or 1.
func (m *Matrix) At(i, j int) (int, error) {
	if i < 0 || i >= len(m.rows) || j < 0 || j >= m.cols {
		return 0, fmt.Errorf("At(%d,%d): %w", i, j, ErrOutOfRange)
	}
	if m.rows[i].Test(uint(j)) {
		return 1, nil
	}

	return 0, nil
}

// Row returns a copy of row i as a bit vector of length Cols().
func (m *Matrix) Row(i int) (*bitset.BitSet, error) {
	if i < 0 || i >= len(m.rows) {
		return nil, fmt.Errorf("Row(%d): %w", i, ErrOutOfRange)
	}

	return m.rows[i].Clone(), nil
}

// RowVectors returns copies of every row in order.
func (m *Matrix) RowVectors() []*bitset.BitSet {
	out := make([]*bitset.BitSet, len(m.rows))
	for i, r := range m.rows {
		out[i] = r.Clone()
	}

	return out
}

// RowWeight returns the number of 1-bits in row i (0 for an invalid index).
func (m *Matrix) RowWeight(i int) int {
	if i < 0 || i >= len(m.rows) {
		return 0
	}

	return int(m.rows[i].Count())
}

// MaxRowWeight returns the largest row weight.
func (m *Matrix) MaxRowWeight() int {
	best := 0
	for i := range m.rows {
		if w := m.RowWeight(i); w > best {
			best = w
		}
	}

	return best
}

// Ones returns the total number of 1-bits.
func (m *Matrix) Ones() int {
	total := 0
	for _, r := range m.rows {
		total += int(r.Count())
	}

	return total
}

// Bits returns the matrix as a fresh 2-D array of 0/1 integers.
func (m *Matrix) Bits() [][]int {
	out := make([][]int, len(m.rows))
	for i, r := range m.rows {
		out[i] = make([]int, m.cols)
		for j := 0; j < m.cols; j++ {
			if r.Test(uint(j)) {
				out[i][j] = 1
			}
		}
	}

	return out
}

// Equal reports whether both matrices have the same shape and bits.
func (m *Matrix) Equal(o *Matrix) bool {
	if m == nil || o == nil {
		return m == o
	}
	if len(m.rows) != len(o.rows) || m.cols != o.cols {
		return false
	}
	for i := range m.rows {
		if !m.rows[i].Equal(o.rows[i]) {
			return false
		}
	}

	return true
}

// String returns Binary().
func (m *Matrix) String() string { return m.Binary() }

// lastSet returns the highest set bit of b.
func lastSet(b *bitset.BitSet) (uint, bool) {
	var (
		last  uint
		found bool
	)
	for i, ok := b.NextSet(0); ok; i, ok = b.NextSet(i + 1) {
		last, found = i, true
	}

	return last, found
}
