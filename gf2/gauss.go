// SPDX-License-Identifier: MIT
// Package: gf2
//
// gauss.go — Gauss-Jordan elimination kernels.
//
// Determinism:
//   • Pivot search is top-down from the current row; the first row holding a
//     1 in the pivot column wins. Identical inputs give identical outputs.

package gf2

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/xorslp/bitmatrix"
)

// Invert returns M⁻¹ over GF(2).
//
// Implementation:
//   - Stage 1: validate non-nil and square; build the augmented pair
//     left = M, right = I (kept as two row arrays, XORed together).
//   - Stage 2: for each column c, find a pivot at or below row c, swap it into
//     place, then XOR it into every other row having a 1 in column c.
//   - Stage 3: the right half is the inverse.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrSingular (all wrapped with "Invert").
//
// Complexity: O(n³/64) word operations, O(n²) bits of space.
func Invert(m *bitmatrix.Matrix) (*bitmatrix.Matrix, error) {
	if m == nil {
		return nil, gf2Errorf(opInvert, ErrNilMatrix)
	}
	if !m.IsSquare() {
		return nil, gf2Errorf(opInvert, ErrNonSquare)
	}

	// 1. Augmented [M | I] as two aligned row arrays.
	n := m.Rows()
	left := m.RowVectors()
	right := make([]*bitset.BitSet, n)
	for i := 0; i < n; i++ {
		right[i] = bitmatrix.Unit(n, i)
	}

	// 2. Eliminate column by column.
	for c := 0; c < n; c++ {
		pivot := -1
		for r := c; r < n; r++ {
			if left[r].Test(uint(c)) {
				pivot = r
				break
			}
		}
		if pivot == -1 {
			return nil, gf2Errorf(opInvert, ErrSingular)
		}
		if pivot != c {
			left[c], left[pivot] = left[pivot], left[c]
			right[c], right[pivot] = right[pivot], right[c]
		}
		for r := 0; r < n; r++ {
			if r != c && left[r].Test(uint(c)) {
				left[r].InPlaceSymmetricDifference(left[c])
				right[r].InPlaceSymmetricDifference(right[c])
			}
		}
	}

	// 3. Right half is the inverse.
	inv, err := bitmatrix.FromRows(right, n)
	if err != nil {
		return nil, gf2Errorf(opInvert, err)
	}

	return inv, nil
}

// Rank returns the GF(2) rank of m (any shape).
// Complexity: O(min(n,m)·n·m/64).
func Rank(m *bitmatrix.Matrix) (int, error) {
	if m == nil {
		return 0, gf2Errorf(opRank, ErrNilMatrix)
	}
	rows := m.RowVectors()
	rank := 0
	for c := 0; c < m.Cols() && rank < len(rows); c++ {
		pivot := -1
		for r := rank; r < len(rows); r++ {
			if rows[r].Test(uint(c)) {
				pivot = r
				break
			}
		}
		if pivot == -1 {
			continue
		}
		rows[rank], rows[pivot] = rows[pivot], rows[rank]
		for r := rank + 1; r < len(rows); r++ {
			if rows[r].Test(uint(c)) {
				rows[r].InPlaceSymmetricDifference(rows[rank])
			}
		}
		rank++
	}

	return rank, nil
}

// IsInvertible reports whether m is square with full GF(2) rank.
func IsInvertible(m *bitmatrix.Matrix) bool {
	if m == nil || !m.IsSquare() {
		return false
	}
	r, err := Rank(m)

	return err == nil && r == m.Rows()
}
