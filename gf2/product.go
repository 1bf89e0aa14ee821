// SPDX-License-Identifier: MIT
// Package: gf2
//
// product.go — matrix product over GF(2), used to check M × M⁻¹ = I.

package gf2

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/xorslp/bitmatrix"
)

// Mul returns a × b over GF(2). Row i of the product is the XOR of the rows
// of b selected by the 1-bits of row i of a.
// Errors: ErrNilMatrix, ErrDimensionMismatch (a.Cols() != b.Rows()).
// Complexity: O(n·k·m/64).
func Mul(a, b *bitmatrix.Matrix) (*bitmatrix.Matrix, error) {
	if a == nil || b == nil {
		return nil, gf2Errorf(opMul, ErrNilMatrix)
	}
	if a.Cols() != b.Rows() {
		return nil, gf2Errorf(opMul, ErrDimensionMismatch)
	}

	bRows := b.RowVectors()
	out := make([]*bitset.BitSet, a.Rows())
	for i, row := range a.RowVectors() {
		acc := bitset.New(uint(b.Cols()))
		for k, ok := row.NextSet(0); ok; k, ok = row.NextSet(k + 1) {
			acc.InPlaceSymmetricDifference(bRows[k])
		}
		out[i] = acc
	}

	p, err := bitmatrix.FromRows(out, b.Cols())
	if err != nil {
		return nil, gf2Errorf(opMul, err)
	}

	return p, nil
}

// IsIdentity reports whether m is I_n.
func IsIdentity(m *bitmatrix.Matrix) bool {
	if m == nil || !m.IsSquare() {
		return false
	}
	id, err := bitmatrix.Identity(m.Rows())

	return err == nil && m.Equal(id)
}

// IsInvolution reports whether m is its own inverse (m × m = I).
func IsInvolution(m *bitmatrix.Matrix) bool {
	if m == nil || !m.IsSquare() {
		return false
	}
	sq, err := Mul(m, m)

	return err == nil && IsIdentity(sq)
}
