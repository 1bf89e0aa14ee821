// SPDX-License-Identifier: MIT

// Package gf2 implements exact linear algebra over GF(2) for bitmatrix.Matrix:
// rank, invertibility, inversion by Gauss-Jordan elimination, and products.
//
// Over GF(2) every non-zero pivot equals 1, so elimination needs only row
// swaps and row XORs; there is no scaling step and no numeric tolerance.
//
//	inv, err := gf2.Invert(m)
//	switch {
//	case errors.Is(err, gf2.ErrSingular):   // square but rank-deficient
//	case errors.Is(err, gf2.ErrNonSquare):  // n != m
//	}
//
// Both conditions also match ErrSingularMatrix, the category used by bulk
// callers that only need "not invertible".
//
// Complexity: Invert and Rank are O(n²·m/64) word operations.
package gf2
