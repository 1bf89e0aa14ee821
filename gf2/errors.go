// SPDX-License-Identifier: MIT
// Package: gf2
//
// errors.go — sentinel errors. Callers MUST branch with errors.Is.

package gf2

import (
	"errors"
	"fmt"
)

var (
	// ErrSingularMatrix is the category for any matrix that has no inverse.
	ErrSingularMatrix = errors.New("gf2: matrix is not invertible")

	// ErrNonSquare indicates inversion was requested for an n×m matrix with n != m.
	ErrNonSquare = fmt.Errorf("%w: matrix is not square", ErrSingularMatrix)

	// ErrSingular indicates elimination found a column without a pivot.
	ErrSingular = fmt.Errorf("%w: singular matrix (rank deficient)", ErrSingularMatrix)

	// ErrDimensionMismatch indicates a.Cols() != b.Rows() in Mul.
	ErrDimensionMismatch = errors.New("gf2: dimension mismatch")

	// ErrNilMatrix indicates a nil *bitmatrix.Matrix argument.
	ErrNilMatrix = errors.New("gf2: nil matrix")
)

// Operation tags for uniform wrapping.
const (
	opInvert = "Invert"
	opRank   = "Rank"
	opMul    = "Mul"
)

// gf2Errorf wraps err with an operation tag, preserving it for errors.Is.
func gf2Errorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
