// SPDX-License-Identifier: MIT
// Package: bitmatrix
//
// errors.go — sentinel errors and the typed validation error.
//
// Error policy:
//   • Malformed input is reported as *ValidationError; errors.Is(err, ErrValidation)
//     matches every kind so callers can branch without a type switch.
//   • Index errors on an already valid Matrix use ErrOutOfRange.
//   • Nothing in this package panics on user input.

package bitmatrix

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is the umbrella sentinel for malformed matrix input.
	ErrValidation = errors.New("bitmatrix: invalid matrix")

	// ErrOutOfRange indicates a row or column index outside the matrix bounds.
	ErrOutOfRange = errors.New("bitmatrix: index out of range")
)

// ValidationKind classifies a ValidationError.
type ValidationKind int

const (
	// Empty means zero rows or zero columns were supplied.
	Empty ValidationKind = iota + 1
	// RaggedRows means a row length differs from the first row.
	RaggedRows
	// InvalidSymbol means an entry is neither 0 nor 1.
	InvalidSymbol
)

// String returns the stable name of the kind.
func (k ValidationKind) String() string {
	switch k {
	case Empty:
		return "Empty"
	case RaggedRows:
		return "RaggedRows"
	case InvalidSymbol:
		return "InvalidSymbol"
	default:
		return fmt.Sprintf("ValidationKind(%d)", int(k))
	}
}

// ValidationError describes which row/column of the input failed and why.
// Row and Col are -1 when not applicable.
type ValidationError struct {
	Kind   ValidationKind
	Row    int
	Col    int
	Symbol string // offending symbol for InvalidSymbol
	Want   int    // expected row length for RaggedRows
	Got    int    // actual row length for RaggedRows
}

// Error implements error.
func (e *ValidationError) Error() string {
	switch e.Kind {
	case Empty:
		return "bitmatrix: empty matrix (zero rows or zero columns)"
	case RaggedRows:
		return fmt.Sprintf("bitmatrix: ragged rows: row %d has %d columns, want %d", e.Row, e.Got, e.Want)
	case InvalidSymbol:
		return fmt.Sprintf("bitmatrix: invalid symbol %q at row %d, column %d", e.Symbol, e.Row, e.Col)
	default:
		return ErrValidation.Error()
	}
}

// Is reports ErrValidation as the category of every ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func emptyError() error {
	return &ValidationError{Kind: Empty, Row: -1, Col: -1}
}

func raggedError(row, want, got int) error {
	return &ValidationError{Kind: RaggedRows, Row: row, Col: -1, Want: want, Got: got}
}

func symbolError(row, col int, sym string) error {
	return &ValidationError{Kind: InvalidSymbol, Row: row, Col: col, Symbol: sym}
}
