// SPDX-License-Identifier: MIT
// Package: ingest
//
// errors.go — sentinel errors.

package ingest

import (
	"errors"
	"fmt"
)

var (
	// ErrNoMatrices indicates input without any matrix block.
	ErrNoMatrices = errors.New("ingest: no matrix data found")

	// ErrUnsupportedFormat indicates a file extension without a parser.
	ErrUnsupportedFormat = errors.New("ingest: unsupported file format")

	// ErrTooLarge indicates a file above the configured size limit.
	ErrTooLarge = errors.New("ingest: file too large")

	// ErrMalformed indicates structurally broken input (e.g. bad JSON).
	ErrMalformed = errors.New("ingest: malformed input")
)

// blockErrorf attaches the 1-based block number to a parse failure.
func blockErrorf(format string, block int, err error) error {
	return fmt.Errorf("%s block %d: %w", format, block, err)
}
