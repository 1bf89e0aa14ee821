// SPDX-License-Identifier: MIT
// Package: heuristics
//
// errors.go — sentinel errors.

package heuristics

import (
	"errors"
	"fmt"
)

var (
	// ErrNilMatrix indicates a nil input matrix.
	ErrNilMatrix = errors.New("heuristics: nil matrix")

	// ErrUnknownAlgorithm indicates an Algorithm value outside the known set.
	ErrUnknownAlgorithm = errors.New("heuristics: unknown algorithm")

	// ErrInternal indicates a broken builder invariant during synthesis.
	ErrInternal = errors.New("heuristics: internal invariant violated")
)

// Operation tags.
const (
	opPaar  = "Paar"
	opBoyar = "BoyarPeralta"
	opSLP   = "SLP"
	opSBP   = "SBP"
)

func heuristicErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// internalf wraps a builder failure as ErrInternal, keeping the cause in the text.
func internalf(tag string, cause error) error {
	return fmt.Errorf("%s: %w: %v", tag, ErrInternal, cause)
}

// errSignalDrift reports that local signal bookkeeping diverged from the builder.
var errSignalDrift = errors.New("signal ids out of sync with builder")

// errNoProgress reports a search step that failed to lower total distance.
var errNoProgress = errors.New("search made no progress")
