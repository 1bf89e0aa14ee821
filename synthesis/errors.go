// SPDX-License-Identifier: MIT
// Package: synthesis
//
// errors.go — sentinel errors.

package synthesis

import "errors"

var (
	// ErrInternal indicates a synthesized program failed verification or a
	// heuristic broke its own invariants. Fatal to that computation only.
	ErrInternal = errors.New("synthesis: internal error")

	// ErrNilMatrix indicates a nil input matrix.
	ErrNilMatrix = errors.New("synthesis: nil matrix")

	// ErrEngineClosed indicates use of an Engine after Close.
	ErrEngineClosed = errors.New("synthesis: engine closed")
)
