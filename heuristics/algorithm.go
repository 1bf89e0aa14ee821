// SPDX-License-Identifier: MIT
// Package: heuristics
//
// algorithm.go — algorithm names and dispatch.

package heuristics

import (
	"fmt"

	"github.com/katalvlaran/xorslp/bitmatrix"
	"github.com/katalvlaran/xorslp/slp"
)

// Algorithm names a synthesis heuristic.
type Algorithm string

// Known algorithms.
const (
	AlgorithmPaar  Algorithm = "paar"
	AlgorithmBoyar Algorithm = "boyar"
	AlgorithmSLP   Algorithm = "slp"
	AlgorithmSBP   Algorithm = "sbp"
)

// Algorithms lists every heuristic in report order.
var Algorithms = []Algorithm{AlgorithmPaar, AlgorithmBoyar, AlgorithmSLP, AlgorithmSBP}

// ParseAlgorithm maps a name to an Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	for _, a := range Algorithms {
		if string(a) == name {
			return a, nil
		}
	}

	return "", fmt.Errorf("%q: %w", name, ErrUnknownAlgorithm)
}

// ReportsDepth reports whether the algorithm carries a depth contract.
func (a Algorithm) ReportsDepth() bool { return a == AlgorithmBoyar || a == AlgorithmSBP }

// Run dispatches to the named heuristic.
func Run(a Algorithm, m *bitmatrix.Matrix, opts ...Option) (*slp.Program, error) {
	switch a {
	case AlgorithmPaar:
		return Paar(m, opts...)
	case AlgorithmBoyar:
		return BoyarPeralta(m, opts...)
	case AlgorithmSLP:
		return SLP(m, opts...)
	case AlgorithmSBP:
		return SBP(m, opts...)
	default:
		return nil, fmt.Errorf("Run(%q): %w", a, ErrUnknownAlgorithm)
	}
}
