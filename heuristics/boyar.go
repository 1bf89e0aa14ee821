// SPDX-License-Identifier: MIT
// Package: heuristics
//
// boyar.go — Boyar–Peralta synthesis with a depth preference or bound.

package heuristics

import (
	"github.com/katalvlaran/xorslp/bitmatrix"
	"github.com/katalvlaran/xorslp/slp"
)

// BoyarPeralta returns a program for m built by base/distance search.
//
// Candidate gates are ranked by:
//  1. smallest resulting total distance,
//  2. resulting depth within the depth limit (WithDepthLimit, 0 = auto),
//  3. lower resulting depth,
//  4. larger sum of squared distances,
//  5. lowest (a, b).
//
// The depth limit is a preference. The realized depth is p.Depth() and may
// exceed the limit.
func BoyarPeralta(m *bitmatrix.Matrix, opts ...Option) (*slp.Program, error) {
	if m == nil {
		return nil, heuristicErrorf(opBoyar, ErrNilMatrix)
	}

	return synthesizeByDistance(opBoyar, m, rankDepthAware, applyOptions(opts))
}

// SBP returns a program for m built by the BoyarPeralta search with a hard
// depth bound: each step picks among the candidate gates whose depth is
// within the limit (WithDepthLimit, 0 = auto), ranked as in BoyarPeralta.
// When no candidate fits, the step falls back to the BoyarPeralta ranking
// over all of them so the search still terminates. Easy moves (a target one
// gate away) are always taken.
func SBP(m *bitmatrix.Matrix, opts ...Option) (*slp.Program, error) {
	if m == nil {
		return nil, heuristicErrorf(opSBP, ErrNilMatrix)
	}

	return synthesizeByDistance(opSBP, m, rankStrictDepth, applyOptions(opts))
}

// SLP returns a program for m built by the same search as BoyarPeralta, ranked
// by total distance, then larger sum of squared distances, then lowest (a, b).
// Depth options are ignored.
func SLP(m *bitmatrix.Matrix, opts ...Option) (*slp.Program, error) {
	if m == nil {
		return nil, heuristicErrorf(opSLP, ErrNilMatrix)
	}

	return synthesizeByDistance(opSLP, m, rankNormFirst, applyOptions(opts))
}
