// SPDX-License-Identifier: MIT
// Package: heuristics
//
// paar.go — greedy pair-frequency common-subexpression elimination.
//
// State: every live signal s owns mask[s], the set of rows that currently
// include s in their sum. A row is finished when exactly one signal covers it.
//
// Step: pick the pair (a, b), a < b, maximizing |mask[a] ∩ mask[b]| (ties:
// lowest a, then lowest b), emit g = a ⊕ b, then move the shared rows from a
// and b onto g. Each step removes at least one signal occurrence, so the
// loop runs at most HammingXorCount(m) times.
//
// Complexity: O(G · S² · n/64) for G gates, S live signals, n rows.

package heuristics

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/xorslp/bitmatrix"
	"github.com/katalvlaran/xorslp/slp"
)

// Paar returns a program for m built by greedy pair elimination.
// WithContext is honoured; depth and budget options are ignored.
func Paar(m *bitmatrix.Matrix, opts ...Option) (*slp.Program, error) {
	if m == nil {
		return nil, heuristicErrorf(opPaar, ErrNilMatrix)
	}
	o := applyOptions(opts)
	n, cols := m.Rows(), m.Cols()
	b := slp.NewBuilder(cols)

	// 1. Column masks: input j covers the rows having a 1 in column j.
	masks := make([]*bitset.BitSet, cols)
	for j := range masks {
		masks[j] = bitset.New(uint(n))
	}
	for i := 0; i < n; i++ {
		row, _ := m.Row(i)
		for j, ok := row.NextSet(0); ok; j, ok = row.NextSet(j + 1) {
			masks[j].Set(uint(i))
		}
	}

	// 2. Greedy pair selection.
	for {
		if err := o.ctx.Err(); err != nil {
			return nil, heuristicErrorf(opPaar, err)
		}
		bestA, bestB, bestCount := -1, -1, uint(0)
		for a := 0; a < len(masks); a++ {
			if masks[a].None() {
				continue
			}
			for c := a + 1; c < len(masks); c++ {
				if shared := masks[a].IntersectionCardinality(masks[c]); shared > bestCount {
					bestA, bestB, bestCount = a, c, shared
				}
			}
		}
		if bestCount == 0 {
			break
		}

		g, err := b.Gate(bestA, bestB)
		if err != nil {
			return nil, internalf(opPaar, err)
		}
		shared := masks[bestA].Intersection(masks[bestB])
		masks[bestA].InPlaceDifference(shared)
		masks[bestB].InPlaceDifference(shared)
		masks = append(masks, shared)
		if g != len(masks)-1 {
			return nil, internalf(opPaar, errSignalDrift)
		}
	}

	// 3. Each non-zero row is covered by exactly one signal now.
	outputs := make([]int, n)
	for i := range outputs {
		outputs[i] = slp.Zero
	}
	for s, mask := range masks {
		for i, ok := mask.NextSet(0); ok; i, ok = mask.NextSet(i + 1) {
			outputs[i] = s
		}
	}

	p, err := b.Finalize(outputs)
	if err != nil {
		return nil, internalf(opPaar, err)
	}

	return p, nil
}
