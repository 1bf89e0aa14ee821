// SPDX-License-Identifier: MIT
// Package: heuristics
//
// naive.go — baseline cost model.

package heuristics

import "github.com/katalvlaran/xorslp/bitmatrix"

// HammingXorCount returns Σ_rows max(weight−1, 0): the XOR count of computing
// every row on its own. Returns 0 for a nil matrix.
func HammingXorCount(m *bitmatrix.Matrix) int {
	if m == nil {
		return 0
	}
	total := 0
	for i := 0; i < m.Rows(); i++ {
		if w := m.RowWeight(i); w > 1 {
			total += w - 1
		}
	}

	return total
}

// AutoDepthLimit returns ceil(log2(max row weight)), the smallest depth at
// which every row can be computed by a balanced XOR tree.
func AutoDepthLimit(m *bitmatrix.Matrix) int {
	if m == nil {
		return 0
	}

	return ceilLog2(m.MaxRowWeight())
}

func ceilLog2(w int) int {
	d := 0
	for (1 << d) < w {
		d++
	}

	return d
}
