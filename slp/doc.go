// SPDX-License-Identifier: MIT

// Package slp models straight-line XOR programs over GF(2).
//
// A Program with m inputs owns signal ids 0..m-1 (the inputs x0..x{m-1}); gate k
// gets id m+k and XORs two earlier signals. Outputs[r] names the signal that
// reproduces row r of the synthesized matrix, or Zero for an all-zero row.
//
// Programs are produced through a Builder, which is scoped to a single
// synthesis call and tracks for every signal the GF(2) row vector it computes
// and its depth:
//
//	b := slp.NewBuilder(3)
//	t0, _ := b.Gate(0, 1)      // x0 + x1
//	t1, _ := b.Gate(t0, 2)     // x0 + x1 + x2
//	p, _ := b.Finalize([]int{t0, t1})
//	_ = p.Verify(m)            // Expand() must reproduce m
//
// Text form (round-trips through ParseProgram):
//
//	# inputs 3
//	t0 = x0 + x1
//	t1 = t0 + x2
//	y0 = t0
//	y1 = t1
//
// ParseProgram accepts gate definitions in any order and any gate names; it
// orders them with a depth-first topological sort and rejects cyclic
// definitions with ErrCycle.
package slp
