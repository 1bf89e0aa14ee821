// SPDX-License-Identifier: MIT

// Package heuristics synthesizes XOR straight-line programs for GF(2) matrices.
//
// Algorithms:
//
//	HammingXorCount  Σ_rows max(weight−1, 0); the cost of computing every row
//	                 independently, and the upper bound for every heuristic.
//	Paar             greedy common-subexpression elimination: repeatedly XOR
//	                 the signal pair shared by the most rows.
//	BoyarPeralta     base/distance search: grow a base of signals, keep for every
//	                 target row the number of base elements it still needs, and
//	                 add the pair XOR that lowers total distance most. Ties prefer
//	                 gates within a depth budget, then shallower gates.
//	SBP              the BoyarPeralta search with the depth budget as a hard
//	                 filter; falls back to the preference when nothing fits.
//	SLP              the same search with norm-first ranking and no depth budget.
//
// All algorithms are deterministic: ties resolve to the lowest signal pair.
// They never panic at runtime; option constructors panic on meaningless values.
//
// Output conventions shared by every algorithm: an all-zero row maps to
// slp.Zero, a weight-1 row maps to its input signal, and identical rows share
// one signal.
//
// Every loop strictly lowers remaining work per step, so the number of gates
// never exceeds HammingXorCount(m).
package heuristics
