// SPDX-License-Identifier: MIT

// Package xorslp finds short XOR circuits for linear maps over GF(2).
//
// A binary matrix M (n×m) maps an input vector x to y = M·x, where each
// output bit is the XOR of the inputs selected by a row. Evaluated row by
// row this costs Σ max(weight−1, 0) XOR gates; sharing intermediate sums
// cuts that, sometimes by half. The packages here search for such sharing
// and emit the result as a straight-line program (SLP).
//
// Layout:
//
//	bitmatrix/  Matrix type over bitset rows, parsing, hex/binary codecs, SHA3 hash
//	gf2/        Gauss-Jordan inversion, rank, product over GF(2)
//	slp/        Program, Builder, text form, verification by expansion
//	heuristics/ naive cost, Paar, Boyar–Peralta (depth-aware), SBP (depth-bounded), SLP
//	synthesis/  Engine: parallel runs, report cache, inverse pairing, bulk jobs
//	ingest/     text, CSV, JSON and Magma matrix files
//	store/      BadgerDB catalog of matrices and their best programs
//	service/    use cases joining engine and store
//	api/        gin HTTP routes
//	config/     YAML configuration with validation
//	logging/    slog construction
//	cmd/xorslp  cobra CLI (serve, synth, invert, import, bulk-invert)
//
// Quick start:
//
//	m, _ := bitmatrix.Parse([][]int{{1, 1, 0}, {0, 1, 1}, {1, 1, 1}})
//	p, _ := heuristics.BoyarPeralta(m)
//	fmt.Println(p.XorCount(), p.Depth())
//	fmt.Println(p)
//
// synthesis.Engine expands every program back to a matrix before reporting
// it; a mismatch surfaces as synthesis.ErrInternal.
package xorslp
