// SPDX-License-Identifier: MIT

// Package bitmatrix provides the canonical in-memory representation of a
// binary matrix over GF(2), the unit of work for every XOR-count algorithm
// in this module.
//
// A Matrix is immutable once constructed. Each row is a fixed-length
// bit vector (github.com/bits-and-blooms/bitset) whose bit j is the
// coefficient of input variable x_j in that row's linear combination.
//
// Construction:
//
//	m, err := bitmatrix.Parse([][]int{{1, 1, 0}, {0, 1, 1}, {1, 0, 1}})
//	if err != nil {
//		var ve *bitmatrix.ValidationError
//		errors.As(err, &ve) // ve.Kind, ve.Row, ve.Col
//	}
//
// Codecs:
//
//	m.Binary() // "[1 1 0]\n[0 1 1]\n[1 0 1]"
//	m.Hex()    // "C,6,A"
//	m.Hash()   // SHA3-256 of Binary(), lower-case hex
//
// Hash is a pure function of the bit content and shape, so two matrices
// submitted independently collapse to one identity key.
package bitmatrix
