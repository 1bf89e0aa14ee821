// SPDX-License-Identifier: MIT
// Package: bitmatrix
//
// vector.go — helpers for GF(2) row vectors shared by the algorithm packages.

package bitmatrix

import (
	"encoding/binary"

	"github.com/bits-and-blooms/bitset"
)

// Unit returns the length-n vector with only bit i set (input variable x_i).
func Unit(n, i int) *bitset.BitSet {
	return bitset.New(uint(n)).Set(uint(i))
}

// Xor returns a ⊕ b as a new vector; operands are untouched.
func Xor(a, b *bitset.BitSet) *bitset.BitSet {
	return a.SymmetricDifference(b)
}

// VectorKey returns a compact, comparable key for v, usable as a map key.
// Two vectors of the same length have equal keys iff they have equal bits.
func VectorKey(v *bitset.BitSet) string {
	words := v.Bytes()
	buf := make([]byte, 8*len(words))
	for i, w := range words {
		binary.LittleEndian.PutUint64(buf[8*i:], w)
	}

	return string(buf)
}
