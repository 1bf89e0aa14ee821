// SPDX-License-Identifier: MIT
// Package: heuristics
//
// vkey.go — allocation-free map keys for vectors over GF(2).

package heuristics

import (
	"bytes"
	"encoding/binary"
)

// keyWords is the number of 64-bit words held inline by a vkey. Vectors up
// to 256 columns key without allocating.
const keyWords = 4

// vkey is a comparable image of a bit vector. Words past the inline head are
// packed little-endian into tail with trailing zero bytes trimmed, so vectors
// that differ only in zero padding share a key.
type vkey struct {
	head [keyWords]uint64
	tail string
}

// keyOf returns the key of the vector held in words.
func keyOf(words []uint64) vkey {
	var k vkey
	n := copy(k.head[:], words)
	if len(words) > n {
		buf := make([]byte, 0, 8*(len(words)-n))
		for _, w := range words[n:] {
			buf = binary.LittleEndian.AppendUint64(buf, w)
		}
		k.tail = string(bytes.TrimRight(buf, "\x00"))
	}

	return k
}

// xorKey returns keyOf(a ⊕ b) without materializing a ⊕ b.
func xorKey(a, b []uint64) vkey {
	var k vkey
	n := max(len(a), len(b))
	for i := 0; i < n && i < keyWords; i++ {
		k.head[i] = word(a, i) ^ word(b, i)
	}
	if n > keyWords {
		buf := make([]byte, 0, 8*(n-keyWords))
		for i := keyWords; i < n; i++ {
			buf = binary.LittleEndian.AppendUint64(buf, word(a, i)^word(b, i))
		}
		k.tail = string(bytes.TrimRight(buf, "\x00"))
	}

	return k
}

func word(w []uint64, i int) uint64 {
	if i < len(w) {
		return w[i]
	}
	return 0
}
