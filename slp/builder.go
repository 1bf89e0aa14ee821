// SPDX-License-Identifier: MIT
// Package: slp
//
// builder.go — incremental construction of a Program.
//
// Contract:
//   • Builders are not safe for concurrent use; each synthesis call owns one.
//   • Every signal's GF(2) value is kept so heuristics can look up "is this
//     vector already computed" in O(len) via Lookup.

package slp

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/xorslp/bitmatrix"
)

// Builder accumulates gates over a fixed number of inputs.
type Builder struct {
	inputs int
	gates  []Gate
	values []*bitset.BitSet // values[id] = row vector computed by signal id
	depth  []int            // depth[id]
	index  map[string]int   // VectorKey(value) → first signal computing it
}

// NewBuilder returns a Builder with inputs x0..x{inputs-1}.
// Panics if inputs < 1 (a programming error, never data-driven).
func NewBuilder(inputs int) *Builder {
	if inputs < 1 {
		panic(fmt.Sprintf("slp: NewBuilder(%d): inputs must be >= 1", inputs))
	}
	b := &Builder{
		inputs: inputs,
		values: make([]*bitset.BitSet, 0, 2*inputs),
		depth:  make([]int, 0, 2*inputs),
		index:  make(map[string]int, 2*inputs),
	}
	for i := 0; i < inputs; i++ {
		v := bitmatrix.Unit(inputs, i)
		b.values = append(b.values, v)
		b.depth = append(b.depth, 0)
		b.index[bitmatrix.VectorKey(v)] = i
	}

	return b
}

// Inputs returns the number of input signals.
func (b *Builder) Inputs() int { return b.inputs }

// Len returns the number of defined signals (inputs + gates).
func (b *Builder) Len() int { return len(b.values) }

// XorCount returns the number of gates emitted so far.
func (b *Builder) XorCount() int { return len(b.gates) }

// Input returns the signal id of input i.
func (b *Builder) Input(i int) (int, error) {
	if i < 0 || i >= b.inputs {
		return 0, fmt.Errorf("Input(%d): %w", i, ErrUndefinedSignal)
	}

	return i, nil
}

// Gate emits a new XOR gate over two existing, distinct signals and returns
// its id. The gate is emitted even when its value already exists; callers
// that want reuse check Lookup first.
func (b *Builder) Gate(a, c int) (int, error) {
	if !b.defined(a) || !b.defined(c) {
		return 0, fmt.Errorf("Gate(%d, %d): %w", a, c, ErrUndefinedSignal)
	}
	if a == c {
		return 0, fmt.Errorf("Gate(%d, %d): %w", a, c, ErrSelfGate)
	}

	id := len(b.values)
	v := bitmatrix.Xor(b.values[a], b.values[c])
	b.gates = append(b.gates, Gate{A: a, B: c})
	b.values = append(b.values, v)
	b.depth = append(b.depth, 1+max(b.depth[a], b.depth[c]))
	key := bitmatrix.VectorKey(v)
	if _, seen := b.index[key]; !seen {
		b.index[key] = id
	}

	return id, nil
}

// DepthOf returns the depth of signal id, or -1 if undefined.
func (b *Builder) DepthOf(id int) int {
	if !b.defined(id) {
		return -1
	}

	return b.depth[id]
}

// Value returns a copy of the row vector computed by signal id, or nil.
func (b *Builder) Value(id int) *bitset.BitSet {
	if !b.defined(id) {
		return nil
	}

	return b.values[id].Clone()
}

// Lookup returns the lowest signal id computing vec, if any.
func (b *Builder) Lookup(vec *bitset.BitSet) (int, bool) {
	id, ok := b.index[bitmatrix.VectorKey(vec)]

	return id, ok
}

// Finalize freezes the gates into a Program with the given outputs.
// Each output must be a defined signal or Zero.
func (b *Builder) Finalize(outputs []int) (*Program, error) {
	for r, o := range outputs {
		if o != Zero && !b.defined(o) {
			return nil, fmt.Errorf("Finalize: output %d -> %d: %w", r, o, ErrUndefinedSignal)
		}
	}
	p := &Program{
		Inputs:  b.inputs,
		Gates:   append([]Gate(nil), b.gates...),
		Outputs: append([]int(nil), outputs...),
	}

	return p, nil
}

func (b *Builder) defined(id int) bool { return id >= 0 && id < len(b.values) }
