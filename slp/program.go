// SPDX-License-Identifier: MIT
// Package: slp
//
// program.go — the frozen straight-line program and its semantics.

package slp

import (
	"encoding/json"
	"fmt"

	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/xorslp/bitmatrix"
)

// Zero is the output marker for an all-zero row (no signal needed).
const Zero = -1

// Gate XORs signals A and B.
type Gate struct {
	A int `json:"a"`
	B int `json:"b"`
}

// Program is an immutable straight-line XOR program.
type Program struct {
	Inputs  int    `json:"inputs"`
	Gates   []Gate `json:"gates"`
	Outputs []int  `json:"outputs"`
}

// XorCount returns the number of XOR gates.
func (p *Program) XorCount() int { return len(p.Gates) }

// Validate checks the structural invariants: a positive input count, gate
// operands that are distinct and strictly earlier than the gate itself, and
// outputs that are defined signals or Zero. An operand that refers to the
// gate itself or a later gate yields ErrCycle.
func (p *Program) Validate() error {
	if p.Inputs < 1 {
		return fmt.Errorf("Validate: %w", ErrBadInputs)
	}
	for k, g := range p.Gates {
		id := p.Inputs + k
		if g.A < 0 || g.B < 0 || g.A >= p.Inputs+len(p.Gates) || g.B >= p.Inputs+len(p.Gates) {
			return fmt.Errorf("Validate: gate %d: %w", k, ErrUndefinedSignal)
		}
		if g.A == g.B {
			return fmt.Errorf("Validate: gate %d: %w", k, ErrSelfGate)
		}
		if g.A >= id || g.B >= id {
			return fmt.Errorf("Validate: gate %d: %w", k, ErrCycle)
		}
	}
	n := p.Inputs + len(p.Gates)
	for r, o := range p.Outputs {
		if o != Zero && (o < 0 || o >= n) {
			return fmt.Errorf("Validate: output %d: %w", r, ErrUndefinedSignal)
		}
	}

	return nil
}

// depths returns depth per signal id. Assumes a valid program.
func (p *Program) depths() []int {
	d := make([]int, p.Inputs+len(p.Gates))
	for k, g := range p.Gates {
		d[p.Inputs+k] = 1 + max(d[g.A], d[g.B])
	}

	return d
}

// Depth returns the circuit depth: the largest output depth (0 if every
// output is an input or Zero).
func (p *Program) Depth() int {
	d := p.depths()
	best := 0
	for _, o := range p.Outputs {
		if o != Zero && d[o] > best {
			best = d[o]
		}
	}

	return best
}

// OutputDepth returns the depth of output r (0 for Zero), or -1 if r is out of range.
func (p *Program) OutputDepth(r int) int {
	if r < 0 || r >= len(p.Outputs) {
		return -1
	}
	o := p.Outputs[r]
	if o == Zero {
		return 0
	}

	return p.depths()[o]
}

// Expand computes the matrix realized by the program: row r is the GF(2)
// combination of inputs computed by Outputs[r].
func (p *Program) Expand() (*bitmatrix.Matrix, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if len(p.Outputs) == 0 {
		return nil, fmt.Errorf("Expand: no outputs: %w", ErrUndefinedSignal)
	}
	vals := make([]*bitset.BitSet, p.Inputs, p.Inputs+len(p.Gates))
	for i := 0; i < p.Inputs; i++ {
		vals[i] = bitmatrix.Unit(p.Inputs, i)
	}
	for _, g := range p.Gates {
		vals = append(vals, bitmatrix.Xor(vals[g.A], vals[g.B]))
	}
	rows := make([]*bitset.BitSet, len(p.Outputs))
	for r, o := range p.Outputs {
		if o == Zero {
			rows[r] = bitset.New(uint(p.Inputs))
			continue
		}
		rows[r] = vals[o]
	}

	return bitmatrix.FromRows(rows, p.Inputs)
}

// Verify returns nil iff the program expands exactly to m.
func (p *Program) Verify(m *bitmatrix.Matrix) error {
	got, err := p.Expand()
	if err != nil {
		return fmt.Errorf("Verify: %w", err)
	}
	if !got.Equal(m) {
		return fmt.Errorf("Verify: %w", ErrMismatch)
	}

	return nil
}

// Evaluate runs the program on concrete input bits and returns one bit per output.
func (p *Program) Evaluate(in []bool) ([]bool, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if len(in) != p.Inputs {
		return nil, fmt.Errorf("Evaluate: got %d inputs, want %d: %w", len(in), p.Inputs, ErrBadInputs)
	}
	wires := make([]bool, p.Inputs, p.Inputs+len(p.Gates))
	copy(wires, in)
	for _, g := range p.Gates {
		wires = append(wires, wires[g.A] != wires[g.B])
	}
	out := make([]bool, len(p.Outputs))
	for r, o := range p.Outputs {
		if o != Zero {
			out[r] = wires[o]
		}
	}

	return out, nil
}

// UnmarshalJSON decodes and validates a program.
func (p *Program) UnmarshalJSON(data []byte) error {
	type plain Program
	var raw plain
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("slp: decode: %w", err)
	}
	q := Program(raw)
	if err := q.Validate(); err != nil {
		return err
	}
	*p = q

	return nil
}
