// SPDX-License-Identifier: MIT
// Package: service
//
// evaluate.go — run a stored program on concrete input bits.

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/xorslp/heuristics"
	"github.com/katalvlaran/xorslp/slp"
)

// ErrNoProgram indicates a record without a stored program for the
// requested algorithm.
var ErrNoProgram = errors.New("service: no stored program")

// Evaluation is the output of one stored program on one input vector.
type Evaluation struct {
	ID        string               `json:"id"`
	Algorithm heuristics.Algorithm `json:"algorithm"`
	XorCount  int                  `json:"xor_count"`
	Outputs   []bool               `json:"outputs"`
}

// Evaluate parses the program stored for alg on record id and runs it on in.
// Errors: store.ErrNotFound, ErrNoProgram, slp.ErrBadInputs for an input
// vector of the wrong length.
func (c *Catalog) Evaluate(ctx context.Context, id string, alg heuristics.Algorithm, in []bool) (*Evaluation, error) {
	rec, err := c.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	text := rec.Program(alg)
	if text == "" {
		return nil, fmt.Errorf("record %s, %s: %w", id, alg, ErrNoProgram)
	}
	p, err := slp.ParseProgram(text)
	if err != nil {
		return nil, fmt.Errorf("service: record %s: %w", id, err)
	}
	out, err := p.Evaluate(in)
	if err != nil {
		return nil, err
	}

	return &Evaluation{ID: id, Algorithm: alg, XorCount: p.XorCount(), Outputs: out}, nil
}
