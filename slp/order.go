// SPDX-License-Identifier: MIT
// Package: slp
//
// order.go — depth-first topological ordering of named gate definitions.
//
// Each gate depends on its operands; a post-order DFS therefore emits every
// gate after the gates it reads. Three-colour marking detects back-edges.
//
// Complexity: O(G) time and memory for G gates.

package slp

import "fmt"

// Visitation states.
const (
	white = iota // not yet visited
	gray         // on the current DFS path
	black        // fully processed
)

type gateSorter struct {
	defs  map[string]gateDef
	state map[string]int
	order []string
}

// sortGates returns gate names so that every gate follows its gate operands.
// Roots are visited in seed order, which keeps an already ordered program
// unchanged. Operands that are neither inputs nor defined gates are left for
// the caller to report.
func sortGates(defs map[string]gateDef, seed []string) ([]string, error) {
	s := &gateSorter{
		defs:  defs,
		state: make(map[string]int, len(defs)),
		order: make([]string, 0, len(defs)),
	}
	for _, name := range seed {
		if s.state[name] == white {
			if err := s.visit(name); err != nil {
				return nil, err
			}
		}
	}

	return s.order, nil
}

func (s *gateSorter) visit(name string) error {
	switch s.state[name] {
	case gray:
		return fmt.Errorf("gate %q (line %d): %w", name, s.defs[name].line, ErrCycle)
	case black:
		return nil
	}
	s.state[name] = gray

	d := s.defs[name]
	for _, op := range [2]string{d.a, d.b} {
		if _, isGate := s.defs[op]; !isGate {
			continue
		}
		if err := s.visit(op); err != nil {
			return err
		}
	}

	s.state[name] = black
	s.order = append(s.order, name)

	return nil
}
