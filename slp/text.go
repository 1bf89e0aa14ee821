// SPDX-License-Identifier: MIT
// Package: slp
//
// text.go — human-readable program form and its parser.
//
// Grammar (one statement per line, '#' starts a comment):
//   # inputs N        optional header; otherwise N = 1 + largest x index
//   NAME = A + B      gate definition, any order, NAME not of the form x<i>
//   y<r> = S          output r, S is x<i>, a gate name, or 0

package slp

import (
	"fmt"
	"strconv"
	"strings"
)

const inputsHeader = "# inputs"

// SignalName renders signal id in text form: x<i> for inputs, t<k> for gates.
func (p *Program) SignalName(id int) string {
	switch {
	case id == Zero:
		return "0"
	case id < p.Inputs:
		return "x" + strconv.Itoa(id)
	default:
		return "t" + strconv.Itoa(id-p.Inputs)
	}
}

// Lines returns one statement per gate followed by one per output.
func (p *Program) Lines() []string {
	out := make([]string, 0, len(p.Gates)+len(p.Outputs))
	for k, g := range p.Gates {
		out = append(out, fmt.Sprintf("t%d = %s + %s", k, p.SignalName(g.A), p.SignalName(g.B)))
	}
	for r, o := range p.Outputs {
		out = append(out, fmt.Sprintf("y%d = %s", r, p.SignalName(o)))
	}

	return out
}

// String returns the full text form including the inputs header.
func (p *Program) String() string {
	return fmt.Sprintf("%s %d\n%s", inputsHeader, p.Inputs, strings.Join(p.Lines(), "\n"))
}

// gateDef is a parsed, not yet numbered gate.
type gateDef struct {
	a, b string
	line int
}

// ParseProgram decodes the text form. Gate definitions may appear in any order;
// they are renumbered in dependency order.
func ParseProgram(text string) (*Program, error) {
	inputs := -1
	maxInput := -1
	defs := make(map[string]gateDef)
	var order []string // definition order, the topological sort seeds from it
	outs := make(map[int]string)

	for n, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		lineNo := n + 1
		if strings.HasPrefix(line, inputsHeader) {
			v, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, inputsHeader)))
			if err != nil || v < 1 {
				return nil, lineErrorf(lineNo, ErrBadInputs, "%q", line)
			}
			inputs = v
			continue
		}
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		if line == "" {
			continue
		}

		lhs, rhs, ok := strings.Cut(line, "=")
		if !ok {
			return nil, lineErrorf(lineNo, ErrParse, "missing '=' in %q", line)
		}
		lhs = strings.TrimSpace(lhs)
		operands := strings.Split(rhs, "+")
		for i := range operands {
			operands[i] = strings.TrimSpace(operands[i])
			if operands[i] == "" {
				return nil, lineErrorf(lineNo, ErrParse, "empty operand in %q", line)
			}
			if x, isInput := inputIndex(operands[i]); isInput && x > maxInput {
				maxInput = x
			}
		}

		switch len(operands) {
		case 1:
			r, isOut := indexed(lhs, 'y')
			if !isOut {
				return nil, lineErrorf(lineNo, ErrParse, "output name %q is not y<r>", lhs)
			}
			if _, dup := outs[r]; dup {
				return nil, lineErrorf(lineNo, ErrParse, "output %q defined twice", lhs)
			}
			outs[r] = operands[0]
		case 2:
			if _, isInput := inputIndex(lhs); isInput || lhs == "" || lhs == "0" {
				return nil, lineErrorf(lineNo, ErrParse, "invalid gate name %q", lhs)
			}
			if _, dup := defs[lhs]; dup {
				return nil, lineErrorf(lineNo, ErrParse, "gate %q defined twice", lhs)
			}
			if operands[0] == operands[1] {
				return nil, lineErrorf(lineNo, ErrSelfGate, "%q", line)
			}
			defs[lhs] = gateDef{a: operands[0], b: operands[1], line: lineNo}
			order = append(order, lhs)
		default:
			return nil, lineErrorf(lineNo, ErrParse, "a gate XORs exactly two signals: %q", line)
		}
	}

	if inputs == -1 {
		inputs = maxInput + 1
	}
	if inputs < 1 {
		return nil, fmt.Errorf("ParseProgram: no inputs: %w", ErrBadInputs)
	}
	if maxInput >= inputs {
		return nil, fmt.Errorf("ParseProgram: x%d with %d inputs: %w", maxInput, inputs, ErrUndefinedSignal)
	}

	sorted, err := sortGates(defs, order)
	if err != nil {
		return nil, fmt.Errorf("ParseProgram: %w", err)
	}

	p := &Program{Inputs: inputs, Gates: make([]Gate, 0, len(sorted))}
	ids := make(map[string]int, len(sorted))
	resolve := func(name string) (int, error) {
		if x, ok := inputIndex(name); ok {
			return x, nil
		}
		if id, ok := ids[name]; ok {
			return id, nil
		}

		return 0, fmt.Errorf("ParseProgram: %q: %w", name, ErrUndefinedSignal)
	}
	for _, name := range sorted {
		d := defs[name]
		a, err := resolve(d.a)
		if err != nil {
			return nil, err
		}
		b, err := resolve(d.b)
		if err != nil {
			return nil, err
		}
		ids[name] = inputs + len(p.Gates)
		p.Gates = append(p.Gates, Gate{A: a, B: b})
	}

	p.Outputs = make([]int, len(outs))
	for r := 0; r < len(outs); r++ {
		src, ok := outs[r]
		if !ok {
			return nil, fmt.Errorf("ParseProgram: output y%d missing: %w", r, ErrParse)
		}
		if src == "0" {
			p.Outputs[r] = Zero
			continue
		}
		id, err := resolve(src)
		if err != nil {
			return nil, err
		}
		p.Outputs[r] = id
	}

	if err = p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// inputIndex parses "x<i>".
func inputIndex(name string) (int, bool) { return indexed(name, 'x') }

// indexed parses "<prefix><non-negative int>".
func indexed(name string, prefix byte) (int, bool) {
	if len(name) < 2 || name[0] != prefix {
		return 0, false
	}
	v, err := strconv.Atoi(name[1:])
	if err != nil || v < 0 {
		return 0, false
	}

	return v, true
}
