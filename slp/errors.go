// SPDX-License-Identifier: MIT
// Package: slp
//
// errors.go — sentinel errors for building, validating and parsing programs.

package slp

import (
	"errors"
	"fmt"
)

var (
	// ErrUndefinedSignal indicates a gate or output references a signal id
	// that does not exist (yet).
	ErrUndefinedSignal = errors.New("slp: undefined signal")

	// ErrSelfGate indicates a gate with identical operands (a + a = 0).
	ErrSelfGate = errors.New("slp: gate operands must differ")

	// ErrCycle indicates gate definitions that cannot be put in topological
	// order (a gate depends on itself or on a later gate).
	ErrCycle = errors.New("slp: cyclic gate definitions")

	// ErrMismatch indicates the expanded program differs from the target matrix.
	ErrMismatch = errors.New("slp: program does not reproduce matrix")

	// ErrParse indicates malformed program text.
	ErrParse = errors.New("slp: malformed program text")

	// ErrBadInputs indicates a non-positive input count or an input vector of
	// the wrong length.
	ErrBadInputs = errors.New("slp: invalid input count")
)

// lineErrorf wraps err with a 1-based line number of the program text.
func lineErrorf(line int, err error, format string, args ...any) error {
	return fmt.Errorf("line %d: %w: %s", line, err, fmt.Sprintf(format, args...))
}
