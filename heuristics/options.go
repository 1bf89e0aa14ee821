// SPDX-License-Identifier: MIT
// Package: heuristics
//
// options.go — functional options.
//
// Contract:
//   • Option constructors validate and panic on meaningless inputs.
//   • Zero values mean "derive a default": depth limit 0 is computed from the
//     matrix as ceil(log2(max row weight)).

package heuristics

import (
	"context"
	"fmt"
)

// DefaultSearchBudget bounds the witness pairs indexed per target row.
const DefaultSearchBudget = 4096

// Option configures a heuristic run.
type Option func(*options)

type options struct {
	ctx          context.Context
	depthLimit   int // 0 = auto
	searchBudget int
}

func defaultOptions() options {
	return options{ctx: context.Background(), searchBudget: DefaultSearchBudget}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithDepthLimit sets the preferred circuit depth for BoyarPeralta.
// 0 selects ceil(log2(max row weight)). Panics on negative values.
func WithDepthLimit(d int) Option {
	if d < 0 {
		panic(fmt.Sprintf("heuristics: WithDepthLimit(%d)", d))
	}
	return func(o *options) { o.depthLimit = d }
}

// WithSearchBudget bounds how many witness pairs per target row are indexed
// when scoring candidate gates. Panics on values < 1.
func WithSearchBudget(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("heuristics: WithSearchBudget(%d)", n))
	}
	return func(o *options) { o.searchBudget = n }
}

// WithContext makes the search loops observe ctx cancellation.
// Passing a nil context has no effect.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}
