// SPDX-License-Identifier: MIT
// Package: synthesis
//
// options.go — Engine options. Constructors panic on meaningless values.

package synthesis

import (
	"fmt"
	"log/slog"

	"github.com/katalvlaran/xorslp/heuristics"
)

// Defaults.
const (
	DefaultWorkers      = 8
	DefaultCacheEntries = 1024
)

// Option configures an Engine.
type Option func(*config)

type config struct {
	logger       *slog.Logger
	workers      int
	depthLimit   int
	searchBudget int
	cacheEntries int
}

func defaultConfig() config {
	return config{
		logger:       slog.Default(),
		workers:      DefaultWorkers,
		searchBudget: heuristics.DefaultSearchBudget,
		cacheEntries: DefaultCacheEntries,
	}
}

// WithLogger sets the structured logger. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("synthesis: WithLogger(nil)")
	}
	return func(c *config) { c.logger = l }
}

// WithWorkers sets the bulk worker pool size. Panics on n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("synthesis: WithWorkers(%d)", n))
	}
	return func(c *config) { c.workers = n }
}

// WithDepthLimit sets the depth limit of Boyar–Peralta (a preference) and
// SBP (a bound), 0 = auto.
// Panics on negative values.
func WithDepthLimit(d int) Option {
	if d < 0 {
		panic(fmt.Sprintf("synthesis: WithDepthLimit(%d)", d))
	}
	return func(c *config) { c.depthLimit = d }
}

// WithSearchBudget bounds the per-row witness pair index of the distance
// heuristics. Panics on n < 1.
func WithSearchBudget(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("synthesis: WithSearchBudget(%d)", n))
	}
	return func(c *config) { c.searchBudget = n }
}

// WithCacheEntries bounds the report cache; 0 disables caching.
// Panics on negative values.
func WithCacheEntries(n int) Option {
	if n < 0 {
		panic(fmt.Sprintf("synthesis: WithCacheEntries(%d)", n))
	}
	return func(c *config) { c.cacheEntries = n }
}
