// SPDX-License-Identifier: MIT
// Package: store
//
// query.go — filtered listings, bulk-inverse candidates and inverse pairs.

package store

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
)

// Range bounds an optional count; nil ends are open. A set bound excludes
// records where the count is not computed.
type Range struct {
	Min *int `json:"min,omitempty"`
	Max *int `json:"max,omitempty"`
}

func (r Range) match(v *int) bool {
	if r.Min == nil && r.Max == nil {
		return true
	}
	if v == nil {
		return false
	}
	if r.Min != nil && *v < *r.Min {
		return false
	}

	return r.Max == nil || *v <= *r.Max
}

// Filter selects records for List. Title and Group are case-insensitive
// substrings. Limit <= 0 returns everything after Offset.
type Filter struct {
	Title    string
	Group    string
	Naive    Range
	Boyar    Range
	Paar     Range
	SLP      Range
	SBP      Range
	Smallest Range
	Limit    int
	Offset   int
}

func (f Filter) match(r *Record) bool {
	return containsFold(r.Title, f.Title) &&
		containsFold(r.Group, f.Group) &&
		f.Naive.match(r.NaiveXorCount) &&
		f.Boyar.match(r.BoyarXorCount) &&
		f.Paar.match(r.PaarXorCount) &&
		f.SLP.match(r.SLPXorCount) &&
		f.SBP.match(r.SBPXorCount) &&
		f.Smallest.match(r.SmallestXor)
}

// List returns one page of matching records ordered by CreatedAt then ID,
// and the total number of matches.
func (s *Store) List(ctx context.Context, f Filter) ([]*Record, int, error) {
	var all []*Record
	if err := s.scan(ctx, func(r *Record) bool {
		if f.match(r) {
			all = append(all, r)
		}
		return true
	}); err != nil {
		return nil, 0, fmt.Errorf("store: list: %w", err)
	}
	slices.SortFunc(all, byCreated)

	return page(all, f.Offset, f.Limit), len(all), nil
}

// ForBulkInverse returns records whose SmallestXor is known and below
// maxSmallestXor (maxSmallestXor <= 0 disables that bound), optionally
// skipping records that already link an inverse. Ordered by SmallestXor.
func (s *Store) ForBulkInverse(ctx context.Context, maxSmallestXor int, skipExisting bool) ([]*Record, error) {
	var out []*Record
	err := s.scan(ctx, func(r *Record) bool {
		if maxSmallestXor > 0 && (r.SmallestXor == nil || *r.SmallestXor >= maxSmallestXor) {
			return true
		}
		if skipExisting && r.InverseMatrixID != "" {
			return true
		}
		out = append(out, r)
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("store: bulk inverse candidates: %w", err)
	}
	slices.SortFunc(out, func(a, b *Record) int {
		ax, _ := a.EffectiveXor()
		bx, _ := b.EffectiveXor()
		if c := cmp.Compare(ax, bx); c != 0 {
			return c
		}
		return byCreated(a, b)
	})

	return out, nil
}

// MissingAlgorithms returns records lacking at least one result, oldest
// first. limit <= 0 returns all.
func (s *Store) MissingAlgorithms(ctx context.Context, limit int) ([]*Record, error) {
	var out []*Record
	err := s.scan(ctx, func(r *Record) bool {
		if !r.Complete() {
			out = append(out, r)
		}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("store: missing algorithms: %w", err)
	}
	slices.SortFunc(out, byCreated)

	return page(out, 0, limit), nil
}

// Pair sort orders.
const (
	SortCombinedAsc  = "combined_asc"
	SortCombinedDesc = "combined_desc"
	SortOriginalAsc  = "original_asc"
	SortOriginalDesc = "original_desc"
	SortInverseAsc   = "inverse_asc"
	SortInverseDesc  = "inverse_desc"
)

// PairFilter selects inverse pairs.
type PairFilter struct {
	Group       string
	MaxCombined *int
	Sort        string // one of the Sort* constants; default SortCombinedAsc
	Limit       int
	Offset      int
}

// Pair joins a record with its linked inverse. Costs use SmallestXor,
// falling back to the naive count.
type Pair struct {
	Original    *Record `json:"original"`
	Inverse     *Record `json:"inverse"`
	OriginalXor int     `json:"original_xor"`
	InverseXor  int     `json:"inverse_xor"`
	CombinedXor int     `json:"combined_xor"`
}

// InversePairs returns one page of linked pairs and the total count.
func (s *Store) InversePairs(ctx context.Context, f PairFilter) ([]Pair, int, error) {
	byID := make(map[string]*Record)
	if err := s.scan(ctx, func(r *Record) bool {
		byID[r.ID] = r
		return true
	}); err != nil {
		return nil, 0, fmt.Errorf("store: inverse pairs: %w", err)
	}

	var pairs []Pair
	for _, o := range byID {
		if o.InverseMatrixID == "" || !containsFold(o.Group, f.Group) {
			continue
		}
		inv, ok := byID[o.InverseMatrixID]
		if !ok {
			continue
		}
		ox, _ := o.EffectiveXor()
		ix, _ := inv.EffectiveXor()
		p := Pair{Original: o, Inverse: inv, OriginalXor: ox, InverseXor: ix, CombinedXor: ox + ix}
		if f.MaxCombined != nil && p.CombinedXor > *f.MaxCombined {
			continue
		}
		pairs = append(pairs, p)
	}

	key, desc := pairSortKey(f.Sort)
	slices.SortFunc(pairs, func(a, b Pair) int {
		c := cmp.Compare(key(a), key(b))
		if desc {
			c = -c
		}
		if c != 0 {
			return c
		}
		return byCreated(a.Original, b.Original)
	})

	return page(pairs, f.Offset, f.Limit), len(pairs), nil
}

func pairSortKey(order string) (func(Pair) int, bool) {
	switch order {
	case SortCombinedDesc:
		return func(p Pair) int { return p.CombinedXor }, true
	case SortOriginalAsc:
		return func(p Pair) int { return p.OriginalXor }, false
	case SortOriginalDesc:
		return func(p Pair) int { return p.OriginalXor }, true
	case SortInverseAsc:
		return func(p Pair) int { return p.InverseXor }, false
	case SortInverseDesc:
		return func(p Pair) int { return p.InverseXor }, true
	default:
		return func(p Pair) int { return p.CombinedXor }, false
	}
}

func byCreated(a, b *Record) int {
	if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
		return c
	}

	return strings.Compare(a.ID, b.ID)
}

func page[T any](items []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}

	return items
}

func containsFold(s, sub string) bool {
	return sub == "" || strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
