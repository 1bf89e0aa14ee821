// SPDX-License-Identifier: MIT
// Package: service
//
// inverse.go — inverse derivation, linkage and bulk inversion.

package service

import (
	"context"
	"fmt"

	"github.com/katalvlaran/xorslp/store"
	"github.com/katalvlaran/xorslp/synthesis"
)

// InverseSuffix is appended to a title to name its inverse.
const InverseSuffix = " (inverse)"

// InverseResult is the outcome of Invert.
type InverseResult struct {
	Original    *store.Record `json:"original"`
	Inverse     *store.Record `json:"inverse"`
	CombinedXor int           `json:"combined_xor"`
	// Reused is set when the link already existed and nothing was computed.
	Reused bool `json:"reused"`
}

// Invert derives, stores and links the inverse of a stored matrix. An
// existing link is returned as is; an inverse already stored under another
// title is linked rather than duplicated.
func (c *Catalog) Invert(ctx context.Context, id string) (*InverseResult, error) {
	ctx, span := tracer.Start(ctx, "service.Invert")
	defer span.End()

	rec, err := c.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.InverseMatrixID != "" {
		inv, err := c.store.Get(ctx, rec.InverseMatrixID)
		if err == nil {
			return newInverseResult(rec, inv, true), nil
		}
		c.logger.Warn("stale inverse link, recomputing", "id", id, "inverse_id", rec.InverseMatrixID)
	}

	m, err := rec.Matrix()
	if err != nil {
		return nil, fmt.Errorf("service: record %s: %w", id, err)
	}
	p, err := c.engine.ComputeInverseAndPair(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("service: invert %s: %w", id, err)
	}

	return c.persistPairing(ctx, rec, p)
}

// persistPairing stores both reports and the link.
func (c *Catalog) persistPairing(ctx context.Context, rec *store.Record, p *synthesis.Pairing) (*InverseResult, error) {
	orig, err := c.store.Update(ctx, rec.ID, func(r *store.Record) error {
		applyReport(r, p.Original)
		return nil
	})
	if err != nil {
		return nil, err
	}

	inv, created, err := c.store.SaveMatrix(ctx, rec.Title+InverseSuffix, rec.Group, p.InverseMatrix)
	if err != nil {
		return nil, err
	}
	inv, err = c.store.Update(ctx, inv.ID, func(r *store.Record) error {
		applyReport(r, p.Inverse)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err = c.store.LinkInverse(ctx, orig.ID, inv.ID); err != nil {
		return nil, err
	}
	orig.InverseMatrixID, orig.InverseMatrixHash = inv.ID, inv.MatrixHash

	c.logger.Info("inverse linked",
		"id", orig.ID,
		"inverse_id", inv.ID,
		"inverse_created", created,
		"combined_xor", p.CombinedXor)

	return newInverseResult(orig, inv, false), nil
}

func newInverseResult(orig, inv *store.Record, reused bool) *InverseResult {
	ox, _ := orig.EffectiveXor()
	ix, _ := inv.EffectiveXor()

	return &InverseResult{Original: orig, Inverse: inv, CombinedXor: ox + ix, Reused: reused}
}

// BulkInvert inverts every stored matrix with SmallestXor below
// maxSmallestXor (<= 0: no bound), optionally skipping linked ones.
func (c *Catalog) BulkInvert(ctx context.Context, maxSmallestXor int, skipExisting bool) (Summary, error) {
	ctx, span := tracer.Start(ctx, "service.BulkInvert")
	defer span.End()

	recs, err := c.store.ForBulkInverse(ctx, maxSmallestXor, skipExisting)
	if err != nil {
		return Summary{}, err
	}
	byID := make(map[string]*store.Record, len(recs))
	cands := make([]synthesis.Candidate, 0, len(recs))
	sum := Summary{Total: len(recs)}
	for _, r := range recs {
		m, merr := r.Matrix()
		if merr != nil {
			sum.Failed++
			sum.Errors = append(sum.Errors, ItemError{ID: r.ID, Error: merr.Error()})
			continue
		}
		byID[r.ID] = r
		cands = append(cands, synthesis.Candidate{
			ID:          r.ID,
			Matrix:      m,
			SmallestXor: r.SmallestXor,
			HasInverse:  r.InverseMatrixID != "",
		})
	}

	for o := range c.engine.BulkInvert(ctx, cands, maxSmallestXor, skipExisting) {
		switch {
		case o.Skipped:
			sum.Skipped++
		case o.Err != nil:
			sum.Failed++
			sum.Errors = append(sum.Errors, ItemError{ID: o.ID, Error: o.Err.Error()})
		default:
			if _, perr := c.persistPairing(ctx, byID[o.ID], o.Pairing); perr != nil {
				sum.Failed++
				sum.Errors = append(sum.Errors, ItemError{ID: o.ID, Error: perr.Error()})
				continue
			}
			sum.Processed++
		}
	}
	c.logger.Info("bulk inversion summary",
		"total", sum.Total, "processed", sum.Processed, "skipped", sum.Skipped, "failed", sum.Failed)

	return sum, ctx.Err()
}

// InversePairs lists linked pairs.
func (c *Catalog) InversePairs(ctx context.Context, f store.PairFilter) ([]store.Pair, int, error) {
	return c.store.InversePairs(ctx, f)
}
