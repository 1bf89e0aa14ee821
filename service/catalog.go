// SPDX-License-Identifier: MIT
// Package: service
//
// catalog.go — save, process and recalculate.

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/xorslp/bitmatrix"
	"github.com/katalvlaran/xorslp/store"
	"github.com/katalvlaran/xorslp/synthesis"
)

var tracer = otel.Tracer("xorslp.service")

// ErrNilDependency indicates NewCatalog was given a nil store or engine.
var ErrNilDependency = errors.New("service: nil dependency")

// Catalog coordinates storage and synthesis.
type Catalog struct {
	store              *store.Store
	engine             *synthesis.Engine
	logger             *slog.Logger
	processImmediately bool
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLogger sets the logger. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("service: WithLogger(nil)")
	}
	return func(c *Catalog) { c.logger = l }
}

// WithProcessImmediately makes Save synthesize every newly stored matrix.
func WithProcessImmediately(on bool) Option {
	return func(c *Catalog) { c.processImmediately = on }
}

// NewCatalog builds a Catalog over s and e.
func NewCatalog(s *store.Store, e *synthesis.Engine, opts ...Option) (*Catalog, error) {
	if s == nil || e == nil {
		return nil, ErrNilDependency
	}
	c := &Catalog{store: s, engine: e, logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "catalog")

	return c, nil
}

// Engine exposes the synthesis engine for stateless requests.
func (c *Catalog) Engine() *synthesis.Engine { return c.engine }

// Get returns a stored record.
func (c *Catalog) Get(ctx context.Context, id string) (*store.Record, error) {
	return c.store.Get(ctx, id)
}

// List returns a filtered page of records and the total match count.
func (c *Catalog) List(ctx context.Context, f store.Filter) ([]*store.Record, int, error) {
	return c.store.List(ctx, f)
}

// Delete removes a record.
func (c *Catalog) Delete(ctx context.Context, id string) error {
	return c.store.Delete(ctx, id)
}

// Count returns the number of stored records.
func (c *Catalog) Count(ctx context.Context) (int, error) {
	return c.store.Count(ctx)
}

// Save stores m (deduplicated by hash). A newly created record is processed
// when process is set or the catalog processes immediately.
func (c *Catalog) Save(ctx context.Context, title, group string, m *bitmatrix.Matrix, process bool) (*store.Record, bool, error) {
	rec, created, err := c.store.SaveMatrix(ctx, title, group, m)
	if err != nil {
		return nil, false, err
	}
	if created && (process || c.processImmediately) {
		rec, err = c.Process(ctx, rec.ID)
		if err != nil {
			return nil, true, err
		}
	}

	return rec, created, nil
}

// Process synthesizes a stored matrix and persists every result.
func (c *Catalog) Process(ctx context.Context, id string) (*store.Record, error) {
	ctx, span := tracer.Start(ctx, "service.Process")
	defer span.End()
	span.SetAttributes(attribute.String("record.id", id))

	rec, err := c.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	m, err := rec.Matrix()
	if err != nil {
		return nil, fmt.Errorf("service: record %s: %w", id, err)
	}
	rep, err := c.engine.Synthesize(ctx, m)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("service: process %s: %w", id, err)
	}
	updated, err := c.store.Update(ctx, id, func(r *store.Record) error {
		applyReport(r, rep)
		return nil
	})
	if err != nil {
		return nil, err
	}
	c.logger.Info("matrix processed", "id", id, "title", rec.Title, "smallest_xor", rep.SmallestXor)

	return updated, nil
}

// Recalculate re-runs every algorithm for a stored matrix.
func (c *Catalog) Recalculate(ctx context.Context, id string) (*store.Record, error) {
	return c.Process(ctx, id)
}

// Summary reports a batch job.
type Summary struct {
	Total     int         `json:"total"`
	Processed int         `json:"processed"`
	Skipped   int         `json:"skipped"`
	Failed    int         `json:"failed"`
	Errors    []ItemError `json:"errors,omitempty"`
}

// ItemError names a failed item.
type ItemError struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// RecalculateMissing processes up to limit records lacking results
// (limit <= 0 means all) on the engine's worker pool.
func (c *Catalog) RecalculateMissing(ctx context.Context, limit int) (Summary, error) {
	recs, err := c.store.MissingAlgorithms(ctx, limit)
	if err != nil {
		return Summary{}, err
	}
	sum := Summary{Total: len(recs)}
	results := make([]error, len(recs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.engine.Workers())
	for i, r := range recs {
		g.Go(func() error {
			_, results[i] = c.Process(gctx, r.ID)
			return nil
		})
	}
	_ = g.Wait()

	for i, perr := range results {
		if perr != nil {
			sum.Failed++
			sum.Errors = append(sum.Errors, ItemError{ID: recs[i].ID, Error: perr.Error()})
			continue
		}
		sum.Processed++
	}
	c.logger.Info("recalculated missing results", "total", sum.Total, "failed", sum.Failed)

	return sum, ctx.Err()
}

// applyReport copies a synthesis report onto a record.
func applyReport(r *store.Record, rep *synthesis.Report) {
	naive := rep.NaiveXorCount
	smallest := rep.SmallestXor
	r.NaiveXorCount = &naive
	r.SmallestXor = &smallest
	if res := rep.Paar; res != nil {
		r.PaarXorCount, r.PaarProgram = intPtr(res.XorCount), res.Program.String()
	}
	if res := rep.Boyar; res != nil {
		r.BoyarXorCount, r.BoyarProgram = intPtr(res.XorCount), res.Program.String()
		if res.Depth != nil {
			r.BoyarDepth = intPtr(*res.Depth)
		}
	}
	if res := rep.SLP; res != nil {
		r.SLPXorCount, r.SLPProgram = intPtr(res.XorCount), res.Program.String()
	}
	if res := rep.SBP; res != nil {
		r.SBPXorCount, r.SBPProgram = intPtr(res.XorCount), res.Program.String()
		if res.Depth != nil {
			r.SBPDepth = intPtr(*res.Depth)
		}
	}
}

func intPtr(v int) *int { return &v }
