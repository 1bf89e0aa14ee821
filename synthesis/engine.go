// SPDX-License-Identifier: MIT
// Package: synthesis
//
// engine.go — Synthesize and ComputeInverseAndPair.

package synthesis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/katalvlaran/xorslp/bitmatrix"
	"github.com/katalvlaran/xorslp/gf2"
	"github.com/katalvlaran/xorslp/heuristics"
)

// Engine runs synthesis. It is safe for concurrent use.
type Engine struct {
	cfg    config
	logger *slog.Logger
	cache  *ristretto.Cache[string, *Report] // nil when disabled
	group  singleflight.Group
	closed atomic.Bool

	mu      sync.Mutex
	flights map[string]*flight
}

// flight is the detached context of one shared computation. It is canceled
// once its last waiter leaves, so a canceled caller never fails the others.
type flight struct {
	ctx     context.Context
	cancel  context.CancelFunc
	waiters int
}

// NewEngine builds an Engine.
func NewEngine(opts ...Option) (*Engine, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	e := &Engine{
		cfg:     cfg,
		logger:  cfg.logger.With("component", "synthesis"),
		flights: make(map[string]*flight),
	}
	if cfg.cacheEntries > 0 {
		cache, err := ristretto.NewCache(&ristretto.Config[string, *Report]{
			NumCounters: int64(cfg.cacheEntries) * 10,
			MaxCost:     int64(cfg.cacheEntries),
			BufferItems: 64,
		})
		if err != nil {
			return nil, fmt.Errorf("synthesis: report cache: %w", err)
		}
		e.cache = cache
	}

	return e, nil
}

// Close cancels running computations and releases the report cache.
// Further calls fail with ErrEngineClosed.
func (e *Engine) Close() {
	if e.closed.Swap(true) {
		return
	}
	e.mu.Lock()
	for key, f := range e.flights {
		f.cancel()
		delete(e.flights, key)
	}
	e.mu.Unlock()
	if e.cache != nil {
		e.cache.Close()
	}
}

// Workers returns the bulk worker pool size.
func (e *Engine) Workers() int { return e.cfg.workers }

// Synthesize computes the full Report for m. Concurrent calls for the same
// content hash share one computation; it runs detached from every caller and
// stops only when all of them have gone. Each caller returns as soon as its
// own ctx is done.
func (e *Engine) Synthesize(ctx context.Context, m *bitmatrix.Matrix) (*Report, error) {
	if m == nil {
		return nil, ErrNilMatrix
	}
	if e.closed.Load() {
		return nil, ErrEngineClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key := m.Hash()
	if e.cache != nil {
		if r, ok := e.cache.Get(key); ok {
			reportCache.WithLabelValues("hit").Inc()
			return r, nil
		}
	}

	for {
		f := e.join(ctx, key)
		ch := e.group.DoChan(key, func() (any, error) {
			defer e.land(key, f)
			if e.cache != nil {
				if r, ok := e.cache.Get(key); ok {
					return r, nil
				}
			}
			r, err := e.synthesize(f.ctx, m, key)
			if err != nil {
				return nil, err
			}
			if e.cache != nil && !e.closed.Load() {
				e.cache.Set(key, r, 1)
				e.cache.Wait()
			}

			return r, nil
		})

		select {
		case <-ctx.Done():
			e.leave(key, f)
			return nil, ctx.Err()
		case res := <-ch:
			e.leave(key, f)
			if res.Shared {
				reportCache.WithLabelValues("shared").Inc()
			} else {
				reportCache.WithLabelValues("miss").Inc()
			}
			if res.Err != nil {
				// The flight we joined was abandoned by its own waiters
				// while ours is still live: start over.
				if isCanceled(res.Err) && ctx.Err() == nil && !e.closed.Load() {
					continue
				}
				return nil, res.Err
			}

			return res.Val.(*Report), nil
		}
	}
}

// join registers the caller as a waiter of key's flight, starting one with
// a context detached from ctx when none is running.
func (e *Engine) join(ctx context.Context, key string) *flight {
	e.mu.Lock()
	defer e.mu.Unlock()
	f, ok := e.flights[key]
	if !ok {
		fctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		f = &flight{ctx: fctx, cancel: cancel}
		e.flights[key] = f
	}
	f.waiters++

	return f
}

// leave drops one waiter; the last one out cancels the flight.
func (e *Engine) leave(key string, f *flight) {
	e.mu.Lock()
	defer e.mu.Unlock()
	f.waiters--
	if f.waiters > 0 {
		return
	}
	if e.flights[key] == f {
		delete(e.flights, key)
	}
	f.cancel()
}

// land unpublishes a finished flight so later callers start a fresh one.
func (e *Engine) land(key string, f *flight) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.flights[key] == f {
		delete(e.flights, key)
	}
}

func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// synthesize fans the heuristics out and fans their results into a Report.
func (e *Engine) synthesize(ctx context.Context, m *bitmatrix.Matrix, key string) (*Report, error) {
	ctx, span := tracer.Start(ctx, "synthesis.Synthesize", trace.WithAttributes(
		attribute.String("matrix.hash", key),
		attribute.Int("matrix.rows", m.Rows()),
		attribute.Int("matrix.cols", m.Cols()),
	))
	defer span.End()

	rep := &Report{
		Hash:          key,
		Rows:          m.Rows(),
		Cols:          m.Cols(),
		NaiveXorCount: heuristics.HammingXorCount(m),
	}

	results := make([]*Result, len(heuristics.Algorithms))
	g, gctx := errgroup.WithContext(ctx)
	for i, alg := range heuristics.Algorithms {
		g.Go(func() error {
			r, err := e.run(gctx, alg, m, e.cfg.depthLimit)
			results[i] = r
			return err
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	for _, r := range results {
		switch r.Algorithm {
		case heuristics.AlgorithmPaar:
			rep.Paar = r
		case heuristics.AlgorithmBoyar:
			rep.Boyar = r
		case heuristics.AlgorithmSLP:
			rep.SLP = r
		case heuristics.AlgorithmSBP:
			rep.SBP = r
		}
	}
	rep.SmallestXor = rep.smallest()
	span.SetAttributes(attribute.Int("xor.smallest", rep.SmallestXor))
	span.SetStatus(codes.Ok, "")

	e.logger.Debug("synthesized",
		"hash", key,
		"naive", rep.NaiveXorCount,
		"paar", rep.Paar.XorCount,
		"boyar", rep.Boyar.XorCount,
		"slp", rep.SLP.XorCount,
		"sbp", rep.SBP.XorCount,
		"smallest", rep.SmallestXor)

	return rep, nil
}

// Run executes a single heuristic on m and verifies its program. depthLimit
// applies to Boyar–Peralta and SBP only (0 = auto). Results of Run are not cached.
func (e *Engine) Run(ctx context.Context, alg heuristics.Algorithm, m *bitmatrix.Matrix, depthLimit int) (*Result, error) {
	if m == nil {
		return nil, ErrNilMatrix
	}
	if e.closed.Load() {
		return nil, ErrEngineClosed
	}
	if depthLimit < 0 {
		depthLimit = 0
	}

	return e.run(ctx, alg, m, depthLimit)
}

func (e *Engine) run(ctx context.Context, alg heuristics.Algorithm, m *bitmatrix.Matrix, depthLimit int) (*Result, error) {
	ctx, span := tracer.Start(ctx, "synthesis.run."+string(alg))
	defer span.End()

	opts := []heuristics.Option{
		heuristics.WithContext(ctx),
		heuristics.WithSearchBudget(e.cfg.searchBudget),
	}
	if alg.ReportsDepth() {
		opts = append(opts, heuristics.WithDepthLimit(depthLimit))
	}

	start := time.Now()
	p, err := heuristics.Run(alg, m, opts...)
	runDuration.WithLabelValues(string(alg)).Observe(time.Since(start).Seconds())
	if err == nil {
		if verr := p.Verify(m); verr != nil {
			err = fmt.Errorf("%w: %s: %v", ErrInternal, alg, verr)
		}
	}
	if err != nil {
		runTotal.WithLabelValues(string(alg), "error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		e.logger.Warn("heuristic failed", "algorithm", alg, "error", err)
		return nil, err
	}
	runTotal.WithLabelValues(string(alg), "ok").Inc()
	xorCount.WithLabelValues(string(alg)).Observe(float64(p.XorCount()))

	r := &Result{Algorithm: alg, XorCount: p.XorCount(), Program: p}
	if alg.ReportsDepth() {
		d := p.Depth()
		r.Depth = &d
		span.SetAttributes(attribute.Int("xor.depth", d))
	}
	span.SetAttributes(attribute.Int("xor.count", r.XorCount))

	return r, nil
}

// ComputeInverseAndPair synthesizes m and its inverse concurrently. The
// inverse is computed first, so a singular m starts no synthesis at all.
// Errors: gf2.ErrNonSquare / gf2.ErrSingular (both gf2.ErrSingularMatrix).
func (e *Engine) ComputeInverseAndPair(ctx context.Context, m *bitmatrix.Matrix) (*Pairing, error) {
	if m == nil {
		return nil, ErrNilMatrix
	}
	ctx, span := tracer.Start(ctx, "synthesis.ComputeInverseAndPair")
	defer span.End()

	invM, err := gf2.Invert(m)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var orig, inv *Report
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := e.Synthesize(gctx, m)
		orig = r
		return err
	})
	g.Go(func() error {
		r, err := e.Synthesize(gctx, invM)
		inv = r
		return err
	})
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetStatus(codes.Ok, "")

	return &Pairing{
		Original:      orig,
		Inverse:       inv,
		InverseMatrix: invM,
		CombinedXor:   orig.SmallestXor + inv.SmallestXor,
		Involution:    gf2.IsInvolution(m),
	}, nil
}
