// SPDX-License-Identifier: MIT
// Package: synthesis
//
// bulk.go — bounded worker pool over ComputeInverseAndPair.
//
// Semantics:
//   • A candidate is eligible when its SmallestXor is known and strictly
//     below maxSmallestXor (maxSmallestXor <= 0 disables the filter).
//   • With skipExisting, candidates that already have an inverse are skipped.
//   • Per-item failures (e.g. gf2.ErrSingular) are reported as Outcomes.
//   • No ordering guarantee across candidates. Cancellation stops the
//     dispatch of further candidates; the channel is always closed.

package synthesis

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Skip reasons.
const (
	ReasonNotSynthesized = "not synthesized"
	ReasonAboveLimit     = "smallest xor above limit"
	ReasonHasInverse     = "inverse already linked"
)

// BulkInvert inverts and pairs every eligible candidate on the engine's
// worker pool and streams one Outcome per candidate.
func (e *Engine) BulkInvert(ctx context.Context, candidates []Candidate, maxSmallestXor int, skipExisting bool) <-chan Outcome {
	out := make(chan Outcome, e.cfg.workers)

	go func() {
		defer close(out)
		e.logger.Info("bulk inversion started",
			"candidates", len(candidates),
			"max_smallest_xor", maxSmallestXor,
			"skip_existing", skipExisting)

		g := new(errgroup.Group)
		g.SetLimit(e.cfg.workers)
		for _, c := range candidates {
			if ctx.Err() != nil {
				break
			}
			if reason, skip := skipReason(c, maxSmallestXor, skipExisting); skip {
				bulkOutcomes.WithLabelValues("skipped").Inc()
				if !send(ctx, out, Outcome{ID: c.ID, Skipped: true, Reason: reason}) {
					break
				}
				continue
			}
			g.Go(func() error {
				o := Outcome{ID: c.ID}
				p, err := e.ComputeInverseAndPair(ctx, c.Matrix)
				if err != nil {
					o.Err = fmt.Errorf("candidate %s: %w", c.ID, err)
					bulkOutcomes.WithLabelValues("failed").Inc()
				} else {
					o.Pairing = p
					bulkOutcomes.WithLabelValues("paired").Inc()
				}
				send(ctx, out, o)
				return nil
			})
		}
		_ = g.Wait()
		e.logger.Info("bulk inversion finished", "canceled", ctx.Err() != nil)
	}()

	return out
}

func skipReason(c Candidate, maxSmallestXor int, skipExisting bool) (string, bool) {
	switch {
	case skipExisting && c.HasInverse:
		return ReasonHasInverse, true
	case maxSmallestXor > 0 && c.SmallestXor == nil:
		return ReasonNotSynthesized, true
	case maxSmallestXor > 0 && *c.SmallestXor >= maxSmallestXor:
		return ReasonAboveLimit, true
	default:
		return "", false
	}
}

// send delivers o unless ctx is done first.
func send(ctx context.Context, out chan<- Outcome, o Outcome) bool {
	select {
	case out <- o:
		return true
	case <-ctx.Done():
		return false
	}
}
