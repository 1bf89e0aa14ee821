// SPDX-License-Identifier: MIT
// Package: synthesis
//
// metrics.go — Prometheus metrics and the OpenTelemetry tracer.

package synthesis

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var tracer trace.Tracer = otel.Tracer("xorslp.synthesis")

var (
	// runTotal counts heuristic runs by algorithm and result (ok|error).
	runTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "xorslp_synthesis_runs_total",
		Help: "Heuristic runs by algorithm and result",
	}, []string{"algorithm", "result"})

	// runDuration tracks heuristic latency.
	runDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "xorslp_synthesis_duration_seconds",
		Help:    "Heuristic run duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10), // 0.1ms to ~26s
	}, []string{"algorithm"})

	// xorCount records the XOR count produced per algorithm.
	xorCount = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "xorslp_synthesis_xor_count",
		Help:    "XOR gates per synthesized program",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	}, []string{"algorithm"})

	// reportCache counts report lookups (hit|miss|shared).
	reportCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "xorslp_report_cache_total",
		Help: "Report cache lookups by result",
	}, []string{"result"})

	// bulkOutcomes counts bulk inversion outcomes (paired|skipped|failed).
	bulkOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "xorslp_bulk_invert_outcomes_total",
		Help: "Bulk inversion outcomes",
	}, []string{"outcome"})
)
