// SPDX-License-Identifier: MIT

// Package synthesis orchestrates XOR-count synthesis for GF(2) matrices.
//
// An Engine runs the naive cost model and the Paar, Boyar–Peralta, SLP and
// SBP heuristics concurrently for one matrix and fans the results into a Report.
// Every program is verified by expansion before it is reported; a program
// that does not reproduce its matrix yields ErrInternal.
//
// Reports are deduplicated per content hash: concurrent requests for the same
// matrix share one computation (singleflight) and completed reports are kept
// in a bounded cache.
//
// ComputeInverseAndPair synthesizes a matrix and its GF(2) inverse in
// parallel. BulkInvert applies it to many candidates on a bounded worker pool
// and streams per-item Outcomes; failures never abort the batch.
package synthesis
