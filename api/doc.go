// SPDX-License-Identifier: MIT

// Package api exposes the synthesis engine and the matrix catalog over HTTP.
//
// Routes (mounted under /v1 by NewRouter):
//
//	POST   /v1/synthesize                    full report for a batch of matrices
//	POST   /v1/synthesize/:algorithm         one heuristic (paar, boyar, slp, sbp) for a batch
//	POST   /v1/invert                        inverse and pairing for one matrix
//	GET    /v1/matrices                      filtered, paginated listing
//	POST   /v1/matrices                      save (and optionally process) a matrix
//	GET    /v1/matrices/:id                  one record
//	DELETE /v1/matrices/:id                  remove a record
//	POST   /v1/matrices/:id/inverse          derive, store and link the inverse
//	POST   /v1/matrices/:id/recalculate      rerun every heuristic
//	POST   /v1/matrices/:id/evaluate         run a stored program on input bits
//	POST   /v1/matrices/bulk-inverse         bulk inversion
//	POST   /v1/matrices/recalculate-missing  fill in absent results
//	GET    /v1/inverse-pairs                 linked pairs by combined cost
//	POST   /v1/import                        import a directory below the import root
//
// NewRouter also serves GET /health and GET /metrics.
package api
