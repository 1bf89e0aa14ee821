// SPDX-License-Identifier: MIT
// Package: synthesis
//
// types.go — results exchanged with callers.

package synthesis

import (
	"github.com/katalvlaran/xorslp/bitmatrix"
	"github.com/katalvlaran/xorslp/heuristics"
	"github.com/katalvlaran/xorslp/slp"
)

// Result is the outcome of one heuristic. Depth is set only for algorithms
// with a depth contract (Boyar–Peralta and SBP).
type Result struct {
	Algorithm heuristics.Algorithm `json:"algorithm"`
	XorCount  int                  `json:"xor_count"`
	Depth     *int                 `json:"depth,omitempty"`
	Program   *slp.Program         `json:"program"`
}

// Report gathers every cost computed for one matrix.
type Report struct {
	Hash          string  `json:"matrix_hash"`
	Rows          int     `json:"rows"`
	Cols          int     `json:"cols"`
	NaiveXorCount int     `json:"naive_xor_count"`
	Paar          *Result `json:"paar"`
	Boyar         *Result `json:"boyar"`
	SLP           *Result `json:"slp"`
	SBP           *Result `json:"sbp"`
	SmallestXor   int     `json:"smallest_xor"`
}

// Result returns the result of algorithm a, or nil.
func (r *Report) Result(a heuristics.Algorithm) *Result {
	switch a {
	case heuristics.AlgorithmPaar:
		return r.Paar
	case heuristics.AlgorithmBoyar:
		return r.Boyar
	case heuristics.AlgorithmSLP:
		return r.SLP
	case heuristics.AlgorithmSBP:
		return r.SBP
	default:
		return nil
	}
}

// smallest returns min(naive, every heuristic count).
func (r *Report) smallest() int {
	best := r.NaiveXorCount
	for _, res := range []*Result{r.Paar, r.Boyar, r.SLP, r.SBP} {
		if res != nil && res.XorCount < best {
			best = res.XorCount
		}
	}

	return best
}

// Pairing links a matrix with its GF(2) inverse.
type Pairing struct {
	Original      *Report           `json:"original"`
	Inverse       *Report           `json:"inverse"`
	InverseMatrix *bitmatrix.Matrix `json:"inverse_matrix"`
	CombinedXor   int               `json:"combined_xor"`
	Involution    bool              `json:"involution"`
}

// Candidate is one matrix offered to BulkInvert.
type Candidate struct {
	ID          string
	Matrix      *bitmatrix.Matrix
	SmallestXor *int // nil when never synthesized
	HasInverse  bool
}

// Outcome is the per-candidate result of BulkInvert. Exactly one of
// Pairing, Skipped or Err is meaningful.
type Outcome struct {
	ID      string
	Pairing *Pairing
	Skipped bool
	Reason  string
	Err     error
}
