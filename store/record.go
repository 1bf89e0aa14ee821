// SPDX-License-Identifier: MIT
// Package: store
//
// record.go — the persisted matrix record.

package store

import (
	"time"

	"github.com/katalvlaran/xorslp/bitmatrix"
	"github.com/katalvlaran/xorslp/heuristics"
)

// Record is one stored matrix with whatever results have been computed.
// Nil counts mean "not computed yet". Programs are stored in slp text form.
type Record struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Group        string `json:"group"`
	Rows         int    `json:"rows"`
	Cols         int    `json:"cols"`
	MatrixBinary string `json:"matrix_binary"`
	MatrixHex    string `json:"matrix_hex"`
	MatrixHash   string `json:"matrix_hash"`

	NaiveXorCount *int   `json:"naive_xor_count"`
	BoyarXorCount *int   `json:"boyar_xor_count"`
	BoyarDepth    *int   `json:"boyar_depth"`
	BoyarProgram  string `json:"boyar_program,omitempty"`
	PaarXorCount  *int   `json:"paar_xor_count"`
	PaarProgram   string `json:"paar_program,omitempty"`
	SLPXorCount   *int   `json:"slp_xor_count"`
	SLPProgram    string `json:"slp_program,omitempty"`
	SBPXorCount   *int   `json:"sbp_xor_count"`
	SBPDepth      *int   `json:"sbp_depth"`
	SBPProgram    string `json:"sbp_program,omitempty"`
	SmallestXor   *int   `json:"smallest_xor"`

	InverseMatrixID   string `json:"inverse_matrix_id,omitempty"`
	InverseMatrixHash string `json:"inverse_matrix_hash,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Matrix decodes the stored matrix.
func (r *Record) Matrix() (*bitmatrix.Matrix, error) {
	return bitmatrix.ParseBinary(r.MatrixBinary)
}

// XorCount returns the stored count for a, or nil.
func (r *Record) XorCount(a heuristics.Algorithm) *int {
	switch a {
	case heuristics.AlgorithmPaar:
		return r.PaarXorCount
	case heuristics.AlgorithmBoyar:
		return r.BoyarXorCount
	case heuristics.AlgorithmSLP:
		return r.SLPXorCount
	case heuristics.AlgorithmSBP:
		return r.SBPXorCount
	default:
		return nil
	}
}

// Program returns the stored program text for a, or "".
func (r *Record) Program(a heuristics.Algorithm) string {
	switch a {
	case heuristics.AlgorithmPaar:
		return r.PaarProgram
	case heuristics.AlgorithmBoyar:
		return r.BoyarProgram
	case heuristics.AlgorithmSLP:
		return r.SLPProgram
	case heuristics.AlgorithmSBP:
		return r.SBPProgram
	default:
		return ""
	}
}

// Complete reports whether every algorithm result is present. Records
// stored before an algorithm was added count as incomplete.
func (r *Record) Complete() bool {
	if r.NaiveXorCount == nil {
		return false
	}
	for _, a := range heuristics.Algorithms {
		if r.XorCount(a) == nil {
			return false
		}
	}

	return true
}

// EffectiveXor is SmallestXor, falling back to the naive count.
func (r *Record) EffectiveXor() (int, bool) {
	switch {
	case r.SmallestXor != nil:
		return *r.SmallestXor, true
	case r.NaiveXorCount != nil:
		return *r.NaiveXorCount, true
	default:
		return 0, false
	}
}
