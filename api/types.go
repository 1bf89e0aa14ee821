// SPDX-License-Identifier: MIT
// Package: api
//
// types.go — request and response bodies.

package api

import (
	"encoding/json"

	"github.com/katalvlaran/xorslp/bitmatrix"
	"github.com/katalvlaran/xorslp/heuristics"
	"github.com/katalvlaran/xorslp/service"
	"github.com/katalvlaran/xorslp/store"
	"github.com/katalvlaran/xorslp/synthesis"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// BatchRequest carries matrices for the stateless synthesis routes. Items
// stay raw until each is decoded on its own, so one malformed matrix fails
// only its result. DepthLimit applies to boyar and sbp on the
// single-algorithm route; 0 selects the automatic bound.
type BatchRequest struct {
	Matrices   []json.RawMessage `json:"matrices" binding:"required,min=1"`
	DepthLimit int               `json:"depth_limit" binding:"min=0"`
}

// AlgorithmResult is one matrix's outcome in an AlgorithmResponse.
type AlgorithmResult struct {
	MatrixIndex int      `json:"matrix_index"`
	XorCount    int      `json:"xor_count"`
	Depth       *int     `json:"depth,omitempty"`
	Program     []string `json:"program,omitempty"`
	Error       string   `json:"error,omitempty"`
}

// AlgorithmResponse answers POST /v1/synthesize/:algorithm.
type AlgorithmResponse struct {
	Algorithm heuristics.Algorithm `json:"algorithm"`
	Results   []AlgorithmResult    `json:"results"`
}

// ReportItem is one matrix's report in a ReportResponse.
type ReportItem struct {
	MatrixIndex int               `json:"matrix_index"`
	Report      *synthesis.Report `json:"report,omitempty"`
	Error       string            `json:"error,omitempty"`
}

// ReportResponse answers POST /v1/synthesize.
type ReportResponse struct {
	Results []ReportItem `json:"results"`
}

// InvertRequest carries one matrix for POST /v1/invert.
type InvertRequest struct {
	Matrix *bitmatrix.Matrix `json:"matrix" binding:"required"`
}

// SaveRequest carries a matrix for POST /v1/matrices. Process overrides the
// catalog's process-immediately setting when present.
type SaveRequest struct {
	Title   string            `json:"title" binding:"required,max=256"`
	Group   string            `json:"group" binding:"max=256"`
	Matrix  *bitmatrix.Matrix `json:"matrix" binding:"required"`
	Process *bool             `json:"process,omitempty"`
}

// EvaluateRequest carries input bits for POST /v1/matrices/:id/evaluate.
// Inputs is a 0/1 string, x0 first.
type EvaluateRequest struct {
	Algorithm string `json:"algorithm" binding:"required"`
	Inputs    string `json:"inputs" binding:"required"`
}

// EvaluateResponse answers POST /v1/matrices/:id/evaluate. Outputs is a 0/1
// string, y0 first.
type EvaluateResponse struct {
	ID        string               `json:"id"`
	Algorithm heuristics.Algorithm `json:"algorithm"`
	XorCount  int                  `json:"xor_count"`
	Inputs    string               `json:"inputs"`
	Outputs   string               `json:"outputs"`
}

// SaveResponse answers POST /v1/matrices.
type SaveResponse struct {
	Record  *store.Record `json:"record"`
	Created bool          `json:"created"`
}

// ListQuery binds GET /v1/matrices query parameters. Page is 1-based.
type ListQuery struct {
	Page        int    `form:"page" binding:"omitempty,min=1"`
	Limit       int    `form:"limit" binding:"omitempty,min=1,max=1000"`
	Title       string `form:"title"`
	Group       string `form:"group"`
	NaiveMin    *int   `form:"naive_xor_min"`
	NaiveMax    *int   `form:"naive_xor_max"`
	BoyarMin    *int   `form:"boyar_xor_min"`
	BoyarMax    *int   `form:"boyar_xor_max"`
	PaarMin     *int   `form:"paar_xor_min"`
	PaarMax     *int   `form:"paar_xor_max"`
	SLPMin      *int   `form:"slp_xor_min"`
	SLPMax      *int   `form:"slp_xor_max"`
	SBPMin      *int   `form:"sbp_xor_min"`
	SBPMax      *int   `form:"sbp_xor_max"`
	SmallestMin *int   `form:"smallest_xor_min"`
	SmallestMax *int   `form:"smallest_xor_max"`
}

// PairsQuery binds GET /v1/inverse-pairs query parameters.
type PairsQuery struct {
	Page        int    `form:"page" binding:"omitempty,min=1"`
	Limit       int    `form:"limit" binding:"omitempty,min=1,max=1000"`
	Group       string `form:"group"`
	MaxCombined *int   `form:"max_combined_xor"`
	Sort        string `form:"sort" binding:"omitempty,oneof=combined_asc combined_desc original_asc original_desc inverse_asc inverse_desc"`
}

// Page wraps a slice of items with pagination totals.
type Page[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"total_pages"`
}

// BulkInverseRequest carries POST /v1/matrices/bulk-inverse options.
// MaxSmallestXor <= 0 disables the cost filter.
type BulkInverseRequest struct {
	MaxSmallestXor int  `json:"max_smallest_xor"`
	SkipExisting   bool `json:"skip_existing"`
}

// RecalculateMissingRequest carries POST /v1/matrices/recalculate-missing
// options. Limit <= 0 processes every incomplete record.
type RecalculateMissingRequest struct {
	Limit int `json:"limit"`
}

// ImportRequest carries POST /v1/import options. Dir is resolved against the
// configured import root and must stay inside it.
type ImportRequest struct {
	Dir        string   `json:"dir"`
	Extensions []string `json:"extensions"`
	Process    bool     `json:"process"`
}

// SummaryResponse wraps a bulk job summary.
type SummaryResponse struct {
	Summary service.Summary `json:"summary"`
}

// HealthResponse answers GET /health.
type HealthResponse struct {
	Status   string `json:"status"`
	Matrices int    `json:"matrices"`
}
