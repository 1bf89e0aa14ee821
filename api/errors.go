// SPDX-License-Identifier: MIT
// Package: api
//
// errors.go — mapping domain errors to HTTP status codes.

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/katalvlaran/xorslp/bitmatrix"
	"github.com/katalvlaran/xorslp/gf2"
	"github.com/katalvlaran/xorslp/heuristics"
	"github.com/katalvlaran/xorslp/ingest"
	"github.com/katalvlaran/xorslp/service"
	"github.com/katalvlaran/xorslp/slp"
	"github.com/katalvlaran/xorslp/store"
	"github.com/katalvlaran/xorslp/synthesis"
)

// Error codes carried in ErrorResponse.Code.
const (
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeInvalidMatrix    = "INVALID_MATRIX"
	CodeNotInvertible    = "NOT_INVERTIBLE"
	CodeNotFound         = "NOT_FOUND"
	CodeNoProgram        = "NO_PROGRAM"
	CodeUnknownAlgorithm = "UNKNOWN_ALGORITHM"
	CodeImportDisabled   = "IMPORT_DISABLED"
	CodeImportFailed     = "IMPORT_FAILED"
	CodeCanceled         = "CANCELED"
	CodeUnavailable      = "UNAVAILABLE"
	CodeInternal         = "INTERNAL_ERROR"
)

// classify returns the status and code for err.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, bitmatrix.ErrValidation),
		errors.Is(err, synthesis.ErrNilMatrix),
		errors.Is(err, heuristics.ErrNilMatrix):
		return http.StatusBadRequest, CodeInvalidMatrix
	case errors.Is(err, gf2.ErrSingularMatrix):
		return http.StatusUnprocessableEntity, CodeNotInvertible
	case errors.Is(err, heuristics.ErrUnknownAlgorithm):
		return http.StatusNotFound, CodeUnknownAlgorithm
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, service.ErrNoProgram):
		return http.StatusConflict, CodeNoProgram
	case errors.Is(err, slp.ErrBadInputs):
		return http.StatusBadRequest, CodeInvalidRequest
	case errors.Is(err, ingest.ErrNoMatrices),
		errors.Is(err, ingest.ErrUnsupportedFormat),
		errors.Is(err, ingest.ErrTooLarge),
		errors.Is(err, ingest.ErrMalformed):
		return http.StatusBadRequest, CodeImportFailed
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, CodeCanceled
	case errors.Is(err, synthesis.ErrEngineClosed):
		return http.StatusServiceUnavailable, CodeUnavailable
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

// errorBody builds the ErrorResponse for err. Internal errors keep their
// detail out of the reply.
func errorBody(err error) (int, ErrorResponse) {
	status, code := classify(err)
	if status == http.StatusInternalServerError {
		return status, ErrorResponse{Error: "internal error", Code: code}
	}

	return status, ErrorResponse{Error: err.Error(), Code: code}
}
