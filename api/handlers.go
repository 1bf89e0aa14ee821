// SPDX-License-Identifier: MIT
// Package: api
//
// handlers.go — gin handlers over service.Catalog.

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/katalvlaran/xorslp/bitmatrix"
	"github.com/katalvlaran/xorslp/heuristics"
	"github.com/katalvlaran/xorslp/ingest"
	"github.com/katalvlaran/xorslp/service"
	"github.com/katalvlaran/xorslp/store"
)

// Default pagination.
const (
	DefaultPageLimit = 50
)

// errImportOutsideRoot rejects import paths escaping the import root.
var errImportOutsideRoot = errors.New("api: import path outside the import root")

// Handlers serves the HTTP routes.
type Handlers struct {
	catalog    *service.Catalog
	logger     *slog.Logger
	importRoot string
	importOpts ingest.DirOptions
}

// HandlerOption configures Handlers.
type HandlerOption func(*Handlers)

// WithHandlerLogger sets the logger. Panics on nil.
func WithHandlerLogger(l *slog.Logger) HandlerOption {
	if l == nil {
		panic("api: WithHandlerLogger(nil)")
	}
	return func(h *Handlers) { h.logger = l }
}

// WithImportRoot enables POST /v1/import for directories below root.
// An empty root leaves importing disabled.
func WithImportRoot(root string, opts ingest.DirOptions) HandlerOption {
	return func(h *Handlers) {
		h.importRoot = root
		h.importOpts = opts
	}
}

// NewHandlers builds Handlers over c. Panics on nil.
func NewHandlers(c *service.Catalog, opts ...HandlerOption) *Handlers {
	if c == nil {
		panic("api: NewHandlers(nil catalog)")
	}
	h := &Handlers{catalog: c, logger: slog.Default()}
	for _, opt := range opts {
		opt(h)
	}

	return h
}

// HandleSynthesize handles POST /v1/synthesize.
//
// Every matrix gets a full report. A matrix that does not decode or
// synthesize fails its own item only; a body that is not a batch at all is
// rejected with 400.
func (h *Handlers) HandleSynthesize(c *gin.Context) {
	logger := h.requestLogger(c, "HandleSynthesize")

	var req BatchRequest
	if !h.bind(c, logger, &req) {
		return
	}

	resp := ReportResponse{Results: make([]ReportItem, len(req.Matrices))}
	engine := h.catalog.Engine()
	for i, raw := range req.Matrices {
		resp.Results[i].MatrixIndex = i
		m, err := decodeMatrix(raw)
		if err != nil {
			resp.Results[i].Error = err.Error()
			continue
		}
		rep, err := engine.Synthesize(c.Request.Context(), m)
		if err != nil {
			if c.Request.Context().Err() != nil {
				h.fail(c, logger, err)
				return
			}
			resp.Results[i].Error = err.Error()
			continue
		}
		resp.Results[i].Report = rep
	}
	logger.Info("synthesized batch", "matrices", len(req.Matrices))
	c.JSON(http.StatusOK, resp)
}

// decodeMatrix decodes one batch item. JSON null decodes to a nil matrix,
// which the engine rejects with its own error.
func decodeMatrix(raw json.RawMessage) (*bitmatrix.Matrix, error) {
	var m *bitmatrix.Matrix
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}

	return m, nil
}

// HandleAlgorithm handles POST /v1/synthesize/:algorithm.
func (h *Handlers) HandleAlgorithm(c *gin.Context) {
	logger := h.requestLogger(c, "HandleAlgorithm")

	alg, err := heuristics.ParseAlgorithm(c.Param("algorithm"))
	if err != nil {
		h.fail(c, logger, err)
		return
	}
	var req BatchRequest
	if !h.bind(c, logger, &req) {
		return
	}

	resp := AlgorithmResponse{Algorithm: alg, Results: make([]AlgorithmResult, len(req.Matrices))}
	engine := h.catalog.Engine()
	for i, raw := range req.Matrices {
		item := &resp.Results[i]
		item.MatrixIndex = i
		m, err := decodeMatrix(raw)
		if err != nil {
			item.Error = err.Error()
			continue
		}
		r, err := engine.Run(c.Request.Context(), alg, m, req.DepthLimit)
		if err != nil {
			if c.Request.Context().Err() != nil {
				h.fail(c, logger, err)
				return
			}
			item.Error = err.Error()
			continue
		}
		item.XorCount = r.XorCount
		item.Depth = r.Depth
		item.Program = r.Program.Lines()
	}
	logger.Info("ran heuristic", "algorithm", alg, "matrices", len(req.Matrices))
	c.JSON(http.StatusOK, resp)
}

// HandleInvert handles POST /v1/invert. Nothing is stored.
func (h *Handlers) HandleInvert(c *gin.Context) {
	logger := h.requestLogger(c, "HandleInvert")

	var req InvertRequest
	if !h.bind(c, logger, &req) {
		return
	}
	p, err := h.catalog.Engine().ComputeInverseAndPair(c.Request.Context(), req.Matrix)
	if err != nil {
		h.fail(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// HandleListMatrices handles GET /v1/matrices.
func (h *Handlers) HandleListMatrices(c *gin.Context) {
	logger := h.requestLogger(c, "HandleListMatrices")

	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.badRequest(c, logger, err)
		return
	}
	page, limit := pagination(q.Page, q.Limit)
	f := store.Filter{
		Title:    q.Title,
		Group:    q.Group,
		Naive:    store.Range{Min: q.NaiveMin, Max: q.NaiveMax},
		Boyar:    store.Range{Min: q.BoyarMin, Max: q.BoyarMax},
		Paar:     store.Range{Min: q.PaarMin, Max: q.PaarMax},
		SLP:      store.Range{Min: q.SLPMin, Max: q.SLPMax},
		SBP:      store.Range{Min: q.SBPMin, Max: q.SBPMax},
		Smallest: store.Range{Min: q.SmallestMin, Max: q.SmallestMax},
		Limit:    limit,
		Offset:   (page - 1) * limit,
	}
	recs, total, err := h.catalog.List(c.Request.Context(), f)
	if err != nil {
		h.fail(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, newPage(recs, total, page, limit))
}

// HandleSaveMatrix handles POST /v1/matrices. Replies 201 for a new record
// and 200 when the matrix was already stored.
func (h *Handlers) HandleSaveMatrix(c *gin.Context) {
	logger := h.requestLogger(c, "HandleSaveMatrix")

	var req SaveRequest
	if !h.bind(c, logger, &req) {
		return
	}
	process := false
	if req.Process != nil {
		process = *req.Process
	}
	rec, created, err := h.catalog.Save(c.Request.Context(), req.Title, req.Group, req.Matrix, process)
	if err != nil {
		h.fail(c, logger, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	logger.Info("matrix saved", "id", rec.ID, "created", created)
	c.JSON(status, SaveResponse{Record: rec, Created: created})
}

// HandleGetMatrix handles GET /v1/matrices/:id.
func (h *Handlers) HandleGetMatrix(c *gin.Context) {
	logger := h.requestLogger(c, "HandleGetMatrix")

	rec, err := h.catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// HandleEvaluate handles POST /v1/matrices/:id/evaluate: it runs the stored
// program of one algorithm on the given input bits.
func (h *Handlers) HandleEvaluate(c *gin.Context) {
	logger := h.requestLogger(c, "HandleEvaluate")

	var req EvaluateRequest
	if !h.bind(c, logger, &req) {
		return
	}
	alg, err := heuristics.ParseAlgorithm(req.Algorithm)
	if err != nil {
		h.fail(c, logger, err)
		return
	}
	in, err := parseBits(req.Inputs)
	if err != nil {
		h.badRequest(c, logger, err)
		return
	}

	ev, err := h.catalog.Evaluate(c.Request.Context(), c.Param("id"), alg, in)
	if err != nil {
		h.fail(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, EvaluateResponse{
		ID:        ev.ID,
		Algorithm: ev.Algorithm,
		XorCount:  ev.XorCount,
		Inputs:    req.Inputs,
		Outputs:   formatBits(ev.Outputs),
	})
}

func parseBits(s string) ([]bool, error) {
	out := make([]bool, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
		case '1':
			out[i] = true
		default:
			return nil, fmt.Errorf("inputs: position %d: %q is not 0 or 1", i, s[i])
		}
	}

	return out, nil
}

func formatBits(bits []bool) string {
	var b strings.Builder
	b.Grow(len(bits))
	for _, v := range bits {
		if v {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}

	return b.String()
}

// HandleDeleteMatrix handles DELETE /v1/matrices/:id.
func (h *Handlers) HandleDeleteMatrix(c *gin.Context) {
	logger := h.requestLogger(c, "HandleDeleteMatrix")

	if err := h.catalog.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// HandleInvertMatrix handles POST /v1/matrices/:id/inverse.
func (h *Handlers) HandleInvertMatrix(c *gin.Context) {
	logger := h.requestLogger(c, "HandleInvertMatrix")

	res, err := h.catalog.Invert(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, logger, err)
		return
	}
	logger.Info("inverse linked", "id", res.Original.ID, "inverse_id", res.Inverse.ID, "reused", res.Reused)
	c.JSON(http.StatusOK, res)
}

// HandleRecalculate handles POST /v1/matrices/:id/recalculate.
func (h *Handlers) HandleRecalculate(c *gin.Context) {
	logger := h.requestLogger(c, "HandleRecalculate")

	rec, err := h.catalog.Recalculate(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// HandleBulkInverse handles POST /v1/matrices/bulk-inverse. The job runs to
// completion within the request.
func (h *Handlers) HandleBulkInverse(c *gin.Context) {
	logger := h.requestLogger(c, "HandleBulkInverse")

	var req BulkInverseRequest
	if !h.bindOptional(c, logger, &req) {
		return
	}
	sum, err := h.catalog.BulkInvert(c.Request.Context(), req.MaxSmallestXor, req.SkipExisting)
	if err != nil {
		h.fail(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, SummaryResponse{Summary: sum})
}

// HandleRecalculateMissing handles POST /v1/matrices/recalculate-missing.
func (h *Handlers) HandleRecalculateMissing(c *gin.Context) {
	logger := h.requestLogger(c, "HandleRecalculateMissing")

	var req RecalculateMissingRequest
	if !h.bindOptional(c, logger, &req) {
		return
	}
	sum, err := h.catalog.RecalculateMissing(c.Request.Context(), req.Limit)
	if err != nil {
		h.fail(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, SummaryResponse{Summary: sum})
}

// HandleInversePairs handles GET /v1/inverse-pairs.
func (h *Handlers) HandleInversePairs(c *gin.Context) {
	logger := h.requestLogger(c, "HandleInversePairs")

	var q PairsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.badRequest(c, logger, err)
		return
	}
	page, limit := pagination(q.Page, q.Limit)
	pairs, total, err := h.catalog.InversePairs(c.Request.Context(), store.PairFilter{
		Group:       q.Group,
		MaxCombined: q.MaxCombined,
		Sort:        q.Sort,
		Limit:       limit,
		Offset:      (page - 1) * limit,
	})
	if err != nil {
		h.fail(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, newPage(pairs, total, page, limit))
}

// HandleImport handles POST /v1/import.
func (h *Handlers) HandleImport(c *gin.Context) {
	logger := h.requestLogger(c, "HandleImport")

	if h.importRoot == "" {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Error: "import is disabled",
			Code:  CodeImportDisabled,
		})
		return
	}
	var req ImportRequest
	if !h.bindOptional(c, logger, &req) {
		return
	}
	dir, err := resolveBelow(h.importRoot, req.Dir)
	if err != nil {
		h.badRequest(c, logger, err)
		return
	}
	opts := h.importOpts
	if len(req.Extensions) > 0 {
		opts.Extensions = req.Extensions
	}
	sum, err := h.catalog.Import(c.Request.Context(), dir, opts, req.Process)
	if err != nil {
		h.fail(c, logger, err)
		return
	}
	logger.Info("import finished", "dir", dir, "created", sum.Created, "failed", sum.Failed)
	c.JSON(http.StatusOK, sum)
}

// HandleHealth handles GET /health.
func (h *Handlers) HandleHealth(c *gin.Context) {
	n, err := h.catalog.Count(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error: "store unavailable",
			Code:  CodeUnavailable,
		})
		return
	}
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Matrices: n})
}

// requestLogger tags the logger with the request id, echoing or minting
// the X-Request-ID header.
func (h *Handlers) requestLogger(c *gin.Context, handler string) *slog.Logger {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Header("X-Request-ID", requestID)

	return h.logger.With("request_id", requestID, "handler", handler)
}

// bind decodes a required JSON body, replying 400 on failure.
func (h *Handlers) bind(c *gin.Context, logger *slog.Logger, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.badRequest(c, logger, err)
		return false
	}

	return true
}

// bindOptional is bind for routes whose body may be empty.
func (h *Handlers) bindOptional(c *gin.Context, logger *slog.Logger, dst any) bool {
	if c.Request.ContentLength == 0 {
		return true
	}

	return h.bind(c, logger, dst)
}

func (h *Handlers) badRequest(c *gin.Context, logger *slog.Logger, err error) {
	logger.Warn("invalid request", "error", err)
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "invalid request",
		Code:    CodeInvalidRequest,
		Details: err.Error(),
	})
}

func (h *Handlers) fail(c *gin.Context, logger *slog.Logger, err error) {
	status, body := errorBody(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
	} else {
		logger.Warn("request rejected", "status", status, "error", err)
	}
	c.JSON(status, body)
}

// pagination applies defaults to a 1-based page and a limit.
func pagination(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}

	return page, limit
}

func newPage[T any](items []T, total, page, limit int) Page[T] {
	if items == nil {
		items = []T{}
	}

	return Page[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: (total + limit - 1) / limit,
	}
}

// resolveBelow joins rel onto root and rejects results outside root.
func resolveBelow(root, rel string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("api: import root: %w", err)
	}
	dir := filepath.Join(absRoot, filepath.Clean("/"+rel))
	back, err := filepath.Rel(absRoot, dir)
	if err != nil || back == ".." || strings.HasPrefix(back, ".."+string(filepath.Separator)) {
		return "", errImportOutsideRoot
	}

	return dir, nil
}
