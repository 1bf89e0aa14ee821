// SPDX-License-Identifier: MIT
// Package: api
//
// routes.go — route table and router construction.

package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes mounts the versioned routes on rg.
//
//	v1 := router.Group("/v1")
//	api.RegisterRoutes(v1, handlers)
func RegisterRoutes(rg *gin.RouterGroup, h *Handlers) {
	rg.POST("/synthesize", h.HandleSynthesize)
	rg.POST("/synthesize/:algorithm", h.HandleAlgorithm)
	rg.POST("/invert", h.HandleInvert)

	matrices := rg.Group("/matrices")
	{
		matrices.GET("", h.HandleListMatrices)
		matrices.POST("", h.HandleSaveMatrix)
		matrices.POST("/bulk-inverse", h.HandleBulkInverse)
		matrices.POST("/recalculate-missing", h.HandleRecalculateMissing)
		matrices.GET("/:id", h.HandleGetMatrix)
		matrices.DELETE("/:id", h.HandleDeleteMatrix)
		matrices.POST("/:id/inverse", h.HandleInvertMatrix)
		matrices.POST("/:id/recalculate", h.HandleRecalculate)
		matrices.POST("/:id/evaluate", h.HandleEvaluate)
	}

	rg.GET("/inverse-pairs", h.HandleInversePairs)
	rg.POST("/import", h.HandleImport)
}

// NewRouter builds a gin engine with recovery, the /v1 routes, /health and
// /metrics. debug adds gin's request logger.
func NewRouter(h *Handlers, debug bool) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if debug {
		router.Use(gin.Logger())
	}

	RegisterRoutes(router.Group("/v1"), h)
	router.GET("/health", h.HandleHealth)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
