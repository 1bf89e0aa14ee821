// SPDX-License-Identifier: MIT
// Package: service
//
// importer.go — directory import into the catalog.

package service

import (
	"context"

	"github.com/katalvlaran/xorslp/ingest"
)

// ImportSummary reports an import run.
type ImportSummary struct {
	Files      int         `json:"files"`
	Matrices   int         `json:"matrices"`
	Created    int         `json:"created"`
	Duplicates int         `json:"duplicates"`
	Failed     int         `json:"failed"`
	Errors     []ItemError `json:"errors,omitempty"`
}

// Import reads every supported file under dir and saves its matrices.
// New records are processed when process is set or the catalog processes
// immediately.
func (c *Catalog) Import(ctx context.Context, dir string, opts ingest.DirOptions, process bool) (ImportSummary, error) {
	ctx, span := tracer.Start(ctx, "service.Import")
	defer span.End()

	if opts.Logger == nil {
		opts.Logger = c.logger
	}
	files, err := ingest.ImportDir(ctx, dir, opts)
	sum := ImportSummary{Files: len(files)}
	for _, f := range files {
		if f.Err != nil {
			sum.Failed++
			sum.Errors = append(sum.Errors, ItemError{ID: f.Path, Error: f.Err.Error()})
			continue
		}
		for _, e := range f.Entries {
			sum.Matrices++
			_, created, serr := c.Save(ctx, e.Title, e.Group, e.Matrix, process)
			switch {
			case serr != nil:
				sum.Failed++
				sum.Errors = append(sum.Errors, ItemError{ID: e.Title, Error: serr.Error()})
			case created:
				sum.Created++
			default:
				sum.Duplicates++
			}
		}
	}
	c.logger.Info("import finished", "dir", dir, "files", sum.Files, "created", sum.Created, "duplicates", sum.Duplicates, "failed", sum.Failed)

	return sum, err
}
