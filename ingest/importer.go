// SPDX-License-Identifier: MIT
// Package: ingest
//
// importer.go — file and directory import.

package ingest

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// DefaultExtensions lists the extensions ImportDir accepts by default.
var DefaultExtensions = []string{".txt", ".csv", ".json", ".magma"}

// DefaultMaxFileSize is the per-file size limit in bytes (500 MiB).
const DefaultMaxFileSize int64 = 500 << 20

// DirOptions controls ImportDir.
type DirOptions struct {
	Extensions  []string     // lower-case, with dot; empty = DefaultExtensions
	MaxFileSize int64        // bytes; <= 0 = DefaultMaxFileSize
	Logger      *slog.Logger // nil = slog.Default()
}

// FileResult is the outcome of importing one file.
type FileResult struct {
	Path    string
	Entries []Entry
	Err     error
}

// ParseFile dispatches content to the parser for ext.
func ParseFile(ext, content string) ([]Entry, error) {
	switch strings.ToLower(ext) {
	case ".txt":
		return ParseText(content)
	case ".csv":
		return ParseCSV(content)
	case ".json":
		return ParseJSON(content)
	case ".magma", ".mgm":
		return ParseMagma(content)
	default:
		return nil, fmt.Errorf("%q: %w", ext, ErrUnsupportedFormat)
	}
}

// ImportFile parses one file. Missing titles become "<base>_matrix_<n>" and
// missing groups become <base>.
func ImportFile(path string, maxSize int64) ([]Entry, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}
	if info.Size() > maxSize {
		return nil, fmt.Errorf("%s (%d bytes): %w", path, info.Size(), ErrTooLarge)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}

	ext := filepath.Ext(path)
	entries, err := ParseFile(ext, string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	base := strings.TrimSuffix(filepath.Base(path), ext)
	for i := range entries {
		if entries[i].Title == "" {
			entries[i].Title = fmt.Sprintf("%s_matrix_%d", base, i+1)
		}
		if entries[i].Group == "" {
			entries[i].Group = base
		}
	}

	return entries, nil
}

// ImportDir walks dir in lexical order and imports every file with an
// accepted extension. Per-file failures are reported in the results and do
// not stop the walk; only walk errors and cancellation are returned.
func ImportDir(ctx context.Context, dir string, opts DirOptions) ([]FileResult, error) {
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var results []FileResult
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("import: unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() && path != dir {
				return fs.SkipDir
			}
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			return nil
		}
		if !slices.Contains(exts, strings.ToLower(filepath.Ext(path))) {
			logger.Debug("import: skipping unsupported file", "path", path)
			return nil
		}

		entries, ierr := ImportFile(path, opts.MaxFileSize)
		if ierr != nil {
			logger.Warn("import: file failed", "path", path, "error", ierr)
		} else {
			logger.Info("import: file parsed", "path", path, "matrices", len(entries))
		}
		results = append(results, FileResult{Path: path, Entries: entries, Err: ierr})

		return nil
	})
	if err != nil {
		return results, fmt.Errorf("ingest: walk %s: %w", dir, err)
	}

	return results, nil
}
