// SPDX-License-Identifier: MIT
// Package: store
//
// errors.go — sentinel errors.

package store

import "errors"

var (
	// ErrNotFound indicates no record with the requested id or hash.
	ErrNotFound = errors.New("store: record not found")

	// ErrNilMatrix indicates SaveMatrix was called without a matrix.
	ErrNilMatrix = errors.New("store: nil matrix")

	// ErrPathRequired indicates a persistent store opened without a path.
	ErrPathRequired = errors.New("store: path is required for a persistent database")
)
