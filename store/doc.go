// SPDX-License-Identifier: MIT

// Package store persists matrix records and their synthesis results in
// BadgerDB.
//
// Layout:
//
//	rec/<uuid>   JSON-encoded Record
//	hash/<hash>  record id owning that content hash
//
// Matrices are deduplicated by content hash: saving a matrix whose hash is
// already stored returns the existing record. Listing queries scan the rec/
// prefix and filter in memory; catalogues are expected to stay in the tens
// of thousands of records.
package store
