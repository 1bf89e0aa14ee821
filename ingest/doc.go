// SPDX-License-Identifier: MIT

// Package ingest reads binary matrices from text, CSV, JSON and Magma exports.
//
// Every parser returns Entries in file order. Titles come from the input when
// it carries them (a "# title" or plain text line before a block, a "title"
// JSON field); ImportFile fills missing titles as "<file>_matrix_<n>" and sets
// Group to the file's base name.
package ingest
