// SPDX-License-Identifier: MIT

// Package service joins the synthesis engine with the record store.
//
// Catalog is the use-case layer behind the HTTP API and the CLI: it saves and
// processes matrices, derives and links inverses, runs bulk jobs and imports
// files. It owns no state besides its collaborators.
package service
