// SPDX-License-Identifier: MIT

// Command xorslp synthesizes low-XOR straight-line programs for binary
// matrices and serves the matrix catalog over HTTP.
//
//	xorslp synth matrices.txt
//	xorslp invert --format json mds.json
//	xorslp import ./data --process
//	xorslp bulk-invert --max-xor 40 --skip-existing
//	xorslp serve --config xorslp.yaml
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
