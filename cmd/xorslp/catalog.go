// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/xorslp/service"
)

func newImportCmd(a *app) *cobra.Command {
	var (
		process    bool
		extensions []string
		format     string
	)
	cmd := &cobra.Command{
		Use:   "import <dir>",
		Short: "Import matrix files from a directory into the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			catalog, closeCatalog, err := a.openCatalog()
			if err != nil {
				return err
			}
			defer closeCatalog()

			opts := a.cfg.DirOptions()
			if len(extensions) > 0 {
				opts.Extensions = extensions
			}
			sum, err := catalog.Import(cmd.Context(), args[0], opts, process)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if format == formatJSON {
				return writeJSON(w, sum)
			}
			fmt.Fprintf(w, "files %d, matrices %d, created %d, duplicates %d, failed %d\n",
				sum.Files, sum.Matrices, sum.Created, sum.Duplicates, sum.Failed)
			printItemErrors(w, sum.Errors)
			return nil
		},
	}
	cmd.Flags().BoolVar(&process, "process", false, "synthesize every newly stored matrix")
	cmd.Flags().StringSliceVar(&extensions, "ext", nil, "accepted extensions (default from config)")
	cmd.Flags().StringVar(&format, "format", formatText, "output format (text or json)")

	return cmd
}

func newBulkInvertCmd(a *app) *cobra.Command {
	var (
		maxXor       int
		skipExisting bool
		missingFirst bool
		format       string
	)
	cmd := &cobra.Command{
		Use:   "bulk-invert",
		Short: "Invert stored matrices whose best XOR count is below a bound",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			catalog, closeCatalog, err := a.openCatalog()
			if err != nil {
				return err
			}
			defer closeCatalog()

			ctx := cmd.Context()
			if missingFirst {
				if _, err := catalog.RecalculateMissing(ctx, 0); err != nil {
					return err
				}
			}
			sum, err := catalog.BulkInvert(ctx, maxXor, skipExisting)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if format == formatJSON {
				return writeJSON(w, sum)
			}
			fmt.Fprintf(w, "total %d, processed %d, skipped %d, failed %d\n",
				sum.Total, sum.Processed, sum.Skipped, sum.Failed)
			printItemErrors(w, sum.Errors)
			return nil
		},
	}
	cmd.Flags().IntVar(&maxXor, "max-xor", 0, "only matrices with smallest XOR below this (0 = no bound)")
	cmd.Flags().BoolVar(&skipExisting, "skip-existing", false, "skip matrices that already have a linked inverse")
	cmd.Flags().BoolVar(&missingFirst, "recalculate-missing", false, "first synthesize records lacking results")
	cmd.Flags().StringVar(&format, "format", formatText, "output format (text or json)")

	return cmd
}

func printItemErrors(w io.Writer, errs []service.ItemError) {
	for _, e := range errs {
		fmt.Fprintf(w, "  %s: %s\n", e.ID, e.Error)
	}
}
