// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/xorslp/ingest"
	"github.com/katalvlaran/xorslp/synthesis"
)

type invertOutput struct {
	Title   string             `json:"title"`
	Pairing *synthesis.Pairing `json:"pairing,omitempty"`
	Error   string             `json:"error,omitempty"`
}

func newInvertCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "invert <file>",
		Short: "Invert every matrix in a file and compare costs",
		Long: `Computes the GF(2) inverse of each matrix and synthesizes both. Singular
matrices are reported and skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			entries, err := ingest.ImportFile(args[0], a.cfg.Import.MaxFileSize)
			if err != nil {
				return err
			}
			engine, err := a.newEngine()
			if err != nil {
				return err
			}
			defer engine.Close()

			out := make([]invertOutput, 0, len(entries))
			for _, e := range entries {
				o := invertOutput{Title: e.Title}
				p, err := engine.ComputeInverseAndPair(cmd.Context(), e.Matrix)
				if err != nil {
					if cmd.Context().Err() != nil {
						return err
					}
					o.Error = err.Error()
				}
				o.Pairing = p
				out = append(out, o)
			}

			w := cmd.OutOrStdout()
			if format == formatJSON {
				return writeJSON(w, out)
			}
			for _, o := range out {
				if o.Pairing == nil {
					fmt.Fprintf(w, "%s: %s\n", o.Title, o.Error)
					continue
				}
				p := o.Pairing
				fmt.Fprintf(w, "%s: original %d, inverse %d, combined %d", o.Title,
					p.Original.SmallestXor, p.Inverse.SmallestXor, p.CombinedXor)
				if p.Involution {
					fmt.Fprint(w, " (involution)")
				}
				fmt.Fprintln(w)
				fmt.Fprintln(w, p.InverseMatrix.String())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", formatText, "output format (text or json)")

	return cmd
}
