// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/xorslp/heuristics"
	"github.com/katalvlaran/xorslp/ingest"
	"github.com/katalvlaran/xorslp/synthesis"
)

const (
	formatText = "text"
	formatJSON = "json"
)

func checkFormat(f string) error {
	if f != formatText && f != formatJSON {
		return fmt.Errorf("unknown --format %q (text or json)", f)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// synthOutput is one matrix in `synth --format json`.
type synthOutput struct {
	Title  string            `json:"title"`
	Report *synthesis.Report `json:"report,omitempty"`
	Result *synthesis.Result `json:"result,omitempty"`
}

func newSynthCmd(a *app) *cobra.Command {
	var (
		algorithm  string
		depthLimit int
		format     string
	)
	cmd := &cobra.Command{
		Use:   "synth <file>",
		Short: "Synthesize XOR programs for every matrix in a file",
		Long: `Reads matrices from a .txt, .csv, .json or .magma file and reports the
XOR count of each heuristic. With --algorithm only that heuristic runs and
its program is printed. --depth-limit overrides the configured depth limit
of boyar and sbp in either mode.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			var alg heuristics.Algorithm
			if algorithm != "" {
				parsed, err := heuristics.ParseAlgorithm(algorithm)
				if err != nil {
					return err
				}
				alg = parsed
			}
			if depthLimit < 0 {
				return fmt.Errorf("--depth-limit must be >= 0")
			}

			entries, err := ingest.ImportFile(args[0], a.cfg.Import.MaxFileSize)
			if err != nil {
				return err
			}
			var extra []synthesis.Option
			if depthLimit > 0 {
				extra = append(extra, synthesis.WithDepthLimit(depthLimit))
			}
			engine, err := a.newEngine(extra...)
			if err != nil {
				return err
			}
			defer engine.Close()

			ctx := cmd.Context()
			out := make([]synthOutput, 0, len(entries))
			for _, e := range entries {
				o := synthOutput{Title: e.Title}
				if alg != "" {
					o.Result, err = engine.Run(ctx, alg, e.Matrix, depthLimit)
				} else {
					o.Report, err = engine.Synthesize(ctx, e.Matrix)
				}
				if err != nil {
					return fmt.Errorf("%s: %w", e.Title, err)
				}
				out = append(out, o)
			}

			w := cmd.OutOrStdout()
			if format == formatJSON {
				return writeJSON(w, out)
			}
			for _, o := range out {
				if o.Result != nil {
					printResult(w, o.Title, o.Result)
				} else {
					printReport(w, o.Title, o.Report)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", "", "run one heuristic (paar, boyar, slp, sbp) and print its program")
	cmd.Flags().IntVar(&depthLimit, "depth-limit", 0, "boyar depth preference and sbp depth bound (0 = from config)")
	cmd.Flags().StringVar(&format, "format", formatText, "output format (text or json)")

	return cmd
}

func printReport(w io.Writer, title string, r *synthesis.Report) {
	fmt.Fprintf(w, "%s (%dx%d)\n", title, r.Rows, r.Cols)
	fmt.Fprintf(w, "  naive  %d\n", r.NaiveXorCount)
	for _, alg := range heuristics.Algorithms {
		res := r.Result(alg)
		if res == nil {
			continue
		}
		if res.Depth != nil {
			fmt.Fprintf(w, "  %-6s %d (depth %d)\n", alg, res.XorCount, *res.Depth)
		} else {
			fmt.Fprintf(w, "  %-6s %d\n", alg, res.XorCount)
		}
	}
	fmt.Fprintf(w, "  best   %d\n", r.SmallestXor)
}

func printResult(w io.Writer, title string, r *synthesis.Result) {
	fmt.Fprintf(w, "%s: %s %d XOR", title, r.Algorithm, r.XorCount)
	if r.Depth != nil {
		fmt.Fprintf(w, ", depth %d", *r.Depth)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, r.Program.String())
}
