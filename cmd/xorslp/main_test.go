// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/xorslp/config"
	"github.com/katalvlaran/xorslp/heuristics"
	"github.com/katalvlaran/xorslp/service"
	"github.com/katalvlaran/xorslp/synthesis"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvPath, "")

	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())

	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func inMemoryConfig(t *testing.T) string {
	t.Helper()
	return writeFile(t, t.TempDir(), "xorslp.yaml", "storage:\n  in_memory: true\n  path: \"\"\nlog:\n  level: error\n")
}

func TestSynthText(t *testing.T) {
	file := writeFile(t, t.TempDir(), "set.txt", "# circulant\n[1 1 0]\n[0 1 0]\n[0 1 1]\n")

	out, err := execute(t, "synth", "--log-level", "error", file)
	require.NoError(t, err)
	assert.Contains(t, out, "circulant (3x3)")
	assert.Contains(t, out, "naive  2")
	assert.Contains(t, out, "best   2")
}

func TestSynthSingleAlgorithm(t *testing.T) {
	file := writeFile(t, t.TempDir(), "set.txt", "[1 1 0]\n[0 1 0]\n[0 1 1]\n")

	out, err := execute(t, "synth", "-a", "boyar", "--log-level", "error", file)
	require.NoError(t, err)
	assert.Contains(t, out, "set_matrix_1: boyar 2 XOR, depth 1")
	assert.Contains(t, out, "# inputs 3")
	assert.Contains(t, out, "y1 = x1")
}

func TestSynthJSON(t *testing.T) {
	file := writeFile(t, t.TempDir(), "set.csv", "1,1\n0,1\n\n1,1,1\n")

	out, err := execute(t, "synth", "--format", "json", "--log-level", "error", file)
	require.NoError(t, err)

	var got []synthOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Report.SmallestXor)
	assert.Equal(t, 2, got[1].Report.SmallestXor)
}

func TestSynthDepthLimit(t *testing.T) {
	// Reusing x0⊕x1⊕x2 saves gates at depth 3; a bound of 1 makes sbp pair
	// inputs first and stay at depth 2.
	file := writeFile(t, t.TempDir(), "shared.txt", "[1 1 1 1 0 0]\n[1 1 1 0 1 0]\n[1 1 1 0 0 1]\n")

	report := func(args ...string) *synthesis.Report {
		t.Helper()
		out, err := execute(t, append([]string{"synth", "--format", "json", "--log-level", "error", file}, args...)...)
		require.NoError(t, err)
		var got []synthOutput
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		require.Len(t, got, 1)
		require.NotNil(t, got[0].Report)
		require.NotNil(t, got[0].Report.SBP)
		require.NotNil(t, got[0].Report.SBP.Depth)
		return got[0].Report
	}

	auto := report()
	assert.Equal(t, 3, *auto.SBP.Depth)
	assert.Equal(t, 5, auto.SBP.XorCount)

	bounded := report("--depth-limit", "1")
	assert.Equal(t, 2, *bounded.SBP.Depth)
	assert.Equal(t, 7, bounded.SBP.XorCount)
	assert.Equal(t, 5, bounded.SmallestXor)

	out, err := execute(t, "synth", "-a", "sbp", "--depth-limit", "1", "--log-level", "error", file)
	require.NoError(t, err)
	assert.Contains(t, out, "sbp 7 XOR, depth 2")
}

func TestSynthRejects(t *testing.T) {
	file := writeFile(t, t.TempDir(), "set.txt", "[1 1]\n")

	_, err := execute(t, "synth", "-a", "magic", file)
	assert.ErrorIs(t, err, heuristics.ErrUnknownAlgorithm)

	_, err = execute(t, "synth", "--format", "yaml", file)
	assert.Error(t, err)

	_, err = execute(t, "synth")
	assert.Error(t, err)
}

func TestInvert(t *testing.T) {
	file := writeFile(t, t.TempDir(), "set.txt", "[1 1]\n[0 1]\n\n[1 1]\n[1 1]\n")

	out, err := execute(t, "invert", "--log-level", "error", file)
	require.NoError(t, err)
	assert.Contains(t, out, "set_matrix_1: original 1, inverse 1, combined 2 (involution)")
	assert.Contains(t, out, "set_matrix_2: ")
	assert.Contains(t, out, "singular")
}

func TestImportAndBulkInvert(t *testing.T) {
	cfg := inMemoryConfig(t)
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "[1 1]\n[0 1]\n\n[1 0]\n[1 1]\n")

	out, err := execute(t, "import", "--config", cfg, "--process", "--format", "json", dir)
	require.NoError(t, err)
	var sum service.ImportSummary
	require.NoError(t, json.Unmarshal([]byte(out), &sum))
	assert.Equal(t, 1, sum.Files)
	assert.Equal(t, 2, sum.Created)

	// A fresh in-memory store is empty.
	out, err = execute(t, "bulk-invert", "--config", cfg, "--skip-existing")
	require.NoError(t, err)
	assert.Contains(t, out, "total 0, processed 0")
}

func TestBadConfig(t *testing.T) {
	cfg := writeFile(t, t.TempDir(), "bad.yaml", "engine:\n  workers: 0\n")

	_, err := execute(t, "synth", "--config", cfg, "x.txt")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}
