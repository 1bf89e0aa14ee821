// Package heuristics_test checks every heuristic against the shared program
// contract: it expands to the input matrix, never exceeds the naive count and
// is deterministic.
package heuristics_test

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/xorslp/bitmatrix"
	"github.com/katalvlaran/xorslp/heuristics"
	"github.com/katalvlaran/xorslp/slp"
)

type synthFn func(*bitmatrix.Matrix, ...heuristics.Option) (*slp.Program, error)

var algorithms = map[string]synthFn{
	"paar":  heuristics.Paar,
	"boyar": heuristics.BoyarPeralta,
	"slp":   heuristics.SLP,
	"sbp":   heuristics.SBP,
}

func mustParse(tb testing.TB, rows [][]int) *bitmatrix.Matrix {
	tb.Helper()
	m, err := bitmatrix.Parse(rows)
	require.NoError(tb, err)

	return m
}

// randomMatrix fills an n×m matrix deterministically from seed.
func randomMatrix(tb testing.TB, n, m int, seed int64) *bitmatrix.Matrix {
	tb.Helper()
	rng := rand.New(rand.NewSource(seed))
	rows := make([][]int, n)
	for i := range rows {
		rows[i] = make([]int, m)
		for j := range rows[i] {
			rows[i][j] = rng.Intn(2)
		}
	}

	return mustParse(tb, rows)
}

func TestHammingXorCount(t *testing.T) {
	cases := []struct {
		name string
		rows [][]int
		want int
	}{
		{"single one", [][]int{{1}}, 0},
		{"identity", [][]int{{1, 0}, {0, 1}}, 0},
		{"zero row", [][]int{{0, 0}, {1, 1}}, 1},
		{"circulant", [][]int{{1, 1, 0}, {0, 1, 1}, {1, 0, 1}}, 3},
		{"dense", [][]int{{1, 1, 1, 1}, {1, 1, 1, 0}}, 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, heuristics.HammingXorCount(mustParse(t, tc.rows)))
		})
	}
	assert.Equal(t, 0, heuristics.HammingXorCount(nil))
}

func TestAutoDepthLimit(t *testing.T) {
	assert.Equal(t, 0, heuristics.AutoDepthLimit(mustParse(t, [][]int{{1, 0}})))
	assert.Equal(t, 1, heuristics.AutoDepthLimit(mustParse(t, [][]int{{1, 1}})))
	assert.Equal(t, 2, heuristics.AutoDepthLimit(mustParse(t, [][]int{{1, 1, 1}})))
	assert.Equal(t, 3, heuristics.AutoDepthLimit(mustParse(t, [][]int{{1, 1, 1, 1, 1}})))
}

func TestCirculant(t *testing.T) {
	m := mustParse(t, [][]int{{1, 1, 0}, {0, 1, 1}, {1, 0, 1}})
	for name, fn := range algorithms {
		t.Run(name, func(t *testing.T) {
			p, err := fn(m)
			require.NoError(t, err)
			require.NoError(t, p.Verify(m))
			assert.GreaterOrEqual(t, p.XorCount(), 2)
			assert.LessOrEqual(t, p.XorCount(), 3)
			assert.Equal(t, len(p.Gates), p.XorCount())

			// Row 0 is a single gate over x0 and x1.
			out := p.Outputs[0]
			require.GreaterOrEqual(t, out, p.Inputs)
			assert.Equal(t, slp.Gate{A: 0, B: 1}, p.Gates[out-p.Inputs])
		})
	}
}

func TestOutputConventions(t *testing.T) {
	m := mustParse(t, [][]int{{0, 0, 0}, {0, 1, 0}, {1, 1, 0}, {1, 1, 0}})
	for name, fn := range algorithms {
		t.Run(name, func(t *testing.T) {
			p, err := fn(m)
			require.NoError(t, err)
			require.NoError(t, p.Verify(m))
			assert.Equal(t, 1, p.XorCount())
			assert.Equal(t, slp.Zero, p.Outputs[0], "zero row")
			assert.Equal(t, 1, p.Outputs[1], "weight-1 row maps to its input")
			assert.Equal(t, p.Outputs[2], p.Outputs[3], "identical rows share a signal")
		})
	}
}

func TestNestedRows(t *testing.T) {
	// Each row extends the next: optimal is a chain of three gates.
	m := mustParse(t, [][]int{{1, 1, 1, 1}, {1, 1, 1, 0}, {1, 1, 0, 0}})
	require.Equal(t, 6, heuristics.HammingXorCount(m))
	for name, fn := range algorithms {
		t.Run(name, func(t *testing.T) {
			p, err := fn(m)
			require.NoError(t, err)
			require.NoError(t, p.Verify(m))
			assert.Equal(t, 3, p.XorCount())
		})
	}
}

func TestRandomMatrices_Contract(t *testing.T) {
	shapes := []struct{ n, m int }{{4, 4}, {8, 8}, {6, 10}, {12, 5}, {16, 16}}
	for _, sh := range shapes {
		for seed := int64(1); seed <= 3; seed++ {
			m := randomMatrix(t, sh.n, sh.m, seed*7919+int64(sh.n))
			naive := heuristics.HammingXorCount(m)
			for name, fn := range algorithms {
				p, err := fn(m)
				require.NoError(t, err, name)
				require.NoError(t, p.Verify(m), name)
				assert.LessOrEqual(t, p.XorCount(), naive, name)

				again, err := fn(m)
				require.NoError(t, err, name)
				assert.Equal(t, p, again, "%s is deterministic", name)

				for r := range p.Outputs {
					assert.LessOrEqual(t, p.OutputDepth(r), p.Depth())
				}
			}
		}
	}
}

func TestBoyarPeralta_DepthLimit(t *testing.T) {
	m := randomMatrix(t, 8, 8, 42)
	loose, err := heuristics.BoyarPeralta(m, heuristics.WithDepthLimit(16))
	require.NoError(t, err)
	require.NoError(t, loose.Verify(m))

	tight, err := heuristics.BoyarPeralta(m, heuristics.WithDepthLimit(1))
	require.NoError(t, err)
	require.NoError(t, tight.Verify(m), "the depth limit is a preference, never a failure")

	auto, err := heuristics.BoyarPeralta(m)
	require.NoError(t, err)
	require.NoError(t, auto.Verify(m))
	assert.GreaterOrEqual(t, auto.Depth(), heuristics.AutoDepthLimit(m), "a weight-w row needs depth ceil(log2 w)")
}

func TestSBP_DepthBound(t *testing.T) {
	// Every row shares x0⊕x1⊕x2. Reusing it costs fewer gates but pushes the
	// rows to depth 3; pairing inputs first keeps them at depth 2.
	m := mustParse(t, [][]int{
		{1, 1, 1, 1, 0, 0},
		{1, 1, 1, 0, 1, 0},
		{1, 1, 1, 0, 0, 1},
	})

	boyar, err := heuristics.BoyarPeralta(m, heuristics.WithDepthLimit(1))
	require.NoError(t, err)
	require.NoError(t, boyar.Verify(m))
	assert.Equal(t, 5, boyar.XorCount())
	assert.Equal(t, 3, boyar.Depth())

	sbp, err := heuristics.SBP(m, heuristics.WithDepthLimit(1))
	require.NoError(t, err)
	require.NoError(t, sbp.Verify(m))
	assert.Equal(t, 7, sbp.XorCount())
	assert.Equal(t, 2, sbp.Depth(), "weight-4 rows cannot go below depth 2")

	loose, err := heuristics.SBP(m, heuristics.WithDepthLimit(3))
	require.NoError(t, err)
	assert.Equal(t, boyar, loose, "a bound nothing exceeds leaves the Boyar–Peralta choice")
}

func TestSBP_FallsBackWhenNothingFits(t *testing.T) {
	m := randomMatrix(t, 8, 8, 42)
	p, err := heuristics.SBP(m, heuristics.WithDepthLimit(1))
	require.NoError(t, err)
	require.NoError(t, p.Verify(m))
	assert.LessOrEqual(t, p.XorCount(), heuristics.HammingXorCount(m))
}

func TestDistanceSearch_WideMatrix(t *testing.T) {
	if testing.Short() {
		t.Skip("wide matrix")
	}
	m := randomMatrix(t, 48, 48, 48)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, fn := range []synthFn{heuristics.BoyarPeralta, heuristics.SBP, heuristics.SLP} {
		p, err := fn(m, heuristics.WithContext(ctx))
		require.NoError(t, err)
		require.NoError(t, p.Verify(m))
		assert.Less(t, p.XorCount(), heuristics.HammingXorCount(m))
	}
}

func TestSearchBudget(t *testing.T) {
	m := randomMatrix(t, 10, 10, 7)
	for _, fn := range []synthFn{heuristics.BoyarPeralta, heuristics.SLP, heuristics.SBP} {
		p, err := fn(m, heuristics.WithSearchBudget(1))
		require.NoError(t, err)
		require.NoError(t, p.Verify(m))
	}
}

func TestErrors(t *testing.T) {
	for name, fn := range algorithms {
		_, err := fn(nil)
		assert.ErrorIs(t, err, heuristics.ErrNilMatrix, name)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := randomMatrix(t, 6, 6, 3)
	require.Positive(t, heuristics.HammingXorCount(m))
	for name, fn := range algorithms {
		_, err := fn(m, heuristics.WithContext(ctx))
		assert.ErrorIs(t, err, context.Canceled, name)
	}
}

func TestOptions_Panic(t *testing.T) {
	assert.Panics(t, func() { heuristics.WithDepthLimit(-1) })
	assert.Panics(t, func() { heuristics.WithSearchBudget(0) })
	assert.NotPanics(t, func() { heuristics.WithContext(nil) })
}

func TestRun(t *testing.T) {
	m := mustParse(t, [][]int{{1, 1}, {0, 1}})
	for _, a := range heuristics.Algorithms {
		p, err := heuristics.Run(a, m)
		require.NoError(t, err)
		assert.Equal(t, 1, p.XorCount())
	}
	assert.True(t, heuristics.AlgorithmBoyar.ReportsDepth())
	assert.True(t, heuristics.AlgorithmSBP.ReportsDepth())
	assert.False(t, heuristics.AlgorithmPaar.ReportsDepth())

	_, err := heuristics.Run("magic", m)
	assert.ErrorIs(t, err, heuristics.ErrUnknownAlgorithm)

	a, err := heuristics.ParseAlgorithm("slp")
	require.NoError(t, err)
	assert.Equal(t, heuristics.AlgorithmSLP, a)
	_, err = heuristics.ParseAlgorithm("magic")
	assert.ErrorIs(t, err, heuristics.ErrUnknownAlgorithm)
}
