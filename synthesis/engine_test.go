// Package synthesis_test exercises the Engine end to end.
package synthesis_test

import (
	"context"
	"io"
	"log/slog"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/xorslp/bitmatrix"
	"github.com/katalvlaran/xorslp/gf2"
	"github.com/katalvlaran/xorslp/heuristics"
	"github.com/katalvlaran/xorslp/synthesis"
)

func newEngine(t *testing.T, opts ...synthesis.Option) *synthesis.Engine {
	t.Helper()
	opts = append([]synthesis.Option{synthesis.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	e, err := synthesis.NewEngine(opts...)
	require.NoError(t, err)
	t.Cleanup(e.Close)

	return e
}

func mustParse(t *testing.T, rows [][]int) *bitmatrix.Matrix {
	t.Helper()
	m, err := bitmatrix.Parse(rows)
	require.NoError(t, err)

	return m
}

// randomInvertible returns a seeded n×n matrix of full rank.
func randomInvertible(t *testing.T, n int, seed uint64) *bitmatrix.Matrix {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	for {
		rows := make([][]int, n)
		for i := range rows {
			rows[i] = make([]int, n)
			for j := range rows[i] {
				rows[i][j] = int(rng.Uint64() & 1)
			}
		}
		m := mustParse(t, rows)
		if _, err := gf2.Invert(m); err == nil {
			return m
		}
	}
}

var (
	circulant = [][]int{{1, 1, 0}, {0, 1, 1}, {1, 0, 1}}
	upper     = [][]int{{1, 1, 1, 1}, {0, 1, 1, 1}, {0, 0, 1, 1}, {0, 0, 0, 1}}
)

func TestSynthesize_Report(t *testing.T) {
	e := newEngine(t)
	m := mustParse(t, circulant)

	rep, err := e.Synthesize(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, m.Hash(), rep.Hash)
	assert.Equal(t, 3, rep.NaiveXorCount)
	for _, a := range heuristics.Algorithms {
		r := rep.Result(a)
		require.NotNil(t, r, a)
		assert.Equal(t, a, r.Algorithm)
		assert.Equal(t, r.Program.XorCount(), r.XorCount)
		assert.NoError(t, r.Program.Verify(m))
		assert.GreaterOrEqual(t, r.XorCount, 2)
		assert.LessOrEqual(t, r.XorCount, 3)
	}
	require.NotNil(t, rep.Boyar.Depth)
	assert.Equal(t, 1, *rep.Boyar.Depth)
	assert.Nil(t, rep.Paar.Depth)
	assert.Nil(t, rep.SLP.Depth)
	assert.LessOrEqual(t, rep.SmallestXor, rep.NaiveXorCount)
	require.NotNil(t, rep.SBP.Depth)
	assert.Equal(t, 1, *rep.SBP.Depth)
	assert.Nil(t, rep.Result("magic"))
}

func TestSynthesize_Trivial(t *testing.T) {
	e := newEngine(t)
	rep, err := e.Synthesize(context.Background(), mustParse(t, [][]int{{1}}))
	require.NoError(t, err)
	assert.Equal(t, 0, rep.NaiveXorCount)
	assert.Equal(t, 0, rep.SmallestXor)
}

func TestSynthesize_DeterministicAndShared(t *testing.T) {
	e := newEngine(t)
	m := mustParse(t, upper)

	const callers = 8
	reports := make([]*synthesis.Report, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := e.Synthesize(context.Background(), m)
			assert.NoError(t, err)
			reports[i] = r
		}()
	}
	wg.Wait()
	for _, r := range reports[1:] {
		assert.Equal(t, reports[0], r)
	}

	uncached := newEngine(t, synthesis.WithCacheEntries(0))
	again, err := uncached.Synthesize(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, reports[0], again, "repeated synthesis is deterministic")
}

func TestSynthesize_CanceledWaiterLeavesOthers(t *testing.T) {
	e := newEngine(t, synthesis.WithCacheEntries(0))
	m := randomInvertible(t, 24, 7)

	ctxA, cancelA := context.WithCancel(context.Background())
	var (
		wg   sync.WaitGroup
		errA error
		repB *synthesis.Report
		errB error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errA = e.Synthesize(ctxA, m)
	}()
	go func() {
		defer wg.Done()
		repB, errB = e.Synthesize(context.Background(), m)
	}()
	cancelA()
	wg.Wait()

	if errA != nil {
		assert.ErrorIs(t, errA, context.Canceled)
	}
	require.NoError(t, errB, "a canceled caller must not fail a live one")
	for _, a := range heuristics.Algorithms {
		assert.NoError(t, repB.Result(a).Program.Verify(m), a)
	}
}

func TestSynthesize_WaiterReturnsOnOwnDeadline(t *testing.T) {
	e := newEngine(t, synthesis.WithCacheEntries(0))
	m := randomInvertible(t, 32, 11)

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	_, err := e.Synthesize(ctx, m)
	if err != nil {
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	}

	rep, err := e.Synthesize(context.Background(), m)
	require.NoError(t, err)
	assert.LessOrEqual(t, rep.SmallestXor, rep.NaiveXorCount)
}

func TestRun_SingleAlgorithm(t *testing.T) {
	e := newEngine(t)
	m := mustParse(t, upper)

	r, err := e.Run(context.Background(), heuristics.AlgorithmBoyar, m, 1)
	require.NoError(t, err)
	require.NotNil(t, r.Depth)
	assert.Equal(t, r.Program.Depth(), *r.Depth)

	r, err = e.Run(context.Background(), heuristics.AlgorithmPaar, m, 0)
	require.NoError(t, err)
	assert.Nil(t, r.Depth)

	r, err = e.Run(context.Background(), heuristics.AlgorithmSBP, m, 1)
	require.NoError(t, err)
	require.NotNil(t, r.Depth)
	assert.NoError(t, r.Program.Verify(m))

	_, err = e.Run(context.Background(), "magic", m, 0)
	assert.ErrorIs(t, err, heuristics.ErrUnknownAlgorithm)
}

func TestComputeInverseAndPair(t *testing.T) {
	e := newEngine(t)
	m := mustParse(t, upper)

	p, err := e.ComputeInverseAndPair(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, p.Original.SmallestXor+p.Inverse.SmallestXor, p.CombinedXor)
	assert.NotEqual(t, p.Original.Hash, p.Inverse.Hash)
	assert.False(t, p.Involution)
	assert.Equal(t, p.InverseMatrix.Hash(), p.Inverse.Hash)

	prod, err := gf2.Mul(m, p.InverseMatrix)
	require.NoError(t, err)
	assert.True(t, gf2.IsIdentity(prod))

	swap := mustParse(t, [][]int{{0, 1}, {1, 0}})
	sp, err := e.ComputeInverseAndPair(context.Background(), swap)
	require.NoError(t, err)
	assert.True(t, sp.Involution)
	assert.Equal(t, sp.Original.Hash, sp.Inverse.Hash)
}

func TestComputeInverseAndPair_Errors(t *testing.T) {
	e := newEngine(t)
	_, err := e.ComputeInverseAndPair(context.Background(), mustParse(t, [][]int{{1, 1}, {1, 1}}))
	assert.ErrorIs(t, err, gf2.ErrSingular)
	_, err = e.ComputeInverseAndPair(context.Background(), mustParse(t, [][]int{{1, 1, 0}}))
	assert.ErrorIs(t, err, gf2.ErrNonSquare)
	assert.ErrorIs(t, err, gf2.ErrSingularMatrix)
	_, err = e.ComputeInverseAndPair(context.Background(), nil)
	assert.ErrorIs(t, err, synthesis.ErrNilMatrix)
}

func TestComputeInverseAndPair_SingularLeavesSharedSynthesis(t *testing.T) {
	e := newEngine(t, synthesis.WithCacheEntries(0))
	singular := mustParse(t, [][]int{{1, 1, 0, 1}, {0, 1, 1, 0}, {1, 0, 1, 1}, {1, 1, 0, 1}})

	var (
		wg  sync.WaitGroup
		rep *synthesis.Report
		err error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		rep, err = e.Synthesize(context.Background(), singular)
	}()
	_, perr := e.ComputeInverseAndPair(context.Background(), singular)
	wg.Wait()

	assert.ErrorIs(t, perr, gf2.ErrSingular)
	require.NoError(t, err)
	assert.Equal(t, singular.Hash(), rep.Hash)
}

func TestEngine_Errors(t *testing.T) {
	e := newEngine(t)
	_, err := e.Synthesize(context.Background(), nil)
	assert.ErrorIs(t, err, synthesis.ErrNilMatrix)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = e.Synthesize(ctx, mustParse(t, upper))
	assert.ErrorIs(t, err, context.Canceled)

	closed, err := synthesis.NewEngine()
	require.NoError(t, err)
	closed.Close()
	closed.Close()
	_, err = closed.Synthesize(context.Background(), mustParse(t, upper))
	assert.ErrorIs(t, err, synthesis.ErrEngineClosed)
}

func TestOptions_Panic(t *testing.T) {
	assert.Panics(t, func() { synthesis.WithLogger(nil) })
	assert.Panics(t, func() { synthesis.WithWorkers(0) })
	assert.Panics(t, func() { synthesis.WithDepthLimit(-1) })
	assert.Panics(t, func() { synthesis.WithSearchBudget(0) })
	assert.Panics(t, func() { synthesis.WithCacheEntries(-1) })
}
