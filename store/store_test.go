// Package store_test runs the record store against in-memory BadgerDB.
package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/xorslp/bitmatrix"
	"github.com/katalvlaran/xorslp/heuristics"
	"github.com/katalvlaran/xorslp/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(store.InMemoryConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	store.SetClock(s, func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	})

	return s
}

func mustParse(t *testing.T, rows [][]int) *bitmatrix.Matrix {
	t.Helper()
	m, err := bitmatrix.Parse(rows)
	require.NoError(t, err)

	return m
}

func intPtr(v int) *int { return &v }

func TestSaveMatrix_DedupByHash(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	m := mustParse(t, [][]int{{1, 1, 0}, {0, 1, 1}, {1, 0, 1}})

	rec, created, err := s.SaveMatrix(ctx, "circulant", "demo", m)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "C,6,A", rec.MatrixHex)
	assert.Equal(t, m.Hash(), rec.MatrixHash)
	require.NotNil(t, rec.NaiveXorCount)
	assert.Equal(t, 3, *rec.NaiveXorCount)

	again, created, err := s.SaveMatrix(ctx, "other title", "x", m)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, rec.ID, again.ID)
	assert.Equal(t, "circulant", again.Title)

	back, err := rec.Matrix()
	require.NoError(t, err)
	assert.True(t, m.Equal(back))

	byHash, err := s.GetByHash(ctx, m.Hash())
	require.NoError(t, err)
	assert.Equal(t, rec.ID, byHash.ID)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, _, err = s.SaveMatrix(ctx, "nil", "", nil)
	assert.ErrorIs(t, err, store.ErrNilMatrix)
}

func TestGet_NotFound(t *testing.T) {
	s := openStore(t)
	_, err := s.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetByHash(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.Update(context.Background(), "missing", func(*store.Record) error { return nil })
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdate_KeepsIdentity(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	rec, _, err := s.SaveMatrix(ctx, "m", "g", mustParse(t, [][]int{{1, 1}}))
	require.NoError(t, err)

	updated, err := s.Update(ctx, rec.ID, func(r *store.Record) error {
		r.PaarXorCount = intPtr(1)
		r.PaarProgram = "# inputs 2\nt0 = x0 + x1\ny0 = t0"
		r.MatrixHash = "tampered"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, rec.MatrixHash, updated.MatrixHash)
	assert.True(t, updated.UpdatedAt.After(rec.UpdatedAt))

	got, err := s.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, *got.PaarXorCount)
	assert.False(t, got.Complete())
}

func TestListFilters(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	rows := [][][]int{
		{{1, 1}, {0, 1}},
		{{1, 1, 1}, {0, 1, 1}, {0, 0, 1}},
		{{1, 0}, {0, 1}},
	}
	titles := []string{"AES small", "Skinny", "identity"}
	for i, r := range rows {
		_, _, err := s.SaveMatrix(ctx, titles[i], "set", mustParse(t, r))
		require.NoError(t, err)
	}

	all, total, err := s.List(ctx, store.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Equal(t, "AES small", all[0].Title, "oldest first")

	found, total, err := s.List(ctx, store.Filter{Title: "skin"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "Skinny", found[0].Title)

	found, total, err = s.List(ctx, store.Filter{Naive: store.Range{Min: intPtr(1)}})
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	found, _, err = s.List(ctx, store.Filter{Boyar: store.Range{Max: intPtr(10)}})
	require.NoError(t, err)
	assert.Empty(t, found, "bounds exclude uncomputed counts")

	found, total, err = s.List(ctx, store.Filter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, found, 1)
	assert.Equal(t, "Skinny", found[0].Title)
}

func TestInverseQueries(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	a, _, err := s.SaveMatrix(ctx, "A", "g1", mustParse(t, [][]int{{1, 1}, {0, 1}}))
	require.NoError(t, err)
	b, _, err := s.SaveMatrix(ctx, "B", "g2", mustParse(t, [][]int{{1, 1, 1}, {0, 1, 1}, {0, 0, 1}}))
	require.NoError(t, err)
	binv, _, err := s.SaveMatrix(ctx, "B (inverse)", "g2", mustParse(t, [][]int{{1, 1, 0}, {0, 1, 1}, {0, 0, 1}}))
	require.NoError(t, err)

	for id, smallest := range map[string]int{a.ID: 1, b.ID: 2, binv.ID: 2} {
		_, err = s.Update(ctx, id, func(r *store.Record) error {
			r.SmallestXor = intPtr(smallest)
			return nil
		})
		require.NoError(t, err)
	}
	require.NoError(t, s.LinkInverse(ctx, b.ID, binv.ID))
	assert.ErrorIs(t, s.LinkInverse(ctx, b.ID, "missing"), store.ErrNotFound)

	cands, err := s.ForBulkInverse(ctx, 10, true)
	require.NoError(t, err)
	ids := []string{}
	for _, c := range cands {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{a.ID, binv.ID}, ids, "linked B skipped, ordered by smallest xor")

	cands, err = s.ForBulkInverse(ctx, 2, false)
	require.NoError(t, err)
	require.Len(t, cands, 1)
	assert.Equal(t, a.ID, cands[0].ID)

	pairs, total, err := s.InversePairs(ctx, store.PairFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, b.ID, pairs[0].Original.ID)
	assert.Equal(t, binv.ID, pairs[0].Inverse.ID)
	assert.Equal(t, 4, pairs[0].CombinedXor)

	_, total, err = s.InversePairs(ctx, store.PairFilter{MaxCombined: intPtr(3)})
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	_, total, err = s.InversePairs(ctx, store.PairFilter{Group: "g1"})
	require.NoError(t, err)
	assert.Equal(t, 0, total)

	missing, err := s.MissingAlgorithms(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, missing, 2)

	require.NoError(t, s.Delete(ctx, a.ID))
	_, err = s.GetByHash(ctx, a.MatrixHash)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestOpen_PathRequired(t *testing.T) {
	_, err := store.Open(store.Config{})
	assert.ErrorIs(t, err, store.ErrPathRequired)
}

func TestOpen_Persistent(t *testing.T) {
	dir := t.TempDir()
	cfg := store.DefaultConfig()
	cfg.Path = dir
	s, err := store.Open(cfg)
	require.NoError(t, err)
	rec, _, err := s.SaveMatrix(context.Background(), "p", "", mustParse(t, [][]int{{1}}))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = store.Open(cfg)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Get(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "p", got.Title)
}

func TestRecord_ProgramAndComplete(t *testing.T) {
	r := &store.Record{
		NaiveXorCount: intPtr(2),
		PaarXorCount:  intPtr(1),
		BoyarXorCount: intPtr(1),
		SLPXorCount:   intPtr(1),
		BoyarProgram:  "# inputs 2\nt0 = x0 + x1\ny0 = t0",
	}
	assert.False(t, r.Complete(), "records without an sbp result are recalculated")
	assert.Equal(t, r.BoyarProgram, r.Program(heuristics.AlgorithmBoyar))
	assert.Empty(t, r.Program(heuristics.AlgorithmSBP))
	assert.Empty(t, r.Program("magic"))

	r.SBPXorCount, r.SBPProgram = intPtr(1), r.BoyarProgram
	assert.True(t, r.Complete())
	assert.Equal(t, 1, *r.XorCount(heuristics.AlgorithmSBP))
	assert.Equal(t, r.SBPProgram, r.Program(heuristics.AlgorithmSBP))
}
