package synthesis_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/xorslp/gf2"
	"github.com/katalvlaran/xorslp/synthesis"
)

func intPtr(v int) *int { return &v }

func TestBulkInvert(t *testing.T) {
	e := newEngine(t, synthesis.WithWorkers(2))
	candidates := []synthesis.Candidate{
		{ID: "upper", Matrix: mustParse(t, upper), SmallestXor: intPtr(3)},
		{ID: "singular", Matrix: mustParse(t, [][]int{{1, 1}, {1, 1}}), SmallestXor: intPtr(1)},
		{ID: "heavy", Matrix: mustParse(t, upper), SmallestXor: intPtr(50)},
		{ID: "fresh", Matrix: mustParse(t, upper)},
		{ID: "linked", Matrix: mustParse(t, upper), SmallestXor: intPtr(2), HasInverse: true},
	}

	got := make(map[string]synthesis.Outcome)
	for o := range e.BulkInvert(context.Background(), candidates, 10, true) {
		got[o.ID] = o
	}
	require.Len(t, got, len(candidates))

	require.NoError(t, got["upper"].Err)
	require.NotNil(t, got["upper"].Pairing)
	assert.Positive(t, got["upper"].Pairing.CombinedXor)

	assert.ErrorIs(t, got["singular"].Err, gf2.ErrSingular)

	assert.True(t, got["heavy"].Skipped)
	assert.Equal(t, synthesis.ReasonAboveLimit, got["heavy"].Reason)
	assert.True(t, got["fresh"].Skipped)
	assert.Equal(t, synthesis.ReasonNotSynthesized, got["fresh"].Reason)
	assert.True(t, got["linked"].Skipped)
	assert.Equal(t, synthesis.ReasonHasInverse, got["linked"].Reason)
}

func TestBulkInvert_NoFilter(t *testing.T) {
	e := newEngine(t)
	candidates := []synthesis.Candidate{
		{ID: "a", Matrix: mustParse(t, upper)},
		{ID: "b", Matrix: mustParse(t, upper), HasInverse: true},
	}
	n := 0
	for o := range e.BulkInvert(context.Background(), candidates, 0, false) {
		assert.NoError(t, o.Err)
		assert.False(t, o.Skipped)
		n++
	}
	assert.Equal(t, 2, n)
}

func TestBulkInvert_Canceled(t *testing.T) {
	e := newEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for range e.BulkInvert(ctx, []synthesis.Candidate{{ID: "x", Matrix: mustParse(t, upper)}}, 0, false) {
	}
	// The channel closes even when nothing is dispatched.
}
