// Package gf2_test verifies GF(2) inversion, rank and products.
package gf2_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/xorslp/bitmatrix"
	"github.com/katalvlaran/xorslp/gf2"
)

func mustParse(t *testing.T, rows [][]int) *bitmatrix.Matrix {
	t.Helper()
	m, err := bitmatrix.Parse(rows)
	require.NoError(t, err)

	return m
}

func TestInvert_OneByOne(t *testing.T) {
	m := mustParse(t, [][]int{{1}})
	inv, err := gf2.Invert(m)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{1}}, inv.Bits())
}

func TestInvert_Errors(t *testing.T) {
	cases := []struct {
		name string
		rows [][]int
		want error
	}{
		{"singular", [][]int{{1, 1}, {1, 1}}, gf2.ErrSingular},
		{"zero", [][]int{{0}}, gf2.ErrSingular},
		{"non-square", [][]int{{1, 0, 1}, {0, 1, 1}}, gf2.ErrNonSquare},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := gf2.Invert(mustParse(t, tc.rows))
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
			assert.ErrorIs(t, err, gf2.ErrSingularMatrix)
		})
	}

	_, err := gf2.Invert(nil)
	assert.ErrorIs(t, err, gf2.ErrNilMatrix)
}

func TestInvert_RoundTrip(t *testing.T) {
	inputs := [][][]int{
		{{1, 1, 0}, {0, 1, 0}, {0, 1, 1}},
		{{0, 1}, {1, 0}},
		{{1, 1, 1, 1}, {0, 1, 1, 1}, {0, 0, 1, 1}, {0, 0, 0, 1}},
		{{0, 0, 1, 1}, {1, 0, 0, 0}, {0, 1, 1, 0}, {1, 1, 0, 1}},
	}
	for _, rows := range inputs {
		m := mustParse(t, rows)
		require.True(t, gf2.IsInvertible(m))

		inv, err := gf2.Invert(m)
		require.NoError(t, err)

		back, err := gf2.Invert(inv)
		require.NoError(t, err)
		assert.True(t, m.Equal(back), "Invert(Invert(M)) == M")

		p, err := gf2.Mul(m, inv)
		require.NoError(t, err)
		assert.True(t, gf2.IsIdentity(p), "M × M⁻¹ = I")
	}
}

func TestInvert_KnownInverse(t *testing.T) {
	// Upper-triangular all-ones: inverse is the bidiagonal matrix.
	m := mustParse(t, [][]int{{1, 1, 1}, {0, 1, 1}, {0, 0, 1}})
	inv, err := gf2.Invert(m)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{1, 1, 0}, {0, 1, 1}, {0, 0, 1}}, inv.Bits())
	assert.False(t, gf2.IsInvolution(m))

	swap := mustParse(t, [][]int{{0, 1}, {1, 0}})
	assert.True(t, gf2.IsInvolution(swap))
}

func TestInvert_DoesNotMutateInput(t *testing.T) {
	m := mustParse(t, [][]int{{0, 1}, {1, 1}})
	before := m.Binary()
	_, err := gf2.Invert(m)
	require.NoError(t, err)
	assert.Equal(t, before, m.Binary())
}

func TestRank(t *testing.T) {
	cases := []struct {
		rows [][]int
		want int
	}{
		{[][]int{{1, 1}, {1, 1}}, 1},
		{[][]int{{0, 0, 0}}, 0},
		{[][]int{{1, 1, 0}, {0, 1, 1}, {1, 0, 1}}, 2},
		{[][]int{{1, 0, 1, 1}, {0, 1, 0, 1}}, 2},
		{[][]int{{1, 0}, {0, 1}, {1, 1}}, 2},
	}
	for _, tc := range cases {
		r, err := gf2.Rank(mustParse(t, tc.rows))
		require.NoError(t, err)
		assert.Equal(t, tc.want, r)
	}
	assert.False(t, gf2.IsInvertible(mustParse(t, [][]int{{1, 1, 0}, {0, 1, 1}, {1, 0, 1}})))
}

func TestMul(t *testing.T) {
	a := mustParse(t, [][]int{{1, 1}, {0, 1}, {1, 0}})
	b := mustParse(t, [][]int{{1, 0, 1}, {1, 1, 0}})
	p, err := gf2.Mul(a, b)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, 1, 1}, {1, 1, 0}, {1, 0, 1}}, p.Bits())

	_, err = gf2.Mul(a, a)
	assert.ErrorIs(t, err, gf2.ErrDimensionMismatch)
	_, err = gf2.Mul(nil, a)
	assert.ErrorIs(t, err, gf2.ErrNilMatrix)
}
