package heuristics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/xorslp/bitmatrix"
)

func TestVkey(t *testing.T) {
	for _, cols := range []int{3, 64, 256, 257, 600} {
		a := bitmatrix.Unit(cols, 0)
		b := bitmatrix.Unit(cols, cols-1)
		x := bitmatrix.Xor(a, b)

		assert.Equal(t, keyOf(x.Words()), xorKey(a.Words(), b.Words()), "cols=%d", cols)
		assert.NotEqual(t, keyOf(a.Words()), keyOf(b.Words()), "cols=%d", cols)
		assert.Equal(t, keyOf(a.Words()), xorKey(x.Words(), b.Words()), "cols=%d", cols)
	}

	// Zero padding past the last set word does not change the key.
	assert.Equal(t, keyOf([]uint64{1, 0, 0, 0, 0, 0}), keyOf([]uint64{1}))
	assert.Equal(t, keyOf([]uint64{0, 0, 0, 0, 5, 0}), xorKey([]uint64{0, 0, 0, 0, 5}, nil))
	assert.Empty(t, keyOf([]uint64{1, 2, 3, 4}).tail)
}
