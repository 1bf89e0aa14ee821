package heuristics_test

import (
	"fmt"

	"github.com/katalvlaran/xorslp/bitmatrix"
	"github.com/katalvlaran/xorslp/heuristics"
)

func ExampleBoyarPeralta() {
	m, _ := bitmatrix.Parse([][]int{
		{1, 1, 1, 1},
		{1, 1, 1, 0},
		{1, 1, 0, 0},
	})
	p, err := heuristics.BoyarPeralta(m)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("naive:", heuristics.HammingXorCount(m))
	fmt.Println("xor:", p.XorCount(), "depth:", p.Depth())
	// Output:
	// naive: 6
	// xor: 3 depth: 3
}
