package search

import (
	"math/rand"
	"sort"
)

// sampleIndices draws k distinct indices from [0, n) with a partial
// Fisher-Yates shuffle and returns them ascending. k is clamped to n.
func sampleIndices(rng *rand.Rand, n, k int) []int {
	if k > n {
		k = n
	}
	if k <= 0 {
		return []int{}
	}
	pool := make([]int, n)
	for i := range pool {
		pool[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + rng.Intn(n-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	out := pool[:k:k]
	sort.Ints(out)
	return out
}
