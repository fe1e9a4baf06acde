package engine

import "math/rand"

// Shuffle returns a uniform random permutation of [0..n). Sequence rounds
// are built from it: plain Fisher-Yates, fixed points allowed.
func Shuffle(r *rand.Rand, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	r.Shuffle(n, func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
