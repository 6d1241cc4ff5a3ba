package shuffle

import "math/rand/v2"

// Shuffle permutes items in place with Fisher–Yates. A nil source uses the
// process-wide generator; tests pass a seeded one. Empty and single-element
// slices are left untouched.
func Shuffle[T any](r *rand.Rand, items []T) {
	intn := rand.IntN
	if r != nil {
		intn = r.IntN
	}

	for i := len(items) - 1; i > 0; i-- {
		j := intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}
