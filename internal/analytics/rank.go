package analytics

import (
	"cmp"
	"slices"
)

// TopN returns the first n items ordered by key descending. The sort is
// stable so ties keep their input order. n <= 0 yields an empty result and
// n larger than the input yields every item.
func TopN[T any](items []T, n int, key func(T) float64) []T {
	if n <= 0 {
		return []T{}
	}
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b T) int {
		return cmp.Compare(key(b), key(a))
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n:n]
}
