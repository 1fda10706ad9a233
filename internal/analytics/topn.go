package analytics

import "sort"

// TopN ranks rows descending by metric and returns the first n. Ties are
// broken by the row key in ascending lexicographic order, so rankings are
// deterministic and independent of map iteration order. The input slice
// is not mutated.
func TopN[T any](rows []T, n int, metric func(T) float64, key func(T) string) []T {
	ranked := make([]T, len(rows))
	copy(ranked, rows)

	sort.SliceStable(ranked, func(i, j int) bool {
		mi, mj := metric(ranked[i]), metric(ranked[j])
		if mi != mj {
			return mi > mj
		}
		return key(ranked[i]) < key(ranked[j])
	})

	if n > 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}
