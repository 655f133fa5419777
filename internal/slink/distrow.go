package slink

import (
	"github.com/aharden/slink/internal/metric"
	"github.com/aharden/slink/internal/points"
)

// fillRow is component B, DistanceRow: for a fixed pivot n, it fills
// out[0..n-1] with d(i, n) for i in [0, n). out is caller-allocated and
// reused across iterations; fillRow never allocates and never touches
// out[n:]. Returns the largest index whose distance is NaN or negative,
// or -1 if there is none (+Inf is not flagged).
func fillRow(set points.Set, m metric.Metric, n int, out []float64) int {
	bad := -1
	for i := 0; i < n; i++ {
		d := m.Distance(set, i, n)
		out[i] = d
		if isInvalidDistance(d) {
			bad = i
		}
	}
	return bad
}

func isInvalidDistance(d float64) bool {
	return d != d || d < 0 // d != d is the NaN check
}
