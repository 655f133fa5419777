// Package metric computes the dissimilarity between two points.
//
// This is component A of the clustering core: a single operation,
// distance(points, i, j), kept deliberately small so SlinkCore (the
// performance-critical recurrence) can call it in its innermost loop
// without indirection beyond one interface method.
package metric

import (
	"math"

	"github.com/aharden/slink/internal/points"
)

// Metric computes d(x, y) for two point indices in a Set. Implementations
// must be symmetric, report zero for identical indices, satisfy the
// triangle inequality, and never return NaN for a valid Set — a NaN
// result is a fatal input-domain error, not a value SlinkCore tolerates.
type Metric interface {
	Distance(set points.Set, i, j int) float64
}

// Euclidean is the reference metric: the straight-line distance across
// all K coordinates of a point.
type Euclidean struct{}

// Distance implements Metric.
func (Euclidean) Distance(set points.Set, i, j int) float64 {
	a, b := set.At(i), set.At(j)
	var sum float64
	for k := range a {
		diff := a[k] - b[k]
		sum += diff * diff
	}
	return math.Sqrt(sum)
}

// Named resolves a metric by configuration name. Only "euclidean" is
// defined today; the metric is pluggable (spec.md section 1) precisely
// so a future metric can be added here without touching SlinkCore.
func Named(name string) (Metric, bool) {
	switch name {
	case "", "euclidean":
		return Euclidean{}, true
	default:
		return nil, false
	}
}
