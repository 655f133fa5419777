// Package slink implements Sibson's SLINK algorithm: given an ordered
// PointSet, it builds the pointer representation (π, λ) of the
// single-linkage dendrogram in O(N²) time and O(N) auxiliary space.
//
// This is components B (DistanceRow) and C (SlinkCore) of the
// clustering core. The package holds no state beyond its output
// buffers and one scratch vector; it never touches a file, a clock, or
// a database — those live in internal/points, internal/bench, and
// internal/history respectively.
package slink

import (
	"math"
	"strconv"

	"github.com/aharden/slink/internal/bench"
	"github.com/aharden/slink/internal/metric"
	"github.com/aharden/slink/internal/points"
	"github.com/aharden/slink/internal/slinkerr"
)

// Result holds the pointer representation of a dendrogram: Pi[i] is the
// index of the next point i is merged with, and Lambda[i] is the
// dissimilarity at which that merge happens. len(Pi) == len(Lambda) ==
// the PointSet's length, and Lambda[root] == +Inf.
type Result struct {
	Pi     []int
	Lambda []float64
}

// options configure a Cluster call.
type options struct {
	observer bench.Observer
}

// Option customizes a Cluster call.
type Option func(*options)

// WithObserver attaches lifecycle hooks to a Cluster call. The default
// observer is bench.NoopObserver, so attaching one is strictly opt-in.
func WithObserver(obs bench.Observer) Option {
	return func(o *options) { o.observer = obs }
}

// Cluster runs Sibson's SLINK recurrence over set using m as the
// dissimilarity function, producing (π, λ) for the full PointSet.
//
// Cluster is a pure, deterministic function of (set, m): given the same
// inputs it returns the same Result on every invocation, and it performs
// no I/O of its own. It fails with an InvalidInput error if set is empty
// or if m ever reports a NaN or negative distance.
func Cluster(set points.Set, m metric.Metric, opts ...Option) (Result, error) {
	o := options{observer: bench.NoopObserver{}}
	for _, opt := range opts {
		opt(&o)
	}

	n := set.Len()
	if n == 0 {
		return Result{}, slinkerr.New(slinkerr.InvalidInput, "point set is empty")
	}

	pi := make([]int, n)
	lambda := make([]float64, n)
	mrow := make([]float64, n)

	pi[0] = 0
	lambda[0] = math.Inf(1)

	for cur := 1; cur < n; cur++ {
		o.observer.OnBeginInsert(cur)

		pi[cur] = cur
		lambda[cur] = math.Inf(1)

		if bad := fillRow(set, m, cur, mrow); bad >= 0 {
			return Result{}, slinkerr.New(slinkerr.InvalidInput,
				"NaN or negative distance between points "+strconv.Itoa(bad)+" and "+strconv.Itoa(cur))
		}

		o.observer.OnBeginPass("forward")
		for i := 0; i < cur; i++ {
			if lambda[i] >= mrow[i] {
				mrow[pi[i]] = math.Min(mrow[pi[i]], lambda[i])
				lambda[i] = mrow[i]
				pi[i] = cur
			} else {
				mrow[pi[i]] = math.Min(mrow[pi[i]], mrow[i])
			}
		}
		o.observer.OnEndPass("forward")

		o.observer.OnBeginPass("second")
		for i := 0; i < cur; i++ {
			if lambda[i] >= lambda[pi[i]] {
				pi[i] = cur
			}
		}
		o.observer.OnEndPass("second")

		o.observer.OnEndInsert(cur)
	}

	return Result{Pi: pi, Lambda: lambda}, nil
}
