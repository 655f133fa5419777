// Package history persists a record of each clustering run: point
// count, dimension, metric, per-stage durations, and the height of the
// last real merge. This is the durable side of the benchmark
// instrumentation spec.md keeps out of the clustering core — a history
// write failure never aborts a clustering run, it is only ever recorded
// after internal/slink.Cluster has already returned successfully.
package history

// Run is one recorded clustering run.
type Run struct {
	ID            string
	DatasetPath   string
	N             int
	Dim           int
	Metric        string
	IngestSeconds float64
	ClusterSeconds float64
	EmitSeconds   float64
	RootHeight    float64 // height of the last real merge, i.e. the largest finite λ
	CreatedAt     string
}
