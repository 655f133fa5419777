package bench

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
)

// Stage names a timed phase of a clustering run.
type Stage string

const (
	StageIngest  Stage = "ingest"
	StageCluster Stage = "cluster"
	StageEmit    Stage = "emit"
)

// Report captures the wall-clock duration of each stage of one
// clustering run, together with the point count it ran over. This is
// the "timing/progress instrumentation" and "human-readable duration
// report" spec.md lists as external collaborators — it lives outside
// internal/slink and is populated by the CLI, never by the core itself.
type Report struct {
	N         int
	At        time.Time
	Durations map[Stage]time.Duration
}

// NewReport starts a report for n points at the given timestamp. At is
// passed in rather than taken via time.Now so tests stay deterministic.
func NewReport(n int, at time.Time) *Report {
	return &Report{N: n, At: at, Durations: make(map[Stage]time.Duration)}
}

// Record stores the duration of a stage.
func (r *Report) Record(stage Stage, d time.Duration) {
	r.Durations[stage] = d
}

// Total sums every recorded stage duration.
func (r *Report) Total() time.Duration {
	var total time.Duration
	for _, d := range r.Durations {
		total += d
	}
	return total
}

// Human renders the report the way the reference project's standalone
// times-printer executables format a timing run: one line per stage in
// a stable order, plus a relative "ago" line using go-humanize so a
// long-running benchmark log reads naturally.
func (r *Report) Human() string {
	out := fmt.Sprintf("%d points clustered %s\n", r.N, humanize.Time(r.At))
	for _, stage := range []Stage{StageIngest, StageCluster, StageEmit} {
		d, ok := r.Durations[stage]
		if !ok {
			continue
		}
		out += fmt.Sprintf("  %-8s %s\n", stage, d)
	}
	out += fmt.Sprintf("  %-8s %s\n", "total", r.Total())
	return out
}

// Mean aggregates multiple reports into a single averaged report over
// the same stage set, mirroring the reference project's
// main-mean-times-printer tool.
func Mean(reports []*Report) *Report {
	if len(reports) == 0 {
		return &Report{Durations: make(map[Stage]time.Duration)}
	}
	sums := make(map[Stage]time.Duration)
	n := 0
	for _, r := range reports {
		n += r.N
		for stage, d := range r.Durations {
			sums[stage] += d
		}
	}
	mean := &Report{N: n / len(reports), At: reports[len(reports)-1].At, Durations: make(map[Stage]time.Duration)}
	for stage, sum := range sums {
		mean.Durations[stage] = sum / time.Duration(len(reports))
	}
	return mean
}

// WriteCSV writes one row per (report, stage) pair in the benchmark CSV
// form the reference project's main-data-generator/times-printer tools
// consume: columns n,stage,seconds. This is the "CSV writer for
// benchmark output" spec.md keeps external to the clustering core.
func WriteCSV(w io.Writer, reports []*Report) error {
	if _, err := io.WriteString(w, "n,stage,seconds\n"); err != nil {
		return err
	}
	for _, r := range reports {
		stages := make([]string, 0, len(r.Durations))
		for stage := range r.Durations {
			stages = append(stages, string(stage))
		}
		sort.Strings(stages)
		for _, stage := range stages {
			d := r.Durations[Stage(stage)]
			if _, err := fmt.Fprintf(w, "%d,%s,%f\n", r.N, stage, d.Seconds()); err != nil {
				return err
			}
		}
	}
	return nil
}
