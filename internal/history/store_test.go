package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/aharden/slink/internal/bench"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleReport() *bench.Report {
	r := bench.NewReport(3, time.Now())
	r.Record(bench.StageIngest, time.Millisecond)
	r.Record(bench.StageCluster, 2*time.Millisecond)
	r.Record(bench.StageEmit, time.Millisecond)
	return r
}

func TestRecordRun(t *testing.T) {
	s := openTestStore(t)
	id, err := s.RecordRun("points.csv", 3, 2, "euclidean", sampleReport(), 2.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == "" {
		t.Error("expected non-empty run ID")
	}
}

func TestListRunsReturnsEveryRun(t *testing.T) {
	s := openTestStore(t)
	s.RecordRun("a.csv", 3, 2, "euclidean", sampleReport(), 1.0)
	s.RecordRun("b.csv", 4, 2, "euclidean", sampleReport(), 2.0)

	runs, err := s.ListRuns(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
}

func TestListRunsRespectsLimit(t *testing.T) {
	s := openTestStore(t)
	for i := 0; i < 5; i++ {
		s.RecordRun("a.csv", 3, 2, "euclidean", sampleReport(), 1.0)
	}

	runs, err := s.ListRuns(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestGetRunFound(t *testing.T) {
	s := openTestStore(t)
	id, err := s.RecordRun("points.csv", 5, 2, "euclidean", sampleReport(), 3.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	run, err := s.GetRun(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if run == nil {
		t.Fatal("expected run to be found")
	}
	if run.N != 5 || run.DatasetPath != "points.csv" {
		t.Errorf("unexpected run: %+v", run)
	}
	if run.RootHeight != 3.5 {
		t.Errorf("expected root height 3.5, got %f", run.RootHeight)
	}
}

func TestGetRunNotFound(t *testing.T) {
	s := openTestStore(t)
	run, err := s.GetRun("does-not-exist")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if run != nil {
		t.Error("expected nil for missing run")
	}
}
