package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aharden/slink/internal/bench"
	"github.com/aharden/slink/internal/history"
)

func openTestStore(t *testing.T) *history.Store {
	t.Helper()
	s, err := history.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleReport() *bench.Report {
	r := bench.NewReport(4, time.Now())
	r.Record(bench.StageIngest, time.Millisecond)
	r.Record(bench.StageCluster, 2*time.Millisecond)
	r.Record(bench.StageEmit, time.Millisecond)
	return r
}

func TestIndexRouteEmpty(t *testing.T) {
	store := openTestStore(t)
	srv, err := New(store)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "No runs recorded") {
		t.Error("expected empty-state message in response body")
	}
}

func TestIndexRouteListsRuns(t *testing.T) {
	store := openTestStore(t)
	store.RecordRun("points.csv", 4, 2, "euclidean", sampleReport(), 3.0)

	srv, err := New(store)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "points.csv") {
		t.Error("expected dataset path in response body")
	}
}

func TestRunDetailRoute(t *testing.T) {
	store := openTestStore(t)
	id, err := store.RecordRun("points.csv", 4, 2, "euclidean", sampleReport(), 3.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	srv, err := New(store)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	req := httptest.NewRequest("GET", "/runs/"+id, nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), id) {
		t.Error("expected run ID in response body")
	}
}

func TestRunDetailRouteNotFound(t *testing.T) {
	store := openTestStore(t)
	srv, err := New(store)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	req := httptest.NewRequest("GET", "/runs/does-not-exist", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestAPIRunsRoute(t *testing.T) {
	store := openTestStore(t)
	store.RecordRun("points.csv", 4, 2, "euclidean", sampleReport(), 3.0)

	srv, err := New(store)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	req := httptest.NewRequest("GET", "/api/runs", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var runs []history.Run
	if err := json.Unmarshal(rec.Body.Bytes(), &runs); err != nil {
		t.Fatalf("failed to decode JSON response: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].DatasetPath != "points.csv" {
		t.Errorf("unexpected dataset path: %s", runs[0].DatasetPath)
	}
}

func TestStaticRoute(t *testing.T) {
	store := openTestStore(t)
	srv, err := New(store)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	req := httptest.NewRequest("GET", "/static/style.css", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "font-family") {
		t.Error("expected CSS content")
	}
}
