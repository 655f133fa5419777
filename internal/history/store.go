package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/aharden/slink/internal/bench"
)

// Store wraps a sqlite-backed run history database.
type Store struct {
	conn *sql.DB
	path string
}

// Open creates or opens a history database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("setting journal mode: %w", err)
	}

	if err := migrate(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrating history schema: %w", err)
	}

	return &Store{conn: conn, path: dbPath}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Path returns the history database file path.
func (s *Store) Path() string {
	return s.path
}

// RecordRun inserts a new run from a completed bench.Report, a point
// count/dimension/metric, and the root height of the dendrogram (the
// largest finite λ value). It generates a fresh run ID.
func (s *Store) RecordRun(datasetPath string, n, dim int, metricName string, report *bench.Report, rootHeight float64) (string, error) {
	id := uuid.New().String()
	_, err := s.conn.Exec(
		`INSERT INTO runs (id, dataset_path, n, dim, metric, ingest_seconds, cluster_seconds, emit_seconds, root_height)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, datasetPath, n, dim, metricName,
		report.Durations[bench.StageIngest].Seconds(),
		report.Durations[bench.StageCluster].Seconds(),
		report.Durations[bench.StageEmit].Seconds(),
		rootHeight,
	)
	if err != nil {
		return "", fmt.Errorf("recording run: %w", err)
	}
	return id, nil
}

// ListRuns returns the most recent runs, newest first, capped at limit
// (0 means no cap).
func (s *Store) ListRuns(limit int) ([]Run, error) {
	query := `SELECT id, dataset_path, n, dim, metric, ingest_seconds, cluster_seconds, emit_seconds, root_height, created_at
		FROM runs ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.DatasetPath, &r.N, &r.Dim, &r.Metric,
			&r.IngestSeconds, &r.ClusterSeconds, &r.EmitSeconds, &r.RootHeight, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRun returns a single run by ID, or nil if it does not exist.
func (s *Store) GetRun(id string) (*Run, error) {
	var r Run
	err := s.conn.QueryRow(
		`SELECT id, dataset_path, n, dim, metric, ingest_seconds, cluster_seconds, emit_seconds, root_height, created_at
		FROM runs WHERE id = ?`, id,
	).Scan(&r.ID, &r.DatasetPath, &r.N, &r.Dim, &r.Metric,
		&r.IngestSeconds, &r.ClusterSeconds, &r.EmitSeconds, &r.RootHeight, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting run %s: %w", id, err)
	}
	return &r, nil
}
