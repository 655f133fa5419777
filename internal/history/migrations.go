package history

import "database/sql"

// migration represents a single schema migration step.
type migration struct {
	Version     int
	Description string
	Up          func(tx *sql.Tx) error
}

// migrations is the ordered list of all schema migrations. Append new
// migrations to the end with incrementing Version numbers.
var migrations = []migration{
	{
		Version:     1,
		Description: "initial schema",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    dataset_path TEXT NOT NULL,
    n INTEGER NOT NULL,
    dim INTEGER NOT NULL,
    metric TEXT NOT NULL,
    ingest_seconds REAL DEFAULT 0,
    cluster_seconds REAL DEFAULT 0,
    emit_seconds REAL DEFAULT 0,
    root_height REAL DEFAULT 0,
    created_at TEXT DEFAULT (datetime('now'))
);
`)
			return err
		},
	},
}

func latestVersion() int {
	v := 0
	for _, m := range migrations {
		if m.Version > v {
			v = m.Version
		}
	}
	return v
}
