package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseDefaultConfig(t *testing.T) {
	cfg, err := parse(DefaultConfigYAML)
	if err != nil {
		t.Fatalf("failed to parse default config: %v", err)
	}

	if cfg.Dataset.Metric != "euclidean" {
		t.Errorf("expected metric 'euclidean', got %q", cfg.Dataset.Metric)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("expected port 8000, got %d", cfg.Server.Port)
	}
	if cfg.Labels.StartRune() != '1' {
		t.Errorf("expected label start '1', got %q", cfg.Labels.StartRune())
	}
}

func TestParseMinimalConfig(t *testing.T) {
	data := []byte(`
dataset:
  path: mydata.csv
server:
  port: 9000
`)
	cfg, err := parse(data)
	if err != nil {
		t.Fatalf("failed to parse minimal config: %v", err)
	}

	if cfg.Dataset.Path != "mydata.csv" {
		t.Errorf("expected path 'mydata.csv', got %q", cfg.Dataset.Path)
	}
	if cfg.Dataset.Metric != "euclidean" {
		t.Errorf("expected default metric 'euclidean', got %q", cfg.Dataset.Metric)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Server.Port)
	}
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := parse([]byte("not: valid: yaml: at: all:"))
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestLabelsStartRuneDefaultsWhenEmpty(t *testing.T) {
	l := Labels{}
	if got := l.StartRune(); got != '1' {
		t.Errorf("expected default '1', got %q", got)
	}
}

func TestLabelsStartRuneCustom(t *testing.T) {
	l := Labels{Start: "A"}
	if got := l.StartRune(); got != 'A' {
		t.Errorf("expected 'A', got %q", got)
	}
}

func TestGetHistoryPathDefaultsToDataDir(t *testing.T) {
	cfg := &Config{}
	want := filepath.Join(DataDir(), "history.db")
	if got := cfg.GetHistoryPath(); got != want {
		t.Errorf("GetHistoryPath() = %q, want %q", got, want)
	}
}

func TestGetHistoryPathUsesExplicitValue(t *testing.T) {
	cfg := &Config{History: History{DBPath: "/tmp/custom.db"}}
	if got := cfg.GetHistoryPath(); got != "/tmp/custom.db" {
		t.Errorf("GetHistoryPath() = %q, want /tmp/custom.db", got)
	}
}

func TestResolveConfigPathExplicitMissing(t *testing.T) {
	_, err := ResolveConfigPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestDefaultMatchesParsedDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Dataset.Metric != "euclidean" {
		t.Errorf("expected metric 'euclidean', got %q", cfg.Dataset.Metric)
	}
	if cfg.Labels.StartRune() != '1' {
		t.Errorf("expected label start '1', got %q", cfg.Labels.StartRune())
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("expected port 8000, got %d", cfg.Server.Port)
	}
}

func TestResolveConfigPathExplicitPresent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, DefaultConfigYAML, 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := ResolveConfigPath(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != path {
		t.Errorf("ResolveConfigPath() = %q, want %q", got, path)
	}
}
