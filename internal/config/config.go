// Package config loads the YAML configuration for the slink CLI: the
// dataset to cluster, the metric and label-start to use, where to write
// the two output files, and where to keep run history. This is ambient
// stack spec.md's core never reads — internal/slink, internal/metric,
// internal/dendrogram, and internal/emit take their inputs as plain Go
// values and know nothing about YAML or the filesystem.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var DefaultConfigYAML []byte

// Config is the root configuration document.
type Config struct {
	Dataset Dataset `yaml:"dataset"`
	Labels  Labels  `yaml:"labels"`
	Output  Output  `yaml:"output"`
	History History `yaml:"history"`
	Server  Server  `yaml:"server"`
	Logging Logging `yaml:"logging"`
}

// Dataset names the input point file and the metric to cluster it with.
type Dataset struct {
	Path   string `yaml:"path"`
	Metric string `yaml:"metric"`
}

// Labels controls display-label generation (spec.md section 9's Open
// Question about the starting display character).
type Labels struct {
	Start string `yaml:"start"`
}

// StartRune returns the first character of the configured Start,
// defaulting to dendrogram.DefaultLabelStart's value ('1') when unset.
func (l Labels) StartRune() rune {
	r := []rune(l.Start)
	if len(r) == 0 {
		return '1'
	}
	return r[0]
}

// Output names where the two textual forms are written.
type Output struct {
	LabelledPath    string `yaml:"labelled_path"`
	MathematicaPath string `yaml:"mathematica_path"`
}

// History configures the run-history store.
type History struct {
	DBPath string `yaml:"db_path"`
}

// Server configures the local HTTP viewer.
type Server struct {
	Port int `yaml:"port"`
}

// Logging configures log verbosity.
type Logging struct {
	Level string `yaml:"level"`
}

// ConfigDir returns the XDG config directory for slink.
func ConfigDir() string {
	return filepath.Join(homeDir(), ".config", "slink")
}

// DataDir returns the XDG data directory for slink, used for the
// default history database location.
func DataDir() string {
	return filepath.Join(homeDir(), ".local", "share", "slink")
}

// ResolveConfigPath finds the config file following priority:
// explicit path > ~/.config/slink/config.yaml > ./config.yaml
func ResolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	xdgConfig := filepath.Join(ConfigDir(), "config.yaml")
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig, nil
	}

	cwdConfig := "config.yaml"
	if _, err := os.Stat(cwdConfig); err == nil {
		return cwdConfig, nil
	}

	return "", fmt.Errorf(
		"no config file found; searched:\n  %s\n  ./config.yaml\n\nRun 'slink init' to create a default config",
		xdgConfig,
	)
}

// Load reads and parses a config YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return parse(data)
}

// Default returns a Config populated with the same defaults Load
// applies when a document omits a field, for commands that run
// against a dataset without a config file on disk.
func Default() *Config {
	cfg, _ := parse(nil)
	return cfg
}

// parse parses YAML bytes into a Config, applying defaults.
func parse(data []byte) (*Config, error) {
	cfg := &Config{
		Dataset: Dataset{Path: "points.csv", Metric: "euclidean"},
		Labels:  Labels{Start: "1"},
		Output:  Output{LabelledPath: "out.txt", MathematicaPath: "mat.txt"},
		Server:  Server{Port: 8000},
		Logging: Logging{Level: "INFO"},
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// GetHistoryPath returns the effective history database path from
// config or the XDG default.
func (c *Config) GetHistoryPath() string {
	if c.History.DBPath != "" {
		return c.History.DBPath
	}
	return filepath.Join(DataDir(), "history.db")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
