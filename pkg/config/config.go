// Package config loads tally configuration from TOML, YAML, or JSON files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration options for tally.
type Config struct {
	// Scan controls traversal and the execution backend.
	Scan ScanConfig `koanf:"scan"`

	// Exclude defines file exclusion rules.
	Exclude ExcludeConfig `koanf:"exclude"`

	// Output controls report rendering.
	Output OutputConfig `koanf:"output"`
}

// ScanConfig controls traversal and concurrency.
type ScanConfig struct {
	Recurse bool `koanf:"recurse"`
	// Backend selects the execution backend: auto, sync, or pool.
	Backend string `koanf:"backend"`
	// Workers is the pool worker count; 0 means one per logical
	// processor.
	Workers int `koanf:"workers"`
	// QueueLength is the bounded work queue capacity; 0 means
	// max(64, 8*workers).
	QueueLength int `koanf:"queue_length"`
	// MaxFileSize is the largest file read, in bytes; 0 selects the
	// loader default. Larger files are skipped with a warning.
	MaxFileSize int64 `koanf:"max_file_size"`
	// Dedupe skips files whose exact content was already metered.
	Dedupe bool `koanf:"dedupe"`
}

// ExcludeConfig defines file exclusion rules.
type ExcludeConfig struct {
	// Dirs are directory names pruned anywhere in the tree.
	Dirs []string `koanf:"dirs"`
	// Extensions are file extensions skipped outright.
	Extensions []string `koanf:"extensions"`
	// Patterns are gitignore-syntax patterns applied relative to each
	// scan root.
	Patterns []string `koanf:"patterns"`
	// Gitignore additionally honors the repository's .gitignore files.
	Gitignore bool `koanf:"gitignore"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Format  string `koanf:"format"` // text, json, markdown
	Color   bool   `koanf:"color"`
	Verbose bool   `koanf:"verbose"`
	// ByFile adds a per-file breakdown to the report.
	ByFile bool `koanf:"by_file"`
	// Sort orders language rows: code, files, total, blank, comment, or
	// language.
	Sort string `koanf:"sort"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Scan: ScanConfig{
			Recurse: true,
			Backend: "auto",
		},
		Exclude: ExcludeConfig{
			Dirs: []string{
				".git",
				".hg",
				".svn",
				"node_modules",
				"vendor",
				"__pycache__",
			},
			Gitignore: false,
		},
		Output: OutputConfig{
			Format: "text",
			Color:  true,
			Sort:   "code",
		},
	}
}

// Validate checks values that cannot be expressed by types alone.
func (c *Config) Validate() error {
	if c.Scan.Workers < 0 {
		return fmt.Errorf("scan.workers must be >= 0, got %d", c.Scan.Workers)
	}
	if c.Scan.QueueLength < 0 {
		return fmt.Errorf("scan.queue_length must be >= 0, got %d", c.Scan.QueueLength)
	}
	if c.Scan.MaxFileSize < 0 {
		return fmt.Errorf("scan.max_file_size must be >= 0, got %d", c.Scan.MaxFileSize)
	}
	switch c.Scan.Backend {
	case "", "auto", "sync", "pool":
	default:
		return fmt.Errorf("scan.backend must be auto, sync, or pool, got %q", c.Scan.Backend)
	}
	switch c.Output.Sort {
	case "", "code", "files", "total", "blank", "comment", "language":
	default:
		return fmt.Errorf("output.sort must be one of code, files, total, blank, comment, language, got %q", c.Output.Sort)
	}
	return nil
}

// Load loads configuration from a file, layered over the defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault tries standard config locations and falls back to the
// defaults when none load.
func LoadOrDefault() *Config {
	configNames := []string{
		"tally.toml",
		"tally.yaml",
		"tally.yml",
		"tally.json",
		".tally.toml",
		".tally.yaml",
		".tally.yml",
		".tally.json",
	}

	for _, name := range configNames {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if cfg, err := Load(name); err == nil {
			return cfg
		}
	}
	return DefaultConfig()
}
