// Package config loads driftwatch's YAML configuration. Fields are pointers
// so callers can tell "unset" from a zero value when merging CLI flags over
// local and global files.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML configuration shape for driftwatch.
type FileConfig struct {
	Algorithm              *string `yaml:"algorithm"`
	ChunkSize              *int    `yaml:"chunk_size"`
	BaselineFile           *string `yaml:"baseline_file"`
	IgnoreFile             *string `yaml:"ignore_file"`
	Threads                *int    `yaml:"threads"`
	NoColor                *bool   `yaml:"no_color"`
	AllowAlgorithmMismatch *bool   `yaml:"allow_algorithm_mismatch"`
	NoAudit                *bool   `yaml:"no_audit"`
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLocal searches for a tree-local config file in the given root.
// It supports .driftwatch.yml/.yaml and driftwatch.yml/.yaml.
func LoadLocal(root string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".driftwatch.yml", ".driftwatch.yaml", "driftwatch.yml", "driftwatch.yaml"} {
		p := filepath.Join(root, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return cfg, errors.New("no config dir")
	}
	p := filepath.Join(base, "driftwatch", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}
