// Package config loads tracker settings: built-in defaults overlaid with an
// optional YAML file at ~/.tracknest/config.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// DataFile is the flat user data file, the single source of truth.
	DataFile string `yaml:"data_file"`
	// ExportFile is the default target of the CSV summary export.
	ExportFile string `yaml:"export_file"`
	// ActivityDB is the SQLite file holding the account activity log.
	ActivityDB string `yaml:"activity_db"`
	// LogFile receives structured logs; the terminal stays clean for menus.
	LogFile string `yaml:"log_file"`

	Theme         string `yaml:"theme"`
	Accessibility bool   `yaml:"accessibility"`
	Language      string `yaml:"language"`
}

// Dir returns the tracker's home directory, ~/.tracknest.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".tracknest"), nil
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Default returns the built-in configuration rooted at dir.
func Default(dir string) Config {
	return Config{
		DataFile:   filepath.Join(dir, "tracknest.txt"),
		ExportFile: filepath.Join(dir, "report.csv"),
		ActivityDB: filepath.Join(dir, "activity.db"),
		LogFile:    filepath.Join(dir, "tracknest.log"),
		Theme:      "Light",
		Language:   "en",
	}
}

// Load reads the YAML file at path and overlays it on the defaults rooted in
// the file's directory. A missing file yields the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default(filepath.Dir(path))

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
