// Package config loads pipeline configuration from YAML or JSON files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete pipeline configuration.
type Config struct {
	Account        string        `json:"account" yaml:"account"`
	Timezone       string        `json:"timezone" yaml:"timezone"`
	FillGaps       bool          `json:"fill_gaps" yaml:"fill_gaps"`
	DevelopmentLog bool          `json:"development_log" yaml:"development_log"`
	Journal        JournalConfig `json:"journal" yaml:"journal"`
}

// JournalConfig selects and parameterizes the output backend.
type JournalConfig struct {
	Type      string `json:"type" yaml:"type"` // "sqlite" or "csv"
	DBPath    string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
	LotsFile  string `json:"lots_file,omitempty" yaml:"lots_file,omitempty"`
	DailyFile string `json:"daily_file,omitempty" yaml:"daily_file,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Timezone: "America/New_York",
		FillGaps: true,
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./ledger.sqlite",
		},
	}
}

// LoadFromFile loads configuration from a file, trying YAML first and
// falling back to JSON.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jsonErr := json.Unmarshal(data, cfg); jsonErr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file, choosing the format by
// extension (.yaml/.yml for YAML, anything else JSON).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}

	switch c.Journal.Type {
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal.db_path is required for the sqlite journal")
		}
	case "csv":
		if c.Journal.LotsFile == "" || c.Journal.DailyFile == "" {
			return fmt.Errorf("journal.lots_file and journal.daily_file are required for the csv journal")
		}
	default:
		return fmt.Errorf("journal.type must be sqlite or csv, got %q", c.Journal.Type)
	}
	return nil
}
