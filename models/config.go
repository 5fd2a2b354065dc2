// Package models defines data structures for configuration and classification.
package models

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultURLColumn     = "URL"
	DefaultTrafficColumn = "Traffic"
	DefaultBatchSize     = 10000
	DefaultWorkerCount   = 4
	DefaultTopN          = 20
	DefaultOutputDir     = "output"
)

// RunConfig holds runtime configuration for a parse run.
// Values come from an optional YAML file and are overridden by CLI flags.
type RunConfig struct {
	InputPath     string `yaml:"-"`
	OutputDir     string `yaml:"output_dir"`
	URLColumn     string `yaml:"url_column"`
	TrafficColumn string `yaml:"traffic_column"`
	BatchSize     int    `yaml:"batch_size"`
	WorkerCount   int    `yaml:"workers"`
	TopN          int    `yaml:"top_n"`
	Sample        int    `yaml:"sample"`
	NoAnalysis    bool   `yaml:"no_analysis"`
	NoDB          bool   `yaml:"no_db"`
	DBPath        string `yaml:"db_path"`
	MetricsFile   string `yaml:"metrics_file"`
}

// DefaultRunConfig returns a config with every default applied.
// URLColumn is left empty so the reader auto-detects it.
func DefaultRunConfig() *RunConfig {
	return &RunConfig{
		OutputDir:     DefaultOutputDir,
		TrafficColumn: DefaultTrafficColumn,
		BatchSize:     DefaultBatchSize,
		WorkerCount:   DefaultWorkerCount,
		TopN:          DefaultTopN,
	}
}

// LoadConfig reads a YAML config file on top of the defaults.
// A missing file is not an error when optional is true.
func LoadConfig(path string, optional bool) (*RunConfig, error) {
	config := DefaultRunConfig()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return config, nil
}

// Validate rejects values the run cannot work with.
func (c *RunConfig) Validate() error {
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive, got %d", c.BatchSize)
	}
	if c.WorkerCount <= 0 {
		return fmt.Errorf("worker count must be positive, got %d", c.WorkerCount)
	}
	if c.TopN <= 0 {
		return fmt.Errorf("top-n must be positive, got %d", c.TopN)
	}
	if c.Sample < 0 {
		return fmt.Errorf("sample must not be negative, got %d", c.Sample)
	}
	if c.TrafficColumn == "" {
		return fmt.Errorf("traffic column must not be empty")
	}
	return nil
}
