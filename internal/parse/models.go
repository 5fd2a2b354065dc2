package parse

import (
	"github.com/dtnitsch/payscale-url-parser/pkg/analytics"
	"github.com/dtnitsch/payscale-url-parser/pkg/dataset"
)

// ParsedDataFile is the enriched output inside a run directory.
const ParsedDataFile = "parsed_data.csv"

type Job struct {
	Index  int
	Record dataset.Record
}

// RunSummary is printed to stdout as YAML when a run finishes.
type RunSummary struct {
	Status          string              `yaml:"status"`
	SessionID       string              `yaml:"session_id"`
	RunID           int64               `yaml:"run_id,omitempty"`
	InputPath       string              `yaml:"input_path"`
	URLColumn       string              `yaml:"url_column"`
	TrafficColumn   string              `yaml:"traffic_column,omitempty"`
	RunDir          string              `yaml:"run_dir"`
	ParsedData      string              `yaml:"parsed_data"`
	Manifest        string              `yaml:"manifest"`
	Database        string              `yaml:"database,omitempty"`
	MetricsFile     string              `yaml:"metrics_file,omitempty"`
	Batches         int                 `yaml:"batches"`
	TotalTimeSecs   float64             `yaml:"total_time_seconds"`
	Stats           analytics.Stats     `yaml:"stats"`
	TopKeys         map[string][]string `yaml:"top_keys,omitempty"`
}
