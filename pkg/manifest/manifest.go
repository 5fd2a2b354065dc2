package manifest

import "github.com/dtnitsch/payscale-url-parser/pkg/analytics"

// RunManifest represents the structure of a run's manifest.yaml.
// It gives an overview of one run, its row statistics and the tables it
// wrote, without reading the CSV files.
type RunManifest struct {
	SessionID     string          `yaml:"session_id"`
	GeneratedAt   string          `yaml:"generated_at"`
	InputPath     string          `yaml:"input_path"`
	URLColumn     string          `yaml:"url_column"`
	TrafficColumn string          `yaml:"traffic_column,omitempty"`
	ParsedData    string          `yaml:"parsed_data"`
	DurationMS    int64           `yaml:"duration_ms"`
	Stats         analytics.Stats `yaml:"stats"`
	Tables        []TableSummary  `yaml:"tables,omitempty"`
}

// TableSummary represents one written summary table.
// Highlights are the leading keys as "key:total".
type TableSummary struct {
	Name       string   `yaml:"name"`
	File       string   `yaml:"file"`
	Rows       int      `yaml:"rows"`
	Highlights []string `yaml:"highlights,omitempty"`
}
