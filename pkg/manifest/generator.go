package manifest

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/payscale-url-parser/pkg/analytics"
	"github.com/dtnitsch/payscale-url-parser/pkg/dataset"
	"github.com/dtnitsch/payscale-url-parser/pkg/mapreduce"
	"github.com/dtnitsch/payscale-url-parser/pkg/storage"
)

// FileName is the manifest file inside a run directory.
const FileName = "manifest.yaml"

// highlightCount is how many leading keys each table summary lists.
const highlightCount = 5

// Run carries what the generator needs about a finished run.
// This is passed from the parse action to avoid circular dependencies.
type Run struct {
	SessionID     string
	InputPath     string
	URLColumn     string
	TrafficColumn string
	ParsedData    string
	Duration      time.Duration
	Stats         analytics.Stats
	Tables        []analytics.Table
}

// TableFile returns the CSV file name for a view.
func TableFile(view string) string {
	return view + ".csv"
}

// WriteTables writes one CSV per table into runDir, header included even
// when the table is empty.
func WriteTables(s *storage.Storage, runDir string, tables []analytics.Table) ([]TableSummary, error) {
	summaries := make([]TableSummary, 0, len(tables))
	for _, t := range tables {
		file := TableFile(t.Name)
		err := s.WriteWith(filepath.Join(runDir, file), func(w io.Writer) error {
			return dataset.WriteTable(w, t.KeyName, t.Rows)
		})
		if err != nil {
			return nil, fmt.Errorf("failed to write table %s: %w", t.Name, err)
		}
		summaries = append(summaries, TableSummary{
			Name:       t.Name,
			File:       file,
			Rows:       len(t.Rows),
			Highlights: mapreduce.TopKeys(t.Rows, highlightCount),
		})
	}
	return summaries, nil
}

// GenerateSummary writes every table and the run manifest into runDir.
// Returns the manifest and the path to manifest.yaml.
func GenerateSummary(run Run, s *storage.Storage, runDir string) (*RunManifest, string, error) {
	tables, err := WriteTables(s, runDir, run.Tables)
	if err != nil {
		return nil, "", err
	}

	m := &RunManifest{
		SessionID:     run.SessionID,
		GeneratedAt:   time.Now().Format(time.RFC3339),
		InputPath:     run.InputPath,
		URLColumn:     run.URLColumn,
		TrafficColumn: run.TrafficColumn,
		ParsedData:    run.ParsedData,
		DurationMS:    run.Duration.Milliseconds(),
		Stats:         run.Stats,
		Tables:        tables,
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, "", fmt.Errorf("error marshalling manifest: %w", err)
	}

	manifestPath := filepath.Join(runDir, FileName)
	if err := s.SaveFile(manifestPath, data); err != nil {
		return nil, "", fmt.Errorf("error saving manifest: %w", err)
	}

	return m, manifestPath, nil
}

// Load reads a manifest.yaml.
func Load(s *storage.Storage, path string) (*RunManifest, error) {
	data, err := s.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m RunManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}
