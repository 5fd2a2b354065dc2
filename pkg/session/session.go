package session

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// RunInfo represents one entry of the run index.
type RunInfo struct {
	SessionID    string    `yaml:"session_id"`
	Created      time.Time `yaml:"created"`
	InputPath    string    `yaml:"input_path"`
	TotalRows    int       `yaml:"total_rows"`
	WeightedRows int       `yaml:"weighted_rows"`
	TotalTraffic float64   `yaml:"total_traffic"`
	TopSections  []string  `yaml:"top_sections,omitempty"` // First 3 sections by traffic
}

// RunIndex represents the index.yaml file at the output root.
type RunIndex struct {
	Runs []RunInfo `yaml:"runs"`
}

// GenerateSessionID creates a timestamp-first run ID for an input file.
// Format: YYYY-MM-DDTHH-MM-{hash}
// Hash is derived from the cleaned input path and its column selection.
func GenerateSessionID(inputPath string, columns ...string) string {
	return generateSessionID(time.Now(), inputPath, columns...)
}

func generateSessionID(now time.Time, inputPath string, columns ...string) string {
	h := sha256.New()
	h.Write([]byte(filepath.Clean(inputPath)))
	for _, c := range columns {
		h.Write([]byte("\n"))
		h.Write([]byte(c))
	}
	hashBytes := h.Sum(nil)
	shortHash := hex.EncodeToString(hashBytes[:6]) // 12 char hex

	// Minute precision
	timestamp := now.Format("2006-01-02T15-04")

	return fmt.Sprintf("%s-%s", timestamp, shortHash)
}

// GetRunDir returns the full path to a run directory.
func GetRunDir(baseDir, sessionID string) string {
	return filepath.Join(baseDir, sessionID)
}

// GetRunIndexPath returns the path to the run index file (at output root).
func GetRunIndexPath(baseDir string) string {
	return filepath.Join(baseDir, "index.yaml")
}

// RunExists reports whether a run directory is already taken.
func RunExists(baseDir, sessionID string) bool {
	_, err := os.Stat(GetRunDir(baseDir, sessionID))
	return err == nil
}

// NextSessionID returns sessionID, or the first of sessionID-2,
// sessionID-3... whose run directory does not exist yet. Same-minute runs
// of one input would otherwise share a directory.
func NextSessionID(baseDir, sessionID string) string {
	id := sessionID
	for n := 2; RunExists(baseDir, id); n++ {
		id = fmt.Sprintf("%s-%d", sessionID, n)
	}
	return id
}

// ReadRunIndex loads index.yaml; a missing file is an empty index.
func ReadRunIndex(baseDir string) (*RunIndex, error) {
	var index RunIndex
	data, err := os.ReadFile(GetRunIndexPath(baseDir))
	if os.IsNotExist(err) {
		return &index, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read run index: %w", err)
	}
	if err := yaml.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("failed to parse run index: %w", err)
	}
	return &index, nil
}

// UpdateRunIndex adds or updates a run entry in index.yaml.
func UpdateRunIndex(baseDir string, info RunInfo) error {
	index, err := ReadRunIndex(baseDir)
	if err != nil {
		return err
	}

	found := false
	for i, r := range index.Runs {
		if r.SessionID == info.SessionID {
			index.Runs[i] = info
			found = true
			break
		}
	}
	if !found {
		index.Runs = append(index.Runs, info)
	}

	// Timestamp-first IDs sort chronologically
	sort.Slice(index.Runs, func(i, j int) bool {
		return index.Runs[i].SessionID > index.Runs[j].SessionID // Newest first
	})

	output, err := yaml.Marshal(index)
	if err != nil {
		return fmt.Errorf("failed to marshal run index: %w", err)
	}

	if err := os.WriteFile(GetRunIndexPath(baseDir), output, 0644); err != nil {
		return fmt.Errorf("failed to write run index: %w", err)
	}

	return nil
}

// Preview returns the first n entries of a list.
func Preview(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

// GenerateFieldsReference creates the FIELDS.yaml reference file once.
func GenerateFieldsReference(baseDir string) error {
	fieldsPath := filepath.Join(baseDir, "FIELDS.yaml")

	if _, err := os.Stat(fieldsPath); err == nil {
		// File exists, don't overwrite
		return nil
	}

	content := `# Enriched Column Reference
# Auto-generated field documentation for payscale-url-parser output

columns:
  section: [homepage, cost_of_living, research, other]
  category: [homepage, cost_of_living, research_job, research_employer, research_skill, research_general, other]
  domain: string (URL host, empty for path-only input)
  full_path: string (decoded path without query or fragment)

  # Location
  location_state: string (state from a cost-of-living segment, multi-word states kept whole)
  location_city: string (remaining words of the location segment, or City= metric segment)
  country: string (second path segment of /research/)

  # Entity
  job_title: string (Job= value, underscores become spaces)
  employer: string (Employer= value)
  skill: string (Skill= value)

  # Metric portion
  metric_type: string (segment after the entity; Skill pages default to Salary)
  page_number: int (Page-N segment)
  unique_id: string (hex identifier segment)
  additional_employer: string (trailing employer segments)
  location_info: string (trailing location segment)

tables:
  by_section: traffic per section
  by_category: traffic per category
  by_metric_type: traffic per metric type
  by_page_number: traffic per page number, ascending
  cost_of_living_by_state: cost-of-living traffic per state
  research_by_country: research traffic per country
  top_employers: research_employer traffic per employer
  additional_employers: traffic per additional employer
  top_jobs: research_job traffic per job title

usage:
  parsed_data: original columns plus the classification columns
  manifest: per-run stats and table file list
  location: {output-dir}/{session-id}/
  run_index: {output-dir}/index.yaml (list all runs)
`

	if err := os.WriteFile(fieldsPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write FIELDS.yaml: %w", err)
	}

	return nil
}
