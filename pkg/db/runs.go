package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dtnitsch/payscale-url-parser/pkg/analytics"
)

// ErrRunNotFound is returned when a run ID has no row.
var ErrRunNotFound = errors.New("run not found")

// Run represents a stored parse run
type Run struct {
	RunID          int64     `yaml:"run_id"`
	SessionID      string    `yaml:"session_id"`
	InputPath      string    `yaml:"input_path"`
	URLColumn      string    `yaml:"url_column"`
	TrafficColumn  string    `yaml:"traffic_column,omitempty"`
	TotalRows      int       `yaml:"total_rows"`
	WeightedRows   int       `yaml:"weighted_rows"`
	SkippedWeights int       `yaml:"skipped_weights"`
	TotalTraffic   float64   `yaml:"total_traffic"`
	OutputDir      string    `yaml:"output_dir,omitempty"`
	CreatedAt      time.Time `yaml:"created_at"`
}

// SummaryRecord is one stored row of a summary view
type SummaryRecord struct {
	View         string  `yaml:"view"`
	Rank         int     `yaml:"rank"`
	Key          string  `yaml:"key"`
	TotalTraffic float64 `yaml:"total_traffic"`
	URLCount     int     `yaml:"url_count"`
	AvgTraffic   float64 `yaml:"avg_traffic"`
}

// InsertRun stores a run and all of its summary tables in one transaction.
// It sets run.RunID and returns it.
func (db *DB) InsertRun(run *Run, tables []analytics.Table) (int64, error) {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // No-op after Commit

	result, err := tx.Exec(`
		INSERT INTO runs (session_id, input_path, url_column, traffic_column, total_rows, weighted_rows, skipped_weights, total_traffic, output_dir, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.SessionID, run.InputPath, run.URLColumn, run.TrafficColumn, run.TotalRows, run.WeightedRows,
		run.SkippedWeights, run.TotalTraffic, run.OutputDir, run.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO summary_rows (run_id, view, rank, key, total_traffic, url_count, avg_traffic)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare summary insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range tables {
		for i, r := range t.Rows {
			if _, err := stmt.Exec(runID, t.Name, i+1, r.Key, r.TotalTraffic, r.URLCount, r.AvgTraffic); err != nil {
				return 0, fmt.Errorf("failed to insert summary row %s/%s: %w", t.Name, r.Key, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}

	run.RunID = runID
	return runID, nil
}

const runColumns = `run_id, session_id, input_path, url_column, COALESCE(traffic_column, ''), total_rows,
	weighted_rows, skipped_weights, total_traffic, COALESCE(output_dir, ''), created_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(s rowScanner) (*Run, error) {
	var run Run
	err := s.Scan(
		&run.RunID,
		&run.SessionID,
		&run.InputPath,
		&run.URLColumn,
		&run.TrafficColumn,
		&run.TotalRows,
		&run.WeightedRows,
		&run.SkippedWeights,
		&run.TotalTraffic,
		&run.OutputDir,
		&run.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// GetRunByID retrieves a run by its ID
func (db *DB) GetRunByID(runID int64) (*Run, error) {
	run, err := scanRun(db.QueryRow("SELECT "+runColumns+" FROM runs WHERE run_id = ?", runID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %d: %w", runID, ErrRunNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// GetLatestRun retrieves the most recently inserted run
func (db *DB) GetLatestRun() (*Run, error) {
	run, err := scanRun(db.QueryRow("SELECT " + runColumns + " FROM runs ORDER BY run_id DESC LIMIT 1"))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("no runs stored: %w", ErrRunNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest run: %w", err)
	}
	return run, nil
}

// ListRuns returns runs newest first. A limit of zero or less returns all.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	query := "SELECT " + runColumns + " FROM runs ORDER BY run_id DESC"
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// GetSummaryRows returns a run's stored rows for one view, by rank. An
// empty view returns every view, grouped by view name.
func (db *DB) GetSummaryRows(runID int64, view string) ([]SummaryRecord, error) {
	query := `
		SELECT view, rank, key, total_traffic, url_count, avg_traffic
		FROM summary_rows
		WHERE run_id = ?`
	args := []interface{}{runID}
	if view != "" {
		query += " AND view = ?"
		args = append(args, view)
	}
	query += " ORDER BY view, rank"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get summary rows: %w", err)
	}
	defer rows.Close()

	var records []SummaryRecord
	for rows.Next() {
		var r SummaryRecord
		if err := rows.Scan(&r.View, &r.Rank, &r.Key, &r.TotalTraffic, &r.URLCount, &r.AvgTraffic); err != nil {
			return nil, fmt.Errorf("failed to scan summary row: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// DeleteRun removes a run and, by cascade, its summary rows
func (db *DB) DeleteRun(runID int64) error {
	result, err := db.Exec("DELETE FROM runs WHERE run_id = ?", runID)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("run %d: %w", runID, ErrRunNotFound)
	}
	return nil
}
