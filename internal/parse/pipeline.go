package parse

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dtnitsch/payscale-url-parser/models"
	"github.com/dtnitsch/payscale-url-parser/pkg/analytics"
	"github.com/dtnitsch/payscale-url-parser/pkg/dataset"
	"github.com/dtnitsch/payscale-url-parser/pkg/db"
	"github.com/dtnitsch/payscale-url-parser/pkg/manifest"
	"github.com/dtnitsch/payscale-url-parser/pkg/mapreduce"
	"github.com/dtnitsch/payscale-url-parser/pkg/metrics"
	"github.com/dtnitsch/payscale-url-parser/pkg/session"
	"github.com/dtnitsch/payscale-url-parser/pkg/storage"
)

// topKeysCount is how many leading keys per view go into the run summary.
const topKeysCount = 3

// maxRunDirAttempts bounds retries when concurrent runs claim the same ID.
const maxRunDirAttempts = 10

// Run reads cfg.InputPath batch by batch, writes the enriched rows, the
// summary tables and the manifest into a new run directory, and records
// the run in the history database unless cfg.NoDB is set.
func Run(ctx context.Context, logger *slog.Logger, cfg *models.RunConfig, progress *Progress) (*RunSummary, error) {
	startTime := time.Now()

	f, err := os.Open(cfg.InputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	reader, err := dataset.NewReader(f, dataset.Options{
		URLColumn:      cfg.URLColumn,
		TrafficColumn:  cfg.TrafficColumn,
		RequireTraffic: !cfg.NoAnalysis,
		Sample:         cfg.Sample,
	})
	if err != nil {
		return nil, err
	}
	logger.Info("Input opened", "input", cfg.InputPath, "url_column", reader.URLColumn(),
		"traffic_column", reader.TrafficColumn(), "delimiter", string(reader.Delimiter()))

	s, err := storage.New(cfg.OutputDir)
	if err != nil {
		return nil, err
	}
	baseID := session.GenerateSessionID(cfg.InputPath, reader.URLColumn(), reader.TrafficColumn())
	var sessionID, runDir string
	for attempt := 0; ; attempt++ {
		sessionID = session.NextSessionID(cfg.OutputDir, baseID)
		runDir, err = s.RunDir(sessionID)
		// Lost a race with a concurrent run: pick the next free ID.
		if errors.Is(err, storage.ErrRunDirExists) && attempt < maxRunDirAttempts {
			continue
		}
		if err != nil {
			return nil, err
		}
		break
	}

	a := analytics.New(cfg.TopN)
	report := a.NewReport()
	m := metrics.New()

	var batches int
	parsedPath := filepath.Join(runDir, ParsedDataFile)
	err = s.WriteWith(parsedPath, func(w io.Writer) error {
		ew, err := dataset.NewEnrichedWriter(w, reader.Header(), reader.Delimiter())
		if err != nil {
			return err
		}

		progress.Start()
		defer progress.Stop()

		for {
			if err := ctx.Err(); err != nil {
				return err
			}

			records, err := reader.ReadBatch(cfg.BatchSize)
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return err
			}

			batchStart := time.Now()
			rows := classifyBatch(records, cfg.WorkerCount)
			for _, row := range rows {
				if err := ew.Write(row); err != nil {
					return err
				}
			}

			batchReport := a.NewReport()
			batchReport.AddAll(rows)
			report.Merge(batchReport)

			m.ObserveRows(rows)
			m.ObserveBatch(len(rows), time.Since(batchStart))
			batches++

			logger.Debug("Batch processed", "batch", batches, "rows", len(rows), "total_rows", report.Stats().TotalRows)
			progress.Update(report.Stats().TotalRows)
		}

		return ew.Flush()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to process input: %w", err)
	}

	stats := report.Stats()
	if stats.SkippedWeights > 0 && !cfg.NoAnalysis {
		logger.Warn("Rows without a usable traffic value were left out of the tables", "skipped_weights", stats.SkippedWeights)
	}

	var tables []analytics.Table
	if !cfg.NoAnalysis {
		tables = report.Tables()
	}

	duration := time.Since(startTime)
	runManifest, manifestPath, err := manifest.GenerateSummary(manifest.Run{
		SessionID:     sessionID,
		InputPath:     cfg.InputPath,
		URLColumn:     reader.URLColumn(),
		TrafficColumn: reader.TrafficColumn(),
		ParsedData:    ParsedDataFile,
		Duration:      duration,
		Stats:         stats,
		Tables:        tables,
	}, s, runDir)
	if err != nil {
		return nil, fmt.Errorf("failed to write manifest: %w", err)
	}

	if err := session.GenerateFieldsReference(cfg.OutputDir); err != nil {
		logger.Warn("Failed to generate FIELDS.yaml reference", "error", err)
	}
	runInfo := session.RunInfo{
		SessionID:    sessionID,
		Created:      time.Now(),
		InputPath:    cfg.InputPath,
		TotalRows:    stats.TotalRows,
		WeightedRows: stats.WeightedRows,
		TotalTraffic: stats.TotalTraffic,
	}
	if t, ok := report.Table(analytics.ViewBySection); ok && !cfg.NoAnalysis {
		runInfo.TopSections = mapreduce.TopKeys(t.Rows, topKeysCount)
	}
	if err := session.UpdateRunIndex(cfg.OutputDir, runInfo); err != nil {
		logger.Warn("Failed to update run index", "error", err)
	}

	summary := &RunSummary{
		Status:        "success",
		SessionID:     sessionID,
		InputPath:     cfg.InputPath,
		URLColumn:     reader.URLColumn(),
		TrafficColumn: reader.TrafficColumn(),
		RunDir:        runDir,
		ParsedData:    parsedPath,
		Manifest:      manifestPath,
		Batches:       batches,
		Stats:         stats,
	}
	if len(runManifest.Tables) > 0 {
		summary.TopKeys = make(map[string][]string, len(runManifest.Tables))
		for _, t := range runManifest.Tables {
			if len(t.Highlights) > 0 {
				summary.TopKeys[t.Name] = session.Preview(t.Highlights, topKeysCount)
			}
		}
	}

	if !cfg.NoDB {
		dbPath := cfg.DBPath
		if dbPath == "" {
			dbPath = db.DefaultPath(cfg.OutputDir)
		}
		runID, err := storeRun(dbPath, &db.Run{
			SessionID:      sessionID,
			InputPath:      cfg.InputPath,
			URLColumn:      reader.URLColumn(),
			TrafficColumn:  reader.TrafficColumn(),
			TotalRows:      stats.TotalRows,
			WeightedRows:   stats.WeightedRows,
			SkippedWeights: stats.SkippedWeights,
			TotalTraffic:   stats.TotalTraffic,
			OutputDir:      runDir,
		}, tables)
		if err != nil {
			return nil, err
		}
		summary.RunID = runID
		summary.Database = dbPath
		logger.Info("Run stored", "run_id", runID, "database", dbPath)
	}

	summary.TotalTimeSecs = time.Since(startTime).Seconds()
	if cfg.MetricsFile != "" {
		m.Finish(time.Since(startTime), time.Now())
		if err := m.WriteTextfile(cfg.MetricsFile); err != nil {
			return nil, err
		}
		summary.MetricsFile = cfg.MetricsFile
	}

	logger.Info("Run finished", "session_id", sessionID, "rows", stats.TotalRows, "batches", batches,
		"duration_seconds", summary.TotalTimeSecs)
	return summary, nil
}

func storeRun(dbPath string, run *db.Run, tables []analytics.Table) (int64, error) {
	database, err := db.Open(dbPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runID, err := database.InsertRun(run, tables)
	if err != nil {
		return 0, fmt.Errorf("failed to store run: %w", err)
	}
	return runID, nil
}
