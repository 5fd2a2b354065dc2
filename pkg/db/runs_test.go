package db

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/dtnitsch/payscale-url-parser/pkg/analytics"
	"github.com/dtnitsch/payscale-url-parser/pkg/mapreduce"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	database := &DB{}
	var err error
	database.DB, err = openDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := database.InitSchema(); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}

	return database
}

func sampleTables() []analytics.Table {
	return []analytics.Table{
		{
			Name:    analytics.ViewBySection,
			KeyName: "section",
			Rows: []mapreduce.SummaryRow{
				{Key: "research", TotalTraffic: 15700, URLCount: 2, AvgTraffic: 7850},
				{Key: "cost_of_living", TotalTraffic: 15000, URLCount: 1, AvgTraffic: 15000},
			},
		},
		{
			Name:    analytics.ViewTopJobs,
			KeyName: "job_title",
			Rows: []mapreduce.SummaryRow{
				{Key: "Software Engineer", TotalTraffic: 8500, URLCount: 1, AvgTraffic: 8500},
			},
		},
		{Name: analytics.ViewByPageNumber, KeyName: "page_number"},
	}
}

func TestInsertRun(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	run := &Run{
		SessionID:     "2026-10-17T09-30-abcdefabcdef",
		InputPath:     "urls.csv",
		URLColumn:     "URL",
		TrafficColumn: "Traffic",
		TotalRows:     3,
		WeightedRows:  3,
		TotalTraffic:  30700,
		OutputDir:     "output/2026-10-17T09-30-abcdefabcdef",
	}

	runID, err := db.InsertRun(run, sampleTables())
	if err != nil {
		t.Fatalf("InsertRun() error = %v", err)
	}
	if runID == 0 || run.RunID != runID {
		t.Fatalf("InsertRun() runID = %d, run.RunID = %d", runID, run.RunID)
	}

	got, err := db.GetRunByID(runID)
	if err != nil {
		t.Fatalf("GetRunByID() error = %v", err)
	}
	if got.SessionID != run.SessionID || got.TotalTraffic != 30700 || got.TrafficColumn != "Traffic" {
		t.Errorf("GetRunByID() = %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt is zero")
	}

	rows, err := db.GetSummaryRows(runID, analytics.ViewBySection)
	if err != nil {
		t.Fatalf("GetSummaryRows() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("GetSummaryRows() returned %d rows, want 2", len(rows))
	}
	if rows[0].Rank != 1 || rows[0].Key != "research" || rows[0].URLCount != 2 {
		t.Errorf("rows[0] = %+v", rows[0])
	}

	all, err := db.GetSummaryRows(runID, "")
	if err != nil {
		t.Fatalf("GetSummaryRows(all) error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("GetSummaryRows(all) returned %d rows, want 3", len(all))
	}
}

func TestInsertRun_NoTrafficColumn(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	runID, err := db.InsertRun(&Run{SessionID: "s", InputPath: "in.csv", URLColumn: "URL", TotalRows: 2, SkippedWeights: 2}, nil)
	if err != nil {
		t.Fatalf("InsertRun() error = %v", err)
	}
	got, err := db.GetRunByID(runID)
	if err != nil {
		t.Fatalf("GetRunByID() error = %v", err)
	}
	if got.TrafficColumn != "" || got.SkippedWeights != 2 {
		t.Errorf("GetRunByID() = %+v", got)
	}
}

func TestGetRunByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if _, err := db.GetRunByID(42); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("GetRunByID() error = %v, want ErrRunNotFound", err)
	}
	if _, err := db.GetLatestRun(); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("GetLatestRun() error = %v, want ErrRunNotFound", err)
	}
}

func TestListRuns(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	for _, id := range []string{"first", "second", "third"} {
		if _, err := db.InsertRun(&Run{SessionID: id, InputPath: "in.csv", URLColumn: "URL"}, nil); err != nil {
			t.Fatalf("InsertRun() error = %v", err)
		}
	}

	tests := []struct {
		name  string
		limit int
		want  []string
	}{
		{"all", 0, []string{"third", "second", "first"}},
		{"limited", 2, []string{"third", "second"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs, err := db.ListRuns(tt.limit)
			if err != nil {
				t.Fatalf("ListRuns() error = %v", err)
			}
			if len(runs) != len(tt.want) {
				t.Fatalf("ListRuns() returned %d runs, want %d", len(runs), len(tt.want))
			}
			for i, r := range runs {
				if r.SessionID != tt.want[i] {
					t.Errorf("runs[%d] = %q, want %q", i, r.SessionID, tt.want[i])
				}
			}
		})
	}

	latest, err := db.GetLatestRun()
	if err != nil {
		t.Fatalf("GetLatestRun() error = %v", err)
	}
	if latest.SessionID != "third" {
		t.Errorf("GetLatestRun() = %q, want third", latest.SessionID)
	}
}

func TestDeleteRun_Cascades(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	runID, err := db.InsertRun(&Run{SessionID: "s", InputPath: "in.csv", URLColumn: "URL"}, sampleTables())
	if err != nil {
		t.Fatalf("InsertRun() error = %v", err)
	}
	if err := db.DeleteRun(runID); err != nil {
		t.Fatalf("DeleteRun() error = %v", err)
	}

	rows, err := db.GetSummaryRows(runID, "")
	if err != nil {
		t.Fatalf("GetSummaryRows() error = %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("GetSummaryRows() after delete returned %d rows", len(rows))
	}
	if err := db.DeleteRun(runID); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("second DeleteRun() error = %v, want ErrRunNotFound", err)
	}
}

func TestOpen_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultDBName)

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if _, err := db.InsertRun(&Run{SessionID: "s", InputPath: "in.csv", URLColumn: "URL"}, nil); err != nil {
		t.Fatalf("InsertRun() error = %v", err)
	}
	db.Close()

	// Reopening keeps the existing schema and data
	db, err = Open(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer db.Close()
	runs, err := db.ListRuns(0)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("ListRuns() returned %d runs, want 1", len(runs))
	}
}
