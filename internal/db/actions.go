package db

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	dbpkg "github.com/dtnitsch/payscale-url-parser/pkg/db"
	"github.com/dtnitsch/payscale-url-parser/pkg/manifest"
	"github.com/dtnitsch/payscale-url-parser/pkg/mapreduce"
	"github.com/dtnitsch/payscale-url-parser/pkg/storage"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

func RunsAction(c *cli.Context) error {
	database, err := openFromContext(c)
	if err != nil {
		return err
	}
	defer database.Close()

	runs, err := database.ListRuns(c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	printRuns(os.Stdout, runs)
	return nil
}

func printRuns(w io.Writer, runs []dbpkg.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs found")
		return
	}

	fmt.Fprintf(w, "%-6s %-20s %-10s %-10s %-8s %-14s %-30s\n",
		"ID", "Created", "Rows", "Weighted", "Skipped", "Traffic", "Input")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for _, r := range runs {
		fmt.Fprintf(w, "%-6d %-20s %-10d %-10d %-8d %-14s %-30s\n",
			r.RunID,
			r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			r.TotalRows,
			r.WeightedRows,
			r.SkippedWeights,
			mapreduce.FormatTraffic(r.TotalTraffic),
			r.InputPath,
		)
	}

	fmt.Fprintf(w, "\nTotal: %d runs\n", len(runs))
	fmt.Fprintf(w, "\nTip: Use 'payscale-url-parser run <id>' to see its tables\n")
}

// RunAction shows the stored tables for a run (latest by default)
func RunAction(c *cli.Context) error {
	database, err := openFromContext(c)
	if err != nil {
		return err
	}
	defer database.Close()

	run, err := GetRunOrLatest(c, database)
	if err != nil {
		return err
	}

	records, err := database.GetSummaryRows(run.RunID, c.String("view"))
	if err != nil {
		return err
	}

	printRun(os.Stdout, run, records)
	return nil
}

func printRun(w io.Writer, run *dbpkg.Run, records []dbpkg.SummaryRecord) {
	fmt.Fprintf(w, "Run %d (%s)\n", run.RunID, run.SessionID)
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintf(w, "Created:     %s\n", run.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Input:       %s\n", run.InputPath)
	fmt.Fprintf(w, "Columns:     url=%s traffic=%s\n", run.URLColumn, orNone(run.TrafficColumn))
	fmt.Fprintf(w, "Rows:        %d total (%d weighted, %d skipped)\n",
		run.TotalRows, run.WeightedRows, run.SkippedWeights)
	fmt.Fprintf(w, "Traffic:     %s\n", mapreduce.FormatTraffic(run.TotalTraffic))
	fmt.Fprintf(w, "Directory:   %s\n", orNone(run.OutputDir))

	if len(records) == 0 {
		fmt.Fprintln(w, "\nNo summary rows stored")
		return
	}

	view := ""
	for _, r := range records {
		if r.View != view {
			view = r.View
			fmt.Fprintf(w, "\n%s\n", view)
			fmt.Fprintln(w, strings.Repeat("-", 60))
		}
		fmt.Fprintf(w, "%3d. %-30s %14s %8d %12s\n",
			r.Rank, r.Key, mapreduce.FormatTraffic(r.TotalTraffic), r.URLCount, mapreduce.FormatAverage(r.AvgTraffic))
	}
}

// ManifestAction prints a run's manifest.yaml
func ManifestAction(c *cli.Context) error {
	database, err := openFromContext(c)
	if err != nil {
		return err
	}
	defer database.Close()

	run, err := GetRunOrLatest(c, database)
	if err != nil {
		return err
	}
	data, err := readManifest(run)
	if err != nil {
		return err
	}

	// Print run reminder as YAML comment
	fmt.Printf("# Run: %d\n", run.RunID)
	fmt.Print(string(data))
	return nil
}

// readManifest loads a run's manifest.yaml and checks that it was written
// by that run.
func readManifest(run *dbpkg.Run) ([]byte, error) {
	if run.OutputDir == "" {
		return nil, fmt.Errorf("run %d has no output directory", run.RunID)
	}

	s := &storage.Storage{BaseDir: run.OutputDir}
	path := filepath.Join(run.OutputDir, manifest.FileName)
	if !s.HasFile(path) {
		return nil, fmt.Errorf("file not found: %s\nRun directory: %s", manifest.FileName, run.OutputDir)
	}
	m, err := manifest.Load(s, path)
	if err != nil {
		return nil, err
	}
	if m.SessionID != run.SessionID {
		return nil, fmt.Errorf("manifest in %s belongs to session %s, not run %d (%s)",
			run.OutputDir, m.SessionID, run.RunID, run.SessionID)
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal manifest: %w", err)
	}
	return data, nil
}

// DeleteRunAction removes a run and its summary rows from the database
func DeleteRunAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("Error: run ID required\n\nUsage: payscale-url-parser delete <id>", 2)
	}

	database, err := openFromContext(c)
	if err != nil {
		return err
	}
	defer database.Close()

	run, err := GetRunOrLatest(c, database)
	if err != nil {
		return err
	}
	if err := database.DeleteRun(run.RunID); err != nil {
		return err
	}
	fmt.Printf("Deleted run %d (output files kept at %s)\n", run.RunID, orNone(run.OutputDir))
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
