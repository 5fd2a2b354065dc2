package analyze

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/payscale-url-parser/models"
	"github.com/dtnitsch/payscale-url-parser/pkg/analytics"
	"github.com/dtnitsch/payscale-url-parser/pkg/dataset"
	"github.com/dtnitsch/payscale-url-parser/pkg/mapreduce"
)

// Options selects what to aggregate from an enriched table.
type Options struct {
	URLColumn     string
	TrafficColumn string
	TopN          int
	BatchSize     int
	// View keeps a single table when set.
	View string
}

// Output is what the analyze command prints.
type Output struct {
	Input  string            `yaml:"input"`
	Stats  analytics.Stats   `yaml:"stats"`
	Tables []analytics.Table `yaml:"tables"`
}

// Analyze re-aggregates a parsed_data file written by an earlier parse run.
// The stored classification columns are used as they are.
func Analyze(logger *slog.Logger, path string, opts Options) (*Output, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open enriched data: %w", err)
	}
	defer f.Close()

	reader, err := dataset.NewReader(f, dataset.Options{
		URLColumn:      opts.URLColumn,
		TrafficColumn:  opts.TrafficColumn,
		RequireTraffic: true,
	})
	if err != nil {
		return nil, err
	}
	decoder, err := dataset.NewEnrichedDecoder(reader.Header())
	if err != nil {
		return nil, err
	}

	a := analytics.New(opts.TopN)
	if opts.View != "" && !hasView(a, opts.View) {
		return nil, fmt.Errorf("unknown view %q", opts.View)
	}
	report := a.NewReport()

	for {
		records, err := reader.ReadBatch(opts.BatchSize)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		for _, rec := range records {
			row, err := decoder.Decode(rec)
			if err != nil {
				return nil, err
			}
			report.Add(row)
		}
	}

	out := &Output{Input: path, Stats: report.Stats()}
	if opts.View != "" {
		t, _ := report.Table(opts.View)
		out.Tables = []analytics.Table{t}
	} else {
		out.Tables = report.Tables()
	}
	logger.Info("Enriched data analyzed", "input", path, "rows", out.Stats.TotalRows, "tables", len(out.Tables))
	return out, nil
}

func hasView(a *analytics.Analytics, name string) bool {
	for _, v := range a.Views() {
		if v.Name == name {
			return true
		}
	}
	return false
}

// Render writes out as yaml (default) or as text, one numbered list per
// table.
func Render(w io.Writer, out *Output, format string) error {
	switch strings.ToLower(format) {
	case "", "yaml":
		data, err := yaml.Marshal(out)
		if err != nil {
			return fmt.Errorf("failed to marshal analysis: %w", err)
		}
		_, err = w.Write(data)
		return err
	case "text":
		fmt.Fprintf(w, "%s: %d rows (%d weighted, %d skipped), traffic %s\n",
			out.Input, out.Stats.TotalRows, out.Stats.WeightedRows, out.Stats.SkippedWeights,
			mapreduce.FormatTraffic(out.Stats.TotalTraffic))
		for _, t := range out.Tables {
			fmt.Fprintf(w, "\n%s (%s)\n", t.Name, t.KeyName)
			if len(t.Rows) == 0 {
				fmt.Fprintln(w, "   no rows")
				continue
			}
			fmt.Fprint(w, mapreduce.FormatTopKeys(t.Rows, len(t.Rows)))
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q (want yaml or text)", format)
	}
}

func AnalyzeAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	path := c.Args().First()
	if path == "" {
		return cli.Exit("Error: no enriched data file provided\n\nUsage: payscale-url-parser analyze [options] <parsed_data.csv>", 2)
	}
	if c.Int("top-n") <= 0 {
		return cli.Exit(fmt.Sprintf("Error: top-n must be positive, got %d", c.Int("top-n")), 2)
	}

	output, err := Analyze(logger, path, Options{
		URLColumn:     c.String("url-column"),
		TrafficColumn: c.String("traffic-column"),
		TopN:          c.Int("top-n"),
		BatchSize:     models.DefaultBatchSize,
		View:          c.String("view"),
	})
	if err != nil {
		if errors.Is(err, dataset.ErrMissingColumn) {
			logger.Error("missing column", "error", err)
			return cli.Exit(fmt.Sprintf("Error: %v", err), 2)
		}
		return err
	}

	return Render(os.Stdout, output, c.String("format"))
}
