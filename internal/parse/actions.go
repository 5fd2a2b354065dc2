package parse

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/payscale-url-parser/models"
	"github.com/dtnitsch/payscale-url-parser/pkg/dataset"
)

// NewLogger builds the JSON stderr logger every action uses.
func NewLogger(c *cli.Context) *slog.Logger {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	} else if c.Bool("verbose") {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// ConfigFromContext layers explicitly set flags over the YAML config file
// (if any) over the defaults.
func ConfigFromContext(c *cli.Context) (*models.RunConfig, error) {
	config, err := models.LoadConfig(c.String("config"), false)
	if err != nil {
		return nil, err
	}

	config.InputPath = c.Args().First()
	if c.IsSet("output-dir") {
		config.OutputDir = c.String("output-dir")
	}
	if c.IsSet("url-column") {
		config.URLColumn = c.String("url-column")
	}
	if c.IsSet("traffic-column") {
		config.TrafficColumn = c.String("traffic-column")
	}
	if c.IsSet("batch-size") {
		config.BatchSize = c.Int("batch-size")
	}
	if c.IsSet("workers") {
		config.WorkerCount = c.Int("workers")
	}
	if c.IsSet("top-n") {
		config.TopN = c.Int("top-n")
	}
	if c.IsSet("sample") {
		config.Sample = c.Int("sample")
	}
	if c.IsSet("no-analysis") {
		config.NoAnalysis = c.Bool("no-analysis")
	}
	if c.IsSet("no-db") {
		config.NoDB = c.Bool("no-db")
	}
	if c.IsSet("db") {
		config.DBPath = c.String("db")
	}
	if c.IsSet("metrics-file") {
		config.MetricsFile = c.String("metrics-file")
	}

	if config.InputPath == "" {
		return nil, errors.New("no input file provided")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func ParseAction(c *cli.Context) error {
	logger := NewLogger(c)

	config, err := ConfigFromContext(c)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		return cli.Exit(fmt.Sprintf("Error: %v\n\nUsage: payscale-url-parser parse [options] <input.csv>", err), 2)
	}

	var progress *Progress
	if !c.Bool("quiet") && !c.Bool("verbose") {
		progress = NewProgress()
	}

	summary, err := Run(c.Context, logger, config, progress)
	if err != nil {
		if errors.Is(err, dataset.ErrMissingColumn) {
			logger.Error("missing column", "error", err)
			return cli.Exit(fmt.Sprintf("Error: %v", err), 2)
		}
		return err
	}

	out, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal run summary: %w", err)
	}
	fmt.Print(string(out))
	return nil
}
