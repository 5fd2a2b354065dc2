package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/payscale-url-parser/internal/analyze"
	"github.com/dtnitsch/payscale-url-parser/internal/classify"
	dbactions "github.com/dtnitsch/payscale-url-parser/internal/db"
	"github.com/dtnitsch/payscale-url-parser/internal/parse"
	"github.com/dtnitsch/payscale-url-parser/models"
	"github.com/dtnitsch/payscale-url-parser/pkg/help"
)

func historyFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "output-dir",
			Aliases: []string{"o"},
			Value:   models.DefaultOutputDir,
			Usage:   "Output directory holding the run database",
		},
		&cli.StringFlag{
			Name:  "db",
			Usage: "Path to the run database (default: <output-dir>/payscale-url-parser.db)",
		},
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "payscale-url-parser",
		Usage: "Classify PayScale URLs and aggregate traffic by section, category and field",
		Commands: []*cli.Command{
			{
				Name:      "parse",
				Usage:     "Classify every URL in a CSV/TSV file and write enriched rows and summary tables",
				ArgsUsage: "<input.csv>",
				Action:    parse.ParseAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output-dir",
						Aliases: []string{"o"},
						Value:   models.DefaultOutputDir,
						Usage:   "Directory for run output",
					},
					&cli.StringFlag{
						Name:    "url-column",
						Aliases: []string{"u"},
						Usage:   "Column holding the URLs (auto-detected when empty)",
					},
					&cli.StringFlag{
						Name:    "traffic-column",
						Aliases: []string{"t"},
						Value:   models.DefaultTrafficColumn,
						Usage:   "Column holding the traffic weight",
					},
					&cli.IntFlag{
						Name:    "batch-size",
						Aliases: []string{"b"},
						Value:   models.DefaultBatchSize,
						Usage:   "Rows per classification batch",
					},
					&cli.IntFlag{
						Name:    "workers",
						Aliases: []string{"w"},
						Value:   models.DefaultWorkerCount,
						Usage:   "Number of concurrent classification workers",
					},
					&cli.IntFlag{
						Name:    "sample",
						Aliases: []string{"s"},
						Usage:   "Only process the first N rows (0 = all)",
					},
					&cli.IntFlag{
						Name:  "top-n",
						Value: models.DefaultTopN,
						Usage: "Rows kept in top-N tables (employers, jobs)",
					},
					&cli.BoolFlag{
						Name:  "no-analysis",
						Usage: "Only write enriched rows; skip summary tables",
					},
					&cli.BoolFlag{
						Name:  "no-db",
						Usage: "Do not record the run in the database",
					},
					&cli.StringFlag{
						Name:  "db",
						Usage: "Path to the run database (default: <output-dir>/payscale-url-parser.db)",
					},
					&cli.StringFlag{
						Name:  "metrics-file",
						Usage: "Write Prometheus metrics to this textfile",
					},
					&cli.StringFlag{
						Name:  "config",
						Usage: "YAML config file; flags override its values",
					},
					&cli.BoolFlag{
						Name:    "quiet",
						Aliases: []string{"q"},
						Usage:   "Only log errors",
					},
					&cli.BoolFlag{
						Name:  "verbose",
						Usage: "Log every batch",
					},
				},
			},
			{
				Name:      "classify",
				Usage:     "Classify URLs given as arguments, --urls, or lines on stdin",
				ArgsUsage: "[urls...]",
				Action:    classify.ClassifyAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "urls",
						Usage: "Comma- or newline-separated URLs; commas inside a URL path are kept",
					},
					&cli.StringFlag{
						Name:  "format",
						Value: "yaml",
						Usage: "Output format: yaml or json",
					},
				},
			},
			{
				Name:      "analyze",
				Usage:     "Re-aggregate a parsed_data file from an earlier run without re-classifying",
				ArgsUsage: "<parsed_data.csv>",
				Action:    analyze.AnalyzeAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "url-column",
						Aliases: []string{"u"},
						Usage:   "Column holding the URLs (auto-detected when empty)",
					},
					&cli.StringFlag{
						Name:    "traffic-column",
						Aliases: []string{"t"},
						Value:   models.DefaultTrafficColumn,
						Usage:   "Column holding the traffic weight",
					},
					&cli.IntFlag{
						Name:  "top-n",
						Value: models.DefaultTopN,
						Usage: "Rows kept in top-N tables (employers, jobs)",
					},
					&cli.StringFlag{
						Name:  "view",
						Usage: "Only print one view, e.g. by_section or top_jobs",
					},
					&cli.StringFlag{
						Name:  "format",
						Value: "yaml",
						Usage: "Output format: yaml or text",
					},
					&cli.BoolFlag{
						Name:    "quiet",
						Aliases: []string{"q"},
						Usage:   "Only log errors",
					},
				},
			},
			{
				Name:   "runs",
				Usage:  "List stored runs, newest first",
				Action: dbactions.RunsAction,
				Flags: append(historyFlags(), &cli.IntFlag{
					Name:  "limit",
					Value: 20,
					Usage: "Maximum runs to list (0 = all)",
				}),
			},
			{
				Name:      "run",
				Usage:     "Show a stored run's summary tables (latest by default)",
				ArgsUsage: "[id]",
				Action:    dbactions.RunAction,
				Flags: append(historyFlags(), &cli.StringFlag{
					Name:  "view",
					Usage: "Only show one view, e.g. by_section or top_jobs",
				}),
			},
			{
				Name:      "manifest",
				Usage:     "Print a run's manifest.yaml (latest by default)",
				ArgsUsage: "[id]",
				Action:    dbactions.ManifestAction,
				Flags:     historyFlags(),
			},
			{
				Name:      "delete",
				Usage:     "Delete a stored run from the database",
				ArgsUsage: "<id>",
				Action:    dbactions.DeleteRunAction,
				Flags:     historyFlags(),
			},
			{
				Name:  "quickstart",
				Usage: "Print a quick reference of commands, inputs and output files",
				Action: func(c *cli.Context) error {
					fmt.Print(help.ColdstartYAML)
					return nil
				},
			},
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
