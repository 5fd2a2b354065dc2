package db

import (
	"fmt"
	"strconv"

	"github.com/dtnitsch/payscale-url-parser/models"
	dbpkg "github.com/dtnitsch/payscale-url-parser/pkg/db"
	"github.com/urfave/cli/v2"
)

// openFromContext opens --db, or the default database inside --output-dir.
func openFromContext(c *cli.Context) (*dbpkg.DB, error) {
	path := c.String("db")
	if path == "" {
		outputDir := c.String("output-dir")
		if outputDir == "" {
			outputDir = models.DefaultOutputDir
		}
		path = dbpkg.DefaultPath(outputDir)
	}
	database, err := dbpkg.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return database, nil
}

// GetRunOrLatest returns the run named by the first arg, or the latest run if not provided
func GetRunOrLatest(c *cli.Context, database *dbpkg.DB) (*dbpkg.Run, error) {
	if c.NArg() == 0 {
		run, err := database.GetLatestRun()
		if err != nil {
			return nil, fmt.Errorf("%w. Run 'payscale-url-parser parse <input.csv>' first", err)
		}
		return run, nil
	}

	runID, err := strconv.ParseInt(c.Args().First(), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid run ID: %s", c.Args().First())
	}
	return database.GetRunByID(runID)
}
