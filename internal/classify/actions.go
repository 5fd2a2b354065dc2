package classify

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/payscale-url-parser/internal/common"
	"github.com/dtnitsch/payscale-url-parser/models"
	"github.com/dtnitsch/payscale-url-parser/pkg/classifier"
)

// CollectURLs gathers URLs from positional args and --urls, falling back to
// one URL per line on stdin when neither is given.
func CollectURLs(c *cli.Context, stdin io.Reader) ([]string, error) {
	var urls []string
	for _, arg := range c.Args().Slice() {
		if cleaned := common.SanitizeURL(arg); cleaned != "" {
			urls = append(urls, cleaned)
		}
	}
	urls = append(urls, common.SplitURLList(c.String("urls"))...)
	if len(urls) > 0 || c.NArg() > 0 || c.IsSet("urls") {
		return urls, nil
	}

	scanner := bufio.NewScanner(stdin)
	for scanner.Scan() {
		if cleaned := common.SanitizeURL(scanner.Text()); cleaned != "" {
			urls = append(urls, cleaned)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read URLs from stdin: %w", err)
	}
	return urls, nil
}

// Marshal renders classifications as yaml (default) or json.
func Marshal(results []models.ClassifiedURL, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", "yaml":
		return yaml.Marshal(results)
	case "json":
		return json.MarshalIndent(results, "", "  ")
	default:
		return nil, fmt.Errorf("unknown format %q (want yaml or json)", format)
	}
}

func ClassifyAction(c *cli.Context) error {
	urls, err := CollectURLs(c, os.Stdin)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		fmt.Fprintln(os.Stderr, "Error: No URLs provided")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, `  payscale-url-parser classify "https://www.payscale.com/research/US/Job=Chef/Salary"`)
		fmt.Fprintln(os.Stderr, `  payscale-url-parser classify --urls "/research/US,/cost-of-living-calculator/Ohio-Columbus"`)
		fmt.Fprintln(os.Stderr, `  cat urls.txt | payscale-url-parser classify`)
		return cli.Exit("", 2)
	}

	results := make([]models.ClassifiedURL, len(urls))
	for i, u := range urls {
		results[i] = classifier.Classify(u)
	}

	out, err := Marshal(results, c.String("format"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 2)
	}
	fmt.Print(string(out))
	return nil
}
