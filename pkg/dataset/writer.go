package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/dtnitsch/payscale-url-parser/models"
	"github.com/dtnitsch/payscale-url-parser/pkg/mapreduce"
)

// TableHeader is the column set shared by every summary table after the key.
var TableHeader = []string{"Total_Traffic", "URL_Count", "Avg_Traffic"}

// Classification column names in the enriched output.
const (
	ColumnSection  = "section"
	ColumnCategory = "category"
	ColumnDomain   = "domain"
	ColumnFullPath = "full_path"
)

// EnrichedColumns are appended to the input columns in the enriched output.
func EnrichedColumns() []string {
	return append([]string{ColumnSection, ColumnCategory, ColumnDomain, ColumnFullPath}, models.FieldNames...)
}

// EnrichedWriter writes input rows followed by their classification.
type EnrichedWriter struct {
	w     *csv.Writer
	width int
}

// NewEnrichedWriter writes the header and returns a writer for rows with the
// given input header.
func NewEnrichedWriter(w io.Writer, header []string, delimiter rune) (*EnrichedWriter, error) {
	cw := csv.NewWriter(w)
	cw.Comma = delimiter

	out := append(append([]string{}, header...), EnrichedColumns()...)
	if err := cw.Write(out); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	return &EnrichedWriter{w: cw, width: len(header)}, nil
}

// Write appends one enriched row. Short input rows are padded so the
// classification columns stay aligned.
func (ew *EnrichedWriter) Write(row models.EnrichedRow) error {
	rec := make([]string, ew.width, ew.width+4+len(models.FieldNames))
	copy(rec, row.Columns)
	rec = append(rec, string(row.Section), string(row.Category), row.Domain, row.FullPath)
	for _, name := range models.FieldNames {
		v, _ := row.Fields.Get(name)
		rec = append(rec, v)
	}
	if err := ew.w.Write(rec); err != nil {
		return fmt.Errorf("failed to write row: %w", err)
	}
	return nil
}

// Flush flushes buffered rows and reports any write error.
func (ew *EnrichedWriter) Flush() error {
	ew.w.Flush()
	return ew.w.Error()
}

// WriteTable writes one summary table with a header row. Averages keep two
// decimal places.
func WriteTable(w io.Writer, keyName string, rows []mapreduce.SummaryRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{keyName}, TableHeader...)); err != nil {
		return fmt.Errorf("failed to write table header: %w", err)
	}
	for _, r := range rows {
		rec := []string{
			r.Key,
			mapreduce.FormatTraffic(r.TotalTraffic),
			strconv.Itoa(r.URLCount),
			mapreduce.FormatAverage(r.AvgTraffic),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("failed to write table row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
