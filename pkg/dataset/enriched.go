package dataset

import (
	"fmt"

	"github.com/dtnitsch/payscale-url-parser/models"
)

// EnrichedDecoder rebuilds classified rows from an enriched table, so a
// finished run can be aggregated again without classifying its URLs.
type EnrichedDecoder struct {
	section  int
	category int
	domain   int
	fullPath int
	fields   map[string]int
}

// NewEnrichedDecoder resolves the classification columns in header. The
// section and category columns are required; domain, full_path and the
// field columns are optional.
// The last occurrence of a name wins, since classification columns follow
// the input columns.
func NewEnrichedDecoder(header []string) (*EnrichedDecoder, error) {
	d := &EnrichedDecoder{
		section:  lastIndexOf(header, ColumnSection),
		category: lastIndexOf(header, ColumnCategory),
		domain:   lastIndexOf(header, ColumnDomain),
		fullPath: lastIndexOf(header, ColumnFullPath),
		fields:   make(map[string]int, len(models.FieldNames)),
	}
	if d.section < 0 {
		return nil, &MissingColumnError{Column: ColumnSection, Available: header}
	}
	if d.category < 0 {
		return nil, &MissingColumnError{Column: ColumnCategory, Available: header}
	}
	for _, name := range models.FieldNames {
		if idx := lastIndexOf(header, name); idx >= 0 {
			d.fields[name] = idx
		}
	}
	return d, nil
}

func lastIndexOf(header []string, name string) int {
	for i := len(header) - 1; i >= 0; i-- {
		if header[i] == name {
			return i
		}
	}
	return -1
}

// Decode turns one record back into an enriched row. Unknown section or
// category values are kept as they are.
func (d *EnrichedDecoder) Decode(rec Record) (models.EnrichedRow, error) {
	row := models.EnrichedRow{
		ClassifiedURL: models.ClassifiedURL{
			URL:      rec.URL,
			Domain:   cell(rec.Columns, d.domain),
			FullPath: cell(rec.Columns, d.fullPath),
			Section:  models.Section(cell(rec.Columns, d.section)),
			Category: models.Category(cell(rec.Columns, d.category)),
		},
		Columns: rec.Columns,
	}
	for name, idx := range d.fields {
		if err := row.Fields.Set(name, cell(rec.Columns, idx)); err != nil {
			return row, fmt.Errorf("row %d: %w", rec.Line, err)
		}
	}
	if rec.HasTrafficColumn {
		row.Weight, row.HasWeight = ParseWeight(rec.Traffic)
	}
	return row, nil
}

func cell(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return rec[idx]
}
