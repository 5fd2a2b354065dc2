// Package dataset reads URL/traffic tables and writes enriched rows and
// summary tables as delimited text.
package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/dtnitsch/payscale-url-parser/models"
)

// ErrMissingColumn matches every *MissingColumnError via errors.Is.
var ErrMissingColumn = errors.New("missing column")

// MissingColumnError reports a requested column that is not in the header.
type MissingColumnError struct {
	Column     string
	Available  []string
	AutoDetect bool
}

func (e *MissingColumnError) Error() string {
	if e.AutoDetect {
		return fmt.Sprintf("could not detect a URL column; available columns: %s", strings.Join(e.Available, ", "))
	}
	return fmt.Sprintf("column %q not found; available columns: %s", e.Column, strings.Join(e.Available, ", "))
}

func (e *MissingColumnError) Is(target error) bool {
	return target == ErrMissingColumn
}

// urlColumnCandidates are tried in order when no URL column is configured.
var urlColumnCandidates = []string{"URL", "url", "Url", "Page_URL", "page_url", "Link", "link"}

// detectSampleRows is how many rows are scanned for URL-looking values.
const detectSampleRows = 5

// Options configures column resolution.
type Options struct {
	// URLColumn is auto-detected when empty.
	URLColumn     string
	TrafficColumn string
	// RequireTraffic fails NewReader when TrafficColumn is absent.
	RequireTraffic bool
	// Sample stops reading after this many rows; zero reads everything.
	Sample int
}

// Record is one data row.
type Record struct {
	// Line is the 1-based data row number, header excluded.
	Line    int
	Columns []string
	URL     string
	// Traffic is the raw weight cell; HasTrafficColumn tells whether the
	// table has a weight column at all.
	Traffic          string
	HasTrafficColumn bool
}

// Reader reads records in batches.
type Reader struct {
	csv        *csv.Reader
	header     []string
	delimiter  rune
	urlIdx     int
	trafficIdx int
	sample     int
	read       int
	pending    [][]string
}

// NewReader reads the header, detects the delimiter (tab when the header
// contains one, comma otherwise) and resolves the URL and traffic columns.
// Missing columns are reported here, before any row is processed.
func NewReader(r io.Reader, opts Options) (*Reader, error) {
	br := bufio.NewReader(r)
	headerLine, err := br.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	headerLine = strings.TrimPrefix(headerLine, "\ufeff")
	if strings.TrimSpace(headerLine) == "" {
		return nil, fmt.Errorf("failed to read header: input is empty")
	}

	delimiter := ','
	if strings.Contains(headerLine, "\t") {
		delimiter = '\t'
	}

	cr := csv.NewReader(io.MultiReader(strings.NewReader(headerLine), br))
	cr.Comma = delimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to parse header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	reader := &Reader{
		csv:        cr,
		header:     header,
		delimiter:  delimiter,
		urlIdx:     -1,
		trafficIdx: -1,
		sample:     opts.Sample,
	}

	if err := reader.resolveURLColumn(opts.URLColumn); err != nil {
		return nil, err
	}

	if opts.TrafficColumn != "" {
		reader.trafficIdx = indexOf(header, opts.TrafficColumn)
	}
	if reader.trafficIdx < 0 && opts.RequireTraffic {
		return nil, &MissingColumnError{Column: opts.TrafficColumn, Available: header}
	}

	return reader, nil
}

func (r *Reader) resolveURLColumn(name string) error {
	if name != "" {
		r.urlIdx = indexOf(r.header, name)
		if r.urlIdx < 0 {
			return &MissingColumnError{Column: name, Available: r.header}
		}
		return nil
	}

	for _, candidate := range urlColumnCandidates {
		if idx := indexOf(r.header, candidate); idx >= 0 {
			r.urlIdx = idx
			return nil
		}
	}

	// Fall back to the first column whose sampled values mention the site.
	for len(r.pending) < detectSampleRows {
		rec, err := r.csv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read sample rows: %w", err)
		}
		r.pending = append(r.pending, rec)
	}
	for col := range r.header {
		for _, rec := range r.pending {
			if col < len(rec) && strings.Contains(rec[col], models.SiteDomain) {
				r.urlIdx = col
				return nil
			}
		}
	}

	return &MissingColumnError{Column: urlColumnCandidates[0], Available: r.header, AutoDetect: true}
}

func indexOf(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	return -1
}

// Header returns the input column names.
func (r *Reader) Header() []string {
	return r.header
}

// Delimiter returns the detected field delimiter.
func (r *Reader) Delimiter() rune {
	return r.delimiter
}

// URLColumn returns the resolved URL column name.
func (r *Reader) URLColumn() string {
	return r.header[r.urlIdx]
}

// TrafficColumn returns the resolved traffic column name, or "" if the
// table has none.
func (r *Reader) TrafficColumn() string {
	if r.trafficIdx < 0 {
		return ""
	}
	return r.header[r.trafficIdx]
}

// ReadBatch returns up to n records. It returns io.EOF, with no records,
// once the input (or the sample limit) is exhausted.
func (r *Reader) ReadBatch(n int) ([]Record, error) {
	if n <= 0 {
		return nil, fmt.Errorf("batch size must be positive, got %d", n)
	}

	batch := make([]Record, 0, n)
	for len(batch) < n {
		if r.sample > 0 && r.read >= r.sample {
			break
		}

		var rec []string
		if len(r.pending) > 0 {
			rec, r.pending = r.pending[0], r.pending[1:]
		} else {
			var err error
			rec, err = r.csv.Read()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return batch, fmt.Errorf("failed to read row %d: %w", r.read+1, err)
			}
		}

		r.read++
		rec, err := r.fitHeader(rec)
		if err != nil {
			return batch, err
		}
		batch = append(batch, r.record(rec))
	}

	if len(batch) == 0 {
		return nil, io.EOF
	}
	return batch, nil
}

// fitHeader drops empty trailing cells beyond the header. Rows with more
// non-empty cells than the header are rejected, since their extra values
// would have no column in the enriched output.
func (r *Reader) fitHeader(rec []string) ([]string, error) {
	if len(rec) <= len(r.header) {
		return rec, nil
	}
	for _, v := range rec[len(r.header):] {
		if strings.TrimSpace(v) != "" {
			return nil, fmt.Errorf("row %d has %d fields, header has %d", r.read, len(rec), len(r.header))
		}
	}
	return rec[:len(r.header)], nil
}

func (r *Reader) record(rec []string) Record {
	out := Record{
		Line:             r.read,
		Columns:          rec,
		HasTrafficColumn: r.trafficIdx >= 0,
	}
	if r.urlIdx < len(rec) {
		out.URL = rec[r.urlIdx]
	}
	if r.trafficIdx >= 0 && r.trafficIdx < len(rec) {
		out.Traffic = rec[r.trafficIdx]
	}
	return out
}

// ParseWeight reads a traffic cell. Surrounding spaces and thousands
// separators are ignored; empty, non-numeric, NaN and infinite values are
// unusable.
func ParseWeight(raw string) (float64, bool) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
