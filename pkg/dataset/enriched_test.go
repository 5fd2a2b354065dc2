package dataset

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/dtnitsch/payscale-url-parser/models"
)

func TestEnrichedDecoder_RoundTrip(t *testing.T) {
	header := []string{"URL", "Traffic"}
	in := models.EnrichedRow{
		ClassifiedURL: models.ClassifiedURL{
			URL:      "https://www.payscale.com/research/US/Job=Software_Engineer/Hourly_Rate/Page-2",
			Domain:   "www.payscale.com",
			FullPath: "/research/US/Job=Software_Engineer/Hourly_Rate/Page-2",
			Section:  models.SectionResearch,
			Category: models.CategoryResearchJob,
			Fields: models.Fields{
				Country:    "US",
				JobTitle:   "Software Engineer",
				MetricType: "Hourly Rate",
				PageNumber: 2,
			},
		},
		Columns: []string{"https://www.payscale.com/research/US/Job=Software_Engineer/Hourly_Rate/Page-2", "1,200"},
	}

	var buf bytes.Buffer
	ew, err := NewEnrichedWriter(&buf, header, ',')
	if err != nil {
		t.Fatalf("NewEnrichedWriter() error = %v", err)
	}
	if err := ew.Write(in); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := ew.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	r, err := NewReader(&buf, Options{TrafficColumn: "Traffic", RequireTraffic: true})
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	d, err := NewEnrichedDecoder(r.Header())
	if err != nil {
		t.Fatalf("NewEnrichedDecoder() error = %v", err)
	}
	batches := readAll(t, r, 10)
	if len(batches) != 1 || len(batches[0]) != 1 {
		t.Fatalf("batches = %v, want one row", batches)
	}

	got, err := d.Decode(batches[0][0])
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got.ClassifiedURL != in.ClassifiedURL {
		t.Errorf("Decode() = %+v, want %+v", got.ClassifiedURL, in.ClassifiedURL)
	}
	if !got.HasWeight || got.Weight != 1200 {
		t.Errorf("weight = %v (%v), want 1200", got.Weight, got.HasWeight)
	}
}

func TestNewEnrichedDecoder_MissingColumns(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		want   string
	}{
		{"no section", []string{"URL", "category"}, "section"},
		{"no category", []string{"URL", "section"}, "category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEnrichedDecoder(tt.header)
			if !errors.Is(err, ErrMissingColumn) {
				t.Fatalf("error = %v, want ErrMissingColumn", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestEnrichedDecoder_LastColumnWins(t *testing.T) {
	header := []string{"URL", "section", "section", "category"}
	d, err := NewEnrichedDecoder(header)
	if err != nil {
		t.Fatalf("NewEnrichedDecoder() error = %v", err)
	}
	row, err := d.Decode(Record{Line: 1, Columns: []string{"/x", "input", "homepage", "homepage"}})
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if row.Section != models.SectionHomepage {
		t.Errorf("Section = %q, want homepage", row.Section)
	}
	if row.HasWeight {
		t.Error("HasWeight = true without a traffic column")
	}
}

func TestEnrichedDecoder_BadPageNumber(t *testing.T) {
	d, err := NewEnrichedDecoder([]string{"URL", "section", "category", models.FieldPageNumber})
	if err != nil {
		t.Fatalf("NewEnrichedDecoder() error = %v", err)
	}
	_, err = d.Decode(Record{Line: 4, Columns: []string{"/x", "research", "research_job", "abc"}})
	if err == nil || !strings.Contains(err.Error(), "row 4") {
		t.Errorf("Decode() error = %v, want row 4 error", err)
	}
}
