package analytics

import (
	"github.com/dtnitsch/payscale-url-parser/models"
	"github.com/dtnitsch/payscale-url-parser/pkg/mapreduce"
)

// Stats are row-count statistics; every row counts here, weighted or not.
type Stats struct {
	TotalRows      int            `yaml:"total_rows" json:"total_rows"`
	WeightedRows   int            `yaml:"weighted_rows" json:"weighted_rows"`
	SkippedWeights int            `yaml:"skipped_weights" json:"skipped_weights"`
	TotalTraffic   float64        `yaml:"total_traffic" json:"total_traffic"`
	SectionCounts  map[string]int `yaml:"section_counts" json:"section_counts"`
	CategoryCounts map[string]int `yaml:"category_counts" json:"category_counts"`
}

// Table is a finished summary view.
type Table struct {
	Name    string                 `yaml:"name" json:"name"`
	KeyName string                 `yaml:"key_name" json:"key_name"`
	Rows    []mapreduce.SummaryRow `yaml:"rows" json:"rows"`
}

// Report accumulates every view in a single pass. Reports built over
// separate batches combine with Merge.
type Report struct {
	views []View
	accs  []*mapreduce.Accumulator
	stats Stats
}

// NewReport returns an empty report over a's views.
func (a *Analytics) NewReport() *Report {
	r := &Report{
		views: a.views,
		accs:  make([]*mapreduce.Accumulator, len(a.views)),
		stats: Stats{
			SectionCounts:  make(map[string]int),
			CategoryCounts: make(map[string]int),
		},
	}
	for i := range r.accs {
		r.accs[i] = mapreduce.NewAccumulator()
	}
	return r
}

// Add feeds one enriched row into every view. Rows without a usable weight
// only move the row counts.
func (r *Report) Add(row models.EnrichedRow) {
	r.stats.TotalRows++
	r.stats.SectionCounts[string(row.Section)]++
	r.stats.CategoryCounts[string(row.Category)]++

	if !row.HasWeight {
		r.stats.SkippedWeights++
		return
	}
	r.stats.WeightedRows++
	r.stats.TotalTraffic += row.Weight

	for i, v := range r.views {
		if key, ok := v.viewKey(row); ok {
			r.accs[i].Add(key, row.Weight)
		}
	}
}

// AddAll feeds rows in order.
func (r *Report) AddAll(rows []models.EnrichedRow) {
	for _, row := range rows {
		r.Add(row)
	}
}

// Merge folds other into r. Both must come from the same Analytics.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	for i := range r.accs {
		r.accs[i].Merge(other.accs[i])
	}
	r.stats.TotalRows += other.stats.TotalRows
	r.stats.WeightedRows += other.stats.WeightedRows
	r.stats.SkippedWeights += other.stats.SkippedWeights
	r.stats.TotalTraffic += other.stats.TotalTraffic
	for k, n := range other.stats.SectionCounts {
		r.stats.SectionCounts[k] += n
	}
	for k, n := range other.stats.CategoryCounts {
		r.stats.CategoryCounts[k] += n
	}
}

// Stats returns a copy of the row-count statistics so far.
func (r *Report) Stats() Stats {
	stats := r.stats
	stats.SectionCounts = copyCounts(r.stats.SectionCounts)
	stats.CategoryCounts = copyCounts(r.stats.CategoryCounts)
	return stats
}

func copyCounts(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, n := range m {
		out[k] = n
	}
	return out
}

// Tables returns every view, in view order. Views with no rows are present
// with an empty row slice.
func (r *Report) Tables() []Table {
	tables := make([]Table, len(r.views))
	for i, v := range r.views {
		tables[i] = Table{
			Name:    v.Name,
			KeyName: v.KeyName,
			Rows:    v.Finalize(r.accs[i]),
		}
	}
	return tables
}

// Table returns a single view by name.
func (r *Report) Table(name string) (Table, bool) {
	for i, v := range r.views {
		if v.Name == name {
			return Table{Name: v.Name, KeyName: v.KeyName, Rows: v.Finalize(r.accs[i])}, true
		}
	}
	return Table{}, false
}
