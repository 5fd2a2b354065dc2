package mapreduce

import "github.com/dtnitsch/payscale-url-parser/models"

// KeyFunc extracts the grouping key of a row. ok is false when the row has
// no value for the key and must be left out of the view.
type KeyFunc func(row models.EnrichedRow) (key string, ok bool)

// WeightFunc extracts the numeric weight of a row. ok is false when the row
// has no usable weight.
type WeightFunc func(row models.EnrichedRow) (weight float64, ok bool)

// RowWeight reads the traffic weight carried on the row.
func RowWeight(row models.EnrichedRow) (float64, bool) {
	return row.Weight, row.HasWeight
}

// Totals is the running (sum, count) for one key.
type Totals struct {
	Total float64
	Count int
}

// Accumulator sums weights and counts rows per key. Partial accumulators
// built over separate shards combine with Merge; averages are only derived
// from the merged totals.
type Accumulator struct {
	totals map[string]*Totals
}

// NewAccumulator returns an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{totals: make(map[string]*Totals)}
}

// Add records one row with the given weight under key.
func (a *Accumulator) Add(key string, weight float64) {
	t, ok := a.totals[key]
	if !ok {
		t = &Totals{}
		a.totals[key] = t
	}
	t.Total += weight
	t.Count++
}

// Merge adds other's totals and counts into a.
func (a *Accumulator) Merge(other *Accumulator) {
	if other == nil {
		return
	}
	for key, ot := range other.totals {
		t, ok := a.totals[key]
		if !ok {
			t = &Totals{}
			a.totals[key] = t
		}
		t.Total += ot.Total
		t.Count += ot.Count
	}
}

// Rows returns one summary row per key, ranked by traffic.
func (a *Accumulator) Rows() []SummaryRow {
	rows := make([]SummaryRow, 0, len(a.totals))
	for key, t := range a.totals {
		rows = append(rows, SummaryRow{
			Key:          key,
			TotalTraffic: t.Total,
			URLCount:     t.Count,
			AvgTraffic:   Average(t.Total, t.Count),
		})
	}
	SortByTraffic(rows)
	return rows
}

// Map runs a single accumulation pass over rows. Rows without a key or
// without a usable weight are skipped.
func Map(rows []models.EnrichedRow, key KeyFunc, weight WeightFunc) *Accumulator {
	acc := NewAccumulator()
	for _, row := range rows {
		k, ok := key(row)
		if !ok {
			continue
		}
		w, ok := weight(row)
		if !ok {
			continue
		}
		acc.Add(k, w)
	}
	return acc
}

// AggregateBy groups rows by key and returns the ranked summary.
func AggregateBy(rows []models.EnrichedRow, key KeyFunc, weight WeightFunc) []SummaryRow {
	return Map(rows, key, weight).Rows()
}

// Average guards the division for empty groups.
func Average(total float64, count int) float64 {
	if count == 0 {
		return 0
	}
	return total / float64(count)
}
