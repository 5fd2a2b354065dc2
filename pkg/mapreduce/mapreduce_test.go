package mapreduce

import (
	"fmt"
	"math"
	"reflect"
	"testing"

	"github.com/dtnitsch/payscale-url-parser/models"
)

func row(section models.Section, weight float64) models.EnrichedRow {
	return models.EnrichedRow{
		ClassifiedURL: models.ClassifiedURL{Section: section},
		Weight:        weight,
		HasWeight:     true,
	}
}

func bySection(r models.EnrichedRow) (string, bool) {
	return string(r.Section), r.Section != ""
}

func TestAggregateBy(t *testing.T) {
	rows := []models.EnrichedRow{
		row(models.SectionResearch, 8500),
		row(models.SectionCostOfLiving, 15000),
		row(models.SectionResearch, 7200),
		{ClassifiedURL: models.ClassifiedURL{Section: models.SectionOther}}, // no weight
	}

	got := AggregateBy(rows, bySection, RowWeight)
	want := []SummaryRow{
		{Key: "research", TotalTraffic: 15700, URLCount: 2, AvgTraffic: 7850},
		{Key: "cost_of_living", TotalTraffic: 15000, URLCount: 1, AvgTraffic: 15000},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AggregateBy() = %+v, want %+v", got, want)
	}
}

func TestAggregateBy_SkipsMissingKey(t *testing.T) {
	rows := []models.EnrichedRow{
		row(models.SectionResearch, 10),
		row("", 99),
	}

	got := AggregateBy(rows, bySection, RowWeight)
	if len(got) != 1 || got[0].Key != "research" {
		t.Errorf("AggregateBy() = %+v, want only the research group", got)
	}
}

func TestAggregateBy_Empty(t *testing.T) {
	got := AggregateBy(nil, bySection, RowWeight)
	if got == nil || len(got) != 0 {
		t.Errorf("AggregateBy(nil) = %#v, want empty non-nil slice", got)
	}
}

func TestAverage(t *testing.T) {
	if got := Average(10, 0); got != 0 {
		t.Errorf("Average(10, 0) = %v, want 0", got)
	}
	if got := Average(10, 4); got != 2.5 {
		t.Errorf("Average(10, 4) = %v, want 2.5", got)
	}
}

func TestMerge_MatchesSinglePass(t *testing.T) {
	var rows []models.EnrichedRow
	sections := []models.Section{models.SectionResearch, models.SectionHomepage, models.SectionOther}
	for i := 0; i < 30; i++ {
		rows = append(rows, row(sections[i%len(sections)], float64(i*7%13)))
	}

	single := Map(rows, bySection, RowWeight)
	shards := []*Accumulator{
		Map(rows[:7], bySection, RowWeight),
		Map(rows[7:20], bySection, RowWeight),
		Map(rows[20:], bySection, RowWeight),
		nil,
	}
	merged := NewAccumulator()
	for _, shard := range shards {
		merged.Merge(shard)
	}

	if !reflect.DeepEqual(single.Rows(), merged.Rows()) {
		t.Errorf("merged shards = %+v, single pass = %+v", merged.Rows(), single.Rows())
	}
}

func TestMerge_AveragesNotAveraged(t *testing.T) {
	a := NewAccumulator()
	a.Add("k", 100)
	b := NewAccumulator()
	b.Add("k", 0)
	b.Add("k", 0)
	b.Add("k", 0)

	a.Merge(b)
	rows := a.Rows()
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	// (100 + 0 + 0 + 0) / 4, not the mean of 100 and 0.
	if rows[0].AvgTraffic != 25 {
		t.Errorf("AvgTraffic = %v, want 25", rows[0].AvgTraffic)
	}
}

func TestAccumulator_AverageConsistency(t *testing.T) {
	acc := NewAccumulator()
	for i := 0; i < 100; i++ {
		acc.Add(fmt.Sprintf("k%d", i%7), float64(i)*1.1)
	}

	for _, r := range acc.Rows() {
		if r.URLCount == 0 {
			t.Fatalf("row %q has zero count", r.Key)
		}
		if math.Abs(r.AvgTraffic-r.TotalTraffic/float64(r.URLCount)) > 1e-9 {
			t.Errorf("row %q avg %v inconsistent with %v/%d", r.Key, r.AvgTraffic, r.TotalTraffic, r.URLCount)
		}
	}
}

func TestAccumulator_AddSameKey(t *testing.T) {
	acc := NewAccumulator()
	acc.Add("a", 2)
	acc.Add("a", 3)

	rows := acc.Rows()
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].TotalTraffic != 5 || rows[0].URLCount != 2 || rows[0].AvgTraffic != 2.5 {
		t.Errorf("row = %+v, want total 5 count 2 avg 2.5", rows[0])
	}
}
