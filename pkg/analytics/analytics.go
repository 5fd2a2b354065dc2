package analytics

import (
	"github.com/dtnitsch/payscale-url-parser/models"
	"github.com/dtnitsch/payscale-url-parser/pkg/mapreduce"
)

// Order selects how a view's rows are ranked.
type Order int

const (
	OrderByTraffic Order = iota
	OrderByNumericKey
)

// View describes one named summary table.
type View struct {
	Name    string
	KeyName string
	Filter  func(row models.EnrichedRow) bool
	Key     mapreduce.KeyFunc
	Order   Order
	// TopN limits the table; zero keeps every key.
	TopN int
}

const (
	ViewBySection           = "by_section"
	ViewByCategory          = "by_category"
	ViewByMetricType        = "by_metric_type"
	ViewByPageNumber        = "by_page_number"
	ViewCostOfLivingByState = "cost_of_living_by_state"
	ViewResearchByCountry   = "research_by_country"
	ViewTopEmployers        = "top_employers"
	ViewAdditionalEmployers = "additional_employers"
	ViewTopJobs             = "top_jobs"
)

// Analytics builds reports over the fixed view table.
type Analytics struct {
	views []View
}

// New returns an Analytics whose top-N views keep topN keys.
func New(topN int) *Analytics {
	return &Analytics{views: DefaultViews(topN)}
}

// Views returns the view table in output order.
func (a *Analytics) Views() []View {
	return a.views
}

// DefaultViews returns the named views in output order.
func DefaultViews(topN int) []View {
	return []View{
		{
			Name:    ViewBySection,
			KeyName: "section",
			Key: func(r models.EnrichedRow) (string, bool) {
				return string(r.Section), r.Section != ""
			},
		},
		{
			Name:    ViewByCategory,
			KeyName: "category",
			Key: func(r models.EnrichedRow) (string, bool) {
				return string(r.Category), r.Category != ""
			},
		},
		{
			Name:    ViewByMetricType,
			KeyName: models.FieldMetricType,
			Key:     fieldKey(models.FieldMetricType),
		},
		{
			Name:    ViewByPageNumber,
			KeyName: models.FieldPageNumber,
			Key:     fieldKey(models.FieldPageNumber),
			Order:   OrderByNumericKey,
		},
		{
			Name:    ViewCostOfLivingByState,
			KeyName: models.FieldLocationState,
			Filter:  categoryIs(models.CategoryCostOfLiving),
			Key:     fieldKey(models.FieldLocationState),
		},
		{
			Name:    ViewResearchByCountry,
			KeyName: models.FieldCountry,
			Filter: func(r models.EnrichedRow) bool {
				return r.Section == models.SectionResearch
			},
			Key: fieldKey(models.FieldCountry),
		},
		{
			Name:    ViewTopEmployers,
			KeyName: models.FieldEmployer,
			Filter:  categoryIs(models.CategoryResearchEmployer),
			Key:     fieldKey(models.FieldEmployer),
			TopN:    topN,
		},
		{
			Name:    ViewAdditionalEmployers,
			KeyName: models.FieldAdditionalEmployer,
			Key:     fieldKey(models.FieldAdditionalEmployer),
			TopN:    topN,
		},
		{
			Name:    ViewTopJobs,
			KeyName: models.FieldJobTitle,
			Filter:  categoryIs(models.CategoryResearchJob),
			Key:     fieldKey(models.FieldJobTitle),
			TopN:    topN,
		},
	}
}

func fieldKey(name string) mapreduce.KeyFunc {
	return func(r models.EnrichedRow) (string, bool) {
		return r.Fields.Get(name)
	}
}

func categoryIs(c models.Category) func(models.EnrichedRow) bool {
	return func(r models.EnrichedRow) bool {
		return r.Category == c
	}
}

// viewKey combines a view's filter and key function.
func (v View) viewKey(r models.EnrichedRow) (string, bool) {
	if v.Filter != nil && !v.Filter(r) {
		return "", false
	}
	return v.Key(r)
}

// Finalize ranks and truncates accumulated rows for this view.
func (v View) Finalize(acc *mapreduce.Accumulator) []mapreduce.SummaryRow {
	rows := acc.Rows()
	if v.Order == OrderByNumericKey {
		mapreduce.SortByNumericKey(rows)
	}
	if v.TopN > 0 {
		rows = mapreduce.TopN(rows, v.TopN)
	}
	return rows
}

// Aggregate summarizes rows for a single view.
func (v View) Aggregate(rows []models.EnrichedRow) []mapreduce.SummaryRow {
	return v.Finalize(mapreduce.Map(rows, v.viewKey, mapreduce.RowWeight))
}
