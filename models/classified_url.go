package models

import (
	"fmt"
	"strconv"
)

// SiteDomain marks URLs and hosts that belong to the analyzed site.
const SiteDomain = "payscale.com"

// Section is the top-level grouping of a URL.
type Section string

const (
	SectionCostOfLiving Section = "cost_of_living"
	SectionResearch     Section = "research"
	SectionHomepage     Section = "homepage"
	SectionOther        Section = "other"
)

// Category is the finer-grained tag within a section.
type Category string

const (
	CategoryCostOfLiving     Category = "cost_of_living"
	CategoryResearchJob      Category = "research_job"
	CategoryResearchEmployer Category = "research_employer"
	CategoryResearchSkill    Category = "research_skill"
	CategoryResearchGeneral  Category = "research_general"
	CategoryHomepage         Category = "homepage"
	CategoryOther            Category = "other"
)

// Field names, as used in enriched output columns and aggregation views.
const (
	FieldLocationState      = "location_state"
	FieldLocationCity       = "location_city"
	FieldCountry            = "country"
	FieldJobTitle           = "job_title"
	FieldEmployer           = "employer"
	FieldSkill              = "skill"
	FieldMetricType         = "metric_type"
	FieldPageNumber         = "page_number"
	FieldUniqueID           = "unique_id"
	FieldAdditionalEmployer = "additional_employer"
	FieldLocationInfo       = "location_info"
)

// FieldNames lists every extracted field in output column order.
var FieldNames = []string{
	FieldLocationState,
	FieldLocationCity,
	FieldCountry,
	FieldJobTitle,
	FieldEmployer,
	FieldSkill,
	FieldMetricType,
	FieldPageNumber,
	FieldUniqueID,
	FieldAdditionalEmployer,
	FieldLocationInfo,
}

// Fields holds the values pulled out of a URL path.
// An empty string (or zero PageNumber) means the field is absent.
type Fields struct {
	LocationState      string `yaml:"location_state,omitempty" json:"location_state,omitempty"`
	LocationCity       string `yaml:"location_city,omitempty" json:"location_city,omitempty"`
	Country            string `yaml:"country,omitempty" json:"country,omitempty"`
	JobTitle           string `yaml:"job_title,omitempty" json:"job_title,omitempty"`
	Employer           string `yaml:"employer,omitempty" json:"employer,omitempty"`
	Skill              string `yaml:"skill,omitempty" json:"skill,omitempty"`
	MetricType         string `yaml:"metric_type,omitempty" json:"metric_type,omitempty"`
	PageNumber         int    `yaml:"page_number,omitempty" json:"page_number,omitempty"`
	UniqueID           string `yaml:"unique_id,omitempty" json:"unique_id,omitempty"`
	AdditionalEmployer string `yaml:"additional_employer,omitempty" json:"additional_employer,omitempty"`
	LocationInfo       string `yaml:"location_info,omitempty" json:"location_info,omitempty"`
}

// Get returns the value of a named field and whether it is present.
func (f Fields) Get(name string) (string, bool) {
	var v string
	switch name {
	case FieldLocationState:
		v = f.LocationState
	case FieldLocationCity:
		v = f.LocationCity
	case FieldCountry:
		v = f.Country
	case FieldJobTitle:
		v = f.JobTitle
	case FieldEmployer:
		v = f.Employer
	case FieldSkill:
		v = f.Skill
	case FieldMetricType:
		v = f.MetricType
	case FieldPageNumber:
		if f.PageNumber > 0 {
			v = strconv.Itoa(f.PageNumber)
		}
	case FieldUniqueID:
		v = f.UniqueID
	case FieldAdditionalEmployer:
		v = f.AdditionalEmployer
	case FieldLocationInfo:
		v = f.LocationInfo
	}
	return v, v != ""
}

// Set assigns a named field from its text form. An empty value clears it.
func (f *Fields) Set(name, value string) error {
	switch name {
	case FieldLocationState:
		f.LocationState = value
	case FieldLocationCity:
		f.LocationCity = value
	case FieldCountry:
		f.Country = value
	case FieldJobTitle:
		f.JobTitle = value
	case FieldEmployer:
		f.Employer = value
	case FieldSkill:
		f.Skill = value
	case FieldMetricType:
		f.MetricType = value
	case FieldPageNumber:
		if value == "" {
			f.PageNumber = 0
			return nil
		}
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid page number %q", value)
		}
		f.PageNumber = n
	case FieldUniqueID:
		f.UniqueID = value
	case FieldAdditionalEmployer:
		f.AdditionalEmployer = value
	case FieldLocationInfo:
		f.LocationInfo = value
	default:
		return fmt.Errorf("unknown field %q", name)
	}
	return nil
}

// Map returns only the populated fields, keyed by field name.
func (f Fields) Map() map[string]string {
	m := make(map[string]string)
	for _, name := range FieldNames {
		if v, ok := f.Get(name); ok {
			m[name] = v
		}
	}
	return m
}

// IsEmpty reports whether no field was extracted.
func (f Fields) IsEmpty() bool {
	return f == Fields{}
}

// ClassifiedURL is the classification record for one input URL.
type ClassifiedURL struct {
	URL string `yaml:"url" json:"url"`
	// Domain is the URL host, empty for path-only input.
	Domain string `yaml:"domain,omitempty" json:"domain,omitempty"`
	// FullPath is the decoded path without query or fragment.
	FullPath string   `yaml:"full_path,omitempty" json:"full_path,omitempty"`
	Section  Section  `yaml:"section" json:"section"`
	Category Category `yaml:"category" json:"category"`
	Fields   Fields   `yaml:"fields,omitempty" json:"fields,omitempty"`
}

// Unclassified returns the fallback record for a URL no rule matched.
// Domain and FullPath are left to the caller.
func Unclassified(rawURL string) ClassifiedURL {
	return ClassifiedURL{
		URL:      rawURL,
		Section:  SectionOther,
		Category: CategoryOther,
	}
}

// EnrichedRow pairs a classification with the input row it came from.
// Weight is only meaningful when HasWeight is true.
type EnrichedRow struct {
	ClassifiedURL
	Weight    float64
	HasWeight bool
	Columns   []string
}
