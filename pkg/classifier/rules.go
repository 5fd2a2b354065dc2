package classifier

import (
	"strings"

	"github.com/dtnitsch/payscale-url-parser/models"
)

const (
	costOfLivingSegment = "cost-of-living-calculator"
	researchSegment     = "research"

	// defaultSkillMetric is used for skill pages with no metric segment.
	defaultSkillMetric = "Salary"
)

// researchKinds maps the Key of a research "Key=value" segment to its
// category and the field that receives the value.
var researchKinds = map[string]struct {
	category models.Category
	assign   func(f *models.Fields, v string)
}{
	"Job": {
		category: models.CategoryResearchJob,
		assign:   func(f *models.Fields, v string) { f.JobTitle = v },
	},
	"Employer": {
		category: models.CategoryResearchEmployer,
		assign:   func(f *models.Fields, v string) { f.Employer = v },
	},
	"Skill": {
		category: models.CategoryResearchSkill,
		assign:   func(f *models.Fields, v string) { f.Skill = v },
	},
}

func matchHomepage(segments []string, out *models.ClassifiedURL) bool {
	if len(segments) != 0 {
		return false
	}
	out.Section = models.SectionHomepage
	out.Category = models.CategoryHomepage
	return true
}

// matchCostOfLiving handles /cost-of-living-calculator[/State-City[/...]].
// Segments after the location (comparison targets) are ignored.
func matchCostOfLiving(segments []string, out *models.ClassifiedURL) bool {
	if len(segments) == 0 || segments[0] != costOfLivingSegment {
		return false
	}
	out.Section = models.SectionCostOfLiving
	out.Category = models.CategoryCostOfLiving

	if len(segments) > 1 {
		out.Fields.LocationState, out.Fields.LocationCity = splitLocation(segments[1])
	}
	return true
}

// matchResearch handles /research/<country>[/Key=value[/metric...]].
// A country segment is required; without it the URL falls through to other.
func matchResearch(segments []string, out *models.ClassifiedURL) bool {
	if len(segments) < 2 || segments[0] != researchSegment {
		return false
	}
	out.Section = models.SectionResearch
	out.Category = models.CategoryResearchGeneral
	out.Fields.Country = segments[1]

	if len(segments) < 3 {
		return true
	}

	key, value, ok := strings.Cut(segments[2], "=")
	kind, known := researchKinds[key]
	if !ok || !known || value == "" {
		return true
	}

	out.Category = kind.category
	kind.assign(&out.Fields, humanize(value))
	parseMetricPortion(segments[3:], &out.Fields)

	if kind.category == models.CategoryResearchSkill && out.Fields.MetricType == "" {
		out.Fields.MetricType = defaultSkillMetric
	}
	return true
}
