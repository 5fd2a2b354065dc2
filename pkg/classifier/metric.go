package classifier

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dtnitsch/payscale-url-parser/models"
)

var (
	// Ids look like "0a9d4bb0" or "ffed3159".
	uniqueIDPattern = regexp.MustCompile(`(?i)^[a-f0-9]{8,}$`)
	digitsPattern   = regexp.MustCompile(`\d+`)
)

const (
	pagePrefix    = "Page-"
	cityMetric    = "City"
	stateCodeSize = 2
)

// parseMetricPortion reads the segments that follow a research Key=value
// segment:
//
//	Salary
//	Salary/Page-3
//	City/Washington-DC[/Page-2]
//	Hourly_Rate/0a9d4bb0/H.E.B.
//	Salary/<location-or-word>/<extra...>
//	Salary/<id>
func parseMetricPortion(metric []string, f *models.Fields) {
	if len(metric) == 0 {
		return
	}

	if metric[0] == cityMetric && len(metric) >= 2 && len(metric) <= 3 && !strings.HasPrefix(metric[1], pagePrefix) {
		if len(metric) == 2 || strings.HasPrefix(metric[2], pagePrefix) {
			f.MetricType = cityMetric
			f.LocationInfo = strings.ReplaceAll(metric[1], "-", " ")
			if len(metric) == 3 {
				f.PageNumber = pageNumber(strings.TrimPrefix(metric[2], pagePrefix))
			}
			return
		}
	}

	f.MetricType = humanize(metric[0])

	switch {
	case len(metric) == 1:
	case len(metric) == 2 && strings.HasPrefix(metric[1], pagePrefix):
		f.PageNumber = pageNumber(strings.TrimPrefix(metric[1], pagePrefix))
	case len(metric) == 2:
		f.UniqueID = metric[1]
	default:
		middle := metric[1]
		extra := humanize(strings.Join(metric[2:], "/"))
		switch {
		case uniqueIDPattern.MatchString(middle):
			f.UniqueID = middle
			f.AdditionalEmployer = extra
		case strings.Contains(middle, "-") || len(middle) == stateCodeSize:
			f.LocationInfo = strings.ReplaceAll(middle, "-", " ")
			if !mentionsMetric(extra) {
				f.AdditionalEmployer = extra
			}
		default:
			f.AdditionalEmployer = humanize(middle) + " " + extra
		}
	}
}

// mentionsMetric reports whether text looks like more URL structure rather
// than an employer name.
func mentionsMetric(text string) bool {
	lower := strings.ToLower(text)
	for _, word := range []string{"page", "salary", "hourly"} {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

// pageNumber extracts the first run of digits. Template placeholders such
// as "{Page}" and values without digits give 0 (absent).
func pageNumber(raw string) int {
	if strings.ContainsAny(raw, "{}") {
		return 0
	}
	digits := digitsPattern.FindString(raw)
	if digits == "" {
		return 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}
