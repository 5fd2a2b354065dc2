package mapreduce

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// SummaryRow is one line of an aggregation view.
type SummaryRow struct {
	Key          string  `yaml:"key" json:"key"`
	TotalTraffic float64 `yaml:"total_traffic" json:"total_traffic"`
	URLCount     int     `yaml:"url_count" json:"url_count"`
	AvgTraffic   float64 `yaml:"avg_traffic" json:"avg_traffic"`
}

// SortByTraffic orders rows by total traffic descending, then URL count
// descending, then key ascending.
func SortByTraffic(rows []SummaryRow) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalTraffic != rows[j].TotalTraffic {
			return rows[i].TotalTraffic > rows[j].TotalTraffic
		}
		if rows[i].URLCount != rows[j].URLCount {
			return rows[i].URLCount > rows[j].URLCount
		}
		return rows[i].Key < rows[j].Key
	})
}

// SortByNumericKey orders rows by their key read as an integer, ascending.
// Keys that are not integers sort after numeric ones, lexicographically.
func SortByNumericKey(rows []SummaryRow) {
	sort.Slice(rows, func(i, j int) bool {
		ni, errI := strconv.Atoi(rows[i].Key)
		nj, errJ := strconv.Atoi(rows[j].Key)
		switch {
		case errI == nil && errJ == nil:
			return ni < nj
		case errI == nil:
			return true
		case errJ == nil:
			return false
		default:
			return rows[i].Key < rows[j].Key
		}
	})
}

// TopN returns at most n rows from an already ranked slice.
func TopN(rows []SummaryRow, n int) []SummaryRow {
	limit := n
	if len(rows) < n {
		limit = len(rows)
	}
	if limit < 0 {
		limit = 0
	}
	return rows[:limit]
}

// TopKeys returns the top N keys as formatted strings.
// Each string is formatted as "key:total" (e.g., "Google Inc:7200").
func TopKeys(rows []SummaryRow, n int) []string {
	top := TopN(rows, n)
	keys := make([]string, len(top))
	for i, r := range top {
		keys[i] = fmt.Sprintf("%s:%s", r.Key, FormatTraffic(r.TotalTraffic))
	}
	return keys
}

// FormatTopKeys renders the top N rows as a numbered list.
func FormatTopKeys(rows []SummaryRow, n int) string {
	var sb strings.Builder
	for i, r := range TopN(rows, n) {
		fmt.Fprintf(&sb, "%d. %s: %s (%d urls)\n", i+1, r.Key, FormatTraffic(r.TotalTraffic), r.URLCount)
	}
	return sb.String()
}

// FormatTraffic renders a total without trailing zeros.
func FormatTraffic(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatAverage renders an average with two decimal places.
func FormatAverage(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
