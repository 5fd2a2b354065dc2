package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dtnitsch/payscale-url-parser/models"
	"github.com/dtnitsch/payscale-url-parser/pkg/classifier"
)

func row(rawURL string, weight float64, hasWeight bool) models.EnrichedRow {
	return models.EnrichedRow{ClassifiedURL: classifier.Classify(rawURL), Weight: weight, HasWeight: hasWeight}
}

func gatherValue(t *testing.T, m *Metrics, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := m.registry.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	metric:
		for _, metric := range mf.GetMetric() {
			for _, lp := range metric.GetLabel() {
				if labels[lp.GetName()] != lp.GetValue() {
					continue metric
				}
			}
			switch {
			case metric.GetCounter() != nil:
				return metric.GetCounter().GetValue()
			case metric.GetGauge() != nil:
				return metric.GetGauge().GetValue()
			case metric.GetHistogram() != nil:
				return float64(metric.GetHistogram().GetSampleCount())
			}
		}
	}
	t.Fatalf("metric %s%v not found", name, labels)
	return 0
}

func TestMetrics_ObserveRows(t *testing.T) {
	m := New()
	m.ObserveRows([]models.EnrichedRow{
		row("https://www.payscale.com/research/US/Job=Chef/Salary", 100, true),
		row("https://www.payscale.com/research/US/Job=Cook/Salary", 50, true),
		row("https://www.payscale.com/research/US/Job=Baker/Salary", 0, false),
		row("https://www.payscale.com/", -5, true),
	})

	tests := []struct {
		name   string
		metric string
		labels map[string]string
		want   float64
	}{
		{"job rows", "payscale_url_parser_rows_total", map[string]string{"section": "research", "category": "research_job"}, 3},
		{"research traffic", "payscale_url_parser_traffic", map[string]string{"section": "research"}, 150},
		{"negative traffic", "payscale_url_parser_traffic", map[string]string{"section": "homepage"}, -5},
		{"skipped", "payscale_url_parser_skipped_weights_total", nil, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gatherValue(t, m, tt.metric, tt.labels); got != tt.want {
				t.Errorf("%s = %v, want %v", tt.metric, got, tt.want)
			}
		})
	}
}

func TestMetrics_WriteTextfile(t *testing.T) {
	m := New()
	m.ObserveBatch(3, 20*time.Millisecond)
	m.Finish(2*time.Second, time.Unix(1760000000, 0))

	if got := gatherValue(t, m, "payscale_url_parser_batch_size", nil); got != 1 {
		t.Errorf("batch_size sample count = %v, want 1", got)
	}

	path := filepath.Join(t.TempDir(), "run.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	for _, want := range []string{
		"payscale_url_parser_run_duration_seconds 2",
		"payscale_url_parser_last_run_timestamp_seconds 1.76e+09",
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("textfile missing %q:\n%s", want, data)
		}
	}
}
