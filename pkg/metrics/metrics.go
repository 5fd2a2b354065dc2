// Package metrics counts classification work and writes it in the
// Prometheus text format for node_exporter's textfile collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dtnitsch/payscale-url-parser/models"
)

const namespace = "payscale_url_parser"

// Metrics holds one run's collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	RowsTotal       *prometheus.CounterVec
	TrafficTotal    *prometheus.GaugeVec
	SkippedWeights  prometheus.Counter
	BatchSize       prometheus.Histogram
	BatchDuration   prometheus.Histogram
	RunDuration     prometheus.Gauge
	LastRunUnixTime prometheus.Gauge
}

// New registers every collector on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		RowsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_total",
			Help:      "Rows classified, by section and category.",
		}, []string{"section", "category"}),
		// Gauge, since traffic values may be negative
		TrafficTotal: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "traffic",
			Help:      "Summed traffic of weighted rows, by section.",
		}, []string{"section"}),
		SkippedWeights: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "skipped_weights_total",
			Help:      "Rows whose traffic value was missing or not numeric.",
		}),
		BatchSize: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_size",
			Help:      "Rows per classification batch.",
			Buckets:   []float64{10, 100, 1000, 5000, 10000, 50000},
		}),
		BatchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_duration_seconds",
			Help:      "Time to classify and aggregate one batch.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
		RunDuration: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last run.",
		}),
		LastRunUnixTime: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished.",
		}),
	}
}

// ObserveBatch records one batch's size and duration.
func (m *Metrics) ObserveBatch(rows int, d time.Duration) {
	m.BatchSize.Observe(float64(rows))
	m.BatchDuration.Observe(d.Seconds())
}

// ObserveRows counts classified rows and their traffic.
func (m *Metrics) ObserveRows(rows []models.EnrichedRow) {
	for _, row := range rows {
		m.RowsTotal.WithLabelValues(string(row.Section), string(row.Category)).Inc()
		if !row.HasWeight {
			m.SkippedWeights.Inc()
			continue
		}
		m.TrafficTotal.WithLabelValues(string(row.Section)).Add(row.Weight)
	}
}

// Finish sets the run gauges.
func (m *Metrics) Finish(d time.Duration, now time.Time) {
	m.RunDuration.Set(d.Seconds())
	m.LastRunUnixTime.Set(float64(now.Unix()))
}

// WriteTextfile writes every metric to path atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}
	return nil
}
