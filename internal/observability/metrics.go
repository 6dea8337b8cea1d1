package observability

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "loc_eligibility"

// Metrics holds the Prometheus counters and gauges for one analysis run.
// Each Metrics owns its registry so runs and tests never collide.
type Metrics struct {
	registry *prometheus.Registry

	RowsLoaded        *prometheus.GaugeVec // labels: table={wages,geography}
	SOCMatches        prometheus.Gauge
	EligibleRows      prometheus.Gauge
	MissingGeography  prometheus.Gauge
	EncodingFallbacks prometheus.Counter
	OutputWrites      *prometheus.CounterVec // labels: format, engine
	EngineFailures    *prometheus.CounterVec // labels: engine
	RunDuration       prometheus.Gauge
	LastSuccess       prometheus.Gauge
}

// NewMetrics creates and registers all run metrics on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RowsLoaded: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rows_loaded",
			Help:      "Rows read from each input table.",
		}, []string{"table"}),
		SOCMatches: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "soc_matches",
			Help:      "Wage rows matching the configured SOC code before the wage test.",
		}),
		EligibleRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "eligible_rows",
			Help:      "Rows written to the report.",
		}),
		MissingGeography: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "missing_geography_rows",
			Help:      "Eligible rows without a geography match.",
		}),
		EncodingFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "encoding_fallbacks_total",
			Help:      "Geography encodings tried and rejected before one succeeded.",
		}),
		OutputWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "output_writes_total",
			Help:      "Report files written by format and engine.",
		}, []string{"format", "engine"}),
		EngineFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "spreadsheet_engine_failures_total",
			Help:      "Spreadsheet engines that failed and were skipped.",
		}, []string{"engine"}),
		RunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last analysis run.",
		}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last run that completed without error.",
		}),
	}

	m.registry.MustRegister(
		m.RowsLoaded,
		m.SOCMatches,
		m.EligibleRows,
		m.MissingGeography,
		m.EncodingFallbacks,
		m.OutputWrites,
		m.EngineFailures,
		m.RunDuration,
		m.LastSuccess,
	)
	return m
}

// Gatherer exposes the registry, e.g. for tests.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes all metrics in the text exposition format, suitable
// for the node_exporter textfile collector. Missing parent directories are
// created.
func (m *Metrics) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create metrics directory: %w", err)
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
