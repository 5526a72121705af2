// Package metrics exports per-run reflection counters in the Prometheus text
// format for a node_exporter textfile collector.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the gauges describing the most recent run.
//
// Every hook invocation is a fresh process, so values describe one run and
// are overwritten by the next export:
//   - autoreflect_last_run_timestamp_seconds
//   - autoreflect_last_run_duration_seconds
//   - autoreflect_last_run_turns
//   - autoreflect_last_run_signals{category}
//   - autoreflect_last_run_records{confidence}
//   - autoreflect_last_run_persisted
//   - autoreflect_last_run_redactions
//   - autoreflect_last_run_outcome{status,reason}
//   - autoreflect_reflections_total
type Metrics struct {
	registry *prometheus.Registry

	LastRun     prometheus.Gauge
	Duration    prometheus.Gauge
	Turns       prometheus.Gauge
	Signals     *prometheus.GaugeVec
	Records     *prometheus.GaugeVec
	Persisted   prometheus.Gauge
	Redactions  prometheus.Gauge
	Outcome     *prometheus.GaugeVec
	Reflections prometheus.Gauge
}

// New creates the gauges on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		LastRun: factory.NewGauge(prometheus.GaugeOpts{
			Name: "autoreflect_last_run_timestamp_seconds",
			Help: "Unix time the last reflection run finished",
		}),
		Duration: factory.NewGauge(prometheus.GaugeOpts{
			Name: "autoreflect_last_run_duration_seconds",
			Help: "Wall time of the last reflection run",
		}),
		Turns: factory.NewGauge(prometheus.GaugeOpts{
			Name: "autoreflect_last_run_turns",
			Help: "Human turns parsed in the last run",
		}),
		Signals: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "autoreflect_last_run_signals",
			Help: "Classified turns in the last run",
		}, []string{"category"}),
		Records: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "autoreflect_last_run_records",
			Help: "Learning records extracted in the last run",
		}, []string{"confidence"}),
		Persisted: factory.NewGauge(prometheus.GaugeOpts{
			Name: "autoreflect_last_run_persisted",
			Help: "Learning records appended in the last run",
		}),
		Redactions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "autoreflect_last_run_redactions",
			Help: "Secrets redacted from persisted text in the last run",
		}),
		Outcome: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "autoreflect_last_run_outcome",
			Help: "Set to 1 for the status and reason of the last run",
		}, []string{"status", "reason"}),
		Reflections: factory.NewGauge(prometheus.GaugeOpts{
			Name: "autoreflect_reflections_total",
			Help: "Cumulative learnings persisted, from the state file",
		}),
	}
}

// Finish stamps the run end time and duration.
func (m *Metrics) Finish(start, end time.Time) {
	m.LastRun.Set(float64(end.Unix()))
	m.Duration.Set(end.Sub(start).Seconds())
}

// Gatherer exposes the registry, mainly for tests.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes every gauge to path atomically, creating the parent
// directory when needed.
func (m *Metrics) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating metrics dir: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
