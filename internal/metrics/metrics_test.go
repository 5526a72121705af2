package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.Turns.Set(4)
	m.Signals.WithLabelValues("correction").Set(2)
	m.Records.WithLabelValues("HIGH").Set(2)
	m.Persisted.Set(2)
	m.Outcome.WithLabelValues("persisted", "").Set(1)
	m.Reflections.Set(9)

	start := time.Unix(1_800_000_000, 0)
	m.Finish(start, start.Add(1500*time.Millisecond))

	path := filepath.Join(t.TempDir(), "textfile", "autoreflect.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "autoreflect_last_run_turns 4\n")
	assert.Contains(t, out, `autoreflect_last_run_signals{category="correction"} 2`)
	assert.Contains(t, out, `autoreflect_last_run_records{confidence="HIGH"} 2`)
	assert.Contains(t, out, "autoreflect_last_run_persisted 2\n")
	assert.Contains(t, out, `autoreflect_last_run_outcome{reason="",status="persisted"} 1`)
	assert.Contains(t, out, "autoreflect_reflections_total 9\n")
	assert.Contains(t, out, "autoreflect_last_run_duration_seconds 1.5\n")
	assert.Contains(t, out, "autoreflect_last_run_timestamp_seconds 1.8e+09\n")
}

func TestNew_IndependentRegistries(t *testing.T) {
	// Each run owns its registry, so building twice must not panic on
	// duplicate registration.
	a := New()
	b := New()
	a.Turns.Set(1)

	families, err := b.Gatherer().Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == "autoreflect_last_run_turns" {
			assert.Zero(t, f.GetMetric()[0].GetGauge().GetValue())
		}
	}
}
