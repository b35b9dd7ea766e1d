package prometheus

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/molsim/internal/infrastructure/monitoring/logging"
)

func newTestCollector(t *testing.T) MetricsCollector {
	t.Helper()
	c, err := NewMetricsCollector(CollectorConfig{Namespace: "test", Subsystem: "unit"}, logging.NewNopLogger())
	require.NoError(t, err)
	return c
}

func snapshot(t *testing.T, c MetricsCollector) map[string]float64 {
	t.Helper()
	snap, err := c.Snapshot()
	require.NoError(t, err)
	return snap
}

func TestNewMetricsCollector_EmptyNamespace(t *testing.T) {
	_, err := NewMetricsCollector(CollectorConfig{Subsystem: "unit"}, nil)
	assert.Error(t, err)
}

func TestRegisterCounter(t *testing.T) {
	c := newTestCollector(t)
	c.RegisterCounter("requests_total", "Total requests").WithLabelValues().Inc()
	c.RegisterCounter("pairs_total", "Pairs", "result").WithLabelValues("pruned").Add(5)

	snap := snapshot(t, c)
	assert.Equal(t, 1.0, snap["test_unit_requests_total"])
	assert.Equal(t, 5.0, snap[`test_unit_pairs_total{result="pruned"}`])
}

func TestRegisterCounter_Duplicate(t *testing.T) {
	c := newTestCollector(t)
	c.RegisterCounter("dup_counter", "help").WithLabelValues().Inc()
	c.RegisterCounter("dup_counter", "help").WithLabelValues().Inc()

	assert.Equal(t, 2.0, snapshot(t, c)["test_unit_dup_counter"])
}

func TestRegisterGauge(t *testing.T) {
	c := newTestCollector(t)
	g := c.RegisterGauge("atoms", "Atoms", "variant").WithLabelValues("covalent")
	g.Set(10)
	g.Add(2)

	assert.Equal(t, 12.0, snapshot(t, c)[`test_unit_atoms{variant="covalent"}`])
}

func TestRegisterHistogram_AndTimer(t *testing.T) {
	c := newTestCollector(t)
	h := c.RegisterHistogram("latency_seconds", "Latency", nil)
	h.WithLabelValues().Observe(0.25)
	d := NewTimer(h.WithLabelValues()).ObserveDuration()
	assert.GreaterOrEqual(t, d, time.Duration(0))

	snap := snapshot(t, c)
	assert.Equal(t, 2.0, snap["test_unit_latency_seconds_count"])
	assert.GreaterOrEqual(t, snap["test_unit_latency_seconds_sum"], 0.25)
}

func TestTypeConflict_ReturnsNoop(t *testing.T) {
	c := newTestCollector(t)
	c.RegisterCounter("conflict", "help").WithLabelValues().Inc()

	gauge := c.RegisterGauge("conflict", "help")
	assert.IsType(t, noopGaugeVec{}, gauge)
	gauge.WithLabelValues().Set(10)

	families, err := c.Gather()
	require.NoError(t, err)
	require.Len(t, families, 1)
	assert.Equal(t, "COUNTER", families[0].GetType().String())
	assert.Equal(t, 1.0, snapshot(t, c)["test_unit_conflict"])
}

func TestConcurrentRegistration(t *testing.T) {
	c := newTestCollector(t)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.RegisterCounter("concurrent_metric", "help", "id").WithLabelValues("1").Inc()
		}()
	}
	wg.Wait()

	assert.Equal(t, 50.0, snapshot(t, c)[`test_unit_concurrent_metric{id="1"}`])
}

func TestConstLabels(t *testing.T) {
	c, err := NewMetricsCollector(CollectorConfig{
		Namespace:   "molsim",
		ConstLabels: map[string]string{"run": "r1"},
	}, logging.NewNopLogger())
	require.NoError(t, err)
	c.RegisterCounter("hunts_total", "help", "variant").WithLabelValues("chemical").Inc()

	assert.Equal(t, 1.0, snapshot(t, c)[`molsim_hunts_total{run="r1",variant="chemical"}`])
}
