package prometheus

import (
	"time"
)

// Metric names, relative to the collector namespace.
const (
	MetricHuntsTotal          = "hunts_total"
	MetricBondsInferredTotal  = "bonds_inferred_total"
	MetricChunkPairsTotal     = "chunk_pairs_total"
	MetricValenceRemovedTotal = "valence_bonds_removed_total"
	MetricHuntDuration        = "hunt_duration_seconds"
	MetricAtomsInScope        = "atoms_in_scope"
)

// HunterMetrics records bond-hunt activity.  Its method set matches
// bondhunt.Recorder.
type HunterMetrics struct {
	HuntsTotal          CounterVec
	BondsInferredTotal  CounterVec
	ChunkPairsTotal     CounterVec
	ValenceRemovedTotal CounterVec
	HuntDuration        HistogramVec
	AtomsInScope        GaugeVec
}

// NewHunterMetrics registers the hunter metric set on collector.
func NewHunterMetrics(collector MetricsCollector) *HunterMetrics {
	return &HunterMetrics{
		HuntsTotal:          collector.RegisterCounter(MetricHuntsTotal, "Bond hunts by variant and outcome", "variant", "status"),
		BondsInferredTotal:  collector.RegisterCounter(MetricBondsInferredTotal, "Bonds written by hunts", "variant"),
		ChunkPairsTotal:     collector.RegisterCounter(MetricChunkPairsTotal, "Chunk pairs considered by the broad phase", "result"),
		ValenceRemovedTotal: collector.RegisterCounter(MetricValenceRemovedTotal, "Bonds removed by valence correction"),
		HuntDuration:        collector.RegisterHistogram(MetricHuntDuration, "Bond hunt wall time", DefaultDurationBuckets, "variant"),
		AtomsInScope:        collector.RegisterGauge(MetricAtomsInScope, "Selected atoms in the most recent hunt", "variant"),
	}
}

// HuntFinished records one completed or failed hunt.
func (m *HunterMetrics) HuntFinished(variant string, atoms, bonds int, elapsed time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.HuntsTotal.WithLabelValues(variant, status).Inc()
	m.HuntDuration.WithLabelValues(variant).Observe(elapsed.Seconds())
	if err != nil {
		return
	}
	m.BondsInferredTotal.WithLabelValues(variant).Add(float64(bonds))
	m.AtomsInScope.WithLabelValues(variant).Set(float64(atoms))
}

// ChunkPairs records broad-phase outcomes.
func (m *HunterMetrics) ChunkPairs(scanned, pruned int) {
	m.ChunkPairsTotal.WithLabelValues("scanned").Add(float64(scanned))
	m.ChunkPairsTotal.WithLabelValues("pruned").Add(float64(pruned))
}

// ValenceBondsRemoved records bonds dropped by valence correction.
func (m *HunterMetrics) ValenceBondsRemoved(n int) {
	m.ValenceRemovedTotal.WithLabelValues().Add(float64(n))
}
