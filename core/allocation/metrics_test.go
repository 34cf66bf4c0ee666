package allocation

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/brigade/core/graph"
	"github.com/kilianp07/brigade/core/model"
)

func TestMetricsRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	ResetMetrics(reg)
	t.Cleanup(func() { ResetMetrics(nil) })

	e := newReferenceEngine(t, Config{})
	e.SimulateDay()

	assert.Equal(t, 6.0, testutil.ToFloat64(allocationsTotal))
	assert.Equal(t, 258.75, testutil.ToFloat64(areaCommitted))
	assert.Equal(t, 1.0, testutil.ToFloat64(daysSimulated))
	// one shortest path run per brigade thanks to the day cache
	assert.Equal(t, 3.0, testutil.ToFloat64(shortestPathRuns))
	assert.Equal(t, 3.0, testutil.ToFloat64(cacheLookups.WithLabelValues("miss")))

	mfs, err := reg.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}
	for _, n := range []string{
		"brigade_allocations_total",
		"brigade_area_committed_total",
		"brigade_days_simulated_total",
		"brigade_shortest_path_runs_total",
		"brigade_distance_cache_total",
	} {
		assert.True(t, names[n], "metric %s not registered", n)
	}
}

func TestUncachedRoutingRecomputes(t *testing.T) {
	ResetMetrics(nil)
	t.Cleanup(func() { ResetMetrics(nil) })
	e := newReferenceEngine(t, Config{DisableCache: true})
	e.SimulateDay()
	assert.Greater(t, testutil.ToFloat64(shortestPathRuns), 3.0)
}

func TestDistanceCacheResetsEachDay(t *testing.T) {
	ResetMetrics(nil)
	t.Cleanup(func() { ResetMetrics(nil) })
	g := graph.New()
	g.AddEdge("B1", "F1", 1)
	e, err := NewEngine(g, []model.Brigade{{ID: "B1", HourlyCapacity: 1}},
		[]model.Focus{{ID: "F1", Area: 1000, GrowthFactor: 1}}, Config{})
	require.NoError(t, err)

	e.SimulateDay()
	e.SimulateDay()
	assert.Equal(t, 1, e.cache.Len())
	assert.Equal(t, 2.0, testutil.ToFloat64(shortestPathRuns))
	assert.Equal(t, 2.0, testutil.ToFloat64(cacheLookups.WithLabelValues("miss")))
}
