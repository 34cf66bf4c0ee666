package metrics

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/brigade/core/factory"
	coremetrics "github.com/kilianp07/brigade/core/metrics"
	"github.com/kilianp07/brigade/core/model"
)

func sampleDay() coremetrics.DayRecord {
	return coremetrics.DayRecord{
		RunID: "run1",
		Day:   1,
		Allocations: []model.Allocation{
			{Day: 1, FocusID: "F1", BrigadeID: "B1", AreaCommitted: 110},
			{Day: 1, FocusID: "F1", BrigadeID: "B2", AreaCommitted: 40},
			{Day: 1, FocusID: "F2", BrigadeID: "B2", AreaCommitted: 48},
			{Day: 1, FocusID: "F2", BrigadeID: "B1", AreaCommitted: 0},
		},
		Foci: []model.FocusState{
			{ID: "F1", Area: 0, Extinguished: true},
			{ID: "F2", Area: 12},
		},
	}
}

func TestPromSink_RecordDay(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	require.NoError(t, sink.RecordDay(sampleDay()))
	assert.Equal(t, 110.0, testutil.ToFloat64(sink.committed.WithLabelValues("B1")))
	assert.Equal(t, 88.0, testutil.ToFloat64(sink.committed.WithLabelValues("B2")))
	assert.Equal(t, 0.0, testutil.ToFloat64(sink.residual.WithLabelValues("F1")))
	assert.Equal(t, 12.0, testutil.ToFloat64(sink.residual.WithLabelValues("F2")))
}

func TestPromSink_RecordRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	require.NoError(t, sink.RecordRun(coremetrics.RunRecord{Days: 3, Completed: true}))
	require.NoError(t, sink.RecordRun(coremetrics.RunRecord{Days: 100}))
	assert.Equal(t, 1.0, testutil.ToFloat64(sink.runs.WithLabelValues("true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(sink.runs.WithLabelValues("false")))
	assert.Equal(t, 1, testutil.CollectAndCount(sink.days))
}

func TestPromSink_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)
	second, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	require.NoError(t, first.RecordDay(sampleDay()))
	assert.Equal(t, 110.0, testutil.ToFloat64(second.committed.WithLabelValues("B1")))
}

func TestFactoryRegistersSinks(t *testing.T) {
	sink, err := coremetrics.NewSink([]factory.ModuleConfig{{Type: "nop"}})
	require.NoError(t, err)
	assert.IsType(t, coremetrics.NopSink{}, sink)

	_, err = coremetrics.NewSink([]factory.ModuleConfig{{Type: "statsd"}})
	assert.Error(t, err)
}

func TestStartPromServer(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)
	require.NoError(t, sink.RecordDay(sampleDay()))

	ctx, cancel := context.WithCancel(context.Background())
	addr, errCh, err := StartPromServer(ctx, "127.0.0.1:0", reg)
	require.NoError(t, err)

	resp, err := http.Get("http://" + addr + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.True(t, strings.Contains(string(body), `brigade_brigade_committed_area_total{brigade_id="B1"} 110`))

	cancel()
	assert.NoError(t, <-errCh)
}
