package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/kilianp07/brigade/core/metrics"
	"github.com/kilianp07/brigade/core/model"
)

func captureServer(t *testing.T) (*httptest.Server, func() []string) {
	t.Helper()
	var (
		mu    sync.Mutex
		lines []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		mu.Lock()
		for _, l := range strings.Split(strings.TrimSpace(string(data)), "\n") {
			lines = append(lines, strings.TrimSpace(l))
		}
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)
	return srv, func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), lines...)
	}
}

func lineOf(p *write.Point) string {
	return strings.TrimSpace(write.PointToLineProtocol(p, time.Nanosecond))
}

func TestInfluxSink_RecordDay(t *testing.T) {
	srv, lines := captureServer(t)
	sink := NewInfluxSink(srv.URL, "token", "org", "bucket")
	defer sink.Close()

	now := time.Now()
	rec := coremetrics.DayRecord{
		RunID: "run1",
		Day:   1,
		Allocations: []model.Allocation{
			{Day: 1, FocusID: "F1", BrigadeID: "B1", Distance: 1, UsableTime: 11, AreaCommitted: 110},
		},
		Committed:    110,
		ResidualArea: 90.0001,
		Time:         now,
	}
	require.NoError(t, sink.RecordDay(rec))

	alloc := write.NewPointWithMeasurement("allocation").
		AddTag("run_id", "run1").
		AddTag("focus_id", "F1").
		AddTag("brigade_id", "B1").
		AddField("day", 1).
		AddField("distance_hours", 1.0).
		AddField("usable_hours", 11.0).
		AddField("area_committed", 110.0).
		SetTime(now)
	summary := write.NewPointWithMeasurement("day_summary").
		AddTag("run_id", "run1").
		AddField("day", 1).
		AddField("allocations", 1).
		AddField("committed", 110.0).
		AddField("residual_area", 90.0).
		SetTime(now)
	assert.Equal(t, []string{lineOf(alloc), lineOf(summary)}, lines())
}

func TestInfluxSink_RecordRun(t *testing.T) {
	srv, lines := captureServer(t)
	sink := NewInfluxSink(srv.URL+"/api/v2/write", "token", "org", "bucket")
	defer sink.Close()

	now := time.Now()
	require.NoError(t, sink.RecordRun(coremetrics.RunRecord{RunID: "run1", Days: 3, Completed: true, Time: now}))
	p := write.NewPointWithMeasurement("run_summary").
		AddTag("run_id", "run1").
		AddTag("completed", "true").
		AddField("days", 3).
		AddField("residual_area", 0.0).
		SetTime(now)
	assert.Equal(t, []string{lineOf(p)}, lines())
}

func TestNewInfluxSinkWithFallback(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			called = true
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}))
	defer srv.Close()

	sink := NewInfluxSinkWithFallback(srv.URL+"/api/v2/write", "tok", "org", "bucket")
	if _, ok := sink.(coremetrics.NopSink); !ok {
		t.Fatalf("expected NopSink on failing health check")
	}
	if !called {
		t.Fatalf("health endpoint not called")
	}
}

func TestRound3(t *testing.T) {
	assert.Equal(t, 1.235, round3(1.23456))
	assert.Equal(t, 0.0, round3(0.0001))
}
