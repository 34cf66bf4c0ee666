package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/brigade/core/metrics"
	"github.com/kilianp07/brigade/infra/logger"
)

// InfluxSink writes simulation results to an InfluxDB instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.Sink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordDay writes one point per allocation followed by a day summary.
func (s *InfluxSink) RecordDay(rec coremetrics.DayRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	points := make([]*write.Point, 0, len(rec.Allocations)+1)
	for _, a := range rec.Allocations {
		points = append(points, write.NewPointWithMeasurement("allocation").
			AddTag("run_id", rec.RunID).
			AddTag("focus_id", a.FocusID).
			AddTag("brigade_id", a.BrigadeID).
			AddField("day", a.Day).
			AddField("distance_hours", round3(a.Distance)).
			AddField("usable_hours", round3(a.UsableTime)).
			AddField("area_committed", round3(a.AreaCommitted)).
			SetTime(rec.Time))
	}
	points = append(points, write.NewPointWithMeasurement("day_summary").
		AddTag("run_id", rec.RunID).
		AddField("day", rec.Day).
		AddField("allocations", len(rec.Allocations)).
		AddField("committed", round3(rec.Committed)).
		AddField("residual_area", round3(rec.ResidualArea)).
		SetTime(rec.Time))
	return s.writeAPI.WritePoint(ctx, points...)
}

// RecordRun writes the outcome of a finished run.
func (s *InfluxSink) RecordRun(rec coremetrics.RunRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("run_summary").
		AddTag("run_id", rec.RunID).
		AddTag("completed", strconv.FormatBool(rec.Completed)).
		AddField("days", rec.Days).
		AddField("residual_area", round3(rec.ResidualArea)).
		SetTime(rec.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() {
	s.client.Close()
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
