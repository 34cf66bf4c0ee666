package metrics

import (
	"time"

	"github.com/kilianp07/brigade/core/model"
)

// DayRecord summarizes one simulated day.
type DayRecord struct {
	RunID        string
	Day          int
	Allocations  []model.Allocation
	Foci         []model.FocusState
	Committed    float64
	ResidualArea float64
	Time         time.Time
}

// RunRecord summarizes a finished multi-day run.
type RunRecord struct {
	RunID        string
	Days         int
	Completed    bool
	ResidualArea float64
	Time         time.Time
}

// Sink records daily simulation results for observability purposes.
type Sink interface {
	RecordDay(rec DayRecord) error
}

// RunRecorder is implemented by sinks able to record run outcomes.
type RunRecorder interface {
	RecordRun(rec RunRecord) error
}

// NopSink implements Sink with no-op methods.
type NopSink struct{}

func (NopSink) RecordDay(DayRecord) error { return nil }
func (NopSink) RecordRun(RunRecord) error { return nil }
