package metrics

import (
	"errors"
	"strconv"

	coremetrics "github.com/kilianp07/brigade/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink exposes daily simulation results as Prometheus metrics.
type PromSink struct {
	residual  *prometheus.GaugeVec
	committed *prometheus.CounterVec
	days      prometheus.Histogram
	runs      *prometheus.CounterVec
}

// NewPromSink registers the sink metrics on the default Prometheus registerer.
// The HTTP endpoint is started separately with StartPromServer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	residual := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "brigade_focus_residual_area",
		Help: "Remaining area of each focus after the last simulated day",
	}, []string{"focus_id"})
	committed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "brigade_brigade_committed_area_total",
		Help: "Area committed per brigade",
	}, []string{"brigade_id"})
	days := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "brigade_run_days",
		Help:    "Number of simulated days per run",
		Buckets: []float64{1, 2, 5, 10, 20, 50, 100},
	})
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "brigade_runs_total",
		Help: "Finished runs by outcome",
	}, []string{"completed"})

	var err error
	if residual, err = register(reg, residual); err != nil {
		return nil, err
	}
	if committed, err = register(reg, committed); err != nil {
		return nil, err
	}
	if days, err = register(reg, days); err != nil {
		return nil, err
	}
	if runs, err = register(reg, runs); err != nil {
		return nil, err
	}
	return &PromSink{residual: residual, committed: committed, days: days, runs: runs}, nil
}

// register returns the already registered collector when c is a duplicate.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordDay updates per-focus gauges and per-brigade counters.
func (s *PromSink) RecordDay(rec coremetrics.DayRecord) error {
	for _, f := range rec.Foci {
		s.residual.WithLabelValues(f.ID).Set(f.Area)
	}
	for _, a := range rec.Allocations {
		if a.AreaCommitted > 0 {
			s.committed.WithLabelValues(a.BrigadeID).Add(a.AreaCommitted)
		}
	}
	return nil
}

// RecordRun observes the number of days the run took.
func (s *PromSink) RecordRun(rec coremetrics.RunRecord) error {
	s.days.Observe(float64(rec.Days))
	s.runs.WithLabelValues(strconv.FormatBool(rec.Completed)).Inc()
	return nil
}
