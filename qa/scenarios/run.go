package scenarios

import (
	"math"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/brigade/core/allocation"
	"github.com/kilianp07/brigade/core/model"
	"github.com/kilianp07/brigade/infra/logger"
	"github.com/kilianp07/brigade/infra/metrics"
)

const tolerance = 1e-9

type orderRecorder struct{ orders []model.Allocation }

func (r *orderRecorder) PublishOrder(_ string, a model.Allocation) (string, error) {
	r.orders = append(r.orders, a)
	return "", nil
}

// RunCase simulates c and reports every mismatch with its expectations.
func RunCase(t *testing.T, c *Case) allocation.RunResult {
	t.Helper()
	sink, err := metrics.NewPromSinkWithRegistry(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("prom sink: %v", err)
	}
	cfg := allocation.Config{MaxDays: c.MaxDays, Router: c.Router}
	engine, err := allocation.NewEngine(c.Scenario.Graph(), c.Scenario.Brigades, c.Scenario.Foci, cfg,
		allocation.WithLogger(logger.NopLogger{}))
	if err != nil {
		t.Fatalf("case %s: engine: %v", c.Name, err)
	}
	orders := &orderRecorder{}
	res := allocation.NewDriver(engine,
		allocation.WithDriverLogger(logger.NopLogger{}),
		allocation.WithSink(sink),
		allocation.WithOrderPublisher(orders),
	).SimulateUntilExtinct()

	committed := 0.0
	for _, d := range res.History {
		committed += d.Committed
	}
	if res.Days != c.Expected.Days {
		t.Errorf("case %s expected %d days, got %d", c.Name, c.Expected.Days, res.Days)
	}
	if res.Completed() != c.Expected.Completed {
		t.Errorf("case %s expected completed=%t, got %s", c.Name, c.Expected.Completed, res.Outcome)
	}
	if len(orders.orders) != c.Expected.Allocations {
		t.Errorf("case %s expected %d allocations, got %d", c.Name, c.Expected.Allocations, len(orders.orders))
	}
	if math.Abs(committed-c.Expected.Committed) > tolerance {
		t.Errorf("case %s expected %.6f committed, got %.6f", c.Name, c.Expected.Committed, committed)
	}
	if math.Abs(res.ResidualArea-c.Expected.ResidualArea) > tolerance {
		t.Errorf("case %s expected %.6f residual, got %.6f", c.Name, c.Expected.ResidualArea, res.ResidualArea)
	}
	return res
}
