package allocation

import (
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/brigade/core/events"
	"github.com/kilianp07/brigade/core/logger"
	"github.com/kilianp07/brigade/core/metrics"
	"github.com/kilianp07/brigade/core/model"
	"github.com/kilianp07/brigade/core/mqtt"
)

// Outcome is the terminal state of a multi-day run.
type Outcome string

const (
	// OutcomeCompleted means every focus was extinguished.
	OutcomeCompleted Outcome = "completed"
	// OutcomeIncomplete means the day ceiling was reached with area left.
	OutcomeIncomplete Outcome = "incomplete"
)

// RunResult is the structured outcome of SimulateUntilExtinct.
type RunResult struct {
	RunID        string             `json:"run_id"`
	Days         int                `json:"days"`
	Outcome      Outcome            `json:"outcome"`
	History      []DayResult        `json:"history"`
	Final        []model.FocusState `json:"final"`
	ResidualArea float64            `json:"residual_area"`
}

// Completed reports whether every focus reached zero area.
func (r RunResult) Completed() bool { return r.Outcome == OutcomeCompleted }

// Publisher receives simulation events.
type Publisher interface {
	Publish(events.Event)
}

// Driver repeats the daily engine until every focus is extinguished or the
// day ceiling is reached. Observers never influence the simulation: their
// failures are logged and ignored.
type Driver struct {
	engine  *Engine
	maxDays int
	log     logger.Logger
	sink    metrics.Sink
	bus     Publisher
	orders  mqtt.OrderPublisher
	now     func() time.Time
	newID   func() string
}

// DriverOption customizes a Driver.
type DriverOption func(*Driver)

// WithDriverLogger sets the logger used for day summaries.
func WithDriverLogger(l logger.Logger) DriverOption {
	return func(d *Driver) {
		if l != nil {
			d.log = l
		}
	}
}

// WithSink records every day and the final outcome on s.
func WithSink(s metrics.Sink) DriverOption {
	return func(d *Driver) { d.sink = s }
}

// WithEventBus publishes simulation events on bus.
func WithEventBus(bus Publisher) DriverOption {
	return func(d *Driver) { d.bus = bus }
}

// WithOrderPublisher sends every allocation to p.
func WithOrderPublisher(p mqtt.OrderPublisher) DriverOption {
	return func(d *Driver) { d.orders = p }
}

// WithMaxDays overrides the configured day ceiling.
func WithMaxDays(n int) DriverOption {
	return func(d *Driver) {
		if n > 0 {
			d.maxDays = n
		}
	}
}

// NewDriver returns a driver for engine.
func NewDriver(engine *Engine, opts ...DriverOption) *Driver {
	d := &Driver{
		engine:  engine,
		maxDays: engine.cfg.MaxDays,
		log:     nopLogger{},
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// SimulateUntilExtinct runs days while any focus burns, up to the ceiling.
func (d *Driver) SimulateUntilExtinct() RunResult {
	res := RunResult{RunID: d.newID()}
	for d.engine.Burning() {
		if res.Days >= d.maxDays {
			d.log.Warnf("run %s: day limit %d reached", res.RunID, d.maxDays)
			break
		}
		res.Days++
		day := d.engine.SimulateDay()
		res.History = append(res.History, day)
		d.observeDay(res.RunID, day)
	}
	res.Final = d.engine.Foci()
	res.ResidualArea = d.engine.ResidualArea()
	res.Outcome = OutcomeCompleted
	if d.engine.Burning() {
		res.Outcome = OutcomeIncomplete
	}
	d.observeRun(res)
	return res
}

func (d *Driver) observeDay(runID string, day DayResult) {
	d.log.Infof("day %d: %d allocations, %.2f committed, %.2f residual over %d foci",
		day.Day, len(day.Allocations), day.Committed, day.ResidualArea, len(day.Residual))
	for _, a := range day.Allocations {
		if d.bus != nil {
			d.bus.Publish(events.AllocationMade{RunID: runID, Allocation: a})
		}
		if d.orders != nil {
			if _, err := d.orders.PublishOrder(runID, a); err != nil {
				d.log.Errorf("publish order for brigade %s: %v", a.BrigadeID, err)
			}
		}
	}
	if d.bus != nil {
		for _, id := range day.Extinguished {
			d.bus.Publish(events.FocusExtinguished{RunID: runID, Day: day.Day, FocusID: id})
		}
		d.bus.Publish(events.DayCompleted{
			RunID:        runID,
			Day:          day.Day,
			Allocations:  len(day.Allocations),
			Committed:    day.Committed,
			ResidualArea: day.ResidualArea,
		})
	}
	if d.sink != nil {
		rec := metrics.DayRecord{
			RunID:        runID,
			Day:          day.Day,
			Allocations:  day.Allocations,
			Foci:         day.Foci,
			Committed:    day.Committed,
			ResidualArea: day.ResidualArea,
			Time:         d.now(),
		}
		if err := d.sink.RecordDay(rec); err != nil {
			d.log.Errorf("metrics error: %v", err)
		}
	}
}

func (d *Driver) observeRun(res RunResult) {
	if res.Completed() {
		d.log.Infof("run %s: all foci extinguished in %d days", res.RunID, res.Days)
	} else {
		d.log.Warnf("run %s: %.2f area left after %d days", res.RunID, res.ResidualArea, res.Days)
	}
	if d.bus != nil {
		d.bus.Publish(events.RunCompleted{RunID: res.RunID, Days: res.Days, Completed: res.Completed()})
	}
	if rr, ok := d.sink.(metrics.RunRecorder); ok {
		rec := metrics.RunRecord{
			RunID:        res.RunID,
			Days:         res.Days,
			Completed:    res.Completed(),
			ResidualArea: res.ResidualArea,
			Time:         d.now(),
		}
		if err := rr.RecordRun(rec); err != nil {
			d.log.Errorf("run metrics error: %v", err)
		}
	}
}
