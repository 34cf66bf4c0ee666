package events

import "github.com/kilianp07/brigade/core/model"

// Event is implemented by every simulation event.
type Event interface {
	EventDay() int
}

// AllocationMade is published for every allocation record.
type AllocationMade struct {
	RunID      string
	Allocation model.Allocation
}

// FocusExtinguished is published when a focus area reaches zero.
type FocusExtinguished struct {
	RunID   string
	Day     int
	FocusID string
}

// DayCompleted is published once the daily engine returns.
type DayCompleted struct {
	RunID        string
	Day          int
	Allocations  int
	Committed    float64
	ResidualArea float64
}

// RunCompleted is published when the driver stops.
type RunCompleted struct {
	RunID     string
	Days      int
	Completed bool
}

func (e AllocationMade) EventDay() int    { return e.Allocation.Day }
func (e FocusExtinguished) EventDay() int { return e.Day }
func (e DayCompleted) EventDay() int      { return e.Day }
func (e RunCompleted) EventDay() int      { return e.Days }
