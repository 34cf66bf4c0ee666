package allocation

import (
	"github.com/kilianp07/brigade/core/graph"
	"github.com/kilianp07/brigade/core/model"
)

// DayContext owns the counters that live for a single simulated day: the
// remaining capacity of every brigade and the routes used to reach the foci.
// A new context is created by every SimulateDay call.
type DayContext struct {
	Day       int
	remaining map[string]float64
	routes    graph.Router
	cache     *graph.DistanceCache
}

func newDayContext(day int, brigades []model.Brigade, routes graph.Router, cache *graph.DistanceCache) *DayContext {
	ctx := &DayContext{
		Day:       day,
		remaining: make(map[string]float64, len(brigades)),
		routes:    routes,
		cache:     cache,
	}
	for _, b := range brigades {
		ctx.remaining[b.ID] = b.DailyCapacity()
	}
	return ctx
}

// Remaining returns the capacity the brigade has left today.
func (c *DayContext) Remaining(brigadeID string) float64 {
	return c.remaining[brigadeID]
}

// consume deducts area from the brigade's remaining capacity.
func (c *DayContext) consume(brigadeID string, area float64) {
	c.remaining[brigadeID] -= area
}

// distance returns the shortest travel time between the brigade and focus
// nodes, Infinity when the focus cannot be reached.
func (c *DayContext) distance(brigadeID, focusID string) float64 {
	if c.cache != nil {
		return c.cache.Distance(brigadeID, focusID)
	}
	d, ok := c.routes.Distances(brigadeID)[focusID]
	if !ok {
		return graph.Infinity
	}
	return d
}
