package allocation

import (
	"fmt"

	"github.com/kilianp07/brigade/core/graph"
)

// DefaultMaxDays is the day ceiling applied when none is configured.
const DefaultMaxDays = 100

// Config defines allocation engine settings.
type Config struct {
	// MaxDays bounds the multi-day driver.
	MaxDays int `json:"max_days"`
	// Router selects the shortest-path implementation: "dijkstra" or "gonum".
	Router string `json:"router"`
	// DisableCache recomputes shortest paths on every candidate evaluation
	// instead of caching them per day.
	DisableCache bool `json:"disable_cache"`
	// ParallelRouting is the number of goroutines precomputing brigade
	// distances at the start of a day. Values below 2 keep routing sequential.
	ParallelRouting int `json:"parallel_routing"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.MaxDays <= 0 {
		c.MaxDays = DefaultMaxDays
	}
	if c.Router == "" {
		c.Router = graph.RouterDijkstra
	}
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	switch c.Router {
	case "", graph.RouterDijkstra, graph.RouterGonum:
	default:
		return fmt.Errorf("unknown router %q", c.Router)
	}
	if c.MaxDays < 0 {
		return fmt.Errorf("max_days must not be negative")
	}
	if c.ParallelRouting < 0 {
		return fmt.Errorf("parallel_routing must not be negative")
	}
	return nil
}
