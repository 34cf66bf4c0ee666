package allocation

import "github.com/prometheus/client_golang/prometheus"

var (
	allocationsTotal prometheus.Counter
	areaCommitted    prometheus.Counter
	daysSimulated    prometheus.Counter
	shortestPathRuns prometheus.Counter
	cacheLookups     *prometheus.CounterVec
)

// newCollectors creates new metric collectors.
func newCollectors() (prometheus.Counter, prometheus.Counter, prometheus.Counter, prometheus.Counter, *prometheus.CounterVec) {
	alloc := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "brigade_allocations_total",
		Help: "Number of allocation records produced by the daily engine",
	})
	area := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "brigade_area_committed_total",
		Help: "Total area committed by brigades",
	})
	days := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "brigade_days_simulated_total",
		Help: "Number of simulated days",
	})
	runs := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "brigade_shortest_path_runs_total",
		Help: "Number of single-source shortest path computations",
	})
	cache := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "brigade_distance_cache_total",
		Help: "Distance cache lookups by result",
	}, []string{"result"})
	return alloc, area, days, runs, cache
}

func init() {
	allocationsTotal, areaCommitted, daysSimulated, shortestPathRuns, cacheLookups = newCollectors()
	MustRegisterMetrics(nil)
}

// MustRegisterMetrics registers engine metrics on the provided registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func MustRegisterMetrics(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(allocationsTotal, areaCommitted, daysSimulated, shortestPathRuns, cacheLookups)
}

// ResetMetrics reinitializes metrics collectors for testing purposes and
// registers them on the provided registry if not nil.
func ResetMetrics(reg prometheus.Registerer) {
	allocationsTotal, areaCommitted, daysSimulated, shortestPathRuns, cacheLookups = newCollectors()
	if reg != nil {
		MustRegisterMetrics(reg)
	}
}

type promCacheObserver struct{}

func (promCacheObserver) CacheHit()  { cacheLookups.WithLabelValues("hit").Inc() }
func (promCacheObserver) CacheMiss() { cacheLookups.WithLabelValues("miss").Inc() }
