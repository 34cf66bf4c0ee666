package graph

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// CacheObserver is notified of cache hits and misses.
type CacheObserver interface {
	CacheHit()
	CacheMiss()
}

// DistanceCache memoizes single-source distance maps for the lifetime of one
// simulated day. The graph must not change while the cache is in use.
type DistanceCache struct {
	router   Router
	observer CacheObserver
	mu       sync.RWMutex
	bySource map[string]map[string]float64
}

// NewDistanceCache wraps router. observer may be nil.
func NewDistanceCache(router Router, observer CacheObserver) *DistanceCache {
	return &DistanceCache{router: router, observer: observer, bySource: make(map[string]map[string]float64)}
}

// Distances implements Router, computing the source on first use.
func (c *DistanceCache) Distances(source string) map[string]float64 {
	c.mu.RLock()
	d, ok := c.bySource[source]
	c.mu.RUnlock()
	if ok {
		if c.observer != nil {
			c.observer.CacheHit()
		}
		return d
	}
	if c.observer != nil {
		c.observer.CacheMiss()
	}
	d = c.router.Distances(source)
	c.mu.Lock()
	c.bySource[source] = d
	c.mu.Unlock()
	return d
}

// Distance returns the distance from source to target, Infinity when the
// target is unknown.
func (c *DistanceCache) Distance(source, target string) float64 {
	d, ok := c.Distances(source)[target]
	if !ok {
		return Infinity
	}
	return d
}

// Prefetch computes the distance maps of all sources not cached yet using up to
// workers goroutines. workers <= 1 computes them sequentially.
func (c *DistanceCache) Prefetch(ctx context.Context, sources []string, workers int) error {
	var missing []string
	c.mu.RLock()
	for _, s := range sources {
		if _, ok := c.bySource[s]; !ok {
			missing = append(missing, s)
		}
	}
	c.mu.RUnlock()
	if len(missing) == 0 {
		return nil
	}
	if workers <= 1 {
		for _, s := range missing {
			if err := ctx.Err(); err != nil {
				return err
			}
			c.store(s, c.router.Distances(s))
		}
		return nil
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, s := range missing {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			c.store(s, c.router.Distances(s))
			return nil
		})
	}
	return g.Wait()
}

func (c *DistanceCache) store(source string, d map[string]float64) {
	c.mu.Lock()
	c.bySource[source] = d
	c.mu.Unlock()
}

// Reset drops every cached source.
func (c *DistanceCache) Reset() {
	c.mu.Lock()
	c.bySource = make(map[string]map[string]float64)
	c.mu.Unlock()
}

// Len returns the number of cached sources.
func (c *DistanceCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.bySource)
}
