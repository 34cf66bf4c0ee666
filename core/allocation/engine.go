package allocation

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/kilianp07/brigade/core/graph"
	"github.com/kilianp07/brigade/core/logger"
	"github.com/kilianp07/brigade/core/model"
)

// DayResult is the structured outcome of one simulated day.
type DayResult struct {
	Day         int                `json:"day"`
	Allocations []model.Allocation `json:"allocations"`
	// Foci holds the post-day state of every focus in input order.
	Foci []model.FocusState `json:"foci"`
	// Extinguished lists the foci that reached zero area during the day.
	Extinguished []string `json:"extinguished"`
	// Residual lists the foci still burning at the end of the day.
	Residual []string `json:"residual"`
	// Fought lists the burning foci in the order they were served.
	Fought       []FocusRound `json:"fought"`
	Committed    float64  `json:"committed"`
	ResidualArea float64  `json:"residual_area"`
}

// FocusRound records the area of a focus before and after brigades were
// assigned to it.
type FocusRound struct {
	FocusID    string  `json:"focus_id"`
	AreaBefore float64 `json:"area_before"`
	AreaAfter  float64 `json:"area_after"`
}

// Engine runs the daily allocation of brigades to foci. It owns copies of the
// entity lists; focus areas are only mutated by SimulateDay.
type Engine struct {
	graph    *graph.Graph
	router   graph.Router
	brigades []model.Brigade
	foci     []model.Focus
	cfg      Config
	day      int
	log      logger.Logger
	cache    *graph.DistanceCache
}

// Option customizes an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for allocation traces.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithRouter replaces the router selected by Config.Router.
func WithRouter(r graph.Router) Option {
	return func(e *Engine) {
		if r != nil {
			e.router = r
		}
	}
}

// NewEngine validates the inputs and prepares an engine. Brigade and focus
// nodes missing from g are added as isolated nodes.
func NewEngine(g *graph.Graph, brigades []model.Brigade, foci []model.Focus, cfg Config, opts ...Option) (*Engine, error) {
	if g == nil {
		return nil, fmt.Errorf("allocation: nil graph")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := model.ValidateEntities(brigades, foci); err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	for _, b := range brigades {
		g.AddNode(b.ID)
	}
	for _, f := range foci {
		g.AddNode(f.ID)
	}
	e := &Engine{
		graph:    g,
		brigades: append([]model.Brigade(nil), brigades...),
		foci:     append([]model.Focus(nil), foci...),
		cfg:      cfg,
		log:      nopLogger{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.router == nil {
		r, err := graph.NewRouter(cfg.Router, g)
		if err != nil {
			return nil, err
		}
		e.router = r
	}
	e.router = countingRouter{Router: e.router}
	if !cfg.DisableCache {
		e.cache = graph.NewDistanceCache(e.router, promCacheObserver{})
	}
	return e, nil
}

// Day returns the number of days simulated so far.
func (e *Engine) Day() int { return e.day }

// Config returns the effective configuration.
func (e *Engine) Config() Config { return e.cfg }

// Foci returns a snapshot of every focus in input order.
func (e *Engine) Foci() []model.FocusState {
	out := make([]model.FocusState, len(e.foci))
	for i, f := range e.foci {
		out[i] = f.State()
	}
	return out
}

// Burning reports whether any focus still has a positive area.
func (e *Engine) Burning() bool {
	for _, f := range e.foci {
		if !f.Extinguished() {
			return true
		}
	}
	return false
}

// ResidualArea returns the total area still burning.
func (e *Engine) ResidualArea() float64 {
	var total float64
	for _, f := range e.foci {
		if !f.Extinguished() {
			total += f.Area
		}
	}
	return total
}

// SimulateDay grows the active foci, orders them by priority and greedily
// assigns brigades to each in turn until it is extinguished or no brigade can
// reach it with capacity left.
func (e *Engine) SimulateDay() DayResult {
	e.day++
	day := e.newDay()
	daysSimulated.Inc()

	wasBurning := make([]bool, len(e.foci))
	for i := range e.foci {
		if e.foci[i].Area > 0 {
			wasBurning[i] = true
			e.foci[i].Area *= e.foci[i].GrowthFactor
		}
	}

	res := DayResult{Day: e.day}
	for _, idx := range e.prioritized() {
		f := &e.foci[idx]
		round := FocusRound{FocusID: f.ID, AreaBefore: f.Area}
		res.Allocations = append(res.Allocations, e.fight(day, f)...)
		round.AreaAfter = f.Area
		res.Fought = append(res.Fought, round)
	}

	for i, f := range e.foci {
		res.Foci = append(res.Foci, f.State())
		if f.Extinguished() {
			if wasBurning[i] {
				res.Extinguished = append(res.Extinguished, f.ID)
			}
			continue
		}
		res.Residual = append(res.Residual, f.ID)
		res.ResidualArea += f.Area
	}
	for _, a := range res.Allocations {
		res.Committed += a.AreaCommitted
	}
	if e.cache != nil {
		e.log.Debugf("day %d: distances computed from %d sources", e.day, e.cache.Len())
	}
	return res
}

func (e *Engine) newDay() *DayContext {
	if e.cache != nil {
		e.cache.Reset()
		if e.cfg.ParallelRouting > 1 {
			sources := make([]string, len(e.brigades))
			for i, b := range e.brigades {
				sources[i] = b.ID
			}
			if err := e.cache.Prefetch(context.Background(), sources, e.cfg.ParallelRouting); err != nil {
				e.log.Warnf("distance prefetch: %v", err)
			}
		}
	}
	return newDayContext(e.day, e.brigades, e.router, e.cache)
}

// prioritized returns the indexes of the burning foci ordered by descending
// area × growth factor. Equal keys keep input order.
func (e *Engine) prioritized() []int {
	var idx []int
	for i, f := range e.foci {
		if f.Area > 0 {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return e.foci[idx[a]].Priority() > e.foci[idx[b]].Priority()
	})
	return idx
}

type candidate struct {
	brigade    model.Brigade
	distance   float64
	usable     float64
	achievable float64
}

// best scans the brigades in input order and returns the one able to fight
// the largest area. Ties keep the first brigade found.
func (e *Engine) best(day *DayContext, f *model.Focus) (candidate, bool) {
	var (
		chosen   candidate
		found    bool
		bestArea float64
	)
	for _, b := range e.brigades {
		remaining := day.Remaining(b.ID)
		if remaining <= 0 {
			continue
		}
		d := day.distance(b.ID, f.ID)
		if math.IsInf(d, 1) || d >= model.OperationalHours {
			continue
		}
		usable := model.OperationalHours - d
		achievable := math.Min(usable*b.HourlyCapacity, remaining)
		if achievable > bestArea {
			bestArea = achievable
			chosen = candidate{brigade: b, distance: d, usable: usable, achievable: achievable}
			found = true
		}
	}
	return chosen, found
}

// fight commits brigades to f until it is extinguished or no candidate is left.
func (e *Engine) fight(day *DayContext, f *model.Focus) []model.Allocation {
	var out []model.Allocation
	for f.Area > 0 {
		c, ok := e.best(day, f)
		if !ok {
			e.log.Debugf("day %d: no brigade can reach focus %s, %.2f left", day.Day, f.ID, f.Area)
			break
		}
		commit := math.Min(f.Area, c.achievable)
		f.Area -= commit
		if f.Area < 0 {
			f.Area = 0
		}
		day.consume(c.brigade.ID, commit)

		a := model.Allocation{
			Day:           day.Day,
			FocusID:       f.ID,
			BrigadeID:     c.brigade.ID,
			Distance:      c.distance,
			UsableTime:    c.usable,
			AreaCommitted: commit,
		}
		out = append(out, a)
		allocationsTotal.Inc()
		areaCommitted.Add(commit)
		e.log.Debugw("allocation", map[string]any{
			"day":       a.Day,
			"focus":     a.FocusID,
			"brigade":   a.BrigadeID,
			"distance":  a.Distance,
			"usable":    a.UsableTime,
			"committed": a.AreaCommitted,
		})
	}
	return out
}

type countingRouter struct {
	graph.Router
}

func (r countingRouter) Distances(source string) map[string]float64 {
	shortestPathRuns.Inc()
	return r.Router.Distances(source)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}
