package graph

import (
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
)

// GonumRouter answers distance queries with gonum's Dijkstra implementation.
// The gonum graph is built once from a snapshot of g; later edits to g are not
// seen by the router.
type GonumRouter struct {
	g     *simple.WeightedUndirectedGraph
	ids   map[string]int64
	names []string
}

// NewGonumRouter builds a gonum weighted undirected graph mirroring g.
// Self loops are dropped since they never shorten a path.
func NewGonumRouter(g *Graph) *GonumRouter {
	r := &GonumRouter{
		g:   simple.NewWeightedUndirectedGraph(0, Infinity),
		ids: make(map[string]int64, g.Len()),
	}
	for _, n := range g.nodes {
		id := int64(len(r.names))
		r.ids[n] = id
		r.names = append(r.names, n)
		r.g.AddNode(simple.Node(id))
	}
	for _, a := range g.nodes {
		for _, b := range g.neighbors[a] {
			if a == b {
				continue
			}
			from, to := r.ids[a], r.ids[b]
			if from > to {
				continue
			}
			r.g.SetWeightedEdge(r.g.NewWeightedEdge(simple.Node(from), simple.Node(to), g.adj[a][b]))
		}
	}
	return r
}

// Distances implements Router.
func (r *GonumRouter) Distances(source string) map[string]float64 {
	dist := make(map[string]float64, len(r.names)+1)
	id, ok := r.ids[source]
	if !ok {
		for _, n := range r.names {
			dist[n] = Infinity
		}
		dist[source] = 0
		return dist
	}
	shortest := path.DijkstraFrom(simple.Node(id), r.g)
	for i, n := range r.names {
		dist[n] = shortest.WeightTo(int64(i))
	}
	return dist
}
