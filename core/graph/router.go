package graph

import "fmt"

// Router answers single-source shortest-distance queries.
type Router interface {
	Distances(source string) map[string]float64
}

// Router kinds accepted by NewRouter.
const (
	RouterDijkstra = "dijkstra"
	RouterGonum    = "gonum"
)

// DijkstraRouter queries the graph with the built-in heap Dijkstra.
type DijkstraRouter struct {
	G *Graph
}

// Distances implements Router.
func (r DijkstraRouter) Distances(source string) map[string]float64 {
	return r.G.ShortestDistances(source)
}

// NewRouter returns the router registered under kind. An empty kind selects
// the built-in Dijkstra.
func NewRouter(kind string, g *Graph) (Router, error) {
	switch kind {
	case "", RouterDijkstra:
		return DijkstraRouter{G: g}, nil
	case RouterGonum:
		return NewGonumRouter(g), nil
	default:
		return nil, fmt.Errorf("unknown router %q", kind)
	}
}
