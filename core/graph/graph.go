// Package graph holds the undirected travel graph between brigade and focus
// nodes and the shortest-path routers that query it.
package graph

import (
	"fmt"
	"math"

	"github.com/kilianp07/brigade/core/model"
)

// Infinity is the distance reported for unreachable nodes.
var Infinity = math.Inf(1)

// Graph is an undirected weighted graph keyed by node identifier. Weights are
// travel times in hours. Neighbors and nodes are enumerated in insertion order.
type Graph struct {
	adj       map[string]map[string]float64
	neighbors map[string][]string
	nodes     []string
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		adj:       make(map[string]map[string]float64),
		neighbors: make(map[string][]string),
	}
}

// AddNode creates an empty adjacency entry for id if it does not exist yet.
func (g *Graph) AddNode(id string) {
	if _, ok := g.adj[id]; ok {
		return
	}
	g.adj[id] = make(map[string]float64)
	g.nodes = append(g.nodes, id)
}

// AddEdge inserts or overwrites the weight between a and b in both directions.
func (g *Graph) AddEdge(a, b string, weight float64) {
	g.AddNode(a)
	g.AddNode(b)
	g.link(a, b, weight)
	g.link(b, a, weight)
}

func (g *Graph) link(from, to string, weight float64) {
	if _, ok := g.adj[from][to]; !ok {
		g.neighbors[from] = append(g.neighbors[from], to)
	}
	g.adj[from][to] = weight
}

// HasNode reports whether id is a known node.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.adj[id]
	return ok
}

// Nodes returns a copy of the node identifiers in insertion order.
func (g *Graph) Nodes() []string {
	return append([]string(nil), g.nodes...)
}

// Neighbors returns the neighbors of id in insertion order.
func (g *Graph) Neighbors(id string) []string {
	return append([]string(nil), g.neighbors[id]...)
}

// Weight returns the weight of the edge a→b.
func (g *Graph) Weight(a, b string) (float64, bool) {
	w, ok := g.adj[a][b]
	return w, ok
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Validate checks that weights are finite, non-negative and symmetric.
func (g *Graph) Validate() error {
	for _, a := range g.nodes {
		for _, b := range g.neighbors[a] {
			w := g.adj[a][b]
			if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
				return &model.ValidationError{Entity: "edge", ID: a + "-" + b, Field: "weight", Value: w, Reason: "must be a finite non-negative number"}
			}
			back, ok := g.adj[b][a]
			if !ok || back != w {
				return fmt.Errorf("graph: edge %s-%s is not symmetric", a, b)
			}
		}
	}
	return nil
}
