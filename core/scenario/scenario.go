// Package scenario loads simulation inputs from YAML, JSON or the plain text
// format and builds the road graph they describe.
package scenario

import (
	"fmt"
	"math"

	"github.com/kilianp07/brigade/core/graph"
	"github.com/kilianp07/brigade/core/model"
)

// Edge is an undirected travel link between two nodes, weighted in hours.
type Edge struct {
	From   string  `json:"from" yaml:"from"`
	To     string  `json:"to" yaml:"to"`
	Weight float64 `json:"weight" yaml:"weight"`
}

// Scenario groups the brigades, foci and road network of one simulation.
type Scenario struct {
	Brigades []model.Brigade `json:"brigades" yaml:"brigades"`
	Foci     []model.Focus   `json:"foci" yaml:"foci"`
	Edges    []Edge          `json:"edges" yaml:"edges"`
}

// Validate rejects negative or non-finite values and duplicate identifiers.
func (s *Scenario) Validate() error {
	if err := model.ValidateEntities(s.Brigades, s.Foci); err != nil {
		return err
	}
	for _, e := range s.Edges {
		if e.From == "" || e.To == "" {
			return &model.ValidationError{Entity: "edge", Field: "endpoint", Reason: "must not be empty"}
		}
		if e.Weight < 0 || math.IsNaN(e.Weight) || math.IsInf(e.Weight, 0) {
			return &model.ValidationError{
				Entity: "edge",
				ID:     e.From + "-" + e.To,
				Field:  "weight",
				Value:  e.Weight,
				Reason: "must be finite and non-negative",
			}
		}
	}
	return nil
}

// Graph builds the road graph. Every brigade and focus gets a node even
// without edges.
func (s *Scenario) Graph() *graph.Graph {
	g := graph.New()
	for _, e := range s.Edges {
		g.AddEdge(e.From, e.To, e.Weight)
	}
	for _, b := range s.Brigades {
		g.AddNode(b.ID)
	}
	for _, f := range s.Foci {
		g.AddNode(f.ID)
	}
	return g
}

func (s *Scenario) String() string {
	return fmt.Sprintf("%d brigades, %d foci, %d edges", len(s.Brigades), len(s.Foci), len(s.Edges))
}
