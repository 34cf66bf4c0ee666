package model

import "math"

// Focus represents a fire zone whose area compounds daily.
type Focus struct {
	ID           string  `json:"id" yaml:"id"`
	Area         float64 `json:"area" yaml:"area"`
	GrowthFactor float64 `json:"growth_factor" yaml:"growth_factor"`
}

// Extinguished reports whether the focus no longer burns.
func (f Focus) Extinguished() bool { return f.Area <= 0 }

// Priority is the ordering key used when foci compete for brigades.
func (f Focus) Priority() float64 { return f.Area * f.GrowthFactor }

// Validate checks that the focus configuration is sound.
func (f Focus) Validate() error {
	if f.ID == "" {
		return &ValidationError{Entity: "focus", Field: "id", Reason: "must not be empty"}
	}
	if f.Area < 0 || math.IsNaN(f.Area) || math.IsInf(f.Area, 0) {
		return &ValidationError{Entity: "focus", ID: f.ID, Field: "area", Value: f.Area, Reason: "must be a finite non-negative number"}
	}
	if f.GrowthFactor < 0 || math.IsNaN(f.GrowthFactor) || math.IsInf(f.GrowthFactor, 0) {
		return &ValidationError{Entity: "focus", ID: f.ID, Field: "growth_factor", Value: f.GrowthFactor, Reason: "must be a finite non-negative number"}
	}
	return nil
}

// FocusState is a snapshot of a focus at the end of a simulated day.
type FocusState struct {
	ID           string  `json:"id"`
	Area         float64 `json:"area"`
	GrowthFactor float64 `json:"growth_factor"`
	Extinguished bool    `json:"extinguished"`
}

// State returns the snapshot of the focus.
func (f Focus) State() FocusState {
	return FocusState{ID: f.ID, Area: f.Area, GrowthFactor: f.GrowthFactor, Extinguished: f.Extinguished()}
}
