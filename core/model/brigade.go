package model

import "math"

// OperationalHours is the length of the daily suppression window.
const OperationalHours = 12.0

// Brigade represents a suppression unit stationed at a graph node sharing its ID.
type Brigade struct {
	ID             string  `json:"id" yaml:"id"`
	HourlyCapacity float64 `json:"hourly_capacity" yaml:"hourly_capacity"` // area fought per hour
}

// DailyCapacity returns the area the brigade can fight over a full window.
func (b Brigade) DailyCapacity() float64 {
	return b.HourlyCapacity * OperationalHours
}

// Validate checks that the brigade configuration is sound.
func (b Brigade) Validate() error {
	if b.ID == "" {
		return &ValidationError{Entity: "brigade", Field: "id", Reason: "must not be empty"}
	}
	if b.HourlyCapacity < 0 || math.IsNaN(b.HourlyCapacity) || math.IsInf(b.HourlyCapacity, 0) {
		return &ValidationError{Entity: "brigade", ID: b.ID, Field: "hourly_capacity", Value: b.HourlyCapacity, Reason: "must be a finite non-negative number"}
	}
	return nil
}
