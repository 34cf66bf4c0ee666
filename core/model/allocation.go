package model

// Allocation records one brigade committed to one focus during a day.
type Allocation struct {
	Day           int     `json:"day"`
	FocusID       string  `json:"focus_id"`
	BrigadeID     string  `json:"brigade_id"`
	Distance      float64 `json:"distance_hours"` // one-way travel time
	UsableTime    float64 `json:"usable_hours"`
	AreaCommitted float64 `json:"area_committed"`
}
