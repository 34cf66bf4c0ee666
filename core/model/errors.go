package model

import (
	"errors"
	"fmt"
)

// ErrDuplicateID is returned when two brigades or two foci share an identifier.
var ErrDuplicateID = errors.New("duplicate identifier")

// ValidationError reports an entity or edge value that violates a
// precondition of the simulation.
type ValidationError struct {
	Entity string
	ID     string
	Field  string
	Value  float64
	Reason string
}

func (e *ValidationError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("invalid %s: %s %s", e.Entity, e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s=%v %s", e.Entity, e.ID, e.Field, e.Value, e.Reason)
}

// MalformedEdgeError reports an edge record that could not be parsed.
type MalformedEdgeError struct {
	Line   int
	Input  string
	Reason string
}

func (e *MalformedEdgeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed edge on line %d %q: %s", e.Line, e.Input, e.Reason)
	}
	return fmt.Sprintf("malformed edge %q: %s", e.Input, e.Reason)
}

// ValidateEntities validates every brigade and focus and rejects duplicate IDs.
func ValidateEntities(brigades []Brigade, foci []Focus) error {
	seen := make(map[string]struct{}, len(brigades))
	for _, b := range brigades {
		if err := b.Validate(); err != nil {
			return err
		}
		if _, ok := seen[b.ID]; ok {
			return fmt.Errorf("brigade %q: %w", b.ID, ErrDuplicateID)
		}
		seen[b.ID] = struct{}{}
	}
	seen = make(map[string]struct{}, len(foci))
	for _, f := range foci {
		if err := f.Validate(); err != nil {
			return err
		}
		if _, ok := seen[f.ID]; ok {
			return fmt.Errorf("focus %q: %w", f.ID, ErrDuplicateID)
		}
		seen[f.ID] = struct{}{}
	}
	return nil
}
