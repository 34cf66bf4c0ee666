package scenario

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kilianp07/brigade/core/model"
)

// ParseText reads the line oriented format:
//
//	nFoci nBrigades
//	brigade hourly capacities
//	focus areas
//	focus growth factors
//	A B weight
//	...
//
// Edges are read until a blank line or EOF. Brigades are named B1..Bn and
// foci F1..Fn in input order.
func ParseText(r io.Reader) (*Scenario, error) {
	sc := bufio.NewScanner(r)
	line := 0
	next := func(what string) ([]string, int, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return nil, line, err
			}
			return nil, line, fmt.Errorf("line %d: missing %s", line+1, what)
		}
		line++
		return strings.Fields(sc.Text()), line, nil
	}

	header, _, err := next("header")
	if err != nil {
		return nil, err
	}
	if len(header) != 2 {
		return nil, fmt.Errorf("line 1: expected \"nFoci nBrigades\", got %d fields", len(header))
	}
	nFoci, err := parseCount(header[0], "focus count")
	if err != nil {
		return nil, err
	}
	nBrigades, err := parseCount(header[1], "brigade count")
	if err != nil {
		return nil, err
	}

	capacities, err := readFloats(next, "brigade capacities", nBrigades)
	if err != nil {
		return nil, err
	}
	areas, err := readFloats(next, "focus areas", nFoci)
	if err != nil {
		return nil, err
	}
	growth, err := readFloats(next, "growth factors", nFoci)
	if err != nil {
		return nil, err
	}

	s := &Scenario{
		Brigades: make([]model.Brigade, nBrigades),
		Foci:     make([]model.Focus, nFoci),
	}
	for i := range s.Brigades {
		s.Brigades[i] = model.Brigade{ID: fmt.Sprintf("B%d", i+1), HourlyCapacity: capacities[i]}
	}
	for i := range s.Foci {
		s.Foci[i] = model.Focus{ID: fmt.Sprintf("F%d", i+1), Area: areas[i], GrowthFactor: growth[i]}
	}

	for sc.Scan() {
		line++
		raw := strings.TrimSpace(sc.Text())
		if raw == "" {
			break
		}
		e, err := ParseEdge(raw)
		if err != nil {
			err.Line = line
			return nil, err
		}
		s.Edges = append(s.Edges, e)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return s, nil
}

// ParseEdge parses a single "A B weight" record.
func ParseEdge(raw string) (Edge, *model.MalformedEdgeError) {
	parts := strings.Fields(raw)
	if len(parts) != 3 {
		return Edge{}, &model.MalformedEdgeError{Input: raw, Reason: "expected \"A B weight\""}
	}
	w, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return Edge{}, &model.MalformedEdgeError{Input: raw, Reason: "weight is not a number"}
	}
	return Edge{From: parts[0], To: parts[1], Weight: w}, nil
}

func parseCount(s, what string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("line 1: invalid %s %q", what, s)
	}
	return n, nil
}

func readFloats(next func(string) ([]string, int, error), what string, want int) ([]float64, error) {
	fields, line, err := next(what)
	if err != nil {
		return nil, err
	}
	if len(fields) != want {
		return nil, fmt.Errorf("line %d: expected %d %s, got %d", line, want, what, len(fields))
	}
	out := make([]float64, want)
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid %s value %q", line, what, f)
		}
		out[i] = v
	}
	return out, nil
}
