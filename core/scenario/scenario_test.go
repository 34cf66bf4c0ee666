package scenario

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/brigade/core/model"
)

const referenceText = `2 3
10 8 5
100 87
1.5 1.25
B1 F1 1
B1 F2 2
B2 F1 3
B2 B3 2
B3 F2 4
F1 F2 3
`

const referenceYAML = `brigades:
  - {id: B1, hourly_capacity: 10}
  - {id: B2, hourly_capacity: 8}
  - {id: B3, hourly_capacity: 5}
foci:
  - {id: F1, area: 100, growth_factor: 1.5}
  - {id: F2, area: 87, growth_factor: 1.25}
edges:
  - {from: B1, to: F1, weight: 1}
  - {from: B1, to: F2, weight: 2}
  - {from: B2, to: F1, weight: 3}
  - {from: B2, to: B3, weight: 2}
  - {from: B3, to: F2, weight: 4}
  - {from: F1, to: F2, weight: 3}
`

func writeScenario(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func assertReference(t *testing.T, s *Scenario) {
	t.Helper()
	assert.Equal(t, []model.Brigade{{ID: "B1", HourlyCapacity: 10}, {ID: "B2", HourlyCapacity: 8}, {ID: "B3", HourlyCapacity: 5}}, s.Brigades)
	assert.Equal(t, []model.Focus{{ID: "F1", Area: 100, GrowthFactor: 1.5}, {ID: "F2", Area: 87, GrowthFactor: 1.25}}, s.Foci)
	require.Len(t, s.Edges, 6)
	assert.Equal(t, Edge{From: "B2", To: "B3", Weight: 2}, s.Edges[3])

	g := s.Graph()
	assert.Equal(t, 5, g.Len())
	d := g.ShortestDistances("B3")
	assert.Equal(t, 4.0, d["F2"])
	assert.Equal(t, 5.0, d["F1"])
}

func TestParseTextReference(t *testing.T) {
	s, err := Parse(strings.NewReader(referenceText), FormatText)
	require.NoError(t, err)
	assertReference(t, s)
}

func TestLoadFormats(t *testing.T) {
	json := `{"brigades":[{"id":"B1","hourly_capacity":10},{"id":"B2","hourly_capacity":8},{"id":"B3","hourly_capacity":5}],
"foci":[{"id":"F1","area":100,"growth_factor":1.5},{"id":"F2","area":87,"growth_factor":1.25}],
"edges":[{"from":"B1","to":"F1","weight":1},{"from":"B1","to":"F2","weight":2},{"from":"B2","to":"F1","weight":3},
{"from":"B2","to":"B3","weight":2},{"from":"B3","to":"F2","weight":4},{"from":"F1","to":"F2","weight":3}]}`
	for name, data := range map[string]string{
		"reference.yaml": referenceYAML,
		"reference.yml":  referenceYAML,
		"reference.json": json,
		"reference.txt":  referenceText,
	} {
		t.Run(name, func(t *testing.T) {
			s, err := Load(writeScenario(t, name, data))
			require.NoError(t, err)
			assertReference(t, s)
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFromPath("a.YAML"))
	assert.Equal(t, FormatJSON, FormatFromPath("a.json"))
	assert.Equal(t, FormatText, FormatFromPath("input"))
}

func TestParseTextStopsAtBlankLine(t *testing.T) {
	in := "1 1\n10\n5\n1\nB1 F1 1\n\nnot an edge\n"
	s, err := Parse(strings.NewReader(in), FormatText)
	require.NoError(t, err)
	assert.Len(t, s.Edges, 1)
}

func TestParseTextMalformedEdge(t *testing.T) {
	cases := map[string]string{
		"fields": "1 1\n10\n5\n1\nB1 F1\n",
		"weight": "1 1\n10\n5\n1\nB1 F1 one\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(in), FormatText)
			var me *model.MalformedEdgeError
			require.True(t, errors.As(err, &me), "got %v", err)
			assert.Equal(t, 5, me.Line)
		})
	}
}

func TestParseTextHeaderErrors(t *testing.T) {
	cases := []string{
		"",
		"two 1\n",
		"1\n",
		"1 2\n10\n",
		"1 1\n10\n5 6\n1\n",
		"1 1\n10\nx\n1\n",
	}
	for _, in := range cases {
		_, err := Parse(strings.NewReader(in), FormatText)
		assert.Error(t, err, "input %q", in)
	}
}

func TestParseIsolatedNodes(t *testing.T) {
	s, err := Parse(strings.NewReader("2 2\n1 1\n5 5\n1 1\nB1 F1 1\n"), FormatText)
	require.NoError(t, err)
	g := s.Graph()
	for _, id := range []string{"B1", "B2", "F1", "F2"} {
		assert.True(t, g.HasNode(id), id)
	}
	assert.Empty(t, g.Neighbors("B2"))
}

func TestParseValidation(t *testing.T) {
	cases := map[string]string{
		"negative capacity": "brigades: [{id: B1, hourly_capacity: -1}]\n",
		"negative area":     "foci: [{id: F1, area: -1, growth_factor: 1}]\n",
		"negative growth":   "foci: [{id: F1, area: 1, growth_factor: -1}]\n",
		"negative weight":   "edges: [{from: B1, to: F1, weight: -2}]\n",
		"empty endpoint":    "edges: [{from: B1, weight: 2}]\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(in), FormatYAML)
			var ve *model.ValidationError
			assert.True(t, errors.As(err, &ve), "got %v", err)
		})
	}

	_, err := Parse(strings.NewReader("brigades: [{id: B1, hourly_capacity: 1}, {id: B1, hourly_capacity: 2}]\n"), FormatYAML)
	assert.ErrorIs(t, err, model.ErrDuplicateID)
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse(strings.NewReader("brigades: []\ntrucks: []\n"), FormatYAML)
	assert.Error(t, err)
	_, err = Parse(strings.NewReader(`{"trucks":[]}`), FormatJSON)
	assert.Error(t, err)
	_, err = Parse(strings.NewReader(""), Format("xml"))
	assert.Error(t, err)
}

func TestParseEmptyYAML(t *testing.T) {
	s, err := Parse(strings.NewReader(""), FormatYAML)
	require.NoError(t, err)
	assert.Empty(t, s.Foci)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWatchReloads(t *testing.T) {
	path := writeScenario(t, "scenario.yaml", referenceYAML)
	got := make(chan *Scenario, 4)
	stop, err := Watch(path, func(s *Scenario, err error) {
		if err == nil {
			got <- s
		}
	})
	require.NoError(t, err)
	defer stop()

	require.NoError(t, os.WriteFile(path, []byte("foci: [{id: F9, area: 1, growth_factor: 1}]\n"), 0o644))
	timeout := time.After(5 * time.Second)
	for {
		select {
		case s := <-got:
			// a truncated intermediate write loads as an empty scenario
			if len(s.Foci) == 0 {
				continue
			}
			assert.Equal(t, "F9", s.Foci[0].ID)
		case <-timeout:
			t.Fatal("no reload")
		}
		break
	}
	stop()
	stop()
}

func TestWatchReloadsAfterRename(t *testing.T) {
	path := writeScenario(t, "scenario.yaml", referenceYAML)
	got := make(chan *Scenario, 8)
	stop, err := Watch(path, func(s *Scenario, err error) {
		if err == nil && len(s.Foci) > 0 {
			got <- s
		}
	})
	require.NoError(t, err)
	defer stop()

	save := func(id string) {
		tmp := filepath.Join(filepath.Dir(path), "."+id+".tmp")
		require.NoError(t, os.WriteFile(tmp, []byte("foci: [{id: "+id+", area: 1, growth_factor: 1}]\n"), 0o644))
		require.NoError(t, os.Rename(tmp, path))
	}
	for _, id := range []string{"F8", "F9"} {
		save(id)
		timeout := time.After(5 * time.Second)
	wait:
		for {
			select {
			case s := <-got:
				if s.Foci[0].ID == id {
					break wait
				}
			case <-timeout:
				t.Fatalf("no reload for %s", id)
			}
		}
	}
}

func TestScenarioString(t *testing.T) {
	s, err := Parse(strings.NewReader(referenceYAML), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "3 brigades, 2 foci, 6 edges", s.String())
}

func TestWatchMissingFile(t *testing.T) {
	_, err := Watch(filepath.Join(t.TempDir(), "missing.yaml"), func(*Scenario, error) {})
	assert.Error(t, err)
}
