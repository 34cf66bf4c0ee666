package scenarios

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/brigade/core/scenario"
)

// Expected is the outcome a regression case must reproduce.
type Expected struct {
	Days         int     `yaml:"days"`
	Completed    bool    `yaml:"completed"`
	Allocations  int     `yaml:"allocations"`
	Committed    float64 `yaml:"committed"`
	ResidualArea float64 `yaml:"residual_area"`
}

// Case is a scenario paired with its expected run outcome.
type Case struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description,omitempty"`
	MaxDays     int               `yaml:"max_days,omitempty"`
	Router      string            `yaml:"router,omitempty"`
	Scenario    scenario.Scenario `yaml:"scenario"`
	Expected    Expected          `yaml:"expected"`
}

func Load(path string) (*Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Case
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	if err := c.Scenario.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}
