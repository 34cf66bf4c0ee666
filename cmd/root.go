package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/brigade/app"
	"github.com/kilianp07/brigade/config"
	"github.com/kilianp07/brigade/core/scenario"
)

// NewRootCmd builds the brigade command tree.
func NewRootCmd() *cobra.Command {
	var cfgPath string
	root := &cobra.Command{
		Use:           "brigade",
		Short:         "Daily brigade allocation simulator for active fire foci",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (yaml or json)")

	load := func() (*config.Config, error) {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		return cfg, nil
	}
	root.AddCommand(newSimulateCmd(load), newDistancesCmd(load))
	return root
}

// Execute runs the CLI.
func Execute() error { return NewRootCmd().Execute() }

type configLoader func() (*config.Config, error)

// setup loads the configuration, the scenario and the service. The scenario
// flag wins over the configured default.
func setup(load configLoader, scenarioPath string) (*app.Service, *scenario.Scenario, string, error) {
	cfg, err := load()
	if err != nil {
		return nil, nil, "", err
	}
	if scenarioPath == "" {
		scenarioPath = cfg.Scenario
	}
	if scenarioPath == "" {
		return nil, nil, "", fmt.Errorf("no scenario given: use --scenario or set scenario in the config file")
	}
	sc, err := scenario.Load(scenarioPath)
	if err != nil {
		return nil, nil, "", err
	}
	svc, err := app.New(cfg)
	if err != nil {
		return nil, nil, "", err
	}
	return svc, sc, scenarioPath, nil
}
