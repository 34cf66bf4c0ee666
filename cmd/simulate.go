package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/brigade/app"
	"github.com/kilianp07/brigade/core/scenario"
	"github.com/kilianp07/brigade/infra/logger"
	"github.com/kilianp07/brigade/pkg/export"
)

func newSimulateCmd(load configLoader) *cobra.Command {
	var (
		scenarioPath string
		format       string
		maxDays      int
		watch        bool
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the daily allocation until every focus is extinguished",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			svc, sc, path, err := setup(load, scenarioPath)
			if err != nil {
				return err
			}
			log := logger.New("simulate")
			defer func() {
				if err := svc.Close(); err != nil {
					log.Errorf("service close: %v", err)
				}
			}()
			if _, err := svc.StartMetrics(ctx); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			f := export.Format(format)
			if err := runOnce(out, f, svc, sc, maxDays); err != nil {
				return err
			}
			if !watch {
				return nil
			}
			return watchScenario(ctx, out, f, svc, path, maxDays, log)
		},
	}
	cmd.Flags().StringVarP(&scenarioPath, "scenario", "s", "", "scenario file (yaml, json or text)")
	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatText), "output format: text, json, csv or html")
	cmd.Flags().IntVar(&maxDays, "max-days", 0, "day ceiling, overrides the configuration when positive")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-run the simulation whenever the scenario file changes")
	return cmd
}

func runOnce(out io.Writer, f export.Format, svc *app.Service, sc *scenario.Scenario, maxDays int) error {
	res, err := svc.Simulate(sc, maxDays)
	if err != nil {
		return err
	}
	return export.Write(out, f, res)
}

func watchScenario(ctx context.Context, out io.Writer, f export.Format, svc *app.Service, path string, maxDays int, log logger.Logger) error {
	reloads := make(chan *scenario.Scenario, 1)
	stop, err := scenario.Watch(path, func(sc *scenario.Scenario, err error) {
		if err != nil {
			log.Errorf("reload %s: %v", path, err)
			return
		}
		select {
		case reloads <- sc:
		default:
		}
	})
	if err != nil {
		return err
	}
	defer stop()
	log.Infof("watching %s", path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case sc := <-reloads:
			if _, err := fmt.Fprintln(out); err != nil {
				return err
			}
			if err := runOnce(out, f, svc, sc, maxDays); err != nil {
				log.Errorf("simulate %s: %v", path, err)
			}
		}
	}
}
