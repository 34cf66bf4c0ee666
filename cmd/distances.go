package cmd

import (
	"encoding/json"
	"fmt"
	"math"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kilianp07/brigade/infra/logger"
)

func newDistancesCmd(load configLoader) *cobra.Command {
	var (
		scenarioPath string
		from         string
		format       string
	)
	cmd := &cobra.Command{
		Use:   "distances",
		Short: "Print shortest travel times from a node",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if from == "" {
				return fmt.Errorf("--from is required")
			}
			svc, sc, _, err := setup(load, scenarioPath)
			if err != nil {
				return err
			}
			defer func() {
				if err := svc.Close(); err != nil {
					logger.New("distances").Errorf("service close: %v", err)
				}
			}()
			dist, nodes, err := svc.Distances(sc, from)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch format {
			case "json":
				// unreachable nodes are encoded as null
				m := make(map[string]*float64, len(dist))
				for _, n := range nodes {
					d := dist[n]
					if math.IsInf(d, 1) {
						m[n] = nil
						continue
					}
					m[n] = &d
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(m)
			case "text", "":
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "NODE\tHOURS")
				for _, n := range nodes {
					d := dist[n]
					if math.IsInf(d, 1) {
						fmt.Fprintf(tw, "%s\tunreachable\n", n)
						continue
					}
					fmt.Fprintf(tw, "%s\t%.2f\n", n, d)
				}
				return tw.Flush()
			default:
				return fmt.Errorf("unsupported output format %q", format)
			}
		},
	}
	cmd.Flags().StringVarP(&scenarioPath, "scenario", "s", "", "scenario file (yaml, json or text)")
	cmd.Flags().StringVar(&from, "from", "", "source node")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text or json")
	return cmd
}
