package export

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/kilianp07/brigade/core/allocation"
)

// Format names an output encoding accepted by Write.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatHTML Format = "html"
)

// Write renders the run in the requested format.
func Write(w io.Writer, format Format, res allocation.RunResult) error {
	switch format {
	case FormatText, "":
		return WriteText(w, res)
	case FormatJSON:
		return WriteJSON(w, res)
	case FormatCSV:
		return WriteCSV(w, res)
	case FormatHTML:
		return WriteHTML(w, res)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// WriteText writes the daily suppression log followed by the final verdict.
func WriteText(w io.Writer, res allocation.RunResult) error {
	bw := bufio.NewWriter(w)
	for _, day := range res.History {
		writeDay(bw, day)
	}
	if !res.Completed() {
		fmt.Fprintln(bw, "--- Day limit reached ---")
	}
	fmt.Fprintln(bw, "--- Simulation finished ---")
	if res.Completed() {
		fmt.Fprintf(bw, "All foci extinguished in %d days.\n", res.Days)
	} else {
		fmt.Fprintf(bw, "Some foci could not be extinguished after %d days.\n", res.Days)
	}
	return bw.Flush()
}

func writeDay(w io.Writer, day allocation.DayResult) {
	fmt.Fprintf(w, "--- DAY %d ---\n", day.Day)
	fmt.Fprintln(w, "--- Allocations ---")
	for _, round := range day.Fought {
		fmt.Fprintf(w, "Focus %s - area before suppression: %.2f\n", round.FocusID, round.AreaBefore)
		for _, a := range day.Allocations {
			if a.FocusID != round.FocusID {
				continue
			}
			fmt.Fprintf(w, "  %s: travel=%.2fh, usable=%.2fh, committed to focus %s=%.2f\n",
				a.BrigadeID, a.Distance, a.UsableTime, a.FocusID, a.AreaCommitted)
		}
		if round.AreaAfter <= 0 {
			fmt.Fprintf(w, "Focus %s extinguished!\n", round.FocusID)
		} else {
			fmt.Fprintf(w, "Focus %s - area remaining after suppression: %.2f\n", round.FocusID, round.AreaAfter)
		}
	}
	fmt.Fprintln(w, "--- Day summary ---")
	for _, f := range day.Foci {
		fmt.Fprintf(w, "Focus %s: area = %.2f (daily growth: %s)\n",
			f.ID, f.Area, strconv.FormatFloat(f.GrowthFactor, 'f', -1, 64))
	}
}

// WriteJSON writes the run result to w in JSON format.
func WriteJSON(w io.Writer, res allocation.RunResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// WriteCSV writes one row per allocation record.
func WriteCSV(w io.Writer, res allocation.RunResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"run_id", "day", "focus_id", "brigade_id", "distance_hours", "usable_hours", "area_committed"}); err != nil {
		return err
	}
	for _, day := range res.History {
		for _, a := range day.Allocations {
			rec := []string{
				res.RunID,
				strconv.Itoa(a.Day),
				a.FocusID,
				a.BrigadeID,
				strconv.FormatFloat(a.Distance, 'f', -1, 64),
				strconv.FormatFloat(a.UsableTime, 'f', -1, 64),
				strconv.FormatFloat(a.AreaCommitted, 'f', -1, 64),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteHTML renders the residual area of every focus per day as a line chart.
func WriteHTML(w io.Writer, res allocation.RunResult) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Residual area per focus", Subtitle: "run " + res.RunID}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Day"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Area"}),
	)

	days := make([]string, len(res.History))
	var order []string
	series := map[string][]opts.LineData{}
	for i, day := range res.History {
		days[i] = strconv.Itoa(day.Day)
		for _, f := range day.Foci {
			if _, ok := series[f.ID]; !ok {
				order = append(order, f.ID)
			}
			series[f.ID] = append(series[f.ID], opts.LineData{Value: f.Area})
		}
	}
	line.SetXAxis(days)
	for _, id := range order {
		line.AddSeries(id, series[id])
	}
	return line.Render(w)
}
