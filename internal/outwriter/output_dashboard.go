package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/BrettEastman/sway-leader-dashboard/internal/contract"
	"github.com/BrettEastman/sway-leader-dashboard/internal/parquet"
	"github.com/BrettEastman/sway-leader-dashboard/schema"
)

// PrintDashboard outputs the combined four-metric view, dispatching based on
// the output format configured.
func PrintDashboard(result *schema.DashboardResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			csvWriter := csv.NewWriter(w)
			defer csvWriter.Flush()
			return writeDashboardCSV(csvWriter, result)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteRows(w, parquet.ConvertDashboard(result))
		}, "Wrote Parquet")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if err := writeDashboardText(w, result, cfg); err != nil {
				return err
			}
			return writeComputeFooter(w, cfg, duration)
		}, "Wrote text")
	}
}

// writeDashboardText renders all four metric sections in order.
func writeDashboardText(w io.Writer, result *schema.DashboardResult, cfg *contract.Config) error {
	if err := writeSwayScoreText(w, result.SwayScore, result.GroupID, cfg); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	if err := writeInfluenceText(w, result.ElectoralInfluence, cfg); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	if err := writeGrowthText(w, result.GrowthOverTime, cfg); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return writeNetworkText(w, result.NetworkReach, cfg)
}

// writeDashboardCSV flattens the dashboard into a single summary row.
func writeDashboardCSV(w *csv.Writer, result *schema.DashboardResult) error {
	header := []string{
		"group_id",
		"verified_voters",
		"total_supporters",
		"label",
		"jurisdictions",
		"races",
		"upcoming_elections",
		"total_growth",
		"growth_rate",
		"network_leaders",
		"total_downstream_reach",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	rate := ""
	if result.GrowthOverTime.GrowthRate != nil {
		rate = strconv.FormatFloat(*result.GrowthOverTime.GrowthRate, 'f', 2, 64)
	}
	rec := []string{
		result.GroupID,
		strconv.Itoa(result.SwayScore.Count),
		strconv.Itoa(result.SwayScore.TotalSupporters),
		contract.GetPlainLabel(result.SwayScore.Count),
		strconv.Itoa(len(result.ElectoralInfluence.ByJurisdiction)),
		strconv.Itoa(len(result.ElectoralInfluence.ByRace)),
		strconv.Itoa(len(result.ElectoralInfluence.UpcomingElections)),
		strconv.Itoa(result.GrowthOverTime.TotalGrowth),
		rate,
		strconv.Itoa(len(result.NetworkReach.NetworkLeaders)),
		strconv.Itoa(result.NetworkReach.TotalDownstreamReach),
	}
	return w.Write(rec)
}
