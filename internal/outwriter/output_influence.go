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

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintElectoralInfluence outputs the electoral influence breakdown, dispatching
// based on the output format configured.
func PrintElectoralInfluence(result schema.ElectoralInfluenceResult, groupID string, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeInfluenceJSON(w, result, groupID)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			csvWriter := csv.NewWriter(w)
			defer csvWriter.Flush()
			return writeInfluenceCSV(csvWriter, result, groupID)
		}, "Wrote CSV")
	case schema.ParquetOut:
		// Parquet carries the jurisdiction breakdown; race rows need their
		// own schema and belong to a separate export.
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteRows(w, parquet.ConvertJurisdictions(groupID, result))
		}, "Wrote Parquet")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if err := writeInfluenceText(w, result, cfg); err != nil {
				return err
			}
			return writeComputeFooter(w, cfg, duration)
		}, "Wrote text")
	}
}

// writeInfluenceText writes the jurisdiction and race tables plus the
// upcoming election rollup.
func writeInfluenceText(w io.Writer, result schema.ElectoralInfluenceResult, cfg *contract.Config) error {
	if err := heading(w, cfg, "🗳️", "Electoral Influence"); err != nil {
		return err
	}
	if err := writeJurisdictionTable(w, result.ByJurisdiction, cfg); err != nil {
		return err
	}
	if len(result.ByRace) > 0 {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		if err := writeRaceTable(w, result.ByRace, cfg); err != nil {
			return err
		}
	}
	if len(result.UpcomingElections) > 0 {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		if err := writeUpcomingElections(w, result.UpcomingElections, cfg); err != nil {
			return err
		}
	}
	return nil
}

// writeJurisdictionTable renders the per-jurisdiction voter counts.
func writeJurisdictionTable(w io.Writer, rows []schema.ElectoralInfluenceByJurisdiction, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Jurisdiction", "State", "Voters"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxWidth := getMaxTableTitleWidth(cfg)
	var data [][]string
	for i, j := range limitRows(rows, cfg.ResultLimit) {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncateText(contract.DisplayOrDash(j.JurisdictionName), maxWidth),
			contract.DisplayOrDash(j.State),
			strconv.Itoa(j.SupporterCount),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	total := 0
	for _, j := range rows {
		total += j.SupporterCount
	}
	_, err := fmt.Fprintf(w, "Showing %d of %d jurisdictions (total registrations: %d)\n", len(data), len(rows), total)
	return err
}

// writeRaceTable renders the per-race attribution.
func writeRaceTable(w io.Writer, rows []schema.ElectoralInfluenceByRace, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Race", "Jurisdiction", "Election", "Poll Date", "Voters"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxWidth := getMaxTableTitleWidth(cfg)
	var data [][]string
	for _, r := range limitRows(rows, cfg.ResultLimit) {
		data = append(data, []string{
			contract.TruncateText(contract.DisplayOrDash(r.RaceName), maxWidth),
			contract.DisplayOrDash(r.JurisdictionName),
			contract.TruncateText(contract.DisplayOrDash(r.ElectionName), maxWidth),
			contract.DisplayOrDash(r.PollDate),
			strconv.Itoa(r.SupporterCount),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeUpcomingElections renders the election rollup as an indented listing.
func writeUpcomingElections(w io.Writer, elections []schema.UpcomingElection, cfg *contract.Config) error {
	if err := heading(w, cfg, "📅", "Upcoming Elections"); err != nil {
		return err
	}
	for _, e := range elections {
		name := contract.DisplayOrDash(e.ElectionName)
		date := contract.DisplayOrDash(e.PollDate)
		if _, err := fmt.Fprintf(w, "%s (%s): %d voters across %d races\n", name, date, e.TotalSupporters, len(e.Races)); err != nil {
			return err
		}
	}
	return nil
}

// writeInfluenceCSV flattens both breakdowns into one CSV, tagged by scope.
func writeInfluenceCSV(w *csv.Writer, result schema.ElectoralInfluenceResult, groupID string) error {
	header := []string{
		"group_id",
		"scope",
		"id",
		"name",
		"state",
		"jurisdiction_id",
		"election_id",
		"election_name",
		"poll_date",
		"supporter_count",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	displayOrEmpty := func(value *string) string {
		if value == nil {
			return ""
		}
		return *value
	}
	for _, j := range result.ByJurisdiction {
		rec := []string{
			groupID,
			"jurisdiction",
			j.JurisdictionID,
			displayOrEmpty(j.JurisdictionName),
			displayOrEmpty(j.State),
			j.JurisdictionID,
			"",
			"",
			"",
			strconv.Itoa(j.SupporterCount),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	for _, r := range result.ByRace {
		rec := []string{
			groupID,
			"race",
			r.RaceID,
			displayOrEmpty(r.RaceName),
			"",
			r.JurisdictionID,
			r.ElectionID,
			displayOrEmpty(r.ElectionName),
			displayOrEmpty(r.PollDate),
			strconv.Itoa(r.SupporterCount),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeInfluenceJSON writes the full breakdown in JSON format.
func writeInfluenceJSON(w io.Writer, result schema.ElectoralInfluenceResult, groupID string) error {
	type JSONInfluence struct {
		GroupID string `json:"groupId"`
		schema.ElectoralInfluenceResult
	}
	return writeJSON(w, JSONInfluence{GroupID: groupID, ElectoralInfluenceResult: result})
}
