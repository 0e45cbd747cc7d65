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

// PrintGrowthOverTime outputs the cumulative growth series, dispatching based
// on the output format configured.
func PrintGrowthOverTime(result schema.GrowthOverTimeResult, groupID string, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeGrowthJSON(w, result, groupID)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			csvWriter := csv.NewWriter(w)
			defer csvWriter.Flush()
			return writeGrowthCSV(csvWriter, result, groupID)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteRows(w, parquet.ConvertGrowthPoints(groupID, result))
		}, "Wrote Parquet")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if err := writeGrowthText(w, result, cfg); err != nil {
				return err
			}
			return writeComputeFooter(w, cfg, duration)
		}, "Wrote text")
	}
}

// writeGrowthText renders the day-by-day series and summary lines.
func writeGrowthText(w io.Writer, result schema.GrowthOverTimeResult, cfg *contract.Config) error {
	if err := heading(w, cfg, "📈", "Growth Over Time"); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Date", "Cumulative", "Change"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, p := range limitRows(result.DataPoints, cfg.ResultLimit) {
		change := "-"
		if p.PeriodChange != nil {
			change = fmt.Sprintf("%+d", *p.PeriodChange)
		}
		data = append(data, []string{p.Date, strconv.Itoa(p.CumulativeCount), change})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Total growth: %d verified voters over %d days\n", result.TotalGrowth, len(result.DataPoints)); err != nil {
		return err
	}
	if result.GrowthRate != nil {
		fmtFloat := createFloatFormatter(cfg.Precision)
		if _, err := fmt.Fprintf(w, "Growth rate: +%s%%\n", fmtFloat(*result.GrowthRate)); err != nil {
			return err
		}
	}
	return nil
}

// writeGrowthCSV writes the series in CSV format.
func writeGrowthCSV(w *csv.Writer, result schema.GrowthOverTimeResult, groupID string) error {
	header := []string{"group_id", "date", "cumulative_count", "period_change"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, p := range result.DataPoints {
		change := ""
		if p.PeriodChange != nil {
			change = strconv.Itoa(*p.PeriodChange)
		}
		rec := []string{groupID, p.Date, strconv.Itoa(p.CumulativeCount), change}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeGrowthJSON writes the series in JSON format.
func writeGrowthJSON(w io.Writer, result schema.GrowthOverTimeResult, groupID string) error {
	type JSONGrowth struct {
		GroupID string `json:"groupId"`
		schema.GrowthOverTimeResult
	}
	return writeJSON(w, JSONGrowth{GroupID: groupID, GrowthOverTimeResult: result})
}
