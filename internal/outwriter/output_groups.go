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

// PrintGroups outputs the viewpoint group listing, dispatching based on the
// output format configured.
func PrintGroups(groups []schema.GroupSummary, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, groups)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			csvWriter := csv.NewWriter(w)
			defer csvWriter.Flush()
			return writeGroupsCSV(csvWriter, groups)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteRows(w, parquet.ConvertGroups(groups))
		}, "Wrote Parquet")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if err := writeGroupsText(w, groups, cfg); err != nil {
				return err
			}
			return writeComputeFooter(w, cfg, duration)
		}, "Wrote text")
	}
}

// writeGroupsText renders the group listing table.
func writeGroupsText(w io.Writer, groups []schema.GroupSummary, cfg *contract.Config) error {
	if err := heading(w, cfg, "👥", "Viewpoint Groups"); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"ID", "Title"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignLeft
	})

	maxWidth := getMaxTableTitleWidth(cfg)
	var data [][]string
	for _, g := range limitRows(groups, cfg.ResultLimit) {
		data = append(data, []string{g.ID, contract.TruncateText(g.Title, maxWidth)})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Showing %d of %d groups with supporters\n", len(data), len(groups))
	return err
}

// writeGroupsCSV writes the listing in CSV format.
func writeGroupsCSV(w *csv.Writer, groups []schema.GroupSummary) error {
	header := []string{"rank", "id", "title"}
	if err := w.Write(header); err != nil {
		return err
	}
	for i, g := range groups {
		rec := []string{strconv.Itoa(i + 1), g.ID, g.Title}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
