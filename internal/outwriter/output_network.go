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

// PrintNetworkReach outputs the network reach edges, dispatching based on the
// output format configured.
func PrintNetworkReach(result schema.NetworkReachResult, groupID string, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeNetworkJSON(w, result, groupID)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			csvWriter := csv.NewWriter(w)
			defer csvWriter.Flush()
			return writeNetworkCSV(csvWriter, result, groupID)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteRows(w, parquet.ConvertNetworkLeaders(groupID, result))
		}, "Wrote Parquet")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if err := writeNetworkText(w, result, cfg); err != nil {
				return err
			}
			return writeComputeFooter(w, cfg, duration)
		}, "Wrote text")
	}
}

// writeNetworkText renders the leader table and the reach total.
func writeNetworkText(w io.Writer, result schema.NetworkReachResult, cfg *contract.Config) error {
	if err := heading(w, cfg, "🌐", "Network Reach"); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Leader", "Group", "Verified", "Supporters", "Label"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxWidth := getMaxTableTitleWidth(cfg)
	var data [][]string
	for i, l := range limitRows(result.NetworkLeaders, cfg.ResultLimit) {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncateText(contract.DisplayOrDash(l.DisplayName), maxWidth),
			contract.TruncateText(contract.DisplayOrDash(l.ViewpointGroupTitle), maxWidth),
			strconv.Itoa(l.DownstreamVerifiedVoters),
			strconv.Itoa(l.SupporterCount),
			labelFor(cfg, l.DownstreamVerifiedVoters),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Showing %d of %d leaders (total downstream reach: %d)\n",
		len(data), len(result.NetworkLeaders), result.TotalDownstreamReach)
	return err
}

// writeNetworkCSV writes the leader edges in CSV format.
func writeNetworkCSV(w *csv.Writer, result schema.NetworkReachResult, groupID string) error {
	header := []string{
		"group_id",
		"rank",
		"profile_id",
		"display_name",
		"downstream_group_id",
		"downstream_group_title",
		"downstream_verified_voters",
		"supporter_count",
		"label",
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
	for i, l := range result.NetworkLeaders {
		rec := []string{
			groupID,
			strconv.Itoa(i + 1),
			l.ProfileID,
			displayOrEmpty(l.DisplayName),
			l.ViewpointGroupID,
			displayOrEmpty(l.ViewpointGroupTitle),
			strconv.Itoa(l.DownstreamVerifiedVoters),
			strconv.Itoa(l.SupporterCount),
			contract.GetPlainLabel(l.DownstreamVerifiedVoters),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeNetworkJSON writes the edges in JSON format.
func writeNetworkJSON(w io.Writer, result schema.NetworkReachResult, groupID string) error {
	type JSONNetwork struct {
		GroupID string `json:"groupId"`
		schema.NetworkReachResult
	}
	return writeJSON(w, JSONNetwork{GroupID: groupID, NetworkReachResult: result})
}
