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

// PrintSwayScore outputs the sway score, dispatching based on the output format configured.
func PrintSwayScore(result schema.SwayScoreResult, groupID string, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSwayScoreJSON(w, result, groupID)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			csvWriter := csv.NewWriter(w)
			defer csvWriter.Flush()
			return writeSwayScoreCSV(csvWriter, result, groupID)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteRows(w, parquet.ConvertSwayScore(groupID, result))
		}, "Wrote Parquet")
	default:
		// Default to human-readable text
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if err := writeSwayScoreText(w, result, groupID, cfg); err != nil {
				return err
			}
			return writeComputeFooter(w, cfg, duration)
		}, "Wrote text")
	}
}

// writeSwayScoreText writes the human-readable score summary.
func writeSwayScoreText(w io.Writer, result schema.SwayScoreResult, groupID string, cfg *contract.Config) error {
	if err := heading(w, cfg, "📊", "Sway Score"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Group:            %s\n", groupID); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Verified voters:  %d (%s)\n", result.Count, labelFor(cfg, result.Count)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Total supporters: %d\n", result.TotalSupporters); err != nil {
		return err
	}
	return nil
}

// writeSwayScoreCSV writes the score in CSV format.
func writeSwayScoreCSV(w *csv.Writer, result schema.SwayScoreResult, groupID string) error {
	header := []string{"group_id", "verified_voters", "total_supporters", "label"}
	if err := w.Write(header); err != nil {
		return err
	}
	rec := []string{
		groupID,
		strconv.Itoa(result.Count),
		strconv.Itoa(result.TotalSupporters),
		contract.GetPlainLabel(result.Count),
	}
	return w.Write(rec)
}

// writeSwayScoreJSON writes the score in JSON format with the reach label added.
func writeSwayScoreJSON(w io.Writer, result schema.SwayScoreResult, groupID string) error {
	type JSONSwayScore struct {
		GroupID string `json:"groupId"`
		Label   string `json:"label"`
		schema.SwayScoreResult
	}
	return writeJSON(w, JSONSwayScore{
		GroupID:         groupID,
		Label:           contract.GetPlainLabel(result.Count),
		SwayScoreResult: result,
	})
}
