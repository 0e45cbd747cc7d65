// Package outwriter has output and writer logic for metric results.
package outwriter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/BrettEastman/sway-leader-dashboard/internal/contract"
	"golang.org/x/term"
)

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// createFloatFormatter creates the float formatter used for rate columns.
func createFloatFormatter(precision int) func(float64) string {
	return func(v float64) string {
		return fmt.Sprintf("%.*f", precision, v)
	}
}

// labelFor renders the reach tier for a verified count, colored when the
// config allows it.
func labelFor(cfg *contract.Config, verifiedVoters int) string {
	if cfg.UseColors {
		return contract.GetColorLabel(verifiedVoters)
	}
	return contract.GetPlainLabel(verifiedVoters)
}

// heading writes a section title with an underline, prefixing the emoji
// when enabled.
func heading(w io.Writer, cfg *contract.Config, emoji, title string) error {
	if cfg.UseEmojis && emoji != "" {
		title = emoji + " " + title
	}
	if _, err := fmt.Fprintf(w, "%s\n", title); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s\n", strings.Repeat("=", len([]rune(title))))
	return err
}

// limitRows caps a slice at the configured table row limit.
func limitRows[T any](rows []T, limit int) []T {
	if limit > 0 && len(rows) > limit {
		return rows[:limit]
	}
	return rows
}

// getMaxTableTitleWidth calculates the maximum width for group titles and
// display names in table output based on terminal width.
func getMaxTableTitleWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the fixed columns (rank, counts, label) with
	// borders, separators, and padding.
	baseWidth := 45

	available := termWidth - baseWidth
	if available < 15 {
		// Minimum reasonable title width
		return 15
	}
	if available > 60 {
		// Maximum title width to prevent overly wide tables
		return 60
	}
	return available
}

// writeComputeFooter appends the shared run summary after a text body.
func writeComputeFooter(w io.Writer, cfg *contract.Config, duration time.Duration) error {
	_, err := fmt.Fprintf(w, "Computed in %v with %d workers. Data backend: %s\n", duration, cfg.Workers, cfg.Backend)
	return err
}
