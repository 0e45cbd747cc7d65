package contract

import (
	"fmt"
	"os"
	"regexp"

	"github.com/fatih/color"
)

// Reach tier label constants.
const (
	MajorValue    = "Major"    // Major reach
	StrongValue   = "Strong"   // Strong reach
	GrowingValue  = "Growing"  // Growing reach
	EmergingValue = "Emerging" // Emerging reach
)

// Reach tier thresholds (verified voter counts).
const (
	majorThreshold   = 500
	strongThreshold  = 100
	growingThreshold = 25
)

// Color variables for console output.
var (
	MajorColor    = color.New(color.FgRed, color.Bold)     // majorColor marks the highest reach tier.
	StrongColor   = color.New(color.FgMagenta, color.Bold) // strongColor marks a strong following.
	GrowingColor  = color.New(color.FgYellow)              // growingColor marks a growing following, not bold.
	EmergingColor = color.New(color.FgCyan)                // emergingColor marks an early-stage following.
)

// GetPlainLabel returns a plain text reach tier based on a verified voter
// count. This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(verifiedVoters int) string {
	switch {
	case verifiedVoters >= majorThreshold:
		return MajorValue
	case verifiedVoters >= strongThreshold:
		return StrongValue
	case verifiedVoters >= growingThreshold:
		return GrowingValue
	default:
		return EmergingValue
	}
}

// GetColorLabel returns a colored reach tier for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(verifiedVoters int) string {
	text := GetPlainLabel(verifiedVoters)

	switch text {
	case MajorValue:
		return MajorColor.Sprint(text)
	case StrongValue:
		return StrongColor.Sprint(text)
	case GrowingValue:
		return GrowingColor.Sprint(text)
	default: // "Emerging"
		return EmergingColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// TruncateText shortens a display string to maxLen runes, keeping the tail
// visible since titles tend to differ at the end.
func TruncateText(text string, maxLen int) string {
	if maxLen <= 3 || len([]rune(text)) <= maxLen {
		return text
	}
	runes := []rune(text)
	return "..." + string(runes[len(runes)-(maxLen-3):])
}

// DisplayOrDash renders an optional string column, substituting a dash for
// missing values.
func DisplayOrDash(value *string) string {
	if value == nil || *value == "" {
		return "-"
	}
	return *value
}

// bearerTokenPattern matches Bearer tokens embedded in upstream error text.
var bearerTokenPattern = regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9\-._~+/]+=*`)

// SanitizeErrorText removes potentially sensitive information from error
// messages before they are logged or wrapped.
func SanitizeErrorText(errorText string) string {
	return bearerTokenPattern.ReplaceAllString(errorText, "Bearer [REDACTED]")
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}
