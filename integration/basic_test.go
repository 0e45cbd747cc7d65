//go:build basic

package integration

import (
	"os"
	"path/filepath"
	"testing"
)

// TestSwaydashVersion verifies the binary reports its build info.
func TestSwaydashVersion(t *testing.T) {
	if err := runSwaydashCommand(t, "version"); err != nil {
		t.Errorf("swaydash version failed: %v", err)
	}
}

// TestSnapshotLifecycleSQLite migrates a fresh SQLite snapshot and runs
// metric commands against the empty dataset.
func TestSnapshotLifecycleSQLite(t *testing.T) {
	dbDir := t.TempDir()
	dbPath := filepath.Join(dbDir, "snapshot.db")

	os.Setenv("SWAYDASH_BACKEND", "sqlite")
	os.Setenv("SWAYDASH_DB_CONNECT", dbPath)
	defer func() {
		os.Unsetenv("SWAYDASH_BACKEND")
		os.Unsetenv("SWAYDASH_DB_CONNECT")
	}()

	// Apply the snapshot schema
	if err := runSwaydashCommand(t, "snapshot", "migrate"); err != nil {
		t.Fatalf("snapshot migrate failed: %v", err)
	}

	// Status should report all tables present
	if err := runSwaydashCommand(t, "snapshot", "status"); err != nil {
		t.Errorf("snapshot status failed: %v", err)
	}

	// Listing groups over an empty snapshot succeeds with zero rows
	if err := runSwaydashCommand(t, "groups"); err != nil {
		t.Errorf("groups failed: %v", err)
	}

	// Metrics over a missing group total to zero rather than failing
	if err := runSwaydashCommand(t, "score", "g-missing"); err != nil {
		t.Errorf("score failed: %v", err)
	}
	if err := runSwaydashCommand(t, "dashboard", "g-missing", "--output", "json"); err != nil {
		t.Errorf("dashboard failed: %v", err)
	}
}
