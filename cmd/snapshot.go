package cmd

import (
	"fmt"

	"github.com/BrettEastman/sway-leader-dashboard/internal/contract"
	"github.com/BrettEastman/sway-leader-dashboard/internal/relstore"
	"github.com/BrettEastman/sway-leader-dashboard/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// snapshotSetup loads minimal configuration needed for snapshot operations.
// This is used by commands that need snapshot access without full shared
// setup, so migrations can run against a fresh database.
func snapshotSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get snapshot-related config values
	backend := schema.DataBackend(viper.GetString("backend"))
	connStr := viper.GetString("db-connect")

	if !backend.IsRelational() {
		return fmt.Errorf("snapshot commands need a relational backend, got %s", backend)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.Backend = backend
	cfg.DBConnect = connStr

	return nil
}

// snapshotSetupWrapper wraps snapshotSetup to provide PreRunE for snapshot commands.
func snapshotSetupWrapper(_ *cobra.Command, _ []string) error {
	return snapshotSetup()
}

// snapshotCmd focused on snapshot schema management.
//
// Note: Snapshot subcommands use minimal initialization (snapshotSetup)
// instead of the full sharedSetup used by metric commands. This avoids
// provider wiring for simple schema operations.
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Manage the relational snapshot schema",
	Long: `Manage the relational snapshot that metric commands read from.

The snapshot holds a normalized export of groups, profiles, memberships,
voter verifications, and the electoral calendar. Schema versions are applied
with embedded migrations.

Supported backends: SQLite (default), MySQL, PostgreSQL

Subcommands:
  migrate - Apply or roll back snapshot schema migrations
  status  - Show per-table row counts

Examples:
  # Create the snapshot schema in the default SQLite file
  swaydash snapshot migrate

  # Check what the snapshot currently holds
  swaydash snapshot status`,
}

// snapshotMigrateCmd applies or rolls back schema migrations.
var snapshotMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply snapshot schema migrations",
	Long: `Apply snapshot schema migrations up to a target version.

Target version semantics:
  -1  migrate up to the latest version (default)
   0  roll back to an empty schema
   N  migrate to exactly version N

Examples:
  # Migrate the default SQLite snapshot to the latest schema
  swaydash snapshot migrate

  # Roll the schema back completely
  swaydash snapshot migrate --target-version 0

  # Migrate a Postgres snapshot
  swaydash snapshot migrate --backend postgresql --db-connect "host=localhost dbname=sway"`,
	PreRunE: snapshotSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := relstore.Migrate(cfg.Backend, cfg.DBConnect, targetVersion); err != nil {
			contract.LogFatal("Cannot migrate snapshot", err)
		}
	},
}

// snapshotStatusCmd prints per-table row counts.
var snapshotStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show snapshot row counts per table",
	Long: `Show the row count of every snapshot table.

A count of -1 means the table is missing, usually because migrations have
not been applied yet.

Examples:
  # Inspect the default SQLite snapshot
  swaydash snapshot status`,
	PreRunE: snapshotSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		store, err := relstore.Open(cfg.Backend, cfg.DBConnect, contract.MaxBatchSize)
		if err != nil {
			contract.LogFatal("Cannot open snapshot store", err)
		}
		defer func() { _ = store.Close() }()

		counts, err := store.Status(rootCtx)
		if err != nil {
			contract.LogFatal("Cannot read snapshot status", err)
		}

		cmd.Printf("Snapshot backend: %s\n", cfg.Backend)
		for _, c := range counts {
			if c.Rows < 0 {
				cmd.Printf("  %-40s missing\n", c.Table)
				continue
			}
			cmd.Printf("  %-40s %d rows\n", c.Table, c.Rows)
		}
	},
}
