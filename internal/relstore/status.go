package relstore

import (
	"context"
	"fmt"
)

// TableCount is one snapshot table's row count.
type TableCount struct {
	Table string
	Rows  int64
}

// snapshotTables lists every table the status report covers, in the order
// the report prints them.
var snapshotTables = []string{
	groupsTable,
	membershipsTable,
	profilesTable,
	verificationsTable,
	registrationsTable,
	jurisdictionsTable,
	ballotItemsTable,
	racesTable,
	officeTermsTable,
	officesTable,
	electionsTable,
}

// Status reports per-table row counts for the snapshot. A table that does
// not exist yet reports -1 rather than failing the whole report, so status
// works before the first migration.
func (s *Store) Status(ctx context.Context) ([]TableCount, error) {
	counts := make([]TableCount, 0, len(snapshotTables))
	for _, table := range snapshotTables {
		var rows int64
		query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table)
		if err := s.db.QueryRowContext(ctx, query).Scan(&rows); err != nil {
			rows = -1
		}
		counts = append(counts, TableCount{Table: table, Rows: rows})
	}
	return counts, nil
}
