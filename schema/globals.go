package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DataBackend represents the data source a metric call reads from.
	DataBackend string

	// RelationType represents a profile's relation to a viewpoint group.
	RelationType string
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All data backends supported. The first three are relational snapshot
// drivers; SwayAPIBackend is the graph API.
const (
	SQLiteBackend     DataBackend = "sqlite"
	MySQLBackend      DataBackend = "mysql"
	PostgreSQLBackend DataBackend = "postgresql"
	SwayAPIBackend    DataBackend = "sway_api"
)

// IsRelational reports whether the backend is a relational snapshot driver.
func (b DataBackend) IsRelational() bool {
	switch b {
	case SQLiteBackend, MySQLBackend, PostgreSQLBackend:
		return true
	}
	return false
}

// All membership relation types.
const (
	DefaultRelation       RelationType = "default"
	AdministratorRelation RelationType = "administrator"
	LeaderRelation        RelationType = "leader"
	BookmarkerRelation    RelationType = "bookmarker"
	SupporterRelation     RelationType = "supporter"
)

// ValidOutputModes is the set of output modes accepted by config validation.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDataBackends is the set of data backends accepted by config validation.
var ValidDataBackends = map[DataBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	SwayAPIBackend:    {},
}

// DayFormat is the calendar-day layout used for growth buckets and poll dates.
const DayFormat = "2006-01-02"

// UntitledGroupTitle marks placeholder group titles that the listing drops.
const UntitledGroupTitle = "Untitled Group"
