package schema

// Custom string types for type safety.
type (
	// ColumnRole represents a semantic role the engine needs from a column.
	ColumnRole string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for run history.
	DatabaseBackend string
)

// Semantic roles resolved against the export's column headers.
const (
	RoleOrder    ColumnRole = "order"    // order identifier
	RoleLineItem ColumnRole = "lineitem" // product/variant name
	RoleQuantity ColumnRole = "quantity" // units purchased on the row
	RoleTotal    ColumnRole = "total"    // order-level monetary total
	RoleCreated  ColumnRole = "created"  // order creation timestamp
)

// AllColumnRoles lists every role in a stable order.
var AllColumnRoles = []ColumnRole{RoleOrder, RoleLineItem, RoleQuantity, RoleTotal, RoleCreated}

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All history backends supported.
const (
	NoneBackend       DatabaseBackend = "none" // default
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
)

// UnknownMonthKey is the month bucket for orders whose creation date is
// missing or unparseable. It participates in aggregation as an ordinary
// bucket and sorts after every real "YYYY-MM" key.
const UnknownMonthKey = "Unknown"

// AllMonthsScope labels the report computed across every month bucket.
const AllMonthsScope = "all"

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid history backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	NoneBackend:       {},
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
}

// DefaultAliases returns the candidate header names per role, in priority
// order. These cover the column names Shopify has used across export
// generations; the config file can prepend custom candidates per role.
func DefaultAliases() map[ColumnRole][]string {
	return map[ColumnRole][]string{
		RoleOrder:    {"name", "order name"},
		RoleLineItem: {"lineitem name"},
		RoleQuantity: {"lineitem quantity", "quantity"},
		RoleTotal:    {"total", "total price", "order total", "financial status total"},
		RoleCreated:  {"created at", "created", "processed at", "paid at"},
	}
}
