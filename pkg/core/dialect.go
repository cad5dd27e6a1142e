package core

// DialectConfig holds the static configuration for a SQL dialect.
// This is pure data with no behavior.
//
// The runtime behavior (quoting decisions, placeholder formatting) lives in
// pkg/dialect.Dialect, which embeds this config.
type DialectConfig struct {
	// Name is the dialect identifier (e.g., "mysql", "postgres")
	Name string

	// Identifiers defines quoting and normalization rules
	Identifiers IdentifierConfig

	// DefaultSchema is the default schema name ("main" for DuckDB, "public" for Postgres)
	DefaultSchema string

	// Placeholder defines how query parameters are formatted
	Placeholder PlaceholderStyle

	// Limits defines how LIMIT/OFFSET bounds are written
	Limits LimitStyle

	// Features lists the optional statement features the dialect accepts
	Features Features
}

// Features flags optional SQL constructs a dialect supports.
type Features struct {
	Returning    bool // INSERT/UPDATE/DELETE ... RETURNING
	UpdateLimit  bool // UPDATE ... ORDER BY ... LIMIT
	DeleteLimit  bool // DELETE ... ORDER BY ... LIMIT
	StraightJoin bool
	FullJoin     bool
	RightJoin    bool
	RowLocking   bool // SELECT ... FOR UPDATE / FOR SHARE
	OnConflict   bool // INSERT ... ON CONFLICT DO NOTHING
	UpdateAlias  bool // UPDATE t AS x / DELETE FROM t AS x
}

// NormalizationStrategy defines how unquoted identifiers are normalized.
type NormalizationStrategy int

const (
	// NormLowercase normalizes unquoted identifiers to lowercase (default SQL behavior).
	NormLowercase NormalizationStrategy = iota
	// NormUppercase normalizes unquoted identifiers to uppercase (Snowflake, Oracle).
	NormUppercase
	// NormCaseSensitive preserves identifier case exactly (MySQL, ClickHouse).
	NormCaseSensitive
	// NormCaseInsensitive normalizes to lowercase for comparison (BigQuery, Hive, DuckDB).
	NormCaseInsensitive
)

// PlaceholderStyle defines how query parameters are formatted.
type PlaceholderStyle int

const (
	// PlaceholderQuestion uses ? for all parameters (DuckDB, MySQL, SQLite).
	PlaceholderQuestion PlaceholderStyle = iota
	// PlaceholderDollar uses $1, $2, etc. for parameters (PostgreSQL).
	PlaceholderDollar
	// PlaceholderColon uses :1, :2, etc. for parameters (Snowflake).
	PlaceholderColon
	// PlaceholderNamed uses :p1, :p2, etc. for parameters (Databricks).
	PlaceholderNamed
)

// LimitStyle defines how row limits are written.
type LimitStyle int

const (
	// LimitOffset writes LIMIT n OFFSET m.
	LimitOffset LimitStyle = iota
	// LimitFetch writes OFFSET m ROWS FETCH NEXT n ROWS ONLY (SQL:2008).
	LimitFetch
)

// IdentifierConfig defines how identifiers are quoted and normalized.
type IdentifierConfig struct {
	Quote         string                // Quote character: ", `, [
	QuoteEnd      string                // End quote character (usually same as Quote, ] for [)
	Escape        string                // Escape sequence: "", ``, ]]
	Normalization NormalizationStrategy // How to normalize unquoted identifiers
}
