// Package postgres provides the PostgreSQL SQL dialect definition.
// This package is pure Go with no database driver dependencies.
package postgres

import "github.com/leapstack-labs/leapcrit/pkg/core"

// Config is the PostgreSQL dialect configuration.
// This is pure data - accessible by both the adapters and the renderer.
var Config = &core.DialectConfig{
	Name:          "postgres",
	DefaultSchema: "public",
	Placeholder:   core.PlaceholderDollar,
	Limits:        core.LimitOffset,
	Identifiers: core.IdentifierConfig{
		Quote:         `"`,
		QuoteEnd:      `"`,
		Escape:        `""`,
		Normalization: core.NormLowercase, // Postgres normalizes unquoted to lowercase
	},

	Features: core.Features{
		Returning:   true,
		FullJoin:    true,
		RightJoin:   true,
		RowLocking:  true,
		OnConflict:  true,
		UpdateAlias: true,
	},
	// PostgreSQL does NOT support these:
	// - UPDATE/DELETE ... LIMIT
	// - STRAIGHT_JOIN
}

// postgresAggregates are the aggregate functions of the dialect.
var postgresAggregates = []string{
	// Standard aggregates
	"SUM", "COUNT", "AVG", "MIN", "MAX",
	"STDDEV", "STDDEV_POP", "STDDEV_SAMP",
	"VARIANCE", "VAR_POP", "VAR_SAMP",
	// PostgreSQL specific
	"ARRAY_AGG", "STRING_AGG",
	"JSONB_AGG", "JSONB_OBJECT_AGG", "JSON_AGG", "JSON_OBJECT_AGG",
	"BOOL_AND", "BOOL_OR", "EVERY",
	"BIT_AND", "BIT_OR", "BIT_XOR",
	"PERCENTILE_CONT", "PERCENTILE_DISC", "MODE",
}

// postgresGenerators produce values without input columns.
var postgresGenerators = []string{
	"CURRENT_TIMESTAMP", "CURRENT_DATE", "CURRENT_TIME",
	"NOW", "LOCALTIME", "LOCALTIMESTAMP",
	"STATEMENT_TIMESTAMP", "TRANSACTION_TIMESTAMP", "CLOCK_TIMESTAMP",
	"GEN_RANDOM_UUID", "RANDOM",
}

var postgresWindows = []string{
	"ROW_NUMBER", "RANK", "DENSE_RANK", "NTILE", "PERCENT_RANK", "CUME_DIST",
	"LAG", "LEAD", "FIRST_VALUE", "LAST_VALUE", "NTH_VALUE",
}

var postgresTypes = []string{
	"BOOLEAN", "SMALLINT", "INTEGER", "BIGINT", "NUMERIC", "REAL", "DOUBLE PRECISION",
	"TEXT", "VARCHAR", "BYTEA", "DATE", "TIME", "TIMESTAMP", "TIMESTAMPTZ",
	"JSON", "JSONB", "UUID",
}
