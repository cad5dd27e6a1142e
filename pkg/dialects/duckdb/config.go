// Package duckdb provides the DuckDB SQL dialect definition.
// This package is pure Go with no database driver dependencies.
package duckdb

import "github.com/leapstack-labs/leapcrit/pkg/core"

// Config is the DuckDB dialect configuration.
// This is pure data - accessible by both the adapters and the renderer.
var Config = &core.DialectConfig{
	Name:          "duckdb",
	DefaultSchema: "main",
	Placeholder:   core.PlaceholderQuestion,
	Limits:        core.LimitOffset,
	Identifiers: core.IdentifierConfig{
		Quote:         `"`,
		QuoteEnd:      `"`,
		Escape:        `""`,
		Normalization: core.NormCaseInsensitive,
	},

	Features: core.Features{
		Returning:   true,
		FullJoin:    true,
		RightJoin:   true,
		OnConflict:  true,
		UpdateAlias: true,
	},
	// DuckDB does NOT support these:
	// - FOR UPDATE / FOR SHARE (parsed but ignored, so rejected here)
	// - UPDATE/DELETE ... LIMIT
}

// duckDBAggregates are the aggregate functions of the dialect.
var duckDBAggregates = []string{
	// Standard aggregates
	"SUM", "COUNT", "AVG", "MIN", "MAX",
	"STDDEV", "STDDEV_POP", "STDDEV_SAMP",
	"VARIANCE", "VAR_POP", "VAR_SAMP",
	// DuckDB specific
	"LIST", "ARRAY_AGG", "STRING_AGG", "GROUP_CONCAT",
	"FIRST", "LAST", "ANY_VALUE", "ARBITRARY",
	"MEDIAN", "MODE", "QUANTILE", "QUANTILE_CONT", "QUANTILE_DISC",
	"APPROX_COUNT_DISTINCT", "HISTOGRAM", "BOOL_AND", "BOOL_OR", "PRODUCT",
}

// duckDBGenerators produce values without input columns.
var duckDBGenerators = []string{
	"CURRENT_TIMESTAMP", "CURRENT_DATE", "CURRENT_TIME",
	"NOW", "TODAY", "UUID", "GEN_RANDOM_UUID", "RANDOM",
}

var duckDBWindows = []string{
	"ROW_NUMBER", "RANK", "DENSE_RANK", "NTILE", "PERCENT_RANK", "CUME_DIST",
	"LAG", "LEAD", "FIRST_VALUE", "LAST_VALUE", "NTH_VALUE",
}

var duckDBTypes = []string{
	"BOOLEAN", "TINYINT", "SMALLINT", "INTEGER", "BIGINT", "HUGEINT", "DECIMAL",
	"REAL", "DOUBLE", "VARCHAR", "BLOB", "DATE", "TIME", "TIMESTAMP", "TIMESTAMPTZ",
	"INTERVAL", "UUID", "JSON",
}
