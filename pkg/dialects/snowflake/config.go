// Package snowflake provides the Snowflake SQL dialect definition.
// This package is pure Go with no database driver dependencies.
package snowflake

import "github.com/leapstack-labs/leapcrit/pkg/core"

// Config is the Snowflake dialect configuration.
// This is pure data - accessible by both the adapters and the renderer.
var Config = &core.DialectConfig{
	Name:          "snowflake",
	DefaultSchema: "PUBLIC",
	Placeholder:   core.PlaceholderColon,
	Limits:        core.LimitOffset,
	Identifiers: core.IdentifierConfig{
		Quote:         `"`,
		QuoteEnd:      `"`,
		Escape:        `""`,
		Normalization: core.NormUppercase, // Snowflake normalizes to uppercase
	},

	Features: core.Features{
		FullJoin:  true,
		RightJoin: true,
	},
	// Snowflake does NOT support these:
	// - RETURNING
	// - ON CONFLICT (it uses MERGE)
	// - FOR UPDATE / FOR SHARE
}

// snowflakeAggregates are the aggregate functions of the dialect.
var snowflakeAggregates = []string{
	// Standard aggregates
	"SUM", "COUNT", "AVG", "MIN", "MAX",
	"STDDEV", "STDDEV_POP", "STDDEV_SAMP",
	"VARIANCE", "VAR_POP", "VAR_SAMP",
	// Snowflake specific
	"ARRAY_AGG", "LISTAGG", "OBJECT_AGG",
	"ANY_VALUE", "MEDIAN", "MODE", "APPROX_COUNT_DISTINCT", "HLL",
	"BOOLAND_AGG", "BOOLOR_AGG", "COUNT_IF",
}

// snowflakeGenerators produce values without input columns.
var snowflakeGenerators = []string{
	"CURRENT_TIMESTAMP", "CURRENT_DATE", "CURRENT_TIME",
	"SYSDATE", "GETDATE", "UUID_STRING", "RANDOM", "SEQ4", "SEQ8",
}

var snowflakeWindows = []string{
	"ROW_NUMBER", "RANK", "DENSE_RANK", "NTILE", "PERCENT_RANK", "CUME_DIST",
	"LAG", "LEAD", "FIRST_VALUE", "LAST_VALUE", "NTH_VALUE",
}

var snowflakeTypes = []string{
	"NUMBER", "DECIMAL", "INTEGER", "BIGINT", "FLOAT", "DOUBLE", "VARCHAR", "STRING",
	"BINARY", "BOOLEAN", "DATE", "TIME", "TIMESTAMP_NTZ", "TIMESTAMP_TZ",
	"VARIANT", "OBJECT", "ARRAY",
}
