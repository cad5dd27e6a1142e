// Package databricks provides the Databricks SQL dialect definition.
// This package is pure Go with no database driver dependencies.
package databricks

import "github.com/leapstack-labs/leapcrit/pkg/core"

// Config is the Databricks dialect configuration.
// This is pure data - accessible by both the adapters and the renderer.
var Config = &core.DialectConfig{
	Name:          "databricks",
	DefaultSchema: "default",
	Placeholder:   core.PlaceholderNamed,
	Limits:        core.LimitOffset,
	Identifiers: core.IdentifierConfig{
		Quote:         "`",
		QuoteEnd:      "`",
		Escape:        "``",
		Normalization: core.NormCaseInsensitive,
	},

	Features: core.Features{
		FullJoin:  true,
		RightJoin: true,
	},
	// Databricks does NOT support these:
	// - RETURNING clause
	// - ON CONFLICT (it uses MERGE)
	// - FOR UPDATE / FOR SHARE
}

// databricksAggregates are the aggregate functions of the dialect.
var databricksAggregates = []string{
	// Standard aggregates
	"SUM", "COUNT", "AVG", "MIN", "MAX",
	"STDDEV", "STDDEV_POP", "STDDEV_SAMP",
	"VARIANCE", "VAR_POP", "VAR_SAMP",
	// Databricks specific
	"COLLECT_LIST", "COLLECT_SET", "ARRAY_AGG",
	"ANY_VALUE", "FIRST", "LAST", "MEDIAN", "MODE",
	"APPROX_COUNT_DISTINCT", "PERCENTILE", "COUNT_IF", "BOOL_AND", "BOOL_OR",
}

// databricksGenerators produce values without input columns.
var databricksGenerators = []string{
	"CURRENT_TIMESTAMP", "CURRENT_DATE", "NOW", "UUID", "RAND", "RANDN",
}

var databricksWindows = []string{
	"ROW_NUMBER", "RANK", "DENSE_RANK", "NTILE", "PERCENT_RANK", "CUME_DIST",
	"LAG", "LEAD", "FIRST_VALUE", "LAST_VALUE", "NTH_VALUE",
}

var databricksTypes = []string{
	"BOOLEAN", "TINYINT", "SMALLINT", "INT", "BIGINT", "DECIMAL", "FLOAT", "DOUBLE",
	"STRING", "BINARY", "DATE", "TIMESTAMP", "TIMESTAMP_NTZ", "ARRAY", "MAP", "STRUCT",
}
