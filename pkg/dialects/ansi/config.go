// Package ansi provides the base ANSI SQL dialect.
//
// It is the conservative default: every construct it accepts is standard
// SQL, and row limits are written with OFFSET ... FETCH.
package ansi

import "github.com/leapstack-labs/leapcrit/pkg/core"

// Config is the ANSI dialect configuration.
// This is pure data - accessible by both the adapters and the renderer.
var Config = &core.DialectConfig{
	Name:          "ansi",
	DefaultSchema: "",
	Placeholder:   core.PlaceholderQuestion,
	Limits:        core.LimitFetch,
	Identifiers: core.IdentifierConfig{
		Quote:         `"`,
		QuoteEnd:      `"`,
		Escape:        `""`,
		Normalization: core.NormCaseInsensitive,
	},

	Features: core.Features{
		FullJoin:   true,
		RightJoin:  true,
		RowLocking: true,
	},
}

// ansiAggregates are the aggregate functions of the dialect.
var ansiAggregates = []string{
	// Standard aggregates
	"SUM", "COUNT", "AVG", "MIN", "MAX",
	"STDDEV", "STDDEV_POP", "STDDEV_SAMP",
	"VARIANCE", "VAR_POP", "VAR_SAMP",
}

// ansiGenerators produce values without input columns.
var ansiGenerators = []string{
	"CURRENT_TIMESTAMP", "CURRENT_DATE", "CURRENT_TIME", "LOCALTIME", "LOCALTIMESTAMP",
}

var ansiWindows = []string{
	"ROW_NUMBER", "RANK", "DENSE_RANK", "NTILE", "PERCENT_RANK", "CUME_DIST",
	"LAG", "LEAD", "FIRST_VALUE", "LAST_VALUE", "NTH_VALUE",
}

var ansiTypes = []string{
	"BOOLEAN", "SMALLINT", "INTEGER", "BIGINT", "DECIMAL", "NUMERIC", "REAL", "DOUBLE PRECISION",
	"CHAR", "VARCHAR", "DATE", "TIME", "TIMESTAMP",
}
