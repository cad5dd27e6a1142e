// Package sqlite provides the SQLite SQL dialect definition.
// This package is pure Go with no database driver dependencies.
package sqlite

import "github.com/leapstack-labs/leapcrit/pkg/core"

// Config is the SQLite dialect configuration.
// This is pure data - accessible by both the adapters and the renderer.
var Config = &core.DialectConfig{
	Name:          "sqlite",
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
		Returning:   true, // 3.35+
		FullJoin:    true, // 3.39+
		RightJoin:   true, // 3.39+
		OnConflict:  true,
		UpdateAlias: true,
	},
	// SQLite does NOT support these:
	// - FOR UPDATE / FOR SHARE
	// - UPDATE/DELETE ... LIMIT without SQLITE_ENABLE_UPDATE_DELETE_LIMIT
}

// sqliteAggregates are the aggregate functions of the dialect.
var sqliteAggregates = []string{
	// Standard aggregates
	"SUM", "COUNT", "AVG", "MIN", "MAX", "TOTAL",
	"GROUP_CONCAT", "STRING_AGG", "JSON_GROUP_ARRAY", "JSON_GROUP_OBJECT",
}

// sqliteGenerators produce values without input columns.
var sqliteGenerators = []string{
	"CURRENT_TIMESTAMP", "CURRENT_DATE", "CURRENT_TIME",
	"RANDOM", "RANDOMBLOB", "CHANGES", "LAST_INSERT_ROWID",
}

var sqliteWindows = []string{
	"ROW_NUMBER", "RANK", "DENSE_RANK", "NTILE", "PERCENT_RANK", "CUME_DIST",
	"LAG", "LEAD", "FIRST_VALUE", "LAST_VALUE", "NTH_VALUE",
}

var sqliteTypes = []string{
	"INTEGER", "REAL", "TEXT", "BLOB", "NUMERIC",
}
