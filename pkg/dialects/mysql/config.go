// Package mysql provides the MySQL SQL dialect definition.
// This package is pure Go with no database driver dependencies.
package mysql

import "github.com/leapstack-labs/leapcrit/pkg/core"

// Config is the MySQL dialect configuration.
// This is pure data - accessible by both the adapters and the renderer.
var Config = &core.DialectConfig{
	Name:          "mysql",
	DefaultSchema: "",
	Placeholder:   core.PlaceholderQuestion,
	Limits:        core.LimitOffset,
	Identifiers: core.IdentifierConfig{
		Quote:         "`",
		QuoteEnd:      "`",
		Escape:        "``",
		Normalization: core.NormCaseSensitive, // table names follow the filesystem
	},

	Features: core.Features{
		UpdateLimit:  true,
		DeleteLimit:  true,
		StraightJoin: true,
		RightJoin:    true,
		RowLocking:   true,
		UpdateAlias:  true,
	},
	// MySQL does NOT support these:
	// - RETURNING
	// - FULL OUTER JOIN
	// - ON CONFLICT (it has INSERT IGNORE / ON DUPLICATE KEY instead)
}

// mysqlAggregates are the aggregate functions of the dialect.
var mysqlAggregates = []string{
	// Standard aggregates
	"SUM", "COUNT", "AVG", "MIN", "MAX",
	"STDDEV", "STDDEV_POP", "STDDEV_SAMP",
	"VARIANCE", "VAR_POP", "VAR_SAMP",
	// MySQL specific
	"GROUP_CONCAT", "JSON_ARRAYAGG", "JSON_OBJECTAGG",
	"BIT_AND", "BIT_OR", "BIT_XOR", "STD",
}

// mysqlGenerators produce values without input columns.
var mysqlGenerators = []string{
	"CURRENT_TIMESTAMP", "CURRENT_DATE", "CURRENT_TIME",
	"NOW", "SYSDATE", "UTC_TIMESTAMP", "UUID", "RAND",
}

var mysqlWindows = []string{
	"ROW_NUMBER", "RANK", "DENSE_RANK", "NTILE", "PERCENT_RANK", "CUME_DIST",
	"LAG", "LEAD", "FIRST_VALUE", "LAST_VALUE", "NTH_VALUE",
}

var mysqlTypes = []string{
	"TINYINT", "SMALLINT", "INT", "BIGINT", "DECIMAL", "FLOAT", "DOUBLE",
	"CHAR", "VARCHAR", "TEXT", "BLOB", "DATE", "DATETIME", "TIMESTAMP", "JSON",
}
