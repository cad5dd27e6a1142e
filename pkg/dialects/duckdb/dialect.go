package duckdb

import (
	"github.com/leapstack-labs/leapcrit/pkg/dialect"
)

func init() {
	dialect.Register(DuckDB)
}

// duckDBReservedWords must be quoted when used as identifiers.
var duckDBReservedWords = []string{
	"all", "analyse", "analyze", "and", "any", "array", "as", "asc", "asymmetric",
	"both", "case", "cast", "check", "collate", "column", "constraint", "create",
	"default", "deferrable", "desc", "describe", "distinct", "do", "else", "end",
	"except", "false", "fetch", "for", "foreign", "from", "grant", "group",
	"having", "in", "initially", "intersect", "into", "lateral", "leading",
	"limit", "not", "null", "offset", "on", "only", "or", "order", "pivot",
	"pivot_longer", "pivot_wider", "placing", "primary", "qualify",
	"references", "returning", "select", "show", "some", "summarize",
	"symmetric", "table", "then", "to", "trailing", "true", "union", "unique",
	"unpivot", "using", "variadic", "when", "where", "window", "with",
}

// DuckDB is the DuckDB dialect.
var DuckDB = dialect.New(Config).
	Aggregates(duckDBAggregates...).
	Generators(duckDBGenerators...).
	Windows(duckDBWindows...).
	WithReservedWords(duckDBReservedWords...).
	WithDataTypes(duckDBTypes...).
	Build()
