package ansi

import (
	"github.com/leapstack-labs/leapcrit/pkg/dialect"
)

func init() {
	dialect.Register(ANSI)
}

// ansiReservedWords must be quoted when used as identifiers.
var ansiReservedWords = []string{
	"all", "and", "any", "as", "asc", "between", "by", "case", "cast", "check",
	"column", "constraint", "create", "cross", "current_date", "current_time",
	"current_timestamp", "default", "delete", "desc", "distinct", "drop", "else",
	"end", "except", "exists", "false", "fetch", "for", "foreign", "from", "full",
	"grant", "group", "having", "in", "inner", "insert", "intersect", "into", "is",
	"join", "left", "like", "natural", "not", "null", "offset", "on", "or", "order",
	"outer", "primary", "references", "right", "rows", "select", "set", "some",
	"table", "then", "to", "true", "union", "unique", "update", "user", "using",
	"values", "when", "where", "with",
}

// ANSI is the ANSI dialect.
var ANSI = dialect.New(Config).
	Aggregates(ansiAggregates...).
	Generators(ansiGenerators...).
	Windows(ansiWindows...).
	WithReservedWords(ansiReservedWords...).
	WithDataTypes(ansiTypes...).
	Build()
