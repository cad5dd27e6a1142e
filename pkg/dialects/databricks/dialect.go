package databricks

import (
	"github.com/leapstack-labs/leapcrit/pkg/dialect"
)

func init() {
	dialect.Register(Databricks)
}

// databricksReservedWords must be quoted when used as identifiers.
var databricksReservedWords = []string{
	"all", "alter", "and", "anti", "any", "as", "authorization", "between",
	"both", "by", "case", "cast", "check", "collate", "column", "constraint",
	"create", "cross", "cube", "current", "current_date", "current_time",
	"current_timestamp", "current_user", "delete", "describe", "distinct",
	"drop", "else", "end", "escape", "except", "exists", "external", "false",
	"fetch", "filter", "for", "foreign", "from", "full", "function", "global",
	"grant", "group", "grouping", "having", "in", "inner", "insert",
	"intersect", "interval", "into", "is", "join", "lateral", "leading", "left",
	"like", "local", "natural", "no", "not", "null", "of", "on", "only", "or",
	"order", "out", "outer", "overlaps", "partition", "primary", "range",
	"references", "revoke", "right", "rollup", "row", "rows", "select",
	"semi", "session_user", "set", "some", "table", "tablesample", "then",
	"time", "to", "trailing", "true", "union", "unique", "unknown", "update",
	"user", "using", "values", "when", "where", "window", "with",
}

// Databricks is the Databricks dialect.
var Databricks = dialect.New(Config).
	Aggregates(databricksAggregates...).
	Generators(databricksGenerators...).
	Windows(databricksWindows...).
	WithReservedWords(databricksReservedWords...).
	WithDataTypes(databricksTypes...).
	Build()
