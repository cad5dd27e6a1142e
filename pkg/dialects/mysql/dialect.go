package mysql

import (
	"github.com/leapstack-labs/leapcrit/pkg/dialect"
)

func init() {
	dialect.Register(MySQL)
}

// mysqlReservedWords must be quoted when used as identifiers.
var mysqlReservedWords = []string{
	"accessible", "add", "all", "alter", "analyze", "and", "as", "asc", "before",
	"between", "both", "by", "call", "cascade", "case", "change", "char", "check",
	"collate", "column", "condition", "constraint", "convert", "create", "cross",
	"current_date", "current_time", "current_timestamp", "current_user", "database",
	"default", "delete", "desc", "describe", "distinct", "div", "drop", "dual",
	"else", "elseif", "exists", "explain", "false", "fetch", "for", "force",
	"foreign", "from", "fulltext", "grant", "group", "having", "if", "ignore",
	"in", "index", "inner", "insert", "interval", "into", "is", "join", "key",
	"keys", "kill", "leading", "left", "like", "limit", "lines", "load", "lock",
	"match", "mod", "natural", "not", "null", "on", "optimize", "option", "or",
	"order", "outer", "partition", "primary", "procedure", "range", "read",
	"references", "regexp", "rename", "replace", "require", "restrict", "right",
	"rlike", "schema", "select", "set", "show", "spatial", "sql", "straight_join",
	"table", "then", "to", "trailing", "trigger", "true", "union", "unique",
	"unlock", "update", "usage", "use", "using", "values", "when", "where",
	"while", "with", "write", "xor",
}

// MySQL is the MySQL dialect.
var MySQL = dialect.New(Config).
	Aggregates(mysqlAggregates...).
	Generators(mysqlGenerators...).
	Windows(mysqlWindows...).
	WithReservedWords(mysqlReservedWords...).
	WithDataTypes(mysqlTypes...).
	Build()
