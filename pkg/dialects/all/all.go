// Package all registers every built-in dialect.
package all

import (
	_ "github.com/leapstack-labs/leapcrit/pkg/dialects/ansi"       // register ansi
	_ "github.com/leapstack-labs/leapcrit/pkg/dialects/databricks" // register databricks
	_ "github.com/leapstack-labs/leapcrit/pkg/dialects/duckdb"     // register duckdb
	_ "github.com/leapstack-labs/leapcrit/pkg/dialects/mysql"      // register mysql
	_ "github.com/leapstack-labs/leapcrit/pkg/dialects/postgres"   // register postgres
	_ "github.com/leapstack-labs/leapcrit/pkg/dialects/snowflake"  // register snowflake
	_ "github.com/leapstack-labs/leapcrit/pkg/dialects/sqlite"     // register sqlite
)
