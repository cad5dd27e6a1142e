// Package adapter provides the database adapter contract used to introspect
// catalogs into core tables.
//
// Adapters only read metadata; statements are never executed through them.
// Concrete adapter implementations are in pkg/adapters/ subdirectories.
package adapter

import (
	"context"
	"errors"

	"github.com/leapstack-labs/leapcrit/pkg/core"
	"github.com/leapstack-labs/leapcrit/pkg/dialect"
)

// Type aliases for the configuration and metadata types defined in pkg/core.
type (
	// Config is an alias for core.AdapterConfig.
	Config = core.AdapterConfig

	// Column is an alias for core.Column.
	Column = core.Column

	// Metadata is an alias for core.TableMetadata.
	Metadata = core.TableMetadata
)

// ErrNotConnected is returned by introspection calls made before Connect.
var ErrNotConnected = errors.New("database connection not established")

// TableNotFoundError is returned when the catalog has no columns for a table.
type TableNotFoundError struct {
	Schema string
	Table  string
}

func (e *TableNotFoundError) Error() string {
	if e.Schema == "" {
		return "table " + e.Table + " not found"
	}
	return "table " + e.Schema + "." + e.Table + " not found"
}

// Adapter defines the interface that all database adapters must implement.
type Adapter interface {
	// Connect establishes a connection to the database using the provided config.
	Connect(ctx context.Context, cfg Config) error

	// Close closes the database connection and releases resources.
	Close() error

	// TableNames lists the base tables of the configured schema.
	TableNames(ctx context.Context) ([]string, error)

	// TableMetadata retrieves the columns of a table. The name may be
	// schema-qualified; otherwise the configured or dialect default schema
	// is used.
	TableMetadata(ctx context.Context, table string) (*Metadata, error)

	// Dialect returns the SQL dialect statements for this database render with.
	Dialect() *dialect.Dialect
}
