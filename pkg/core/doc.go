// Package core defines the shared language of the leapcrit system.
//
// This package contains:
//   - Table and column metadata (Table, Field, DataType)
//   - The expression IR (Expr and its node types)
//   - Immutable statement values (SelectStmt, InsertStmt, UpdateStmt, DeleteStmt, ValuesStmt)
//   - Dialect configuration data (DialectConfig)
//   - Adapter configuration data (AdapterConfig, Column, TableMetadata)
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
