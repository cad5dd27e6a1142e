package core

import "time"

// AdapterConfig holds configuration for connecting to a database.
type AdapterConfig struct {
	Type           string
	Path           string
	Host           string
	Port           int
	Database       string
	Username       string
	Password       string
	Schema         string
	Options        map[string]string
	ConnectTimeout time.Duration
}

// Column represents a column in a database table.
type Column struct {
	Name       string
	Type       string
	Nullable   bool
	PrimaryKey bool
	ReadOnly   bool
	Position   int
}

// TableMetadata holds metadata about a database table.
type TableMetadata struct {
	Schema  string
	Name    string
	Columns []Column
}

// Table converts introspected metadata into a catalog table.
func (m *TableMetadata) Table() *Table {
	return NewTable(m.Schema, m.Name, m.Columns)
}
