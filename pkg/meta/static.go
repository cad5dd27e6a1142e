package meta

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/leapcrit/pkg/core"
)

// SchemaFile is the YAML layout of a static catalog.
type SchemaFile struct {
	Tables []TableSpec `yaml:"tables"`
}

// TableSpec describes one table in a schema file.
type TableSpec struct {
	Name    string       `yaml:"name"`
	Schema  string       `yaml:"schema"`
	Columns []ColumnSpec `yaml:"columns"`
}

// ColumnSpec describes one column in a schema file. Columns are updatable
// unless updatable: false is given.
type ColumnSpec struct {
	Name       string `yaml:"name"`
	Type       string `yaml:"type"`
	Nullable   bool   `yaml:"nullable"`
	PrimaryKey bool   `yaml:"primary_key"`
	Updatable  *bool  `yaml:"updatable"`
}

// SchemaError reports an invalid schema file entry.
type SchemaError struct {
	Table  string
	Column string
	Msg    string
}

func (e *SchemaError) Error() string {
	switch {
	case e.Column != "":
		return fmt.Sprintf("schema: table %s column %s: %s", e.Table, e.Column, e.Msg)
	case e.Table != "":
		return fmt.Sprintf("schema: table %s: %s", e.Table, e.Msg)
	}
	return "schema: " + e.Msg
}

// ParseSchema decodes a YAML schema into a Catalog.
func ParseSchema(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f SchemaFile
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return NewCatalog(), nil
		}
		return nil, fmt.Errorf("schema: %w", err)
	}

	seen := make(map[string]bool, len(f.Tables))
	tables := make([]*core.Table, 0, len(f.Tables))
	for _, ts := range f.Tables {
		t, err := ts.table()
		if err != nil {
			return nil, err
		}
		if seen[t.QualifiedName()] {
			return nil, &SchemaError{Table: t.QualifiedName(), Msg: "declared twice"}
		}
		seen[t.QualifiedName()] = true
		tables = append(tables, t)
	}
	return NewCatalog(tables...), nil
}

func (ts TableSpec) table() (*core.Table, error) {
	if ts.Name == "" {
		return nil, &SchemaError{Msg: "table without a name"}
	}
	if len(ts.Columns) == 0 {
		return nil, &SchemaError{Table: ts.Name, Msg: "no columns"}
	}
	cols := make([]core.Column, 0, len(ts.Columns))
	names := make(map[string]bool, len(ts.Columns))
	for i, cs := range ts.Columns {
		switch {
		case cs.Name == "":
			return nil, &SchemaError{Table: ts.Name, Msg: fmt.Sprintf("column %d has no name", i+1)}
		case cs.Type == "":
			return nil, &SchemaError{Table: ts.Name, Column: cs.Name, Msg: "missing type"}
		case names[cs.Name]:
			return nil, &SchemaError{Table: ts.Name, Column: cs.Name, Msg: "declared twice"}
		}
		names[cs.Name] = true
		cols = append(cols, core.Column{
			Name:       cs.Name,
			Type:       cs.Type,
			Nullable:   cs.Nullable,
			PrimaryKey: cs.PrimaryKey,
			ReadOnly:   cs.Updatable != nil && !*cs.Updatable,
			Position:   i + 1,
		})
	}
	return core.NewTable(ts.Schema, ts.Name, cols), nil
}

// LoadSchemaFile reads a YAML schema file.
func LoadSchemaFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path) //nolint:gosec // caller-supplied path
	if err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	return ParseSchema(bytes.NewReader(data))
}
