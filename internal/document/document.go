// Package document compiles YAML statement documents into criteria
// statements.
//
// A document lists named statements. Each statement describes one select,
// insert, update, delete or values statement in terms of catalog tables.
// Column operands are written as "alias.column" strings; when alias names a
// sub-query the reference is resolved through the builder's forward
// reference mechanism, so a select list may name columns of a derived table
// that is declared later in the same statement.
package document

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// File is a parsed statement document.
type File struct {
	Path       string      `yaml:"-"`
	Statements []Statement `yaml:"statements"`
}

// Statement is one named statement. Exactly one body must be set.
type Statement struct {
	Name   string      `yaml:"name"`
	Select *SelectNode `yaml:"select"`
	Insert *InsertNode `yaml:"insert"`
	Update *UpdateNode `yaml:"update"`
	Delete *DeleteNode `yaml:"delete"`
	Values *ValuesNode `yaml:"values"`

	line int
}

// SelectNode describes a SELECT.
type SelectNode struct {
	With     []CTENode   `yaml:"with"`
	Distinct bool        `yaml:"distinct"`
	Columns  []yaml.Node `yaml:"columns"`
	From     *SourceNode `yaml:"from"`
	Joins    []JoinNode  `yaml:"joins"`
	Where    []yaml.Node `yaml:"where"`
	GroupBy  []yaml.Node `yaml:"group_by"`
	Having   []yaml.Node `yaml:"having"`
	OrderBy  []yaml.Node `yaml:"order_by"`
	Limit    *int64      `yaml:"limit"`
	Offset   *int64      `yaml:"offset"`
	Lock     string      `yaml:"lock"` // update or share
}

// CTENode is a named common table expression.
type CTENode struct {
	Name   string      `yaml:"name"`
	Select *SelectNode `yaml:"select"`
	Values *ValuesNode `yaml:"values"`
}

// SourceNode is a FROM or JOIN source. Exactly one of Table, CTE, Select and
// Values must be set.
type SourceNode struct {
	Table  string      `yaml:"table"`
	CTE    string      `yaml:"cte"`
	Select *SelectNode `yaml:"select"`
	Values *ValuesNode `yaml:"values"`
	As     string      `yaml:"as"`
}

// JoinNode is a joined source with its ON predicates.
type JoinNode struct {
	SourceNode `yaml:",inline"`
	Kind       string      `yaml:"kind"` // inner (default), left, right, full, cross, straight
	On         []yaml.Node `yaml:"on"`
}

// InsertNode describes an INSERT. Rows and Select are exclusive.
type InsertNode struct {
	Table      string        `yaml:"table"`
	Columns    []string      `yaml:"columns"`
	Rows       [][]yaml.Node `yaml:"rows"`
	Select     *SelectNode   `yaml:"select"`
	OnConflict *ConflictNode `yaml:"on_conflict"`
	Returning  []string      `yaml:"returning"`
}

// ConflictNode is ON CONFLICT (keys) DO NOTHING.
type ConflictNode struct {
	Keys []string `yaml:"keys"`
}

// UpdateNode describes an UPDATE. Set is a mapping of column to operand and
// keeps document order.
type UpdateNode struct {
	Table     string      `yaml:"table"`
	As        string      `yaml:"as"`
	Set       yaml.Node   `yaml:"set"`
	Where     []yaml.Node `yaml:"where"`
	OrderBy   []yaml.Node `yaml:"order_by"`
	Limit     *int64      `yaml:"limit"`
	Returning []string    `yaml:"returning"`
	Migration bool        `yaml:"migration"`
}

// DeleteNode describes a DELETE.
type DeleteNode struct {
	Table     string      `yaml:"table"`
	As        string      `yaml:"as"`
	Where     []yaml.Node `yaml:"where"`
	OrderBy   []yaml.Node `yaml:"order_by"`
	Limit     *int64      `yaml:"limit"`
	Returning []string    `yaml:"returning"`
	Migration bool        `yaml:"migration"`
}

// ValuesNode describes a VALUES list.
type ValuesNode struct {
	Columns []string      `yaml:"columns"`
	Rows    [][]yaml.Node `yaml:"rows"`
}

// Line returns the document line the statement starts on.
func (s *Statement) Line() int { return s.line }

// Parse decodes a statement document. Unknown keys are rejected.
func Parse(r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("document: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return &f, nil
		}
		return nil, fmt.Errorf("document: %w", err)
	}

	// Second pass for statement positions.
	var raw struct {
		Statements []yaml.Node `yaml:"statements"`
	}
	if err := yaml.Unmarshal(data, &raw); err == nil {
		for i := range f.Statements {
			if i < len(raw.Statements) {
				f.Statements[i].line = raw.Statements[i].Line
			}
		}
	}
	return &f, nil
}

// LoadFile reads and parses the document at path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // caller-supplied path
	if err != nil {
		return nil, fmt.Errorf("document: %w", err)
	}
	f, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.Path = path
	return f, nil
}
