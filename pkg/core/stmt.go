package core

import "slices"

// ---------- Clause Elements ----------

// JoinKind tags a table block with how it joins the blocks before it.
type JoinKind int

const (
	// JoinNone marks a FROM source that is not joined (the first source, or a comma list entry).
	JoinNone JoinKind = iota
	// JoinInner is [INNER] JOIN.
	JoinInner
	// JoinLeft is LEFT [OUTER] JOIN.
	JoinLeft
	// JoinRight is RIGHT [OUTER] JOIN.
	JoinRight
	// JoinFull is FULL [OUTER] JOIN.
	JoinFull
	// JoinCross is CROSS JOIN and takes no ON clause.
	JoinCross
	// JoinStraight is MySQL's STRAIGHT_JOIN.
	JoinStraight
)

// String returns the SQL keyword sequence for the join kind.
func (k JoinKind) String() string {
	switch k {
	case JoinNone:
		return ""
	case JoinInner:
		return "JOIN"
	case JoinLeft:
		return "LEFT JOIN"
	case JoinRight:
		return "RIGHT JOIN"
	case JoinFull:
		return "FULL JOIN"
	case JoinCross:
		return "CROSS JOIN"
	case JoinStraight:
		return "STRAIGHT_JOIN"
	default:
		return "UNKNOWN JOIN"
	}
}

// RequiresOn reports whether a block of this kind needs at least one ON predicate.
func (k JoinKind) RequiresOn() bool {
	return k != JoinNone && k != JoinCross
}

// TableBlock is one source in a FROM clause: a table, a sub-query, or a
// reference to a common table expression.
type TableBlock struct {
	Kind  JoinKind
	Table *Table
	Sub   *SubQuery
	CTE   string // name of a WITH entry; Sub holds its definition
	Alias string
	On    []Expr
}

// Name returns the alias the block is visible under.
func (b TableBlock) Name() string {
	switch {
	case b.Alias != "":
		return b.Alias
	case b.CTE != "":
		return b.CTE
	case b.Table != nil:
		return b.Table.Name
	}
	return ""
}

func (b TableBlock) clone() TableBlock {
	b.On = slices.Clone(b.On)
	return b
}

// NullsOrder controls NULLS FIRST / NULLS LAST in a sort key.
type NullsOrder int

// Null ordering options.
const (
	NullsDefault NullsOrder = iota
	NullsFirst
	NullsLast
)

// SortItem is one ORDER BY key.
type SortItem struct {
	Expr  Expr
	Desc  bool
	Nulls NullsOrder
}

// NullsFirst returns a copy of s with NULLS FIRST.
func (s SortItem) NullsFirst() SortItem {
	s.Nulls = NullsFirst
	return s
}

// NullsLast returns a copy of s with NULLS LAST.
func (s SortItem) NullsLast() SortItem {
	s.Nulls = NullsLast
	return s
}

// Limit holds LIMIT / OFFSET bounds. A zero RowCount with HasRowCount false
// means only an offset was given.
type Limit struct {
	RowCount    int64
	HasRowCount bool
	Offset      int64
}

// LockMode is the row-locking clause of a SELECT.
type LockMode int

// Row-locking clauses.
const (
	LockNone LockMode = iota
	LockForUpdate
	LockForShare
)

// Assignment is one SET column = value pair.
type Assignment struct {
	Field *Field
	Value Expr
}

// OnConflict describes INSERT ... ON CONFLICT (keys) DO NOTHING.
type OnConflict struct {
	Keys []*Field
}

// CTE is one entry of a WITH clause.
type CTE struct {
	Name  string
	Query *SubQuery
}

// ---------- Sub-queries ----------

// OutputColumn is a column exposed by a sub-query to its enclosing statement.
type OutputColumn struct {
	Name     string
	Type     DataType
	Nullable bool
	Expr     Expr
}

// SubQuery is a finalized SELECT or VALUES statement bound to an alias.
type SubQuery struct {
	Alias string
	Stmt  Stmt
}

// Columns returns the columns the sub-query exposes, in select-list order.
// Unlabeled computed expressions are not exposed.
func (s *SubQuery) Columns() []OutputColumn {
	switch st := s.Stmt.(type) {
	case *SelectStmt:
		return st.OutputColumns()
	case *ValuesStmt:
		return st.OutputColumns()
	}
	return nil
}

// Column returns the exposed column with the given name.
func (s *SubQuery) Column(name string) (OutputColumn, bool) {
	for _, c := range s.Columns() {
		if c.Name == name {
			return c, true
		}
	}
	return OutputColumn{}, false
}

// ---------- Statements ----------

// SelectParts carries the clause lists used to build a SelectStmt.
type SelectParts struct {
	With       []CTE
	Distinct   bool
	Selections []Expr
	From       []TableBlock
	Where      []Expr
	GroupBy    []Expr
	Having     []Expr
	OrderBy    []SortItem
	Limit      *Limit
	Lock       LockMode
}

// SelectStmt is an immutable SELECT statement.
type SelectStmt struct {
	p SelectParts
}

func (*SelectStmt) stmtNode() {}

// Kind implements Stmt.
func (*SelectStmt) Kind() StmtKind { return StmtSelect }

func cloneBlocks(in []TableBlock) []TableBlock {
	if in == nil {
		return nil
	}
	out := make([]TableBlock, len(in))
	for i, b := range in {
		out[i] = b.clone()
	}
	return out
}

func cloneLimit(l *Limit) *Limit {
	if l == nil {
		return nil
	}
	c := *l
	return &c
}

// NewSelect copies parts into an immutable statement.
func NewSelect(parts SelectParts) *SelectStmt {
	return &SelectStmt{p: SelectParts{
		With:       slices.Clone(parts.With),
		Distinct:   parts.Distinct,
		Selections: slices.Clone(parts.Selections),
		From:       cloneBlocks(parts.From),
		Where:      slices.Clone(parts.Where),
		GroupBy:    slices.Clone(parts.GroupBy),
		Having:     slices.Clone(parts.Having),
		OrderBy:    slices.Clone(parts.OrderBy),
		Limit:      cloneLimit(parts.Limit),
		Lock:       parts.Lock,
	}}
}

// With returns the common table expressions.
func (s *SelectStmt) With() []CTE { return slices.Clone(s.p.With) }

// Distinct reports SELECT DISTINCT.
func (s *SelectStmt) Distinct() bool { return s.p.Distinct }

// Selections returns the select list. Empty means SELECT *.
func (s *SelectStmt) Selections() []Expr { return slices.Clone(s.p.Selections) }

// From returns the table blocks in declaration order.
func (s *SelectStmt) From() []TableBlock { return cloneBlocks(s.p.From) }

// Where returns the predicates; they are joined with AND.
func (s *SelectStmt) Where() []Expr { return slices.Clone(s.p.Where) }

// GroupBy returns the grouping keys.
func (s *SelectStmt) GroupBy() []Expr { return slices.Clone(s.p.GroupBy) }

// Having returns the HAVING predicates; they are joined with AND.
func (s *SelectStmt) Having() []Expr { return slices.Clone(s.p.Having) }

// OrderBy returns the sort keys.
func (s *SelectStmt) OrderBy() []SortItem { return slices.Clone(s.p.OrderBy) }

// Limit returns the limit bounds, or nil.
func (s *SelectStmt) Limit() *Limit { return cloneLimit(s.p.Limit) }

// Lock returns the row-locking mode.
func (s *SelectStmt) Lock() LockMode { return s.p.Lock }

// OutputColumns returns the named columns the statement produces.
func (s *SelectStmt) OutputColumns() []OutputColumn {
	var cols []OutputColumn
	if len(s.p.Selections) == 0 {
		return s.starColumns("")
	}
	for _, e := range s.p.Selections {
		if star, ok := e.(*StarExpr); ok {
			cols = append(cols, s.starColumns(star.Alias)...)
			continue
		}
		name := OutputName(e)
		if name == "" {
			continue
		}
		t, nullable := TypeOf(e)
		cols = append(cols, OutputColumn{Name: name, Type: t, Nullable: nullable, Expr: e})
	}
	return cols
}

func (s *SelectStmt) starColumns(alias string) []OutputColumn {
	var cols []OutputColumn
	for _, b := range s.p.From {
		name := b.Name()
		if alias != "" && name != alias {
			continue
		}
		nullableSide := b.Kind == JoinLeft || b.Kind == JoinFull
		switch {
		case b.Table != nil:
			for _, f := range b.Table.Fields {
				cols = append(cols, OutputColumn{
					Name:     f.Name,
					Type:     f.Type,
					Nullable: f.Nullable || nullableSide,
					Expr:     &QualifiedField{Alias: name, Field: f},
				})
			}
		case b.Sub != nil:
			for _, c := range b.Sub.Columns() {
				ref := NewDerivedField(name, c.Name, KindUnknown)
				ref.Bind(c.Expr, c.Type, c.Nullable)
				cols = append(cols, OutputColumn{
					Name:     c.Name,
					Type:     c.Type,
					Nullable: c.Nullable || nullableSide,
					Expr:     ref,
				})
			}
		}
	}
	return cols
}

// InsertParts carries the clause lists used to build an InsertStmt.
type InsertParts struct {
	Table      *Table
	Columns    []*Field
	Rows       [][]Expr
	Query      *SelectStmt
	OnConflict *OnConflict
	Returning  []*Field
}

// InsertStmt is an immutable INSERT statement.
type InsertStmt struct {
	p InsertParts
}

func (*InsertStmt) stmtNode() {}

// Kind implements Stmt.
func (*InsertStmt) Kind() StmtKind { return StmtInsert }

func cloneRows(rows [][]Expr) [][]Expr {
	if rows == nil {
		return nil
	}
	out := make([][]Expr, len(rows))
	for i, r := range rows {
		out[i] = slices.Clone(r)
	}
	return out
}

// NewInsert copies parts into an immutable statement.
func NewInsert(parts InsertParts) *InsertStmt {
	p := InsertParts{
		Table:     parts.Table,
		Columns:   slices.Clone(parts.Columns),
		Rows:      cloneRows(parts.Rows),
		Query:     parts.Query,
		Returning: slices.Clone(parts.Returning),
	}
	if parts.OnConflict != nil {
		p.OnConflict = &OnConflict{Keys: slices.Clone(parts.OnConflict.Keys)}
	}
	return &InsertStmt{p: p}
}

// Table returns the target table.
func (s *InsertStmt) Table() *Table { return s.p.Table }

// Columns returns the explicit column list.
func (s *InsertStmt) Columns() []*Field { return slices.Clone(s.p.Columns) }

// Rows returns the VALUES rows.
func (s *InsertStmt) Rows() [][]Expr { return cloneRows(s.p.Rows) }

// Query returns the INSERT ... SELECT source, or nil.
func (s *InsertStmt) Query() *SelectStmt { return s.p.Query }

// OnConflict returns the conflict clause, or nil.
func (s *InsertStmt) OnConflict() *OnConflict {
	if s.p.OnConflict == nil {
		return nil
	}
	return &OnConflict{Keys: slices.Clone(s.p.OnConflict.Keys)}
}

// Returning returns the RETURNING fields.
func (s *InsertStmt) Returning() []*Field { return slices.Clone(s.p.Returning) }

// UpdateParts carries the clause lists used to build an UpdateStmt.
type UpdateParts struct {
	Table     *Table
	Alias     string
	Set       []Assignment
	Where     []Expr
	OrderBy   []SortItem
	Limit     *Limit
	Returning []*Field
	Migration bool
}

// UpdateStmt is an immutable UPDATE statement.
type UpdateStmt struct {
	p UpdateParts
}

func (*UpdateStmt) stmtNode() {}

// Kind implements Stmt.
func (*UpdateStmt) Kind() StmtKind { return StmtUpdate }

// NewUpdate copies parts into an immutable statement.
func NewUpdate(parts UpdateParts) *UpdateStmt {
	return &UpdateStmt{p: UpdateParts{
		Table:     parts.Table,
		Alias:     parts.Alias,
		Set:       slices.Clone(parts.Set),
		Where:     slices.Clone(parts.Where),
		OrderBy:   slices.Clone(parts.OrderBy),
		Limit:     cloneLimit(parts.Limit),
		Returning: slices.Clone(parts.Returning),
		Migration: parts.Migration,
	}}
}

// Table returns the target table.
func (s *UpdateStmt) Table() *Table { return s.p.Table }

// Alias returns the target table alias.
func (s *UpdateStmt) Alias() string { return s.p.Alias }

// Set returns the assignments in call order.
func (s *UpdateStmt) Set() []Assignment { return slices.Clone(s.p.Set) }

// Where returns the predicates.
func (s *UpdateStmt) Where() []Expr { return slices.Clone(s.p.Where) }

// OrderBy returns the sort keys.
func (s *UpdateStmt) OrderBy() []SortItem { return slices.Clone(s.p.OrderBy) }

// Limit returns the limit bounds, or nil.
func (s *UpdateStmt) Limit() *Limit { return cloneLimit(s.p.Limit) }

// Returning returns the RETURNING fields.
func (s *UpdateStmt) Returning() []*Field { return slices.Clone(s.p.Returning) }

// Migration reports whether the statement intentionally has no WHERE clause.
func (s *UpdateStmt) Migration() bool { return s.p.Migration }

// DeleteParts carries the clause lists used to build a DeleteStmt.
type DeleteParts struct {
	Table     *Table
	Alias     string
	Where     []Expr
	OrderBy   []SortItem
	Limit     *Limit
	Returning []*Field
	Migration bool
}

// DeleteStmt is an immutable DELETE statement.
type DeleteStmt struct {
	p DeleteParts
}

func (*DeleteStmt) stmtNode() {}

// Kind implements Stmt.
func (*DeleteStmt) Kind() StmtKind { return StmtDelete }

// NewDelete copies parts into an immutable statement.
func NewDelete(parts DeleteParts) *DeleteStmt {
	return &DeleteStmt{p: DeleteParts{
		Table:     parts.Table,
		Alias:     parts.Alias,
		Where:     slices.Clone(parts.Where),
		OrderBy:   slices.Clone(parts.OrderBy),
		Limit:     cloneLimit(parts.Limit),
		Returning: slices.Clone(parts.Returning),
		Migration: parts.Migration,
	}}
}

// Table returns the target table.
func (s *DeleteStmt) Table() *Table { return s.p.Table }

// Alias returns the target table alias.
func (s *DeleteStmt) Alias() string { return s.p.Alias }

// Where returns the predicates.
func (s *DeleteStmt) Where() []Expr { return slices.Clone(s.p.Where) }

// OrderBy returns the sort keys.
func (s *DeleteStmt) OrderBy() []SortItem { return slices.Clone(s.p.OrderBy) }

// Limit returns the limit bounds, or nil.
func (s *DeleteStmt) Limit() *Limit { return cloneLimit(s.p.Limit) }

// Returning returns the RETURNING fields.
func (s *DeleteStmt) Returning() []*Field { return slices.Clone(s.p.Returning) }

// Migration reports whether the statement intentionally has no WHERE clause.
func (s *DeleteStmt) Migration() bool { return s.p.Migration }

// ValuesStmt is an immutable VALUES list, usable on its own or as a derived table.
type ValuesStmt struct {
	columns []string
	rows    [][]Expr
}

func (*ValuesStmt) stmtNode() {}

// Kind implements Stmt.
func (*ValuesStmt) Kind() StmtKind { return StmtValues }

// NewValues copies columns and rows into an immutable statement.
func NewValues(columns []string, rows [][]Expr) *ValuesStmt {
	return &ValuesStmt{columns: slices.Clone(columns), rows: cloneRows(rows)}
}

// ColumnNames returns the derived column names, if any.
func (s *ValuesStmt) ColumnNames() []string { return slices.Clone(s.columns) }

// Rows returns the rows.
func (s *ValuesStmt) Rows() [][]Expr { return cloneRows(s.rows) }

// OutputColumns returns one column per name, typed from the first row and
// nullable when any row holds NULL.
func (s *ValuesStmt) OutputColumns() []OutputColumn {
	cols := make([]OutputColumn, 0, len(s.columns))
	for i, name := range s.columns {
		col := OutputColumn{Name: name}
		for r, row := range s.rows {
			if i >= len(row) {
				continue
			}
			t, nullable := TypeOf(row[i])
			if r == 0 {
				col.Type = t
				col.Expr = row[i]
			}
			col.Nullable = col.Nullable || nullable
		}
		cols = append(cols, col)
	}
	return cols
}
