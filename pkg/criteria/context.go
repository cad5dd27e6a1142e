package criteria

import (
	"github.com/leapstack-labs/leapcrit/pkg/core"
)

// qualKey identifies a column reached through an alias.
type qualKey struct {
	alias  string
	column string
}

func (k qualKey) String() string { return k.alias + "." + k.column }

// Context tracks alias bookkeeping and forward references for one statement.
// Sub-queries get their own Context, pushed onto the session stack while
// they are built.
type Context struct {
	owner any

	tables     map[string]*core.Table    // table alias -> table
	subQueries map[string]*core.SubQuery // sub-query alias -> sub-query
	qualified  map[qualKey]*core.QualifiedField
	refs       map[qualKey]*core.DerivedField
	pending    []*core.DerivedField // unresolved refs in creation order
	ended      bool
}

// NewContext creates an empty context for the given owner.
func NewContext(owner any) *Context {
	return &Context{
		owner:      owner,
		tables:     make(map[string]*core.Table),
		subQueries: make(map[string]*core.SubQuery),
		qualified:  make(map[qualKey]*core.QualifiedField),
		refs:       make(map[qualKey]*core.DerivedField),
	}
}

// Owner returns the builder the context belongs to.
func (c *Context) Owner() any { return c.owner }

// RegisterTable binds alias to a table. Binding the same table again is a no-op.
func (c *Context) RegisterTable(alias string, t *core.Table) error {
	const op = "register table"
	if c.ended {
		return wrap(op, ErrCleared)
	}
	if _, ok := c.subQueries[alias]; ok {
		return wrap(op, &AliasConflictError{Alias: alias, Reason: "is already bound to a sub-query"})
	}
	if prev, ok := c.tables[alias]; ok {
		if prev != t {
			return wrap(op, &AliasConflictError{Alias: alias, Reason: "is already bound to table " + prev.QualifiedName()})
		}
		return nil
	}
	// columns already qualified through this alias must belong to t
	for key, qf := range c.qualified {
		if key.alias == alias && qf.Field.Table != t {
			return wrap(op, &AliasConflictError{Alias: alias, Column: key.column, Reason: "was used for table " + qf.Field.Table.QualifiedName()})
		}
	}
	c.tables[alias] = t
	return nil
}

// RegisterSubQuery binds alias to a finalized sub-query and resolves every
// pending forward reference to it.
//
// Registering the same *SubQuery twice is a no-op. A different instance,
// even an equal one, is a DuplicateAliasError.
func (c *Context) RegisterSubQuery(alias string, sq *core.SubQuery) error {
	const op = "register sub-query"
	if c.ended {
		return wrap(op, ErrCleared)
	}
	if _, ok := c.tables[alias]; ok {
		return wrap(op, &AliasConflictError{Alias: alias, Reason: "is already bound to a table"})
	}
	if prev, ok := c.subQueries[alias]; ok {
		if prev != sq {
			return wrap(op, &DuplicateAliasError{Alias: alias})
		}
		return nil
	}
	c.subQueries[alias] = sq
	return wrap(op, c.resolve(alias, sq))
}

// Ref returns a reference to column of the sub-query bound to alias.
//
// When alias is already registered the reference is resolved immediately.
// Otherwise a placeholder is returned and resolved when the sub-query is
// registered. Repeated calls for the same alias and column share one
// instance. An expected kind, when given, is checked at resolution; a later
// call may narrow an unchecked placeholder but must not contradict an
// earlier expectation.
func (c *Context) Ref(alias, column string, expect ...core.TypeKind) (*core.DerivedField, error) {
	const op = "ref"
	if c.ended {
		return nil, wrap(op, ErrCleared)
	}
	want := core.KindUnknown
	if len(expect) > 0 {
		want = expect[0]
	}

	key := qualKey{alias, column}
	if d, ok := c.refs[key]; ok {
		if err := expectKind(d, want); err != nil {
			return nil, wrap(op, err)
		}
		return d, nil
	}

	d := core.NewDerivedField(alias, column, want)

	if sq, ok := c.subQueries[alias]; ok {
		col, found := sq.Column(column)
		if !found {
			return nil, wrap(op, &UnknownDerivedFieldError{Alias: alias, Column: column})
		}
		if err := bind(d, col); err != nil {
			return nil, wrap(op, err)
		}
		c.refs[key] = d
		return d, nil
	}
	if _, ok := c.tables[alias]; ok {
		return nil, wrap(op, &AliasConflictError{Alias: alias, Column: column, Reason: "names a table, not a sub-query"})
	}

	c.refs[key] = d
	c.pending = append(c.pending, d)
	return d, nil
}

// QualifiedField returns the cached alias.column wrapper for f.
//
// All fields qualified through one alias must come from the same table, and
// must match the table registered under that alias, if any.
func (c *Context) QualifiedField(alias string, f *core.Field) (*core.QualifiedField, error) {
	const op = "qualified field"
	if c.ended {
		return nil, wrap(op, ErrCleared)
	}
	if f == nil {
		return nil, wrap(op, ErrNilExpr)
	}
	key := qualKey{alias, f.Name}
	if qf, ok := c.qualified[key]; ok {
		if qf.Field != f {
			return nil, wrap(op, &AliasConflictError{Alias: alias, Column: f.Name, Reason: "is bound to another table's column"})
		}
		return qf, nil
	}
	if t, ok := c.tables[alias]; ok && t != f.Table {
		return nil, wrap(op, &AliasConflictError{Alias: alias, Column: f.Name, Reason: "is bound to table " + t.QualifiedName()})
	}
	if _, ok := c.subQueries[alias]; ok {
		return nil, wrap(op, &AliasConflictError{Alias: alias, Column: f.Name, Reason: "names a sub-query; use Ref"})
	}
	for k, qf := range c.qualified {
		if k.alias == alias && qf.Field.Table != f.Table {
			return nil, wrap(op, &AliasConflictError{Alias: alias, Column: f.Name, Reason: "was used for table " + qf.Field.Table.QualifiedName()})
		}
	}

	qf := &core.QualifiedField{Alias: alias, Field: f}
	c.qualified[key] = qf
	return qf, nil
}

// Table returns the table bound to alias.
func (c *Context) Table(alias string) (*core.Table, bool) {
	t, ok := c.tables[alias]
	return t, ok
}

// scopes reports whether alias.column is answered by this context alone:
// it already holds the reference, or alias is bound here.
func (c *Context) scopes(alias, column string) bool {
	if _, ok := c.refs[qualKey{alias, column}]; ok {
		return true
	}
	if _, ok := c.subQueries[alias]; ok {
		return true
	}
	_, ok := c.tables[alias]
	return ok
}

// SubQuery returns the sub-query bound to alias.
func (c *Context) SubQuery(alias string) (*core.SubQuery, bool) {
	sq, ok := c.subQueries[alias]
	return sq, ok
}

// Unresolved returns the pending references as alias.column strings.
func (c *Context) Unresolved() []string {
	out := make([]string, 0, len(c.pending))
	for _, d := range c.pending {
		out = append(out, d.Name())
	}
	return out
}

// End verifies every forward reference was resolved and releases the
// context's bookkeeping.
func (c *Context) End() error {
	const op = "end context"
	if c.ended {
		return wrap(op, ErrCleared)
	}
	if len(c.pending) > 0 {
		return wrap(op, &UnresolvedReferenceError{Refs: c.Unresolved()})
	}
	c.release()
	return nil
}

func (c *Context) release() {
	c.ended = true
	c.tables = nil
	c.subQueries = nil
	c.qualified = nil
	c.refs = nil
	c.pending = nil
}
