package document

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapcrit/pkg/core"
)

// qualifier is implemented by every builder that can qualify table columns.
type qualifier interface {
	Field(alias string, f *core.Field) *core.QualifiedField
}

// referrer is implemented by builders that can reference sub-query columns.
type referrer interface {
	Ref(alias, column string, expect ...core.TypeKind) *core.DerivedField
}

// scope maps the aliases visible to one statement onto their sources. Nested
// statements chain to the enclosing scope for correlated references.
type scope struct {
	parent  *scope
	builder qualifier
	tables  map[string]*core.Table
	derived map[string]bool
	order   []string
	labels  map[string]bool
}

func newScope(parent *scope, b qualifier) *scope {
	return &scope{
		parent:  parent,
		builder: b,
		tables:  make(map[string]*core.Table),
		derived: make(map[string]bool),
		labels:  make(map[string]bool),
	}
}

func (s *scope) addTable(alias string, t *core.Table) error {
	if s.tables[alias] != nil || s.derived[alias] {
		return fmt.Errorf("%w: alias %q declared twice", ErrBadSource, alias)
	}
	s.tables[alias] = t
	s.order = append(s.order, alias)
	return nil
}

func (s *scope) addDerived(alias string) error {
	if s.tables[alias] != nil || s.derived[alias] {
		return fmt.Errorf("%w: alias %q declared twice", ErrBadSource, alias)
	}
	s.derived[alias] = true
	return nil
}

// column resolves "alias.column" or a bare column name.
func (s *scope) column(name string) (core.Expr, error) {
	alias, col, qualified := strings.Cut(name, ".")
	if !qualified {
		return s.bare(name)
	}
	if col == "*" {
		return s.star(alias)
	}
	for cur := s; cur != nil; cur = cur.parent {
		if t, ok := cur.tables[alias]; ok {
			f, ok := t.Field(col)
			if !ok {
				return nil, fmt.Errorf("%w: %s has no column %q", ErrUnknownColumn, t.QualifiedName(), col)
			}
			return s.builder.Field(alias, f), nil
		}
		if cur.derived[alias] {
			return cur.ref(alias, col)
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAlias, alias)
}

// ref references a sub-query column through the builder that owns alias.
// Aliases that are not declared anywhere are assumed to belong to this
// scope; the builder reports them as unresolved at finalize time.
func (s *scope) ref(alias, column string) (core.Expr, error) {
	owner := s
	for cur := s; cur != nil; cur = cur.parent {
		if cur.derived[alias] {
			owner = cur
			break
		}
		if _, ok := cur.tables[alias]; ok {
			return nil, fmt.Errorf("%w: %q is a table alias, not a sub-query", ErrBadOperand, alias)
		}
	}
	r, ok := owner.builder.(referrer)
	if !ok {
		return nil, fmt.Errorf("%w: sub-query references are only allowed in select statements", ErrBadOperand)
	}
	return r.Ref(alias, column), nil
}

func (s *scope) bare(name string) (core.Expr, error) {
	if name == "*" {
		return core.Star(), nil
	}
	var (
		found *core.Field
		owner string
	)
	for _, alias := range s.order {
		f, ok := s.tables[alias].Field(name)
		if !ok {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf("%w: %q is in both %s and %s", ErrAmbiguousColumn, name, owner, alias)
		}
		found, owner = f, alias
	}
	if found != nil {
		return s.builder.Field(owner, found), nil
	}
	if s.labels[name] && simpleIdent(name) {
		return core.Raw(name), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
}

func (s *scope) star(alias string) (core.Expr, error) {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.tables[alias] != nil || cur.derived[alias] {
			return core.StarOf(alias), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAlias, alias)
}

func simpleIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
