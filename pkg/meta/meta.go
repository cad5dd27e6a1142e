// Package meta supplies catalog tables to builders.
//
// A Provider returns core tables either from a static YAML schema file or by
// introspecting a live database through an adapter.
package meta

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/leapcrit/pkg/core"
)

// ErrUnknownTable is returned when a provider has no table of that name.
var ErrUnknownTable = errors.New("unknown table")

// Provider supplies catalog tables.
type Provider interface {
	Tables(ctx context.Context) ([]*core.Table, error)
	Table(ctx context.Context, name string) (*core.Table, error)
}

// Introspector reads table metadata from a database. adapter.Adapter
// satisfies it.
type Introspector interface {
	TableNames(ctx context.Context) ([]string, error)
	TableMetadata(ctx context.Context, table string) (*core.TableMetadata, error)
}

// DefaultConcurrency bounds parallel introspection in LoadTables.
const DefaultConcurrency = 8

// LoadTables introspects names in parallel and returns the tables in the
// order of names. The first failure cancels the remaining lookups.
func LoadTables(ctx context.Context, in Introspector, names []string, limit int) ([]*core.Table, error) {
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	tables := make([]*core.Table, len(names))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, name := range names {
		g.Go(func() error {
			md, err := in.TableMetadata(ctx, name)
			if err != nil {
				return fmt.Errorf("introspect %s: %w", name, err)
			}
			tables[i] = md.Table()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tables, nil
}

// Catalog is an in-memory Provider. Lookups are case-insensitive and accept
// either name or schema.name.
type Catalog struct {
	tables []*core.Table
	byName map[string]*core.Table
}

// NewCatalog indexes tables.
func NewCatalog(tables ...*core.Table) *Catalog {
	c := &Catalog{byName: make(map[string]*core.Table, len(tables)*2)}
	for _, t := range tables {
		c.tables = append(c.tables, t)
		c.byName[strings.ToLower(t.Name)] = t
		c.byName[strings.ToLower(t.QualifiedName())] = t
	}
	sort.SliceStable(c.tables, func(i, j int) bool {
		return c.tables[i].QualifiedName() < c.tables[j].QualifiedName()
	})
	return c
}

// Tables returns every table sorted by qualified name.
func (c *Catalog) Tables(context.Context) ([]*core.Table, error) {
	return append([]*core.Table(nil), c.tables...), nil
}

// Table returns the named table.
func (c *Catalog) Table(_ context.Context, name string) (*core.Table, error) {
	if t, ok := c.byName[strings.ToLower(name)]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownTable, name)
}

// Lookup is Table without a context, for callers resolving names while
// building statements.
func (c *Catalog) Lookup(name string) (*core.Table, bool) {
	t, ok := c.byName[strings.ToLower(name)]
	return t, ok
}

// Load reads every table from p into a Catalog.
func Load(ctx context.Context, p Provider) (*Catalog, error) {
	if c, ok := p.(*Catalog); ok {
		return c, nil
	}
	tables, err := p.Tables(ctx)
	if err != nil {
		return nil, err
	}
	return NewCatalog(tables...), nil
}
