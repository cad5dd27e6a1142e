package meta

import (
	"context"
	"fmt"

	"github.com/leapstack-labs/leapcrit/pkg/core"
)

// Introspected is a Provider backed by a live database.
type Introspected struct {
	in          Introspector
	concurrency int
}

// NewIntrospected wraps in. Concurrency bounds parallel table lookups; zero
// uses DefaultConcurrency.
func NewIntrospected(in Introspector, concurrency int) *Introspected {
	return &Introspected{in: in, concurrency: concurrency}
}

// Tables introspects every table the database lists.
func (p *Introspected) Tables(ctx context.Context) ([]*core.Table, error) {
	names, err := p.in.TableNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	return LoadTables(ctx, p.in, names, p.concurrency)
}

// Table introspects one table.
func (p *Introspected) Table(ctx context.Context, name string) (*core.Table, error) {
	md, err := p.in.TableMetadata(ctx, name)
	if err != nil {
		return nil, err
	}
	return md.Table(), nil
}
