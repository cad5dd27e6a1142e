package criteria

import (
	"github.com/leapstack-labs/leapcrit/pkg/core"
)

// resolve binds the pending references to alias against the columns sq
// exposes. References to columns sq does not expose stay pending and are
// reported by End.
func (c *Context) resolve(alias string, sq *core.SubQuery) error {
	if len(c.pending) == 0 {
		return nil
	}
	var cols map[string]core.OutputColumn
	kept := c.pending[:0]
	var firstErr error
	for _, d := range c.pending {
		if d.Alias != alias {
			kept = append(kept, d)
			continue
		}
		if cols == nil {
			cols = make(map[string]core.OutputColumn)
			for _, col := range sq.Columns() {
				cols[col.Name] = col
			}
		}
		col, ok := cols[d.Column]
		if !ok {
			kept = append(kept, d)
			continue
		}
		if err := bind(d, col); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			kept = append(kept, d)
		}
	}
	c.pending = kept
	return firstErr
}

// bind checks the expected kind and resolves d to col.
func bind(d *core.DerivedField, col core.OutputColumn) error {
	if !d.Expect.Accepts(col.Type.Kind) {
		return &TypeMismatchError{Column: d.Name(), Want: d.Expect, Got: col.Type.Kind}
	}
	d.Bind(col.Expr, col.Type, col.Nullable)
	return nil
}

// expectKind applies a further expected kind to a reference that already
// exists.
func expectKind(d *core.DerivedField, want core.TypeKind) error {
	switch {
	case want == core.KindUnknown || want == d.Expect:
		return nil
	case d.Resolved():
		if !want.Accepts(d.Type().Kind) {
			return &TypeMismatchError{Column: d.Name(), Want: want, Got: d.Type().Kind}
		}
		return nil
	case d.Expect == core.KindUnknown:
		d.Expect = want
		return nil
	}
	return &TypeMismatchError{Column: d.Name(), Want: want, Got: d.Expect}
}
