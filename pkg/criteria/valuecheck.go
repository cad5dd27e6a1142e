package criteria

import (
	"fmt"

	"github.com/leapstack-labs/leapcrit/pkg/core"
)

func columnName(f *core.Field) string {
	if f.Table == nil {
		return f.Name
	}
	return f.Table.Name + "." + f.Name
}

// belongs checks that f is a column of t.
func belongs(t *core.Table, f *core.Field) error {
	if f == nil {
		return ErrNilExpr
	}
	if t != nil && f.Table != t {
		return &AliasConflictError{Alias: t.Name, Column: f.Name, Reason: "is not a column of the target table"}
	}
	return nil
}

// checkValue converts v into an expression bound for column f. Go values
// become parameters; nil becomes NULL.
func checkValue(f *core.Field, v any) (core.Expr, error) {
	if p, ok := v.(*core.Param); ok && p != nil {
		v = p.Value
	}
	if e, ok := v.(core.Expr); ok && !core.IsNil(e) {
		if raw, ok := e.(*core.RawSQL); ok && raw.SQL == "NULL" && !f.Nullable {
			return nil, fmt.Errorf("%w: column %s", ErrNullNotAllowed, columnName(f))
		}
		t, _ := core.TypeOf(e)
		if !f.Type.Kind.Accepts(t.Kind) {
			return nil, &TypeMismatchError{Column: columnName(f), Want: f.Type.Kind, Got: t.Kind}
		}
		return e, nil
	}
	if core.IsNil(v) {
		if !f.Nullable {
			return nil, fmt.Errorf("%w: column %s", ErrNullNotAllowed, columnName(f))
		}
		return core.Null(), nil
	}
	if got := core.KindOfValue(v); !f.Type.Kind.Accepts(got) {
		return nil, &TypeMismatchError{Column: columnName(f), Want: f.Type.Kind, Got: got}
	}
	return core.P(v), nil
}

// valueExpr converts v without a target column.
func valueExpr(v any) core.Expr {
	if core.IsNil(v) {
		return core.Null()
	}
	if e, ok := v.(core.Expr); ok {
		return e
	}
	return core.P(v)
}
