package criteria

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapcrit/internal/testutil"
	"github.com/leapstack-labs/leapcrit/pkg/core"
)

// errOf drops the value of an accessor result.
func errOf[T any](_ T, err error) error { return err }

// builderCase drives one builder through its lifecycle.
type builderCase struct {
	err     func() error
	prepare func() error
	mutate  func()
	clear   func() error
	reads   map[string]func() error
}

func lifecycleCases(f fixture) map[string]func(*Session) builderCase {
	id, name := f.users.MustField("id"), f.users.MustField("name")

	return map[string]func(*Session) builderCase{
		"select": func(sess *Session) builderCase {
			b := sess.Select(core.Star()).From(f.users, "u")
			return builderCase{
				err:     b.Err,
				prepare: func() error { return errOf(b.AsSelect()) },
				mutate:  func() { b.Limit(1) },
				clear:   b.Clear,
				reads: map[string]func() error{
					"Statement":   func() error { return errOf(b.Statement()) },
					"Selections":  func() error { return errOf(b.Selections()) },
					"Sources":     func() error { return errOf(b.Sources()) },
					"Predicates":  func() error { return errOf(b.Predicates()) },
					"GroupKeys":   func() error { return errOf(b.GroupKeys()) },
					"HavingList":  func() error { return errOf(b.HavingList()) },
					"SortKeys":    func() error { return errOf(b.SortKeys()) },
					"LimitClause": func() error { return errOf(b.LimitClause()) },
				},
			}
		},
		"insert": func(sess *Session) builderCase {
			b := sess.Insert(f.users).Columns(id, name).Values(1, "ann")
			return builderCase{
				err:     b.Err,
				prepare: func() error { return errOf(b.AsInsert()) },
				mutate:  func() { b.Values(2, "bob") },
				clear:   b.Clear,
				reads: map[string]func() error{
					"Statement":    func() error { return errOf(b.Statement()) },
					"TargetFields": func() error { return errOf(b.TargetFields()) },
					"Rows":         func() error { return errOf(b.Rows()) },
				},
			}
		},
		"update": func(sess *Session) builderCase {
			b := sess.Update(f.users, "u").Set(name, "ann").Migration()
			return builderCase{
				err:     b.Err,
				prepare: func() error { return errOf(b.AsUpdate()) },
				mutate:  func() { b.Set(name, "bob") },
				clear:   b.Clear,
				reads: map[string]func() error{
					"Statement":   func() error { return errOf(b.Statement()) },
					"Assignments": func() error { return errOf(b.Assignments()) },
					"Predicates":  func() error { return errOf(b.Predicates()) },
				},
			}
		},
		"delete": func(sess *Session) builderCase {
			b := sess.Delete(f.users, "").Migration()
			return builderCase{
				err:     b.Err,
				prepare: func() error { return errOf(b.AsDelete()) },
				mutate:  func() { b.Where(core.Raw("TRUE")) },
				clear:   b.Clear,
				reads: map[string]func() error{
					"Statement":  func() error { return errOf(b.Statement()) },
					"Predicates": func() error { return errOf(b.Predicates()) },
				},
			}
		},
		"values": func(sess *Session) builderCase {
			b := sess.Values().Row(1, "a")
			return builderCase{
				err:     b.Err,
				prepare: func() error { return errOf(b.AsValues()) },
				mutate:  func() { b.Row(2, "b") },
				clear:   b.Clear,
				reads: map[string]func() error{
					"Statement": func() error { return errOf(b.Statement()) },
				},
			}
		},
	}
}

func TestLifecycle_ReadBeforePrepare(t *testing.T) {
	for name, start := range lifecycleCases(newFixture()) {
		t.Run(name, func(t *testing.T) {
			sess := newTestSession(t)
			c := start(sess)
			require.NoError(t, c.err())

			for accessor, read := range c.reads {
				err := read()
				require.ErrorIs(t, err, ErrNotPrepared, accessor)
				assert.Equal(t, KindSequencing, KindOf(err), accessor)
			}
			require.ErrorIs(t, c.clear(), ErrNotPrepared)
			require.NoError(t, c.err(), "reading does not poison the builder")

			require.NoError(t, c.prepare())
			assert.Equal(t, 0, sess.Depth())
			for accessor, read := range c.reads {
				require.NoError(t, read(), accessor)
			}
		})
	}
}

func TestLifecycle_MutateAfterPrepare(t *testing.T) {
	for name, start := range lifecycleCases(newFixture()) {
		t.Run(name, func(t *testing.T) {
			sess := newTestSession(t)
			c := start(sess)
			require.NoError(t, c.prepare())

			c.mutate()
			require.ErrorIs(t, c.err(), ErrAlreadyPrepared)
			assert.Equal(t, KindSequencing, KindOf(c.err()))
			require.ErrorIs(t, c.prepare(), ErrAlreadyPrepared)

			for accessor, read := range c.reads {
				require.NoError(t, read(), "%s still serves the prepared statement", accessor)
			}
			assert.Equal(t, 0, sess.Depth())

			require.NoError(t, c.clear())
			for accessor, read := range c.reads {
				require.ErrorIs(t, read(), ErrCleared, accessor)
			}
		})
	}
}

func TestLifecycle_ErrorsReleaseTheStack(t *testing.T) {
	f := newFixture()
	id, name := f.users.MustField("id"), f.users.MustField("name")

	tests := []struct {
		name  string
		build func(sess *Session) error
		want  Kind
	}{
		{
			name: "nil predicate",
			build: func(sess *Session) error {
				b := sess.Select()
				return b.Select(b.Field("u", id)).From(f.users, "u").Where(nil).Err()
			},
			want: KindValidation,
		},
		{
			name:  "negative limit",
			build: func(sess *Session) error { return sess.Select(core.Star()).From(f.users, "u").Limit(-1).Err() },
			want:  KindValidation,
		},
		{
			name: "pending join",
			build: func(sess *Session) error {
				return sess.Select(core.Star()).From(f.users, "u").Join(f.orders, "o").Where(core.Raw("TRUE")).Err()
			},
			want: KindCompleteness,
		},
		{
			name:  "null into not-null column",
			build: func(sess *Session) error { return sess.Update(f.users, "").SetNull(name).Err() },
			want:  KindValidation,
		},
		{
			name:  "row width",
			build: func(sess *Session) error { return sess.Insert(f.users).Columns(id, name).Values(1).Err() },
			want:  KindValidation,
		},
		{
			name:  "empty values row",
			build: func(sess *Session) error { return sess.Values().Row().Err() },
			want:  KindValidation,
		},
		{
			name: "nested builder",
			build: func(sess *Session) error {
				sess.Select(core.Star()).From(f.users, "u")
				return sess.SubSelect(core.Star()).From(f.orders, "o").Offset(-1).Err()
			},
			want: KindValidation,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := newTestSession(t)
			err := tt.build(sess)
			require.Error(t, err)
			assert.Equal(t, tt.want, KindOf(err))
			assert.Equal(t, 0, sess.Depth())

			// the caller walked away from the failed builder
			_, err = sess.Select(core.Star()).From(f.users, "u").AsSelect()
			require.NoError(t, err)
		})
	}
}

func TestLifecycle_FailedBuilderKeepsItsError(t *testing.T) {
	f := newFixture()
	sess := newTestSession(t)

	b := sess.Select(core.Star()).From(f.users, "u").Where(nil)
	require.ErrorIs(t, b.Err(), ErrNilPredicate)
	require.Equal(t, 0, sess.Depth())

	next, err := sess.Select(core.Star()).From(f.orders, "o").AsSelect()
	require.NoError(t, err)
	require.NotNil(t, next)

	_, err = b.AsSelect()
	require.ErrorIs(t, err, ErrNilPredicate)
	assert.False(t, b.Prepared())
	assert.Equal(t, 0, sess.Depth())
}

func TestLifecycle_ForceClearLogLevel(t *testing.T) {
	f := newFixture()
	logger, logs := testutil.NewCaptureLogger(testutil.WithLevel(slog.LevelInfo))
	sess := NewSession(WithLogger(logger))

	sess.Select(core.Star()).From(f.users, "u").Limit(-1)
	assert.False(t, logs.Contains("force-clearing context stack"), "validation errors clear at debug level")

	sess.Select(core.Star()).From(f.users, "x").Join(f.orders, "x")
	assert.True(t, logs.Contains("level=WARN", "force-clearing context stack", "error="))
	assert.Equal(t, 0, sess.Depth())
}
