package criteria

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStack_PushRequiresRoot(t *testing.T) {
	var s Stack
	err := s.Push(NewContext(nil))
	require.ErrorIs(t, err, ErrNoRootContext)
	assert.Equal(t, KindSequencing, KindOf(err))
	assert.Equal(t, 0, s.Depth())
}

func TestStack_SetRootWhileInUse(t *testing.T) {
	var s Stack
	require.NoError(t, s.SetRoot(NewContext("a")))

	err := s.SetRoot(NewContext("b"))
	require.ErrorIs(t, err, ErrStackInUse)
	assert.Equal(t, 0, s.Depth(), "stale tree is discarded")

	require.NoError(t, s.SetRoot(NewContext("c")))
	assert.Equal(t, 1, s.Depth())
}

func TestStack_PopIsLIFO(t *testing.T) {
	var s Stack
	root, c1, c2 := NewContext("root"), NewContext("c1"), NewContext("c2")
	require.NoError(t, s.SetRoot(root))
	require.NoError(t, s.Push(c1))
	require.NoError(t, s.Push(c2))

	top, err := s.Peek()
	require.NoError(t, err)
	assert.Same(t, c2, top)

	err = s.Pop(c1)
	var mismatch *StackMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "pop", mismatch.Op)
	assert.Equal(t, 3, mismatch.Depth)
	assert.Equal(t, 3, s.Depth())

	require.NoError(t, s.Pop(c2))
	require.NoError(t, s.Pop(c1))

	// the root is never popped
	require.ErrorAs(t, s.Pop(root), &mismatch)
	require.NoError(t, s.ClearRoot(root))

	_, err = s.Peek()
	require.ErrorIs(t, err, ErrNoContext)
}

func TestStack_ClearRoot(t *testing.T) {
	var s Stack
	root, child := NewContext("root"), NewContext("child")

	require.ErrorIs(t, s.ClearRoot(root), ErrNoContext)

	require.NoError(t, s.SetRoot(root))
	require.NoError(t, s.Push(child))

	var pending *PendingSubContextError
	require.ErrorAs(t, s.ClearRoot(root), &pending)
	assert.Equal(t, 2, pending.Depth)

	var mismatch *StackMismatchError
	require.ErrorAs(t, s.ClearRoot(child), &mismatch)
	assert.Equal(t, "clear", mismatch.Op)

	require.NoError(t, s.Pop(child))
	require.NoError(t, s.ClearRoot(root))
	assert.Equal(t, 0, s.Depth())
}

func TestStructuralErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"stack mismatch", wrap("pop", &StackMismatchError{Op: "pop"}), true},
		{"pending sub context", wrap("clear", &PendingSubContextError{Depth: 2}), true},
		{"unresolved", wrap("end", &UnresolvedReferenceError{Refs: []string{"s.x"}}), true},
		{"duplicate alias", wrap("register", &DuplicateAliasError{Alias: "s"}), true},
		{"already prepared", wrap("where", ErrAlreadyPrepared), false},
		{"missing where", wrap("as update", ErrMissingWhere), false},
		{"validation", wrap("set", ErrNullNotAllowed), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, structural(tt.err))
		})
	}
}
