package adapter

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapcrit/pkg/core"
	"github.com/leapstack-labs/leapcrit/pkg/dialect"
)

type fakeAdapter struct {
	BaseSQLAdapter
}

func (f *fakeAdapter) Connect(context.Context, Config) error { return nil }

func (f *fakeAdapter) TableNames(context.Context) ([]string, error) { return nil, nil }

func (f *fakeAdapter) TableMetadata(context.Context, string) (*Metadata, error) { return nil, nil }

func (f *fakeAdapter) Dialect() *dialect.Dialect { return testDialect() }

func TestRegistry(t *testing.T) {
	Register("fake", func(logger *slog.Logger) Adapter {
		return &fakeAdapter{BaseSQLAdapter{Logger: logger}}
	})

	assert.True(t, IsRegistered("fake"))
	assert.False(t, IsRegistered("unknown_db"))
	assert.Contains(t, ListAdapters(), "fake")

	adp, err := NewAdapter(core.AdapterConfig{Type: "fake"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &fakeAdapter{}, adp)

	adp, err = NewAdapter(core.AdapterConfig{Type: "FAKE"}, nil)
	require.NoError(t, err, "target types are case insensitive")
	assert.IsType(t, &fakeAdapter{}, adp)

	_, err = NewAdapter(core.AdapterConfig{}, nil)
	require.ErrorIs(t, err, ErrNoTargetType)

	_, err = NewAdapter(core.AdapterConfig{Type: "unknown_adapter"}, nil)
	var unknownErr *UnknownAdapterError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "unknown_adapter", unknownErr.Type)
	assert.Contains(t, unknownErr.Available, "fake")
	assert.Contains(t, err.Error(), "--schema")
}

func TestUnknownAdapterError_NoneRegistered(t *testing.T) {
	err := &UnknownAdapterError{Type: "oracle"}
	assert.Equal(t, `no catalog adapter for target type "oracle" (registered: none); `+
		"set target.type to one of them or describe the tables with --schema", err.Error())
}
