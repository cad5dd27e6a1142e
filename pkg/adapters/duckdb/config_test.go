package duckdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParams(t *testing.T) {
	tests := []struct {
		name    string
		input   map[string]string
		want    *Params
		wantErr bool
	}{
		{
			name:  "nil options returns empty struct",
			input: nil,
			want:  &Params{},
		},
		{
			name:  "access mode only",
			input: map[string]string{"access_mode": "read_only"},
			want:  &Params{AccessMode: "read_only"},
		},
		{
			name:  "threads decoded from string",
			input: map[string]string{"threads": "4", "memory_limit": "1GB"},
			want:  &Params{Threads: 4, MemoryLimit: "1GB"},
		},
		{
			name:    "unknown option",
			input:   map[string]string{"extensions": "httpfs"},
			wantErr: true,
		},
		{
			name:    "threads not a number",
			input:   map[string]string{"threads": "many"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseParams(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParams_DSN(t *testing.T) {
	assert.Equal(t, ":memory:", (&Params{}).dsn(":memory:"))
	assert.Equal(t, "warehouse.db?access_mode=read_only&threads=2",
		(&Params{AccessMode: "read_only", Threads: 2}).dsn("warehouse.db"))
}
