package cli

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clitest "github.com/leapstack-labs/leapcrit/internal/cli/testutil"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCommands(t *testing.T) {
	cmd := NewRootCmd()

	want := []string{"render", "dialects", "tables", "version", "completion"}
	for _, name := range want {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}
	for _, flag := range []string{"config", "dialect", "schema", "output", "log-level", "log-format"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestRender_FlagsReachConfig(t *testing.T) {
	p := clitest.SetupProject(t)
	t.Chdir(p.Dir)

	out, _, err := run(t, "--schema", p.Schema, "--dialect", "postgres", "-o", "json", "render", p.Document)
	require.NoError(t, err)

	var got []struct {
		Name string `json:"name"`
		SQL  string `json:"sql"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Contains(t, got[0].SQL, "$1")
}

func TestRender_ConfigFile(t *testing.T) {
	p := clitest.SetupProject(t)
	clitest.WriteFile(t, p.Dir, "leapcrit.yaml", "dialect: sqlite\nschema_file: schema.yaml\noutput: text\n")
	t.Chdir(p.Dir)

	out, _, err := run(t, "render", "queries.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "-- big_orders")
	assert.Contains(t, out, "WHERE o.total > ?")
}

func TestInvalidConfiguration(t *testing.T) {
	t.Chdir(t.TempDir())

	_, _, err := run(t, "--dialect", "oracle", "dialects")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")

	_, _, err = run(t, "-o", "yaml", "dialects")
	require.Error(t, err)
}

func TestCompletion(t *testing.T) {
	out, _, err := run(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "leapcrit")

	_, _, err = run(t, "completion", "tcsh")
	require.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		level, format string
		want          slog.Level
		json          bool
	}{
		{"debug", "text", slog.LevelDebug, false},
		{"ERROR", "json", slog.LevelError, true},
		{"bogus", "", slog.LevelWarn, false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(&buf, tt.level, tt.format)
			assert.True(t, logger.Enabled(t.Context(), tt.want))
			assert.False(t, logger.Enabled(t.Context(), tt.want-1))

			logger.Log(t.Context(), tt.want, "hello")
			if tt.json {
				assert.True(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
			} else {
				assert.Contains(t, buf.String(), "msg=hello")
			}
		})
	}
}
