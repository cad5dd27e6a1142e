// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/leapstack-labs/leapcrit/internal/cli/output"
)

// Schema is a small catalog used by command tests.
const Schema = `tables:
  - name: users
    schema: public
    columns:
      - {name: id, type: integer, primary_key: true}
      - {name: name, type: text}
      - {name: email, type: text, nullable: true}
  - name: orders
    schema: public
    columns:
      - {name: id, type: integer, primary_key: true}
      - {name: user_id, type: integer}
      - {name: total, type: numeric}
`

// Document is a statement document over Schema.
const Document = `statements:
  - name: big_orders
    select:
      columns: ["o.id", "u.name"]
      from: {table: orders, as: o}
      joins:
        - {table: users, as: u, on: [{eq: ["o.user_id", "u.id"]}]}
      where:
        - {gt: ["o.total", 100]}
      order_by: [{expr: "o.id"}]
      limit: 10
  - name: drop_user
    delete:
      table: users
      where:
        - {eq: ["id", 7]}
`

// Project is a temporary directory holding a schema file and a document.
type Project struct {
	Dir      string
	Schema   string
	Document string
}

// SetupProject writes Schema and Document into a temporary directory.
func SetupProject(t *testing.T) *Project {
	t.Helper()

	dir := t.TempDir()
	return &Project{
		Dir:      dir,
		Schema:   WriteFile(t, dir, "schema.yaml", Schema),
		Document: WriteFile(t, dir, "queries.yaml", Document),
	}
}

// WriteFile writes content to dir/name and returns the path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified mode and TTY state.
func NewTestRenderer(mode output.Mode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// Output returns the captured stdout output.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns the captured stderr output.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// AssertValidMarkdown checks for balanced code fences and non-empty headers.
func AssertValidMarkdown(t *testing.T, md string) {
	t.Helper()

	if n := strings.Count(md, "```"); n%2 != 0 {
		t.Errorf("unbalanced code fences in markdown: found %d occurrences", n)
	}
	for i, line := range strings.Split(md, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") && strings.TrimLeft(trimmed, "# ") == "" {
			t.Errorf("empty header at line %d: %q", i+1, line)
		}
	}
}
