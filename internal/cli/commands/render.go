package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapcrit/internal/cli/output"
	"github.com/leapstack-labs/leapcrit/internal/document"
	"github.com/leapstack-labs/leapcrit/pkg/dialect"
	"github.com/leapstack-labs/leapcrit/pkg/meta"
	"github.com/leapstack-labs/leapcrit/pkg/render"
)

// RenderedStatement is one statement of a document rendered to SQL.
type RenderedStatement struct {
	File string `json:"file"`
	Name string `json:"name"`
	Line int    `json:"line,omitempty"`
	SQL  string `json:"sql"`
	Args []any  `json:"args"`
}

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "render FILE...",
		Short: "Render statement documents to SQL",
		Long: `Compile YAML statement documents against the catalog and print the SQL
for every statement in the configured dialect.

The catalog comes from schema_file when set, otherwise from introspecting
the configured target database.

Output adapts to environment:
  - Terminal: SQL with the bound arguments as comments
  - Piped/Scripted: Markdown with one code block per statement`,
		Example: `  # Render for PostgreSQL using a schema file
  leapcrit render --schema schema.yaml --dialect postgres queries.yaml

  # Render as JSON
  leapcrit render queries.yaml --output json

  # Re-render whenever a document changes
  leapcrit render queries.yaml --watch`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, watch)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-render when a document changes")
	return cmd
}

func runRender(cmd *cobra.Command, paths []string, watch bool) error {
	cmdCtx := NewCommandContext(cmd)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	d, err := cmdCtx.Dialect()
	if err != nil {
		return err
	}
	cat, err := cmdCtx.Catalog(ctx)
	if err != nil {
		return err
	}

	once := func() error {
		stmts, err := renderFiles(cmdCtx, d, cat, paths)
		if werr := writeRendered(cmdCtx.Renderer, stmts); werr != nil {
			return werr
		}
		return err
	}

	if !watch {
		return once()
	}

	if err := once(); err != nil {
		cmdCtx.Renderer.Error(err.Error())
	}
	return watchFiles(ctx, paths, cmdCtx.Logger, func() {
		if cmdCtx.Renderer.EffectiveMode() == output.ModeText {
			cmdCtx.Renderer.Println(cmdCtx.Renderer.Styles().Muted.Render("-- " + strings.Repeat("-", 40)))
		}
		if err := once(); err != nil {
			cmdCtx.Renderer.Error(err.Error())
		}
	})
}

// renderFiles compiles and renders every statement of every file. Failures
// are collected so that one bad statement does not hide the others.
func renderFiles(cmdCtx *CommandContext, d *dialect.Dialect, cat *meta.Catalog, paths []string) ([]RenderedStatement, error) {
	compiler := document.NewCompiler(cat, d, document.WithLogger(cmdCtx.Logger))

	var (
		out  []RenderedStatement
		errs []error
	)
	for _, path := range paths {
		f, err := document.LoadFile(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		compiled, err := compiler.Compile(f)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
		}
		for _, c := range compiled {
			res, err := render.Render(c.Stmt, d)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: statement %s: %w", path, c.Name, err))
				continue
			}
			args := res.Args
			if args == nil {
				args = []any{}
			}
			out = append(out, RenderedStatement{File: path, Name: c.Name, Line: c.Line, SQL: res.SQL, Args: args})
		}
	}
	cmdCtx.Logger.Debug("rendered documents", "files", len(paths), "statements", len(out), "failures", len(errs))
	return out, errors.Join(errs...)
}

func writeRendered(r *output.Renderer, stmts []RenderedStatement) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		if stmts == nil {
			stmts = []RenderedStatement{}
		}
		return r.JSON(stmts)
	case output.ModeMarkdown:
		for _, s := range stmts {
			r.Println(output.FormatHeader(2, s.Name))
			r.Println()
			r.Println(output.FormatCodeBlock("sql", s.SQL))
			if len(s.Args) > 0 {
				r.Println()
				for i, a := range s.Args {
					r.Println(output.FormatKeyValue(fmt.Sprintf("arg %d", i+1), formatArg(a)))
				}
			}
			r.Println()
		}
	default:
		styles := r.Styles()
		for _, s := range stmts {
			r.Println(styles.Muted.Render("-- " + s.Name))
			r.Println(s.SQL + ";")
			if len(s.Args) > 0 {
				parts := make([]string, len(s.Args))
				for i, a := range s.Args {
					parts[i] = formatArg(a)
				}
				r.Println(styles.Muted.Render("-- args: " + strings.Join(parts, ", ")))
			}
		}
	}
	return nil
}

func formatArg(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case string:
		return fmt.Sprintf("%q", x)
	default:
		return fmt.Sprint(x)
	}
}
