package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapcrit/internal/cli/output"
	"github.com/leapstack-labs/leapcrit/pkg/core"
)

// TableInfo summarizes one catalog table.
type TableInfo struct {
	Name       string       `json:"name"`
	PrimaryKey []string     `json:"primary_key"`
	Columns    []ColumnInfo `json:"columns"`
}

// ColumnInfo describes one catalog column.
type ColumnInfo struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Kind       string `json:"kind"`
	Nullable   bool   `json:"nullable"`
	PrimaryKey bool   `json:"primary_key"`
	Updatable  bool   `json:"updatable"`
}

// NewTablesCommand creates the tables command.
func NewTablesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tables [TABLE]",
		Short: "List catalog tables",
		Long: `List the tables of the catalog, loaded from schema_file or introspected
from the target database. With a table name, list its columns.`,
		Example: `  leapcrit tables --schema schema.yaml
  leapcrit tables users --output json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			return runTables(ctx, NewCommandContext(cmd), name)
		},
	}
}

func runTables(ctx context.Context, cmdCtx *CommandContext, name string) error {
	cat, err := cmdCtx.Catalog(ctx)
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	if name != "" {
		t, err := cat.Table(ctx, name)
		if err != nil {
			return err
		}
		info := describeTable(t)
		if r.EffectiveMode() == output.ModeJSON {
			return r.JSON(info)
		}
		if r.EffectiveMode() == output.ModeMarkdown {
			r.Println(output.FormatHeader(1, info.Name))
			r.Println()
		} else {
			r.Header(1, info.Name)
		}
		rows := make([][]any, len(info.Columns))
		for i, c := range info.Columns {
			rows[i] = []any{c.Name, c.Type, c.Kind, yesNo(c.Nullable), yesNo(c.PrimaryKey), yesNo(c.Updatable)}
		}
		r.Table([]string{"Column", "Type", "Kind", "Nullable", "PK", "Updatable"}, rows)
		return nil
	}

	tables, err := cat.Tables(ctx)
	if err != nil {
		return err
	}
	infos := make([]TableInfo, len(tables))
	for i, t := range tables {
		infos[i] = describeTable(t)
	}
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(infos)
	}
	if r.EffectiveMode() == output.ModeMarkdown {
		r.Println(output.FormatHeader(1, "Tables"))
		r.Println()
	}
	rows := make([][]any, len(infos))
	for i, info := range infos {
		rows[i] = []any{info.Name, len(info.Columns), strings.Join(info.PrimaryKey, ", ")}
	}
	r.Table([]string{"Table", "Columns", "Primary key"}, rows)
	return nil
}

func describeTable(t *core.Table) TableInfo {
	info := TableInfo{Name: t.QualifiedName(), PrimaryKey: []string{}}
	for _, f := range t.PrimaryKey() {
		info.PrimaryKey = append(info.PrimaryKey, f.Name)
	}
	for _, f := range t.Fields {
		info.Columns = append(info.Columns, ColumnInfo{
			Name:       f.Name,
			Type:       f.Type.SQL,
			Kind:       f.Type.Kind.String(),
			Nullable:   f.Nullable,
			PrimaryKey: f.PrimaryKey,
			Updatable:  f.Updatable,
		})
	}
	return info
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return ""
}
