package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapcrit/internal/cli/output"
	"github.com/leapstack-labs/leapcrit/pkg/core"
	"github.com/leapstack-labs/leapcrit/pkg/dialect"
)

// DialectInfo describes a registered dialect.
type DialectInfo struct {
	Name          string   `json:"name"`
	Placeholder   string   `json:"placeholder"`
	Quote         string   `json:"quote"`
	DefaultSchema string   `json:"default_schema,omitempty"`
	Limit         string   `json:"limit"`
	Features      []string `json:"features"`
}

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List registered SQL dialects",
		Long:  `List every registered SQL dialect with its placeholder style, identifier quoting and optional features.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDialects(NewCommandContext(cmd))
		},
	}
}

func runDialects(cmdCtx *CommandContext) error {
	names := dialect.List()
	infos := make([]DialectInfo, 0, len(names))
	for _, name := range names {
		infos = append(infos, describeDialect(dialect.MustGet(name)))
	}

	r := cmdCtx.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(infos)
	}

	if r.EffectiveMode() == output.ModeMarkdown {
		r.Println(output.FormatHeader(1, "Dialects"))
		r.Println()
	}
	rows := make([][]any, len(infos))
	for i, info := range infos {
		rows[i] = []any{info.Name, info.Placeholder, info.Quote, info.Limit, strings.Join(info.Features, ", ")}
	}
	r.Table([]string{"Name", "Placeholder", "Quote", "Limit", "Features"}, rows)
	return nil
}

func describeDialect(d *dialect.Dialect) DialectInfo {
	limit := "LIMIT n OFFSET m"
	if d.Limits == core.LimitFetch {
		limit = "OFFSET m ROWS FETCH NEXT n ROWS ONLY"
	}
	return DialectInfo{
		Name:          d.Name,
		Placeholder:   d.FormatPlaceholder(1),
		Quote:         d.Identifiers.Quote + d.Identifiers.QuoteEnd,
		DefaultSchema: d.DefaultSchema,
		Limit:         limit,
		Features:      featureNames(d.Features),
	}
}

func featureNames(f core.Features) []string {
	flags := []struct {
		on   bool
		name string
	}{
		{f.Returning, "returning"},
		{f.OnConflict, "on-conflict"},
		{f.UpdateLimit, "update-limit"},
		{f.DeleteLimit, "delete-limit"},
		{f.UpdateAlias, "update-alias"},
		{f.RightJoin, "right-join"},
		{f.FullJoin, "full-join"},
		{f.StraightJoin, "straight-join"},
		{f.RowLocking, "row-locking"},
	}
	names := []string{}
	for _, fl := range flags {
		if fl.on {
			names = append(names, fl.name)
		}
	}
	return names
}
