package output

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// FormatHeader returns a markdown header of the given level.
func FormatHeader(level int, title string) string {
	level = max(1, min(level, 6))
	return strings.Repeat("#", level) + " " + title
}

// FormatCodeBlock returns a fenced markdown code block.
func FormatCodeBlock(lang, code string) string {
	return "```" + lang + "\n" + strings.TrimRight(code, "\n") + "\n```"
}

// FormatKeyValue returns a markdown bullet "- **key**: value".
func FormatKeyValue(key string, value any) string {
	return fmt.Sprintf("- **%s**: %v", key, value)
}

// Table writes rows under header. Text mode draws a light box table; every
// other mode writes a markdown table.
func (r *Renderer) Table(header []string, rows [][]any) {
	tw := table.NewWriter()
	tw.SetOutputMirror(r.out)

	head := make(table.Row, len(header))
	for i, h := range header {
		head[i] = h
	}
	tw.AppendHeader(head)
	for _, row := range rows {
		tw.AppendRow(table.Row(row))
	}

	if r.EffectiveMode() == ModeText {
		tw.SetStyle(table.StyleLight)
		tw.Render()
		return
	}
	tw.RenderMarkdown()
}
