package htmldoc

import (
	"strings"

	"github.com/gerunddev/larkbridge/internal/lark"
)

// DiagramLabel stands in for a diagram in the plain text rendering
const DiagramLabel = "[Mermaid 图表]"

// PlainText approximates the document for the text/plain clipboard slot.
// Styling is dropped; structure is kept as Markdown-like markers.
func PlainText(data *lark.ClipboardData) string {
	if data == nil {
		return ""
	}

	var b strings.Builder
	var walk func(ids []string, depth int)
	walk = func(ids []string, depth int) {
		if depth > maxDepth {
			return
		}
		for _, id := range ids {
			snap := data.Lookup(id)
			if snap == nil {
				continue
			}
			writePlain(&b, data, snap)
			if snap.Type.IsList() {
				walk(snap.Children, depth+1)
			}
		}
	}
	walk(data.RecordIDs, 0)

	return strings.TrimSpace(b.String())
}

func writePlain(b *strings.Builder, data *lark.ClipboardData, snap *lark.Snapshot) {
	if level := snap.Type.HeadingLevel(); level > 0 {
		b.WriteString(strings.Repeat("#", level) + " " + snap.Text.FullText() + "\n\n")
		return
	}

	indent := ""
	if snap.Level > 1 {
		indent = strings.Repeat("  ", snap.Level-1)
	}

	switch snap.Type {
	case lark.TypeDiagram:
		b.WriteString(DiagramLabel + "\n")
	case lark.TypeCode:
		lang := snap.Language
		if lang == "" {
			lang = "text"
		}
		code := ""
		if snap.Code != nil {
			code = *snap.Code
		}
		b.WriteString("```" + lang + "\n" + code + "\n```\n")
	case lark.TypeDivider:
		b.WriteString("---\n")
	case lark.TypeText, lark.TypeQuote:
		b.WriteString(snap.Text.FullText() + "\n\n")
	case lark.TypeEquation:
		b.WriteString("$$" + snap.Text.FullText() + "$$\n\n")
	case lark.TypeImage:
		b.WriteString(ImageFallback + "\n\n")
	case lark.TypeBullet:
		b.WriteString(indent + "- " + snap.Text.FullText() + "\n")
	case lark.TypeOrdered:
		b.WriteString(indent + "1. " + snap.Text.FullText() + "\n")
	case lark.TypeTodo:
		box := "- [ ] "
		if snap.Done != nil && *snap.Done {
			box = "- [x] "
		}
		b.WriteString(indent + box + snap.Text.FullText() + "\n")
	case lark.TypeTable:
		writePlainTable(b, data, snap)
	}
}

// writePlainTable emits one tab separated line per row
func writePlainTable(b *strings.Builder, data *lark.ClipboardData, snap *lark.Snapshot) {
	for _, row := range snap.RowsID {
		cells := make([]string, len(snap.ColumnsID))
		for i, col := range snap.ColumnsID {
			info, ok := snap.CellSet[row+col]
			if !ok {
				continue
			}
			if cell := data.Lookup(info.BlockID); cell != nil && len(cell.Children) > 0 {
				if t := data.Lookup(cell.Children[0]); t != nil {
					cells[i] = t.Text.FullText()
				}
			}
		}
		b.WriteString(strings.Join(cells, "\t") + "\n")
	}
	b.WriteString("\n")
}
