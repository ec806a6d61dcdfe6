package convert

import (
	"strings"

	"github.com/gerunddev/larkbridge/internal/lark"
	"github.com/gerunddev/larkbridge/internal/richtext"
)

// ImageNotice stands in for image blocks on the way back to Markdown
const ImageNotice = "[lark-to-markdown 暂无法支持图片转换]"

// rendering is the per-call state of a record tree to Markdown walk
type rendering struct {
	data     *lark.ClipboardData
	lines    []string
	visited  map[string]bool
	maxDepth int
}

// ToMarkdown renders a record tree as Markdown. Missing or malformed
// records are skipped, so the result is never an error, only possibly
// shorter.
func (c *Converter) ToMarkdown(data *lark.ClipboardData) string {
	if data == nil || data.RecordMap == nil {
		return ""
	}

	r := &rendering{
		data:     data,
		visited:  make(map[string]bool),
		maxDepth: c.maxNesting + 1,
	}

	if data.RootID != "" && data.Lookup(data.RootID) != nil {
		r.record(data.RootID, 0)
	} else {
		for _, id := range data.RecordIDs {
			r.record(id, 1)
		}
	}

	return strings.TrimSpace(strings.Join(r.lines, "\n"))
}

func (r *rendering) record(id string, depth int) {
	if depth > r.maxDepth || r.visited[id] {
		return
	}
	snap := r.data.Lookup(id)
	if snap == nil {
		return
	}
	r.visited[id] = true

	switch snap.Type {
	case lark.TypePage:
		r.children(snap, depth)
		return
	case lark.TypeTableCell:
		return
	}

	if fragment, ok := r.fragment(snap); ok {
		if len(r.lines) > 0 && !snap.Type.IsList() {
			r.lines = append(r.lines, "")
		}
		r.lines = append(r.lines, fragment)
	}

	if snap.Type != lark.TypeTable {
		r.children(snap, depth)
	}
}

func (r *rendering) children(snap *lark.Snapshot, depth int) {
	for _, child := range snap.Children {
		r.record(child, depth+1)
	}
}

// fragment renders one block. ok is false when the block contributes no
// text of its own.
func (r *rendering) fragment(snap *lark.Snapshot) (string, bool) {
	if level := snap.Type.HeadingLevel(); level > 0 {
		return strings.Repeat("#", level) + " " + richtext.Markdown(snap.Text), true
	}

	switch snap.Type {
	case lark.TypeText:
		text := richtext.Markdown(snap.Text)
		if strings.TrimSpace(text) == "" {
			return "", false
		}
		return text, true

	case lark.TypeQuote:
		return quoteLines(richtext.Markdown(snap.Text)), true

	case lark.TypeBullet:
		return listIndent(snap) + "- " + richtext.Markdown(snap.Text), true

	case lark.TypeOrdered:
		return listIndent(snap) + "1. " + richtext.Markdown(snap.Text), true

	case lark.TypeTodo:
		box := "[ ] "
		if snap.Done != nil && *snap.Done {
			box = "[x] "
		}
		return listIndent(snap) + "- " + box + richtext.Markdown(snap.Text), true

	case lark.TypeCode:
		code := ""
		if snap.Code != nil {
			code = *snap.Code
		}
		if code == "" {
			code = richtext.Markdown(snap.Text)
		}
		return "```" + snap.Language + "\n" + code + "\n```", true

	case lark.TypeDivider:
		return "---", true

	case lark.TypeDiagram:
		code := ""
		if snap.Data != nil {
			code = snap.Data.Data
		}
		return "```mermaid\n" + code + "\n```", true

	case lark.TypeEquation:
		return "$$" + richtext.Markdown(snap.Text) + "$$", true

	case lark.TypeImage:
		return ImageNotice, true

	case lark.TypeTable:
		md := r.tableMarkdown(snap)
		return md, md != ""
	}

	return "", false
}

func listIndent(snap *lark.Snapshot) string {
	level := snap.Level
	if level < 1 {
		level = 1
	}
	return strings.Repeat("  ", level-1)
}

// quoteLines prefixes every line with the quote marker
func quoteLines(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line == "" {
			lines[i] = ">"
			continue
		}
		lines[i] = "> " + line
	}
	return strings.Join(lines, "\n")
}

// LarkToMarkdown renders data with the default converter
func LarkToMarkdown(data *lark.ClipboardData) string {
	return defaultConverter.ToMarkdown(data)
}
