package htmldoc

import (
	"fmt"
	"strings"

	"github.com/gerunddev/larkbridge/internal/lark"
	"github.com/gerunddev/larkbridge/internal/richtext"
)

// maxDepth bounds list nesting when rendering children inside an item
const maxDepth = 64

// BlockHTML renders the record id and, for list items, its nested items.
// Unknown or missing records render as "".
func BlockHTML(data *lark.ClipboardData, id string) string {
	var b strings.Builder
	writeBlock(&b, data, id, 0, map[string]bool{})
	return b.String()
}

func writeBlock(b *strings.Builder, data *lark.ClipboardData, id string, depth int, seen map[string]bool) {
	snap := data.Lookup(id)
	if snap == nil || seen[id] || depth > maxDepth {
		return
	}
	seen[id] = true

	line := "ace-line old-record-id-" + id

	if level := snap.Type.HeadingLevel(); level > 0 {
		fmt.Fprintf(b, `<h%d class="heading-%d %s">%s</h%d>`, level, level, line, inlineHTML(snap.Text), level)
		return
	}

	switch snap.Type {
	case lark.TypeText:
		fmt.Fprintf(b, `<div class="%s">%s</div>`, line, inlineHTML(snap.Text))

	case lark.TypeQuote:
		fmt.Fprintf(b, `<blockquote class="%s">%s</blockquote>`, line, inlineHTML(snap.Text))

	case lark.TypeCode:
		lang := snap.Language
		if lang == "" {
			lang = "plaintext"
		}
		code := ""
		if snap.Code != nil {
			code = *snap.Code
		}
		if code == "" {
			code = snap.Text.FullText()
		}
		fmt.Fprintf(b, `<pre style="white-space:pre;" class="%s"><code class="language-%s" data-lark-language="%s" data-wrap="false"><div>%s</div></code></pre>`,
			line, textEscaper.Replace(lang), textEscaper.Replace(lang), textEscaper.Replace(code))

	case lark.TypeDivider:
		fmt.Fprintf(b, `<div data-type="divider" class="old-record-id-%s"><hr></div>`, id)

	case lark.TypeDiagram:
		code := ""
		if snap.Data != nil {
			code = snap.Data.Data
		}
		if code == "" {
			code = DiagramFallback
		}
		fmt.Fprintf(b, "<div class=\"%s\">\n<span class=\"block-paste-placeholder\">%s</span>\n</div>", line, textEscaper.Replace(code))

	case lark.TypeEquation:
		fmt.Fprintf(b, `<div class="%s">%s</div>`, line, textEscaper.Replace("$$"+snap.Text.FullText()+"$$"))

	case lark.TypeImage:
		fmt.Fprintf(b, `<div class="%s">%s</div>`, line, ImageFallback)

	case lark.TypeBullet, lark.TypeOrdered, lark.TypeTodo:
		writeListItem(b, data, snap, id, depth, seen)

	case lark.TypeTable:
		writeTable(b, data, snap, id)
	}
}

func writeListItem(b *strings.Builder, data *lark.ClipboardData, snap *lark.Snapshot, id string, depth int, seen map[string]bool) {
	level := snap.Level
	if level < 1 {
		level = 1
	}

	tag, class, kind := "ul", fmt.Sprintf("list-bullet%d", level), "bullet"
	switch snap.Type {
	case lark.TypeOrdered:
		tag, class, kind = "ol", fmt.Sprintf("list-number%d", level), "number"
	case lark.TypeTodo:
		class, kind = "list-check", "check"
		if snap.Done != nil && *snap.Done {
			class, kind = fmt.Sprintf("list-done%d", level), "done"
		}
	}

	fmt.Fprintf(b, `<%s class="%s"><li class="ace-line old-record-id-%s" data-list="%s"><div>%s</div>`, tag, class, id, kind, inlineHTML(snap.Text))
	for _, child := range snap.Children {
		writeBlock(b, data, child, depth+1, seen)
	}
	fmt.Fprintf(b, `</li></%s>`, tag)
}

func writeTable(b *strings.Builder, data *lark.ClipboardData, snap *lark.Snapshot, id string) {
	fmt.Fprintf(b, `<table class="old-record-id-%s"><tbody>`, id)
	for _, row := range snap.RowsID {
		b.WriteString("<tr>")
		for _, col := range snap.ColumnsID {
			text := ""
			align := "left"
			if info, ok := snap.CellSet[row+col]; ok {
				if cell := data.Lookup(info.BlockID); cell != nil && len(cell.Children) > 0 {
					if t := data.Lookup(cell.Children[0]); t != nil {
						text = inlineHTML(t.Text)
						if t.Align != nil && *t.Align != "" {
							align = *t.Align
						}
					}
				}
			}
			fmt.Fprintf(b, `<td style="text-align:%s">%s</td>`, textEscaper.Replace(align), text)
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")
}

// inlineHTML renders a payload's runs as inline tags
func inlineHTML(td *lark.TextData) string {
	if td == nil {
		return ""
	}
	text := td.FullText()
	runs := td.Runs()
	if runs == "" || td.Apool.NumToAttrib == nil {
		return breakLines(textEscaper.Replace(text))
	}

	var b strings.Builder
	for _, s := range richtext.Decode(runs, text, td.Apool.NumToAttrib) {
		if eq := s.Attrs[richtext.AttrEquation]; eq != "" {
			eq = strings.TrimSuffix(richtext.DecodeURIComponent(eq), richtext.DisplaySuffix)
			fmt.Fprintf(&b, `<span class="equation">%s</span>`, textEscaper.Replace(eq))
			continue
		}

		out := breakLines(textEscaper.Replace(s.Text))
		if s.Attrs[richtext.AttrStrikethrough] == "true" {
			out = "<del>" + out + "</del>"
		}
		if s.Attrs[richtext.AttrUnderline] == "true" {
			out = "<u>" + out + "</u>"
		}
		if s.Attrs[richtext.AttrItalic] == "true" {
			out = "<em>" + out + "</em>"
		}
		if s.Attrs[richtext.AttrBold] == "true" {
			out = "<strong>" + out + "</strong>"
		}
		if link := s.Attrs[richtext.AttrLink]; link != "" {
			out = `<a href="` + textEscaper.Replace(richtext.DecodeURIComponent(link)) + `">` + out + "</a>"
		}
		b.WriteString(out)
	}
	return b.String()
}

func breakLines(s string) string {
	return strings.ReplaceAll(s, "\n", "<br>")
}
