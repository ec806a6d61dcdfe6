package richtext

import (
	"strconv"
	"strings"

	"github.com/gerunddev/larkbridge/internal/lark"
)

// Run is one parsed token of a run encoding
type Run struct {
	Attribs []string
	Length  int
}

// Span is decoded text with its attributes resolved through the apool
type Span struct {
	Text  string
	Attrs map[string]string
}

// ParseRuns scans a run encoding left to right. Scanning stops at the
// first token that is not of the form *i...+L; everything parsed so far
// is returned.
func ParseRuns(attribs string) []Run {
	var runs []Run
	pos := 0
	for pos < len(attribs) {
		if attribs[pos] != '*' {
			pos++
			continue
		}
		pos++

		var nums []string
		for pos < len(attribs) && isDigit(attribs[pos]) {
			start := pos
			for pos < len(attribs) && isDigit(attribs[pos]) {
				pos++
			}
			nums = append(nums, attribs[start:pos])
			if pos < len(attribs) && attribs[pos] == '*' {
				pos++
				continue
			}
			break
		}

		if pos >= len(attribs) || attribs[pos] != '+' {
			break
		}
		pos++

		start := pos
		for pos < len(attribs) && isDigit(attribs[pos]) {
			pos++
		}
		if start == pos {
			continue
		}
		n, err := strconv.Atoi(attribs[start:pos])
		if err != nil {
			break
		}
		runs = append(runs, Run{Attribs: nums, Length: n})
	}
	return runs
}

// Decode splits text into spans according to the run encoding. Text left
// over after the last run is kept as a final span without attributes.
func Decode(attribs, text string, numToAttrib map[string]lark.Attrib) []Span {
	units := toUTF16(text)

	var spans []Span
	for _, run := range ParseRuns(attribs) {
		n := run.Length
		if n > len(units) {
			n = len(units)
		}
		chunk := fromUTF16(units[:n])
		units = units[n:]
		if chunk == "" {
			continue
		}

		attrs := make(map[string]string, len(run.Attribs))
		for _, num := range run.Attribs {
			if a, ok := numToAttrib[num]; ok && a.Name() != "" {
				attrs[a.Name()] = a.Value()
			}
		}
		spans = append(spans, Span{Text: chunk, Attrs: attrs})
	}

	if len(units) > 0 {
		spans = append(spans, Span{Text: fromUTF16(units), Attrs: map[string]string{}})
	}
	return spans
}

// Render turns decoded spans back into inline Markdown
func Render(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		if link, ok := s.Attrs[AttrLink]; ok && link != "" {
			b.WriteString("[" + s.Text + "](" + DecodeURIComponent(link) + ")")
			continue
		}
		if eq, ok := s.Attrs[AttrEquation]; ok && eq != "" {
			eq = strings.TrimSpace(DecodeURIComponent(eq))
			if strings.HasSuffix(eq, DisplaySuffix) {
				b.WriteString("$$" + strings.TrimSuffix(eq, DisplaySuffix) + "$$")
			} else {
				b.WriteString("$" + eq + "$")
			}
			continue
		}

		text := s.Text
		if s.Attrs[AttrStrikethrough] == "true" {
			text = "~~" + text + "~~"
		}
		if s.Attrs[AttrBold] == "true" {
			text = "**" + text + "**"
		}
		if s.Attrs[AttrItalic] == "true" {
			text = "*" + text + "*"
		}
		b.WriteString(text)
	}
	return b.String()
}

// Markdown reconstructs inline Markdown from a payload. Payloads without a
// run encoding are returned as plain text with bare URLs upgraded to links.
func Markdown(td *lark.TextData) string {
	if td == nil {
		return ""
	}
	text := td.FullText()
	runs := td.Runs()
	if runs == "" || td.Apool.NumToAttrib == nil {
		return LinkifyBareURLs(text)
	}
	return Render(Decode(runs, text, td.Apool.NumToAttrib))
}

// PlainText returns the concatenated text without any markup
func PlainText(td *lark.TextData) string {
	return td.FullText()
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
