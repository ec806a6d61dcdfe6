package diff

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"

	"github.com/gerunddev/larkbridge/internal/convert"
)

// Format represents the output format for diffs
type Format int

const (
	// FormatRendered renders diffs through glamour (default)
	FormatRendered Format = iota
	// FormatPlain returns the raw unified diff
	FormatPlain
)

// DefaultWrap is the word wrap used for terminal rendering
const DefaultWrap = 120

// Result is the outcome of a Markdown → records → Markdown round trip
type Result struct {
	Name     string
	Original string
	Restored string
	Records  int
}

// Equal reports whether the round trip reproduced the input, ignoring
// leading and trailing whitespace.
func (r Result) Equal() bool {
	return strings.TrimSpace(r.Original) == strings.TrimSpace(r.Restored)
}

// Unified returns the unified diff from the original to the restored text,
// or "" when they are equal.
func (r Result) Unified() string {
	if r.Equal() {
		return ""
	}
	return Unified(r.Name, r.Name+" (restored)", normalize(r.Original), normalize(r.Restored))
}

// RoundTrip converts markdown to clipboard records and back with c
func RoundTrip(c *convert.Converter, name, markdown string) Result {
	data := c.Convert(markdown)
	return Result{
		Name:     name,
		Original: markdown,
		Restored: c.ToMarkdown(data),
		Records:  len(data.RecordIDs),
	}
}

// Unified computes a unified diff between two texts
func Unified(fromName, toName, before, after string) string {
	if before == after {
		return ""
	}
	edits := myers.ComputeEdits(span.URIFromPath(fromName), before, after)
	return fmt.Sprint(gotextdiff.ToUnified(fromName, toName, before, edits))
}

// Generate renders the round trip diff in the given format. An equal round
// trip yields "".
func Generate(r Result, format Format) (string, error) {
	unified := r.Unified()
	if unified == "" {
		return "", nil
	}

	switch format {
	case FormatPlain:
		return unified, nil
	case FormatRendered:
		// Wrap in diff code fence for syntax highlighting (+ in green, - in red)
		return Render(fmt.Sprintf("```diff\n%s```\n", unified), DefaultWrap), nil
	default:
		return "", fmt.Errorf("unsupported diff format: %d", format)
	}
}

// Render renders markdown for the terminal with glamour. The input is
// returned unchanged when glamour cannot render it.
func Render(markdown string, wrap int) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return markdown
	}

	rendered, err := renderer.Render(markdown)
	if err != nil {
		return markdown
	}

	return rendered
}

// normalize trims the text and ends it with exactly one newline
func normalize(s string) string {
	return strings.TrimSpace(s) + "\n"
}
