// Package htmldoc renders clipboard data as the text/html fragment the Lark
// editor reads on paste, and extracts it back out of such a fragment.
package htmldoc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/gerunddev/larkbridge/internal/lark"
)

// RecordFormat is the value of data-lark-record-format on the payload span
const RecordFormat = "docx/record"

// DiagramFallback is shown in place of a diagram with no source
const DiagramFallback = "暂时无法在飞书文档外展示此内容"

// ImageFallback is shown in place of an image block
const ImageFallback = "[markdown-to-lark 暂无法支持图片转换]"

const recordAttr = "data-lark-record-data"

// ErrNoRecordData is returned by Extract when the fragment carries no
// record payload.
var ErrNoRecordData = errors.New("no lark record data in html")

var (
	attrEscaper = strings.NewReplacer("&", "&amp;", `"`, "&quot;", "<", "&lt;", ">", "&gt;")
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;", "'", "&#039;")
)

// Render produces the full clipboard fragment: a visible rendering of the
// top-level blocks followed by a span carrying the JSON payload.
func Render(data *lark.ClipboardData) (string, error) {
	if data == nil || data.RecordMap == nil {
		return "", nil
	}

	payload, err := encodeJSON(data)
	if err != nil {
		return "", fmt.Errorf("encode record data: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<meta charset="utf-8"><div data-page-id="%s" data-lark-html-role="root" data-docx-has-block-data="true">`, textEscaper.Replace(data.RootID))
	for _, id := range data.RecordIDs {
		b.WriteString(BlockHTML(data, id))
	}
	fmt.Fprintf(&b, `</div><span %s="%s" data-lark-record-format="%s" class="lark-record-clipboard"></span>`, recordAttr, attrEscaper.Replace(payload), RecordFormat)
	return b.String(), nil
}

// encodeJSON marshals without Go's < style escaping so the attribute
// carries plain entities only.
func encodeJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// Extract finds the record payload in a clipboard html fragment and
// decodes it.
func Extract(fragment string) (*lark.ClipboardData, error) {
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("tokenize html: %w", err)
			}
			return nil, ErrNoRecordData

		case html.StartTagToken, html.SelfClosingTagToken:
			for _, attr := range z.Token().Attr {
				if attr.Key != recordAttr {
					continue
				}
				var data lark.ClipboardData
				if err := json.Unmarshal([]byte(attr.Val), &data); err != nil {
					return nil, fmt.Errorf("decode record data: %w", err)
				}
				return &data, nil
			}
		}
	}
}
