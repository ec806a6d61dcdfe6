package richtext

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf16"
)

var (
	markdownLinkRe = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	bareURLRe      = regexp.MustCompile("https?://[^\\s<>\"{}|\\\\^`\\[\\]]+")
)

// UTF16Len returns the length of s in UTF-16 code units
func UTF16Len(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

func toUTF16(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

func fromUTF16(u []uint16) string {
	return string(utf16.Decode(u))
}

// EncodeURIComponent percent-encodes s the way JavaScript's
// encodeURIComponent does: everything except A-Z a-z 0-9 - _ . ! ~ * ' ( )
func EncodeURIComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

// DecodeURIComponent reverses EncodeURIComponent. Malformed input is
// returned unchanged.
func DecodeURIComponent(s string) string {
	out, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return out
}

func isUnreserved(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}

// LinkifyBareURLs rewrites bare http(s) URLs as [url](url), leaving
// existing [text](url) spans alone.
func LinkifyBareURLs(s string) string {
	spans := markdownLinkRe.FindAllStringIndex(s, -1)

	var b strings.Builder
	last := 0
	for _, sp := range spans {
		b.WriteString(bareURLRe.ReplaceAllString(s[last:sp[0]], "[$0]($0)"))
		b.WriteString(s[sp[0]:sp[1]])
		last = sp[1]
	}
	b.WriteString(bareURLRe.ReplaceAllString(s[last:], "[$0]($0)"))
	return b.String()
}
