// Package richtext implements the attribute-run text codec shared by both
// conversion directions.
//
// A payload is a concatenated string plus a run encoding such as
// "*0+4*0*1+3*0+4": each run lists the apool indices active for it after
// '*' and its length after '+'. Lengths are decimal and count UTF-16 code
// units.
package richtext

import (
	"strconv"
	"strings"

	"github.com/gerunddev/larkbridge/internal/lark"
)

// Attribute names
const (
	AttrAuthor        = "author"
	AttrLink          = "link"
	AttrBold          = "bold"
	AttrItalic        = "italic"
	AttrUnderline     = "underline"
	AttrStrikethrough = "strikethrough"
	AttrEquation      = "equation"
)

// DisplaySuffix marks an equation value as a display (block) equation
const DisplaySuffix = "_display"

// EquationPlaceholder is the visible character standing in for an equation
const EquationPlaceholder = "E"

// Segment is a piece of text with uniform styling
type Segment struct {
	Text          string
	LinkURL       string
	Bold          bool
	Italic        bool
	Underline     bool
	Strikethrough bool
	Equation      string
}

// SameStyle reports whether s and o can be merged into one segment.
// Links and equations never merge.
func (s Segment) SameStyle(o Segment) bool {
	return s.LinkURL == "" && o.LinkURL == "" &&
		s.Equation == "" && o.Equation == "" &&
		s.Bold == o.Bold && s.Italic == o.Italic &&
		s.Underline == o.Underline && s.Strikethrough == o.Strikethrough
}

// Empty returns the degenerate payload used for empty text
func Empty() *lark.TextData {
	return &lark.TextData{
		Apool: lark.Apool{
			NextNum:     0,
			NumToAttrib: map[string]lark.Attrib{},
		},
		InitialAttributedTexts: lark.AttributedTexts{
			Attribs: nil,
			Text:    map[string]string{"0": ""},
			Rows:    &lark.Object{},
			Cols:    &lark.Object{},
		},
	}
}

// Plain encodes a single unstyled string
func Plain(author, text string) *lark.TextData {
	return Encode(author, []Segment{{Text: text}})
}

// Encode builds a payload from segments. Empty segments are skipped; when
// nothing remains the empty sentinel is returned.
func Encode(author string, segments []Segment) *lark.TextData {
	p := newPool(author)

	var runs, text strings.Builder
	for _, seg := range segments {
		n := UTF16Len(seg.Text)
		if n == 0 {
			continue
		}
		text.WriteString(seg.Text)

		active := []int{0}
		if seg.LinkURL != "" {
			active = append(active, p.fresh(AttrLink, EncodeURIComponent(seg.LinkURL)))
		}
		if seg.Bold {
			active = append(active, p.intern(AttrBold, "true"))
		}
		if seg.Italic {
			active = append(active, p.intern(AttrItalic, "true"))
		}
		if seg.Underline {
			active = append(active, p.intern(AttrUnderline, "true"))
		}
		if seg.Strikethrough {
			active = append(active, p.intern(AttrStrikethrough, "true"))
		}
		if seg.Equation != "" {
			active = append(active, p.intern(AttrEquation, EncodeURIComponent(seg.Equation)))
		}

		for _, idx := range active {
			runs.WriteByte('*')
			runs.WriteString(strconv.Itoa(idx))
		}
		runs.WriteByte('+')
		runs.WriteString(strconv.Itoa(n))
	}

	if text.Len() == 0 {
		return Empty()
	}

	return &lark.TextData{
		Apool: lark.Apool{
			NextNum:     p.next,
			NumToAttrib: p.numToAttrib,
			AttribToNum: p.attribToNum,
		},
		InitialAttributedTexts: lark.AttributedTexts{
			Attribs: lark.Attribs{"0": runs.String()},
			Text:    map[string]string{"0": text.String()},
			Rows:    &lark.Object{},
			Cols:    &lark.Object{},
		},
	}
}

type pool struct {
	next        int
	numToAttrib map[string]lark.Attrib
	attribToNum map[string]int
}

func newPool(author string) *pool {
	return &pool{
		next:        1,
		numToAttrib: map[string]lark.Attrib{"0": {AttrAuthor, author}},
		attribToNum: map[string]int{AttrAuthor + "," + author: 0},
	}
}

// fresh always allocates a new index
func (p *pool) fresh(name, value string) int {
	idx := p.next
	p.next++
	p.numToAttrib[strconv.Itoa(idx)] = lark.Attrib{name, value}
	p.attribToNum[name+","+value] = idx
	return idx
}

// intern reuses the index of an identical attribute when one exists
func (p *pool) intern(name, value string) int {
	if idx, ok := p.attribToNum[name+","+value]; ok {
		return idx
	}
	return p.fresh(name, value)
}
