package lark

import "strings"

// BlockType is the snapshot type tag
type BlockType string

const (
	TypePage      BlockType = "page"
	TypeText      BlockType = "text"
	TypeHeading1  BlockType = "heading1"
	TypeHeading2  BlockType = "heading2"
	TypeHeading3  BlockType = "heading3"
	TypeHeading4  BlockType = "heading4"
	TypeHeading5  BlockType = "heading5"
	TypeHeading6  BlockType = "heading6"
	TypeQuote     BlockType = "quote"
	TypeBullet    BlockType = "bullet"
	TypeOrdered   BlockType = "ordered"
	TypeTodo      BlockType = "todo"
	TypeCode      BlockType = "code"
	TypeDivider   BlockType = "divider"
	TypeDiagram   BlockType = "isv"
	TypeEquation  BlockType = "equation"
	TypeImage     BlockType = "image"
	TypeTable     BlockType = "table"
	TypeTableCell BlockType = "table_cell"
)

// HeadingType returns the block type for a heading of the given depth,
// clamped to 1..6.
func HeadingType(level int) BlockType {
	switch {
	case level < 1:
		level = 1
	case level > 6:
		level = 6
	}
	return BlockType("heading" + string(rune('0'+level)))
}

// HeadingLevel returns 1..6 for heading types and 0 otherwise
func (t BlockType) HeadingLevel() int {
	s := string(t)
	if !strings.HasPrefix(s, "heading") || len(s) != len("heading")+1 {
		return 0
	}
	n := int(s[len(s)-1] - '0')
	if n < 1 || n > 6 {
		return 0
	}
	return n
}

// IsList reports whether t is a list item type
func (t BlockType) IsList() bool {
	switch t {
	case TypeBullet, TypeOrdered, TypeTodo:
		return true
	}
	return false
}

// Known reports whether t belongs to the closed set of supported types
func (t BlockType) Known() bool {
	switch t {
	case TypePage, TypeText, TypeQuote, TypeBullet, TypeOrdered, TypeTodo,
		TypeCode, TypeDivider, TypeDiagram, TypeEquation, TypeImage,
		TypeTable, TypeTableCell:
		return true
	}
	return t.HeadingLevel() > 0
}
