// Package convert translates between Markdown and the Lark docx clipboard
// record format.
package convert

import (
	"bytes"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/gerunddev/larkbridge/internal/ids"
	"github.com/gerunddev/larkbridge/internal/lark"
	"github.com/gerunddev/larkbridge/internal/logger"
	"github.com/gerunddev/larkbridge/internal/richtext"
)

// DefaultMaxNesting bounds how deep lists and blockquotes are descended
const DefaultMaxNesting = 32

// ImagePlaceholder replaces every image in the output
const ImagePlaceholder = " [markdown-to-lark 暂无法支持图片转换] "

const (
	diagramBlockTypeID = "blk_631fefbbae02400430b8f9f4"
	diagramAppVersion  = "0.0.112"
	defaultLanguage    = "plaintext"
	columnWidth        = 200
)

// Converter turns Markdown into clipboard data. A Converter holds only
// configuration, so one value can serve concurrent calls.
type Converter struct {
	author      string
	ids         *ids.Generator
	maxNesting  int
	pageTitle   string
	frontMatter bool
	log         *logger.Logger
	md          goldmark.Markdown
}

// Option configures a Converter
type Option func(*Converter)

// WithAuthor sets the author id stamped on blocks and text runs
func WithAuthor(author string) Option {
	return func(c *Converter) {
		if author != "" {
			c.author = author
		}
	}
}

// WithIDs sets the identifier generator
func WithIDs(g *ids.Generator) Option {
	return func(c *Converter) {
		if g != nil {
			c.ids = g
		}
	}
}

// WithMaxNesting sets how many list or blockquote levels are descended
func WithMaxNesting(n int) Option {
	return func(c *Converter) {
		if n > 0 {
			c.maxNesting = n
		}
	}
}

// WithPageTitle sets the title of the root page block
func WithPageTitle(title string) Option {
	return func(c *Converter) {
		if title != "" {
			c.pageTitle = title
		}
	}
}

// WithFrontMatter enables YAML front matter handling
func WithFrontMatter(enabled bool) Option {
	return func(c *Converter) {
		c.frontMatter = enabled
	}
}

// WithLogger sets the logger used for debug diagnostics
func WithLogger(l *logger.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.log = l
		}
	}
}

// New creates a converter
func New(opts ...Option) *Converter {
	c := &Converter{
		author:      lark.DefaultAuthorID,
		ids:         ids.Default(),
		maxNesting:  DefaultMaxNesting,
		pageTitle:   lark.DefaultPageTitle,
		frontMatter: true,
		log:         logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.md = goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			Math,
		),
	)
	return c
}

// Author returns the configured author id
func (c *Converter) Author() string {
	return c.author
}

// conversion holds everything accumulated during one Convert call
type conversion struct {
	*Converter
	source []byte
	data   *lark.ClipboardData
	rootID string
	top    []string
}

// Convert parses markdown and builds the clipboard payload. It never fails:
// anything without a block mapping is dropped.
func (c *Converter) Convert(markdown string) *lark.ClipboardData {
	start := time.Now()

	title := c.pageTitle
	body := markdown
	if c.frontMatter {
		if fm, rest, ok := splitFrontMatter(markdown); ok {
			body = rest
			if fm.Title != "" {
				title = fm.Title
			}
		}
	}

	cv := &conversion{
		Converter: c,
		source:    []byte(normalizeMathBlocks(body)),
		rootID:    c.ids.PageID(),
	}
	doc := c.md.Parser().Parse(text.NewReader(cv.source))

	cv.data = &lark.ClipboardData{
		RootID:     cv.rootID,
		ParentID:   cv.rootID,
		RecordMap:  make(map[string]*lark.Record),
		PayloadMap: lark.Object{},
		Selection:  []any{},
		Extra: lark.Extra{
			Channel:               "saas",
			PasteRandomID:         c.ids.RandomID(),
			MentionPageTitle:      map[string]string{},
			ExternalMentionURL:    map[string]string{},
			IsEqualBlockSelection: true,
		},
		PasteFlag: c.ids.RandomID(),
	}

	page := cv.pageSnapshot(title)
	cv.data.Put(cv.rootID, page)

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		cv.topLevel(n)
	}

	page.Children = append([]string{}, cv.top...)
	cv.data.RecordIDs = append([]string{}, cv.top...)
	cv.data.BlockIDs = make([]int, len(cv.top))
	for i := range cv.data.BlockIDs {
		cv.data.BlockIDs[i] = i + 1
	}

	c.log.ConversionCompleted("markdown", len(cv.data.RecordMap), time.Since(start))
	return cv.data
}

func (cv *conversion) pageSnapshot(title string) *lark.Snapshot {
	return &lark.Snapshot{
		Type:      lark.TypePage,
		ParentID:  "",
		Comments:  nil,
		Revisions: nil,
		Author:    cv.author,
		Children:  []string{},
		Text:      richtext.Empty(),
		Align:     lark.Ptr(""),
		PageStyle: &lark.Object{},
		Title: &lark.TextData{
			Apool: lark.Apool{NextNum: 0, NumToAttrib: map[string]lark.Attrib{}},
			InitialAttributedTexts: lark.AttributedTexts{
				Attribs: lark.Attribs{},
				Text:    map[string]string{"0": title},
			},
		},
	}
}

// block returns a snapshot with the fields every non-page block shares
func (cv *conversion) block(t lark.BlockType, parent string) *lark.Snapshot {
	return &lark.Snapshot{
		Type:      t,
		ParentID:  parent,
		Comments:  []any{},
		Revisions: []any{},
		Author:    cv.author,
		Children:  []string{},
	}
}

func (cv *conversion) add(snap *lark.Snapshot) string {
	id := cv.ids.RecordID()
	cv.data.Put(id, snap)
	return id
}

func (cv *conversion) appendTop(ids ...string) {
	cv.top = append(cv.top, ids...)
}

func (cv *conversion) topLevel(n ast.Node) {
	switch node := n.(type) {
	case *ast.Heading:
		snap := cv.block(lark.HeadingType(node.Level), cv.rootID)
		snap.Text = cv.encode(cv.inline(node))
		snap.Level = node.Level
		snap.Folded = lark.Ptr(false)
		cv.appendTop(cv.add(snap))

	case *ast.Paragraph, *ast.TextBlock:
		cv.appendTop(cv.add(cv.textSnapshot(cv.rootID, cv.inline(node), "")))

	case *ast.Blockquote:
		snap := cv.block(lark.TypeQuote, cv.rootID)
		snap.Text = cv.encode(cv.quote(node))
		snap.Folded = lark.Ptr(false)
		cv.appendTop(cv.add(snap))

	case *ast.FencedCodeBlock:
		code := cv.lines(node)
		lang := string(node.Language(cv.source))
		if strings.EqualFold(lang, "mermaid") {
			cv.appendTop(cv.diagram(code))
			return
		}
		cv.appendTop(cv.add(cv.codeSnapshot(code, lang)))

	case *ast.CodeBlock:
		cv.appendTop(cv.add(cv.codeSnapshot(cv.lines(node), "")))

	case *ast.ThematicBreak:
		snap := cv.block(lark.TypeDivider, cv.rootID)
		snap.Folded = lark.Ptr(false)
		cv.appendTop(cv.add(snap))

	case *MathBlock:
		seg := richtext.Segment{
			Text:     richtext.EquationPlaceholder,
			Equation: node.Value(cv.source) + richtext.DisplaySuffix,
		}
		cv.appendTop(cv.add(cv.textSnapshot(cv.rootID, []richtext.Segment{seg}, "")))

	case *extast.Table:
		cv.appendTop(cv.table(node))

	case *ast.List:
		cv.appendTop(cv.list(node, cv.rootID, 1)...)

	default:
		cv.log.NodeDropped(n.Kind().String())
	}
}

func (cv *conversion) textSnapshot(parent string, segs []richtext.Segment, align string) *lark.Snapshot {
	snap := cv.block(lark.TypeText, parent)
	snap.Text = cv.encode(segs)
	snap.Align = lark.Ptr(align)
	snap.Folded = lark.Ptr(false)
	return snap
}

func (cv *conversion) codeSnapshot(code, lang string) *lark.Snapshot {
	if lang == "" {
		lang = defaultLanguage
	}
	snap := cv.block(lark.TypeCode, cv.rootID)
	snap.Language = lang
	snap.Code = lark.Ptr(code)
	snap.Text = richtext.Plain(cv.author, code)
	snap.IsLanguagePicked = lark.Ptr(true)
	snap.Caption = &lark.Caption{Text: &lark.TextData{
		Apool: lark.Apool{NextNum: 0, NumToAttrib: map[string]lark.Attrib{}},
		InitialAttributedTexts: lark.AttributedTexts{
			Attribs: lark.Attribs{"0": "|1+1"},
			Text:    map[string]string{"0": "\n"},
		},
	}}
	snap.Wrap = lark.Ptr(false)
	snap.Folded = lark.Ptr(false)
	return snap
}

func (cv *conversion) diagram(code string) string {
	snap := &lark.Snapshot{
		Type:     lark.TypeDiagram,
		ParentID: cv.rootID,
		Author:   cv.author,
		Children: []string{},
		Data: &lark.DiagramData{
			Data:  code,
			Theme: "default",
			View:  "codeChart",
		},
		AppBlockID:  lark.Ptr(""),
		BlockTypeID: diagramBlockTypeID,
		Manifest: &lark.Manifest{
			ViewType:   "block_h5",
			AppVersion: diagramAppVersion,
		},
		CommentDetails:       &lark.Object{},
		InteractionDataToken: cv.ids.RandomID(),
	}
	id := cv.add(snap)
	cv.log.DiagramBlock(id, cv.ids.BlockID())
	return id
}

// list lays out the items of l under parent and returns their record ids
func (cv *conversion) list(l *ast.List, parent string, level int) []string {
	if level > cv.maxNesting {
		cv.log.DepthLimit("list", level, cv.maxNesting)
		return nil
	}

	var out []string
	index := 0
	for n := l.FirstChild(); n != nil; n = n.NextSibling() {
		item, ok := n.(*ast.ListItem)
		if !ok {
			continue
		}
		index++

		snap := cv.block(lark.TypeBullet, parent)
		if l.IsOrdered() {
			snap.Type = lark.TypeOrdered
			snap.Seq = "auto"
			if index == 1 {
				snap.Seq = "1"
			}
		}
		snap.Align = lark.Ptr("")
		snap.Folded = lark.Ptr(false)
		snap.Level = level

		var segs []richtext.Segment
		if first := item.FirstChild(); first != nil {
			switch first.(type) {
			case *ast.Paragraph, *ast.TextBlock:
				if box, ok := first.FirstChild().(*extast.TaskCheckBox); ok {
					snap.Type = lark.TypeTodo
					snap.Seq = ""
					snap.Done = lark.Ptr(box.IsChecked)
				}
				segs = cv.inline(first)
			}
		}
		snap.Text = cv.encode(segs)

		id := cv.add(snap)
		for child := item.FirstChild(); child != nil; child = child.NextSibling() {
			if nested, ok := child.(*ast.List); ok {
				snap.Children = append(snap.Children, cv.list(nested, id, level+1)...)
			}
		}
		out = append(out, id)
	}
	return out
}

// quote flattens a blockquote into one segment list, separating logical
// paragraphs with a blank line.
func (cv *conversion) quote(q *ast.Blockquote) []richtext.Segment {
	var segs []richtext.Segment
	var walk func(n ast.Node, depth int)
	walk = func(n ast.Node, depth int) {
		if depth > cv.maxNesting {
			cv.log.DepthLimit("blockquote", depth, cv.maxNesting)
			return
		}
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			switch c := child.(type) {
			case *ast.Blockquote:
				walk(c, depth+1)
			case *ast.Paragraph, *ast.TextBlock, *ast.Heading:
				if len(segs) > 0 {
					segs = append(segs, richtext.Segment{Text: "\n\n"})
				}
				segs = append(segs, cv.inline(c)...)
			default:
				cv.log.NodeDropped(child.Kind().String())
			}
		}
	}
	walk(q, 1)
	return mergeSegments(segs)
}

func (cv *conversion) encode(segs []richtext.Segment) *lark.TextData {
	return richtext.Encode(cv.author, segs)
}

// lines joins the raw lines of a code block without the trailing newline
func (cv *conversion) lines(n ast.Node) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(cv.source))
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// inline flattens the inline children of n into merged segments
func (cv *conversion) inline(n ast.Node) []richtext.Segment {
	var segs []richtext.Segment
	cv.inlineChildren(n, richtext.Segment{}, &segs)
	return mergeSegments(segs)
}

// inlineChildren walks inline nodes, carrying the accumulated style in
// style. Only the style fields of style are used.
func (cv *conversion) inlineChildren(n ast.Node, style richtext.Segment, out *[]richtext.Segment) {
	emit := func(s string) {
		seg := style
		seg.Text = s
		*out = append(*out, seg)
	}

	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch node := child.(type) {
		case *ast.Text:
			emit(textValue(node.Segment.Value(cv.source)))
			if node.SoftLineBreak() || node.HardLineBreak() {
				emit("\n")
			}

		case *ast.String:
			emit(string(node.Value))

		case *ast.Emphasis:
			s := style
			if node.Level >= 2 {
				s.Bold = true
			} else {
				s.Italic = true
			}
			cv.inlineChildren(node, s, out)

		case *extast.Strikethrough:
			s := style
			s.Strikethrough = true
			cv.inlineChildren(node, s, out)

		case *ast.Link:
			s := style
			s.LinkURL = string(node.Destination)
			cv.inlineChildren(node, s, out)

		case *ast.AutoLink:
			seg := style
			seg.Text = string(node.Label(cv.source))
			seg.LinkURL = string(node.URL(cv.source))
			if node.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(strings.ToLower(seg.LinkURL), "mailto:") {
				seg.LinkURL = "mailto:" + seg.LinkURL
			}
			*out = append(*out, seg)

		case *ast.CodeSpan:
			var buf bytes.Buffer
			for c := node.FirstChild(); c != nil; c = c.NextSibling() {
				if t, ok := c.(*ast.Text); ok {
					buf.Write(t.Segment.Value(cv.source))
				}
			}
			emit(buf.String())

		case *ast.Image:
			emit(ImagePlaceholder)

		case *InlineMath:
			*out = append(*out, richtext.Segment{
				Text:     richtext.EquationPlaceholder,
				Equation: string(node.Equation),
			})

		case *extast.TaskCheckBox:
			// carried by the list item's done field

		case *ast.RawHTML:
			cv.log.NodeDropped(node.Kind().String())

		default:
			cv.inlineChildren(child, style, out)
		}
	}
}

// textValue resolves backslash escapes and entity references in a text
// node
func textValue(v []byte) string {
	v = util.UnescapePunctuations(v)
	v = util.ResolveNumericReferences(v)
	v = util.ResolveEntityNames(v)
	return string(v)
}

// mergeSegments joins neighbours with identical styling
func mergeSegments(segs []richtext.Segment) []richtext.Segment {
	var out []richtext.Segment
	for _, s := range segs {
		if s.Text == "" {
			continue
		}
		if len(out) > 0 && out[len(out)-1].SameStyle(s) {
			out[len(out)-1].Text += s.Text
			continue
		}
		out = append(out, s)
	}
	return out
}

var defaultConverter = New()

// MarkdownToLark converts markdown with the default converter
func MarkdownToLark(markdown string) *lark.ClipboardData {
	return defaultConverter.Convert(markdown)
}
