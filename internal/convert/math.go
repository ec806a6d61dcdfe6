package convert

import (
	"bytes"
	"regexp"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindMathBlock is the node kind of a $$ display equation block
var KindMathBlock = ast.NewNodeKind("MathBlock")

// KindInlineMath is the node kind of a $...$ inline equation
var KindInlineMath = ast.NewNodeKind("InlineMath")

// MathBlock is a display equation delimited by $$ lines
type MathBlock struct {
	ast.BaseBlock
}

// Kind implements ast.Node
func (n *MathBlock) Kind() ast.NodeKind { return KindMathBlock }

// IsRaw implements ast.Node
func (n *MathBlock) IsRaw() bool { return true }

// Dump implements ast.Node
func (n *MathBlock) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

// Value returns the TeX source without the trailing newline
func (n *MathBlock) Value(source []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(source))
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}

// InlineMath is an inline equation
type InlineMath struct {
	ast.BaseInline
	Equation []byte
}

// Kind implements ast.Node
func (n *InlineMath) Kind() ast.NodeKind { return KindInlineMath }

// Dump implements ast.Node
func (n *InlineMath) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Equation": string(n.Equation)}, nil)
}

type mathBlockParser struct{}

func (p *mathBlockParser) Trigger() []byte { return []byte{'$'} }

func (p *mathBlockParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, segment := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 || !bytes.HasPrefix(line[pos:], []byte("$$")) {
		return nil, parser.NoChildren
	}
	if !util.IsBlank(line[pos+2:]) {
		return nil, parser.NoChildren
	}
	advanceToEOL(reader, line, segment)
	return &MathBlock{}, parser.NoChildren
}

func (p *mathBlockParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	line, segment := reader.PeekLine()
	if bytes.Equal(bytes.TrimSpace(line), []byte("$$")) {
		advanceToEOL(reader, line, segment)
		return parser.Close
	}
	node.Lines().Append(segment)
	advanceToEOL(reader, line, segment)
	return parser.Continue | parser.NoChildren
}

// advanceToEOL consumes the rest of the line up to, not including, its
// newline. The last line of the source may have none.
func advanceToEOL(reader text.Reader, line []byte, segment text.Segment) {
	n := segment.Len()
	if len(line) > 0 && line[len(line)-1] == '\n' {
		n--
	}
	reader.Advance(n)
}

func (p *mathBlockParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {}

func (p *mathBlockParser) CanInterruptParagraph() bool { return true }

func (p *mathBlockParser) CanAcceptIndentedLine() bool { return false }

type inlineMathParser struct{}

func (p *inlineMathParser) Trigger() []byte { return []byte{'$'} }

// Parse accepts $x$ where x is non-empty, does not start or end with a
// space and does not itself start with $.
func (p *inlineMathParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, _ := block.PeekLine()
	if len(line) < 3 || line[1] == '$' || util.IsSpace(line[1]) {
		return nil
	}
	end := bytes.IndexByte(line[1:], '$')
	if end <= 0 {
		return nil
	}
	value := line[1 : end+1]
	if util.IsSpace(value[len(value)-1]) {
		return nil
	}
	block.Advance(end + 2)
	return &InlineMath{Equation: append([]byte(nil), value...)}
}

type mathExtension struct{}

// Math adds $$ display blocks and $ inline equations to a goldmark parser
var Math goldmark.Extender = &mathExtension{}

func (e *mathExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithBlockParsers(util.Prioritized(&mathBlockParser{}, 701)),
		parser.WithInlineParsers(util.Prioritized(&inlineMathParser{}, 501)),
	)
}

var singleLineMathRe = regexp.MustCompile(`(?m)^[ \t]*\$\$([^\n]+?)\$\$[ \t]*$`)

// normalizeMathBlocks rewrites a line consisting of $$x$$ into a fenced
// $$ block so the block parser sees it.
func normalizeMathBlocks(markdown string) string {
	return singleLineMathRe.ReplaceAllStringFunc(markdown, func(m string) string {
		sub := singleLineMathRe.FindStringSubmatch(m)
		return "$$\n" + string(bytes.TrimSpace([]byte(sub[1]))) + "\n$$"
	})
}
