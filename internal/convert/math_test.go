package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gerunddev/larkbridge/internal/richtext"
)

func TestNormalizeMathBlocks(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"single line", "$$x+y$$", "$$\nx+y\n$$"},
		{"indented", "  $$ a $$  ", "$$\na\n$$"},
		{"inside text untouched", "cost $$5$$ total", "cost $$5$$ total"},
		{"already fenced", "$$\nx\n$$", "$$\nx\n$$"},
		{"between paragraphs", "a\n\n$$b$$\n\nc", "a\n\n$$\nb\n$$\n\nc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeMathBlocks(tt.input))
		})
	}
}

func TestMathBlockPayload(t *testing.T) {
	blocks := topLevel(t, newTestConverter().Convert("$$\n\\frac{a}{b}\n$$"))
	require.Len(t, blocks, 1)

	td := blocks[0].Text
	assert.Equal(t, richtext.EquationPlaceholder, td.FullText())
	assert.Equal(t, "*0*1+1", td.Runs())
	assert.Equal(t, "equation", td.Apool.NumToAttrib["1"].Name())
	assert.Equal(t, `\frac{a}{b}`+richtext.DisplaySuffix, richtext.DecodeURIComponent(td.Apool.NumToAttrib["1"].Value()))
}

func TestMultiLineMathBlock(t *testing.T) {
	c := newTestConverter()
	out := c.ToMarkdown(c.Convert("$$\na = 1\nb = 2\n$$"))
	assert.Equal(t, "$$a = 1\nb = 2$$", out)
}

func TestMathBlockAtEndOfDocument(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		blocks int
		want   string
	}{
		{"bare", "$$x$$", 1, "$$x$$"},
		{"fenced no newline", "$$\nx\n$$", 1, "$$x$$"},
		{"fenced trailing newline", "$$\nx\n$$\n", 1, "$$x$$"},
		{"after paragraph", "a\n\n$$x$$", 2, "a\n\n$$x$$"},
		{"unclosed", "$$\nx", 1, "$$x$$"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestConverter()
			data := c.Convert(tt.input)
			assert.Len(t, topLevel(t, data), tt.blocks)
			assert.Len(t, data.RecordIDs, tt.blocks)
			assert.Equal(t, tt.want, c.ToMarkdown(data))
		})
	}
}

func TestInlineMath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		equation string
		text     string
	}{
		{"simple", "$x$", "x", "E"},
		{"in sentence", "a $b^2$ c", "b^2", "a E c"},
		{"leading space rejected", "$ x$", "", "$ x$"},
		{"trailing space rejected", "$x $", "", "$x $"},
		{"unclosed", "costs $5", "", "costs $5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := topLevel(t, newTestConverter().Convert(tt.input))
			require.Len(t, blocks, 1)
			td := blocks[0].Text
			assert.Equal(t, tt.text, td.FullText())

			var eq string
			for _, a := range td.Apool.NumToAttrib {
				if a.Name() == richtext.AttrEquation {
					eq = richtext.DecodeURIComponent(a.Value())
				}
			}
			assert.Equal(t, tt.equation, eq)
		})
	}
}
