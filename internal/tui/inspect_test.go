package tui

import (
	"math/rand"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gerunddev/larkbridge/internal/convert"
	"github.com/gerunddev/larkbridge/internal/ids"
	"github.com/gerunddev/larkbridge/internal/lark"
)

func testData(t *testing.T, md string) (*lark.ClipboardData, *convert.Converter) {
	t.Helper()
	c := convert.New(convert.WithIDs(ids.New(rand.New(rand.NewSource(3)))))
	return c.Convert(md), c
}

func TestRows(t *testing.T) {
	data, _ := testData(t, "# T\n\n- a\n  - b\n\n| x |\n|---|\n| 1 |")
	rows := Rows(data)

	var types []lark.BlockType
	var depths []int
	for _, r := range rows {
		types = append(types, r.Type)
		depths = append(depths, r.Depth)
	}

	assert.Equal(t, []lark.BlockType{
		lark.TypePage, lark.TypeHeading1, lark.TypeBullet, lark.TypeBullet,
		lark.TypeTable, lark.TypeTableCell, lark.TypeText, lark.TypeTableCell, lark.TypeText,
	}, types)
	assert.Equal(t, []int{0, 1, 1, 2, 1, 2, 3, 2, 3}, depths)
	assert.Equal(t, "T", rows[1].Preview)
	assert.Equal(t, 1, rows[2].Children)
	assert.Equal(t, "2×1", rows[4].Preview)
}

func TestRowsFallbackAndCycles(t *testing.T) {
	data := &lark.ClipboardData{
		RecordIDs: []string{"a", "missing"},
		RecordMap: map[string]*lark.Record{
			"a": {ID: "a", Snapshot: &lark.Snapshot{Type: lark.TypeQuote, Children: []string{"b"}}},
			"b": {ID: "b", Snapshot: &lark.Snapshot{Type: lark.TypeText, Children: []string{"a"}}},
		},
	}

	rows := Rows(data)
	require.Len(t, rows, 2)
	assert.Equal(t, "a", rows[0].ID)
	assert.Equal(t, 1, rows[0].Depth)
	assert.Equal(t, "b", rows[1].ID)
	assert.Nil(t, Rows(nil))
}

func TestPreview(t *testing.T) {
	long := strings.Repeat("x", 100)
	data, _ := testData(t, "```go\nfmt.Println()\nreturn\n```\n\n```mermaid\ngraph TD\n```\n\n"+long)
	rows := Rows(data)
	require.Len(t, rows, 4)

	assert.Equal(t, "fmt.Println() ⏎ return", rows[1].Preview)
	assert.Equal(t, "graph TD", rows[2].Preview)
	assert.Equal(t, previewWidth, len([]rune(rows[3].Preview)))
	assert.True(t, strings.HasSuffix(rows[3].Preview, "…"))
}

func TestInspectNavigation(t *testing.T) {
	data, c := testData(t, "# Title\n\nbody")
	m := InitInspectModel("doc.md", data, c)

	view := m.View()
	assert.Contains(t, view, "larkbridge inspector")
	assert.Contains(t, view, "Records: 3")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(inspectModel)

	require.True(t, m.showingDetail)
	assert.Equal(t, data.RecordIDs[0], m.selected.ID)

	detail := m.detail(m.selected.ID)
	assert.Contains(t, detail, "# Title")
	assert.Contains(t, detail, `"type": "heading1"`)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(inspectModel)
	assert.False(t, m.showingDetail)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestInspectEmpty(t *testing.T) {
	m := InitInspectModel("", &lark.ClipboardData{}, nil)
	assert.Contains(t, m.View(), "No records")
}
