package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gerunddev/larkbridge/internal/lark"
	"github.com/gerunddev/larkbridge/internal/richtext"
)

func TestConvertTableRecords(t *testing.T) {
	data := newTestConverter().Convert("| name | qty |\n| --- | --: |\n| **pen** | 2 |")
	blocks := topLevel(t, data)
	require.Len(t, blocks, 1)

	table := blocks[0]
	assert.Equal(t, lark.TypeTable, table.Type)
	require.Len(t, table.ColumnsID, 2)
	require.Len(t, table.RowsID, 2)
	assert.Len(t, table.Children, 4)
	assert.Len(t, table.CellSet, 4)

	for _, col := range table.ColumnsID {
		assert.Regexp(t, `^col[0-9a-f]{32}$`, col)
		assert.Equal(t, 200, table.ColumnSet[col].ColumnWidth)
	}
	for _, row := range table.RowsID {
		assert.Regexp(t, `^row[0-9a-f]{32}$`, row)
	}

	wantText := [][]string{{"name", "qty"}, {"pen", "2"}}
	wantAlign := []string{AlignLeft, AlignRight}
	tableID := data.RecordIDs[0]

	for r, row := range table.RowsID {
		for c, col := range table.ColumnsID {
			info, ok := table.CellSet[row+col]
			require.True(t, ok)
			assert.Equal(t, lark.MergeInfo{RowSpan: 1, ColSpan: 1}, info.MergeInfo)
			assert.Equal(t, table.Children[r*2+c], info.BlockID)

			cell := data.Lookup(info.BlockID)
			require.NotNil(t, cell)
			assert.Equal(t, lark.TypeTableCell, cell.Type)
			assert.Equal(t, tableID, cell.ParentID)
			require.Len(t, cell.Children, 1)

			text := data.Lookup(cell.Children[0])
			require.NotNil(t, text)
			assert.Equal(t, lark.TypeText, text.Type)
			assert.Equal(t, info.BlockID, text.ParentID)
			assert.Equal(t, wantText[r][c], text.Text.FullText())
			assert.Equal(t, wantAlign[c], *text.Align)
		}
	}

	bold := data.Lookup(table.CellSet[table.RowsID[1]+table.ColumnsID[0]].BlockID)
	assert.Equal(t, "**pen**", richtext.Markdown(bold.Text))
}

func TestTableMarkdownRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			"right aligned column",
			"| a | b |\n| --- | ---: |\n| 1 | 2 |",
			"| a | b |\n| :--- | ---: |\n| 1 | 2 |",
		},
		{
			"center",
			"| x |\n|:-:|\n| y |",
			"| x |\n| :--: |\n| y |",
		},
		{
			"escaped pipe",
			"| a |\n| --- |\n| b \\| c |",
			"| a |\n| :--- |\n| b \\| c |",
		},
		{
			"short row padded",
			"| a | b |\n| --- | --- |\n| 1 |",
			"| a | b |\n| :--- | :--- |\n| 1 |  |",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestConverter()
			assert.Equal(t, tt.want, c.ToMarkdown(c.Convert(tt.input)))
		})
	}
}

func TestTableMarkdownMissingCells(t *testing.T) {
	table := &lark.Snapshot{
		Type:      lark.TypeTable,
		ColumnsID: []string{"c1", "c2"},
		RowsID:    []string{"r1"},
		CellSet: map[string]lark.CellInfo{
			"r1c1": {BlockID: "cell"},
			"r1c2": {BlockID: "nowhere"},
		},
		Children: []string{"cell"},
	}
	data := tree([]string{"t"}, map[string]*lark.Snapshot{
		"t":    table,
		"cell": {Type: lark.TypeTableCell, Children: []string{"txt"}},
		"txt":  {Type: lark.TypeText, Align: lark.Ptr(AlignCenter), Text: richtext.Plain("1", "v")},
	})

	assert.Equal(t, "| v |  |\n| :--: | :--- |", LarkToMarkdown(data))
}

func TestTableWithoutAxesRendersNothing(t *testing.T) {
	data := tree([]string{"t", "p"}, map[string]*lark.Snapshot{
		"t":    {Type: lark.TypeTable, Children: []string{"cell"}},
		"cell": {Type: lark.TypeTableCell, Children: []string{"txt"}},
		"txt":  textSnap("hidden"),
		"p":    textSnap("after"),
	})
	assert.Equal(t, "after", LarkToMarkdown(data))
}
