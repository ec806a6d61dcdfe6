package convert

import (
	"strings"

	extast "github.com/yuin/goldmark/extension/ast"

	"github.com/gerunddev/larkbridge/internal/lark"
	"github.com/gerunddev/larkbridge/internal/richtext"
)

// Cell alignments as stored on the text record inside a table cell
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

func alignmentName(a extast.Alignment) string {
	switch a {
	case extast.AlignCenter:
		return AlignCenter
	case extast.AlignRight:
		return AlignRight
	default:
		return AlignLeft
	}
}

// table emits the table record plus a table_cell and text record per cell
func (cv *conversion) table(t *extast.Table) string {
	var rows [][]*extast.TableCell
	for r := t.FirstChild(); r != nil; r = r.NextSibling() {
		switch r.(type) {
		case *extast.TableHeader, *extast.TableRow:
		default:
			continue
		}
		var cells []*extast.TableCell
		for c := r.FirstChild(); c != nil; c = c.NextSibling() {
			if cell, ok := c.(*extast.TableCell); ok {
				cells = append(cells, cell)
			}
		}
		rows = append(rows, cells)
	}

	cols := len(t.Alignments)
	if cols == 0 && len(rows) > 0 {
		cols = len(rows[0])
	}

	snap := cv.block(lark.TypeTable, cv.rootID)
	snap.ColumnsID = make([]string, cols)
	snap.RowsID = make([]string, len(rows))
	snap.ColumnSet = make(map[string]lark.ColumnInfo, cols)
	snap.CellSet = make(map[string]lark.CellInfo, cols*len(rows))

	for i := range snap.ColumnsID {
		col := cv.ids.ColumnID()
		snap.ColumnsID[i] = col
		snap.ColumnSet[col] = lark.ColumnInfo{ColumnWidth: columnWidth}
	}
	for i := range snap.RowsID {
		snap.RowsID[i] = cv.ids.RowID()
	}

	tableID := cv.ids.RecordID()
	for r, cells := range rows {
		for c := 0; c < len(cells) && c < cols; c++ {
			align := AlignLeft
			if c < len(t.Alignments) {
				align = alignmentName(t.Alignments[c])
			}
			segs := cv.inline(cells[c])

			cell := cv.block(lark.TypeTableCell, tableID)
			cell.Text = cv.encode(segs)
			cellID := cv.add(cell)

			textID := cv.add(cv.textSnapshot(cellID, segs, align))
			cell.Children = append(cell.Children, textID)

			snap.CellSet[snap.RowsID[r]+snap.ColumnsID[c]] = lark.CellInfo{
				BlockID:   cellID,
				MergeInfo: lark.MergeInfo{RowSpan: 1, ColSpan: 1},
			}
			snap.Children = append(snap.Children, cellID)
		}
	}

	cv.data.Put(tableID, snap)
	return tableID
}

var cellEscaper = strings.NewReplacer("|", `\|`, "\n", " ")

// tableMarkdown rebuilds a pipe table from the row and column axes. Missing
// cells render empty; the separator row takes its alignment from the first
// row.
func (r *rendering) tableMarkdown(snap *lark.Snapshot) string {
	if len(snap.ColumnsID) == 0 || len(snap.RowsID) == 0 || snap.CellSet == nil {
		return ""
	}

	cellText := func(row, col string) (string, string) {
		info, ok := snap.CellSet[row+col]
		if !ok || info.BlockID == "" {
			return "", AlignLeft
		}
		cell := r.data.Lookup(info.BlockID)
		if cell == nil || len(cell.Children) == 0 {
			return "", AlignLeft
		}
		text := r.data.Lookup(cell.Children[0])
		if text == nil {
			return "", AlignLeft
		}
		align := AlignLeft
		if text.Align != nil && *text.Align != "" {
			align = *text.Align
		}
		return richtext.Markdown(text.Text), align
	}

	var b strings.Builder
	for i, row := range snap.RowsID {
		cells := make([]string, len(snap.ColumnsID))
		aligns := make([]string, len(snap.ColumnsID))
		for j, col := range snap.ColumnsID {
			text, align := cellText(row, col)
			cells[j] = cellEscaper.Replace(text)
			aligns[j] = separator(align)
		}

		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |")
		if i == 0 {
			b.WriteString("\n| " + strings.Join(aligns, " | ") + " |")
		}
	}
	return b.String()
}

func separator(align string) string {
	switch align {
	case AlignCenter:
		return ":--:"
	case AlignRight:
		return "---:"
	default:
		return ":---"
	}
}
