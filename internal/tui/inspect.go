package tui

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gerunddev/larkbridge/internal/convert"
	"github.com/gerunddev/larkbridge/internal/lark"
	"github.com/gerunddev/larkbridge/internal/richtext"
	"github.com/gerunddev/larkbridge/internal/styles"
)

const previewWidth = 48

// Row is one record of the block tree, flattened in document order
type Row struct {
	ID       string
	Type     lark.BlockType
	Depth    int
	Children int
	Preview  string
}

// Rows flattens the block tree under data.RootID depth first. Records
// reached twice and missing children are skipped.
func Rows(data *lark.ClipboardData) []Row {
	if data == nil {
		return nil
	}
	var rows []Row
	seen := make(map[string]bool)

	var walk func(id string, depth int)
	walk = func(id string, depth int) {
		if seen[id] {
			return
		}
		snap := data.Lookup(id)
		if snap == nil {
			return
		}
		seen[id] = true
		rows = append(rows, Row{
			ID:       id,
			Type:     snap.Type,
			Depth:    depth,
			Children: len(snap.Children),
			Preview:  preview(snap),
		})
		for _, child := range snap.Children {
			walk(child, depth+1)
		}
	}

	if data.Lookup(data.RootID) != nil {
		walk(data.RootID, 0)
	} else {
		for _, id := range data.RecordIDs {
			walk(id, 1)
		}
	}
	return rows
}

// preview is a one line summary of a block's content
func preview(snap *lark.Snapshot) string {
	var s string
	switch snap.Type {
	case lark.TypePage:
		if snap.Title != nil {
			s = snap.Title.FullText()
		}
	case lark.TypeCode:
		if snap.Code != nil {
			s = *snap.Code
		}
	case lark.TypeDiagram:
		if snap.Data != nil {
			s = snap.Data.Data
		}
	case lark.TypeTable:
		s = fmt.Sprintf("%d×%d", len(snap.RowsID), len(snap.ColumnsID))
	default:
		if snap.Text != nil {
			s = richtext.PlainText(snap.Text)
		}
	}
	s = strings.ReplaceAll(strings.TrimSpace(s), "\n", " ⏎ ")
	if r := []rune(s); len(r) > previewWidth {
		s = string(r[:previewWidth-1]) + "…"
	}
	return s
}

type inspectModel struct {
	table         table.Model
	viewport      viewport.Model
	data          *lark.ClipboardData
	rows          []Row
	source        string
	converter     *convert.Converter
	showingDetail bool
	selected      *Row
	width         int
	height        int
}

// InitInspectModel creates a browser over the records of data
func InitInspectModel(source string, data *lark.ClipboardData, c *convert.Converter) inspectModel {
	columns := []table.Column{
		{Title: "Block", Width: 24},
		{Title: "Record", Width: 24},
		{Title: "Kids", Width: 5},
		{Title: "Content", Width: previewWidth},
	}

	rows := Rows(data)
	tableRows := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		tableRows = append(tableRows, table.Row{
			strings.Repeat("  ", r.Depth) + string(r.Type),
			r.ID,
			fmt.Sprintf("%d", r.Children),
			r.Preview,
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(tableRows),
		table.WithFocused(true),
		table.WithHeight(20),
	)

	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(styles.Border)).
		BorderBottom(true).
		Bold(false)
	ts.Selected = styles.SelectedStyle
	t.SetStyles(ts)

	vp := viewport.New(100, 20)
	vp.Style = styles.PaneStyle

	if c == nil {
		c = convert.New()
	}

	return inspectModel{
		table:     t,
		viewport:  vp,
		data:      data,
		rows:      rows,
		source:    source,
		converter: c,
	}
}

func (m inspectModel) Init() tea.Cmd {
	return nil
}

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(msg.Height-10, 3))
		m.viewport.Width = max(msg.Width-4, 20)
		m.viewport.Height = max(msg.Height-8, 3)

	case tea.KeyMsg:
		if m.showingDetail {
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "q", "esc":
				m.showingDetail = false
				return m, nil
			case "up", "k", "down", "j", "pgup", "pgdown":
				m.viewport, cmd = m.viewport.Update(msg)
				return m, cmd
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "up", "k", "down", "j", "pgup", "pgdown", "home", "end":
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		case "enter", "d":
			idx := m.table.Cursor()
			if idx >= 0 && idx < len(m.rows) {
				m.selected = &m.rows[idx]
				m.showingDetail = true
				m.viewport.SetContent(m.detail(m.selected.ID))
				m.viewport.GotoTop()
			}
			return m, nil
		}
	}

	return m, nil
}

// detail shows the Markdown the block renders back to, then its snapshot
func (m inspectModel) detail(id string) string {
	var b strings.Builder

	snap := m.data.Lookup(id)
	if snap == nil {
		return errorStyle.Render("record " + id + " is missing")
	}

	if snap.Type != lark.TypePage {
		sub := &lark.ClipboardData{RecordMap: m.data.RecordMap, RecordIDs: []string{id}}
		if md := m.converter.ToMarkdown(sub); md != "" {
			b.WriteString(labelStyle.Render("Markdown"))
			b.WriteString("\n")
			b.WriteString(md)
			b.WriteString("\n\n")
		}
	}

	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		b.WriteString(errorStyle.Render("✗ " + err.Error()))
		return b.String()
	}
	b.WriteString(labelStyle.Render("Snapshot"))
	b.WriteString("\n")
	b.Write(raw)
	return b.String()
}

func (m inspectModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("larkbridge inspector"))
	if m.source != "" {
		b.WriteString(" " + helpStyle.Render(m.source))
	}
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString(helpStyle.Render("No records"))
		b.WriteString("\n")
		return b.String()
	}

	if m.showingDetail && m.selected != nil {
		b.WriteString(styles.BlockType(m.selected.Type))
		b.WriteString(" ")
		b.WriteString(valueStyle.Render(m.selected.ID))
		b.WriteString("\n\n")
		b.WriteString(m.viewport.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("↑/k up • ↓/j down • esc/q back"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(labelStyle.Render(fmt.Sprintf("Records: %d", len(m.rows))))
	b.WriteString("\n\n")
	b.WriteString(tableStyle.Render(m.table.View()))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("↑/k up • ↓/j down • enter/d detail • q quit"))
	b.WriteString("\n")

	return b.String()
}
