package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/gerunddev/larkbridge/internal/lark"
)

// Monokai Pro color palette
const (
	// Base colors
	Background = "#2D2A2E"
	Foreground = "#FCFCFA"

	// Accent colors
	Red     = "#FF6188" // Errors, danger
	Orange  = "#FC9867" // Warnings
	Yellow  = "#FFD866" // Highlights
	Green   = "#A9DC76" // Success
	Cyan    = "#78DCE8" // Info
	Purple  = "#AB9DF2" // Links, lists
	Magenta = "#FF6188" // Titles, emphasis

	// UI colors
	Comment = "#727072" // Dim text, help
	Border  = "#5B595C" // Borders, separators
)

// Common styles
var (
	SuccessStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(Green))
	ErrorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(Red))
	WarningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(Orange))
	DimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color(Comment))
	TitleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(Magenta))
	HighlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(Yellow)).Bold(true)
	LabelStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(Cyan))
	HelpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color(Comment))

	TableStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(Border))

	PaneStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(Border)).
			Padding(0, 1)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Background)).
			Background(lipgloss.Color(Yellow))
)

// Success renders a ✓ line
func Success(msg string) string {
	return SuccessStyle.Render("✓ " + msg)
}

// Failure renders a ✗ line
func Failure(msg string) string {
	return ErrorStyle.Render("✗ " + msg)
}

// Warning renders a ⚠ line
func Warning(msg string) string {
	return WarningStyle.Render("⚠ " + msg)
}

// BlockColor picks the accent used for a block type in the inspector
func BlockColor(t lark.BlockType) lipgloss.Color {
	switch {
	case t == lark.TypePage:
		return lipgloss.Color(Magenta)
	case t.HeadingLevel() > 0:
		return lipgloss.Color(Yellow)
	case t.IsList():
		return lipgloss.Color(Purple)
	case t == lark.TypeCode, t == lark.TypeDiagram, t == lark.TypeEquation:
		return lipgloss.Color(Green)
	case t == lark.TypeTable, t == lark.TypeTableCell:
		return lipgloss.Color(Cyan)
	case !t.Known():
		return lipgloss.Color(Red)
	}
	return lipgloss.Color(Foreground)
}

// BlockType renders a block type tag in its accent color
func BlockType(t lark.BlockType) string {
	return lipgloss.NewStyle().Foreground(BlockColor(t)).Render(string(t))
}
