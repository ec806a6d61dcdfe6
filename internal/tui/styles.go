package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/gerunddev/larkbridge/internal/styles"
)

var (
	titleStyle     = styles.TitleStyle
	labelStyle     = styles.LabelStyle
	valueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(styles.Foreground))
	tableStyle     = styles.TableStyle
	spinnerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(styles.Magenta))
	helpStyle      = styles.HelpStyle
	successStyle   = styles.SuccessStyle
	errorStyle     = styles.ErrorStyle
	highlightStyle = styles.HighlightStyle
)
