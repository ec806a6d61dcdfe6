package commands

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/gerunddev/larkbridge/internal/tui"
)

// runProgram runs a bubbletea model. Tests replace it.
var runProgram = func(cmd *cobra.Command, m tea.Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
	_, err := p.Run()
	return err
}

func inspectCmd(a *app) *cobra.Command {
	var (
		fromClipboard bool
		records       bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Browse the block tree a document converts to",
		Long: `Browse the block tree of a Markdown file in the terminal. With --records
the input is record JSON or clipboard HTML instead; with --clipboard it is
read from the system clipboard.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := "stdin"
			if fromClipboard {
				source = "clipboard"
			}
			if len(args) > 0 {
				source = args[0]
			}

			if fromClipboard || records {
				data, err := loadRecords(cmd, a, args, fromClipboard)
				if err != nil {
					return err
				}
				return runProgram(cmd, tui.InitInspectModel(source, data, a.converter))
			}

			name, src, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			return runProgram(cmd, tui.InitInspectModel(name, a.converter.Convert(string(src)), a.converter))
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&fromClipboard, "clipboard", false, "Inspect the records on the system clipboard")
	flags.BoolVar(&records, "records", false, "Treat the input as record JSON or clipboard HTML")

	return cmd
}
