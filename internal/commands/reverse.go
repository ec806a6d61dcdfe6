package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gerunddev/larkbridge/internal/lark"
)

func reverseCmd(a *app) *cobra.Command {
	var (
		output        string
		fromClipboard bool
	)

	cmd := &cobra.Command{
		Use:   "reverse [file]",
		Short: "Convert Lark clipboard records back into Markdown",
		Long: `Convert Lark clipboard records back into Markdown. The input is the
record JSON or the clipboard HTML that carries it. With --clipboard the
HTML is read from the system clipboard.`,
		Example: `  larkbridge reverse --clipboard > notes.md
  larkbridge reverse records.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := loadRecords(cmd, a, args, fromClipboard)
			if err != nil {
				return err
			}
			md := a.converter.ToMarkdown(data)
			return writeOutput(cmd, output, []byte(md+"\n"))
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")
	flags.BoolVar(&fromClipboard, "clipboard", false, "Read the records from the system clipboard")

	return cmd
}

// loadRecords reads records from the clipboard or from a file or stdin
func loadRecords(cmd *cobra.Command, a *app, args []string, fromClipboard bool) (*lark.ClipboardData, error) {
	if fromClipboard {
		if len(args) > 0 {
			return nil, fmt.Errorf("--clipboard does not take a file argument")
		}
		html, err := a.clipboard.ReadHTML(cmd.Context())
		if err != nil {
			return nil, err
		}
		return parseRecords([]byte(html))
	}

	_, src, err := readInput(cmd, args)
	if err != nil {
		return nil, err
	}
	return parseRecords(src)
}
