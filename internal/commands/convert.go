package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gerunddev/larkbridge/internal/htmldoc"
	"github.com/gerunddev/larkbridge/internal/lark"
	"github.com/gerunddev/larkbridge/internal/styles"
)

func convertCmd(a *app) *cobra.Command {
	var (
		output string
		copyIt bool
		asHTML bool
		plain  bool
	)

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert Markdown into Lark clipboard records",
		Long: `Convert Markdown into Lark clipboard records. The file argument may be
omitted or "-" to read stdin. By default the record JSON is printed; --html
prints the clipboard HTML, --plain the plain text fallback and --copy puts
the rich result on the system clipboard.`,
		Example: `  larkbridge convert notes.md --copy
  cat notes.md | larkbridge convert -o records.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, src, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			data := a.converter.Convert(string(src))

			if copyIt {
				if err := copyRecords(cmd, a, data); err != nil {
					return err
				}
				fmt.Fprintln(cmd.ErrOrStderr(), styles.Success(fmt.Sprintf("Copied %d blocks to the clipboard", len(data.RecordIDs))))
				return nil
			}

			var out []byte
			switch {
			case asHTML:
				html, err := htmldoc.Render(data)
				if err != nil {
					return err
				}
				out = []byte(html + "\n")
			case plain:
				out = []byte(htmldoc.PlainText(data) + "\n")
			default:
				out, err = marshalRecords(data)
				if err != nil {
					return err
				}
			}
			return writeOutput(cmd, output, out)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")
	flags.BoolVarP(&copyIt, "copy", "c", false, "Copy the result to the system clipboard")
	flags.BoolVar(&asHTML, "html", false, "Print the clipboard HTML instead of JSON")
	flags.BoolVar(&plain, "plain", false, "Print the plain text fallback instead of JSON")
	cmd.MarkFlagsMutuallyExclusive("html", "plain", "copy")
	cmd.MarkFlagsMutuallyExclusive("copy", "output")

	return cmd
}

// copyRecords puts data on the clipboard as HTML with a plain text flavour
func copyRecords(cmd *cobra.Command, a *app, data *lark.ClipboardData) error {
	html, err := htmldoc.Render(data)
	if err != nil {
		return err
	}
	if err := a.clipboard.WriteHTML(cmd.Context(), html, htmldoc.PlainText(data)); err != nil {
		return err
	}
	a.log.ClipboardWritten(htmldoc.RecordFormat, len(html))
	return nil
}
