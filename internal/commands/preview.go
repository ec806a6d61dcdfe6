package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gerunddev/larkbridge/internal/diff"
)

func previewCmd(a *app) *cobra.Command {
	var (
		raw  bool
		wrap int
	)

	cmd := &cobra.Command{
		Use:   "preview [file]",
		Short: "Render what a Markdown file looks like after a trip through Lark",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, src, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			md := a.converter.ToMarkdown(a.converter.Convert(string(src)))
			if raw {
				fmt.Fprintln(cmd.OutOrStdout(), md)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), diff.Render(md, wrap))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&raw, "raw", false, "Print the Markdown without terminal styling")
	flags.IntVar(&wrap, "wrap", diff.DefaultWrap, "Word wrap width")

	return cmd
}
