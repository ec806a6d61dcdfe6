package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gerunddev/larkbridge/internal/diff"
	"github.com/gerunddev/larkbridge/internal/styles"
)

// ErrRoundTripMismatch is returned by check when any file does not survive
// the round trip unchanged.
var ErrRoundTripMismatch = errors.New("round trip changed the document")

func checkCmd(a *app) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "check [file|dir...]",
		Short: "Show what a Markdown round trip through Lark records changes",
		Long: `Convert each file to Lark records and back, and print a diff wherever the
result differs from the input. Directories are scanned for .md and
.markdown files. Exits non-zero when any file changed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"-"}
			}
			args, err := expandArgs(args)
			if err != nil {
				return err
			}

			format := diff.FormatRendered
			if plain {
				format = diff.FormatPlain
			}

			out := cmd.OutOrStdout()
			mismatches := 0
			for _, arg := range args {
				name, src, err := readInput(cmd, []string{arg})
				if err != nil {
					return err
				}

				result := diff.RoundTrip(a.converter, name, string(src))
				if result.Equal() {
					fmt.Fprintln(out, styles.Success(fmt.Sprintf("%s round trips cleanly (%d blocks)", name, result.Records)))
					continue
				}

				mismatches++
				rendered, err := diff.Generate(result, format)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, styles.Warning(name+" changes on round trip"))
				fmt.Fprint(out, rendered)
			}

			if mismatches > 0 {
				return fmt.Errorf("%w: %d of %d file(s)", ErrRoundTripMismatch, mismatches, len(args))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Print a plain unified diff")

	return cmd
}
