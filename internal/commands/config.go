package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gerunddev/larkbridge/internal/config"
	"github.com/gerunddev/larkbridge/internal/styles"
)

func configCmd(a *app) *cobra.Command {
	var initialize bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.configPath
			if path == "" {
				path = config.ConfigPath()
			}

			out := cmd.OutOrStdout()
			if initialize {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("config file %s already exists", path)
				}
				if err := a.cfg.SaveFile(path); err != nil {
					return err
				}
				fmt.Fprintln(out, styles.Success("Wrote "+path))
				return nil
			}

			fmt.Fprintln(out, styles.TitleStyle.Render("larkbridge configuration"))
			rows := [][2]string{
				{"Config file", path},
				{"State file", config.StateFilePath()},
				{"Author", a.cfg.AuthorID},
				{"Page title", a.cfg.PageTitle},
				{"Max nesting", fmt.Sprintf("%d", a.cfg.MaxNesting)},
				{"Front matter", fmt.Sprintf("%t", a.cfg.FrontMatter)},
				{"Watch interval", a.cfg.WatchInterval.String()},
				{"Log file", a.cfg.LogFile},
			}
			for _, r := range rows {
				value := r[1]
				if value == "" {
					value = styles.DimStyle.Render("(none)")
				}
				fmt.Fprintf(out, "  %s %s\n", styles.LabelStyle.Render(fmt.Sprintf("%-15s", r[0])), value)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&initialize, "init", false, "Write the current settings to the config file")

	return cmd
}
