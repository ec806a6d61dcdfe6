package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gerunddev/larkbridge/internal/clipboard"
	"github.com/gerunddev/larkbridge/internal/config"
	"github.com/gerunddev/larkbridge/internal/convert"
	"github.com/gerunddev/larkbridge/internal/logger"
)

// newClipboard builds the system clipboard. Tests replace it.
var newClipboard = clipboard.New

// app is the state shared by every subcommand, set up before each run
type app struct {
	verbose    bool
	configPath string

	cfg       *config.Config
	log       *logger.Logger
	closeLog  func()
	converter *convert.Converter
	clipboard *clipboard.Clipboard
}

// Root builds the larkbridge command tree
func Root(version string) *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "larkbridge",
		Short: "Convert Markdown to and from Lark docx clipboard records",
		Long: `larkbridge converts Markdown into the record format the Lark (飞书) docx
editor reads from the clipboard, and turns such records back into Markdown.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}

	pflags := cmd.PersistentFlags()
	pflags.BoolVarP(&a.verbose, "verbose", "v", false, "Log debug output to stderr")
	pflags.StringVar(&a.configPath, "config", "", fmt.Sprintf("Config file (default %s)", config.ConfigPath()))

	cmd.AddCommand(convertCmd(a))
	cmd.AddCommand(reverseCmd(a))
	cmd.AddCommand(checkCmd(a))
	cmd.AddCommand(previewCmd(a))
	cmd.AddCommand(inspectCmd(a))
	cmd.AddCommand(watchCmd(a))
	cmd.AddCommand(configCmd(a))
	cmd.AddCommand(versionCmd(version))

	return cmd
}

// setup loads configuration and builds the logger, converter and clipboard
func (a *app) setup(stderr io.Writer) error {
	path := a.configPath
	if path == "" {
		path = config.ConfigPath()
	}

	cfg, err := config.LoadFile(path)
	if err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}
	a.cfg = cfg

	a.closeLog = func() {}
	switch {
	case cfg.LogFile == "":
		a.log = logger.NewWithLevel(stderr, logger.Level(a.verbose))
	case a.verbose:
		f, err := logger.OpenFile(cfg.LogFile)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		a.log = logger.NewMultiLogger(logger.Level(true), stderr, f)
		a.closeLog = func() { f.Close() }
	default:
		l, cleanup, err := logger.NewFileLogger(cfg.LogFile, logger.Level(true))
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		a.log = l
		a.closeLog = cleanup
	}
	a.log.ConfigLoaded(path, cfg.AuthorID, cfg.WatchInterval)

	a.converter = convert.New(
		convert.WithAuthor(cfg.AuthorID),
		convert.WithPageTitle(cfg.PageTitle),
		convert.WithMaxNesting(cfg.MaxNesting),
		convert.WithFrontMatter(cfg.FrontMatter),
		convert.WithLogger(a.log),
	)
	a.clipboard = newClipboard()

	return nil
}

func (a *app) close() {
	if a.closeLog != nil {
		a.closeLog()
	}
}

func versionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "larkbridge v%s\n", version)
		},
	}
}
