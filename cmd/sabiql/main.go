// Command sabiql launches the interactive terminal client: a Bubble Tea
// program backed by a single Postgres connection, wired up via Cobra the
// way the rest of this codebase wires its commands.
package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sabiql/sabiql/internal/cfgdir"
	"github.com/sabiql/sabiql/internal/clilog"
	"github.com/sabiql/sabiql/internal/completion"
	"github.com/sabiql/sabiql/internal/connstore"
	"github.com/sabiql/sabiql/internal/erexport"
	"github.com/sabiql/sabiql/internal/executor"
	"github.com/sabiql/sabiql/internal/pgmeta"
	"github.com/sabiql/sabiql/internal/ui"
)

const (
	use   = "sabiql"
	short = "an interactive SQL client for Postgres"
	long  = "sabiql is a terminal client for exploring and querying a Postgres database.\n" +
		"Run it with no arguments to pick or create a connection interactively,\n" +
		"or pass --dsn to connect straight away."
)

// logLevelFlag is a pflag.Value wrapping clilog's level names, so an
// invalid --loglevel is rejected at flag-parsing time with a useful
// error instead of surfacing later from clilog.Init.
type logLevelFlag string

var _ pflag.Value = (*logLevelFlag)(nil)

func (l *logLevelFlag) String() string { return string(*l) }
func (l *logLevelFlag) Type() string   { return "level" }
func (l *logLevelFlag) Set(s string) error {
	if err := clilog.ValidLevel(s); err != nil {
		return err
	}
	*l = logLevelFlag(s)
	return nil
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	root := &cobra.Command{
		Use:           use,
		Short:         short,
		Long:          long,
		Version:       "0.1.0",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          launch,
	}

	root.PersistentFlags().String("dsn", "", "Postgres connection string to connect to on startup.\n"+
		"If omitted, sabiql opens with the connection setup prompt.")
	root.PersistentFlags().StringP("log", "l", cfgdir.DefaultLogPath, "log location for developer logs.")

	logLevel := logLevelFlag("info")
	root.PersistentFlags().Var(&logLevel, "loglevel", "log level for developer logs (-l).\n"+
		"Possible values: 'trace', 'debug', 'info', 'warn', 'error', 'fatal', 'panic', 'disabled'.")

	root.PersistentPreRunE = ppre

	if args != nil {
		root.SetArgs(args)
	}

	if err := root.Execute(); err != nil {
		return 1
	}
	return 0
}

// ppre sets up the logger before any command body runs, mirroring the
// teacher's single-init-point pattern: logging must be live before
// anything that might call clilog.Writer.
func ppre(cmd *cobra.Command, args []string) error {
	path, err := cmd.Flags().GetString("log")
	if err != nil {
		return err
	}
	lvl := cmd.Flags().Lookup("loglevel").Value.String()
	return clilog.Init(path, lvl)
}

func launch(cmd *cobra.Command, args []string) error {
	dsnFlag, err := cmd.Flags().GetString("dsn")
	if err != nil {
		return err
	}
	dsnFlag = strings.TrimSpace(dsnFlag)

	deps := &executor.Deps{
		Metadata:    pgmeta.New(),
		Connections: connstore.New(cfgdir.DefaultConnectionsPath),
		Diagrams:    erexport.DotExporter{},
		Graphviz:    erexport.SystemGraphvizRunner{},
		Viewer:      erexport.SystemViewerLauncher{},
		Completion:  completion.New(),
		CacheDir:    cfgdir.Dir(),
	}

	// Seed the model with the current terminal size so the first frame
	// renders at the right dimensions instead of waiting a tick for
	// tea.WindowSizeMsg.
	w, h, _ := term.GetSize(os.Stdin.Fd())

	model := ui.New(deps, dsnFlag, w, h)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
