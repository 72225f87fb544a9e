package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/nao1215/csvsearch"
	"github.com/nao1215/csvsearch/domain/model"
	"github.com/spf13/cobra"
)

// app holds the process streams so tests can replace them.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	// stdinIsTerminal reports whether stdin is interactive
	stdinIsTerminal func() bool
	// newLineReader opens the reader used for the prompt
	newLineReader func(cfg csvsearch.Config) (csvsearch.LineReader, error)
}

func newApp() *app {
	return &app{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		stdinIsTerminal: func() bool {
			fd := os.Stdin.Fd()
			return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
		},
		newLineReader: func(cfg csvsearch.Config) (csvsearch.LineReader, error) {
			return csvsearch.NewTerminalReader(cfg.Prompt, cfg.HistoryFile)
		},
	}
}

type rootFlags struct {
	command    string
	configPath string
	schema     string
	format     string
	inferTypes bool
	verbose    bool
}

func newRootCmd(a *app, version string) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "csvsearch [database] [files...]",
		Short: "Query CSV files with SQL",
		Long: `csvsearch loads CSV, TSV, LTSV, Parquet and Excel files (optionally
compressed with gzip, bzip2, xz or zstd) into SQLite and runs SQL against them.

The database is a SQLite file path, or ":memory:" or "-" for an in-memory
database (the default). Piped standard input is loaded as the table "input".`,
		Example: `  csvsearch users.csv
  csvsearch app.db users.csv orders.tsv.gz
  csvsearch -c "select count(*) from users >>" users.csv
  cat users.csv | csvsearch --infer-types -c "select name from input where age > 30 >> names.csv"`,
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, flags, args)
		},
	}
	cmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")
	cmd.SetIn(a.stdin)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	f := cmd.Flags()
	f.StringVarP(&flags.command, "command", "c", "", "script file or statements to run, then quit")
	f.StringVar(&flags.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/csvsearch/config.yaml)")
	f.StringVar(&flags.schema, "schema", "", `raw column definition for piped input, e.g. "id INTEGER, name TEXT"`)
	f.StringVar(&flags.format, "format", model.FileTypeCSV.String(), "format of piped input (csv, tsv, ltsv, parquet, xlsx)")
	f.BoolVar(&flags.inferTypes, "infer-types", false, "declare INTEGER, REAL or TEXT column types from the data")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "log loaded tables and statements to stderr")
	return cmd
}

// splitTarget separates the optional database target from input files. The
// first argument is a target unless it names a supported tabular file.
func splitTarget(args []string) (target string, files []string) {
	if len(args) == 0 || model.IsSupportedFile(args[0]) {
		return csvsearch.MemoryTarget, args
	}
	return args[0], args[1:]
}

func (a *app) run(cmd *cobra.Command, flags *rootFlags, args []string) error {
	ctx := cmd.Context()

	cfg, err := csvsearch.LoadConfig(flags.configPath)
	if err != nil {
		return err
	}
	if flags.inferTypes {
		cfg.InferTypes = true
	}

	format, err := model.ParseFileType(flags.format)
	if err != nil {
		return err
	}

	logger := newLogger(a.stderr, flags.verbose)
	target, files := splitTarget(args)

	db, err := csvsearch.OpenDatabase(target)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("failed to close database", "error", err)
		}
	}()

	session := csvsearch.NewSession(db,
		csvsearch.WithOutput(a.stdout, a.stderr),
		csvsearch.WithLogger(logger),
		csvsearch.WithConfig(cfg),
		csvsearch.WithProgram(cmd.Root().Name(), cmd.Version),
	)

	terminal := a.stdinIsTerminal()
	opts := csvsearch.StartupOptions{
		Files:       files,
		StdinFormat: format,
		Schema:      flags.schema,
		Command:     flags.command,
	}
	if !terminal {
		opts.Stdin = a.stdin
	}

	batch, interactive, err := session.Start(ctx, opts)
	if err != nil {
		return err
	}
	if !interactive {
		return session.Run(ctx, batch, nil)
	}

	lines, err := a.newLineReader(cfg)
	if err != nil {
		logger.Warn("line editor unavailable, falling back to plain input", "error", err)
		lines = csvsearch.NewPromptReader(a.stdin, a.stdout, cfg.Prompt)
	}
	defer func() {
		_ = lines.Close() // Ignore close error on exit
	}()
	return session.Run(ctx, batch, lines)
}
