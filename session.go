package csvsearch

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/nao1215/csvsearch/domain/model"
)

const (
	// DefaultProgramName is reported by the version command
	DefaultProgramName = "csvsearch"
	// listTablesQuery lists user relations by name
	listTablesQuery = `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`
	// describeTableQuery is PRAGMA table_info as a table-valued function
	describeTableQuery = `SELECT * FROM pragma_table_info(?)`
)

// Session is one interpreter over an open database. It is not safe for
// concurrent use.
type Session struct {
	db       *sql.DB
	out      io.Writer
	errOut   io.Writer
	logger   *slog.Logger
	cfg      Config
	loader   *Loader
	exporter *Exporter
	clearer  ScreenClearer
	program  string
	version  string
	errColor *color.Color
}

// Option configures a Session.
type Option func(*Session)

// WithOutput sets the result and error streams.
func WithOutput(out, errOut io.Writer) Option {
	return func(s *Session) {
		s.out = out
		s.errOut = errOut
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithConfig sets the user configuration.
func WithConfig(cfg Config) Option {
	return func(s *Session) {
		s.cfg = cfg
	}
}

// WithClearer sets the collaborator invoked by the clear command.
func WithClearer(clearer ScreenClearer) Option {
	return func(s *Session) {
		s.clearer = clearer
	}
}

// WithProgram sets the name and version printed by the version command.
func WithProgram(name, version string) Option {
	return func(s *Session) {
		s.program = name
		s.version = version
	}
}

// NewSession returns a Session over db. By default results go to os.Stdout,
// errors to os.Stderr and logs are discarded.
func NewSession(db *sql.DB, opts ...Option) *Session {
	s := &Session{
		db:      db,
		out:     os.Stdout,
		errOut:  os.Stderr,
		logger:  slog.New(slog.DiscardHandler),
		cfg:     DefaultConfig(),
		program: DefaultProgramName,
		version: "unknown",
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cfg.Keywords = s.cfg.Keywords.withDefaults()
	if s.clearer == nil {
		s.clearer = NewScreenClearer(s.out)
	}

	s.loader = NewLoader(db,
		WithLoaderLogger(s.logger),
		WithReplacements(s.cfg.Replacements),
		WithInferTypes(s.cfg.InferTypes),
	)
	s.exporter = NewExporter(s.cfg.QuoteExport)

	s.errColor = color.New(color.FgRed)
	if isTerminal(s.errOut) {
		s.errColor.EnableColor()
	} else {
		s.errColor.DisableColor()
	}
	return s
}

// Loader returns the loader used by the import command.
func (s *Session) Loader() *Loader {
	return s.loader
}

// Run executes batch then, unless it quit, reads and executes lines from
// lines until a quit command or end of input. A nil lines ends the session
// after batch.
//
// When the session ends, a transaction the user left open with BEGIN is
// committed.
func (s *Session) Run(ctx context.Context, batch string, lines LineReader) error {
	defer s.commitOpenTransaction(context.WithoutCancel(ctx))

	if s.RunBatch(ctx, batch) || lines == nil {
		return nil
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := lines.ReadLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if s.RunBatch(ctx, line) {
			return nil
		}
	}
}

// commitOpenTransaction commits an explicit transaction still open on the
// connection. SQLite reports an error when none is active, which is expected.
func (s *Session) commitOpenTransaction(ctx context.Context) {
	if err := execStatement(ctx, s.db, "COMMIT"); err != nil {
		s.logger.Debug("no open transaction to commit", "error", err)
		return
	}
	s.logger.Info("committed open transaction")
}

// RunBatch splits batch into statements and executes them in order,
// reporting every error to the error stream. It reports whether a quit
// command was reached; statements after it are not executed.
func (s *Session) RunBatch(ctx context.Context, batch string) (quit bool) {
	for _, stmt := range model.SplitStatements(batch) {
		quit, err := s.Execute(ctx, stmt)
		if err != nil {
			s.report(err)
		}
		if quit {
			return true
		}
	}
	return false
}

// Execute runs one statement. It reports whether the statement was a quit
// command. The returned error wraps one of ErrUsage, ErrLoad, ErrQuery or
// ErrRedirect.
func (s *Session) Execute(ctx context.Context, stmt string) (quit bool, err error) {
	cmd := Classify(stmt, s.cfg.Keywords)
	s.logger.Debug("dispatch statement", "kind", cmd.Kind.String(), "statement", stmt)

	switch cmd.Kind {
	case CommandQuit:
		return true, nil
	case CommandHelp:
		_, err = io.WriteString(s.out, s.usage())
	case CommandClear:
		if clearErr := s.clearer.Clear(ctx); clearErr != nil {
			s.logger.Warn("failed to clear screen", "error", clearErr)
		}
	case CommandVersion:
		_, err = fmt.Fprintf(s.out, "%s %s\n", s.program, s.version)
	case CommandTables:
		err = s.showQuery(ctx, listTablesQuery)
	case CommandColumns:
		err = s.describe(ctx, cmd.Arg)
	case CommandImport:
		err = s.importFile(ctx, cmd.Arg, cmd.As)
	default:
		err = s.query(ctx, cmd.Directive)
	}
	return false, err
}

// showQuery renders the rows of query as a table.
func (s *Session) showQuery(ctx context.Context, query string, args ...any) error {
	rs, err := runQuery(ctx, s.db, query, args...)
	if err != nil {
		return err
	}
	RenderTable(s.out, rs)
	return nil
}

func (s *Session) describe(ctx context.Context, table string) error {
	if table == "" {
		return usageError("no table name provided [columns <table>]")
	}
	rs, err := runQuery(ctx, s.db, describeTableQuery, table)
	if err != nil {
		return err
	}
	if len(rs.Rows) == 0 {
		return fmt.Errorf("%w: no such table: %s", ErrQuery, table)
	}
	RenderTable(s.out, rs)
	return nil
}

func (s *Session) importFile(ctx context.Context, path, as string) error {
	if path == "" {
		return usageError("no file name provided [import <file> [as <name>]]")
	}
	_, err := s.loader.LoadFile(ctx, path, LoadOptions{TableName: as})
	return err
}

// query runs a pass-through statement and routes its result per the
// directive. Statements that return no rows ignore the directive.
func (s *Session) query(ctx context.Context, d model.Directive) error {
	if d.Query == "" {
		return usageError("no query before " + model.RedirectMarker)
	}
	if !isReadQuery(d.Query) {
		return execStatement(ctx, s.db, d.Query)
	}

	rs, err := runQuery(ctx, s.db, d.Query)
	if err != nil {
		return err
	}

	switch d.Mode {
	case model.OutputSuppress:
		return nil
	case model.OutputRedirect:
		if d.ToStdout() {
			opts := model.NewExportOptions().WithQuote(s.cfg.QuoteExport)
			if err := s.exporter.Write(s.out, rs, opts); err != nil {
				return NewErrorContext("redirect", "stdout").Error(ErrRedirect, err)
			}
			return nil
		}
		return s.exporter.ExportFile(d.Target, rs)
	default:
		RenderTable(s.out, rs)
		return nil
	}
}

// report writes err to the error stream as "Error: <message>".
func (s *Session) report(err error) {
	_, _ = fmt.Fprintln(s.errOut, s.errColor.Sprint("Error: "+err.Error()))
}

// usage returns the help banner using the first spelling of each keyword.
func (s *Session) usage() string {
	kw := s.cfg.Keywords
	var b strings.Builder
	b.WriteString("\nEnter a query to execute it. Separate statements with \";\".\n")
	for _, line := range [][2]string{
		{"<query>", "display the query result as a table"},
		{"<query> >> <file>", "write the query result to file (csv, tsv, ltsv, parquet, xlsx)"},
		{"<query> >>", "write the query result to standard output as CSV"},
		{"<query> >> !", "run the query and discard the result"},
		{kw.Import[0] + " <file> [as <name>]", "import a file as a table"},
		{kw.Columns[0] + " <table>", "view columns in table"},
		{kw.Tables[0], "view all tables"},
		{kw.Clear[0], "clear the screen"},
		{kw.Version[0], "display the version"},
		{kw.Help[0], "display help"},
		{kw.Quit[0], "quit"},
	} {
		fmt.Fprintf(&b, "  %-30s %s\n", line[0], line[1])
	}
	b.WriteString("\n")
	return b.String()
}

// isTerminal reports whether w is a terminal file.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
