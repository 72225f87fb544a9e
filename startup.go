package csvsearch

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/nao1215/csvsearch/domain/model"
)

// StdinTable is the relation that piped standard input is loaded into.
const StdinTable = "input"

// StartupOptions describe how a session begins.
type StartupOptions struct {
	// Files are loaded as relations before anything else runs
	Files []string
	// Stdin is piped input, or nil when standard input is a terminal
	Stdin io.Reader
	// StdinFormat is the format of Stdin
	StdinFormat model.FileType
	// Schema is a raw column clause applied to Stdin
	Schema string
	// Command is a script path or one-shot statement text
	Command string
}

// Start loads the startup files and piped input, then resolves the first
// batch. interactive reports whether the prompt should follow the batch.
// Any load failure is returned and is fatal to the caller.
func (s *Session) Start(ctx context.Context, opts StartupOptions) (batch string, interactive bool, err error) {
	if err := validatePaths(opts.Files); err != nil {
		return "", false, err
	}
	for _, path := range opts.Files {
		if _, err := s.loader.LoadFile(ctx, path, LoadOptions{}); err != nil {
			return "", false, err
		}
	}

	if opts.Stdin != nil {
		_, err := s.loader.LoadReader(ctx, opts.Stdin, LoadOptions{
			TableName:        StdinTable,
			ColumnDefinition: opts.Schema,
			FileType:         opts.StdinFormat,
		})
		if err != nil {
			return "", false, err
		}
	}

	batch, interactive = ResolveBatch(opts.Command, opts.Stdin != nil, s.cfg.Keywords)
	return batch, interactive, nil
}

// ResolveBatch picks the first batch. A command naming a readable file runs
// the file contents, any other command runs as text; both then quit. Without
// a command, piped input is written to standard output as CSV. Otherwise the
// help banner is shown and the prompt follows.
func ResolveBatch(command string, piped bool, kw Keywords) (batch string, interactive bool) {
	kw = kw.withDefaults()
	// The newline ends a trailing line comment before the quit statement.
	quit := "\n" + string(model.StatementSeparator) + kw.Quit[0]

	if command != "" {
		if data, err := os.ReadFile(command); err == nil { //nolint:gosec // User-provided path is necessary for file operations
			return string(data) + quit, false
		}
		return command + quit, false
	}
	if piped {
		return fmt.Sprintf("SELECT * FROM %s %s", StdinTable, model.RedirectMarker) + quit, false
	}
	return kw.Help[0], true
}
