package csvsearch

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/nao1215/csvsearch/domain/model"
)

// LoadOptions control how one source becomes a relation.
type LoadOptions struct {
	// TableName overrides the relation name derived from the file name.
	// It is used as given, without sanitizing.
	TableName string
	// ColumnDefinition is a raw CREATE TABLE column clause such as
	// "id INTEGER PRIMARY KEY, name TEXT". It is spliced verbatim.
	// When empty the clause is built from the sanitized header.
	ColumnDefinition string
	// FileType is the format of a reader source. LoadFile detects it
	// from the path instead.
	FileType model.FileType
}

// Relation describes a relation created by a load.
type Relation struct {
	Name    string
	Columns []string
	Rows    int
}

// Loader creates relations from tabular sources.
type Loader struct {
	db           *sql.DB
	logger       *slog.Logger
	replacements []model.Replacement
	inferTypes   bool
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLoaderLogger sets the logger used to report loaded relations.
func WithLoaderLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithReplacements sets the substitutions used to sanitize names.
func WithReplacements(replacements []model.Replacement) LoaderOption {
	return func(l *Loader) {
		l.replacements = replacements
	}
}

// WithInferTypes declares INTEGER, REAL or TEXT column types inferred from
// the loaded values instead of leaving columns untyped.
func WithInferTypes(infer bool) LoaderOption {
	return func(l *Loader) {
		l.inferTypes = infer
	}
}

// NewLoader returns a Loader writing into db.
func NewLoader(db *sql.DB, opts ...LoaderOption) *Loader {
	l := &Loader{
		db:     db,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadFile decompresses and parses the file at path and (re)creates its
// relations. Files without a recognized extension are read as CSV.
func (l *Loader) LoadFile(ctx context.Context, path string, opts LoadOptions) ([]Relation, error) {
	if err := validatePath(path); err != nil {
		return nil, NewErrorContext("import", path).Error(ErrLoad, err)
	}
	file := model.NewFile(path)
	opts.FileType = file.Type()
	if !file.IsSupported() {
		opts.FileType = model.FileTypeCSV
	}
	if opts.TableName == "" {
		opts.TableName = model.TableFromFilePath(path, l.replacements...)
	}

	reader, cleanup, err := openDecompressed(path)
	if err != nil {
		return nil, NewErrorContext("import", path).Error(ErrLoad, err)
	}
	defer func() {
		_ = cleanup() // Ignore close error on a read-only source
	}()

	return l.load(ctx, reader, path, opts)
}

// LoadReader parses r as opts.FileType into the relation opts.TableName.
func (l *Loader) LoadReader(ctx context.Context, r io.Reader, opts LoadOptions) ([]Relation, error) {
	if opts.TableName == "" {
		return nil, NewErrorContext("import", "").Error(ErrLoad, errors.New("table name is required for reader sources"))
	}
	return l.load(ctx, r, "", opts)
}

func (l *Loader) load(ctx context.Context, r io.Reader, source string, opts LoadOptions) ([]Relation, error) {
	errCtx := NewErrorContext("import", source).WithTable(opts.TableName)

	tables, err := parseTables(ctx, r, opts.FileType, opts.TableName, l.replacements)
	if err != nil {
		return nil, errCtx.Error(ErrLoad, err)
	}

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errCtx.Error(ErrLoad, err)
	}
	defer func() {
		_ = tx.Rollback() // No-op after a successful commit
	}()

	relations := make([]Relation, 0, len(tables))
	for _, table := range tables {
		relation, err := l.createTable(ctx, tx, table, opts.ColumnDefinition)
		if err != nil {
			return nil, NewErrorContext("import", source).WithTable(table.Name()).Error(ErrLoad, err)
		}
		relations = append(relations, relation)
	}

	if err := tx.Commit(); err != nil {
		return nil, errCtx.Error(ErrLoad, err)
	}

	for _, r := range relations {
		l.logger.Info("loaded relation", "table", r.Name, "columns", len(r.Columns), "rows", r.Rows)
	}
	return relations, nil
}

// createTable drops and recreates one relation inside tx and inserts its rows.
func (l *Loader) createTable(ctx context.Context, tx *sql.Tx, table *model.Table, columnDefinition string) (Relation, error) {
	header, err := table.Header().Sanitized(l.replacements...)
	if err != nil {
		return Relation{}, err
	}
	if len(header) == 0 {
		return Relation{}, model.ErrEmptySource
	}
	records := table.Records()
	for i, record := range records {
		if len(record) != len(header) {
			return Relation{}, fmt.Errorf("record %d has %d fields, header has %d", i+1, len(record), len(header))
		}
	}

	if columnDefinition == "" {
		columns := model.UntypedColumns(header)
		if l.inferTypes {
			columns = model.InferColumnsInfo(header, records)
		}
		columnDefinition = model.ColumnDefinition(columns)
	}

	tableName := model.QuoteIdentifier(table.Name())
	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+tableName); err != nil {
		return Relation{}, fmt.Errorf("failed to drop table: %w", err)
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("CREATE TABLE %s (%s)", tableName, columnDefinition)); err != nil {
		return Relation{}, fmt.Errorf("failed to create table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, buildInsertQuery(tableName, header))
	if err != nil {
		return Relation{}, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, record := range records {
		values := make([]any, len(record))
		for i, value := range record {
			values[i] = value
		}
		if _, err := stmt.ExecContext(ctx, values...); err != nil {
			return Relation{}, fmt.Errorf("failed to insert record: %w", err)
		}
	}

	return Relation{
		Name:    table.Name(),
		Columns: header,
		Rows:    len(records),
	}, nil
}

// buildInsertQuery names every column so a raw column clause may declare
// extra columns or a different order.
func buildInsertQuery(quotedTable string, header model.Header) string {
	columns := make([]string, len(header))
	placeholders := make([]string, len(header))
	for i, name := range header {
		columns[i] = model.QuoteIdentifier(name)
		placeholders[i] = "?"
	}
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		quotedTable,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)
}
