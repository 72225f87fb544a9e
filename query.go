package csvsearch

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"unicode"

	"github.com/nao1215/csvsearch/domain/model"
)

// ResultSet holds the columns and materialized rows of one read query.
// A nil value is SQL NULL.
type ResultSet struct {
	Columns []string
	Rows    [][]any
}

// readQueryPrefixes are the leading keywords of statements that return rows.
var readQueryPrefixes = []string{"SELECT", "WITH", "PRAGMA", "VALUES", "EXPLAIN"}

// returningKeyword makes a write statement return rows.
const returningKeyword = "RETURNING"

// isReadQuery reports whether query returns rows and goes through QueryContext.
// The leading keyword may be directly followed by punctuation, as in
// "select*from t" or "values(1)".
func isReadQuery(query string) bool {
	q := strings.TrimLeft(model.TrimLeadingComments(query), "( \t\r\n")
	if end := strings.IndexFunc(q, func(r rune) bool { return !unicode.IsLetter(r) }); end >= 0 {
		q = q[:end]
	}
	for _, prefix := range readQueryPrefixes {
		if strings.EqualFold(q, prefix) {
			return true
		}
	}
	return model.ContainsKeyword(query, returningKeyword)
}

// runQuery executes query and materializes its rows.
func runQuery(ctx context.Context, db *sql.DB, query string, args ...any) (*ResultSet, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQuery, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQuery, err)
	}

	rs := &ResultSet{Columns: columns}
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrQuery, err)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		rs.Rows = append(rs.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQuery, err)
	}
	return rs, nil
}

// execStatement runs a statement that returns no rows.
func execStatement(ctx context.Context, db *sql.DB, query string) error {
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("%w: %w", ErrQuery, err)
	}
	return nil
}

// formatValue renders a column value as text. NULL becomes null.
func formatValue(v any, null string) string {
	switch val := v.(type) {
	case nil:
		return null
	case string:
		return val
	case []byte:
		return string(val)
	default:
		return fmt.Sprint(val)
	}
}
