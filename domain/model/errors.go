// Package model provides the domain model for csvsearch: relation naming,
// statement tokenizing, file formats and error kinds.
package model

import "errors"

// Error kinds reported by the command interpreter. Every error that reaches the
// error stream wraps exactly one of them.
var (
	// ErrUsage is returned when a meta-command is missing a required argument
	ErrUsage = errors.New("usage error")

	// ErrLoad is returned when an import source is unreadable or malformed
	ErrLoad = errors.New("load error")

	// ErrQuery is returned when the relational engine rejects a statement
	ErrQuery = errors.New("query error")

	// ErrRedirect is returned when a redirect target cannot be written
	ErrRedirect = errors.New("redirect error")

	// ErrDuplicateColumnName is returned when a file contains duplicate column names
	ErrDuplicateColumnName = errors.New("duplicate column name")

	// ErrEmptySource is returned when a tabular source has no header row
	ErrEmptySource = errors.New("empty data source")

	// ErrUnsupportedFormat is returned for file formats that cannot be read or written
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// Kind returns the error kind wrapped by err, or nil when err carries none.
func Kind(err error) error {
	for _, kind := range []error{ErrUsage, ErrLoad, ErrQuery, ErrRedirect} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
