package csvsearch

import (
	"fmt"
	"strings"

	"github.com/nao1215/csvsearch/domain/model"
)

// Error kinds. Every error reported by a Session wraps one of them.
var (
	// ErrUsage indicates a meta-command was given without a required argument
	ErrUsage = model.ErrUsage
	// ErrLoad indicates an import source was unreadable or malformed
	ErrLoad = model.ErrLoad
	// ErrQuery indicates the relational engine rejected a statement
	ErrQuery = model.ErrQuery
	// ErrRedirect indicates a redirect target could not be written
	ErrRedirect = model.ErrRedirect
)

// ErrorContext provides context for where an error occurred
type ErrorContext struct {
	Operation string
	FilePath  string
	TableName string
	Details   string
}

// NewErrorContext creates a new error context
func NewErrorContext(operation, filePath string) *ErrorContext {
	return &ErrorContext{
		Operation: operation,
		FilePath:  filePath,
	}
}

// WithTable adds table context to the error
func (ec *ErrorContext) WithTable(tableName string) *ErrorContext {
	ec.TableName = tableName
	return ec
}

// WithDetails adds details to the error context
func (ec *ErrorContext) WithDetails(details string) *ErrorContext {
	ec.Details = details
	return ec
}

// Error creates a formatted error of the given kind with context.
// The result matches both kind and baseErr with errors.Is.
func (ec *ErrorContext) Error(kind, baseErr error) error {
	var parts []string
	parts = append(parts, ec.Operation+" failed")

	if ec.FilePath != "" {
		parts = append(parts, "file: "+ec.FilePath)
	}

	if ec.TableName != "" {
		parts = append(parts, "table: "+ec.TableName)
	}

	if ec.Details != "" {
		parts = append(parts, "details: "+ec.Details)
	}

	context := strings.Join(parts, ", ")
	if baseErr != nil {
		return fmt.Errorf("%w: %s: %w", kind, context, baseErr)
	}
	return fmt.Errorf("%w: %s", kind, context)
}

// usageError reports a meta-command invoked without a required argument.
func usageError(usage string) error {
	return fmt.Errorf("%w: %s", ErrUsage, usage)
}
