package model

import (
	"fmt"
	"strings"
)

// Header is the first line of a tabular source.
type Header []string

// NewHeader create new Header.
func NewHeader(h []string) Header {
	return Header(h)
}

// Equal compare Header.
func (h Header) Equal(h2 Header) bool {
	if len(h) != len(h2) {
		return false
	}
	for i, v := range h {
		if v != h2[i] {
			return false
		}
	}
	return true
}

// Sanitized returns the header with every field passed through SanitizeName.
// A repeated name after sanitizing is reported as ErrDuplicateColumnName.
func (h Header) Sanitized(replacements ...Replacement) (Header, error) {
	seen := make(map[string]struct{}, len(h))
	out := make(Header, len(h))
	for i, name := range h {
		s := SanitizeName(strings.TrimSpace(name), replacements...)
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateColumnName, s)
		}
		seen[key] = struct{}{}
		out[i] = s
	}
	return out, nil
}

// Record is one data row.
type Record []string

// NewRecord create new Record.
func NewRecord(r []string) Record {
	return Record(r)
}

// Equal compare Record.
func (r Record) Equal(r2 Record) bool {
	if len(r) != len(r2) {
		return false
	}
	for i, v := range r {
		if v != r2[i] {
			return false
		}
	}
	return true
}

// ColumnType represents the SQL column type
type ColumnType int

const (
	// ColumnTypeUntyped leaves the column without a declared type
	ColumnTypeUntyped ColumnType = iota
	// ColumnTypeText represents TEXT column type
	ColumnTypeText
	// ColumnTypeInteger represents INTEGER column type
	ColumnTypeInteger
	// ColumnTypeReal represents REAL column type
	ColumnTypeReal
)

// String returns the SQL column type string
func (ct ColumnType) String() string {
	switch ct {
	case ColumnTypeText:
		return "TEXT"
	case ColumnTypeInteger:
		return "INTEGER"
	case ColumnTypeReal:
		return "REAL"
	default:
		return ""
	}
}

// ColumnInfo represents column information with name and type
type ColumnInfo struct {
	Name string
	Type ColumnType
}

// ColumnDefinition renders columns as the body of a CREATE TABLE statement:
// quoted names joined with ", ", each followed by its type when it has one.
func ColumnDefinition(columns []ColumnInfo) string {
	parts := make([]string, len(columns))
	for i, c := range columns {
		parts[i] = QuoteIdentifier(c.Name)
		if t := c.Type.String(); t != "" {
			parts[i] += " " + t
		}
	}
	return strings.Join(parts, ", ")
}

// UntypedColumns returns header names as columns without declared types.
func UntypedColumns(header Header) []ColumnInfo {
	columns := make([]ColumnInfo, len(header))
	for i, name := range header {
		columns[i] = ColumnInfo{Name: name}
	}
	return columns
}
