package model

import (
	"path/filepath"
	"strings"
)

// Table represents file contents as database table structure.
type Table struct {
	// name is table name derived from file path.
	name string
	// header is table header.
	header Header
	// records is table records.
	records []Record
}

// NewTable create new Table.
func NewTable(name string, header Header, records []Record) *Table {
	return &Table{
		name:    name,
		header:  header,
		records: records,
	}
}

// Name return table name.
func (t *Table) Name() string {
	return t.name
}

// Header return table header.
func (t *Table) Header() Header {
	return t.header
}

// Records return table records.
func (t *Table) Records() []Record {
	return t.records
}

// Equal compare Table.
func (t *Table) Equal(t2 *Table) bool {
	if t.Name() != t2.Name() {
		return false
	}
	if !t.header.Equal(t2.header) {
		return false
	}
	if len(t.Records()) != len(t2.Records()) {
		return false
	}
	for i, record := range t.Records() {
		if !record.Equal(t2.Records()[i]) {
			return false
		}
	}
	return true
}

// TableFromFilePath derives a relation name from a file path: the base name
// without leading dots, up to its first remaining dot, passed through
// SanitizeName.
//
//	"/data/sales report.csv.gz" -> "sales_report"
//	".hidden.csv"               -> "hidden"
func TableFromFilePath(filePath string, replacements ...Replacement) string {
	fileName := strings.TrimLeft(filepath.Base(filePath), ".")
	if i := strings.Index(fileName, "."); i >= 0 {
		fileName = fileName[:i]
	}
	return SanitizeName(fileName, replacements...)
}
