package csvsearch

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/memory"
	"github.com/apache/arrow/go/v18/parquet"
	"github.com/apache/arrow/go/v18/parquet/pqarrow"
	"github.com/nao1215/csvsearch/domain/model"
	"github.com/xuri/excelize/v2"
)

// parquetRowGroupSize is the number of rows per Parquet row group.
const parquetRowGroupSize = 64 * 1024

// xlsxSheet is the sheet that exported results are written to.
const xlsxSheet = "Sheet1"

// Exporter writes result sets to redirect targets.
type Exporter struct {
	quote bool
}

// NewExporter returns an Exporter. When quote is false delimited output is a
// plain join of the values with no escaping.
func NewExporter(quote bool) *Exporter {
	return &Exporter{quote: quote}
}

// ExportFile creates or truncates path and writes rs in the format and
// compression named by its extension. The file is closed on every path.
func (e *Exporter) ExportFile(path string, rs *ResultSet) (err error) {
	opts := model.ExportOptionsForPath(path).WithQuote(e.quote)

	w, cleanup, err := createCompressed(path, opts.Compression)
	if err != nil {
		return NewErrorContext("redirect", path).Error(ErrRedirect, err)
	}
	defer func() {
		if closeErr := cleanup(); closeErr != nil && err == nil {
			err = NewErrorContext("redirect", path).Error(ErrRedirect, closeErr)
		}
	}()

	if err := e.Write(w, rs, opts); err != nil {
		return NewErrorContext("redirect", path).Error(ErrRedirect, err)
	}
	return nil
}

// Write encodes rs to w as described by opts.
func (e *Exporter) Write(w io.Writer, rs *ResultSet, opts model.ExportOptions) error {
	switch opts.Format {
	case model.FileTypeCSV, model.FileTypeTSV:
		return writeDelimited(w, rs, opts.Delimiter(), opts.Quote)
	case model.FileTypeLTSV:
		return writeLTSV(w, rs)
	case model.FileTypeParquet:
		return writeParquet(w, rs)
	case model.FileTypeXLSX:
		return writeXLSX(w, rs)
	default:
		return fmt.Errorf("%w: %s", model.ErrUnsupportedFormat, opts.Format)
	}
}

// writeDelimited writes a header line of column names then one line per row.
func writeDelimited(w io.Writer, rs *ResultSet, delimiter byte, quote bool) error {
	bw := bufio.NewWriter(w)
	sep := string(delimiter)

	header := make([]string, len(rs.Columns))
	for i, name := range rs.Columns {
		header[i] = escapeValue(name, delimiter, quote)
	}
	if _, err := bw.WriteString(strings.Join(header, sep) + "\n"); err != nil {
		return err
	}

	record := make([]string, len(rs.Columns))
	for _, row := range rs.Rows {
		for i, v := range row {
			record[i] = escapeValue(formatValue(v, ""), delimiter, quote)
		}
		if _, err := bw.WriteString(strings.Join(record, sep) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// escapeValue quotes value when it holds the delimiter, a quote or a line
// break, doubling embedded quotes.
func escapeValue(value string, delimiter byte, quote bool) string {
	if !quote {
		return value
	}
	needsQuoting := strings.IndexByte(value, delimiter) >= 0 ||
		strings.ContainsAny(value, "\"\r\n")
	if needsQuoting {
		return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
	}
	return value
}

// writeLTSV writes one label:value line per row.
func writeLTSV(w io.Writer, rs *ResultSet) error {
	bw := bufio.NewWriter(w)
	fields := make([]string, len(rs.Columns))
	for _, row := range rs.Rows {
		for i, v := range row {
			fields[i] = rs.Columns[i] + ":" + formatValue(v, "")
		}
		if _, err := bw.WriteString(strings.Join(fields, "\t") + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// writeParquet writes rs as string columns. NULL stays null.
func writeParquet(w io.Writer, rs *ResultSet) error {
	fields := make([]arrow.Field, len(rs.Columns))
	for i, name := range rs.Columns {
		fields[i] = arrow.Field{Name: name, Type: arrow.BinaryTypes.String, Nullable: true}
	}
	schema := arrow.NewSchema(fields, nil)

	builder := array.NewRecordBuilder(memory.DefaultAllocator, schema)
	defer builder.Release()
	for _, row := range rs.Rows {
		for i, v := range row {
			sb, ok := builder.Field(i).(*array.StringBuilder)
			if !ok {
				return fmt.Errorf("unexpected builder for column %s", rs.Columns[i])
			}
			if v == nil {
				sb.AppendNull()
				continue
			}
			sb.Append(formatValue(v, ""))
		}
	}
	record := builder.NewRecord()
	defer record.Release()

	table := array.NewTableFromRecords(schema, []arrow.Record{record})
	defer table.Release()

	// The parquet writer closes its sink, so encode into a buffer first
	var buf bytes.Buffer
	if err := pqarrow.WriteTable(table, &buf, parquetRowGroupSize, parquet.NewWriterProperties(), pqarrow.DefaultWriterProps()); err != nil {
		return fmt.Errorf("failed to write parquet: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// writeXLSX writes rs to a single sheet with the column names in row 1.
func writeXLSX(w io.Writer, rs *ResultSet) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close() // Ignore close error
	}()

	header := make([]any, len(rs.Columns))
	for i, name := range rs.Columns {
		header[i] = name
	}
	if err := f.SetSheetRow(xlsxSheet, "A1", &header); err != nil {
		return err
	}

	for r, row := range rs.Rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		values := make([]any, len(row))
		for i, v := range row {
			if v == nil {
				v = ""
			}
			values[i] = v
		}
		if err := f.SetSheetRow(xlsxSheet, cell, &values); err != nil {
			return err
		}
	}
	return f.Write(w)
}
