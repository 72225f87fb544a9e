package csvsearch

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/memory"
	pqfile "github.com/apache/arrow/go/v18/parquet/file"
	"github.com/apache/arrow/go/v18/parquet/pqarrow"
	"github.com/nao1215/csvsearch/domain/model"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	csvDelimiter = ','
	tsvDelimiter = '\t'
)

// parseTables reads r as fileType. name is the relation name for single-table
// formats and the prefix of per-sheet names for XLSX.
func parseTables(ctx context.Context, r io.Reader, fileType model.FileType, name string, replacements []model.Replacement) ([]*model.Table, error) {
	if fileType.IsText() {
		r = stripBOM(r)
	}

	var (
		header  model.Header
		records []model.Record
		err     error
	)
	switch fileType {
	case model.FileTypeCSV:
		header, records, err = parseDelimited(r, csvDelimiter)
	case model.FileTypeTSV:
		header, records, err = parseDelimited(r, tsvDelimiter)
	case model.FileTypeLTSV:
		header, records, err = parseLTSV(r)
	case model.FileTypeParquet:
		header, records, err = parseParquet(ctx, r)
	case model.FileTypeXLSX:
		return parseXLSX(r, name, replacements)
	default:
		return nil, fmt.Errorf("%w: %s", model.ErrUnsupportedFormat, fileType)
	}
	if err != nil {
		return nil, err
	}
	return []*model.Table{model.NewTable(name, header, records)}, nil
}

// stripBOM drops a UTF-8 byte order mark and decodes UTF-16 input that
// starts with one. Input without a BOM passes through unchanged.
func stripBOM(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
}

// parseDelimited parses CSV or TSV content. The first record is the header
// and every record must have as many fields as the header.
func parseDelimited(r io.Reader, delimiter rune) (model.Header, []model.Record, error) {
	csvReader := csv.NewReader(r)
	csvReader.Comma = delimiter

	first, err := csvReader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, model.ErrEmptySource
	}
	if err != nil {
		return nil, nil, err
	}
	header := model.NewHeader(first)

	var records []model.Record
	for {
		row, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		records = append(records, model.NewRecord(row))
	}
	return header, records, nil
}

// parseLTSV parses label:value lines. Columns appear in the order their
// labels are first seen; missing labels become empty values.
func parseLTSV(r io.Reader) (model.Header, []model.Record, error) {
	var (
		header  model.Header
		index   = make(map[string]int)
		rows    []map[string]string
		scanner = bufio.NewScanner(r)
	)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		row := make(map[string]string)
		for _, pair := range strings.Split(line, "\t") {
			key, value, ok := strings.Cut(pair, ":")
			if !ok {
				continue
			}
			key = strings.TrimSpace(key)
			if _, seen := index[key]; !seen {
				index[key] = len(header)
				header = append(header, key)
			}
			row[key] = strings.TrimSpace(value)
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}
	if len(header) == 0 {
		return nil, nil, model.ErrEmptySource
	}

	records := make([]model.Record, 0, len(rows))
	for _, row := range rows {
		record := make(model.Record, len(header))
		for i, key := range header {
			record[i] = row[key]
		}
		records = append(records, record)
	}
	return header, records, nil
}

// parseXLSX returns one table per non-empty sheet, named <name>_<sheet>.
func parseXLSX(r io.Reader, name string, replacements []model.Replacement) ([]*model.Table, error) {
	xlsxFile, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = xlsxFile.Close() // Ignore close error
	}()

	var tables []*model.Table
	for _, sheetName := range xlsxFile.GetSheetList() {
		rows, err := xlsxFile.GetRows(sheetName)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %s: %w", sheetName, err)
		}
		if len(rows) == 0 {
			continue
		}
		header, records := convertXLSXRows(rows)
		tableName := name + "_" + model.SanitizeName(sheetName, replacements...)
		tables = append(tables, model.NewTable(tableName, header, records))
	}
	if len(tables) == 0 {
		return nil, model.ErrEmptySource
	}
	return tables, nil
}

// convertXLSXRows converts sheet rows to a header and records. Rows are padded
// or cut to the header width since trailing empty cells are not reported.
func convertXLSXRows(rows [][]string) (model.Header, []model.Record) {
	header := model.NewHeader(append([]string(nil), rows[0]...))

	records := make([]model.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(model.Record, len(header))
		copy(record, row)
		records = append(records, record)
	}
	return header, records
}

// parseParquet reads a whole Parquet file. Values are rendered as text and
// nulls become empty strings.
func parseParquet(ctx context.Context, r io.Reader) (model.Header, []model.Record, error) {
	// Parquet requires random access
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read parquet data: %w", err)
	}
	if len(data) == 0 {
		return nil, nil, model.ErrEmptySource
	}

	pqReader, err := pqfile.NewParquetReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create parquet reader: %w", err)
	}
	defer pqReader.Close()

	arrowReader, err := pqarrow.NewFileReader(pqReader, pqarrow.ArrowReadProperties{}, memory.DefaultAllocator)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create arrow reader: %w", err)
	}

	table, err := arrowReader.ReadTable(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read table: %w", err)
	}
	defer table.Release()

	schema := table.Schema()
	header := make(model.Header, schema.NumFields())
	for i, field := range schema.Fields() {
		header[i] = field.Name
	}

	tableReader := array.NewTableReader(table, 0)
	defer tableReader.Release()

	var records []model.Record
	for tableReader.Next() {
		batch := tableReader.Record()
		for i := range int(batch.NumRows()) {
			row := make(model.Record, batch.NumCols())
			for j, col := range batch.Columns() {
				if !col.IsNull(i) {
					row[j] = col.ValueStr(i)
				}
			}
			records = append(records, row)
		}
	}
	if err := tableReader.Err(); err != nil {
		return nil, nil, fmt.Errorf("error reading table records: %w", err)
	}
	return header, records, nil
}
