package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	domain "github.com/estateiq/lead-import/internal/domain/lead"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrNoDataRows        = errors.New("file must contain a header row and at least one data row")
)

// Result is the parse output: data rows keyed by resolved field paths, plus
// the raw source headers in column order.
type Result struct {
	Rows    []domain.ParsedRow
	Headers []string
}

// Parse reads raw file bytes into normalized rows. ext is the declared file
// extension, with or without the dot ("csv", "xlsx"). Legacy OLE .xls is not
// a supported format. A malformed stream or corrupt workbook is a whole-job
// failure; it aborts before validation.
func Parse(data []byte, ext string, mapping []domain.FieldMapping) (*Result, error) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "csv":
		return parseCSV(data, mapping)
	case "xlsx":
		return parseWorkbook(data, mapping)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

func parseCSV(data []byte, mapping []domain.FieldMapping) (*Result, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, ErrNoDataRows
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	result := &Result{Headers: headers}
	fields := ResolveHeaders(headers, mapping)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", len(result.Rows)+2, err)
		}
		result.Rows = append(result.Rows, buildRow(record, fields, len(result.Rows)))
	}

	return result, nil
}

func parseWorkbook(data []byte, mapping []domain.FieldMapping) (*Result, error) {
	wb, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoDataRows
	}

	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, ErrNoDataRows
	}

	headers := rows[0]
	result := &Result{Headers: headers}
	fields := ResolveHeaders(headers, mapping)

	for i, record := range rows[1:] {
		result.Rows = append(result.Rows, buildRow(record, fields, i))
	}

	return result, nil
}

// buildRow assembles one data row. dataIndex is the 0-based position among
// data rows; the stored row number adds the header offset so the first data
// row reports as 2.
func buildRow(record []string, fields []string, dataIndex int) domain.ParsedRow {
	row := domain.ParsedRow{
		RowNumber: dataIndex + 2,
		Fields:    make(map[string]any),
	}
	for col, field := range fields {
		if field == "" || col >= len(record) {
			continue
		}
		if value := NormalizeValue(record[col]); value != nil {
			row.Fields[field] = value
		}
	}
	return row
}
