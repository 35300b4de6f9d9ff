package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat resolves an explicit format, falling back to the file extension.
func ParseFormat(format, filename string) (Format, error) {
	value := strings.ToLower(strings.TrimSpace(format))
	if value == "" {
		value = strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	}
	switch Format(value) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatXLSX, "xls":
		return FormatXLSX, nil
	}
	return "", &ParseError{Reason: fmt.Sprintf("unsupported file format %q", value)}
}

// Parse reads an import file of the given format.
func Parse(r io.Reader, format Format, schema Schema) ([]RawRow, error) {
	switch format {
	case FormatCSV:
		return ParseCSV(r, schema)
	case FormatXLSX:
		return ParseXLSX(r, schema)
	}
	return nil, &ParseError{Reason: fmt.Sprintf("unsupported file format %q", format)}
}

// ParseCSV reads a comma separated file whose first line is the header.
// Blank lines are dropped. A row with the wrong number of columns is kept
// and carries an error so it is reported as failed.
func ParseCSV(r io.Reader, schema Schema) ([]RawRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &ParseError{Reason: "file is empty"}
	}
	if err != nil {
		return nil, &ParseError{Reason: "unreadable csv header", Err: err}
	}
	columns, err := mapHeader(header, schema)
	if err != nil {
		return nil, err
	}

	var rows []RawRow
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// A stray quote spoils only its own line, the reader resumes on the next one
			var csvErr *csv.ParseError
			if errors.As(err, &csvErr) && (errors.Is(err, csv.ErrBareQuote) || errors.Is(err, csv.ErrFieldCount)) {
				rows = append(rows, RawRow{
					Number: csvErr.StartLine,
					Fields: map[string]string{},
					Err:    fmt.Errorf("malformed row: %w", csvErr.Err),
				})
				continue
			}
			return nil, &ParseError{Reason: "unreadable csv", Err: err}
		}
		line, _ := reader.FieldPos(0)
		rows = append(rows, buildRow(line, record, columns, len(header), true))
	}

	if len(rows) == 0 {
		return nil, &ParseError{Reason: "file contains no data rows"}
	}
	return rows, nil
}

// ParseXLSX reads the first worksheet of a workbook. The first non-empty
// row is the header and row numbers match the spreadsheet.
func ParseXLSX(r io.Reader, schema Schema) ([]RawRow, error) {
	workbook, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &ParseError{Reason: "unreadable xlsx", Err: err}
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, &ParseError{Reason: "workbook has no sheets"}
	}
	records, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, &ParseError{Reason: "unreadable xlsx sheet", Err: err}
	}

	headerIndex := -1
	for i, record := range records {
		if !blankRecord(record) {
			headerIndex = i
			break
		}
	}
	if headerIndex < 0 {
		return nil, &ParseError{Reason: "file is empty"}
	}
	header := records[headerIndex]
	columns, err := mapHeader(header, schema)
	if err != nil {
		return nil, err
	}

	var rows []RawRow
	for i := headerIndex + 1; i < len(records); i++ {
		if blankRecord(records[i]) {
			continue
		}
		// Spreadsheet rows drop trailing empty cells, so only extra columns are an error.
		rows = append(rows, buildRow(i+1, records[i], columns, len(header), false))
	}

	if len(rows) == 0 {
		return nil, &ParseError{Reason: "file contains no data rows"}
	}
	return rows, nil
}

// mapHeader returns the canonical field for each column, "" for unknown ones,
// and fails when a required field has no column.
func mapHeader(header []string, schema Schema) ([]string, error) {
	columns := make([]string, len(header))
	seen := make(map[string]bool)
	for i, cell := range header {
		field := CanonicalField(cell)
		if field == "" || seen[field] {
			continue
		}
		columns[i] = field
		seen[field] = true
	}

	var missing []string
	for _, field := range schema.Required {
		if !seen[field] {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, &ParseError{Reason: fmt.Sprintf("missing required %s column(s): %s", schema.Entity, strings.Join(missing, ", "))}
	}
	return columns, nil
}

func buildRow(number int, record []string, columns []string, width int, strict bool) RawRow {
	row := RawRow{Number: number, Fields: make(map[string]string, len(columns))}
	if len(record) > width || (strict && len(record) != width) {
		row.Err = fmt.Errorf("row has %d columns but the header has %d", len(record), width)
		return row
	}
	for i, field := range columns {
		if field == "" || i >= len(record) {
			continue
		}
		row.Fields[field] = strings.TrimSpace(record[i])
	}
	return row
}

func blankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
