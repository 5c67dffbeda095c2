// Package tabular decodes uploaded spreadsheet files into header-keyed rows
// for the student import pipeline. CSV and XLSX sources produce the same
// representation so the reconciliation logic stays format-agnostic.
package tabular

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Decoding errors
var (
	ErrEmptyFile         = errors.New("file contains no data rows")
	ErrMissingHeader     = errors.New("file has no header row")
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// Row is a single data row keyed by the trimmed header names
type Row map[string]string

// Decode picks a decoder based on the uploaded file name
func Decode(r io.Reader, filename string) ([]Row, error) {
	switch {
	case strings.HasSuffix(strings.ToLower(filename), ".csv"):
		return DecodeCSV(r)
	case strings.HasSuffix(strings.ToLower(filename), ".xlsx"):
		return DecodeXLSX(r)
	default:
		return nil, ErrUnsupportedFormat
	}
}

// DecodeCSV reads a CSV stream whose first record is the header row
func DecodeCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	// Rows with trailing empty cells are common in hand-edited exports
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrMissingHeader
	}
	if err != nil {
		return nil, err
	}
	headers := trimHeaders(header)

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, rowFromRecord(headers, record))
	}

	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}
	return rows, nil
}

// DecodeXLSX reads the first sheet of an XLSX workbook, treating the first
// row as the header row
func DecodeXLSX(r io.Reader) ([]Row, error) {
	workbook, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrMissingHeader
	}

	records, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrMissingHeader
	}

	headers := trimHeaders(records[0])
	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		if isBlank(record) {
			continue
		}
		rows = append(rows, rowFromRecord(headers, record))
	}

	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}
	return rows, nil
}

func trimHeaders(header []string) []string {
	headers := make([]string, len(header))
	for i, h := range header {
		headers[i] = strings.TrimSpace(h)
	}
	return headers
}

func rowFromRecord(headers, record []string) Row {
	row := make(Row, len(headers))
	for i, name := range headers {
		if name == "" {
			continue
		}
		if i < len(record) {
			row[name] = strings.TrimSpace(record[i])
		} else {
			row[name] = ""
		}
	}
	return row
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
