package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned for files that are neither .xlsx nor .csv
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Load parses r according to the extension of name. Sheet selects an Excel
// worksheet; empty means the first one.
func Load(name string, r io.Reader, sheet string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return ReadXLSX(r, sheet)
	case ".csv":
		return ReadCSV(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
}

// LoadFile opens and parses a local .xlsx or .csv file
func LoadFile(path, sheet string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return Load(path, f, sheet)
}

// ReadCSV parses comma-separated text with a header row
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) > 0 && len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], "\ufeff")
	}

	return fromRecords(records)
}

// ReadXLSX parses one worksheet of an Excel workbook using raw cell values
func ReadXLSX(r io.Reader, sheet string) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	return fromRecords(rows)
}

// fromRecords turns text records into a typed table. The first record is the
// header; numeric header cells become float64 identifiers, blank ones get an
// "Unnamed: i" label and repeated names are suffixed ".1", ".2", ...
func fromRecords(records [][]string) (*Table, error) {
	if len(records) == 0 {
		return New(nil, nil)
	}

	width := 0
	for _, rec := range records {
		width = max(width, len(rec))
	}

	columns := headerColumns(records[0], width)

	body := make([][]any, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make([]any, len(rec))
		for i, raw := range rec {
			row[i] = inferCell(raw)
		}
		body = append(body, row)
	}

	t, err := New(columns, body)
	if err != nil {
		return nil, err
	}
	return t.DropEmpty(), nil
}

func headerColumns(header []string, width int) []any {
	columns := make([]any, width)

	// explicit header names keep priority over generated ".n" suffixes
	reserved := make(map[string]bool, len(header))
	for _, h := range header {
		reserved[h] = true
	}
	used := make(map[string]bool, width)
	next := make(map[string]int, width)

	for i := 0; i < width; i++ {
		raw := ""
		if i < len(header) {
			raw = header[i]
		}

		name := raw
		switch v := inferCell(raw).(type) {
		case nil:
			name = fmt.Sprintf("Unnamed: %d", i)
		case float64:
			columns[i] = v
			continue
		}

		if used[name] {
			base := name
			for n := max(next[base], 1); ; n++ {
				candidate := fmt.Sprintf("%s.%d", base, n)
				if !used[candidate] && !reserved[candidate] {
					name = candidate
					next[base] = n + 1
					break
				}
			}
		}
		used[name] = true
		columns[i] = name
	}
	return columns
}
