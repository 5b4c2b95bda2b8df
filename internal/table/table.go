// Package table holds the generic tabular dataset that signal discovery and
// extraction read from: ordered column identifiers and column-major cells of
// heterogeneous type (float64, string, bool or nil for empty).
package table

import (
	"fmt"
)

// Table is an immutable, column-major view of a parsed sheet
type Table struct {
	columns []any
	data    [][]any
	rows    int
}

// New builds a table from a header row and row-major records.
// Records shorter than the header are padded with empty cells.
func New(columns []any, records [][]any) (*Table, error) {
	data := make([][]any, len(columns))
	for c := range data {
		data[c] = make([]any, len(records))
	}

	for r, rec := range records {
		if len(rec) > len(columns) {
			return nil, fmt.Errorf("row %d has %d cells, header has %d columns", r, len(rec), len(columns))
		}
		for c, cell := range rec {
			data[c][r] = cell
		}
	}

	cols := make([]any, len(columns))
	copy(cols, columns)

	return &Table{columns: cols, data: data, rows: len(records)}, nil
}

// Columns returns the column identifiers in their original order
func (t *Table) Columns() []any {
	cols := make([]any, len(t.columns))
	copy(cols, t.columns)
	return cols
}

// NumRows returns the number of data rows
func (t *Table) NumRows() int {
	return t.rows
}

// NumColumns returns the number of columns
func (t *Table) NumColumns() int {
	return len(t.columns)
}

// Column returns the cells of the first column whose identifier equals id
func (t *Table) Column(id string) ([]any, bool) {
	for i, c := range t.columns {
		if s, ok := c.(string); ok && s == id {
			return t.data[i], true
		}
	}
	return nil, false
}

// Cell returns the cell at row r of column index c
func (t *Table) Cell(r, c int) any {
	return t.data[c][r]
}

// DropEmpty returns a copy without rows and columns whose cells are all empty
func (t *Table) DropEmpty() *Table {
	keepCols := make([]int, 0, len(t.columns))
	for c := range t.columns {
		for r := 0; r < t.rows; r++ {
			if !isEmpty(t.data[c][r]) {
				keepCols = append(keepCols, c)
				break
			}
		}
	}

	keepRows := make([]int, 0, t.rows)
	for r := 0; r < t.rows; r++ {
		for _, c := range keepCols {
			if !isEmpty(t.data[c][r]) {
				keepRows = append(keepRows, r)
				break
			}
		}
	}

	out := &Table{
		columns: make([]any, len(keepCols)),
		data:    make([][]any, len(keepCols)),
		rows:    len(keepRows),
	}
	for i, c := range keepCols {
		out.columns[i] = t.columns[c]
		col := make([]any, len(keepRows))
		for j, r := range keepRows {
			col[j] = t.data[c][r]
		}
		out.data[i] = col
	}
	return out
}

func isEmpty(cell any) bool {
	switch v := cell.(type) {
	case nil:
		return true
	case string:
		return v == ""
	default:
		return false
	}
}
