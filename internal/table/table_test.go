package table

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestNew_RejectsRowsWiderThanHeader(t *testing.T) {
	_, err := New([]any{"a"}, [][]any{{1.0, 2.0}})
	assert.Error(t, err)
}

func TestNew_PadsShortRows(t *testing.T) {
	tbl, err := New([]any{"a", "b"}, [][]any{{1.0}, {2.0, 3.0}})
	require.NoError(t, err)

	col, ok := tbl.Column("b")
	require.True(t, ok)
	assert.Equal(t, []any{nil, 3.0}, col)
	assert.Equal(t, 2, tbl.NumRows())
}

func TestColumn_IgnoresNonStringIdentifiers(t *testing.T) {
	tbl, err := New([]any{1.0, "1"}, [][]any{{"x", "y"}})
	require.NoError(t, err)

	col, ok := tbl.Column("1")
	require.True(t, ok)
	assert.Equal(t, []any{"y"}, col)

	_, ok = tbl.Column("missing")
	assert.False(t, ok)
}

func TestDropEmpty(t *testing.T) {
	tbl, err := New(
		[]any{"a", "empty", "b"},
		[][]any{
			{1.0, nil, "x"},
			{nil, "", nil},
			{2.0, nil, nil},
		},
	)
	require.NoError(t, err)

	out := tbl.DropEmpty()
	assert.Equal(t, []any{"a", "b"}, out.Columns())
	assert.Equal(t, 2, out.NumRows())
	assert.Equal(t, 2.0, out.Cell(1, 0))
	assert.Nil(t, out.Cell(1, 1))

	// the source table is untouched
	assert.Equal(t, 3, tbl.NumRows())
}

func TestReadCSV(t *testing.T) {
	input := "\ufeffTime - A,X - A,X - A,,2024\n" +
		"0.0,1.5,abc,,\n" +
		",,,,\n" +
		"0.1, 2.5 ,,,7\n"

	tbl, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []any{"Time - A", "X - A", "X - A.1", 2024.0}, tbl.Columns())
	assert.Equal(t, 2, tbl.NumRows())

	col, ok := tbl.Column("X - A")
	require.True(t, ok)
	assert.Equal(t, []any{1.5, 2.5}, col)

	dup, ok := tbl.Column("X - A.1")
	require.True(t, ok)
	assert.Equal(t, []any{"abc", nil}, dup)
}

func TestReadCSV_KeepsHeaderWhitespace(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(" Time - A,X - A\n1,2\n"))
	require.NoError(t, err)

	assert.Equal(t, []any{" Time - A", "X - A"}, tbl.Columns())
}

func TestReadCSV_DuplicateHeadersStayUnique(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   []any
	}{
		{"explicit suffix after duplicate", "A,A,A.1", []any{"A", "A.2", "A.1"}},
		{"explicit suffix first", "A.1,A,A", []any{"A.1", "A", "A.2"}},
		{"repeated suffixed name", "A,A,A.1,A.1", []any{"A", "A.2", "A.1", "A.1.1"}},
		{"triple", "B,B,B", []any{"B", "B.1", "B.2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			width := strings.Count(tt.header, ",") + 1
			row := strings.TrimSuffix(strings.Repeat("1,", width), ",")

			tbl, err := ReadCSV(strings.NewReader(tt.header + "\n" + row + "\n"))
			require.NoError(t, err)
			assert.Equal(t, tt.want, tbl.Columns())
		})
	}
}

func TestReadCSV_Empty(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.NumColumns())
	assert.Equal(t, 0, tbl.NumRows())
}

func TestReadXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"Time - Temperature", "Diameter (mm) - Temperature"},
		{0.0, 20.0},
		{0.1, "n/a"},
		{0.2, 22.5},
	}
	for r, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	tbl, err := Load("export.xlsx", bytes.NewReader(buf.Bytes()), "")
	require.NoError(t, err)

	assert.Equal(t, []any{"Time - Temperature", "Diameter (mm) - Temperature"}, tbl.Columns())
	assert.Equal(t, 3, tbl.NumRows())

	col, ok := tbl.Column("Diameter (mm) - Temperature")
	require.True(t, ok)
	assert.Equal(t, []any{20.0, "n/a", 22.5}, col)
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	_, err := Load("export.json", strings.NewReader("{}"), "")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestToFloat(t *testing.T) {
	tests := []struct {
		name string
		cell any
		want float64
		ok   bool
	}{
		{"float", 1.25, 1.25, true},
		{"int", 3, 3, true},
		{"numeric text", " 20.0 ", 20, true},
		{"scientific text", "1e-3", 0.001, true},
		{"bool", true, 1, true},
		{"nil", nil, 0, false},
		{"text", "abc", 0, false},
		{"empty text", "", 0, false},
		{"nan", math.NaN(), 0, false},
		{"inf", math.Inf(1), 0, false},
		{"inf text", "inf", 0, false},
		{"struct", struct{}{}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToFloat(tt.cell)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
