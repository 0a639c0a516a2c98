package workbook

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	require.NoError(t, f.SetSheetName("Sheet1", "Main Street"))
	require.NoError(t, f.SetCellValue("Main Street", "A1", "Machine"))
	require.NoError(t, f.SetCellValue("Main Street", "B1", "Coil"))
	require.NoError(t, f.SetCellValue("Main Street", "C1", "Need"))
	require.NoError(t, f.SetCellValue("Main Street", "A2", "M1"))
	require.NoError(t, f.SetCellValue("Main Street", "B2", "A1"))
	require.NoError(t, f.SetCellValue("Main Street", "C2", 4))

	_, err := f.NewSheet("Depot")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Depot", "A1", "empty-ish"))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestOpenReader(t *testing.T) {
	g, err := OpenReader(buildWorkbook(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"Main Street", "Depot"}, g.SheetNames())

	rows, cols := g.Dimensions("Main Street")
	assert.Equal(t, 2, rows)
	assert.Equal(t, 3, cols)

	c := g.CellValue("Main Street", 0, 0)
	assert.Equal(t, KindString, c.Kind)
	assert.Equal(t, "Machine", c.Str)

	// numeric cells surface as display strings; typed decoding happens later
	c = g.CellValue("Main Street", 1, 2)
	assert.Equal(t, KindString, c.Kind)
	assert.Equal(t, "4", c.Str)

	assert.True(t, g.CellValue("Main Street", 5, 0).IsEmpty())
	assert.True(t, g.CellValue("Nope", 0, 0).IsEmpty())
}

func TestMemGrid(t *testing.T) {
	g := NewMemGrid()
	g.AddSheet("One", [][]Cell{
		{String("a"), Number(2)},
		{Empty()},
	})
	g.AddSheet("Two", nil)

	assert.Equal(t, []string{"One", "Two"}, g.SheetNames())

	rows, cols := g.Dimensions("One")
	assert.Equal(t, 2, rows)
	assert.Equal(t, 2, cols)

	assert.Equal(t, "a", g.CellValue("One", 0, 0).Str)
	assert.Equal(t, 2.0, g.CellValue("One", 0, 1).Num)
	assert.True(t, g.CellValue("One", 1, 0).IsEmpty())
	assert.True(t, g.CellValue("One", 9, 9).IsEmpty())

	// re-adding replaces rows without duplicating the sheet
	g.AddSheet("One", [][]Cell{{String("b")}})
	assert.Equal(t, []string{"One", "Two"}, g.SheetNames())
	assert.Equal(t, "b", g.CellValue("One", 0, 0).Str)
}
