package parse

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendiq/pickrun/internal/common"
	"github.com/vendiq/pickrun/internal/workbook"
)

func testResolver() *Resolver {
	return NewResolver(common.ImportConfig{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// mainStreetGrid is a representative export: a label row with the run date,
// a header row, machine carry-forward rows and a second machine.
func mainStreetGrid() *workbook.MemGrid {
	g := workbook.NewMemGrid()
	g.AddSheet("Main Street", [][]workbook.Cell{
		{workbook.String("Run Date"), workbook.String("2025-01-10")},
		{
			workbook.String("Machine"), workbook.String("Coil"), workbook.String("SKU"),
			workbook.String("Item Name"), workbook.String("Current"), workbook.String("Par"),
			workbook.String("Need"),
		},
		{
			workbook.String("M1"), workbook.String("A1"), workbook.String("COLA"),
			workbook.String("Cola Classic"), workbook.Number(2), workbook.Number(8),
			workbook.Number(4),
		},
		{
			workbook.Empty(), workbook.String("A2"), workbook.String("CHIP"),
			workbook.String("Chips"), workbook.Number(3), workbook.Number(8),
			workbook.Empty(),
		},
		{
			workbook.Empty(), workbook.String("A3"), workbook.String("WATR"),
			workbook.String("Water"), workbook.Number(9), workbook.Number(8),
			workbook.Empty(),
		},
		{
			workbook.String("M2"), workbook.String("B1"), workbook.String("COLA"),
			workbook.String("Cola Classic"), workbook.Empty(), workbook.Empty(),
			workbook.Number(6),
		},
	})
	return g
}

func TestParseWorkbook_OnePickEntryPerRow(t *testing.T) {
	out := testResolver().ParseWorkbook(mainStreetGrid(), "run.xlsx")

	require.NotNil(t, out.Run)
	require.Len(t, out.Run.Entries, 4)
	assert.Empty(t, out.SkippedSheets)

	// machines and SKUs dedup on natural key, entries never merge
	require.Len(t, out.Machines, 2)
	assert.Equal(t, "M1", out.Machines[0].Code)
	assert.Equal(t, "M2", out.Machines[1].Code)
	require.Len(t, out.Skus, 3)
	assert.Equal(t, "COLA", out.Skus[0].Code)

	first := out.Run.Entries[0].CoilItem
	last := out.Run.Entries[3].CoilItem
	assert.Same(t, first.Sku, last.Sku, "same SKU code must resolve to one ParsedSku")
	assert.NotSame(t, first.Coil, last.Coil)
}

func TestParseWorkbook_MachineCarryForward(t *testing.T) {
	out := testResolver().ParseWorkbook(mainStreetGrid(), "run.xlsx")

	require.NotNil(t, out.Run)
	entries := out.Run.Entries
	m1 := entries[0].CoilItem.Coil.Machine
	require.NotNil(t, m1)
	assert.Equal(t, "M1", m1.Code)
	assert.Same(t, m1, entries[1].CoilItem.Coil.Machine, "blank machine cell continues the last machine")
	assert.Same(t, m1, entries[2].CoilItem.Coil.Machine)
	assert.Equal(t, "M2", entries[3].CoilItem.Coil.Machine.Code)

	require.NotNil(t, m1.Location)
	assert.Equal(t, "Main Street", m1.Location.Name)
}

func TestParseWorkbook_CountDerivation(t *testing.T) {
	out := testResolver().ParseWorkbook(mainStreetGrid(), "run.xlsx")

	require.NotNil(t, out.Run)
	entries := out.Run.Entries

	// explicit need wins
	require.NotNil(t, entries[0].Count)
	assert.Equal(t, 4, *entries[0].Count)

	// par minus current when need is absent
	require.NotNil(t, entries[1].Count)
	assert.Equal(t, 5, *entries[1].Count)

	// clamped to zero, never negative
	require.NotNil(t, entries[2].Count)
	assert.Equal(t, 0, *entries[2].Count)
}

func TestDeriveCount(t *testing.T) {
	assert.Nil(t, deriveCount(nil, nil, nil))
	assert.Nil(t, deriveCount(nil, intPtr(8), nil))
	assert.Nil(t, deriveCount(nil, nil, intPtr(3)))

	got := deriveCount(intPtr(6), intPtr(8), intPtr(3))
	require.NotNil(t, got)
	assert.Equal(t, 6, *got)
}

func TestParseWorkbook_RunDateFirstSheetWins(t *testing.T) {
	g := mainStreetGrid()
	g.AddSheet("Second St", [][]workbook.Cell{
		{workbook.String("2025-02-02")},
		{workbook.String("Machine"), workbook.String("Coil"), workbook.String("SKU"), workbook.String("Need")},
		{workbook.String("M9"), workbook.String("C1"), workbook.String("GUM"), workbook.Number(2)},
	})

	out := testResolver().ParseWorkbook(g, "run.xlsx")
	require.NotNil(t, out.Run)
	require.NotNil(t, out.Run.RunDate)
	assert.True(t, out.Run.RunDate.Equal(time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)))
	assert.Len(t, out.Run.Entries, 5)
}

func TestParseWorkbook_FilenameDateFallback(t *testing.T) {
	g := workbook.NewMemGrid()
	g.AddSheet("Depot", [][]workbook.Cell{
		{workbook.String("Machine"), workbook.String("Coil"), workbook.String("SKU"), workbook.String("Need")},
		{workbook.String("M1"), workbook.String("A1"), workbook.String("COLA"), workbook.Number(3)},
	})

	out := testResolver().ParseWorkbook(g, "pickrun-2025-03-04.xlsx")
	require.NotNil(t, out.Run)
	require.NotNil(t, out.Run.RunDate)
	assert.True(t, out.Run.RunDate.Equal(time.Date(2025, time.March, 4, 0, 0, 0, 0, time.UTC)))
}

func TestParseWorkbook_SkipsUnparseableSheets(t *testing.T) {
	g := mainStreetGrid()
	g.AddSheet("Notes", [][]workbook.Cell{
		{workbook.String("Remember to check the loading dock")},
		{workbook.String("Call about the freezer")},
	})

	out := testResolver().ParseWorkbook(g, "run.xlsx")
	require.NotNil(t, out.Run, "one bad sheet must not sink the workbook")
	assert.Len(t, out.Run.Entries, 4)
	require.Len(t, out.SkippedSheets, 1)
	assert.Equal(t, "Notes", out.SkippedSheets[0].Sheet)
	assert.NotEmpty(t, out.SkippedSheets[0].Reason)
}

func TestParseWorkbook_EmptyWorkbook(t *testing.T) {
	g := workbook.NewMemGrid()
	g.AddSheet("Blank", [][]workbook.Cell{
		{workbook.String("nothing to see")},
	})

	out := testResolver().ParseWorkbook(g, "run.xlsx")
	assert.Nil(t, out.Run)
	assert.Len(t, out.SkippedSheets, 1)
}

func TestParseWorkbook_Deterministic(t *testing.T) {
	a := testResolver().ParseWorkbook(mainStreetGrid(), "run.xlsx")
	b := testResolver().ParseWorkbook(mainStreetGrid(), "run.xlsx")
	assert.Equal(t, a, b)
}
