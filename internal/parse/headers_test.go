package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendiq/pickrun/internal/workbook"
)

func TestMatchHeader_Variants(t *testing.T) {
	cases := []struct {
		text  string
		field Field
	}{
		{"Machine", FieldMachineCode},
		{"MACHINE CODE", FieldMachineCode},
		{"machine_no", FieldMachineCode},
		{"Machine Name", FieldMachineName},
		{"Machine Type", FieldMachineType},
		{"Coil", FieldCoilCode},
		{"Coil #", FieldCoilCode},
		{"Slot", FieldCoilCode},
		{"Selection", FieldCoilCode},
		{"SKU", FieldSkuCode},
		{"Item Code", FieldSkuCode},
		{"Product Code", FieldSkuCode},
		{"Item Name", FieldSkuName},
		{"Description", FieldSkuName},
		{"SKU Name", FieldSkuName},
		{"Qty On Hand", FieldCurrent},
		{"Current", FieldCurrent},
		{"Par", FieldPar},
		{"Capacity", FieldPar},
		{"Need", FieldNeed},
		{"Required", FieldNeed},
		{"Fill", FieldNeed},
		{"Forecast", FieldForecast},
		{"Total", FieldTotal},
		{"Notes", FieldNotes},
		{"Comments", FieldNotes},
	}
	for _, tc := range cases {
		field, ok := matchHeader(tc.text)
		require.True(t, ok, "expected %q to match a field", tc.text)
		assert.Equal(t, tc.field, field, "header %q", tc.text)
	}
}

func TestMatchHeader_Unrecognized(t *testing.T) {
	for _, text := range []string{"", "   ", "Route", "Driver", "12345"} {
		_, ok := matchHeader(text)
		assert.False(t, ok, "did not expect %q to match", text)
	}
}

func TestFindHeader_PositionTolerant(t *testing.T) {
	g := workbook.NewMemGrid()
	g.AddSheet("Lobby", [][]workbook.Cell{
		{workbook.String("Weekly Run Export")},
		{},
		{workbook.String("Machine"), workbook.String("Coil"), workbook.String("SKU"), workbook.String("Need")},
		{workbook.String("M1"), workbook.String("A1"), workbook.String("COLA"), workbook.Number(4)},
	})

	cols, row, ok := findHeader(g, "Lobby", 10)
	require.True(t, ok)
	assert.Equal(t, 2, row)
	assert.Equal(t, 0, cols[FieldMachineCode])
	assert.Equal(t, 1, cols[FieldCoilCode])
	assert.Equal(t, 2, cols[FieldSkuCode])
	assert.Equal(t, 3, cols[FieldNeed])
}

func TestFindHeader_RequiresCoilAndSku(t *testing.T) {
	g := workbook.NewMemGrid()
	g.AddSheet("Junk", [][]workbook.Cell{
		{workbook.String("Machine"), workbook.String("Need")},
		{workbook.String("M1"), workbook.Number(3)},
	})

	_, _, ok := findHeader(g, "Junk", 10)
	assert.False(t, ok)
}
