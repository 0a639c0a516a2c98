package parse

import (
	"strings"

	"github.com/vendiq/pickrun/internal/workbook"
)

// Field names one semantic column the resolver knows how to consume.
type Field int

const (
	FieldMachineCode Field = iota
	FieldMachineName
	FieldMachineType
	FieldCoilCode
	FieldSkuCode
	FieldSkuName
	FieldSkuType
	FieldCurrent
	FieldPar
	FieldNeed
	FieldForecast
	FieldTotal
	FieldNotes
)

// headerRule maps a candidate header text pattern to a semantic field.
// Matching is case-insensitive substring over normalized text; earlier rules
// win, so specific patterns must precede generic ones ("machine name" before
// "machine"). New export formats are handled by adding rows here, not by
// branching in the resolver.
type headerRule struct {
	pattern string
	field   Field
}

var headerRules = []headerRule{
	{"machine name", FieldMachineName},
	{"machine type", FieldMachineType},
	{"machine code", FieldMachineCode},
	{"machine no", FieldMachineCode},
	{"machine #", FieldMachineCode},
	{"machine id", FieldMachineCode},
	{"asset", FieldMachineCode},
	{"machine", FieldMachineCode},
	{"coil code", FieldCoilCode},
	{"coil no", FieldCoilCode},
	{"coil #", FieldCoilCode},
	{"coil", FieldCoilCode},
	{"slot", FieldCoilCode},
	{"selection", FieldCoilCode},
	{"sku name", FieldSkuName},
	{"sku type", FieldSkuType},
	{"sku code", FieldSkuCode},
	{"sku #", FieldSkuCode},
	{"sku", FieldSkuCode},
	{"item code", FieldSkuCode},
	{"product code", FieldSkuCode},
	{"item name", FieldSkuName},
	{"product name", FieldSkuName},
	{"description", FieldSkuName},
	{"category", FieldSkuType},
	{"product", FieldSkuName},
	{"item", FieldSkuName},
	{"on hand", FieldCurrent},
	{"current", FieldCurrent},
	{"par", FieldPar},
	{"capacity", FieldPar},
	{"need", FieldNeed},
	{"required", FieldNeed},
	{"refill", FieldNeed},
	{"fill", FieldNeed},
	{"forecast", FieldForecast},
	{"projected", FieldForecast},
	{"total", FieldTotal},
	{"note", FieldNotes},
	{"comment", FieldNotes},
	{"remark", FieldNotes},
}

// normalizeHeader lowercases and collapses separators so "Coil_Code" and
// "Coil  Code" both match "coil code".
func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	repl := strings.NewReplacer("_", " ", "-", " ", ".", " ", "/", " ")
	s = repl.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// matchHeader resolves one header cell to a field, if any rule applies.
func matchHeader(text string) (Field, bool) {
	norm := normalizeHeader(text)
	if norm == "" {
		return 0, false
	}
	for _, rule := range headerRules {
		if strings.Contains(norm, rule.pattern) {
			return rule.field, true
		}
	}
	return 0, false
}

// columnMap records which grid column carries each recognized field.
type columnMap map[Field]int

// usable reports whether enough columns were recognized to parse rows: a coil
// column plus some way to identify the SKU.
func (m columnMap) usable() bool {
	_, coil := m[FieldCoilCode]
	_, skuCode := m[FieldSkuCode]
	_, skuName := m[FieldSkuName]
	return coil && (skuCode || skuName)
}

// findHeader scans the first scanRows rows of a sheet for the row that
// recognizes the most fields. Exports place the table at varying offsets, so
// position-tolerant scanning replaces fixed coordinates.
func findHeader(g workbook.Grid, sheet string, scanRows int) (columnMap, int, bool) {
	rows, cols := g.Dimensions(sheet)
	if rows < scanRows {
		scanRows = rows
	}

	var best columnMap
	bestRow := -1
	for row := 0; row < scanRows; row++ {
		m := columnMap{}
		for col := 0; col < cols; col++ {
			c := g.CellValue(sheet, row, col)
			if c.Kind != workbook.KindString || c.IsEmpty() {
				continue
			}
			field, ok := matchHeader(c.Str)
			if !ok {
				continue
			}
			// first column wins when two headers map to the same field
			if _, seen := m[field]; !seen {
				m[field] = col
			}
		}
		if m.usable() && len(m) > len(best) {
			best = m
			bestRow = row
		}
	}
	if bestRow == -1 {
		return nil, -1, false
	}
	return best, bestRow, true
}
