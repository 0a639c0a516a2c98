package workbook

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// XLSXGrid adapts an excelize workbook to the Grid interface. All sheets are
// materialized up front so reads never touch the underlying file again.
type XLSXGrid struct {
	order  []string
	sheets map[string][][]string
}

// OpenReader reads a whole XLSX workbook from r into an XLSXGrid.
func OpenReader(r io.Reader) (*XLSXGrid, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	g := &XLSXGrid{sheets: make(map[string][][]string)}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", name, err)
		}
		g.order = append(g.order, name)
		g.sheets[name] = rows
	}
	return g, nil
}

func (g *XLSXGrid) SheetNames() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

func (g *XLSXGrid) Dimensions(sheet string) (int, int) {
	rows := g.sheets[sheet]
	cols := 0
	for _, r := range rows {
		if len(r) > cols {
			cols = len(r)
		}
	}
	return len(rows), cols
}

func (g *XLSXGrid) CellValue(sheet string, row, col int) Cell {
	rows, ok := g.sheets[sheet]
	if !ok || row < 0 || row >= len(rows) {
		return Empty()
	}
	r := rows[row]
	if col < 0 || col >= len(r) {
		return Empty()
	}
	// excelize formats every cell to its display string; typed decoding is
	// left to the parse layer, which must handle arbitrary exports anyway.
	if r[col] == "" {
		return Empty()
	}
	return String(r[col])
}
