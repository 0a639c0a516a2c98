package workbook

import "time"

// CellKind tags the dynamic type of a cell value.
type CellKind int

const (
	KindEmpty CellKind = iota
	KindString
	KindNumber
	KindTime
)

// Cell is one typed cell value. Blank and formula-error cells surface as
// KindEmpty so downstream parsing never mistakes "no data" for zero.
type Cell struct {
	Kind CellKind
	Str  string
	Num  float64
	Time time.Time
}

func Empty() Cell           { return Cell{Kind: KindEmpty} }
func String(s string) Cell  { return Cell{Kind: KindString, Str: s} }
func Number(f float64) Cell { return Cell{Kind: KindNumber, Num: f} }
func Time(t time.Time) Cell { return Cell{Kind: KindTime, Time: t} }

// IsEmpty reports whether the cell carries no usable value.
func (c Cell) IsEmpty() bool {
	return c.Kind == KindEmpty || (c.Kind == KindString && c.Str == "")
}

// Grid is the read-side workbook abstraction the parser consumes. Row and
// column indexes are zero-based; out-of-range reads yield an empty cell.
type Grid interface {
	SheetNames() []string
	Dimensions(sheet string) (rows, cols int)
	CellValue(sheet string, row, col int) Cell
}

// MemGrid is an in-memory Grid, used by tests and as a decode target for
// pre-extracted sheet data.
type MemGrid struct {
	order  []string
	sheets map[string][][]Cell
}

func NewMemGrid() *MemGrid {
	return &MemGrid{sheets: make(map[string][][]Cell)}
}

// AddSheet registers a sheet; re-adding a name replaces its rows.
func (g *MemGrid) AddSheet(name string, rows [][]Cell) {
	if _, ok := g.sheets[name]; !ok {
		g.order = append(g.order, name)
	}
	g.sheets[name] = rows
}

func (g *MemGrid) SheetNames() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

func (g *MemGrid) Dimensions(sheet string) (int, int) {
	rows := g.sheets[sheet]
	cols := 0
	for _, r := range rows {
		if len(r) > cols {
			cols = len(r)
		}
	}
	return len(rows), cols
}

func (g *MemGrid) CellValue(sheet string, row, col int) Cell {
	rows := g.sheets[sheet]
	if row < 0 || row >= len(rows) {
		return Empty()
	}
	r := rows[row]
	if col < 0 || col >= len(r) {
		return Empty()
	}
	return r[col]
}
