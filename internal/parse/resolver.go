package parse

import (
	"log/slog"
	"time"

	"github.com/vendiq/pickrun/internal/common"
	"github.com/vendiq/pickrun/internal/entity"
	"github.com/vendiq/pickrun/internal/workbook"
)

// Resolver walks workbook grids and produces the normalized parse result.
// It holds no per-parse state; every ParseWorkbook call allocates its own
// dedup context, so concurrent parses of unrelated workbooks are safe.
type Resolver struct {
	scanRows     int
	maxBlankRows int
	logger       *slog.Logger
}

func NewResolver(cfg common.ImportConfig, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	scan := cfg.HeaderScanRows
	if scan <= 0 {
		scan = 10
	}
	blank := cfg.MaxBlankRows
	if blank <= 0 {
		blank = 25
	}
	return &Resolver{scanRows: scan, maxBlankRows: blank, logger: logger}
}

// parseContext holds the dedup maps for a single parse. Scoping them to the
// call instead of package level keeps state from leaking across imports.
type parseContext struct {
	machines     map[string]*entity.ParsedMachine
	machineOrder []string
	coils        map[string]*entity.ParsedCoil
	skus         map[string]*entity.ParsedSku
	skuOrder     []string
}

func newParseContext() *parseContext {
	return &parseContext{
		machines: make(map[string]*entity.ParsedMachine),
		coils:    make(map[string]*entity.ParsedCoil),
		skus:     make(map[string]*entity.ParsedSku),
	}
}

func (c *parseContext) machine(code string) (*entity.ParsedMachine, bool) {
	m, ok := c.machines[code]
	return m, ok
}

func (c *parseContext) addMachine(m *entity.ParsedMachine) {
	c.machines[m.Code] = m
	c.machineOrder = append(c.machineOrder, m.Code)
}

func coilKey(machineCode, coilCode string) string {
	return machineCode + "\x00" + coilCode
}

// ParseWorkbook resolves every sheet of g into one ParsedRunWorkbook.
// Sheets without a recognizable header are skipped and recorded; a workbook
// with zero usable rows yields Run == nil rather than an error.
func (r *Resolver) ParseWorkbook(g workbook.Grid, filename string) *entity.ParsedRunWorkbook {
	ctx := newParseContext()
	out := &entity.ParsedRunWorkbook{}

	var sheets []SheetResult
	for _, name := range g.SheetNames() {
		res, skip := r.parseSheet(g, name, ctx)
		if skip != nil {
			r.logger.Warn("skipping sheet", "sheet", name, "reason", skip.Reason)
			out.SkippedSheets = append(out.SkippedSheets, *skip)
			continue
		}
		r.logger.Info("parsed sheet", "sheet", name, "entries", len(res.Entries))
		sheets = append(sheets, res)
	}

	out.Run = AssembleRun(sheets, filename)

	for _, code := range ctx.machineOrder {
		out.Machines = append(out.Machines, ctx.machines[code])
	}
	for _, code := range ctx.skuOrder {
		out.Skus = append(out.Skus, ctx.skus[code])
	}
	return out
}

// parseSheet scans one sheet. The sheet name supplies the location name for
// every machine found on it.
func (r *Resolver) parseSheet(g workbook.Grid, sheet string, ctx *parseContext) (SheetResult, *entity.SkippedSheet) {
	cols, headerRow, ok := findHeader(g, sheet, r.scanRows)
	if !ok {
		return SheetResult{}, &entity.SkippedSheet{Sheet: sheet, Reason: "no recognizable header row"}
	}

	location := &entity.ParsedMachineLocation{Name: sheet}
	sheetDate := r.sheetDate(g, sheet, headerRow)

	res := SheetResult{RunDate: sheetDate}
	rows, _ := g.Dimensions(sheet)

	var lastMachine *entity.ParsedMachine
	blankStreak := 0
	for row := headerRow + 1; row < rows; row++ {
		if r.rowBlank(g, sheet, row, cols) {
			blankStreak++
			if blankStreak >= r.maxBlankRows {
				break
			}
			continue
		}
		blankStreak = 0

		machine := r.resolveMachine(g, sheet, row, cols, ctx, location, sheetDate, lastMachine)
		if machine != nil {
			lastMachine = machine
		}

		sku := r.resolveSku(g, sheet, row, cols, ctx)
		coil := r.resolveCoil(g, sheet, row, cols, ctx, machine)
		if sku == nil && coil == nil {
			// decorative row (totals, section banners)
			continue
		}

		item := &entity.ParsedCoilItem{
			Coil:     coil,
			Sku:      sku,
			Current:  cellInt(g, sheet, row, cols, FieldCurrent),
			Par:      cellInt(g, sheet, row, cols, FieldPar),
			Need:     cellInt(g, sheet, row, cols, FieldNeed),
			Forecast: cellInt(g, sheet, row, cols, FieldForecast),
			Total:    cellInt(g, sheet, row, cols, FieldTotal),
			Notes:    cellString(g, sheet, row, cols, FieldNotes),
		}

		// one pick entry per physical row: duplicate coil/SKU pairs are kept
		// because malformed exports legitimately repeat them with different
		// quantities, and merging would lose data
		res.Entries = append(res.Entries, &entity.ParsedPickEntry{
			CoilItem: item,
			Count:    deriveCount(item.Need, item.Par, item.Current),
			Current:  item.Current,
			Par:      item.Par,
			Need:     item.Need,
			Forecast: item.Forecast,
			Notes:    item.Notes,
		})
	}

	if len(res.Entries) == 0 && res.RunDate == nil {
		// header matched but nothing under it; still not fatal
		return SheetResult{}, &entity.SkippedSheet{Sheet: sheet, Reason: "no usable rows"}
	}
	return res, nil
}

// deriveCount is the documented count rule: need wins when present; otherwise
// par minus current clamped to zero when both are known; otherwise unknown.
// The sequencer and the persistence layer both rely on this exact derivation.
func deriveCount(need, par, current *int) *int {
	if need != nil {
		return need
	}
	if par != nil && current != nil {
		v := *par - *current
		if v < 0 {
			v = 0
		}
		return &v
	}
	return nil
}

func (r *Resolver) resolveMachine(g workbook.Grid, sheet string, row int, cols columnMap, ctx *parseContext, location *entity.ParsedMachineLocation, sheetDate *time.Time, last *entity.ParsedMachine) *entity.ParsedMachine {
	code := cellString(g, sheet, row, cols, FieldMachineCode)
	if code == nil {
		// continuation row: exports state the machine once, then leave the
		// column blank for the rest of its coils
		return last
	}
	if m, ok := ctx.machine(*code); ok {
		return m
	}
	m := &entity.ParsedMachine{
		Code:     *code,
		RunDate:  sheetDate,
		Location: location,
	}
	if name := cellString(g, sheet, row, cols, FieldMachineName); name != nil {
		m.Name = *name
	} else {
		m.Name = *code
	}
	if mt := cellString(g, sheet, row, cols, FieldMachineType); mt != nil {
		m.Type = &entity.ParsedMachineType{Name: *mt}
	}
	ctx.addMachine(m)
	return m
}

func (r *Resolver) resolveSku(g workbook.Grid, sheet string, row int, cols columnMap, ctx *parseContext) *entity.ParsedSku {
	code := cellString(g, sheet, row, cols, FieldSkuCode)
	name := cellString(g, sheet, row, cols, FieldSkuName)
	if code == nil {
		// exports without a dedicated code column key SKUs by name
		code = name
	}
	if code == nil {
		return nil
	}
	if s, ok := ctx.skus[*code]; ok {
		return s
	}
	s := &entity.ParsedSku{Code: *code}
	if name != nil {
		s.Name = *name
	} else {
		s.Name = *code
	}
	s.SkuType = cellString(g, sheet, row, cols, FieldSkuType)
	ctx.skus[*code] = s
	ctx.skuOrder = append(ctx.skuOrder, *code)
	return s
}

func (r *Resolver) resolveCoil(g workbook.Grid, sheet string, row int, cols columnMap, ctx *parseContext, machine *entity.ParsedMachine) *entity.ParsedCoil {
	code := cellString(g, sheet, row, cols, FieldCoilCode)
	if code == nil {
		return nil
	}
	machineCode := ""
	if machine != nil {
		machineCode = machine.Code
	}
	key := coilKey(machineCode, *code)
	if c, ok := ctx.coils[key]; ok {
		return c
	}
	c := &entity.ParsedCoil{Code: *code, Machine: machine}
	ctx.coils[key] = c
	return c
}

// sheetDate looks for an explicit date cell above the header, then for a
// date pattern in the sheet name.
func (r *Resolver) sheetDate(g workbook.Grid, sheet string, headerRow int) *time.Time {
	_, ncols := g.Dimensions(sheet)
	for row := 0; row < headerRow; row++ {
		for col := 0; col < ncols; col++ {
			if t := dateValue(g.CellValue(sheet, row, col)); t != nil {
				return t
			}
		}
	}
	return findDateInText(sheet)
}

func (r *Resolver) rowBlank(g workbook.Grid, sheet string, row int, cols columnMap) bool {
	for _, col := range cols {
		if !g.CellValue(sheet, row, col).IsEmpty() {
			return false
		}
	}
	return true
}

func cellInt(g workbook.Grid, sheet string, row int, cols columnMap, f Field) *int {
	col, ok := cols[f]
	if !ok {
		return nil
	}
	return intValue(g.CellValue(sheet, row, col))
}

func cellString(g workbook.Grid, sheet string, row int, cols columnMap, f Field) *string {
	col, ok := cols[f]
	if !ok {
		return nil
	}
	return stringValue(g.CellValue(sheet, row, col))
}
