package entity

import "time"

// ParsedSku is a SKU discovered during a workbook parse, deduplicated by code.
type ParsedSku struct {
	Code    string  `json:"code"`
	Name    string  `json:"name"`
	SkuType *string `json:"sku_type,omitempty"`
}

// ParsedMachineLocation is the location a machine was found under; the sheet
// name supplies the location name.
type ParsedMachineLocation struct {
	Name    string  `json:"name"`
	Address *string `json:"address,omitempty"`
}

// ParsedMachineType is an optional machine classification.
type ParsedMachineType struct {
	Name     string  `json:"name"`
	Category *string `json:"category,omitempty"`
}

// ParsedMachine represents a machine for data transfer between layers.
// Machines are deduplicated by code within a single parse.
type ParsedMachine struct {
	Code     string                 `json:"code"`
	Name     string                 `json:"name"`
	RunDate  *time.Time             `json:"run_date,omitempty"`
	Location *ParsedMachineLocation `json:"location,omitempty"`
	Type     *ParsedMachineType     `json:"type,omitempty"`
}

// ParsedCoil is a slot within a machine, deduplicated by (machine code, coil code).
type ParsedCoil struct {
	Code    string         `json:"code"`
	Machine *ParsedMachine `json:"machine"`
}

// ParsedCoilItem binds a coil to a SKU, carrying the raw numeric columns.
// Numeric fields are nil when the source cell was blank or unparseable;
// nil is never collapsed to zero so "no data" stays distinguishable.
type ParsedCoilItem struct {
	Coil     *ParsedCoil `json:"coil"`
	Sku      *ParsedSku  `json:"sku"`
	Current  *int        `json:"current,omitempty"`
	Par      *int        `json:"par,omitempty"`
	Need     *int        `json:"need,omitempty"`
	Forecast *int        `json:"forecast,omitempty"`
	Total    *int        `json:"total,omitempty"`
	Notes    *string     `json:"notes,omitempty"`
}

// ParsedPickEntry is one pick requirement, one per physical row. Rows are
// never merged even when the same coil/SKU pair reappears.
type ParsedPickEntry struct {
	CoilItem *ParsedCoilItem `json:"coil_item"`
	Count    *int            `json:"count,omitempty"`
	Current  *int            `json:"current,omitempty"`
	Par      *int            `json:"par,omitempty"`
	Need     *int            `json:"need,omitempty"`
	Forecast *int            `json:"forecast,omitempty"`
	Notes    *string         `json:"notes,omitempty"`
}

// ParsedRun aggregates the pick entries of one workbook import.
type ParsedRun struct {
	RunDate *time.Time         `json:"run_date,omitempty"`
	Entries []*ParsedPickEntry `json:"entries"`
}

// SkippedSheet records a sheet the resolver could not use, for caller-level reporting.
type SkippedSheet struct {
	Sheet  string `json:"sheet"`
	Reason string `json:"reason"`
}

// ParsedRunWorkbook is the full result of parsing one workbook. Run is nil
// when no sheet yielded a usable pick entry.
type ParsedRunWorkbook struct {
	Run           *ParsedRun       `json:"run"`
	Machines      []*ParsedMachine `json:"machines"`
	Skus          []*ParsedSku     `json:"skus"`
	SkippedSheets []SkippedSheet   `json:"skipped_sheets,omitempty"`
}
