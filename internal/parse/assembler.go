package parse

import (
	"time"

	"github.com/vendiq/pickrun/internal/entity"
)

// SheetResult is the output of parsing one sheet, in sheet order.
type SheetResult struct {
	Entries []*entity.ParsedPickEntry
	RunDate *time.Time
}

// AssembleRun merges per-sheet results into a single ParsedRun. It is a pure
// transform: entries are concatenated in sheet order and the run date is the
// first non-nil sheet date encountered. When sheets disagree on the date the
// first one wins; this is deliberately order-dependent rather than a silent
// "latest wins". Sheets without entries still contribute their date. A
// workbook with no entries at all yields nil.
func AssembleRun(sheets []SheetResult, filename string) *entity.ParsedRun {
	run := &entity.ParsedRun{}
	for _, s := range sheets {
		if run.RunDate == nil && s.RunDate != nil {
			run.RunDate = s.RunDate
		}
		run.Entries = append(run.Entries, s.Entries...)
	}
	if run.RunDate == nil {
		run.RunDate = findDateInText(filename)
	}
	if len(run.Entries) == 0 {
		return nil
	}
	return run
}
