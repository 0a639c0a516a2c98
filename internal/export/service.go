package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/vendiq/pickrun/internal/entity"
)

// Service produces XLSX bytes for pick-sheet exports: the sequenced audio
// commands laid out as a printable checklist.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// PickSheetXLSX renders the audio command sequence as an XLSX workbook.
func (s *Service) PickSheetXLSX(commands []*entity.AudioCommand) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Pick Sheet"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	if defIdx, _ := f.GetSheetIndex("Sheet1"); defIdx != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	headers := []string{
		"#",
		"Type",
		"Announcement",
		"Count",
		"Coil",
		"Machine",
		"Location",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, c := range commands {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, c.ID)
		write(2, string(c.Type))
		write(3, c.AudioCommand)
		if c.Count != nil {
			write(4, *c.Count)
		}
		if c.CoilCode != nil {
			write(5, *c.CoilCode)
		}
		if c.MachineCode != nil {
			write(6, *c.MachineCode)
		}
		if c.LocationName != nil {
			write(7, *c.LocationName)
		}

		row++
	}

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "A", 6)  // ordinal
	_ = f.SetColWidth(sheet, "B", "B", 10) // type
	_ = f.SetColWidth(sheet, "C", "C", 52) // announcement
	_ = f.SetColWidth(sheet, "D", "E", 10) // count, coil
	_ = f.SetColWidth(sheet, "F", "G", 22) // machine, location

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.picksheet.ok",
		"commands", len(commands),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
