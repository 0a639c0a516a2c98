package importer

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/vendiq/pickrun/internal/common"
	"github.com/vendiq/pickrun/internal/entity"
	"github.com/vendiq/pickrun/internal/parse"
	"github.com/vendiq/pickrun/internal/repository/sqlite"
	"github.com/vendiq/pickrun/internal/services/audio"
)

// runWorkbook builds a two-sheet export: one parseable location sheet with a
// run date and two machines, and one junk sheet.
func runWorkbook(t *testing.T) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Main Street"
	require.NoError(t, f.SetSheetName("Sheet1", sheet))
	rows := [][]any{
		{"Run Date", "2025-01-10"},
		{"Machine", "Coil", "SKU", "Item Name", "Current", "Par", "Need"},
		{"M1", "A1", "COLA", "Cola Classic", 2, 8, 4},
		{"", "A2", "CHIP", "Chips", 3, 8, nil},
		{"M2", "B1", "COLA", "Cola Classic", nil, nil, 6},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	_, err := f.NewSheet("Notes")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Notes", "A1", "check the loading dock"))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestImportWorkbook(t *testing.T) {
	ctx := context.Background()
	logger := testLogger()
	store, err := sqlite.Open(":memory:", logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	co, err := store.CreateCompany(ctx, "Vendiq", "America/New_York")
	require.NoError(t, err)

	svc := NewService(store, store, store, parse.NewResolver(common.ImportConfig{}, logger), logger)
	res, err := svc.ImportWorkbook(ctx, co.ID, runWorkbook(t), "run.xlsx")
	require.NoError(t, err)

	require.NotNil(t, res.RunID)
	assert.Equal(t, 3, res.EntriesCreated)
	assert.Equal(t, 0, res.EntriesSkipped)
	assert.Equal(t, 2, res.MachinesSeen)
	assert.Equal(t, 2, res.SkusSeen)
	require.Len(t, res.SkippedSheets, 1)
	assert.Equal(t, "Notes", res.SkippedSheets[0].Sheet)

	run, err := store.GetRun(ctx, *res.RunID)
	require.NoError(t, err)
	require.NotNil(t, run.ScheduledFor)
	assert.Equal(t, "2025-01-10", run.ScheduledFor.UTC().Format("2006-01-02"))

	pending, err := store.ListPending(ctx, *res.RunID)
	require.NoError(t, err)
	require.Len(t, pending, 3)

	// the whole pipeline: import, then sequence
	cmds, err := audio.NewService(store, logger).Sequence(ctx, *res.RunID)
	require.NoError(t, err)

	texts := make([]string, len(cmds))
	for i, c := range cmds {
		texts[i] = c.AudioCommand
	}
	assert.Equal(t, []string{
		"Location Main Street",
		"Machine M1",
		"Chips. Need 5. Coil A2",
		"Cola Classic. Need 4. Coil A1",
		"Machine M2",
		"Cola Classic. Need 6. Coil B1",
	}, texts)
}

func TestImportWorkbook_Reimport(t *testing.T) {
	ctx := context.Background()
	logger := testLogger()
	store, err := sqlite.Open(":memory:", logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	co, err := store.CreateCompany(ctx, "Vendiq", "UTC")
	require.NoError(t, err)
	svc := NewService(store, store, store, parse.NewResolver(common.ImportConfig{}, logger), logger)

	first, err := svc.ImportWorkbook(ctx, co.ID, runWorkbook(t), "run.xlsx")
	require.NoError(t, err)
	second, err := svc.ImportWorkbook(ctx, co.ID, runWorkbook(t), "run.xlsx")
	require.NoError(t, err)

	// catalog rows are shared, runs are not
	require.NotNil(t, first.RunID)
	require.NotNil(t, second.RunID)
	assert.NotEqual(t, *first.RunID, *second.RunID)
	assert.Equal(t, first.EntriesCreated, second.EntriesCreated)

	p1, err := store.ListPending(ctx, *first.RunID)
	require.NoError(t, err)
	p2, err := store.ListPending(ctx, *second.RunID)
	require.NoError(t, err)
	require.Len(t, p2, len(p1))

	items := func(entries []*entity.PendingPickEntry) map[uuid.UUID]int {
		out := make(map[uuid.UUID]int, len(entries))
		for _, e := range entries {
			out[e.CoilItemID] = e.Count
		}
		return out
	}
	assert.Equal(t, items(p1), items(p2), "reimport resolves to the same coil items")
}

func TestImportWorkbook_UnknownCompany(t *testing.T) {
	logger := testLogger()
	store, err := sqlite.Open(":memory:", logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	svc := NewService(store, store, store, parse.NewResolver(common.ImportConfig{}, logger), logger)
	_, err = svc.ImportWorkbook(context.Background(), uuid.New(), runWorkbook(t), "run.xlsx")
	assert.Error(t, err)
}

func TestImportWorkbook_EmptyWorkbook(t *testing.T) {
	ctx := context.Background()
	logger := testLogger()
	store, err := sqlite.Open(":memory:", logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	co, err := store.CreateCompany(ctx, "Vendiq", "UTC")
	require.NoError(t, err)

	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "nothing usable"))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	_ = f.Close()

	svc := NewService(store, store, store, parse.NewResolver(common.ImportConfig{}, logger), logger)
	res, err := svc.ImportWorkbook(ctx, co.ID, buf, "empty.xlsx")
	require.NoError(t, err, "an unusable workbook is reported, not failed")
	assert.Nil(t, res.RunID)
	assert.Zero(t, res.EntriesCreated)
	require.Len(t, res.SkippedSheets, 1)
}
