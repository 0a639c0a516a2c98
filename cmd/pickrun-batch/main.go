package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/vendiq/pickrun/constants"
	"github.com/vendiq/pickrun/internal/common"
	"github.com/vendiq/pickrun/internal/export"
	"github.com/vendiq/pickrun/internal/parse"
	"github.com/vendiq/pickrun/internal/repository"
	"github.com/vendiq/pickrun/internal/repository/postgres"
	"github.com/vendiq/pickrun/internal/repository/sqlite"
	"github.com/vendiq/pickrun/internal/services/audio"
	"github.com/vendiq/pickrun/internal/services/importer"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	// Parse CLI flags
	var (
		file    = flag.String("file", "", "run workbook (.xlsx) to import (required)")
		db      = flag.String("db", "", "SQLite database path (defaults to in-memory)")
		company = flag.String("company", "Local Batch", "company name to import under")
		tz      = flag.String("tz", "UTC", "company timezone for expiry computation")
		out     = flag.String("out", "", "output pick-sheet XLSX path (optional)")
	)
	flag.Parse()

	if *file == "" {
		printError("Error: --file is required\n")
		os.Exit(1)
	}
	if !constants.IsAllowedExt(filepath.Ext(*file)) {
		printError("Error: unsupported workbook format %q\n", filepath.Ext(*file))
		os.Exit(1)
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()
	cfg := common.LoadConfig()

	var store repository.Store
	if cfg.Database.DSN != "" {
		pool, err := repository.OpenPool(ctx, cfg.Database, logger)
		if err != nil {
			logger.Error("failed to open store", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		store = postgres.NewStore(pool, logger)
	} else {
		dbPath := *db
		if dbPath == "" {
			dbPath = ":memory:"
		}
		s, err := sqlite.Open(dbPath, logger)
		if err != nil {
			logger.Error("failed to open store", "error", err)
			os.Exit(1)
		}
		defer func() { _ = s.Close() }()
		store = s
	}

	co, err := store.CreateCompany(ctx, *company, *tz)
	if err != nil {
		logger.Error("failed to create company", "error", err)
		os.Exit(1)
	}
	logger.Info("using company", "id", co.ID, "name", co.Name, "timezone", co.Timezone)

	resolver := parse.NewResolver(cfg.Import, logger)
	importSvc := importer.NewService(store, store, store, resolver, logger)
	audioSvc := audio.NewService(store, logger)
	exportSvc := export.NewService(logger)

	f, err := os.Open(*file)
	if err != nil {
		logger.Error("failed to open workbook", "file", *file, "error", err)
		os.Exit(1)
	}
	result, err := importSvc.ImportWorkbook(ctx, co.ID, f, filepath.Base(*file))
	_ = f.Close()
	if err != nil {
		logger.Error("import failed", "file", *file, "error", err)
		os.Exit(1)
	}
	logger.Info("import complete",
		"entries", result.EntriesCreated,
		"machines", result.MachinesSeen,
		"skus", result.SkusSeen,
		"skipped_sheets", len(result.SkippedSheets),
	)
	if result.RunID == nil {
		logger.Warn("workbook yielded no run; nothing to sequence")
		return
	}

	commands, err := audioSvc.Sequence(ctx, *result.RunID)
	if err != nil {
		logger.Error("sequencing failed", "run_id", result.RunID, "error", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	for _, c := range commands {
		if err := enc.Encode(c); err != nil {
			printError("Error: write command: %v\n", err)
			os.Exit(1)
		}
	}

	if *out != "" {
		data, err := exportSvc.PickSheetXLSX(commands)
		if err != nil {
			logger.Error("pick sheet export failed", "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*out, data, 0o644); err != nil {
			logger.Error("failed to write pick sheet", "path", *out, "error", err)
			os.Exit(1)
		}
		logger.Info("pick sheet written", "path", *out, "bytes", len(data))
	}
}
