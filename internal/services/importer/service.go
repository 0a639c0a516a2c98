// Package importer orchestrates a workbook import end to end: grid parsing,
// find-or-create persistence of the resolved graph, and expiry enrichment of
// the created pick entries.
package importer

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/vendiq/pickrun/internal/common"
	"github.com/vendiq/pickrun/internal/entity"
	"github.com/vendiq/pickrun/internal/expiry"
	"github.com/vendiq/pickrun/internal/parse"
	"github.com/vendiq/pickrun/internal/repository"
	"github.com/vendiq/pickrun/internal/workbook"
)

type Service struct {
	companies repository.CompanyRepository
	catalog   repository.CatalogRepository
	runs      repository.RunRepository
	resolver  *parse.Resolver
	logger    *slog.Logger
}

func NewService(companies repository.CompanyRepository, catalog repository.CatalogRepository, runs repository.RunRepository, resolver *parse.Resolver, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		companies: companies,
		catalog:   catalog,
		runs:      runs,
		resolver:  resolver,
		logger:    logger,
	}
}

// ImportResult summarizes one workbook import.
type ImportResult struct {
	RunID          *uuid.UUID            `json:"run_id,omitempty"`
	EntriesCreated int                   `json:"entries_created"`
	EntriesSkipped int                   `json:"entries_skipped"`
	MachinesSeen   int                   `json:"machines_seen"`
	SkusSeen       int                   `json:"skus_seen"`
	SkippedSheets  []entity.SkippedSheet `json:"skipped_sheets,omitempty"`
}

// ImportWorkbook parses one XLSX workbook and persists the run it describes.
// A workbook with no usable sheets is not an error: the result simply has no
// run. The store's upsert semantics serialize concurrent discovery of the
// same catalog rows; within one call, parsed pointers are mapped to persisted
// IDs once and reused.
func (s *Service) ImportWorkbook(ctx context.Context, companyID uuid.UUID, r io.Reader, filename string) (*ImportResult, error) {
	company, err := s.companies.GetCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("company not found for import", "company_id", companyID, "error", err)
		return nil, common.InvalidArgumentError("company not found")
	}

	grid, err := workbook.OpenReader(r)
	if err != nil {
		return nil, common.InvalidArgumentErrorf("read workbook: %v", err)
	}

	parsed := s.resolver.ParseWorkbook(grid, filename)
	result := &ImportResult{
		MachinesSeen:  len(parsed.Machines),
		SkusSeen:      len(parsed.Skus),
		SkippedSheets: parsed.SkippedSheets,
	}
	if parsed.Run == nil {
		s.logger.Warn("workbook yielded no run", "company_id", companyID, "file", filename)
		return result, nil
	}

	run, err := s.runs.CreateRun(ctx, companyID, parsed.Run.RunDate)
	if err != nil {
		return nil, common.InternalError("create run failed")
	}
	result.RunID = &run.ID

	// parsed instance → persisted ID caches, scoped to this import
	locations := make(map[*entity.ParsedMachineLocation]uuid.UUID)
	types := make(map[*entity.ParsedMachineType]uuid.UUID)
	machines := make(map[*entity.ParsedMachine]uuid.UUID)
	skus := make(map[*entity.ParsedSku]*entity.Sku)
	coils := make(map[*entity.ParsedCoil]uuid.UUID)
	items := make(map[*entity.ParsedCoilItem]uuid.UUID)

	for _, pe := range parsed.Run.Entries {
		item := pe.CoilItem
		if item == nil || item.Coil == nil || item.Coil.Machine == nil || item.Sku == nil {
			// nothing to hang the entry on; recorded, not fatal
			result.EntriesSkipped++
			continue
		}

		machineID, err := s.resolveMachine(ctx, companyID, item.Coil.Machine, locations, types, machines)
		if err != nil {
			return nil, err
		}

		sku, ok := skus[item.Sku]
		if !ok {
			sku, err = s.catalog.FindOrCreateSku(ctx, companyID, item.Sku.Code, item.Sku.Name, item.Sku.SkuType)
			if err != nil {
				return nil, common.InternalError("resolve sku failed")
			}
			skus[item.Sku] = sku
		}

		coilID, ok := coils[item.Coil]
		if !ok {
			coil, err := s.catalog.FindOrCreateCoil(ctx, machineID, item.Coil.Code)
			if err != nil {
				return nil, common.InternalError("resolve coil failed")
			}
			coilID = coil.ID
			coils[item.Coil] = coilID
		}

		itemID, ok := items[item]
		if !ok {
			ci, err := s.catalog.FindOrCreateCoilItem(ctx, coilID, sku.ID)
			if err != nil {
				return nil, common.InternalError("resolve coil item failed")
			}
			itemID = ci.ID
			items[item] = itemID
		}

		if _, err := s.runs.CreatePickEntry(ctx, repository.CreatePickEntryRequest{
			RunID:      run.ID,
			CoilItemID: itemID,
			Count:      pe.Count,
			Current:    pe.Current,
			Par:        pe.Par,
			Need:       pe.Need,
			Forecast:   pe.Forecast,
			Notes:      pe.Notes,
			ExpiryDate: expiry.ComputeDate(run.ScheduledFor, company.Timezone, sku.ShelfLifeDays),
		}); err != nil {
			return nil, common.InternalError("create pick entry failed")
		}
		result.EntriesCreated++
	}

	s.logger.Info("workbook import complete",
		"company_id", companyID,
		"run_id", run.ID,
		"entries", result.EntriesCreated,
		"skipped_entries", result.EntriesSkipped,
		"skipped_sheets", len(result.SkippedSheets),
	)
	return result, nil
}

func (s *Service) resolveMachine(ctx context.Context, companyID uuid.UUID, m *entity.ParsedMachine, locations map[*entity.ParsedMachineLocation]uuid.UUID, types map[*entity.ParsedMachineType]uuid.UUID, machines map[*entity.ParsedMachine]uuid.UUID) (uuid.UUID, error) {
	if id, ok := machines[m]; ok {
		return id, nil
	}

	var locationID, typeID *uuid.UUID
	if m.Location != nil {
		id, ok := locations[m.Location]
		if !ok {
			loc, err := s.catalog.FindOrCreateLocation(ctx, companyID, m.Location.Name, m.Location.Address)
			if err != nil {
				return uuid.Nil, common.InternalError("resolve location failed")
			}
			id = loc.ID
			locations[m.Location] = id
		}
		locationID = &id
	}
	if m.Type != nil {
		id, ok := types[m.Type]
		if !ok {
			mt, err := s.catalog.FindOrCreateMachineType(ctx, companyID, m.Type.Name, m.Type.Category)
			if err != nil {
				return uuid.Nil, common.InternalError("resolve machine type failed")
			}
			id = mt.ID
			types[m.Type] = id
		}
		typeID = &id
	}

	machine, err := s.catalog.FindOrCreateMachine(ctx, repository.FindOrCreateMachineRequest{
		CompanyID:     companyID,
		Code:          m.Code,
		Name:          m.Name,
		LocationID:    locationID,
		MachineTypeID: typeID,
	})
	if err != nil {
		return uuid.Nil, common.InternalError("resolve machine failed")
	}
	machines[m] = machine.ID
	return machine.ID, nil
}
